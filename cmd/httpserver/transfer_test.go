//go:build integration

package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/clearledger/bank-office/internal/domain"
	"github.com/clearledger/bank-office/internal/integrationtest"
	"github.com/clearledger/bank-office/internal/middleware"
	"github.com/clearledger/bank-office/internal/test"
	"github.com/clearledger/bank-office/pkg/tokenpkg"
	"github.com/clearledger/bank-office/pkg/web"
)

func TestTransferAPI(t *testing.T) {
	server := integrationtest.SetupServer(t)

	user1 := test.SeedUser(t, server.DB)
	user2 := test.SeedUser(t, server.DB)
	account1 := test.SeedAccountWith1000Balance(t, server.DB, user1.ID)
	account2 := test.SeedAccountWith1000Balance(t, server.DB, user2.ID)
	amount := "100"

	tokenMaker, err := tokenpkg.NewPasetoMaker(server.Config.TokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", server.Config.TokenSymmetricKey, err)
	}

	authType := middleware.AuthTypeBearer
	duration := server.Config.AccessTokenDuration

	type requestBody struct {
		FromAccount string `json:"fromAccount"`
		ToAccount   string `json:"toAccount"`
		Amount      string `json:"amount"`
	}

	testCases := []struct {
		name           string
		requestBody    requestBody
		setupAuth      func(t *testing.T, r *http.Request) error
		wantStatusCode int
		checkData      func(req requestBody, data any)
		wantError      string
	}{
		{
			name: "OK",
			requestBody: requestBody{
				FromAccount: account1.AccountNumber,
				ToAccount:   account2.AccountNumber,
				Amount:      amount,
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, user1.Username, duration)
			},
			wantStatusCode: http.StatusOK,
			checkData: func(req requestBody, data any) {
				got, ok := data.(*struct {
					Transfer domain.TransferTxResult `json:"transfer"`
				})
				if !ok {
					t.Errorf("res.Data = %#v, failed type conversion", data)
				}

				want := domain.TransferTxResult{
					FromAccount: domain.Account{
						AccountNumber: account1.AccountNumber,
						UserID:        user1.ID,
						Balance:       "900",
						CreatedAt:     account1.CreatedAt,
					},
					ToAccount: domain.Account{
						AccountNumber: account2.AccountNumber,
						UserID:        user2.ID,
						Balance:       "1100",
						CreatedAt:     account2.CreatedAt,
					},
					FromTransaction: domain.Transaction{
						AccountNumber: account1.AccountNumber,
						Type:          domain.TransactionTransfer,
						Amount:        "-" + amount,
						Counterparty:  account2.AccountNumber,
						CreatedAt:     time.Now().UTC().Truncate(time.Second),
					},
					ToTransaction: domain.Transaction{
						AccountNumber: account2.AccountNumber,
						Type:          domain.TransactionTransfer,
						Amount:        amount,
						Counterparty:  account1.AccountNumber,
						CreatedAt:     time.Now().UTC().Truncate(time.Second),
					},
				}

				ignoreTransactionID := cmpopts.IgnoreFields(domain.Transaction{}, "ID")
				compareCreatedAt := cmpopts.EquateApproxTime(time.Second)

				if diff := cmp.Diff(want, got.Transfer, ignoreTransactionID, compareCreatedAt); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "RequiredToAccount",
			requestBody: requestBody{
				FromAccount: account1.AccountNumber,
				ToAccount:   "",
				Amount:      amount,
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, user1.Username, duration)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "ToAccount is required",
		},
		{
			name: "SameAccount",
			requestBody: requestBody{
				FromAccount: account1.AccountNumber,
				ToAccount:   account1.AccountNumber,
				Amount:      amount,
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, user1.Username, duration)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrSameAccountTransfer.Error(),
		},
		{
			name: "InsufficientBalance",
			requestBody: requestBody{
				FromAccount: account1.AccountNumber,
				ToAccount:   account2.AccountNumber,
				Amount:      "100000",
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, user1.Username, duration)
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      domain.ErrInsufficientBalance.Error(),
		},
		{
			name: "NoAuthorization",
			requestBody: requestBody{
				FromAccount: account1.AccountNumber,
				ToAccount:   account2.AccountNumber,
				Amount:      amount,
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return nil
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      middleware.ErrAuthHeaderNotFound.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/api/transactions/transfer", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			if err = tc.setupAuth(t, req); err != nil {
				t.Fatalf("tc.setupAuth(t, %+v) returned error: %v", req, err)
			}

			w := httptest.NewRecorder()
			server.ServeHTTP(w, req)

			if got := w.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{
				Data: &struct {
					Transfer domain.TransferTxResult `json:"transfer"`
				}{},
			}

			if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
				t.Errorf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf("res.Error = %q, want %q", res.Error, tc.wantError)
				}
			} else {
				tc.checkData(tc.requestBody, res.Data)
			}
		})
	}
}
