package statementdelivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"

	"github.com/clearledger/bank-office/internal/domain"
	"github.com/clearledger/bank-office/internal/middleware"
	"github.com/clearledger/bank-office/pkg/randompkg"
	"github.com/clearledger/bank-office/pkg/tokenpkg"
	"github.com/clearledger/bank-office/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupRouter(t *testing.T, handler *Handler) (*gin.Engine, tokenpkg.Maker) {
	t.Helper()

	tokenSymmetricKey := randompkg.String(32)

	tokenMaker, err := tokenpkg.NewPasetoMaker(tokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", tokenSymmetricKey, err)
	}

	server := gin.New()
	server.Use(middleware.AuthMiddleware(tokenMaker))
	server.GET("/accounts/:accountNumber/statement/pdf", handler.GetPDF)

	return server, tokenMaker
}

func TestGetPDF(t *testing.T) {
	accountNumber := randompkg.AccountNumber()
	username := randompkg.Username()
	duration := time.Minute

	fromDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	toDate := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	statement := domain.Statement{
		AccountNumber:  accountNumber,
		UserID:         randompkg.Intn(1000) + 1,
		FromDate:       &fromDate,
		ToDate:         &toDate,
		OpeningBalance: "100",
		ClosingBalance: "175.5",
		GeneratedAt:    time.Now(),
	}

	document := []byte("%PDF-1.4 test document")

	testCases := []struct {
		name           string
		query          string
		buildStubs     func(statementService *MockService, renderer *MockRenderer)
		wantStatusCode int
		wantError      string
	}{
		{
			name:  "OK",
			query: "?fromDate=2024-03-01&toDate=2024-03-31",
			buildStubs: func(statementService *MockService, renderer *MockRenderer) {
				statementService.EXPECT().
					Generate(gomock.Any(), gomock.Eq(accountNumber), gomock.Eq(&fromDate), gomock.Eq(&toDate)).
					Times(1).
					Return(statement, nil)

				renderer.EXPECT().
					Render(gomock.Eq(statement)).
					Times(1).
					Return(document, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:  "InvalidDate",
			query: "?fromDate=01.03.2024",
			buildStubs: func(statementService *MockService, renderer *MockRenderer) {
				statementService.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				renderer.EXPECT().Render(gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrInvalidDate.Error(),
		},
		{
			name:  "ErrInvalidDateRange",
			query: "?fromDate=2024-03-31&toDate=2024-03-01",
			buildStubs: func(statementService *MockService, renderer *MockRenderer) {
				statementService.EXPECT().
					Generate(gomock.Any(), gomock.Eq(accountNumber), gomock.Eq(&toDate), gomock.Eq(&fromDate)).
					Times(1).
					Return(domain.Statement{}, domain.ErrInvalidDateRange)

				renderer.EXPECT().Render(gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrInvalidDateRange.Error(),
		},
		{
			name:  "ErrAccountNotFound",
			query: "",
			buildStubs: func(statementService *MockService, renderer *MockRenderer) {
				statementService.EXPECT().
					Generate(gomock.Any(), gomock.Eq(accountNumber), gomock.Nil(), gomock.Nil()).
					Times(1).
					Return(domain.Statement{}, domain.ErrAccountNotFound)

				renderer.EXPECT().Render(gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrAccountNotFound.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			statementService := NewMockService(ctrl)
			renderer := NewMockRenderer(ctrl)
			handler := NewHandler(statementService, renderer)
			server, tokenMaker := setupRouter(t, handler)

			tc.buildStubs(statementService, renderer)

			url := fmt.Sprintf("/accounts/%s/statement/pdf%s", accountNumber, tc.query)

			req, err := http.NewRequest(http.MethodGet, url, nil)
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			if err := middleware.AddAuthorization(req, tokenMaker, middleware.AuthTypeBearer, username, duration); err != nil {
				t.Fatalf("middleware.AddAuthorization() returned error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			if tc.wantStatusCode != http.StatusOK {
				var res web.Response

				if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
					t.Errorf("Decoding response body error: %v", err)
				}

				if res.Error != tc.wantError {
					t.Errorf("res.Error = %q, want %q", res.Error, tc.wantError)
				}

				return
			}

			if got := recorder.Header().Get("Content-Type"); got != "application/pdf" {
				t.Errorf("Content-Type = %q, want %q", got, "application/pdf")
			}

			wantDisposition := fmt.Sprintf("attachment; filename=%q", "statement-"+accountNumber+".pdf")
			if got := recorder.Header().Get("Content-Disposition"); got != wantDisposition {
				t.Errorf("Content-Disposition = %q, want %q", got, wantDisposition)
			}

			if !bytes.Equal(recorder.Body.Bytes(), document) {
				t.Error("response body does not match the rendered document")
			}
		})
	}
}
