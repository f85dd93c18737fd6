package accountservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"

	"github.com/clearledger/bank-office/internal/domain"
	"github.com/clearledger/bank-office/pkg/errorspkg"
	"github.com/clearledger/bank-office/pkg/randompkg"
)

func randomAccount(userID int64) domain.Account {
	return domain.Account{
		AccountNumber: randompkg.AccountNumber(),
		UserID:        userID,
		Balance:       randompkg.MoneyAmountBetween(100, 1_000),
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	}
}

func TestCreate(t *testing.T) {
	t.Parallel()

	userID := randompkg.Intn(1000) + 1
	account := randomAccount(userID)
	account.Balance = "0"

	testCases := []struct {
		name       string
		buildStubs func(accountRepo *MockRepo)
		wantError  error
	}{
		{
			name: "OK",
			buildStubs: func(accountRepo *MockRepo) {
				accountRepo.EXPECT().
					Create(gomock.Any(), gomock.Eq(account.AccountNumber), gomock.Eq(userID), gomock.Eq("0")).
					Times(1).
					Return(account, nil)
			},
		},
		{
			name: "ErrUserNotFound",
			buildStubs: func(accountRepo *MockRepo) {
				accountRepo.EXPECT().
					Create(gomock.Any(), gomock.Eq(account.AccountNumber), gomock.Eq(userID), gomock.Eq("0")).
					Times(1).
					Return(domain.Account{}, domain.ErrUserNotFound)
			},
			wantError: domain.ErrUserNotFound,
		},
		{
			name: "ErrAccountAlreadyExists",
			buildStubs: func(accountRepo *MockRepo) {
				accountRepo.EXPECT().
					Create(gomock.Any(), gomock.Eq(account.AccountNumber), gomock.Eq(userID), gomock.Eq("0")).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountAlreadyExists)
			},
			wantError: domain.ErrAccountAlreadyExists,
		},
		{
			name: "ErrInternal",
			buildStubs: func(accountRepo *MockRepo) {
				accountRepo.EXPECT().
					Create(gomock.Any(), gomock.Eq(account.AccountNumber), gomock.Eq(userID), gomock.Eq("0")).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
			},
			wantError: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			accountRepo := NewMockRepo(ctrl)
			txRepo := NewMockTransactionRepo(ctrl)
			accountService := New(accountRepo, txRepo)

			tc.buildStubs(accountRepo)

			got, err := accountService.Create(context.Background(), userID, account.AccountNumber)
			if err != tc.wantError {
				t.Fatalf("accountService.Create() got error %v, want %v", err, tc.wantError)
			}

			if tc.wantError != nil {
				return
			}

			if !cmp.Equal(got, account) {
				t.Errorf("accountService.Create() = %+v, want %+v", got, account)
			}
		})
	}
}

func TestGetBalance(t *testing.T) {
	t.Parallel()

	account := randomAccount(randompkg.Intn(1000) + 1)

	testCases := []struct {
		name       string
		buildStubs func(accountRepo *MockRepo)
		wantError  error
	}{
		{
			name: "OK",
			buildStubs: func(accountRepo *MockRepo) {
				accountRepo.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.AccountNumber)).
					Times(1).
					Return(account, nil)
			},
		},
		{
			name: "ErrAccountNotFound",
			buildStubs: func(accountRepo *MockRepo) {
				accountRepo.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.AccountNumber)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			wantError: domain.ErrAccountNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			accountRepo := NewMockRepo(ctrl)
			txRepo := NewMockTransactionRepo(ctrl)
			accountService := New(accountRepo, txRepo)

			tc.buildStubs(accountRepo)

			got, err := accountService.GetBalance(context.Background(), account.AccountNumber)
			if err != tc.wantError {
				t.Fatalf("accountService.GetBalance() got error %v, want %v", err, tc.wantError)
			}

			if tc.wantError != nil {
				return
			}

			if got != account.Balance {
				t.Errorf("accountService.GetBalance() = %v, want %v", got, account.Balance)
			}
		})
	}
}

func TestListTransactions(t *testing.T) {
	t.Parallel()

	account := randomAccount(randompkg.Intn(1000) + 1)

	transactions := []domain.Transaction{
		{
			ID:            1,
			AccountNumber: account.AccountNumber,
			Type:          domain.TransactionDeposit,
			Amount:        randompkg.MoneyAmountBetween(10, 100),
			CreatedAt:     time.Now(),
		},
		{
			ID:            2,
			AccountNumber: account.AccountNumber,
			Type:          domain.TransactionWithdrawal,
			Amount:        "-5",
			CreatedAt:     time.Now(),
		},
	}

	validArg := domain.ListTransactionsParams{Page: 0, Size: 20}

	testCases := []struct {
		name       string
		arg        domain.ListTransactionsParams
		buildStubs func(accountRepo *MockRepo, txRepo *MockTransactionRepo)
		wantError  error
	}{
		{
			name: "OK",
			arg:  validArg,
			buildStubs: func(accountRepo *MockRepo, txRepo *MockTransactionRepo) {
				accountRepo.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.AccountNumber)).
					Times(1).
					Return(account, nil)

				txRepo.EXPECT().
					ListForAccount(gomock.Any(), gomock.Eq(account.AccountNumber), gomock.Eq(validArg)).
					Times(1).
					Return(transactions, nil)
			},
		},
		{
			name: "ErrInvalidPagination",
			arg:  domain.ListTransactionsParams{Page: -1},
			buildStubs: func(accountRepo *MockRepo, txRepo *MockTransactionRepo) {
				accountRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				txRepo.EXPECT().ListForAccount(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrInvalidPagination,
		},
		{
			name: "ErrAccountNotFound",
			arg:  validArg,
			buildStubs: func(accountRepo *MockRepo, txRepo *MockTransactionRepo) {
				accountRepo.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.AccountNumber)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)

				txRepo.EXPECT().ListForAccount(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrAccountNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			accountRepo := NewMockRepo(ctrl)
			txRepo := NewMockTransactionRepo(ctrl)
			accountService := New(accountRepo, txRepo)

			tc.buildStubs(accountRepo, txRepo)

			got, err := accountService.ListTransactions(context.Background(), account.AccountNumber, tc.arg)
			if err != tc.wantError {
				t.Fatalf("accountService.ListTransactions() got error %v, want %v", err, tc.wantError)
			}

			if tc.wantError != nil {
				return
			}

			if !cmp.Equal(got, transactions) {
				t.Errorf("accountService.ListTransactions() = %+v, want %+v", got, transactions)
			}
		})
	}
}
