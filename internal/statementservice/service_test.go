package statementservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/clearledger/bank-office/internal/accountdelivery"
	"github.com/clearledger/bank-office/internal/domain"
	"github.com/clearledger/bank-office/pkg/randompkg"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	account := domain.Account{
		AccountNumber: randompkg.AccountNumber(),
		UserID:        randompkg.Intn(1000) + 1,
		Balance:       "175.5",
		CreatedAt:     time.Now(),
	}

	fromDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	toDate := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	transactions := []domain.Transaction{
		{
			ID:            1,
			AccountNumber: account.AccountNumber,
			Type:          domain.TransactionDeposit,
			Amount:        "100",
			CreatedAt:     fromDate.Add(24 * time.Hour),
		},
		{
			ID:            2,
			AccountNumber: account.AccountNumber,
			Type:          domain.TransactionWithdrawal,
			Amount:        "-24.5",
			CreatedAt:     fromDate.Add(48 * time.Hour),
		},
	}

	testCases := []struct {
		name       string
		fromDate   *time.Time
		toDate     *time.Time
		buildStubs func(repo *MockRepo, accountService *accountdelivery.MockService)
		want       domain.Statement
		wantError  error
	}{
		{
			name:     "OK",
			fromDate: &fromDate,
			toDate:   &toDate,
			buildStubs: func(repo *MockRepo, accountService *accountdelivery.MockService) {
				accountService.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.AccountNumber)).
					Times(1).
					Return(account, nil)

				repo.EXPECT().
					SumBefore(gomock.Any(), gomock.Eq(account.AccountNumber), gomock.Eq(&fromDate)).
					Times(1).
					Return("100", nil)

				repo.EXPECT().
					ListRangeForAccount(gomock.Any(), gomock.Eq(account.AccountNumber), gomock.Eq(&fromDate), gomock.Eq(&toDate)).
					Times(1).
					Return(transactions, nil)
			},
			want: domain.Statement{
				AccountNumber:  account.AccountNumber,
				UserID:         account.UserID,
				FromDate:       &fromDate,
				ToDate:         &toDate,
				OpeningBalance: "100",
				ClosingBalance: "175.5",
				Transactions:   transactions,
			},
		},
		{
			name:     "NoDateFilters",
			fromDate: nil,
			toDate:   nil,
			buildStubs: func(repo *MockRepo, accountService *accountdelivery.MockService) {
				accountService.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.AccountNumber)).
					Times(1).
					Return(account, nil)

				repo.EXPECT().
					SumBefore(gomock.Any(), gomock.Eq(account.AccountNumber), gomock.Nil()).
					Times(1).
					Return("0", nil)

				repo.EXPECT().
					ListRangeForAccount(gomock.Any(), gomock.Eq(account.AccountNumber), gomock.Nil(), gomock.Nil()).
					Times(1).
					Return(transactions, nil)
			},
			want: domain.Statement{
				AccountNumber:  account.AccountNumber,
				UserID:         account.UserID,
				OpeningBalance: "0",
				ClosingBalance: "75.5",
				Transactions:   transactions,
			},
		},
		{
			name:     "ErrInvalidDateRange",
			fromDate: &toDate,
			toDate:   &fromDate,
			buildStubs: func(repo *MockRepo, accountService *accountdelivery.MockService) {
				accountService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().SumBefore(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrInvalidDateRange,
		},
		{
			name:     "ErrAccountNotFound",
			fromDate: &fromDate,
			toDate:   &toDate,
			buildStubs: func(repo *MockRepo, accountService *accountdelivery.MockService) {
				accountService.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.AccountNumber)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)

				repo.EXPECT().SumBefore(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
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

			repo := NewMockRepo(ctrl)
			accountService := accountdelivery.NewMockService(ctrl)
			statementService := New(repo, accountService)

			tc.buildStubs(repo, accountService)

			got, err := statementService.Generate(context.Background(), account.AccountNumber, tc.fromDate, tc.toDate)
			if err != tc.wantError {
				t.Fatalf("statementService.Generate() got error %v, want %v", err, tc.wantError)
			}

			if tc.wantError != nil {
				return
			}

			ignoreGeneratedAt := cmpopts.IgnoreFields(domain.Statement{}, "GeneratedAt")
			if diff := cmp.Diff(tc.want, got, ignoreGeneratedAt); diff != "" {
				t.Errorf("statementService.Generate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
