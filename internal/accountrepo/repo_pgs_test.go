package accountrepo

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/clearledger/bank-office/internal/domain"
	"github.com/clearledger/bank-office/internal/userrepo"
	"github.com/clearledger/bank-office/pkg/configpkg"
	"github.com/clearledger/bank-office/pkg/passpkg"
	"github.com/clearledger/bank-office/pkg/randompkg"
)

var (
	testRepo     *RepoPGS
	testUserRepo *userrepo.RepoPGS
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	testDB, err := sql.Open(config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal("cannot connect to db:", err)
	}

	testRepo = NewRepoPGS(testDB)
	testUserRepo = userrepo.NewRepoPGS(testDB)

	os.Exit(m.Run())
}

func createRandomUser(t *testing.T) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	require.NoError(t, err)

	arg := domain.CreateUserParams{
		Username:       randompkg.Username(),
		HashedPassword: hashedPassword,
		Email:          randompkg.Email(),
	}

	user, err := testUserRepo.Create(context.Background(), arg)
	require.NoError(t, err)
	require.NotEmpty(t, user)

	return user
}

func createRandomAccount(t *testing.T, user domain.User) domain.Account {
	t.Helper()

	accountNumber := randompkg.AccountNumber()

	account, err := testRepo.Create(context.Background(), accountNumber, user.ID, "0")
	require.NoError(t, err)
	require.NotEmpty(t, account)

	require.Equal(t, accountNumber, account.AccountNumber)
	require.Equal(t, user.ID, account.UserID)
	require.Equal(t, "0", account.Balance)
	require.NotZero(t, account.CreatedAt)

	return account
}

func TestCreate(t *testing.T) {
	user := createRandomUser(t)
	createRandomAccount(t, user)
}

func TestCreateConstraintViolations(t *testing.T) {
	user := createRandomUser(t)
	account := createRandomAccount(t, user)

	testCases := []struct {
		name          string
		accountNumber string
		userID        int64
		wantError     error
	}{
		{
			name:          "ErrUserNotFound",
			accountNumber: randompkg.AccountNumber(),
			userID:        -1,
			wantError:     domain.ErrUserNotFound,
		},
		{
			name:          "ErrAccountAlreadyExists",
			accountNumber: account.AccountNumber,
			userID:        user.ID,
			wantError:     domain.ErrAccountAlreadyExists,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			_, err := testRepo.Create(context.Background(), tc.accountNumber, tc.userID, "0")
			require.ErrorIs(t, err, tc.wantError)
		})
	}
}

func TestGet(t *testing.T) {
	user := createRandomUser(t)
	account := createRandomAccount(t, user)

	got, err := testRepo.Get(context.Background(), account.AccountNumber)
	require.NoError(t, err)
	require.Equal(t, account, got)

	_, err = testRepo.Get(context.Background(), "ACC000000")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAddBalance(t *testing.T) {
	user := createRandomUser(t)
	account := createRandomAccount(t, user)

	credited, err := testRepo.AddBalance(context.Background(), "100.50", account.AccountNumber)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString(credited.Balance).Equal(decimal.RequireFromString("100.50")))

	debited, err := testRepo.AddBalance(context.Background(), "-40", account.AccountNumber)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString(debited.Balance).Equal(decimal.RequireFromString("60.50")))

	_, err = testRepo.AddBalance(context.Background(), "-1000", account.AccountNumber)
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	_, err = testRepo.AddBalance(context.Background(), "10", "ACC000000")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}
