// Package userservice manages business logic layer of users.
package userservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/clearledger/bank-office/internal/domain"
	"github.com/clearledger/bank-office/pkg/passpkg"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	Get(ctx context.Context, id int64) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	List(ctx context.Context, limit, offset int32) ([]domain.User, error)
}

// TransactionRepo provides the transaction listing interface needed by
// the user service layer.
type TransactionRepo interface {
	ListForUser(ctx context.Context, userID int64, arg domain.ListTransactionsParams) ([]domain.Transaction, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo   Repo
	txRepo TransactionRepo
}

// New returns user service struct to manage user business logic.
func New(ur Repo, tr TransactionRepo) *Service {
	return &Service{
		repo:   ur,
		txRepo: tr,
	}
}

// Create registers and returns a user.
//
// The credential arrives already hashed; the registry never sees the
// clear-text password.
func (s *Service) Create(ctx context.Context, username, hashedPassword, email string) (domain.User, error) {
	arg := domain.CreateUserParams{
		Username:       username,
		HashedPassword: hashedPassword,
		Email:          email,
	}

	user, err := s.repo.Create(ctx, arg)
	if err != nil {
		return user, err
	}

	return user, nil
}

// Get returns the user with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.User, error) {
	return s.repo.Get(ctx, id)
}

// List returns one page of users.
func (s *Service) List(ctx context.Context, size, page int32) ([]domain.User, error) {
	if size < 0 || page < 0 {
		return nil, domain.ErrInvalidPagination
	}

	return s.repo.List(ctx, size, page*size)
}

// CheckPassword checks if the password is valid for the given username.
func (s *Service) CheckPassword(ctx context.Context, username, password string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return domain.User{}, err
	}

	if err := passpkg.Check(password, user.HashedPassword); err != nil {
		l.Warn().Err(err).Send()
		return domain.User{}, domain.ErrWrongPassword
	}

	return user, nil
}

// ListTransactions returns one page of transactions across all the
// user's accounts.
func (s *Service) ListTransactions(ctx context.Context, userID int64, arg domain.ListTransactionsParams) ([]domain.Transaction, error) {
	if err := arg.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.Get(ctx, userID); err != nil {
		return nil, err
	}

	return s.txRepo.ListForUser(ctx, userID, arg)
}
