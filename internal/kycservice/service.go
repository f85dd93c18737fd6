// Package kycservice manages business logic layer of KYC verification.
package kycservice

import (
	"context"

	"github.com/clearledger/bank-office/internal/domain"
)

// Repo provides data access layer interface needed by KYC service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package kycservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateKYCParams) (domain.KYCRecord, error)
	Decide(ctx context.Context, id int64, status domain.KYCStatus) (domain.KYCRecord, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.KYCRecord, error)
}

// Service facilitates KYC service layer logic.
type Service struct {
	repo Repo
}

// New returns KYC service struct to manage the verification workflow.
func New(kr Repo) *Service {
	return &Service{
		repo: kr,
	}
}

// Submit creates a new PENDING record for the user.
//
// A prior terminal record is left untouched; submission history is
// retained and resubmission after rejection is allowed.
func (s *Service) Submit(ctx context.Context, arg domain.CreateKYCParams) (domain.KYCRecord, error) {
	if !domain.IsSupportedDocumentType(arg.DocumentType) {
		return domain.KYCRecord{}, domain.ErrInvalidDocumentType
	}

	if arg.DocumentNumber == "" || arg.Address == "" {
		return domain.KYCRecord{}, domain.ErrMissingDocumentData
	}

	return s.repo.Create(ctx, arg)
}

// Verify moves a PENDING record to VERIFIED or REJECTED.
//
// The transition is one-shot; a second call on the same record fails
// with ErrKYCAlreadyDecided and leaves the status unchanged.
func (s *Service) Verify(ctx context.Context, kycID int64, approved bool) (domain.KYCRecord, error) {
	status := domain.KYCRejected
	if approved {
		status = domain.KYCVerified
	}

	return s.repo.Decide(ctx, kycID, status)
}

// GetByUser returns all the user's records, most recent first.
func (s *Service) GetByUser(ctx context.Context, userID int64) ([]domain.KYCRecord, error) {
	return s.repo.ListForUser(ctx, userID)
}
