package domain

import (
	"errors"
	"time"
)

var (
	// ErrKYCNotFound indicates that the KYC record is not found.
	ErrKYCNotFound = errors.New("kyc record not found")
	// ErrKYCAlreadyDecided indicates a verification attempt on a terminal record.
	ErrKYCAlreadyDecided = errors.New("kyc record already decided")
	// ErrInvalidDocumentType indicates an unsupported document type.
	ErrInvalidDocumentType = errors.New("unsupported document type")
	// ErrMissingDocumentData indicates an empty document number or address.
	ErrMissingDocumentData = errors.New("document number and address are required")
)

// KYCStatus enumerates the verification states of a KYC record.
type KYCStatus string

// KYC lifecycle states. VERIFIED and REJECTED are terminal.
const (
	KYCPending  KYCStatus = "PENDING"
	KYCVerified KYCStatus = "VERIFIED"
	KYCRejected KYCStatus = "REJECTED"
)

// Supported identity document types.
const (
	DocumentPassport       = "PASSPORT"
	DocumentDriversLicense = "DRIVERS_LICENSE"
	DocumentNationalID     = "NATIONAL_ID"
)

// SupportedDocumentTypes holds all accepted document types.
var SupportedDocumentTypes = []string{
	DocumentPassport,
	DocumentDriversLicense,
	DocumentNationalID,
}

// IsSupportedDocumentType returns true if the document type is accepted.
func IsSupportedDocumentType(documentType string) bool {
	for _, dt := range SupportedDocumentTypes {
		if dt == documentType {
			return true
		}
	}

	return false
}

// KYCRecord holds a single identity verification submission.
//
// A record starts PENDING and moves exactly once to VERIFIED or
// REJECTED. A new submission creates a new record; it never reopens a
// terminal one.
type KYCRecord struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	DocumentType   string    `json:"documentType"`
	DocumentNumber string    `json:"documentNumber"`
	Address        string    `json:"address"`
	Status         KYCStatus `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CreateKYCParams is the input data for a KYC submission.
type CreateKYCParams struct {
	UserID         int64
	DocumentType   string
	DocumentNumber string
	Address        string
}
