// Package kycrepo manages repository layer of KYC records.
package kycrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/clearledger/bank-office/internal/domain"
	"github.com/clearledger/bank-office/pkg/dbpkg"
	"github.com/clearledger/bank-office/pkg/errorspkg"
)

// RepoPGS facilitates KYC repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns KYC RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    kyc_records (user_id, document_type, document_number, address, status)
VALUES
    ($1, $2, $3, $4, 'PENDING')
RETURNING id, user_id, document_type, document_number, address, status, created_at
`

// Create creates a PENDING record and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateKYCParams) (domain.KYCRecord, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.UserID,
		arg.DocumentType,
		arg.DocumentNumber,
		arg.Address,
	)

	var k domain.KYCRecord

	err := row.Scan(
		&k.ID,
		&k.UserID,
		&k.DocumentType,
		&k.DocumentNumber,
		&k.Address,
		&k.Status,
		&k.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "kyc_records_user_id_fkey":
				return k, domain.ErrUserNotFound
			case "kyc_records_document_type_check":
				return k, domain.ErrInvalidDocumentType
			}
		}

		if dbpkg.IsUnavailable(err) {
			return k, errorspkg.ErrUnavailable
		}

		return k, errorspkg.ErrInternal
	}

	return k, nil
}

const getQuery = `
SELECT
	id, user_id, document_type, document_number, address, status, created_at
FROM kyc_records
WHERE id = $1
`

// Get returns the record with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.KYCRecord, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var k domain.KYCRecord

	err := row.Scan(
		&k.ID,
		&k.UserID,
		&k.DocumentType,
		&k.DocumentNumber,
		&k.Address,
		&k.Status,
		&k.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return k, domain.ErrKYCNotFound
		}

		if dbpkg.IsUnavailable(err) {
			return k, errorspkg.ErrUnavailable
		}

		return k, errorspkg.ErrInternal
	}

	return k, nil
}

const decideQuery = `
UPDATE kyc_records
SET status = $2
WHERE id = $1 AND status = 'PENDING'
RETURNING id, user_id, document_type, document_number, address, status, created_at
`

// Decide moves a PENDING record to the given terminal status.
//
// The status guard in the query makes the transition one-shot: of two
// racing calls exactly one updates the row, the other gets
// ErrKYCAlreadyDecided.
func (r *RepoPGS) Decide(ctx context.Context, id int64, status domain.KYCStatus) (domain.KYCRecord, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, decideQuery, id, status)

	var k domain.KYCRecord

	err := row.Scan(
		&k.ID,
		&k.UserID,
		&k.DocumentType,
		&k.DocumentNumber,
		&k.Address,
		&k.Status,
		&k.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			// Either the record does not exist or it is already terminal.
			if _, getErr := r.Get(ctx, id); getErr != nil {
				return k, getErr
			}

			return k, domain.ErrKYCAlreadyDecided
		}

		if dbpkg.IsUnavailable(err) {
			return k, errorspkg.ErrUnavailable
		}

		return k, errorspkg.ErrInternal
	}

	return k, nil
}

const listForUserQuery = `
SELECT
	id, user_id, document_type, document_number, address, status, created_at
FROM kyc_records
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
`

// ListForUser returns all the user's records, most recent first.
func (r *RepoPGS) ListForUser(ctx context.Context, userID int64) ([]domain.KYCRecord, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listForUserQuery, userID)
	if err != nil {
		l.Error().Err(err).Send()

		if dbpkg.IsUnavailable(err) {
			return nil, errorspkg.ErrUnavailable
		}

		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.KYCRecord{}

	for rows.Next() {
		var k domain.KYCRecord
		if err := rows.Scan(&k.ID, &k.UserID, &k.DocumentType, &k.DocumentNumber, &k.Address, &k.Status, &k.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, k)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
