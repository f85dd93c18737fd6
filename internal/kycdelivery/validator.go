package kycdelivery

import (
	"github.com/go-playground/validator/v10"

	"github.com/clearledger/bank-office/internal/domain"
)

// ValidDocumentType implements the "doctype" binding rule.
var ValidDocumentType validator.Func = func(fl validator.FieldLevel) bool {
	if documentType, ok := fl.Field().Interface().(string); ok {
		return domain.IsSupportedDocumentType(documentType)
	}

	return false
}
