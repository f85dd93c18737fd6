// Package web defines common components for a web application.
package web

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// JSONError provides type for explicit json encoded error response.
type JSONError struct {
	Error string `json:"error"`
}

// Error wraps a given err into json friendly struct.
func Error(err error) JSONError {
	return JSONError{Error: err.Error()}
}

// Response holds the common response type for all APIs.
type Response struct {
	AccessToken          string `json:"accessToken,omitempty"`
	AccessTokenExpiresAt string `json:"accessTokenExpiresAt,omitempty"`
	Data                 any    `json:"data,omitempty"`
	Error                string `json:"error,omitempty"`
}

// GetErrorMsg returns a readable message for the first failed
// validation rule.
func GetErrorMsg(ve validator.ValidationErrors) JSONError {
	field := ve[0]

	var msg string

	switch field.Tag() {
	case "required":
		msg = " is required"
	case "email":
		msg = " must be a valid email address"
	case "alphanum":
		msg = " must contain only letters and numbers"
	case "min":
		msg = " must be at least " + field.Param()
	case "max":
		msg = " must be at most " + field.Param()
	case "oneof":
		msg = " must be one of: " + field.Param()
	case "doctype":
		msg = " must be a supported document type"
	default:
		msg = fmt.Sprintf(" failed on rule %q", field.Tag())
	}

	return JSONError{Error: field.Field() + msg}
}
