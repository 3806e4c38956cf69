// Package cli implements the command-line interface.
package cli

import (
	"errors"

	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	ErrConfigInvalid = "CONFIG_INVALID"

	// Organ errors
	ErrOrganInvalid  = "ORGAN_INVALID"
	ErrOrganNotFound = "ORGAN_NOT_FOUND"

	// File errors
	ErrFileNotFound   = "FILE_NOT_FOUND"
	ErrFileExists     = "FILE_EXISTS"
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Database errors
	ErrDatabaseError   = "DATABASE_ERROR"
	ErrDatabaseVersion = "DATABASE_VERSION_MISMATCH"

	// Validation errors
	ErrValidationFailed = "VALIDATION_FAILED"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrCancelled = "CANCELLED"
	ErrInternal  = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnMalformedSection  = "MALFORMED_SECTION"
	WarnDanglingReference = "DANGLING_REFERENCE"
	WarnStructural        = "STRUCTURAL_WARNING"
	WarnSkipped           = "SKIPPED"
)

// errReported marks an error whose output has already been written, so
// Execute only has to set the exit status.
var errReported = errors.New("error already reported")

// faultCode maps the kind tag of an engine error to an error code.
func faultCode(err error) string {
	switch ftag.Get(err) {
	case ftag.NotFound:
		return ErrFileNotFound
	case ftag.InvalidArgument:
		return ErrOrganInvalid
	case ftag.Cancelled:
		return ErrCancelled
	}
	return ErrInternal
}

// handleFault reports an engine error. The user-facing issue attached with
// fmsg becomes the suggestion.
func handleFault(err error) error {
	return handleError(faultCode(err), err, fmsg.GetIssue(err))
}
