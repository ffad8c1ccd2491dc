// Package errors implements structured, chainable errors for the
// autocompletion index and its bulk-load CLI. A generic "something went
// wrong" is not enough to operate this system: a validation error needs to
// know which field and rule were violated, an index error needs to know
// which key and operation were involved, and an ingest error needs to know
// which source file and line caused the problem.
//
// The system is built around a baseError that every domain-specific error
// type embeds, so all error types share chaining (via Unwrap), an
// ErrorCode for programmatic handling, and a details map for structured
// logging, while each domain adds its own fluent With* methods on top.
package errors

import (
	stdErrors "errors"
	"os"
)

// IsValidationError checks if the given error is a ValidationError or contains one in its error chain.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return stdErrors.As(err, &ve)
}

// IsIngestError determines if an error occurred while reading a bulk-load
// source file.
func IsIngestError(err error) bool {
	var ie *IngestError
	return stdErrors.As(err, &ie)
}

// IsIndexError identifies errors that occurred during index operations such
// as upsert, remove, or search.
func IsIndexError(err error) bool {
	var ie *IndexError
	return stdErrors.As(err, &ie)
}

// AsValidationError safely extracts a ValidationError from an error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stdErrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsIngestError extracts IngestError context from an error chain, providing
// access to the source path and line number involved.
func AsIngestError(err error) (*IngestError, bool) {
	var ie *IngestError
	if stdErrors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// AsIndexError extracts IndexError context from an error chain, providing
// access to the key and operation involved.
func AsIndexError(err error) (*IndexError, bool) {
	var ie *IndexError
	if stdErrors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from any error that supports it, or
// returns ErrorCodeInternal for errors that don't have specific codes.
func GetErrorCode(err error) ErrorCode {
	if ve, ok := AsValidationError(err); ok {
		return ve.Code()
	}
	if ie, ok := AsIngestError(err); ok {
		return ie.Code()
	}
	if ie, ok := AsIndexError(err); ok {
		return ie.Code()
	}
	return ErrorCodeInternal
}

// GetErrorDetails extracts structured details from any error that supports
// them, returning an empty map for errors without details.
func GetErrorDetails(err error) map[string]any {
	if ve, ok := AsValidationError(err); ok {
		if details := ve.Details(); details != nil {
			return details
		}
	}
	if ie, ok := AsIngestError(err); ok {
		if details := ie.Details(); details != nil {
			return details
		}
	}
	if ie, ok := AsIndexError(err); ok {
		if details := ie.Details(); details != nil {
			return details
		}
	}
	return make(map[string]any)
}

// ClassifyFileOpenError analyzes a bulk-load source file open failure and
// returns an IngestError with the right code attached.
func ClassifyFileOpenError(err error, path string) error {
	if os.IsPermission(err) {
		return NewIngestError(
			err, ErrorCodePermissionDenied, "insufficient permissions to read source file",
		).WithPath(path)
	}
	if os.IsNotExist(err) {
		return NewIngestError(
			err, ErrorCodeIngestUnreadableFile, "source file does not exist",
		).WithPath(path)
	}
	return NewIngestError(
		err, ErrorCodeIngestUnreadableFile, "failed to open source file",
	).WithPath(path)
}
