package errors

// ErrorCode represents a standardized way to categorize different types of errors.
type ErrorCode string

// Base error codes represent the fundamental categories of failures that can
// occur across any software system. These codes provide the foundation layer
// of error classification.
const (
	// ErrorCodeIO represents failures in input/output operations across any
	// system boundary, such as reading a bulk-load file from disk.
	ErrorCodeIO ErrorCode = "IO_ERROR"

	// ErrorCodeInvalidInput represents client-side errors where the provided
	// data doesn't meet the system's requirements or constraints. This maps
	// to HTTP 400-series errors and indicates problems with the request itself
	// rather than system failures.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrorCodeInternal represents unexpected system failures that don't fit
	// into other categories. These are the equivalent of HTTP 500 errors and
	// indicate bugs, assertion failures, or other programming errors that
	// shouldn't occur during normal operation.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Ingest-specific error codes cover the bulk-load path: reading a newline
// delimited file of (string, score) pairs from disk and feeding each line
// into the index. There is no write path, so these codes are narrower than
// a full storage taxonomy would need.
const (
	// ErrorCodePermissionDenied indicates insufficient permissions to read
	// the source file. The resolution path is specific: the user needs to
	// adjust file permissions or run with elevated privileges.
	ErrorCodePermissionDenied ErrorCode = "PERMISSION_DENIED"

	// ErrorCodeIngestUnreadableFile indicates the bulk-load source could not
	// be opened or read at all (missing, a directory, or an I/O failure
	// partway through).
	ErrorCodeIngestUnreadableFile ErrorCode = "INGEST_UNREADABLE_FILE"

	// ErrorCodeIngestMalformedLine indicates one line of the bulk-load
	// source did not parse as "<score>\t<string>". The line is skipped; the
	// error is reported but does not abort the ingest.
	ErrorCodeIngestMalformedLine ErrorCode = "INGEST_MALFORMED_LINE"
)

// Index-specific error codes address the specialized needs of operating on
// the in-memory autocompletion index: missing keys, invalid upsert modes,
// use-after-close, and internal structural invariant violations.
const (
	// ErrorCodeIndexKeyNotFound indicates a Remove (or an update's implicit
	// remove-then-reinsert) found no matching entry for the given suffix.
	ErrorCodeIndexKeyNotFound ErrorCode = "INDEX_KEY_NOT_FOUND"

	// ErrorCodeIndexInvalidMode indicates an upsert or remove call reached a
	// dline.Mode that is not one of the defined modes, which can only
	// happen from a programming error in the caller.
	ErrorCodeIndexInvalidMode ErrorCode = "INDEX_INVALID_MODE"

	// ErrorCodeIndexClosed indicates an operation was attempted on an index
	// or engine that has already been closed.
	ErrorCodeIndexClosed ErrorCode = "INDEX_CLOSED"

	// ErrorCodeIndexCorrupted indicates an internal structural invariant of
	// the trie or dline was found violated, such as a hash node with a
	// child count exceeding its bucket capacity. This should never occur
	// and indicates a bug rather than a data problem.
	ErrorCodeIndexCorrupted ErrorCode = "INDEX_CORRUPTED"
)
