package errors

// IndexError provides specialized error handling for operations against the
// in-memory autocompletion index: upsert, remove, and search.
type IndexError struct {
	// Embed the base error to inherit all standard error functionality
	// including error chaining, structured details, and error codes.
	*baseError

	// The string that was being upserted, removed, or searched for when the
	// error occurred.
	key string

	// Which index operation was being performed (e.g. "Upsert", "Remove",
	// "Search"). This context helps correlate errors with the call that
	// produced them.
	operation string
}

// NewIndexError creates a new index-specific error with the provided context.
func NewIndexError(err error, code ErrorCode, msg string) *IndexError {
	return &IndexError{
		baseError: NewBaseError(err, code, msg),
	}
}

// Override base error methods to return *IndexError instead of *baseError.

// WithMessage updates the error message while maintaining the IndexError type.
func (ie *IndexError) WithMessage(msg string) *IndexError {
	ie.baseError.WithMessage(msg)
	return ie
}

// WithCode sets the error code while preserving the IndexError type.
func (ie *IndexError) WithCode(code ErrorCode) *IndexError {
	ie.baseError.WithCode(code)
	return ie
}

// WithDetail adds contextual information while maintaining the IndexError type.
func (ie *IndexError) WithDetail(key string, value any) *IndexError {
	ie.baseError.WithDetail(key, value)
	return ie
}

// WithKey records which string was being processed when the error occurred.
func (ie *IndexError) WithKey(key string) *IndexError {
	ie.key = key
	return ie
}

// WithOperation records what index operation was being performed.
func (ie *IndexError) WithOperation(operation string) *IndexError {
	ie.operation = operation
	return ie
}

// Key returns the string that was being processed when the error occurred.
func (ie *IndexError) Key() string {
	return ie.key
}

// Operation returns the name of the operation that was being performed.
func (ie *IndexError) Operation() string {
	return ie.operation
}

// NewKeyNotFoundError creates a specialized error for a remove (or the
// implicit remove half of an update) that found no matching suffix entry.
func NewKeyNotFoundError(key string) *IndexError {
	return NewIndexError(nil, ErrorCodeIndexKeyNotFound, "key not found in index").
		WithKey(key).
		WithOperation("Remove")
}

// NewClosedIndexError creates an error for operations attempted after Close.
func NewClosedIndexError(operation string) *IndexError {
	return NewIndexError(nil, ErrorCodeIndexClosed, "index is closed").
		WithOperation(operation)
}

// NewIndexCorruptionError creates an error for internal structural
// invariant violations detected in the trie or dline.
func NewIndexCorruptionError(operation string, detail string) *IndexError {
	return NewIndexError(nil, ErrorCodeIndexCorrupted, "index data structure invariant violated").
		WithOperation(operation).
		WithDetail("invariant", detail)
}
