// export_test.go exports private functions for white-box testing.
package logger

// ErrorEntry mirrors errorEntry for assertions.
type ErrorEntry = errorEntry

// Message returns the entry's own message.
func (e errorEntry) Message() string { return e.message }

// Metadata returns the entry's metadata.
func (e errorEntry) Metadata() map[string]any { return e.metadata }

// NewErrorEntry builds an entry for formatting tests.
func NewErrorEntry(message string, metadata map[string]any) ErrorEntry {
	return errorEntry{message: message, metadata: metadata}
}

// ExportErrorFormatting exports the private error formatting functions for testing.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)
