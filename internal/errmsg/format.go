// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Movie operations
	OpMovieOpen    Op = "open movie"
	OpMovieDisplay Op = "attach display"
	OpMovieSkip    Op = "skip"
	OpMovieVolume  Op = "set volume"

	// Display
	OpDisplayMode Op = "set display mode"

	// Resume state
	OpStateOpen   Op = "open state database"
	OpResumeLoad  Op = "load resume position"
	OpResumeClear Op = "forget resume position"
	OpVolumeSave  Op = "save volume"

	// Initialization
	OpConfigLoad Op = "load configuration"
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
