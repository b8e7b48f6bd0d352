package output

import (
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/snooze-project/snoozectl/internal/api"
	"github.com/snooze-project/snoozectl/internal/session"
	"github.com/snooze-project/snoozectl/internal/story"
)

// Exit code constants
const (
	ExitSuccess    = 0
	ExitGeneral    = 1
	ExitUsageError = 2
	ExitNetwork    = 3
	ExitAuth       = 4
	ExitValidation = 5
	ExitNotFound   = 6
)

// CLIError is a structured error with user-facing context
type CLIError struct {
	Summary    string
	Detail     string
	Suggestion string
	ExitCode   int
	Err        error
}

// Error implements the error interface, returning the summary
func (e *CLIError) Error() string {
	if e.Detail != "" {
		return e.Summary + ": " + e.Detail
	}
	return e.Summary
}

// Unwrap exposes the underlying cause for errors.Is/As
func (e *CLIError) Unwrap() error { return e.Err }

// ExitCodeFor maps an error to the process exit code. CLIError carries
// its own code; API taxonomy errors map to fixed codes; anything else is
// a general failure.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) && cliErr.ExitCode != 0 {
		return cliErr.ExitCode
	}
	switch {
	case api.IsNetworkError(err):
		return ExitNetwork
	case api.IsAuthError(err), errors.Is(err, session.ErrNotLoggedIn):
		return ExitAuth
	case api.IsValidationError(err):
		return ExitValidation
	case errors.Is(err, story.ErrNotFound):
		return ExitNotFound
	default:
		return ExitGeneral
	}
}

// WrapAPIError turns an API-layer failure into a CLIError with a
// summary for the failed action and a suggestion matching the failure
// class. The server's own message, when present, becomes the detail.
func WrapAPIError(action string, err error) *CLIError {
	cliErr := &CLIError{
		Summary:  action + " failed",
		Detail:   api.ServerMessage(err),
		ExitCode: ExitCodeFor(err),
		Err:      err,
	}
	if cliErr.Detail == "" {
		cliErr.Detail = err.Error()
	}
	switch {
	case api.IsNetworkError(err):
		cliErr.Suggestion = "check your connection and the api.base_url setting"
	case api.IsAuthError(err), errors.Is(err, session.ErrNotLoggedIn):
		cliErr.Suggestion = "run 'snoozectl login' and try again"
	case api.IsValidationError(err):
		cliErr.Suggestion = "check the submitted fields"
	}
	return cliErr
}

// FormatError prints a structured error message to stderr
func (p *Printer) FormatError(e *CLIError) {
	if p.useColors {
		color.New(color.FgRed, color.Bold).Fprintf(p.err, "Error: %s\n", e.Summary)
		if e.Detail != "" {
			fmt.Fprintf(p.err, "  Cause: %s\n", e.Detail)
		}
		if e.Suggestion != "" {
			color.New(color.FgCyan).Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
		}
	} else {
		fmt.Fprintf(p.err, "[ERROR] %s\n", e.Summary)
		if e.Detail != "" {
			fmt.Fprintf(p.err, "  Cause: %s\n", e.Detail)
		}
		if e.Suggestion != "" {
			fmt.Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
		}
	}
}
