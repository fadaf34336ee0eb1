// Package errors defines the pipeline's stage-boundary error type. Only
// structural failures (no table in a listing page, missing or malformed
// scraper config, unwritable output) halt a run, and only at a stage
// boundary; the classification and scoring core never returns errors.
package errors

import "fmt"

// StageError is an error surfaced at a pipeline stage boundary.
type StageError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Operation string `json:"operation,omitempty"`
	Cause     error  `json:"-"`
}

func (e *StageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// WithOperation attaches the pipeline operation that failed.
func (e *StageError) WithOperation(op string) *StageError {
	e.Operation = op
	return e
}

// Error codes for the failure classes that may stop a stage.
const (
	CodeStructuralFailure = "STRUCTURAL_FAILURE"
	CodeConfigError       = "CONFIG_ERROR"
	CodeScrapeError       = "SCRAPE_ERROR"
	CodeExportError       = "EXPORT_ERROR"
)

func newStageError(code, message string, cause error) *StageError {
	return &StageError{Code: code, Message: message, Cause: cause}
}

// StructuralFailure reports source data missing its expected structure.
func StructuralFailure(message string, cause error) *StageError {
	return newStageError(CodeStructuralFailure, message, cause)
}

// ConfigError reports missing or malformed stage configuration.
func ConfigError(message string, cause error) *StageError {
	return newStageError(CodeConfigError, message, cause)
}

// ScrapeError reports an unrecoverable scraping failure.
func ScrapeError(message string, cause error) *StageError {
	return newStageError(CodeScrapeError, message, cause)
}

// ExportError reports a persistence failure.
func ExportError(message string, cause error) *StageError {
	return newStageError(CodeExportError, message, cause)
}
