package report

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// Sink receives a generated report.
type Sink interface {
	Write(text string) error
}

// ClipboardSink writes reports to the system clipboard.
type ClipboardSink struct{}

func (ClipboardSink) Write(text string) error {
	if err := clipboardWriteAll(text); err != nil {
		return fmt.Errorf("report: copy to clipboard: %w", err)
	}
	return nil
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(text string) error

func (f SinkFunc) Write(text string) error { return f(text) }
