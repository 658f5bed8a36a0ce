// Package ui renders command output as rich terminal text, plain text or JSON.
package ui

import (
	"io"

	"github.com/arthur-debert/sfo/pkg/errors"
	"github.com/arthur-debert/sfo/pkg/ui/json"
	"github.com/arthur-debert/sfo/pkg/ui/terminal"
	"github.com/arthur-debert/sfo/pkg/ui/text"
	"github.com/arthur-debert/sfo/pkg/ui/view"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	RenderPlan(p view.Plan) error
	RenderOrganize(o view.Organize) error
	RenderUndo(u view.Undo) error
	RenderExplain(e view.Explain) error
	RenderValidation(v view.Validation) error
	// RenderDocs renders a markdown document
	RenderDocs(markdown string) error
	RenderMessage(msg string) error
	RenderError(err error) error
}

// Options tune renderer output
type Options struct {
	// CompactJSON writes one JSON document per line instead of indenting
	CompactJSON bool
}

// NewRenderer creates a renderer for format. FormatAuto is resolved with
// DetectFormat.
func NewRenderer(format Format, output io.Writer, opts Options) (Renderer, error) {
	switch format {
	case FormatAuto:
		return NewRenderer(DetectFormat(output), output, opts)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output, !opts.CompactJSON), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
