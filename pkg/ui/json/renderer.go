// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/sfo/pkg/errors"
	"github.com/arthur-debert/sfo/pkg/ui/view"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer, indent bool) *Renderer {
	encoder := json.NewEncoder(output)
	if indent {
		encoder.SetIndent("", "  ")
	}
	return &Renderer{encoder: encoder}
}

// RenderPlan writes the plan as a bare array of {src, dst, rule}.
func (r *Renderer) RenderPlan(p view.Plan) error {
	entries := p.Entries
	if entries == nil {
		entries = []view.PlanEntry{}
	}
	return r.encoder.Encode(entries)
}

func (r *Renderer) RenderOrganize(o view.Organize) error { return r.encoder.Encode(o) }

func (r *Renderer) RenderUndo(u view.Undo) error { return r.encoder.Encode(u) }

func (r *Renderer) RenderExplain(e view.Explain) error { return r.encoder.Encode(e) }

func (r *Renderer) RenderValidation(v view.Validation) error { return r.encoder.Encode(v) }

func (r *Renderer) RenderDocs(markdown string) error {
	return r.encoder.Encode(map[string]string{"markdown": markdown})
}

// RenderError renders an error as JSON, with its code when it has one
func (r *Renderer) RenderError(err error) error {
	obj := map[string]interface{}{
		"error": err.Error(),
	}
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		obj["code"] = string(code)
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		obj["details"] = details
	}
	return r.encoder.Encode(obj)
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
