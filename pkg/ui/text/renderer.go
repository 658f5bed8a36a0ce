// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/sfo/pkg/ui/view"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

func (r *Renderer) println(s string) error {
	_, err := fmt.Fprintln(r.output, s)
	return err
}

// RenderPlan prints one "src -> dst [rule]" line per entry
func (r *Renderer) RenderPlan(p view.Plan) error {
	lines := []string{view.PlanTitle}
	for _, e := range p.Entries {
		lines = append(lines, fmt.Sprintf("%s -> %s [%s]", e.Src, e.Dst, e.Rule))
	}
	for _, v := range p.Vanished {
		lines = append(lines, "Vanished before planning: "+v)
	}
	lines = append(lines, p.Footer())
	return r.lines(lines)
}

func (r *Renderer) RenderOrganize(o view.Organize) error {
	lines := make([]string, 0, len(o.Actions)+1)
	for _, a := range o.Actions {
		lines = append(lines, a.Line())
	}
	lines = append(lines, o.Footer())
	return r.lines(lines)
}

func (r *Renderer) RenderUndo(u view.Undo) error {
	lines := make([]string, 0, len(u.Items)+1)
	for _, item := range u.Items {
		lines = append(lines, item.Line())
	}
	lines = append(lines, view.UndoFooter)
	return r.lines(lines)
}

func (r *Renderer) RenderExplain(e view.Explain) error {
	lines := []string{fmt.Sprintf("File: '%s'", e.File)}
	if e.Matched {
		lines = append(lines, fmt.Sprintf(" + Matched rule: '%s' (type: %s)", e.Rule, e.Kind))
	} else {
		lines = append(lines, " x No matching rule found.", fmt.Sprintf("   Fallback: %s", e.Rule))
	}
	lines = append(lines, fmt.Sprintf("   Target: '%s'", e.Rendered))
	if e.Destination != "" {
		lines = append(lines, fmt.Sprintf("   Destination: '%s'", e.Destination))
	}
	return r.lines(lines)
}

func (r *Renderer) RenderValidation(v view.Validation) error {
	if !v.Valid {
		return r.println(fmt.Sprintf(view.InvalidMessage, v.Error))
	}
	lines := []string{view.ValidMessage}
	for i, rule := range v.Rules {
		lines = append(lines, fmt.Sprintf("  %d. %s (%s) -> %s", i+1, rule.Name, rule.Kind, rule.Template))
	}
	return r.lines(lines)
}

// RenderDocs prints markdown as is
func (r *Renderer) RenderDocs(markdown string) error {
	_, err := io.WriteString(r.output, markdown)
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	return r.println(fmt.Sprintf("Error: %v", err))
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.println(msg)
}

func (r *Renderer) lines(lines []string) error {
	for _, l := range lines {
		if err := r.println(l); err != nil {
			return err
		}
	}
	return nil
}
