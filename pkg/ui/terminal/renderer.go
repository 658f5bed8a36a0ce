// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/sfo/pkg/errors"
	"github.com/arthur-debert/sfo/pkg/ui/view"
)

// Renderer provides rich terminal output
type Renderer struct {
	output io.Writer
	// Width wraps rendered markdown; 0 uses glamour's default
	Width int
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

func (r *Renderer) println(s string) error {
	_, err := fmt.Fprintln(r.output, s)
	return err
}

// RenderPlan draws the plan as a Source/Destination/Rule table.
func (r *Renderer) RenderPlan(p view.Plan) error {
	if err := r.println(titleStyle.Render(view.PlanTitle)); err != nil {
		return err
	}

	if len(p.Entries) > 0 {
		data := pterm.TableData{{"Source", "Destination", "Rule"}}
		for _, e := range p.Entries {
			data = append(data, []string{e.Src, e.Dst, e.Rule})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to render plan table")
		}
		if err := r.println(table); err != nil {
			return err
		}
	}

	for _, v := range p.Vanished {
		if err := r.println(warningStyle.Render("Vanished before planning: ") + pathStyle.Render(v)); err != nil {
			return err
		}
	}
	return r.println(infoStyle.Render(p.Footer()))
}

func (r *Renderer) RenderOrganize(o view.Organize) error {
	for _, a := range o.Actions {
		if err := r.println(actionStyle(a).Render(a.Line())); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("%d moved, %d copied, %d skipped", o.Moved, o.Copied, o.Skipped)
	if o.Failed > 0 {
		summary += ", " + errorStyle.Render(fmt.Sprintf("%d failed", o.Failed))
	}
	if err := r.println(mutedStyle.Render(summary)); err != nil {
		return err
	}
	return r.println(successStyle.Render(o.Footer()))
}

func actionStyle(a view.Action) lipgloss.Style {
	switch {
	case a.Failed():
		return errorStyle
	case a.Action == "skip" || a.Action == "overwrite":
		return warningStyle
	case a.Action == "rename":
		return infoStyle
	}
	return lipgloss.NewStyle()
}

func (r *Renderer) RenderUndo(u view.Undo) error {
	for _, item := range u.Items {
		style := lipgloss.NewStyle()
		switch item.Status {
		case view.UndoMissing:
			style = warningStyle
		case view.UndoFailed:
			style = errorStyle
		}
		if err := r.println(style.Render(item.Line())); err != nil {
			return err
		}
	}
	return r.println(warningStyle.Render(view.UndoFooter))
}

func (r *Renderer) RenderExplain(e view.Explain) error {
	lines := []string{"File: " + pathStyle.Render(e.File)}
	if e.Matched {
		lines = append(lines, fmt.Sprintf(" %s Matched rule: %s (type: %s)",
			successStyle.Render("✔"), ruleStyle.Render(e.Rule), e.Kind))
	} else {
		lines = append(lines,
			fmt.Sprintf(" %s No matching rule found.", warningStyle.Render("✖")),
			"   Fallback: "+ruleStyle.Render(e.Rule))
	}
	lines = append(lines, "   Target: "+pathStyle.Render(e.Rendered))
	if e.Destination != "" {
		lines = append(lines, "   Destination: "+pathStyle.Render(e.Destination))
	}
	for _, l := range lines {
		if err := r.println(l); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) RenderValidation(v view.Validation) error {
	if !v.Valid {
		return r.println(errorStyle.Render("❌ " + fmt.Sprintf(view.InvalidMessage, v.Error)))
	}
	if err := r.println(successStyle.Render("✅ " + view.ValidMessage)); err != nil {
		return err
	}
	for i, rule := range v.Rules {
		line := fmt.Sprintf("  %d. %s %s %s", i+1, ruleStyle.Render(rule.Name),
			mutedStyle.Render("("+rule.Kind+")"), pathStyle.Render(rule.Template))
		if err := r.println(line); err != nil {
			return err
		}
	}
	return nil
}

// RenderDocs renders markdown with glamour, falling back to the raw text.
func (r *Renderer) RenderDocs(markdown string) error {
	options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	out := markdown
	if tr, err := glamour.NewTermRenderer(options...); err == nil {
		if rendered, err := tr.Render(markdown); err == nil {
			out = rendered
		}
	}
	_, err := io.WriteString(r.output, out)
	return err
}

// RenderError renders an error with the pterm error prefix
func (r *Renderer) RenderError(err error) error {
	return r.println(fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, errorStyle.Render(err.Error())))
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.println(fmt.Sprintf("%s %s", pterm.Info.Prefix.Text, msg))
}
