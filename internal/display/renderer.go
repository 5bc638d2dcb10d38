package display

import (
	"strings"

	"askpanel/internal/logging"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Entry is one labelled answer to render.
type Entry struct {
	Label  string
	Text   string
	Failed bool
}

// Options configures a Renderer.
type Options struct {
	// Raw disables markdown rendering.
	Raw bool

	// Style is a glamour standard style name; "" or "auto" picks from the
	// terminal.
	Style string

	// Width is the word-wrap width for markdown.
	Width int

	// Dark selects the dark label palette.
	Dark bool

	// Limit and Placeholder configure Summary lines.
	Limit       int
	Placeholder string
}

// Renderer turns answers into terminal text.
type Renderer struct {
	styles    Styles
	markdown  *glamour.TermRenderer
	truncator Truncator
}

// NewRenderer creates a renderer. If the markdown renderer cannot be
// built, answers are printed as plain text.
func NewRenderer(opts Options) *Renderer {
	width := opts.Width
	if width <= 0 {
		width = 80
	}

	r := &Renderer{
		styles:    NewStyles(opts.Dark),
		truncator: Truncator{Limit: opts.Limit, Placeholder: opts.Placeholder},
	}

	if !opts.Raw {
		styleOpt := glamour.WithAutoStyle()
		if opts.Style != "" && opts.Style != "auto" {
			styleOpt = glamour.WithStandardStyle(opts.Style)
		}
		md, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
		if err != nil {
			logging.DisplayWarn("markdown renderer unavailable, using plain text: %v", err)
		} else {
			r.markdown = md
		}
	}
	return r
}

// Render formats every entry as a labelled block.
func (r *Renderer) Render(entries []Entry) string {
	var sb strings.Builder
	for i, e := range entries {
		if i > 0 {
			sb.WriteString(r.styles.Divider.Render(strings.Repeat("─", 40)))
			sb.WriteString("\n")
		}
		sb.WriteString(r.styles.Label.Render(e.Label))
		sb.WriteString("\n")
		sb.WriteString(r.body(e))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (r *Renderer) body(e Entry) string {
	if e.Failed {
		return r.styles.Error.Render(e.Text)
	}
	if r.markdown != nil {
		out, err := r.markdown.Render(e.Text)
		if err == nil {
			return strings.TrimRight(out, "\n")
		}
		logging.DisplayWarn("markdown render failed for %s: %v", e.Label, err)
	}
	return r.styles.Answer.Render(e.Text)
}

// Summary renders one clipped line per entry.
func (r *Renderer) Summary(entries []Entry) string {
	width := 0
	for _, e := range entries {
		if w := lipgloss.Width(e.Label); w > width {
			width = w
		}
	}

	var sb strings.Builder
	for _, e := range entries {
		pad := strings.Repeat(" ", width-lipgloss.Width(e.Label))
		label := r.styles.Label.Render(e.Label) + pad
		text := r.truncator.Truncate(e.Text)
		if e.Failed {
			text = r.styles.Error.UnsetPaddingLeft().Render(text)
		}
		sb.WriteString(label)
		sb.WriteString("  ")
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String()
}
