package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/tierpick/batch"
	"github.com/randalmurphal/tierpick/complexity"
	"github.com/randalmurphal/tierpick/model"
)

// DefaultTaskWidth is the display width of the task column in tables.
const DefaultTaskWidth = 48

var (
	colorHaiku  = lipgloss.Color("42")  // Green
	colorSonnet = lipgloss.Color("75")  // Blue
	colorOpus   = lipgloss.Color("205") // Pink
	colorSubtle = lipgloss.Color("241") // Gray
)

// Printer writes analyses in one format.
type Printer struct {
	Format    Format
	NoColor   bool
	TaskWidth int
}

// Option configures a Printer.
type Option func(*Printer)

// WithNoColor disables ANSI styling in text output.
func WithNoColor(noColor bool) Option {
	return func(p *Printer) {
		p.NoColor = noColor
	}
}

// WithTaskWidth sets the task column width. Values below 8 are raised to 8.
func WithTaskWidth(width int) Option {
	return func(p *Printer) {
		p.TaskWidth = width
	}
}

// NewPrinter creates a printer for format.
func NewPrinter(format Format, opts ...Option) *Printer {
	p := &Printer{Format: format, TaskWidth: DefaultTaskWidth}
	for _, opt := range opts {
		opt(p)
	}
	if p.TaskWidth < 8 {
		p.TaskWidth = 8
	}
	return p
}

// analysisDoc is the structured form of a single analysis.
type analysisDoc struct {
	Task                    string `json:"task" yaml:"task"`
	complexity.TaskAnalysis `yaml:",inline"`
}

// WriteAnalysis writes one analysis.
func (p *Printer) WriteAnalysis(w io.Writer, task string, a complexity.TaskAnalysis) error {
	switch p.Format {
	case FormatJSON:
		return writeJSON(w, analysisDoc{Task: task, TaskAnalysis: a})
	case FormatYAML:
		return writeYAML(w, analysisDoc{Task: task, TaskAnalysis: a})
	case FormatText, "":
		return p.textAnalysis(w, task, a)
	default:
		return fmt.Errorf("unknown format %q", p.Format)
	}
}

// Write writes batch items, one row or document entry per item.
func (p *Printer) Write(w io.Writer, items ...batch.Item) error {
	switch p.Format {
	case FormatJSON:
		return writeJSON(w, nonNil(items))
	case FormatYAML:
		return writeYAML(w, nonNil(items))
	case FormatText, "":
		return p.textTable(w, items)
	default:
		return fmt.Errorf("unknown format %q", p.Format)
	}
}

// WriteSummary writes a batch summary.
func (p *Printer) WriteSummary(w io.Writer, s batch.Summary) error {
	switch p.Format {
	case FormatJSON:
		return writeJSON(w, s)
	case FormatYAML:
		return writeYAML(w, s)
	case FormatText, "":
		return p.textSummary(w, s)
	default:
		return fmt.Errorf("unknown format %q", p.Format)
	}
}

// WriteResult writes a whole batch result. Structured formats emit a
// single document; text emits the table followed by the summary.
func (p *Printer) WriteResult(w io.Writer, r *batch.Result) error {
	switch p.Format {
	case FormatJSON:
		return writeJSON(w, r)
	case FormatYAML:
		return writeYAML(w, r)
	case FormatText, "":
		if err := p.textTable(w, r.Items); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		return p.textSummary(w, r.Summary)
	default:
		return fmt.Errorf("unknown format %q", p.Format)
	}
}

// WriteConfig writes an effective config. Text output uses YAML, the
// format config files are most often written in.
func (p *Printer) WriteConfig(w io.Writer, cfg complexity.Config) error {
	switch p.Format {
	case FormatJSON:
		return writeJSON(w, cfg)
	case FormatYAML, FormatText, "":
		return writeYAML(w, cfg)
	default:
		return fmt.Errorf("unknown format %q", p.Format)
	}
}

func (p *Printer) textAnalysis(w io.Writer, task string, a complexity.TaskAnalysis) error {
	r := lipgloss.NewRenderer(w)
	label := p.style(r, lipgloss.NewStyle().Foreground(colorSubtle))

	rows := [][2]string{
		{"Task", task},
		{"Model", p.tier(r, a.RecommendedModel, 0)},
		{"Score", fmt.Sprintf("%.2f", a.ComplexityScore)},
		{"Confidence", fmt.Sprintf("%.2f", a.Confidence)},
		{"Tokens", fmt.Sprintf("%d", a.EstimatedTokens)},
		{"Cost", formatCost(a.EstimatedCost)},
		{"Reasoning", a.Reasoning},
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(label(runewidth.FillRight(row[0]+":", 12)))
		b.WriteString(row[1])
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (p *Printer) textTable(w io.Writer, items []batch.Item) error {
	r := lipgloss.NewRenderer(w)
	header := p.style(r, lipgloss.NewStyle().Bold(true))

	var b strings.Builder
	b.WriteString(header(fmt.Sprintf("%4s  %-6s  %6s  %4s  %7s  %10s  %s",
		"#", "MODEL", "SCORE", "CONF", "TOKENS", "COST", "TASK")))
	b.WriteByte('\n')

	for _, it := range items {
		a := it.Analysis
		fmt.Fprintf(&b, "%4d  %s  %6.2f  %4.2f  %7d  %10s  %s\n",
			it.Index+1,
			p.tier(r, a.RecommendedModel, 6),
			a.ComplexityScore,
			a.Confidence,
			a.EstimatedTokens,
			formatCost(a.EstimatedCost),
			runewidth.Truncate(singleLine(it.Task), p.TaskWidth, "…"),
		)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (p *Printer) textSummary(w io.Writer, s batch.Summary) error {
	r := lipgloss.NewRenderer(w)
	title := p.style(r, lipgloss.NewStyle().Bold(true))

	var b strings.Builder
	b.WriteString(title(fmt.Sprintf("%d tasks", s.Total)))
	b.WriteByte('\n')
	for _, m := range model.Models {
		n := s.ByModel[m]
		pct := 0.0
		if s.Total > 0 {
			pct = 100 * float64(n) / float64(s.Total)
		}
		fmt.Fprintf(&b, "  %s %4d  (%5.1f%%)  %s\n", p.tier(r, m, 6), n, pct, formatCost(s.CostByModel[m]))
	}
	fmt.Fprintf(&b, "  average score    %.2f\n", s.AverageScore)
	fmt.Fprintf(&b, "  estimated tokens %d\n", s.EstimatedTokens)
	fmt.Fprintf(&b, "  estimated cost   %s\n", formatCost(s.EstimatedCost))

	_, err := io.WriteString(w, b.String())
	return err
}

// tier renders a model name padded to width display cells.
// Padding is applied before styling so ANSI codes do not break alignment.
func (p *Printer) tier(r *lipgloss.Renderer, m model.ModelName, width int) string {
	text := m.String()
	if width > 0 {
		text = runewidth.FillRight(text, width)
	}

	var color lipgloss.Color
	switch m {
	case model.ModelHaiku:
		color = colorHaiku
	case model.ModelSonnet:
		color = colorSonnet
	case model.ModelOpus:
		color = colorOpus
	default:
		return text
	}
	return p.style(r, r.NewStyle().Foreground(color))(text)
}

func (p *Printer) style(r *lipgloss.Renderer, st lipgloss.Style) func(string) string {
	if p.NoColor {
		return func(s string) string { return s }
	}
	styled := st.Renderer(r)
	return func(s string) string { return styled.Render(s) }
}

func formatCost(usd float64) string {
	return fmt.Sprintf("$%.6f", usd)
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func nonNil(items []batch.Item) []batch.Item {
	if items == nil {
		return []batch.Item{}
	}
	return items
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
