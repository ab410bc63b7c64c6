package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/proxsearch/internal/adapters/driving/present"
)

// outputFormat selects how structured results are printed.
type outputFormat int

const (
	formatText outputFormat = iota
	formatJSON
	formatYAML
)

func pickFormat(jsonOut, yamlOut bool) (outputFormat, error) {
	switch {
	case jsonOut && yamlOut:
		return formatText, fmt.Errorf("--json and --yaml are mutually exclusive")
	case jsonOut:
		return formatJSON, nil
	case yamlOut:
		return formatYAML, nil
	default:
		return formatText, nil
	}
}

func writeStructured(w io.Writer, format outputFormat, v any) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %d", format)
	}
}

// palette colours terminal output. Its zero value prints plain text.
type palette struct {
	enabled bool
	match   *color.Color
	label   *color.Color
	muted   *color.Color
	good    *color.Color
	bad     *color.Color
	warn    *color.Color
}

// newPalette enables colour only when w is a terminal.
func newPalette(w io.Writer) palette {
	f, ok := w.(*os.File)
	if !ok || color.NoColor || !term.IsTerminal(int(f.Fd())) {
		return palette{}
	}
	p := palette{
		enabled: true,
		match:   color.New(color.FgBlack, color.BgYellow),
		label:   color.New(color.FgCyan, color.Bold),
		muted:   color.New(color.FgHiBlack),
		good:    color.New(color.FgGreen),
		bad:     color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.match, p.label, p.muted, p.good, p.bad, p.warn} {
		c.EnableColor()
	}
	return p
}

func (p palette) paint(c *color.Color, s string) string {
	if !p.enabled || c == nil {
		return s
	}
	return c.Sprint(s)
}

// renderSegments prints a snippet on one line with matches highlighted.
// Without colour, matches are bracketed so they remain visible.
func (p palette) renderSegments(segs []present.Segment) string {
	var b strings.Builder
	for _, s := range segs {
		text := flatten(s.Text)
		switch {
		case !s.Match:
			b.WriteString(text)
		case p.enabled:
			b.WriteString(p.match.Sprint(text))
		default:
			b.WriteString("[" + text + "]")
		}
	}
	return strings.TrimSpace(b.String())
}

// flatten folds line breaks and tabs into single spaces for one-line display.
func flatten(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return ' '
		}
		return r
	}, s)
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
