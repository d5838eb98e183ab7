// Package render prints results for the terminal and as structured documents.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted --output values.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// Printer writes human readable output. Colour is off unless Color is set.
type Printer struct {
	w     io.Writer
	Color bool
}

func New(w io.Writer, color bool) *Printer {
	return &Printer{w: w, Color: color}
}

var (
	styleHeading = promptui.Styler(promptui.FGBold)
	styleGood    = promptui.Styler(promptui.FGGreen)
	styleWarn    = promptui.Styler(promptui.FGYellow)
	styleBad     = promptui.Styler(promptui.FGRed)
	styleFaint   = promptui.Styler(promptui.FGFaint)
)

func (p *Printer) style(s string, styler func(interface{}) string) string {
	if !p.Color {
		return s
	}
	return styler(s)
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) heading(title string) {
	p.printf("\n%s\n", p.style(title, styleHeading))
}

// list prints items as bullets, or empty when there are none.
func (p *Printer) list(items []string, empty string) {
	if len(items) == 0 {
		if empty != "" {
			p.printf("  %s\n", p.style(empty, styleFaint))
		}
		return
	}
	for _, item := range items {
		p.printf("  • %s\n", strings.TrimSpace(item))
	}
}

// Structured writes v as JSON or YAML.
func Structured(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// ValidFormat reports whether format is one of Formats.
func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}
