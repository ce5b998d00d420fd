// Package report renders operation results as JSON, YAML or tables, keeping
// each record's field order, and publishes them over NATS.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/lisanmuaddib/trendgraph/pkg/analytics"
)

// Format selects an output encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// ParseFormat accepts json, yaml or table in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatTable:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want json, yaml or table)", s)
}

// Section is the result of one operation.
type Section struct {
	Operation string
	Slug      string
	Records   []analytics.Record
}

// FromResults turns analyzer results into sections, in order.
func FromResults(results []analytics.Result) []Section {
	sections := make([]Section, len(results))
	for i, r := range results {
		sections[i] = Section{
			Operation: r.Operation.Name,
			Slug:      r.Operation.Slug,
			Records:   r.Records,
		}
	}
	return sections
}

// Renderer writes sections in one format.
type Renderer struct {
	w      io.Writer
	format Format
	header *color.Color
}

// NewRenderer creates a Renderer. Operation headers are colored only when
// colored is true.
func NewRenderer(w io.Writer, format Format, colored bool) *Renderer {
	header := color.New(color.FgCyan, color.Bold)
	if colored {
		header.EnableColor()
	} else {
		header.DisableColor()
	}
	return &Renderer{w: w, format: format, header: header}
}

// Render writes sections to w without colors.
func Render(w io.Writer, format Format, sections []Section) error {
	return NewRenderer(w, format, false).Render(sections)
}

func (r *Renderer) Render(sections []Section) error {
	switch r.format {
	case FormatJSON:
		return r.renderJSON(sections)
	case FormatYAML:
		return r.renderYAML(sections)
	case FormatTable:
		return r.renderTable(sections)
	}
	return fmt.Errorf("unknown output format %q", r.format)
}

func (r *Renderer) printHeader(name string) error {
	_, err := r.header.Fprintln(r.w, name)
	return err
}
