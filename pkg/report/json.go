package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/lisanmuaddib/trendgraph/pkg/analytics"
)

const jsonIndent = "    "

// orderedRecord encodes a record as an object whose keys follow Fields().
type orderedRecord struct {
	analytics.Record
}

func (o orderedRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o.Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func orderedRecords(records []analytics.Record) []orderedRecord {
	out := make([]orderedRecord, len(records))
	for i, r := range records {
		out[i] = orderedRecord{r}
	}
	return out
}

// MarshalJSON encodes the section with its records in field order.
func (s Section) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Operation string          `json:"operation"`
		Slug      string          `json:"slug,omitempty"`
		Records   []orderedRecord `json:"records"`
	}{
		Operation: s.Operation,
		Slug:      s.Slug,
		Records:   orderedRecords(s.Records),
	})
}

// renderJSON prints each operation name followed by its records as an
// indented JSON array.
func (r *Renderer) renderJSON(sections []Section) error {
	for _, s := range sections {
		if err := r.printHeader(s.Operation); err != nil {
			return err
		}

		data, err := json.MarshalIndent(orderedRecords(s.Records), "", jsonIndent)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", s.Operation, err)
		}
		if _, err := fmt.Fprintf(r.w, "%s\n", data); err != nil {
			return err
		}
	}
	return nil
}
