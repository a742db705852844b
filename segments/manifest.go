package segments

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Row is one manifest entry: a clip file, where it came from, and its labels.
type Row struct {
	Clip   string
	Source string
	Start  float64
	End    float64
	Labels []string
}

var manifestHeader = []string{"Clip", "Source", "Start", "End", "Labels"}

// labelSep separates multiple labels in the manifest's Labels column.
const labelSep = "|"

// WriteManifest writes rows as CSV with a header line.
func WriteManifest(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(manifestHeader); err != nil {
		return fmt.Errorf("segments: write manifest header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			r.Clip,
			r.Source,
			strconv.FormatFloat(r.Start, 'f', 3, 64),
			strconv.FormatFloat(r.End, 'f', 3, 64),
			strings.Join(r.Labels, labelSep),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("segments: write manifest row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadManifest parses a manifest previously written by WriteManifest.
func ReadManifest(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("segments: read manifest: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("segments: manifest is empty")
	}

	rows := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != len(manifestHeader) {
			return nil, fmt.Errorf("segments: manifest line %d has %d columns, want %d",
				i+2, len(rec), len(manifestHeader))
		}
		start, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("segments: manifest line %d: bad start time %q", i+2, rec[2])
		}
		end, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("segments: manifest line %d: bad end time %q", i+2, rec[3])
		}
		var labels []string
		if rec[4] != "" {
			labels = strings.Split(rec[4], labelSep)
		}
		rows = append(rows, Row{
			Clip:   rec[0],
			Source: rec[1],
			Start:  start,
			End:    end,
			Labels: labels,
		})
	}
	return rows, nil
}

// ExpandBinary expands multiclass rows into one row per label, for binary
// classification. Rows with zero or one label pass through unchanged.
func ExpandBinary(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if len(r.Labels) <= 1 {
			out = append(out, r)
			continue
		}
		for _, label := range r.Labels {
			expanded := r
			expanded.Labels = []string{label}
			out = append(out, expanded)
		}
	}
	return out
}
