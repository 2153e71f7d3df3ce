// Package report holds per-instance run records and writes them as CSV,
// JSON or a short human summary.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is the outcome of one solver run on one graph.
type Record struct {
	RunID         string        `json:"run_id"`
	Source        string        `json:"source"`
	Vertices      int           `json:"vertices"`
	Edges         int           `json:"edges"`
	HeuristicSize int           `json:"heuristic_size"`
	CliqueSize    int           `json:"clique_size"`
	Clique        []int         `json:"clique"`
	IsClique      bool          `json:"is_clique"`
	TimedOut      bool          `json:"timed_out"`
	Elapsed       time.Duration `json:"elapsed_ns"`
	Calls         int           `json:"calls"`
	MaxDepth      int           `json:"max_depth"`
	// Reference is the known optimum, when one is catalogued.
	Reference *int `json:"reference,omitempty"`
	// Error is set when the run failed for a reason other than timeout.
	Error string `json:"error,omitempty"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string { return uuid.NewString() }

// Optimal reports whether the record reached its catalogued optimum. It is
// false when no reference is known.
func (r Record) Optimal() bool {
	return r.Reference != nil && !r.TimedOut && r.Error == "" && r.CliqueSize == *r.Reference
}

// Header is the CSV column order written by WriteCSV.
var Header = []string{
	"run_id", "source", "vertices", "edges", "heuristic_size", "clique_size",
	"is_clique", "timed_out", "elapsed_seconds", "calls", "max_depth",
	"reference", "clique", "error",
}

func (r Record) row() []string {
	ref := ""
	if r.Reference != nil {
		ref = strconv.Itoa(*r.Reference)
	}
	members := make([]string, len(r.Clique))
	for i, v := range r.Clique {
		members[i] = strconv.Itoa(v)
	}

	return []string{
		r.RunID,
		r.Source,
		strconv.Itoa(r.Vertices),
		strconv.Itoa(r.Edges),
		strconv.Itoa(r.HeuristicSize),
		strconv.Itoa(r.CliqueSize),
		strconv.FormatBool(r.IsClique),
		strconv.FormatBool(r.TimedOut),
		strconv.FormatFloat(r.Elapsed.Seconds(), 'f', 3, 64),
		strconv.Itoa(r.Calls),
		strconv.Itoa(r.MaxDepth),
		ref,
		strings.Join(members, " "),
		r.Error,
	}
}

// WriteCSV writes a header row followed by one row per record.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("report: csv: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.row()); err != nil {
			return fmt.Errorf("report: csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("report: csv: %w", err)
	}

	return nil
}

// WriteJSON writes the records as an indented JSON array.
func WriteJSON(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("report: json: %w", err)
	}

	return nil
}

// Summary renders a record for terminal output.
func Summary(r Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d vertices, %d edges\n", r.Source, r.Vertices, r.Edges)
	fmt.Fprintf(&b, "heuristic clique size: %d\n", r.HeuristicSize)
	if r.TimedOut {
		b.WriteString("TIME OUT, best clique found so far:\n")
	}
	fmt.Fprintf(&b, "clique size: %d\n", r.CliqueSize)
	fmt.Fprintf(&b, "clique: %s\n", formatClique(r.Clique))
	fmt.Fprintf(&b, "is clique: %t\n", r.IsClique)
	if r.Reference != nil {
		fmt.Fprintf(&b, "reference optimum: %d\n", *r.Reference)
	}
	fmt.Fprintf(&b, "calls: %d, max depth: %d\n", r.Calls, r.MaxDepth)
	fmt.Fprintf(&b, "elapsed: %s\n", formatElapsed(r.Elapsed))
	if r.Error != "" {
		fmt.Fprintf(&b, "error: %s\n", r.Error)
	}

	return b.String()
}

// formatClique renders vertices as x-prefixed variable names.
func formatClique(c []int) string {
	if len(c) == 0 {
		return "(none)"
	}
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = "x" + strconv.Itoa(v)
	}

	return strings.Join(parts, " ")
}

// formatElapsed renders d as "<m>min <s.s>sec".
func formatElapsed(d time.Duration) string {
	m := int(d / time.Minute)
	s := (d - time.Duration(m)*time.Minute).Seconds()

	return fmt.Sprintf("%dmin %.1fsec", m, s)
}
