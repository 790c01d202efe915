// Package report renders check outcomes as JSON or text. Output depends only
// on the outcomes, so it is stable across runs and suitable for golden tests.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/roach88/pgqlcheck/internal/ast"
	"github.com/roach88/pgqlcheck/internal/checker"
	"github.com/roach88/pgqlcheck/internal/diag"
)

// Query status values.
const (
	StatusOK     = "ok"
	StatusFailed = "failed" // type check reported diagnostics
	StatusError  = "error"  // the query could not be checked
)

// Report is the rendered result of a batch.
type Report struct {
	Queries []Query `json:"queries"`
	Summary Summary `json:"summary"`
}

// Summary counts queries by status and diagnostics by kind.
type Summary struct {
	Queries     int            `json:"queries"`
	Failed      int            `json:"failed"`
	Errors      int            `json:"errors"`
	Diagnostics int            `json:"diagnostics"`
	ByKind      map[string]int `json:"by_kind,omitempty"`
}

// Query is the result of one query.
type Query struct {
	Name        string   `json:"name"`
	Source      string   `json:"source,omitempty"`
	Version     string   `json:"version"`
	Status      string   `json:"status"`
	Error       string   `json:"error,omitempty"`
	Columns     []Column `json:"columns,omitempty"`
	Diagnostics []Entry  `json:"diagnostics,omitempty"`
}

// Column is the inferred type of one projection.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Entry is one diagnostic.
type Entry struct {
	Code     string `json:"code"`
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Pos      string `json:"pos"`
	Node     string `json:"node"`
	Message  string `json:"message"`
}

// New builds a report from outcomes, keeping their order.
func New(outcomes []checker.Outcome) *Report {
	r := &Report{Queries: make([]Query, 0, len(outcomes))}
	for _, o := range outcomes {
		q := Query{
			Name:    o.Job.Name,
			Source:  o.Job.Source,
			Version: o.Job.Policy.Version.String(),
			Status:  StatusOK,
		}
		switch {
		case o.Err != nil:
			q.Status = StatusError
			q.Error = o.Err.Error()
			r.Summary.Errors++
		case o.Result != nil:
			q.Columns = columns(o.Job.Query, o.Result)
			for _, d := range o.Result.Diagnostics {
				q.Diagnostics = append(q.Diagnostics, entry(d))
				r.Summary.count(d.Kind)
			}
			if o.Result.HasErrors() {
				q.Status = StatusFailed
				r.Summary.Failed++
			}
		}
		r.Queries = append(r.Queries, q)
	}
	r.Summary.Queries = len(r.Queries)
	return r
}

func (s *Summary) count(k diag.Kind) {
	if s.ByKind == nil {
		s.ByKind = make(map[string]int)
	}
	s.ByKind[string(k)]++
	s.Diagnostics++
}

// HasFindings reports whether any query failed or could not be checked.
func (r *Report) HasFindings() bool {
	return r.Summary.Failed > 0 || r.Summary.Errors > 0
}

func columns(q *ast.Query, res *checker.Result) []Column {
	if q == nil || q.Select == nil {
		return nil
	}
	var cols []Column
	for i, p := range q.Select.Projections {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("$%d", i+1)
		}
		t, _ := res.TypeOf(p)
		cols = append(cols, Column{Name: name, Type: t.String()})
	}
	return cols
}

func entry(d diag.Diagnostic) Entry {
	return Entry{
		Code:     d.Code(),
		Kind:     string(d.Kind),
		Severity: d.Severity.String(),
		Pos:      d.Pos.String(),
		Node:     ast.Describe(d.Node),
		Message:  d.Message(),
	}
}

// WriteJSON writes r as indented JSON. Map keys are sorted by encoding/json.
func WriteJSON(w io.Writer, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteText writes r in a compact human-readable form:
//
//	name [version] status (source)
//	  E205 1:40 VarRef(n): Cannot order by vertex
func WriteText(w io.Writer, r *Report) error {
	var b strings.Builder
	for _, q := range r.Queries {
		fmt.Fprintf(&b, "%s [%s] %s", q.Name, q.Version, q.Status)
		if q.Source != "" {
			fmt.Fprintf(&b, " (%s)", q.Source)
		}
		b.WriteByte('\n')
		if q.Error != "" {
			fmt.Fprintf(&b, "  error: %s\n", q.Error)
		}
		for _, c := range q.Columns {
			fmt.Fprintf(&b, "  column %s: %s\n", c.Name, c.Type)
		}
		for _, e := range q.Diagnostics {
			fmt.Fprintf(&b, "  %s %s %s: %s\n", e.Code, e.Pos, e.Node, e.Message)
		}
	}
	s := r.Summary
	fmt.Fprintf(&b, "%d queries, %d failed, %d errors, %d diagnostics\n", s.Queries, s.Failed, s.Errors, s.Diagnostics)
	_, err := io.WriteString(w, b.String())
	return err
}
