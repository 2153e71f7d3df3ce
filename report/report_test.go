package report_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/maxclique/report"
)

func intPtr(v int) *int { return &v }

func sample() []report.Record {
	return []report.Record{
		{
			RunID: "r1", Source: "johnson8-2-4.clq", Vertices: 28, Edges: 210,
			HeuristicSize: 4, CliqueSize: 4, Clique: []int{1, 2, 9, 14}, IsClique: true,
			Elapsed: 1500 * time.Millisecond, Calls: 17, MaxDepth: 5, Reference: intPtr(4),
		},
		{
			RunID: "r2", Source: "c-fat200-1.clq", Vertices: 200, Edges: 1534,
			HeuristicSize: 12, CliqueSize: 12, Clique: []int{3, 4}, IsClique: true,
			TimedOut: true, Elapsed: 61 * time.Second, Calls: 900, MaxDepth: 40,
		},
	}
}

func TestNewRunID(t *testing.T) {
	t.Parallel()
	a, b := report.NewRunID(), report.NewRunID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}

func TestOptimal(t *testing.T) {
	t.Parallel()
	recs := sample()
	assert.True(t, recs[0].Optimal())
	assert.False(t, recs[1].Optimal(), "no reference")

	r := recs[0]
	r.CliqueSize = 3
	assert.False(t, r.Optimal())
	r = recs[0]
	r.TimedOut = true
	assert.False(t, r.Optimal())
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, sample()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, report.Header, rows[0])
	assert.Equal(t, []string{
		"r1", "johnson8-2-4.clq", "28", "210", "4", "4", "true", "false",
		"1.500", "17", "5", "4", "1 2 9 14", "",
	}, rows[1])
	assert.Equal(t, "", rows[2][11], "missing reference is blank")
	assert.Equal(t, "true", rows[2][7])
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf, sample()))

	var back []report.Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, sample(), back)
	assert.NotContains(t, buf.String()[bytes.Index(buf.Bytes(), []byte(`"r2"`)):], `"reference"`)

	buf.Reset()
	require.NoError(t, report.WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestSummary(t *testing.T) {
	t.Parallel()
	recs := sample()

	s := report.Summary(recs[0])
	assert.Contains(t, s, "johnson8-2-4.clq: 28 vertices, 210 edges")
	assert.Contains(t, s, "clique: x1 x2 x9 x14")
	assert.Contains(t, s, "reference optimum: 4")
	assert.Contains(t, s, "elapsed: 0min 1.5sec")
	assert.NotContains(t, s, "TIME OUT")

	s = report.Summary(recs[1])
	assert.Contains(t, s, "TIME OUT")
	assert.Contains(t, s, "elapsed: 1min 1.0sec")

	s = report.Summary(report.Record{Source: "empty", Error: "boom"})
	assert.Contains(t, s, "clique: (none)")
	assert.Contains(t, s, "error: boom")
}
