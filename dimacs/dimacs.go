// Package dimacs reads and writes undirected graphs in the DIMACS clique
// benchmark format:
//
//	c <free text>      comment, kept as the graph description
//	p <format> <n> <m> problem line: n vertices, m edges
//	e <u> <v>          edge between 1-based vertices u and v
//
// Blank lines are ignored. Other line kinds are rejected.
package dimacs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/maxclique/core"
)

// ErrGraphFormat is wrapped by every parse failure.
var ErrGraphFormat = errors.New("dimacs: malformed graph file")

// DefaultFormat is the problem-line format tag emitted by Write.
const DefaultFormat = "edge"

// Graph is a parsed DIMACS file.
type Graph struct {
	*core.Graph
	// Format is the token after "p", usually "edge" or "col".
	Format string
	// Comments holds the text of the "c" lines in file order.
	Comments []string
}

// Description joins the comment lines.
func (g *Graph) Description() string { return strings.Join(g.Comments, "\n") }

// ReadFile parses the file at path.
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dimacs: %w", err)
	}
	defer f.Close()

	g, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return g, nil
}

// Read parses a DIMACS graph. The declared vertex and edge counts must match
// what the file contains; duplicate edges and self-loops are rejected.
func Read(r io.Reader) (*Graph, error) {
	var (
		out      = &Graph{}
		declared = -1
		lineNo   int
	)
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: line %d: %s", ErrGraphFormat, lineNo, fmt.Sprintf(format, args...))
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "c":
			out.Comments = append(out.Comments, strings.TrimSpace(strings.TrimPrefix(line, "c")))

		case "p":
			if out.Graph != nil {
				return nil, fail("second problem line")
			}
			if len(fields) != 4 {
				return nil, fail("problem line wants 3 fields, got %d", len(fields)-1)
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil || n < 0 {
				return nil, fail("bad vertex count %q", fields[2])
			}
			m, err := strconv.Atoi(fields[3])
			if err != nil || m < 0 {
				return nil, fail("bad edge count %q", fields[3])
			}
			out.Format = fields[1]
			out.Graph = core.NewGraphN(n, core.WithStrictEdges())
			declared = m

		case "e":
			if out.Graph == nil {
				return nil, fail("edge before problem line")
			}
			if len(fields) != 3 {
				return nil, fail("edge line wants 2 fields, got %d", len(fields)-1)
			}
			u, err1 := strconv.Atoi(fields[1])
			v, err2 := strconv.Atoi(fields[2])
			if err1 != nil || err2 != nil {
				return nil, fail("bad edge %q", line)
			}
			if err := out.AddEdge(u, v); err != nil {
				return nil, fail("edge %d-%d: %v", u, v, err)
			}

		default:
			return nil, fail("unknown line kind %q", fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dimacs: read: %w", err)
	}

	if out.Graph == nil {
		return nil, fmt.Errorf("%w: no problem line", ErrGraphFormat)
	}
	if got := out.EdgeCount(); got != declared {
		return nil, fmt.Errorf("%w: declared %d edges, found %d", ErrGraphFormat, declared, got)
	}

	return out, nil
}

// Write emits g in DIMACS format, one "c" line per comment line, then the
// problem line and the edges in ascending order.
func Write(w io.Writer, g *core.Graph, comments ...string) error {
	if g == nil {
		return core.ErrNilGraph
	}
	bw := bufio.NewWriter(w)
	for _, c := range comments {
		for _, line := range strings.Split(c, "\n") {
			if line == "" {
				fmt.Fprintln(bw, "c")
				continue
			}
			fmt.Fprintf(bw, "c %s\n", line)
		}
	}
	fmt.Fprintf(bw, "p %s %d %d\n", DefaultFormat, g.VertexCount(), g.EdgeCount())
	for _, e := range g.Edges() {
		fmt.Fprintf(bw, "e %d %d\n", e.U, e.V)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("dimacs: write: %w", err)
	}

	return nil
}

// WriteFile writes g to path, truncating any existing file.
func WriteFile(path string, g *core.Graph, comments ...string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dimacs: %w", err)
	}
	if err := Write(f, g, comments...); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
