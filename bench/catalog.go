// Package bench runs the solver over DIMACS benchmark instances and collects
// one report.Record per instance.
package bench

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSet indicates an unsupported benchmark set name.
var ErrUnknownSet = errors.New("bench: unknown benchmark set")

// Set names a difficulty tier of the catalogue.
type Set string

// Benchmark sets.
const (
	Easy   Set = "easy"
	Medium Set = "medium"
	Hard   Set = "hard"
	All    Set = "all"
)

// ParseSet validates a set name, case-insensitively.
func ParseSet(s string) (Set, error) {
	switch Set(strings.ToLower(s)) {
	case Easy:
		return Easy, nil
	case Medium:
		return Medium, nil
	case Hard:
		return Hard, nil
	case All:
		return All, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownSet, s)
}

// Instance is one DIMACS file of the catalogue.
type Instance struct {
	// Name is the file name inside the benchmark directory.
	Name string
	Set  Set
	// Optimum is the known maximum clique size; zero when unknown.
	Optimum int
}

// Known reports whether the optimum is catalogued.
func (i Instance) Known() bool { return i.Optimum > 0 }

var catalog = []Instance{
	{Name: "johnson8-2-4.clq", Set: Easy, Optimum: 4},
	{Name: "johnson16-2-4.clq", Set: Easy, Optimum: 8},
	{Name: "MANN_a9.clq", Set: Easy, Optimum: 16},
	{Name: "keller4.clq", Set: Easy, Optimum: 11},
	{Name: "c-fat200-1.clq", Set: Easy},
	{Name: "c-fat500-1.clq", Set: Easy},
	{Name: "c-fat500-10.clq", Set: Easy},
	{Name: "c-fat200-2.clq", Set: Easy},
	{Name: "hamming8-4.clq", Set: Easy, Optimum: 16},

	{Name: "gen200_p0.9_55.clq", Set: Medium, Optimum: 55},
	{Name: "gen200_p0.9_44.clq", Set: Medium, Optimum: 44},
	{Name: "C125.9.clq", Set: Medium, Optimum: 34},
	{Name: "brock200_2.clq", Set: Medium, Optimum: 12},
	{Name: "brock200_3.clq", Set: Medium, Optimum: 15},
	{Name: "brock200_4.clq", Set: Medium, Optimum: 17},
	{Name: "brock200_1.clq", Set: Medium, Optimum: 21},
	{Name: "p_hat300-1.clq", Set: Medium, Optimum: 8},
	{Name: "p_hat1000-1.clq", Set: Medium, Optimum: 10},
	{Name: "san1000.clq", Set: Medium, Optimum: 15},

	{Name: "brock400_1.clq", Set: Hard, Optimum: 27},
	{Name: "brock400_2.clq", Set: Hard, Optimum: 29},
	{Name: "brock400_3.clq", Set: Hard, Optimum: 31},
	{Name: "brock400_4.clq", Set: Hard, Optimum: 33},
	{Name: "MANN_a27.clq", Set: Hard, Optimum: 126},
	{Name: "MANN_a45.clq", Set: Hard, Optimum: 345},
	{Name: "sanr400_0.7.clq", Set: Hard, Optimum: 21},
	{Name: "sanr400_0.9.clq", Set: Hard, Optimum: 42},
	{Name: "p_hat1000-2.clq", Set: Hard, Optimum: 46},
	{Name: "p_hat500-3.clq", Set: Hard, Optimum: 50},
	{Name: "p_hat1500-1.clq", Set: Hard, Optimum: 12},
	{Name: "p_hat300-3.clq", Set: Hard, Optimum: 36},
}

// Catalog returns the instances of set in catalogue order. All returns
// every tier, easiest first.
func Catalog(set Set) ([]Instance, error) {
	set, err := ParseSet(string(set))
	if err != nil {
		return nil, err
	}
	var out []Instance
	for _, in := range catalog {
		if set == All || in.Set == set {
			out = append(out, in)
		}
	}

	return out, nil
}

// Lookup finds a catalogued instance by file name.
func Lookup(name string) (Instance, bool) {
	for _, in := range catalog {
		if in.Name == name {
			return in, true
		}
	}

	return Instance{}, false
}
