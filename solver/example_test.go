package solver_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/maxclique/builder"
	"github.com/katalvlaran/maxclique/config"
	"github.com/katalvlaran/maxclique/solver"
)

// ExampleSolve runs the full pipeline on a triangle next to a disjoint K4.
func ExampleSolve() {
	g := builder.MustBuild(nil, builder.Complete(3), builder.Complete(4))

	rec, err := solver.Solve(context.Background(), g, config.Default())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("clique:", rec.Clique)
	fmt.Println("size:", rec.CliqueSize, "valid:", rec.IsClique)

	// Output:
	// clique: [4 5 6 7]
	// size: 4 valid: true
}
