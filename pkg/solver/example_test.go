package solver_test

import (
	"fmt"

	"github.com/matzehuels/shelfmount/pkg/fixture"
	"github.com/matzehuels/shelfmount/pkg/solver"
)

func ExampleSolve() {
	in := solver.InputFor(fixture.Default(), fixture.DefaultSpacingInput(), fixture.Front, solver.PolicyStandard)
	res := solver.Solve(in)
	fmt.Printf("shift %.4f in, conflict %v\n", res.Shift, res.HasConflict)
	for _, side := range solver.Sides {
		c := solver.NutToPipeClearance(side, res.Shift, in)
		fmt.Printf("%s nut ok: %v\n", c.Side, c.IsOk)
	}
	// Output:
	// shift 0.3340 in, conflict false
	// left nut ok: true
	// right nut ok: true
}
