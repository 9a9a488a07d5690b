package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfmount/pkg/pipeline"
	"github.com/matzehuels/shelfmount/pkg/render/sink"
)

// errConflict is returned by solve --strict when the plan has warnings.
var errConflict = errors.New("placement has conflicts or failed clearance checks")

func (c *CLI) solveCommand() *cobra.Command {
	var (
		in     inputFlags
		asJSON bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "solve [spacing]",
		Short: "Compute the bracket shift and check clearances",
		Long: `Compute how far each bracket must be shifted toward its pipe so the nut
clears the pipe and the screw head stays on the shelf, then report every
clearance check.

The spacing may be given as an argument or with --spacing; it defaults to
[layout] spacing from the config file.`,
		Example: `  shelfmount solve "28 31/32"
  shelfmount solve --spacing 29 --back 30.25 --nut-gap 1.5
  shelfmount solve --favorite kitchen --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				in.spacing.Front = args[0]
			}
			return c.runSolve(cmd.Context(), &in, asJSON, strict)
		},
	}

	in.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any check fails")

	return cmd
}

func (c *CLI) runSolve(ctx context.Context, in *inputFlags, asJSON, strict bool) error {
	opts, err := in.resolve(ctx, c)
	if err != nil {
		return err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	plan, err := runner.Solve(ctx, c.geometry(), opts)
	if err != nil {
		return err
	}
	c.Logger.Debug("solved", "back", plan.Back.Result.Shift, "front", plan.Front.Result.Shift, "conflict", plan.HasConflict())

	if asJSON {
		data, err := sink.RenderJSON(plan, sink.WithJSONBrackets())
		if err != nil {
			return err
		}
		if _, err := stdout.Write(append(data, '\n')); err != nil {
			return err
		}
	} else {
		printPlan(plan, c.settings().Display.MaxDenominator)
	}

	if strict && !plan.OK() {
		return errConflict
	}
	return nil
}
