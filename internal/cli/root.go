package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfmount/pkg/favorites"
	"github.com/matzehuels/shelfmount/pkg/fixture"
	"github.com/matzehuels/shelfmount/pkg/pipeline"
	"github.com/matzehuels/shelfmount/pkg/solver"
)

// inputFlags are the solve inputs shared by solve, render, template and
// favorites save.
type inputFlags struct {
	spacing   pipeline.SpacingInput
	favorite  string
	policy    string
	depthMode string
	label     string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.spacing.Front, "spacing", "s", "", `pipe spacing, e.g. "28 31/32", "29.5in" or "736mm" (default from config)`)
	fl.StringVar(&f.spacing.Back, "back", "", "back spacing when the pipes are not parallel")
	fl.StringVar(&f.spacing.Convention, "convention", "", "how spacing is measured: center or inner")
	fl.StringVar(&f.spacing.NutClearance, "nut-gap", "", "required nut-to-pipe gap, millimetres unless suffixed")
	fl.StringVar(&f.favorite, "favorite", "", "start from a saved favorite (id, id prefix or label)")
	fl.StringVar(&f.policy, "policy", "", "bound policy: "+strings.Join(solver.PolicyNames(), ", "))
	fl.StringVar(&f.depthMode, "depth-mode", "", "depth placement: golden or flush")
	fl.StringVar(&f.label, "label", "", "label printed on templates")

	_ = cmd.RegisterFlagCompletionFunc("convention", fixedCompletion("center", "inner"))
	_ = cmd.RegisterFlagCompletionFunc("policy", fixedCompletion(solver.PolicyNames()...))
	_ = cmd.RegisterFlagCompletionFunc("depth-mode", fixedCompletion("golden", "flush"))
}

// resolve builds pipeline options from the config, an optional favorite
// and the flags, in that order of precedence.
func (f *inputFlags) resolve(ctx context.Context, c *CLI) (pipeline.Options, error) {
	opts := c.pipelineOptions()

	base, err := c.settings().Spacing()
	if err != nil {
		return opts, err
	}
	if f.favorite != "" {
		fav, err := c.findFavorite(ctx, f.favorite)
		if err != nil {
			return opts, err
		}
		base = fav.Spacing
		if fav.Label != "" {
			opts.Label = fav.Label
		}
		c.Logger.Debug("using favorite", "id", fav.ID, "label", fav.Label)
	}

	sp, err := pipeline.ParseSpacing(f.spacing, base)
	if err != nil {
		return opts, err
	}
	opts.Spacing = sp
	if f.policy != "" {
		opts.Policy = f.policy
	}
	if f.depthMode != "" {
		opts.DepthMode = f.depthMode
	}
	if f.label != "" {
		opts.Label = f.label
	}
	return opts, nil
}

func (c *CLI) findFavorite(ctx context.Context, ref string) (favorites.Favorite, error) {
	store, err := c.openStore(ctx)
	if err != nil {
		return favorites.Favorite{}, err
	}
	defer store.Close()
	return favorites.Find(ctx, store, ref)
}

// geometry returns the configured fixture.
func (c *CLI) geometry() fixture.Geometry {
	return c.settings().Geometry()
}

func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
