package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfmount/pkg/favorites"
	"github.com/matzehuels/shelfmount/pkg/units"
)

func (c *CLI) favoritesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage saved spacing configurations",
		Long: `Save, list, load and delete named spacing configurations. Favorites live in
the store selected by [storage] in the config file: a JSON file (default),
Redis or MongoDB.

Favorites are referenced by id, a unique id prefix or their label.`,
	}

	cmd.AddCommand(c.favoritesListCommand())
	cmd.AddCommand(c.favoritesSaveCommand())
	cmd.AddCommand(c.favoritesLoadCommand())
	cmd.AddCommand(c.favoritesDeleteCommand())

	return cmd
}

// withStore opens the favorites store for the duration of fn.
func (c *CLI) withStore(ctx context.Context, fn func(favorites.Store) error) error {
	store, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func (c *CLI) favoritesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved favorites",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(store favorites.Store) error {
				favs, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(favs) == 0 {
					printInfo("No favorites saved")
					printNextStep("Save one with", appName+` favorites save <label> --spacing "28 31/32"`)
					return nil
				}
				fmt.Fprintln(stdout, favoritesTable(favs, c.settings().Display.MaxDenominator))
				return nil
			})
		},
	}
}

func favoritesTable(favs []favorites.Favorite, maxDen int) string {
	rows := make([][]string, 0, len(favs))
	for _, f := range favs {
		spacing := units.NearestBinaryFraction(f.Spacing.Front, maxDen).String()
		if !f.Spacing.Shared() {
			spacing += " / " + units.NearestBinaryFraction(f.Spacing.Back, maxDen).String()
		}
		rows = append(rows, []string{
			shortID(f.ID),
			f.Label,
			spacing,
			string(f.Spacing.Convention),
			units.FormatMm(f.Spacing.NutClearance, 2),
			f.CreatedAt.Local().Format("Jan 2, 2006 15:04"),
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Label", "Spacing", "Measured", "Nut gap", "Saved").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1:
				return styleHeader.Padding(0, 1)
			case col == 0:
				return base.Foreground(colorDim)
			case col == 1:
				return base.Foreground(colorCyan)
			}
			return base
		}).
		Render()
}

func (c *CLI) favoritesSaveCommand() *cobra.Command {
	var in inputFlags

	cmd := &cobra.Command{
		Use:   "save <label>",
		Short: "Save the current spacing as a favorite",
		Example: `  shelfmount favorites save kitchen --spacing "28 31/32" --nut-gap 1.5
  shelfmount favorites save garage --spacing 29 --back 30.25`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, err := in.resolve(ctx, c)
			if err != nil {
				return err
			}
			return c.withStore(ctx, func(store favorites.Store) error {
				fav, err := store.Save(ctx, favorites.New(args[0], opts.Spacing))
				if err != nil {
					return err
				}
				printSuccess("Saved %s", StyleHighlight.Render(fav.Label))
				printDetail("%s · %s", fav.ID, fav.Spacing)
				printNextStep("Solve it with", fmt.Sprintf("%s solve --favorite %s", appName, shortID(fav.ID)))
				return nil
			})
		},
	}

	in.register(cmd)
	return cmd
}

func (c *CLI) favoritesLoadCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "load <id|label>",
		Short: "Solve a saved favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := inputFlags{favorite: args[0]}
			return c.runSolve(cmd.Context(), &in, asJSON, false)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan as JSON")
	return cmd
}

func (c *CLI) favoritesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id|label>",
		Aliases: []string{"rm"},
		Short:   "Delete a favorite",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(store favorites.Store) error {
				fav, err := favorites.Find(ctx, store, args[0])
				if err != nil {
					return err
				}
				if err := store.Delete(ctx, fav.ID); err != nil {
					return err
				}
				printSuccess("Deleted %s", StyleHighlight.Render(fav.Label))
				return nil
			})
		},
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
