package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/shelfmount/pkg/errors"
	"github.com/matzehuels/shelfmount/pkg/units"
)

func (c *CLI) parseCommand() *cobra.Command {
	var (
		mm     bool
		maxDen int
	)

	cmd := &cobra.Command{
		Use:   "parse <length>...",
		Short: "Convert length expressions to decimal, fraction and millimetres",
		Long: `Parse tape-measure lengths such as "28 31/32", "2-5/8", "5/8", "736mm" or
"29.5in" and print them as decimal inches, the nearest binary fraction and
millimetres. Unsuffixed values are inches unless --mm is given.`,
		Example: `  shelfmount parse "28 31/32" 736mm
  shelfmount parse --mm 38 9.3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxDen == 0 {
				maxDen = c.settings().Display.MaxDenominator
			}
			failed := 0
			for _, arg := range args {
				in, err := parseLength(arg, mm)
				if err != nil {
					printError("%s: %s", arg, errs.UserMessage(err))
					failed++
					continue
				}
				printLength(arg, in, maxDen)
			}
			if failed > 0 {
				return errs.New(errs.ErrCodeUnparseableLength, "%d of %d lengths could not be parsed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&mm, "mm", false, "treat unsuffixed values as millimetres")
	cmd.Flags().IntVar(&maxDen, "max-denominator", 0, "largest fraction denominator (default from config)")
	return cmd
}

func parseLength(s string, mm bool) (float64, error) {
	if mm {
		return units.ParseMillimetres(s)
	}
	return units.ParseLengthUnit(s)
}

func printLength(input string, in float64, maxDen int) {
	f := units.NearestBinaryFraction(in, maxDen)
	fmt.Fprintf(stdout, "%s %s %s  %s  %s\n",
		StyleDim.Render(fmt.Sprintf("%-14s", input)),
		StyleDim.Render(iconArrow),
		StyleValue.Render(fmt.Sprintf(`%.5f"`, in)),
		StyleHighlight.Render(f.String()),
		StyleDim.Render(units.FormatMm(in, 2)))
}
