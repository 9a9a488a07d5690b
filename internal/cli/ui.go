package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/shelfmount/pkg/fixture"
	"github.com/matzehuels/shelfmount/pkg/placement"
	"github.com/matzehuels/shelfmount/pkg/solver"
	"github.com/matzehuels/shelfmount/pkg/units"
)

// stdout receives all status output. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
	StyleError     = lipgloss.NewStyle().Foreground(colorRed)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(22)
	fmt.Fprintln(stdout, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printCacheStatus prints how many artifacts were served from the cache.
func printCacheStatus(hits, total int) {
	status, style := iconFresh, styleComputed
	if hits == total && total > 0 {
		status, style = iconCached, styleCached
	}
	line := StyleDim.Render(fmt.Sprintf("%d artifact(s)", total)) + StyleDim.Render(" · ") + style.Render(status)
	if hits > 0 && hits < total {
		line += StyleDim.Render(fmt.Sprintf(" · %d cached", hits))
	}
	fmt.Fprintln(stdout, "  "+line)
}

func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}

// =============================================================================
// Plan Output
// =============================================================================

// fraction formats a length as its nearest binary fraction with the
// decimal value alongside.
func fraction(in float64, maxDen int) string {
	return fmt.Sprintf(`%s (%.4f")`, units.NearestBinaryFraction(in, maxDen), in)
}

// checkMark renders a clearance check as a styled tick or cross with the
// signed margin.
func checkMark(c solver.ClearanceCheck) string {
	margin := units.FormatMm(c.Clearance, 2)
	if c.IsOk {
		return StyleSuccess.Render(iconSuccess + " " + margin)
	}
	return StyleError.Render(iconError + " " + margin)
}

func checkFor(checks []solver.ClearanceCheck, side solver.Side) string {
	for _, c := range checks {
		if c.Side == side {
			return checkMark(c)
		}
	}
	return StyleDim.Render("—")
}

// planTable renders one row per position. Parallel pipes get a single row.
func planTable(p placement.Plan, maxDen int) string {
	positions := p.Positions()
	if p.Spacing.Shared() {
		positions = positions[1:]
	}

	rows := make([][]string, 0, len(positions))
	for _, pp := range positions {
		name := string(pp.Position)
		if p.Spacing.Shared() {
			name = "both"
		}
		status := StyleSuccess.Render("ok")
		if pp.Result.HasConflict {
			status = StyleWarning.Render("conflict")
		} else if !pp.OK() {
			status = StyleWarning.Render("check")
		}
		rows = append(rows, []string{
			name,
			units.NearestBinaryFraction(pp.Spacing, maxDen).String(),
			fraction(pp.Result.Shift, maxDen),
			fmt.Sprintf("%.4f / %.4f", pp.Result.MinShift, pp.Result.MaxShift),
			checkFor(pp.Nut, solver.Left) + "  " + checkFor(pp.Nut, solver.Right),
			checkFor(pp.ButtonHead, solver.Left) + "  " + checkFor(pp.ButtonHead, solver.Right),
			status,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Position", "Spacing", "Shift", "Min / max", "Nut L  R", "Head L  R", "").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

// printPlan prints the solved placement with its clearance checks and
// warnings.
func printPlan(p placement.Plan, maxDen int) {
	title := "Bracket placement"
	if p.Label != "" {
		title += " · " + p.Label
	}
	fmt.Fprintln(stdout, StyleTitle.Render(title))
	printDetail("%s, policy %s", p.Spacing, p.Policy)
	fmt.Fprintln(stdout, planTable(p, maxDen))

	front := p.At(fixture.Front)
	printKeyValue("Bracket edge to shelf", fraction(front.Measurements.BracketEdgeFromShelfEdge, maxDen))
	printKeyValue("Inner hole from edge", fraction(front.Measurements.InnerHoleFromShelfEdge, maxDen))
	if !p.Spacing.Shared() {
		back := p.At(fixture.Back)
		printKeyValue("Back inner hole", fraction(back.Measurements.InnerHoleFromShelfEdge, maxDen))
	}
	printKeyValue("Back bracket inset", fraction(p.Depth.BackOffset, maxDen))
	printKeyValue("Front bracket offset", fraction(p.Depth.FrontOffset, maxDen))

	warnings := p.Warnings()
	if len(warnings) > 0 {
		printNewline()
		for _, w := range warnings {
			printWarning("%s", w.Message)
		}
	}
	printNewline()
	if p.OK() {
		printSuccess("All clearances satisfied")
	} else if p.HasConflict() {
		printError("Conflict: the brackets cannot be shifted far enough")
	} else {
		printWarning("Placement solved with %d warning(s)", len(warnings))
	}
}
