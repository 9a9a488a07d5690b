package cli

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/shelfmount/pkg/errors"
	"github.com/matzehuels/shelfmount/pkg/favorites"
	"github.com/matzehuels/shelfmount/pkg/fixture"
	"github.com/matzehuels/shelfmount/pkg/pipeline"
	"github.com/matzehuels/shelfmount/pkg/placement"
	"github.com/matzehuels/shelfmount/pkg/units"
)

var (
	fieldLabelStyle   = lipgloss.NewStyle().Foreground(colorGray).Width(14)
	fieldFocusedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	fieldNormalStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	helpStyle         = lipgloss.NewStyle().Foreground(colorDim)
)

// Nudge steps for pgup/pgdown.
var (
	spacingStep = 1.0 / 32
	nutGapStep  = units.ToInches(0.1)
)

type field int

const (
	fieldFront field = iota
	fieldBack
	fieldNutGap
	fieldCount
)

var fieldNames = [fieldCount]string{"Spacing", "Back spacing", "Nut gap (mm)"}

type savedMsg struct {
	fav favorites.Favorite
	err error
}

// solveModel is the bubbletea model behind "shelfmount tui". Every edit
// re-parses the inputs and re-solves the whole plan. An input that does not
// parse leaves the last valid plan on screen.
type solveModel struct {
	runner   *pipeline.Runner
	store    favorites.Store
	geometry fixture.Geometry
	opts     pipeline.Options
	maxDen   int

	inputs  [fieldCount]string
	focus   field
	spacing fixture.Spacing
	plan    placement.Plan

	inputErr error
	solveErr error
	status   string
}

func newSolveModel(runner *pipeline.Runner, store favorites.Store, g fixture.Geometry, opts pipeline.Options, maxDen int) solveModel {
	m := solveModel{
		runner:   runner,
		store:    store,
		geometry: g,
		opts:     opts,
		maxDen:   maxDen,
		spacing:  opts.Spacing,
	}
	m.inputs[fieldFront] = formatNumber(opts.Spacing.Front)
	if !opts.Spacing.Shared() {
		m.inputs[fieldBack] = formatNumber(opts.Spacing.Back)
	}
	m.inputs[fieldNutGap] = formatNumber(units.ToMm(opts.Spacing.NutClearance))
	m.solve()
	return m
}

// formatNumber prints v with at most five decimals and no trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e5)/1e5, 'f', -1, 64)
}

func (m solveModel) Init() tea.Cmd {
	return nil
}

func (m solveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.err != nil {
			m.status = StyleError.Render("save failed: " + errs.UserMessage(msg.err))
		} else {
			m.status = StyleSuccess.Render(fmt.Sprintf("saved %s (%s)", msg.fav.Label, shortID(msg.fav.ID)))
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down":
			m.focus = (m.focus + 1) % fieldCount
		case "shift+tab", "up":
			m.focus = (m.focus + fieldCount - 1) % fieldCount
		case "pgup":
			m.nudge(1)
		case "pgdown":
			m.nudge(-1)
		case "ctrl+t":
			m.toggleConvention()
		case "ctrl+s":
			return m, m.save()
		case "backspace":
			if s := m.inputs[m.focus]; s != "" {
				r := []rune(s)
				m.inputs[m.focus] = string(r[:len(r)-1])
				m.edited()
			}
		case "ctrl+u":
			m.inputs[m.focus] = ""
			m.edited()
		default:
			switch msg.Type {
			case tea.KeyRunes:
				m.inputs[m.focus] += string(msg.Runes)
				m.edited()
			case tea.KeySpace:
				m.inputs[m.focus] += " "
				m.edited()
			}
		}
	}
	return m, nil
}

// edited re-parses every field. The last valid spacing is kept when parsing
// fails.
func (m *solveModel) edited() {
	m.status = ""
	in := pipeline.SpacingInput{
		Front:        m.inputs[fieldFront],
		Back:         m.inputs[fieldBack],
		NutClearance: m.inputs[fieldNutGap],
	}
	if strings.TrimSpace(in.Back) == "" {
		in.Back = in.Front
	}
	if strings.TrimSpace(in.NutClearance) == "" {
		in.NutClearance = "0"
	}
	sp, err := pipeline.ParseSpacing(in, m.spacing)
	if err != nil {
		m.inputErr = err
		return
	}
	m.inputErr = nil
	m.spacing = sp
	m.solve()
}

func (m *solveModel) solve() {
	opts := m.opts
	opts.Spacing = m.spacing
	plan, err := m.runner.Solve(context.Background(), m.geometry, opts)
	if err != nil {
		m.solveErr = err
		return
	}
	m.solveErr = nil
	m.plan = plan
}

func (m *solveModel) nudge(dir float64) {
	switch m.focus {
	case fieldFront:
		m.inputs[fieldFront] = formatNumber(m.spacing.Front + dir*spacingStep)
	case fieldBack:
		m.inputs[fieldBack] = formatNumber(m.spacing.Back + dir*spacingStep)
	case fieldNutGap:
		v := math.Max(0, m.spacing.NutClearance+dir*nutGapStep)
		m.inputs[fieldNutGap] = formatNumber(units.ToMm(v))
	}
	m.edited()
}

func (m *solveModel) toggleConvention() {
	if m.spacing.Convention == fixture.ConventionInner {
		m.spacing.Convention = fixture.ConventionCenter
	} else {
		m.spacing.Convention = fixture.ConventionInner
	}
	m.edited()
}

func (m solveModel) save() tea.Cmd {
	if m.store == nil {
		return func() tea.Msg {
			return savedMsg{err: errs.New(errs.ErrCodeUnsupported, "favorites store unavailable")}
		}
	}
	label := m.opts.Label
	if label == "" {
		label = "tui " + time.Now().Format("2006-01-02 15:04")
	}
	fav := favorites.New(label, m.spacing)
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		saved, err := store.Save(ctx, fav)
		return savedMsg{fav: saved, err: err}
	}
}

func (m solveModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Shelfmount"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s, %s", m.spacing.Convention, m.plan.Policy)))
	b.WriteString("\n\n")

	for f := field(0); f < fieldCount; f++ {
		cursor, style := "  ", fieldNormalStyle
		if f == m.focus {
			cursor, style = "▸ ", fieldFocusedStyle
		}
		value := m.inputs[f]
		if f == fieldBack && strings.TrimSpace(value) == "" {
			value = StyleDim.Render("same as front")
		} else {
			value = style.Render(value)
			if f == m.focus {
				value += style.Render("_")
			}
		}
		b.WriteString(cursor + fieldLabelStyle.Render(fieldNames[f]) + value + "\n")
	}
	if m.inputErr != nil {
		b.WriteString(StyleError.Render("  " + errs.UserMessage(m.inputErr)))
		b.WriteString(StyleDim.Render("  (showing last valid input)"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.solveErr != nil {
		b.WriteString(StyleError.Render(errs.UserMessage(m.solveErr)) + "\n")
	} else {
		b.WriteString(planTable(m.plan, m.maxDen) + "\n")
		front := m.plan.At(fixture.Front)
		b.WriteString(StyleDim.Render("inner hole from shelf edge ") +
			StyleValue.Render(fraction(front.Measurements.InnerHoleFromShelfEdge, m.maxDen)) + "\n")
		for _, w := range m.plan.Warnings() {
			b.WriteString(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(w.Message) + "\n")
		}
		if m.plan.OK() {
			b.WriteString(styleIconSuccess.Render(iconSuccess) + " all clearances satisfied\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ field  pgup/pgdn nudge  ctrl+t convention  ctrl+s save  esc quit"))
	return b.String()
}

func (c *CLI) tuiCommand() *cobra.Command {
	var in inputFlags

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Edit spacing interactively and watch the placement update",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, err := in.resolve(ctx, c)
			if err != nil {
				return err
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			store, err := c.openStore(ctx)
			if err != nil {
				c.Logger.Warn("favorites unavailable", "err", err)
				store = nil
			} else {
				defer store.Close()
			}

			runner := pipeline.NewRunner(nil, nil, c.Logger)
			m := newSolveModel(runner, store, c.geometry(), opts, c.settings().Display.MaxDenominator)
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		},
	}

	in.register(cmd)
	return cmd
}
