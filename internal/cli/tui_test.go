package cli

import (
	"context"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/shelfmount/pkg/favorites"
	"github.com/matzehuels/shelfmount/pkg/fixture"
	"github.com/matzehuels/shelfmount/pkg/pipeline"
)

func testModel(t *testing.T, store favorites.Store) solveModel {
	t.Helper()
	opts := pipeline.Options{Spacing: fixture.DefaultSpacingInput()}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	return newSolveModel(pipeline.NewRunner(nil, nil, nil), store, fixture.Default(), opts, 32)
}

func press(m solveModel, keys ...tea.KeyMsg) solveModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(solveModel)
	}
	return m
}

func typeText(m solveModel, s string) solveModel {
	return press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestSolveModelInitial(t *testing.T) {
	m := testModel(t, nil)
	if m.inputs[fieldFront] != "28.96875" {
		t.Errorf("front input = %q", m.inputs[fieldFront])
	}
	if m.inputs[fieldBack] != "" {
		t.Errorf("back input = %q, want empty for shared spacing", m.inputs[fieldBack])
	}
	if m.solveErr != nil {
		t.Fatalf("initial solve: %v", m.solveErr)
	}
	if m.plan.Spacing.Front != fixture.DefaultSpacing {
		t.Errorf("plan spacing = %v", m.plan.Spacing.Front)
	}
}

func TestSolveModelTyping(t *testing.T) {
	m := testModel(t, nil)

	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlU})
	m = typeText(m, "29")
	if m.inputErr != nil {
		t.Fatalf("inputErr = %v", m.inputErr)
	}
	if m.spacing.Front != 29 || m.spacing.Back != 29 {
		t.Errorf("spacing = %v, want 29 front and back", m.spacing)
	}
	if m.plan.Spacing.Front != 29 {
		t.Errorf("plan not re-solved: %v", m.plan.Spacing.Front)
	}

	m = typeText(m, "/")
	if m.inputErr == nil {
		t.Fatal("expected a parse error for \"29/\"")
	}
	if m.spacing.Front != 29 || m.plan.Spacing.Front != 29 {
		t.Errorf("last valid input not kept: spacing %v, plan %v", m.spacing.Front, m.plan.Spacing.Front)
	}
	if !strings.Contains(m.View(), "showing last valid input") {
		t.Error("view should flag the stale plan")
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.inputErr != nil {
		t.Errorf("inputErr after backspace = %v", m.inputErr)
	}
}

func TestSolveModelNudge(t *testing.T) {
	m := testModel(t, nil)

	m = press(m, tea.KeyMsg{Type: tea.KeyPgUp})
	if m.spacing.Front != 29 {
		t.Errorf("front after pgup = %v, want 29", m.spacing.Front)
	}
	if m.inputs[fieldFront] != "29" {
		t.Errorf("front input = %q", m.inputs[fieldFront])
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyPgDown})
	if m.focus != fieldBack {
		t.Fatalf("focus = %v, want back", m.focus)
	}
	if math.Abs(m.spacing.Back-(29-1.0/32)) > 1e-9 {
		t.Errorf("back after pgdown = %v", m.spacing.Back)
	}
	if m.spacing.Front != 29 {
		t.Errorf("front changed to %v", m.spacing.Front)
	}
}

func TestSolveModelFocusWraps(t *testing.T) {
	m := testModel(t, nil)
	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != fieldNutGap {
		t.Errorf("focus = %v, want nut gap", m.focus)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.focus != fieldFront {
		t.Errorf("focus = %v, want front", m.focus)
	}
}

func TestSolveModelToggleConvention(t *testing.T) {
	m := testModel(t, nil)
	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.spacing.Convention != fixture.ConventionInner {
		t.Errorf("convention = %v, want inner", m.spacing.Convention)
	}
	if m.plan.Spacing.Convention != fixture.ConventionInner {
		t.Error("plan not re-solved after toggle")
	}
}

func TestSolveModelSave(t *testing.T) {
	store, err := favorites.NewFileStore(t.TempDir() + "/favorites.json")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	m := testModel(t, store)
	m.opts.Label = "hallway"
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("ctrl+s should return a command")
	}
	msg := cmd().(savedMsg)
	if msg.err != nil {
		t.Fatalf("save: %v", msg.err)
	}

	next, _ := m.Update(msg)
	if !strings.Contains(next.(solveModel).status, "hallway") {
		t.Errorf("status = %q", next.(solveModel).status)
	}

	list, err := store.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Spacing.Front != fixture.DefaultSpacing {
		t.Errorf("stored favorites = %+v", list)
	}
}

func TestSolveModelSaveWithoutStore(t *testing.T) {
	m := testModel(t, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	msg := cmd().(savedMsg)
	if msg.err == nil {
		t.Fatal("expected an error without a store")
	}
	next, _ := m.Update(msg)
	if !strings.Contains(next.(solveModel).status, "save failed") {
		t.Errorf("status = %q", next.(solveModel).status)
	}
}

func TestSolveModelQuit(t *testing.T) {
	m := testModel(t, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should return tea.Quit")
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		29:          "29",
		28.96875:    "28.96875",
		1.0 / 3:     "0.33333",
		0.100000001: "0.1",
	}
	for in, want := range tests {
		if got := formatNumber(in); got != want {
			t.Errorf("formatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}
