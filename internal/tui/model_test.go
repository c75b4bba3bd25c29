package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/nttmul/internal/config"
	"github.com/agbru/nttmul/internal/digits"
	apperrors "github.com/agbru/nttmul/internal/errors"
	"github.com/agbru/nttmul/internal/multiply"
)

func newTestModel(t *testing.T, a, b string) Model {
	t.Helper()
	cfg := config.AppConfig{A: a, B: b, Engine: multiply.EngineNTT, Timeout: time.Minute}
	m := NewModel(context.Background(), multiply.NewDefaultFactory(), cfg, "test")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func keyMsg(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

// runToCompletion executes the command returned by a run key and feeds
// its ResultsMsg back into the model.
func runToCompletion(t *testing.T, m Model, k tea.KeyType) Model {
	t.Helper()
	updated, cmd := m.Update(keyMsg(k))
	m = updated.(Model)
	if cmd == nil {
		return m
	}
	msg := cmd()
	res, ok := msg.(ResultsMsg)
	if !ok {
		t.Fatalf("command returned %T, want ResultsMsg", msg)
	}
	updated, _ = m.Update(res)
	return updated.(Model)
}

func TestModel_SingleRun(t *testing.T) {
	m := newTestModel(t, "123", "456")
	if m.SelectedEngine() != multiply.EngineNTT {
		t.Fatalf("selected engine = %s, want ntt", m.SelectedEngine())
	}

	m = runToCompletion(t, m, tea.KeyEnter)

	if m.run.running {
		t.Error("run should be finished")
	}
	if m.run.final == nil || m.run.final.Product.String() != "56088" {
		t.Fatalf("final = %+v, want product 56088", m.run.final)
	}
	if m.ExitCode() != apperrors.ExitSuccess {
		t.Errorf("exit code = %d, want 0", m.ExitCode())
	}
	if m.metrics.runs != 1 {
		t.Errorf("recorded runs = %d, want 1", m.metrics.runs)
	}
	if view := m.View(); !strings.Contains(view, "56088") {
		t.Errorf("view should show the product:\n%s", view)
	}
}

func TestModel_CompareRunsEveryEngine(t *testing.T) {
	m := newTestModel(t, "99999999999999999999", "99999999999999999999")
	m = runToCompletion(t, m, tea.KeyCtrlR)

	if len(m.run.results) != len(m.engines) {
		t.Fatalf("results = %d, want %d", len(m.run.results), len(m.engines))
	}
	for _, res := range m.run.results {
		if res.Err != nil {
			t.Errorf("engine %s failed: %v", res.Engine, res.Err)
		}
	}
	want := "9999999999999999999800000000000000000001"
	if got := m.run.final.Product.String(); got != want {
		t.Errorf("product = %s, want %s", got, want)
	}
}

func TestModel_OperandOverCapacity(t *testing.T) {
	cfg := config.AppConfig{A: "12345", B: "1", Engine: multiply.EngineNTT, MaxDigits: 4}
	m := NewModel(context.Background(), multiply.NewDefaultFactory(), cfg, "test")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(Model)

	updated, cmd := m.Update(keyMsg(tea.KeyEnter))
	m = updated.(Model)
	if cmd != nil {
		t.Error("no command should run for an oversized operand")
	}
	if !errors.Is(m.run.err, digits.ErrInputOverflow) {
		t.Fatalf("run error = %v, want ErrInputOverflow", m.run.err)
	}
	if !strings.Contains(m.View(), "Error:") {
		t.Error("view should show the error")
	}
}

func TestModel_EngineCycling(t *testing.T) {
	m := newTestModel(t, "", "")
	n := len(m.engines)
	start := m.engineIndex

	for i := 0; i < n; i++ {
		updated, _ := m.Update(keyMsg(tea.KeyCtrlN))
		m = updated.(Model)
	}
	if m.engineIndex != start {
		t.Errorf("cycling through %d engines should return to the start", n)
	}

	updated, _ := m.Update(keyMsg(tea.KeyCtrlP))
	m = updated.(Model)
	if m.engineIndex != (start+n-1)%n {
		t.Errorf("engineIndex = %d, want %d", m.engineIndex, (start+n-1)%n)
	}
}

func TestModel_FocusAndTyping(t *testing.T) {
	m := newTestModel(t, "", "")
	type key = tea.KeyMsg

	updated, _ := m.Update(key{Type: tea.KeyRunes, Runes: []rune("12")})
	m = updated.(Model)
	updated, _ = m.Update(keyMsg(tea.KeyTab))
	m = updated.(Model)
	updated, _ = m.Update(key{Type: tea.KeyRunes, Runes: []rune("34")})
	m = updated.(Model)

	if m.focus != fieldB {
		t.Errorf("focus = %d, want field B", m.focus)
	}
	if m.inputs[fieldA].Value() != "12" || m.inputs[fieldB].Value() != "34" {
		t.Errorf("values = %q, %q; want 12, 34", m.inputs[fieldA].Value(), m.inputs[fieldB].Value())
	}

	m = runToCompletion(t, m, tea.KeyEnter)
	if got := m.run.final.Product.String(); got != "408" {
		t.Errorf("product = %s, want 408", got)
	}

	updated, _ = m.Update(keyMsg(tea.KeyCtrlL))
	m = updated.(Model)
	if m.inputs[fieldA].Value() != "" || m.run.final != nil || m.focus != fieldA {
		t.Error("clear should reset the operands, the result and the focus")
	}
}

func TestModel_StaleMessagesIgnored(t *testing.T) {
	m := newTestModel(t, "2", "3")
	updated, cmd := m.Update(keyMsg(tea.KeyEnter))
	m = updated.(Model)
	stale := cmd().(ResultsMsg)

	// A second run supersedes the first.
	updated, cmd = m.Update(keyMsg(tea.KeyEnter))
	m = updated.(Model)

	updated, _ = m.Update(stale)
	m = updated.(Model)
	if !m.run.running {
		t.Fatal("a stale result must not finish the current run")
	}

	updated, _ = m.Update(ProgressMsg{Generation: stale.Generation, EngineIndex: 0, Value: 0.5, Average: 0.5})
	m = updated.(Model)
	if m.run.average != 0 {
		t.Error("a stale progress update must be ignored")
	}

	updated, _ = m.Update(cmd())
	m = updated.(Model)
	if m.run.running || m.run.final == nil {
		t.Error("the current run should complete")
	}
}

func TestModel_ProgressUpdate(t *testing.T) {
	m := newTestModel(t, "2", "3")
	updated, _ := m.Update(keyMsg(tea.KeyEnter))
	m = updated.(Model)

	updated, _ = m.Update(ProgressMsg{Generation: m.run.generation, EngineIndex: 0, Value: 0.4, Average: 0.4, ETA: time.Second})
	m = updated.(Model)
	if m.run.progress[0] != 0.4 || m.run.average != 0.4 {
		t.Errorf("progress = %v, average = %v; want 0.4", m.run.progress[0], m.run.average)
	}
	if !strings.Contains(m.View(), "Running") {
		t.Error("view should show the running state")
	}
	m.cancelRun()
}

func TestModel_QuitAndHelp(t *testing.T) {
	m := newTestModel(t, "", "")

	updated, _ := m.Update(keyMsg(tea.KeyF1))
	m = updated.(Model)
	if !m.help.ShowAll {
		t.Error("f1 should expand the help")
	}

	_, cmd := m.Update(keyMsg(tea.KeyCtrlC))
	if cmd == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestModel_ViewBeforeResize(t *testing.T) {
	m := NewModel(context.Background(), multiply.NewDefaultFactory(), config.AppConfig{}, "dev")
	if m.View() != "Initializing..." {
		t.Errorf("View = %q, want Initializing...", m.View())
	}
}

func TestValidateDigits(t *testing.T) {
	if err := validateDigits("0123456789"); err != nil {
		t.Errorf("digits rejected: %v", err)
	}
	if err := validateDigits("12a"); err == nil {
		t.Error("letters should be rejected")
	}
}
