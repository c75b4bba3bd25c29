// Package tui is the interactive terminal dashboard: two operand fields,
// an engine selector, live progress and a result panel.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/nttmul/internal/config"
	"github.com/agbru/nttmul/internal/digits"
	apperrors "github.com/agbru/nttmul/internal/errors"
	"github.com/agbru/nttmul/internal/multiply"
	"github.com/agbru/nttmul/internal/orchestration"
	"github.com/agbru/nttmul/internal/sysmon"
)

const (
	fieldA = iota
	fieldB
	numFields
)

// tickInterval paces the session clock and memory sampling.
const tickInterval = 500 * time.Millisecond

// runState is the state of the current or last multiplication.
type runState struct {
	generation uint64
	cancel     context.CancelFunc
	running    bool
	engines    []string
	progress   []float64
	average    float64
	eta        time.Duration
	started    time.Time

	lenA, lenB int
	results    []orchestration.MultiplicationResult
	final      *orchestration.MultiplicationResult
	exitCode   int
	err        error
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	inputs [numFields]textinput.Model
	focus  int

	factory     multiply.Factory
	engines     []string
	engineIndex int
	options     multiply.Options
	timeout     time.Duration

	header  HeaderModel
	metrics MetricsModel
	keymap  KeyMap
	help    help.Model

	run runState

	parentCtx context.Context
	ref       *programRef
	width     int
	height    int
}

// NewModel builds the dashboard for the engines of factory. cfg supplies
// the initial operands, engine, timeout and engine options.
func NewModel(parentCtx context.Context, factory multiply.Factory, cfg config.AppConfig, version string) Model {
	engines := factory.List()
	engineIndex := 0
	for i, name := range engines {
		if name == cfg.Engine {
			engineIndex = i
		}
	}

	var inputs [numFields]textinput.Model
	for i, label := range [numFields]string{"A", "B"} {
		ti := textinput.New()
		ti.Prompt = promptStyle.Render(label + " › ")
		ti.Placeholder = "decimal digits"
		ti.Validate = validateDigits
		inputs[i] = ti
	}
	inputs[fieldA].SetValue(cfg.A)
	inputs[fieldB].SetValue(cfg.B)
	inputs[fieldA].Focus()

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	return Model{
		inputs:      inputs,
		factory:     factory,
		engines:     engines,
		engineIndex: engineIndex,
		options:     cfg.ToOptions(),
		timeout:     timeout,
		header:      NewHeaderModel(version),
		metrics:     NewMetricsModel(),
		keymap:      DefaultKeyMap(),
		help:        help.New(),
		parentCtx:   parentCtx,
		ref:         &programRef{},
	}
}

// validateDigits rejects anything but decimal digits while typing.
func validateDigits(s string) error {
	if i := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }); i >= 0 {
		return fmt.Errorf("character %q at offset %d: %w", s[i], i, digits.ErrInvalidDigit)
	}
	return nil
}

// SelectedEngine returns the engine a plain run uses.
func (m Model) SelectedEngine() string {
	if len(m.engines) == 0 {
		return ""
	}
	return m.engines[m.engineIndex]
}

// ExitCode is the exit code of the last finished run.
func (m Model) ExitCode() int { return m.run.exitCode }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.header.SetWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case ProgressMsg:
		if msg.Generation != m.run.generation || !m.run.running {
			return m, nil
		}
		if msg.EngineIndex >= 0 && msg.EngineIndex < len(m.run.progress) {
			m.run.progress[msg.EngineIndex] = msg.Value
		}
		m.run.average, m.run.eta = msg.Average, msg.ETA
		return m, nil

	case ResultsMsg:
		if msg.Generation != m.run.generation {
			return m, nil
		}
		m.finishRun(msg)
		return m, nil

	case TickMsg:
		return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.metrics.UpdateSysStats(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.cancelRun()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keymap.Cancel):
		m.cancelRun()
		return m, nil

	case key.Matches(msg, m.keymap.NextField):
		return m, m.setFocus((m.focus + 1) % numFields)

	case key.Matches(msg, m.keymap.PrevField):
		return m, m.setFocus((m.focus + numFields - 1) % numFields)

	case key.Matches(msg, m.keymap.NextEngine):
		if len(m.engines) > 0 {
			m.engineIndex = (m.engineIndex + 1) % len(m.engines)
		}
		return m, nil

	case key.Matches(msg, m.keymap.PrevEngine):
		if len(m.engines) > 0 {
			m.engineIndex = (m.engineIndex + len(m.engines) - 1) % len(m.engines)
		}
		return m, nil

	case key.Matches(msg, m.keymap.Clear):
		m.cancelRun()
		for i := range m.inputs {
			m.inputs[i].Reset()
		}
		m.run = runState{generation: m.run.generation}
		return m, m.setFocus(fieldA)

	case key.Matches(msg, m.keymap.Run):
		return m.startRun([]string{m.SelectedEngine()})

	case key.Matches(msg, m.keymap.Compare):
		return m.startRun(m.engines)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(field int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = field
	return m.inputs[m.focus].Focus()
}

func (m *Model) cancelRun() {
	if m.run.cancel != nil {
		m.run.cancel()
		m.run.cancel = nil
	}
}

// startRun parses the operands and launches the named engines. A new run
// supersedes the previous one: its late messages are ignored.
func (m Model) startRun(names []string) (tea.Model, tea.Cmd) {
	m.cancelRun()
	m.run = runState{generation: m.run.generation + 1}

	opts := m.options.Normalize()
	a, errA := digits.ParseWithCapacity(m.inputs[fieldA].Value(), opts.MaxDigits)
	b, errB := digits.ParseWithCapacity(m.inputs[fieldB].Value(), opts.MaxDigits)
	if err := errors.Join(errA, errB); err != nil {
		m.run.err = err
		m.run.exitCode = apperrors.ExitCodeFor(err)
		return m, nil
	}

	engines := make([]multiply.Engine, 0, len(names))
	for _, name := range names {
		e, err := m.factory.Get(name)
		if err != nil {
			m.run.err = err
			m.run.exitCode = apperrors.ExitErrorConfig
			return m, nil
		}
		engines = append(engines, e)
	}
	if len(engines) == 0 {
		m.run.err = errors.New("no engine registered")
		m.run.exitCode = apperrors.ExitErrorConfig
		return m, nil
	}

	ctx, cancel := context.WithTimeout(m.parentCtx, m.timeout)
	m.run.cancel = cancel
	m.run.running = true
	m.run.engines = names
	m.run.progress = make([]float64, len(engines))
	m.run.started = time.Now()
	m.run.lenA, m.run.lenB = a.Len(), b.Len()

	req := orchestration.Request{A: a, B: b, Options: m.options}
	return m, multiplyCmd(ctx, cancel, m.ref, engines, req, m.run.generation)
}

// finishRun stores the outcome of the current run.
func (m *Model) finishRun(msg ResultsMsg) {
	m.run.running = false
	m.run.cancel = nil
	m.run.results = msg.Results
	m.run.final = msg.Final
	m.run.exitCode = msg.ExitCode
	for i := range m.run.progress {
		m.run.progress[i] = 1
	}
	if msg.Final != nil {
		m.metrics.RecordRun(msg.Final.Duration)
		return
	}
	for _, res := range msg.Results {
		if res.Err != nil {
			m.run.err = res.Err
			break
		}
	}
}

// multiplyCmd runs the engines and reports their results.
func multiplyCmd(ctx context.Context, cancel context.CancelFunc, ref *programRef, engines []multiply.Engine, req orchestration.Request, gen uint64) tea.Cmd {
	return func() tea.Msg {
		defer cancel()
		reporter := &TUIProgressReporter{ref: ref, generation: gen}
		results := orchestration.ExecuteMultiplications(ctx, engines, req, reporter, io.Discard)

		var collector resultCollector
		presOpts := orchestration.PresentationOptions{LenA: req.A.Len(), LenB: req.B.Len()}
		exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, &collector, &collector, io.Discard)
		return ResultsMsg{Generation: gen, Results: results, Final: collector.final, ExitCode: exitCode}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// sampleMemStatsCmd reads the runtime memory statistics.
func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			Alloc:        ms.Alloc,
			HeapSys:      ms.HeapSys,
			NumGC:        ms.NumGC,
			PauseTotalNs: ms.PauseTotalNs,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

// sampleSysStatsCmd reads the host-wide load.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

// Run starts the dashboard and returns the exit code of the last run.
func Run(ctx context.Context, factory multiply.Factory, cfg config.AppConfig, version string) int {
	initTUIStyles()

	model := NewModel(ctx, factory, cfg, version)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		m.cancelRun()
		return m.ExitCode()
	}
	return apperrors.ExitSuccess
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	width := m.width
	sections := []string{
		m.header.View(),
		focusedPanelStyle.Width(width - 2).Render(m.renderInputs()),
		panelStyle.Width(width - 2).Render(m.renderEngines()),
		panelStyle.Width(width - 2).Render(m.renderResult(width - 6)),
		panelStyle.Width(width - 2).Render(m.metrics.View()),
		m.help.View(m.keymap),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
