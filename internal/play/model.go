// Package play is a terminal client for the practice API.
package play

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathpractice/internal/store"
	"github.com/abhisek/mathpractice/internal/ui/components"
	"github.com/abhisek/mathpractice/internal/ui/theme"
)

// API is the subset of the HTTP client the model uses.
type API interface {
	GenerateProblem(ctx context.Context) (*store.Session, error)
	SubmitAnswer(ctx context.Context, sessionID string, answer float64) (*store.Submission, error)
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx context.Context
	api API

	state State
	// resume is the state to return to when an error is dismissed.
	resume State

	session    *store.Session
	submission *store.Submission
	errMsg     string

	input   components.TextInput
	spinner spinner.Model

	correct  int
	answered int

	width  int
	height int
}

// New creates a Model in the idle state.
func New(ctx context.Context, api API) Model {
	return Model{
		ctx:     ctx,
		api:     api,
		state:   StateIdle,
		input:   newAnswerInput(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.Hint)),
	}
}

func newAnswerInput() components.TextInput {
	return components.NewTextInput("Type your answer...", true, 24)
}

// State returns the current state.
func (m Model) State() State { return m.state }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case problemReadyMsg:
		return m.handleProblemReady(msg)

	case feedbackReadyMsg:
		return m.handleFeedbackReady(msg)

	case spinner.TickMsg:
		if !m.state.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == StateProblemShown {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.state {
	case StateGenerating, StateSubmitting:
		return m, nil

	case StateError:
		switch key {
		case "esc", "enter":
			return m.dismiss()
		case "g", "n":
			return m.generate()
		case "q":
			return m, tea.Quit
		}
		return m, nil

	case StateProblemShown:
		switch key {
		case "enter":
			return m.submit()
		case "g", "n":
			return m.generate()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	default: // idle, feedback
		switch key {
		case "g", "n", "enter":
			return m.generate()
		case "q", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

// generate moves to Generating and requests a new problem.
func (m Model) generate() (tea.Model, tea.Cmd) {
	if !m.state.CanGenerate() {
		return m, nil
	}
	if m.state != StateError {
		m.resume = m.state
	}
	m.state = StateGenerating
	m.errMsg = ""
	m.input.Blur()

	api, ctx := m.api, m.ctx
	fetch := func() tea.Msg {
		sess, err := api.GenerateProblem(ctx)
		return problemReadyMsg{Session: sess, Err: err}
	}
	return m, tea.Batch(fetch, m.spinner.Tick)
}

// submit moves to Submitting when the input holds a number.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.state != StateProblemShown || m.session == nil {
		return m, nil
	}
	if strings.TrimSpace(m.input.Value()) == "" {
		return m, nil
	}
	answer, err := m.input.FloatValue()
	if err != nil {
		return m, nil
	}

	m.resume = StateProblemShown
	m.state = StateSubmitting
	m.input.Blur()

	api, ctx, id := m.api, m.ctx, m.session.ID
	send := func() tea.Msg {
		sub, err := api.SubmitAnswer(ctx, id, answer)
		return feedbackReadyMsg{Submission: sub, Err: err}
	}
	return m, tea.Batch(send, m.spinner.Tick)
}

func (m Model) handleProblemReady(msg problemReadyMsg) (tea.Model, tea.Cmd) {
	if m.state != StateGenerating {
		return m, nil
	}
	if msg.Err != nil {
		return m.fail(msg.Err)
	}

	m.session = msg.Session
	m.submission = nil
	m.state = StateProblemShown
	m.input = newAnswerInput()
	return m, m.input.Init()
}

func (m Model) handleFeedbackReady(msg feedbackReadyMsg) (tea.Model, tea.Cmd) {
	if m.state != StateSubmitting {
		return m, nil
	}
	if msg.Err != nil {
		return m.fail(msg.Err)
	}

	m.submission = msg.Submission
	m.answered++
	if msg.Submission.IsCorrect {
		m.correct++
	}
	m.state = StateFeedbackShown
	return m, nil
}

// fail enters the error state. The problem and typed answer are kept.
func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.errMsg = err.Error()
	m.state = StateError
	return m, nil
}

// dismiss leaves the error state for the state it interrupted.
func (m Model) dismiss() (tea.Model, tea.Cmd) {
	m.errMsg = ""
	m.state = m.resume
	if m.state == StateProblemShown {
		return m, m.input.Focus()
	}
	return m, nil
}

// Run starts the Bubble Tea program against api.
func Run(ctx context.Context, api API) error {
	p := tea.NewProgram(New(ctx, api), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
