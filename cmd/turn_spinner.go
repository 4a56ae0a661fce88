package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type turnDoneMsg struct{}

// turnSpinnerModel only animates; the turn runs outside the program.
type turnSpinnerModel struct {
	spinner spinner.Model
	label   string
	done    bool
}

func newTurnSpinnerModel(label string) turnSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("213"))),
	)
	return turnSpinnerModel{spinner: s, label: label}
}

func (m turnSpinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m turnSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case turnDoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m turnSpinnerModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// runTurnSpinner animates label on output while fn runs and returns fn's
// error. SIGINT stays with the caller's signal context, and fn always runs to
// completion before runTurnSpinner returns.
func runTurnSpinner(ctx context.Context, output io.Writer, label string, fn func(context.Context) error) error {
	p := tea.NewProgram(
		newTurnSpinnerModel(label),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithoutSignalHandler(),
	)

	done := make(chan error, 1)
	go func() {
		done <- fn(ctx)
		p.Send(turnDoneMsg{})
	}()

	// A broken terminal only costs the animation.
	_, _ = p.Run()
	return <-done
}
