package cli

import (
	"fmt"
	"os"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/coherencelab/glotta/internal/physics"
)

// Theme holds the color scheme for terminal output.
type Theme struct {
	Status  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:  lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status)
}

func (t Theme) completedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// pipelineStages orders the engine stages for the progress bar.
var pipelineStages = []string{"embedding", "diagnostics", "coherence", "information", "hierarchy"}

// eventMsg carries one engine event into the bubbletea loop.
type eventMsg physics.Event

// doneMsg signals that the analysis finished.
type doneMsg struct{ err error }

// progressModel renders pipeline stages as they arrive.
type progressModel struct {
	events   <-chan physics.Event
	progress progress.Model
	theme    Theme
	stage    string
	message  string
	warnings []string
	done     bool
	err      error
}

func newProgressModel(events <-chan physics.Event) progressModel {
	prog := progress.New(
		progress.WithDefaultBlend(),
		progress.WithWidth(40),
	)
	return progressModel{
		events:   events,
		progress: prog,
		theme:    defaultTheme,
	}
}

// waitForEvent blocks on the event channel; channel close means the run is
// over and the final error arrives separately.
func (m progressModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), m.progress.Init())
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.done = true
			return m, tea.Quit
		}

	case eventMsg:
		switch physics.Event(msg).Kind {
		case physics.EventStage:
			m.stage = msg.Stage
			m.message = msg.Message
		case physics.EventWarning, physics.EventDecision:
			m.warnings = append(m.warnings, msg.Message)
		}
		return m, m.waitForEvent()

	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	case progress.FrameMsg:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m progressModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m progressModel) renderContent() string {
	if m.done {
		if m.err != nil {
			return m.theme.errorStyle().Render(fmt.Sprintf("✗ %v\n", m.err))
		}
		return ""
	}

	pct := stageFraction(m.stage)
	status := m.theme.statusStyle().Render(fmt.Sprintf("[%s]", m.stage))
	bar := m.progress.ViewAs(pct)
	hint := m.theme.hintStyle().Render(m.message)
	return fmt.Sprintf("%s %s\n%s\n", status, bar, hint)
}

// stageFraction maps a stage name to pipeline completion.
func stageFraction(stage string) float64 {
	for i, s := range pipelineStages {
		if s == stage {
			return float64(i+1) / float64(len(pipelineStages))
		}
	}
	return 0
}

// isTerminal reports whether stdout is an interactive terminal. Progress UI
// and colored rendering only make sense there; pipes get plain output.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
