package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Fast feeds finish before the spinner would flicker on screen.
const priceSpinnerRevealAfter = 250 * time.Millisecond

type priceReadDoneMsg struct {
	err error
}

// priceSpinner waits on a single feed read. It stays blank for the first
// reveal window and shows the elapsed seconds once the read is slow.
type priceSpinner struct {
	spinner     spinner.Model
	source      string
	read        tea.Cmd
	started     time.Time
	revealAfter time.Duration
	clock       func() time.Time
	err         error
	finished    bool
}

func newPriceSpinner(source string, read tea.Cmd, clock func() time.Time) priceSpinner {
	return priceSpinner{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("214"))),
		),
		source:      source,
		read:        read,
		started:     clock(),
		revealAfter: priceSpinnerRevealAfter,
		clock:       clock,
	}
}

func (m priceSpinner) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.read)
}

func (m priceSpinner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if done, ok := msg.(priceReadDoneMsg); ok {
		m.finished = true
		m.err = done.err
		return m, tea.Quit
	}

	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(tick)
		return m, cmd
	}

	return m, nil
}

func (m priceSpinner) View() string {
	elapsed := m.clock().Sub(m.started)
	if m.finished || elapsed < m.revealAfter {
		return ""
	}

	view := m.spinner.View() + " reading price from " + m.source
	if elapsed >= time.Second {
		view += fmt.Sprintf(" (%ds)", int(elapsed/time.Second))
	}
	return view
}

// runPriceFetchSpinner runs read while drawing the spinner on output and
// returns read's error.
func runPriceFetchSpinner(ctx context.Context, output io.Writer, source string, read func(context.Context) error) error {
	model := newPriceSpinner(source, func() tea.Msg {
		return priceReadDoneMsg{err: read(ctx)}
	}, time.Now)

	final, err := tea.NewProgram(model,
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	).Run()
	if err != nil {
		return err
	}

	done, ok := final.(priceSpinner)
	if !ok {
		return fmt.Errorf("price spinner ended with %T", final)
	}
	return done.err
}
