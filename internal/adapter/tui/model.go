// Package tui is the terminal catalog viewer.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/niksmo/makeup-catalog/internal/adapter/render"
	"github.com/niksmo/makeup-catalog/internal/core/controls"
	"github.com/niksmo/makeup-catalog/internal/core/domain"
	"github.com/niksmo/makeup-catalog/internal/core/port"
)

const (
	alertLoadFailed = "Error loading products. Please try again later."
	cardHeight      = 5
	chromeHeight    = 6
)

type field int

const (
	fieldName field = iota
	fieldBrand
	fieldType
	fieldSort
	nFields
)

type (
	loadedMsg struct{ err error }

	nameCommittedMsg string
)

type Opt func(*Model)

// LoadTimeoutOpt bounds the initial catalog fetch; d <= 0 means no bound.
func LoadTimeoutOpt(d time.Duration) Opt {
	return func(m *Model) { m.loadTimeout = d }
}

type Model struct {
	ctx         context.Context
	loadTimeout time.Duration

	loader    port.CatalogLoader
	controls  *controls.Controls
	input     *controls.DebouncedInput
	projector render.Projector

	name    textinput.Model
	spinner spinner.Model
	styles  Styles

	focus    field
	opts     domain.Options
	brandIdx int
	typeIdx  int
	sortIdx  int
	offset   int

	loading bool
	err     error
	height  int
}

func New(
	ctx context.Context,
	loader port.CatalogLoader,
	ctl *controls.Controls,
	input *controls.DebouncedInput,
	projector render.Projector,
	opts ...Opt,
) Model {
	ti := textinput.New()
	ti.Placeholder = "Filter by name..."
	ti.CharLimit = 64
	ti.Width = 30
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		ctx:       ctx,
		loader:    loader,
		controls:  ctl,
		input:     input,
		projector: projector,
		name:      ti,
		spinner:   sp,
		styles:    DefaultStyles(),
		loading:   true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick, m.load(), m.waitForCommit(), textinput.Blink,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.controls.Reset()
		m.controls.CommitName(m.name.Value())
		m.opts = m.controls.Options()
		return m, nil

	case nameCommittedMsg:
		if !m.loading && m.err == nil && m.controls.CommitName(string(msg)) {
			m.offset = 0
		}
		return m, m.waitForCommit()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == fieldName {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "q":
		if m.focus != fieldName {
			return m.quit()
		}
	case "tab":
		return m.setFocus((m.focus + 1) % nFields)
	case "shift+tab":
		return m.setFocus((m.focus + nFields - 1) % nFields)
	case "enter":
		if m.focus == fieldName {
			m.input.Flush(m.name.Value())
			return m, nil
		}
	case "up":
		if m.offset > 0 {
			m.offset--
		}
		return m, nil
	case "down":
		if m.offset < len(m.controls.Active())-1 {
			m.offset++
		}
		return m, nil
	case "left":
		if m.focus != fieldName {
			m.cycle(-1)
			return m, nil
		}
	case "right":
		if m.focus != fieldName {
			m.cycle(1)
			return m, nil
		}
	}

	if m.focus != fieldName {
		return m, nil
	}

	prev := m.name.Value()
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	if v := m.name.Value(); v != prev {
		m.input.Keystroke(v)
	}
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.input.Stop()
	return m, tea.Quit
}

func (m Model) setFocus(f field) (tea.Model, tea.Cmd) {
	m.focus = f
	if f == fieldName {
		return m, m.name.Focus()
	}
	m.name.Blur()
	return m, nil
}

// cycle moves the focused selector by step. Brand and type selectors have
// an extra leading "all" position.
func (m *Model) cycle(step int) {
	if m.loading || m.err != nil {
		return
	}

	switch m.focus {
	case fieldBrand:
		m.brandIdx = wrap(m.brandIdx+step, len(m.opts.Brands)+1)
		m.controls.SetBrand(optionValue(m.opts.Brands, m.brandIdx))
	case fieldType:
		m.typeIdx = wrap(m.typeIdx+step, len(m.opts.Types)+1)
		m.controls.SetType(optionValue(m.opts.Types, m.typeIdx))
	case fieldSort:
		m.sortIdx = wrap(m.sortIdx+step, len(domain.SortKeys))
		m.controls.SetSort(domain.SortKeys[m.sortIdx])
	}
	m.offset = 0
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.loadContext()
		defer cancel()
		return loadedMsg{err: m.loader.LoadCatalog(ctx)}
	}
}

func (m Model) loadContext() (context.Context, context.CancelFunc) {
	if m.loadTimeout <= 0 {
		return context.WithCancel(m.ctx)
	}
	return context.WithTimeout(m.ctx, m.loadTimeout)
}

// waitForCommit yields the next settled name, or nil once ctx is done.
func (m Model) waitForCommit() tea.Cmd {
	ctx := m.ctx
	commits := m.input.Commits()
	return func() tea.Msg {
		select {
		case text := <-commits:
			return nameCommittedMsg(text)
		case <-ctx.Done():
			return nil
		}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Makeup catalog"))
	b.WriteString("\n\n")
	b.WriteString(m.controlsView())
	b.WriteString("\n\n")

	switch {
	case m.loading:
		fmt.Fprintf(&b, "%s Loading products...\n", m.spinner.View())
	case m.err != nil:
		b.WriteString(m.styles.Alert.Render(alertLoadFailed))
		b.WriteString("\n")
	default:
		b.WriteString(m.cardsView())
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(
		"tab focus • enter apply name • ←/→ change • ↑/↓ scroll • q quit",
	))
	return b.String()
}

func (m Model) controlsView() string {
	label := func(f field, s string) string {
		if m.focus == f {
			return m.styles.Focused.Render(s)
		}
		return m.styles.Label.Render(s)
	}
	selector := func(f field, v string) string {
		return label(f, "‹ ") + m.styles.Value.Render(v) + label(f, " ›")
	}

	pending := " "
	if m.input.Pending() {
		pending = m.styles.Label.Render("…")
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		label(fieldName, "Name "), m.name.View(), pending, " ",
		label(fieldBrand, "Brand "),
		selector(fieldBrand, optionLabel(m.opts.Brands, m.brandIdx, "All brands")),
		"  ",
		label(fieldType, "Type "),
		selector(fieldType, optionLabel(m.opts.Types, m.typeIdx, "All types")),
		"  ",
		label(fieldSort, "Sort "),
		selector(fieldSort, domain.SortKeys[m.sortIdx].Label()),
	)
}

func (m Model) cardsView() string {
	cards := m.projector.Cards(m.controls.Active())

	var b strings.Builder
	fmt.Fprintf(&b, "%d products\n", len(cards))

	start := min(m.offset, len(cards))
	end := len(cards)
	if m.height > 0 {
		end = min(end, start+max(1, (m.height-chromeHeight)/cardHeight))
	}

	for _, c := range cards[start:end] {
		b.WriteString(m.cardView(c))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) cardView(c render.Card) string {
	badges := []string{}
	if c.ShowBrand {
		badges = append(badges, m.styles.Brand.Render(c.Brand))
	}
	badges = append(badges, m.styles.Price.Render(c.Price))

	details := make([]string, 0, len(c.Details))
	for _, d := range c.Details {
		details = append(details, d.Label+": "+d.Value)
	}

	return m.styles.Card.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.styles.Name.Render(c.Name),
		strings.Join(badges, " "),
		m.styles.Detail.Render(strings.Join(details, " · ")),
	))
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func optionValue(opts []domain.Option, idx int) string {
	if idx == 0 {
		return ""
	}
	return opts[idx-1].Value
}

func optionLabel(opts []domain.Option, idx int, all string) string {
	if idx == 0 || idx > len(opts) {
		return all
	}
	return opts[idx-1].Label
}

// Run blocks until the user quits or ctx is done.
func Run(ctx context.Context, m Model) error {
	const op = "tui.Run"

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
