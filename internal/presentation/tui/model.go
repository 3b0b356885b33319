// Package tui hosts the timeline canvas in a terminal. Mouse reporting
// drives hover and brushing, keys select quick ranges and a two field
// form sets a custom range.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/penwyp/go-consensus-timeline/internal/core/model"
	"github.com/penwyp/go-consensus-timeline/internal/core/window"
	"github.com/penwyp/go-consensus-timeline/internal/presentation/canvas"
	"github.com/penwyp/go-consensus-timeline/internal/presentation/graph"
	"github.com/penwyp/go-consensus-timeline/internal/util"
)

const (
	headerRows = 2
	footerRows = 1
)

// Store is the time window the viewer reads and updates
type Store interface {
	Filtered() []model.Event
	ApplyQuickRange(q window.QuickRange)
	SetCustomRange(start, end string) error
	BrushSelect(start, end int64)
	CurrentWindow() window.Window
	Counts() (filtered, total int)
	Skipped() int
	GetLastDataUpdate() int64
}

// DataReloadedMsg reports that the store was refreshed from disk
type DataReloadedMsg struct {
	Err error
	// Reloads counts successful reloads so far, 0 when unknown
	Reloads int
}

type brushInbox struct {
	pending    bool
	start, end int64
}

// Model is the bubbletea model of the viewer
type Model struct {
	store  Store
	ctrl   *graph.Controller
	brush  *brushInbox
	source string

	help     help.Model
	showHelp bool

	width  int
	height int

	editing bool
	inputs  []textinput.Model
	focus   int

	message string
	isError bool

	inside bool
}

// New creates the viewer model. factory is normally canvas.CellFactory().
func New(store Store, source string, factory canvas.Factory) Model {
	inbox := &brushInbox{}
	ctrl := graph.NewController(factory, graph.WithBrushHandler(func(start, end int64) {
		inbox.pending = true
		inbox.start, inbox.end = start, end
	}))

	start := textinput.New()
	start.Prompt = "Start (ms): "
	start.Placeholder = "1679048123401"
	start.CharLimit = 20
	start.Width = 16

	end := textinput.New()
	end.Prompt = "End (ms): "
	end.Placeholder = "1679048183401"
	end.CharLimit = 20
	end.Width = 16

	m := Model{
		store:  store,
		ctrl:   ctrl,
		brush:  inbox,
		source: source,
		help:   help.New(),
		inputs: []textinput.Model{start, end},
	}
	m.ctrl.SetData(store.Filtered())
	return m
}

// Controller exposes the canvas controller
func (m Model) Controller() *graph.Controller {
	return m.ctrl
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) canvasRows() int {
	return max(0, m.height-headerRows-footerRows)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.ctrl.Resize(int(float64(m.width)*canvas.CellWidth), int(float64(m.canvasRows())*canvas.CellHeight), 1)
		return m, nil

	case DataReloadedMsg:
		if msg.Err != nil {
			m.setError(fmt.Sprintf("reload failed: %v", msg.Err))
			return m, nil
		}
		m.refresh()
		filtered, total := m.store.Counts()
		if msg.Reloads > 0 {
			m.setInfo(fmt.Sprintf("reload #%d: %d of %d events in range", msg.Reloads, filtered, total))
		} else {
			m.setInfo(fmt.Sprintf("reloaded: %d of %d events in range", filtered, total))
		}
		return m, nil

	case tea.BlurMsg:
		m.leave()
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateInputs(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) refresh() {
	m.ctrl.SetData(m.store.Filtered())
}

func (m *Model) setInfo(s string) {
	m.message, m.isError = s, false
}

func (m *Model) setError(s string) {
	m.message, m.isError = s, true
	util.LogWarn(s)
}

func (m *Model) leave() {
	if m.inside || m.ctrl.Brushing() {
		m.ctrl.PointerLeave()
	}
	m.inside = false
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	row := msg.Y - headerRows
	if row < 0 || row >= m.canvasRows() || msg.X < 0 || msg.X >= m.width {
		m.leave()
		return
	}
	m.inside = true

	// center of the cell, in canvas-local logical pixels
	x := float64(msg.X)*canvas.CellWidth + canvas.CellWidth/2
	y := float64(row)*canvas.CellHeight + canvas.CellHeight/2

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.ctrl.PointerDown(x, y)
		}
	case tea.MouseActionRelease:
		m.ctrl.PointerUp(x, y)
		if m.brush.pending {
			m.brush.pending = false
			m.store.BrushSelect(m.brush.start, m.brush.end)
			m.refresh()
			m.setInfo(fmt.Sprintf("selected %s", util.FormatRange(m.brush.start, m.brush.end)))
		}
	case tea.MouseActionMotion:
		m.ctrl.PointerMove(x, y)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.All):
		m.applyQuick(window.RangeAll)
	case key.Matches(msg, keys.Last5s):
		m.applyQuick(window.Range5s)
	case key.Matches(msg, keys.Last30s):
		m.applyQuick(window.Range30s)
	case key.Matches(msg, keys.Last60s):
		m.applyQuick(window.Range60s)
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, keys.Custom):
		return m.openInputs()
	case key.Matches(msg, keys.Esc):
		m.message = ""
	}
	return m, nil
}

func (m *Model) applyQuick(q window.QuickRange) {
	m.store.ApplyQuickRange(q)
	m.refresh()
	m.message = ""
}

func (m Model) openInputs() (tea.Model, tea.Cmd) {
	m.editing = true
	m.message = ""
	if w := m.store.CurrentWindow(); w.Valid {
		m.inputs[0].SetValue(fmt.Sprintf("%d", w.Start))
		m.inputs[1].SetValue(fmt.Sprintf("%d", w.End))
	}
	for i := range m.inputs {
		m.inputs[i].CursorEnd()
	}
	m.focus = 0
	m.inputs[1].Blur()
	return m, m.inputs[0].Focus()
}

func (m Model) closeInputs() Model {
	m.editing = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	return m
}

func (m Model) updateInputs(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, keys.Esc):
		m = m.closeInputs()
		m.message = ""
		return m, nil

	case key.Matches(msg, keys.NextInput):
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + 1) % len(m.inputs)
		return m, m.inputs[m.focus].Focus()

	case key.Matches(msg, keys.Enter):
		err := m.store.SetCustomRange(m.inputs[0].Value(), m.inputs[1].Value())
		if err != nil {
			if errors.Is(err, window.ErrInvalidRange) {
				m.message, m.isError = err.Error(), true
			} else {
				m.setError(err.Error())
			}
			return m, nil
		}
		m = m.closeInputs()
		m.refresh()
		m.setInfo("custom range applied")
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderTitleBar(), m.renderRangeBar())
	lines = append(lines, m.renderCanvas()...)
	lines = append(lines, m.renderFooter())

	for i, line := range lines {
		lines[i] = ansi.Truncate(line, m.width, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTitleBar() string {
	title := titleStyle.Render("Consensus timeline")
	if m.source != "" {
		title += " " + dimStyle.Render(m.source)
	}

	filtered, total := m.store.Counts()
	stats := fmt.Sprintf("Filtered events: %d / %d", filtered, total)
	if skipped := m.store.Skipped(); skipped > 0 {
		stats += fmt.Sprintf(" | skipped %d", skipped)
	}
	if updated := m.store.GetLastDataUpdate(); updated > 0 {
		stats += " | updated " + time.Unix(updated, 0).Format("15:04:05")
	}
	stats = dimStyle.Render(stats)

	gap := strings.Repeat(" ", max(1, m.width-lipgloss.Width(title)-lipgloss.Width(stats)))
	return title + gap + stats
}

func (m Model) renderRangeBar() string {
	w := m.store.CurrentWindow()

	var buttons []string
	for _, q := range window.QuickRanges {
		if w.Mode == window.ModeQuick && w.Quick == q {
			buttons = append(buttons, activeRangeStyle.Render(q.Label()))
		} else {
			buttons = append(buttons, inactiveRangeStyle.Render(q.Label()))
		}
	}

	current := "Current range: -"
	if w.Valid {
		current = fmt.Sprintf("Current range: %d ~ %d (%s, %s)", w.Start, w.End, util.FormatMillis(w.End-w.Start), w.Label())
	}
	return strings.Join(buttons, " ") + "  " + rangeStyle.Render(current)
}

func (m Model) renderCanvas() []string {
	rows := m.canvasRows()
	if rows == 0 {
		return nil
	}

	blank := make([]string, rows)
	surface, ok := m.ctrl.Surface().(*canvas.CellSurface)
	if !ok || !m.ctrl.Redraw() {
		msg := "No events in the selected range"
		if m.ctrl.Scales() != nil {
			msg = "Canvas unavailable"
		}
		blank[rows/2] = dimStyle.Render(util.CenterText(msg, m.width))
		return blank
	}

	if tip := m.ctrl.Tooltip(); tip.Visible {
		overlayTooltip(surface, tip)
	}
	return surface.Lines()
}

// overlayTooltip places the tooltip box at the pointer offset, shifted to
// stay inside the grid
func overlayTooltip(s *canvas.CellSurface, tip graph.Tooltip) {
	box := strings.Split(tooltipStyle.Render(strings.Join(tip.Text(), "\n")), "\n")
	boxWidth := 0
	for _, line := range box {
		boxWidth = max(boxWidth, lipgloss.Width(line))
	}

	cols, rows := s.Grid()
	col := int(tip.X / canvas.CellWidth)
	row := int(tip.Y / canvas.CellHeight)
	col = max(0, min(col, cols-boxWidth))
	row = max(0, min(row, rows-len(box)))

	s.Overlay(col, row, box, graph.TooltipForeground, graph.TooltipBackground)
}

func (m Model) renderFooter() string {
	if m.editing {
		line := m.inputs[0].View() + "  " + m.inputs[1].View() + "  "
		if m.message != "" {
			return line + errorStyle.Render(m.message)
		}
		return line + dimStyle.Render("enter apply · tab switch · esc cancel")
	}

	if m.showHelp {
		return m.help.View(keys)
	}

	if m.message != "" {
		if m.isError {
			return errorStyle.Render(m.message)
		}
		return statusBarStyle.Render(m.message)
	}

	status := fmt.Sprintf("%d arrows · %d state changes", len(m.ctrl.Arrows()), len(m.ctrl.Points()))
	if n := m.ctrl.Unmatched(); n > 0 {
		status += fmt.Sprintf(" · %d unmatched sends", n)
	}
	if m.ctrl.Brushing() {
		status += " · release to select"
	}
	return statusBarStyle.Render(status) + "  " + dimStyle.Render("drag to zoom · ? help")
}
