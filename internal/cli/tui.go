package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DaveyUS/gridkit/pkg/grid"
	"github.com/DaveyUS/gridkit/pkg/layout"
)

// Cell block colors cycled per item.
var cellColors = []lipgloss.Color{
	lipgloss.Color("31"), lipgloss.Color("131"), lipgloss.Color("64"),
	lipgloss.Color("96"), lipgloss.Color("137"), lipgloss.Color("67"),
}

var (
	styleEmptyCell   = lipgloss.NewStyle().Foreground(colorDim)
	stylePreviewCell = lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Background(lipgloss.Color("205"))
	styleStatusBar   = lipgloss.NewStyle().Foreground(colorGray)
	styleModeTag     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)

// editorMode tracks what the arrow keys currently manipulate.
type editorMode int

const (
	modeSelect editorMode = iota
	modeMove
	modeResize
)

// EditorModel is the bubbletea model for the interactive layout editor. It
// owns a live controller and drives move and resize sessions from key
// events; all placement decisions stay inside the engine.
type EditorModel struct {
	ctrl    *grid.Controller
	doc     *layout.Layout
	mode    editorMode
	session *grid.Session
	cursor  int // index into ctrl.Items() while selecting
	status  string
	Dirty   bool // a mutation was committed
	Saved   *layout.Layout
}

// NewEditorModel builds an editor over a validated layout document.
func NewEditorModel(l *layout.Layout) (EditorModel, error) {
	ctrl, err := l.Controller()
	if err != nil {
		return EditorModel{}, err
	}
	return EditorModel{ctrl: ctrl, doc: l, status: "ready"}, nil
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.mode {
	case modeSelect:
		return m.updateSelect(key)
	case modeMove, modeResize:
		return m.updateSession(key)
	}
	return m, nil
}

func (m EditorModel) updateSelect(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.ctrl.Items()

	switch key.String() {
	case "q", "ctrl+c":
		m.Saved = layout.FromController(m.ctrl, m.doc)
		return m, tea.Quit
	case "tab", "right", "l":
		if len(items) > 0 {
			m.cursor = (m.cursor + 1) % len(items)
		}
	case "shift+tab", "left", "h":
		if len(items) > 0 {
			m.cursor = (m.cursor + len(items) - 1) % len(items)
		}
	case "enter", "m":
		m = m.beginSession(modeMove)
	case "r":
		m = m.beginSession(modeResize)
	case "d":
		if it, ok := m.selected(); ok {
			if err := m.ctrl.Unregister(it.ID); err != nil {
				m.status = err.Error()
			} else {
				m.Dirty = true
				m.status = fmt.Sprintf("removed %s", it.ID)
				if m.cursor >= m.ctrl.Len() && m.cursor > 0 {
					m.cursor--
				}
			}
		}
	case "a":
		it, err := m.ctrl.Register(m.newItem())
		if err != nil {
			m.status = err.Error()
		} else {
			m.Dirty = true
			m.status = fmt.Sprintf("added %s", it.ID)
		}
	case "c":
		m.ctrl.Compact()
		m.Dirty = true
		m.status = "compacted"
	}
	return m, nil
}

func (m EditorModel) updateSession(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "enter":
		if err := m.session.Commit(); err != nil {
			m.status = err.Error()
		} else {
			m.Dirty = true
			m.status = "committed"
		}
		m.session = nil
		m.mode = modeSelect
		return m, nil
	case "esc", "q":
		m.session.Cancel()
		m.session = nil
		m.mode = modeSelect
		m.status = "cancelled"
		return m, nil
	}

	dx, dy := arrowDelta(key.String())
	if dx == 0 && dy == 0 {
		return m, nil
	}

	p := m.ctrl.Params()
	pitchX, pitchY := p.Cell.W+p.Gap, p.Cell.H+p.Gap
	prev := m.session.Preview()

	var err error
	if m.mode == modeMove {
		_, err = m.session.MoveTo((prev.X+dx)*pitchX, (prev.Y+dy)*pitchY)
	} else {
		w := grid.UnitsToPixels(prev.W+dx, p.Cell.W, p.Gap)
		h := grid.UnitsToPixels(prev.H+dy, p.Cell.H, p.Gap)
		_, err = m.session.ResizeTo(w, h)
	}
	if err != nil {
		m.status = err.Error()
	}
	return m, nil
}

func (m EditorModel) beginSession(mode editorMode) EditorModel {
	it, ok := m.selected()
	if !ok {
		m.status = "nothing selected"
		return m
	}

	var (
		s   *grid.Session
		err error
	)
	if mode == modeMove {
		s, err = m.ctrl.BeginMove(it.ID)
	} else {
		s, err = m.ctrl.BeginResize(it.ID, grid.HandleSE)
	}
	if err != nil {
		m.status = err.Error()
		return m
	}
	m.session = s
	m.mode = mode
	m.status = fmt.Sprintf("editing %s", it.ID)
	return m
}

func (m EditorModel) selected() (grid.Item, bool) {
	items := m.ctrl.Items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return grid.Item{}, false
	}
	return items[m.cursor], true
}

// newItem builds a 1x1 item placed in the first free slot.
func (m EditorModel) newItem() grid.Item {
	it := grid.Item{W: 1, H: 1, Movable: true, Resizable: true}
	p := m.ctrl.Params()
	if pos, ok := grid.FindFreePosition(it, m.ctrl.Items(), p.MaxCols, p.MaxRows); ok {
		it.X, it.Y = pos.X, pos.Y
	}
	return it
}

func (m EditorModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("gridkit editor"))
	b.WriteString("\n\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

// renderGrid draws the grid as character cells: two columns of text per grid
// cell, labeled with the first rune of the item ID.
func (m EditorModel) renderGrid() string {
	items := m.ctrl.Items()
	cols, rows := m.extent(items)

	// Index cells by covering item.
	type cellOwner struct {
		idx     int
		preview bool
	}
	owners := make(map[[2]int]cellOwner)
	for i, it := range items {
		if m.session != nil && m.session.Preview().ID == it.ID {
			continue // drawn from the preview below
		}
		for y := it.Y; y < it.Bottom(); y++ {
			for x := it.X; x < it.Right(); x++ {
				owners[[2]int{x, y}] = cellOwner{idx: i}
			}
		}
	}
	if m.session != nil {
		pv := m.session.Preview()
		for y := pv.Y; y < pv.Bottom(); y++ {
			for x := pv.X; x < pv.Right(); x++ {
				owners[[2]int{x, y}] = cellOwner{idx: -1, preview: true}
			}
		}
		if pv.Bottom() > rows {
			rows = pv.Bottom()
		}
	}

	var b strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			owner, ok := owners[[2]int{x, y}]
			switch {
			case !ok:
				b.WriteString(styleEmptyCell.Render(" ·"))
			case owner.preview:
				b.WriteString(stylePreviewCell.Render("[]"))
			default:
				it := items[owner.idx]
				style := lipgloss.NewStyle().
					Foreground(colorWhite).
					Background(cellColors[owner.idx%len(cellColors)])
				if owner.idx == m.cursor && m.mode == modeSelect {
					style = style.Bold(true).Underline(true)
				}
				b.WriteString(style.Render(cellLabel(it.ID)))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m EditorModel) renderStatus() string {
	mode := "select"
	help := "tab: next · enter/m: move · r: resize · a: add · d: delete · c: compact · q: quit"
	switch m.mode {
	case modeMove:
		mode = "move"
		help = "arrows: move · enter: commit · esc: cancel"
	case modeResize:
		mode = "resize"
		help = "arrows: resize · enter: commit · esc: cancel"
	}
	return styleModeTag.Render("["+mode+"] ") +
		styleStatusBar.Render(m.status) + "\n" +
		StyleDim.Render(help) + "\n"
}

// extent returns the drawn grid dimensions, growing with the items when the
// grid is unbounded.
func (m EditorModel) extent(items []grid.Item) (cols, rows int) {
	p := m.ctrl.Params()
	cols, rows = p.MaxCols, p.MaxRows
	for _, it := range items {
		if p.MaxCols == 0 && it.Right() > cols {
			cols = it.Right()
		}
		if p.MaxRows == 0 && it.Bottom() > rows {
			rows = it.Bottom()
		}
	}
	if cols < 1 {
		cols = 12
	}
	if rows < 4 {
		rows = 4
	}
	return cols, rows
}

// cellLabel renders a two-character cell tag from an item ID.
func cellLabel(id string) string {
	r := []rune(id)
	if len(r) == 0 {
		return "??"
	}
	return fmt.Sprintf("%2s", string(r[0]))
}

// arrowDelta maps arrow and vi keys to one-cell deltas.
func arrowDelta(key string) (dx, dy int) {
	switch key {
	case "up", "k":
		return 0, -1
	case "down", "j":
		return 0, 1
	case "left", "h":
		return -1, 0
	case "right", "l":
		return 1, 0
	}
	return 0, 0
}
