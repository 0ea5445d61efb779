// Package ui is the thin terminal glue over the core: it maps key events
// to session mutations (selection, collapse, search) and renders the
// visible tree as a navigable list. All tree semantics live in
// pkg/thread; this package only drives them.
package ui

import (
	"fmt"
	"log"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/sahilm/fuzzy"

	"github.com/a-Gb/hankerlytics/pkg/thread"
)

// Model is the bubbletea model for browsing one loaded thread.
type Model struct {
	session *thread.Session
	theme   Theme

	flatList []*thread.Node // visible nodes in pre-order
	cursor   int
	offset   int // first visible row

	width  int
	height int

	searching bool
	search    textinput.Model

	status string

	markdown *glamour.TermRenderer
}

// NewModel creates a browser over a loaded session.
func NewModel(sess *thread.Session) Model {
	search := textinput.New()
	search.Prompt = "/"
	search.CharLimit = 64

	m := Model{
		session: sess,
		theme:   DefaultTheme(),
		search:  search,
	}
	m.rebuildFlatList()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// rebuildFlatList flattens the current visible tree for navigation,
// keeping the cursor in bounds.
func (m *Model) rebuildFlatList() {
	m.flatList = m.flatList[:0]
	visible := m.session.VisibleTree()
	if visible != nil {
		visible.Walk(func(n *thread.Node) {
			m.flatList = append(m.flatList, n)
		})
	}
	if m.cursor >= len(m.flatList) {
		m.cursor = len(m.flatList) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// cursorNode returns the node under the cursor, or nil.
func (m *Model) cursorNode() *thread.Node {
	if m.cursor >= 0 && m.cursor < len(m.flatList) {
		return m.flatList[m.cursor]
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.markdown = nil // re-created at the new wrap width

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.flatList)-1 {
			m.cursor++
		}
		m.selectCursor()

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		m.selectCursor()

	case "g":
		m.cursor = 0
		m.selectCursor()

	case "G":
		if len(m.flatList) > 0 {
			m.cursor = len(m.flatList) - 1
		}
		m.selectCursor()

	case "enter", " ":
		if n := m.cursorNode(); n != nil {
			m.session.ToggleCollapse(n.ID)
			m.rebuildFlatList()
		}

	case "h":
		// Jump to parent.
		if n := m.cursorNode(); n != nil && n.Parent != nil {
			for i, cand := range m.flatList {
				if cand.ID == n.Parent.ID {
					m.cursor = i
					break
				}
			}
			m.selectCursor()
		}

	case "esc":
		m.session.Select(0)
		m.status = ""

	case "c":
		if n := m.cursorNode(); n != nil {
			url := n.Item.URL
			if url == "" {
				url = fmt.Sprintf("https://news.ycombinator.com/item?id=%d", n.ID)
			}
			if err := clipboard.WriteAll(url); err != nil {
				log.Printf("warning: clipboard write failed: %v", err)
				m.status = "clipboard unavailable"
			} else {
				m.status = "copied " + url
			}
		}

	case "/":
		m.searching = true
		m.search.SetValue("")
		m.search.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
	case "enter":
		m.searching = false
		m.search.Blur()
		m.jumpToMatch()
	default:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// jumpToMatch moves the cursor to the best fuzzy match for the query over
// the visible items' authors and text.
func (m *Model) jumpToMatch() {
	query := m.search.Value()
	if query == "" || len(m.flatList) == 0 {
		return
	}
	haystack := make([]string, len(m.flatList))
	for i, n := range m.flatList {
		haystack[i] = n.Item.By + " " + n.Item.Title + " " + n.Item.Text
	}
	matches := fuzzy.Find(query, haystack)
	if len(matches) == 0 {
		m.status = "no match for " + query
		return
	}
	m.cursor = matches[0].Index
	m.selectCursor()
	m.status = fmt.Sprintf("%d matches", len(matches))
}

// selectCursor points the session focus at the cursor node.
func (m *Model) selectCursor() {
	if n := m.cursorNode(); n != nil {
		m.session.Select(n.ID)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if len(m.flatList) == 0 {
		return m.theme.Muted.Render("No thread loaded.")
	}

	listHeight := m.listHeight()
	m.scrollIntoView(listHeight)

	var sb strings.Builder
	end := m.offset + listHeight
	if end > len(m.flatList) {
		end = len(m.flatList)
	}
	for i := m.offset; i < end; i++ {
		sb.WriteString(m.renderRow(m.flatList[i], i == m.cursor))
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderDetail())
	sb.WriteString(m.renderStatus())
	return sb.String()
}

func (m Model) listHeight() int {
	h := m.height - detailHeight - 1
	if h < 5 {
		h = 5
	}
	return h
}

// detailHeight is the rows reserved for the selected item's text pane.
const detailHeight = 8

func (m *Model) scrollIntoView(listHeight int) {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+listHeight {
		m.offset = m.cursor - listHeight + 1
	}
}

// renderRow renders one visible node as a single line: indent, collapse
// indicator, author, reply count, and sentiment marker, dimmed when
// outside the focus relationship.
func (m Model) renderRow(n *thread.Node, selected bool) string {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("  ", n.Depth))

	switch {
	case m.session.Collapsed[n.ID]:
		sb.WriteString("▸ ")
	case len(n.Children) > 0:
		sb.WriteString("▾ ")
	default:
		sb.WriteString("• ")
	}

	label := n.Item.Title
	if label == "" {
		label = n.Item.By
	}
	if n.Item.Deleted {
		label = "[deleted]"
	}

	laneColor := m.session.Colors.ColorFor(m.session.Index, n.ID, "#6272a4")
	author := lipgloss.NewStyle().Foreground(lipgloss.Color(laneColor)).Render(label)
	sb.WriteString(author)

	if n.DescCount > 0 {
		sb.WriteString(" " + m.theme.Badge.Render(fmt.Sprintf("(%d)", n.DescCount)))
	}
	if s, ok := m.session.Sentiment[n.ID]; ok {
		sb.WriteString(" " + sentimentGlyph(string(s.Label)))
	}

	line := sb.String()
	maxW := m.width
	if maxW <= 0 {
		maxW = 100
	}
	line = truncate.StringWithTail(line, uint(maxW), "…")

	if !m.session.Focus.InFocus(n.ID) {
		return m.theme.Dimmed.Render(line)
	}
	if selected {
		return m.theme.Selected.Render(line)
	}
	return line
}

// renderDetail shows the selected item's text through the markdown
// renderer (the excluded rendering collaborator; failures fall back to
// raw text).
func (m Model) renderDetail() string {
	n := m.session.SelectedNode()
	if n == nil || n.Item.Text == "" {
		return strings.Repeat("\n", detailHeight)
	}

	text := n.Item.Text
	if m.markdown == nil {
		wrap := m.width - 2
		if wrap < 20 {
			wrap = 20
		}
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(wrap))
		if err == nil {
			m.markdown = r
		}
	}
	if m.markdown != nil {
		if rendered, err := m.markdown.Render(text); err == nil {
			text = rendered
		}
	}

	lines := strings.Split(text, "\n")
	if len(lines) > detailHeight-1 {
		lines = lines[:detailHeight-1]
	}
	for len(lines) < detailHeight-1 {
		lines = append(lines, "")
	}
	header := m.theme.Muted.Render(strings.Repeat("─", max(1, m.width)))
	return header + "\n" + strings.Join(lines, "\n") + "\n"
}

func (m Model) renderStatus() string {
	if m.searching {
		return m.search.View()
	}
	if m.status != "" {
		return m.theme.Status.Render(m.status)
	}
	n := m.cursorNode()
	if n == nil {
		return ""
	}
	return m.theme.Muted.Render(fmt.Sprintf(
		"%d/%d  depth %d  j/k move  space collapse  / find  c copy  q quit",
		m.cursor+1, len(m.flatList), n.Depth))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
