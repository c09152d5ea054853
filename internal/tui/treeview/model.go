// ============================================================================
// quill - Compiler Front End
// ============================================================================
//
// Package:     treeview
// Description: Main Bubbletea model for the quill tree viewer
// Author:      Mike Stoffels
// Created:     2025-12-07
// Modified:    2026-10-19
// License:     MIT
// ============================================================================

package treeview

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/quill/foundation/lang/dump"
	"github.com/msto63/quill/foundation/lang/parser"
	"github.com/msto63/quill/foundation/lang/token"
	"github.com/msto63/quill/internal/diag"
)

// Config holds tree viewer configuration
type Config struct {
	Path    string
	Load    func(path string) (string, error) // Reads the source, os.ReadFile when nil
	Parser  parser.Options
	Parents bool // Start with back-references shown
}

// Model is the main Bubbletea model for the tree viewer
type Model struct {
	// State
	width   int
	height  int
	ready   bool
	loading bool

	// Components
	viewport viewport.Model
	diag     *diag.Renderer

	// View settings
	mode      Mode
	parents   bool
	positions bool

	// Last load
	loaded  sourceLoadedMsg
	content string

	cfg Config
}

// New creates a new tree viewer model
func New(cfg Config) Model {
	if cfg.Load == nil {
		cfg.Load = func(path string) (string, error) {
			data, err := os.ReadFile(path)
			return string(data), err
		}
	}

	return Model{
		diag:    diag.NewRenderer(false),
		parents: cfg.Parents,
		loading: true,
		cfg:     cfg,
	}
}

// Init loads the file
func (m Model) Init() tea.Cmd {
	return m.load
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Title panel
		footerHeight := 5 // Panel border + status bar + help
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()

	case sourceLoadedMsg:
		m.loading = false
		m.loaded = msg
		m.updateViewportContent()
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyTab:
		m.toggleMode()
		return m, nil

	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			return m, tea.Quit

		// View toggles
		case "t":
			m.toggleMode()
			return m, nil
		case "p":
			m.parents = !m.parents
			m.updateViewportContent()
			return m, nil
		case "l":
			m.positions = !m.positions
			m.updateViewportContent()
			return m, nil

		// Reload from disk
		case "r":
			m.loading = true
			return m, m.load

		// Go to top / bottom
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil

		case "k":
			m.viewport.LineUp(1)
			return m, nil
		case "j":
			m.viewport.LineDown(1)
			return m, nil
		}

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil

	case tea.KeyUp:
		m.viewport.LineUp(1)
		return m, nil

	case tea.KeyDown:
		m.viewport.LineDown(1)
		return m, nil
	}

	return m, nil
}

func (m *Model) toggleMode() {
	if m.mode == ModeTree {
		m.mode = ModeTokens
	} else {
		m.mode = ModeTree
	}
	m.updateViewportContent()
	m.viewport.GotoTop()
}

// Mode returns the current view mode
func (m Model) Mode() Mode {
	return m.mode
}

// Content returns the text currently loaded into the viewport
func (m Model) Content() string {
	return m.content
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading " + m.cfg.Path + "..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderViewArea())
	b.WriteString("\n")

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")

	b.WriteString(m.renderHelpBar())

	return b.String()
}

// renderHeader renders the header with logo, path and toggles
func (m Model) renderHeader() string {
	logo := LogoStyle.Render(Logo)
	path := HeaderStyle.Render(m.cfg.Path)

	toggles := strings.Join([]string{
		RenderToggle("[Tree]", m.mode == ModeTree),
		RenderToggle("[Tokens]", m.mode == ModeTokens),
		RenderToggle("[Parents]", m.parents),
		RenderToggle("[Positions]", m.positions),
	}, " ")

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		logo,
		strings.Repeat(" ", 3),
		path,
		strings.Repeat(" ", 3),
		toggles,
	)

	return TitlePanelStyle.Width(m.width - 4).Render(header)
}

// renderViewArea renders the main viewport
func (m Model) renderViewArea() string {
	style := PanelStyle
	if m.failed() {
		style = ErrorPanelStyle
	}
	return style.Width(m.width - 2).Height(m.viewport.Height).Render(m.viewport.View())
}

// renderStatusBar renders the status bar
func (m Model) renderStatusBar() string {
	var left string
	switch {
	case m.loading:
		left = HelpDescStyle.Render("Loading...")
	case m.loaded.err != nil:
		left = StatusErrorStyle.Render("Cannot read file")
	case m.loaded.parseErr != nil:
		left = StatusErrorStyle.Render("Syntax error")
	default:
		s := m.loaded.stats
		left = StatusOKStyle.Render("OK") + " " + HelpDescStyle.Render(fmt.Sprintf(
			"%d statements, %d declarations, %d expressions, depth %d",
			s.Statements, s.Declarations, s.Expressions, s.MaxDepth))
	}

	right := HelpDescStyle.Render(fmt.Sprintf("%d tokens", len(m.loaded.tokens)))
	if !m.loaded.at.IsZero() {
		right += HelpDescStyle.Render("  loaded " + m.loaded.at.Format("15:04:05"))
	}

	space := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if space < 2 {
		space = 2
	}
	return StatusBarStyle.Width(m.width - 2).Render(left + strings.Repeat(" ", space) + right)
}

// renderHelpBar renders the help shortcuts bar
func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("t/Tab", "Tree/Tokens"),
		RenderKeyHint("p", "Parents"),
		RenderKeyHint("l", "Positions"),
		RenderKeyHint("r", "Reload"),
		RenderKeyHint("g/G", "Top/Bottom"),
		RenderKeyHint("q", "Quit"),
	}

	return HelpStyle.Render(strings.Join(items, "  "))
}

func (m Model) failed() bool {
	return m.loaded.err != nil || m.loaded.parseErr != nil
}

// updateViewportContent renders the current mode into the viewport
func (m *Model) updateViewportContent() {
	var content string
	switch {
	case m.loading && m.loaded.at.IsZero():
		content = ""
	case m.loaded.err != nil:
		content = m.diag.Render(m.loaded.err, "")
	case m.mode == ModeTokens:
		content = renderTokens(m.loaded.tokens)
	case m.loaded.parseErr != nil:
		content = m.diag.Render(m.loaded.parseErr, m.loaded.source)
	default:
		content = m.renderTree()
	}

	m.content = content
	m.viewport.SetContent(content)
}

func (m Model) renderTree() string {
	files, err := dump.Build(m.loaded.tree, dump.Options{Parents: m.parents, Positions: m.positions})
	if err != nil {
		return m.diag.Render(err, "")
	}

	var b strings.Builder
	for _, file := range files {
		renderNode(&b, file, 0)
	}
	return b.String()
}

func renderNode(b *strings.Builder, n *dump.Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if n.Role != "" {
		b.WriteString(RoleStyle.Render(n.Role + ":"))
		b.WriteString(" ")
	}
	b.WriteString(KindStyle(n.Kind).Render(n.Kind))
	if n.Text != "" {
		b.WriteString(" ")
		b.WriteString(NodeTextStyle.Render(n.Text))
	}
	if n.Constant {
		b.WriteString(" ")
		b.WriteString(TypeStyle.Render("const"))
	}
	if n.At != "" {
		b.WriteString(" ")
		b.WriteString(AnnotationStyle.Render("@" + n.At))
	}
	if n.Parent != nil {
		b.WriteString(" ")
		b.WriteString(AnnotationStyle.Render(fmt.Sprintf("^file=%d,scope=%d", n.Parent.File, n.Parent.Scope)))
	}
	b.WriteString("\n")

	for _, child := range n.Children {
		renderNode(b, child, depth+1)
	}
}

func renderTokens(tokens []token.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		pos := TokenPositionStyle.Render(fmt.Sprintf("%4d:%-4d", tok.Line, tok.Column))
		style := TokenStyle
		if tok.Kind == token.Error {
			style = TokenErrorStyle
		}
		b.WriteString(pos)
		b.WriteString(" ")
		b.WriteString(style.Render(tok.String()))
		b.WriteString("\n")
	}
	return b.String()
}

// load reads, lexes and parses the file
func (m Model) load() tea.Msg {
	msg := sourceLoadedMsg{at: time.Now()}

	source, err := m.cfg.Load(m.cfg.Path)
	if err != nil {
		msg.err = err
		return msg
	}
	msg.source = source

	// Lexer errors surface again through the parser
	msg.tokens, _ = parser.NewLexer(source).Tokenize()

	p, err := parser.New(m.cfg.Parser)
	if err != nil {
		msg.err = err
		return msg
	}
	tree, err := p.Parse(m.cfg.Path, source)
	if err != nil {
		msg.parseErr = err
		return msg
	}
	msg.tree = tree
	msg.stats, err = tree.Stats()
	if err != nil {
		msg.parseErr = err
	}
	return msg
}

// Run starts the tree viewer TUI
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
