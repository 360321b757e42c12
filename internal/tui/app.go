package tui

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/swexplorer/internal/domain"
	"github.com/mmcdole/swexplorer/internal/store"
	"github.com/mmcdole/swexplorer/internal/tui/components"
	"github.com/mmcdole/swexplorer/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)

// Layout proportions
const (
	ListColumnPercent = 40
	MinColumnWidth    = 20

	// Vertical layout: single footer line
	ChromeHeight = 1

	defaultRequestTimeout = 30 * time.Second
	statusDuration        = 3 * time.Second
)

// Options configures the model
type Options struct {
	StartPage      int
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Store
	queries  domain.CharacterQueries
	commands domain.CharacterCommands
	stats    func() store.Stats
	logger   *slog.Logger
	timeout  time.Duration

	// UI Components
	List      *components.CharacterList
	Inspector components.Inspector
	Spinner   spinner.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg     string
	StatusIsErr   bool
	ShowInspector bool

	loadingPage int             // page being fetched, 0 = none
	enriching   map[string]bool // character ids with a detail fetch in flight
}

// NewModel creates a new application model backed by st
func NewModel(st *store.Store, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	if opts.StartPage > 0 {
		st.SetCurrentPage(opts.StartPage)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	return Model{
		State:         StateBrowsing,
		queries:       st,
		commands:      st,
		stats:         st.Stats,
		logger:        logger,
		timeout:       timeout,
		List:          components.NewCharacterList("Characters"),
		Inspector:     components.NewInspector(),
		Spinner:       sp,
		ShowInspector: true,
		enriching:     make(map[string]bool),
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	page := m.queries.CurrentPage()
	m.List.SetFocused(true)
	m.List.SetLoading(true)
	m.List.SetTitle(m.pageTitle(page))
	return tea.Batch(
		m.Spinner.Tick,
		FetchPageCmd(m.commands, m.queries, page, m.timeout),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		frame := m.Spinner.View()
		m.List.SetSpinner(frame)
		m.Inspector.SetSpinner(frame)
		return m, cmd

	case PageLoadedMsg:
		return m.handlePageLoaded(msg)

	case CharacterLoadedMsg:
		return m.handleCharacterLoaded(msg)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

func (m Model) handlePageLoaded(msg PageLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Page == m.loadingPage {
		m.loadingPage = 0
	}
	m.List.SetLoading(false)

	// Ignore pages the user already navigated away from
	if msg.Page != m.queries.CurrentPage() {
		return m, nil
	}

	m.List.SetTitle(m.pageTitle(msg.Page))
	if msg.Err != nil {
		m.logger.Warn("page unavailable", "page", msg.Page, "error", msg.Err)
		return m.setStatus(fmt.Sprintf("Could not load page %d (r to retry)", msg.Page), true)
	}

	m.List.SetCharacters(msg.Characters)
	m.syncInspector()
	return m, nil
}

func (m Model) handleCharacterLoaded(msg CharacterLoadedMsg) (tea.Model, tea.Cmd) {
	delete(m.enriching, msg.ID)
	m.refreshCurrentPage()

	selected, ok := m.List.Selected()
	isSelected := ok && strconv.Itoa(selected.ID) == msg.ID
	if isSelected {
		m.Inspector.SetLoading(false)
	}

	switch {
	case msg.Err != nil:
		m.logger.Warn("character details incomplete", "id", msg.ID, "error", msg.Err)
		if isSelected {
			m.Inspector.SetError("Some details could not be loaded")
		}
		return m.setStatus("Failed to load details for character "+msg.ID, true)
	case !msg.Found:
		return m.setStatus("Character "+msg.ID+" is unavailable", true)
	}

	if isSelected {
		m.Inspector.SetCharacter(msg.Character)
	}
	return m, nil
}

// goToPage switches the list to page, fetching it when not cached
func (m Model) goToPage(page int) (tea.Model, tea.Cmd) {
	m.commands.SetCurrentPage(page)
	page = m.queries.CurrentPage()

	m.List.Reset()
	m.List.SetTitle(m.pageTitle(page))

	if chars, ok := m.queries.GetCharactersByPage(page); ok {
		m.List.SetCharacters(chars)
		m.syncInspector()
		return m, nil
	}

	m.Inspector.Clear()
	m.List.SetLoading(true)
	m.loadingPage = page
	return m, FetchPageCmd(m.commands, m.queries, page, m.timeout)
}

// enrichSelected starts a detail fetch for the selected character
func (m Model) enrichSelected() (tea.Model, tea.Cmd) {
	c, ok := m.List.Selected()
	if !ok {
		return m, nil
	}
	m.ShowInspector = true
	m.updateLayout()
	m.Inspector.SetCharacter(c)

	id := strconv.Itoa(c.ID)
	if c.IsFullyResolved() || m.enriching[id] {
		return m, nil
	}
	m.enriching[id] = true
	m.Inspector.SetError("")
	m.Inspector.SetLoading(true)
	return m, FetchCharacterCmd(m.commands, m.queries, id, m.timeout)
}

// refreshCurrentPage re-reads the visible page so enrichment shows up in rows
func (m *Model) refreshCurrentPage() {
	if chars, ok := m.queries.GetCharactersByPage(m.queries.CurrentPage()); ok {
		m.List.SetCharacters(chars)
	}
}

// syncInspector points the inspector at the list selection
func (m *Model) syncInspector() {
	c, ok := m.List.Selected()
	if !ok {
		m.Inspector.Clear()
		return
	}
	m.Inspector.SetCharacter(c)
	m.Inspector.SetLoading(m.enriching[strconv.Itoa(c.ID)])
}

func (m Model) setStatus(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return m, ClearStatusCmd(statusDuration)
}

func (m Model) pageTitle(page int) string {
	if last, ok := m.queries.LastPage(); ok {
		return fmt.Sprintf("Characters · page %d/%d", page, last)
	}
	return fmt.Sprintf("Characters · page %d", page)
}
