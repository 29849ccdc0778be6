package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jmoiron/sqlx"
	"github.com/ngmaloney/train-terminal/internal/favourites"
	"github.com/ngmaloney/train-terminal/internal/history"
	"github.com/ngmaloney/train-terminal/internal/journeys"
	"github.com/ngmaloney/train-terminal/internal/models"
	"github.com/ngmaloney/train-terminal/internal/stations"
	"github.com/ngmaloney/train-terminal/internal/timeutil"
	"github.com/ngmaloney/train-terminal/internal/transportapi"
)

// AppState represents the current state of the application
type AppState int

const (
	StateLoading      AppState = iota // Waiting on an async fetch
	StateProvisioning                 // Initial data provisioning (downloading station list)
	StateHome                         // Suggested journeys and recent searches
	StatePickStation                  // Typing a from or to station
	StateDepartures                   // Departure board
	StateService                      // Calling points of one service
	StateJourneys                     // Saved journeys
	StateError                        // Error state
)

// pickTarget is the end of the journey being chosen
type pickTarget int

const (
	pickFrom pickTarget = iota
	pickTo
)

// Deps are the collaborators the model drives. Favourites, History and
// Journeys may be nil, which disables the features built on them.
type Deps struct {
	DB          *sqlx.DB // used to check whether the station list needs provisioning
	Client      transportapi.Client
	Journeys    *journeys.Service
	Favourites  *favourites.Repository
	History     *history.Repository
	Directory   *stations.Directory
	StationsURL string
	Position    *models.Coordinates // last known device position, nil when unknown
	Now         func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Options preselect the journey shown at startup
type Options struct {
	FromCRS string
	ToCRS   string
}

// Model represents the application's state
type Model struct {
	state  AppState
	width  int
	height int
	err    error
	status string // one-line feedback under the current view

	deps Deps
	opts Options

	// Home
	homeList    list.Model
	recommended []models.SavedJourney
	recent      []models.RecentSearch

	// Station picker
	stationInput textinput.Model
	suggestions  list.Model
	pick         pickTarget
	seedFavs     []models.Station
	seedRecent   []models.Station

	// Selected journey
	from *models.Station
	to   *models.Station

	// Departures
	timetable     *models.StationTimetable
	departureList list.Model
	journeySaved  bool
	boardTime     time.Time // zero means now

	// Service
	service           *models.ServiceDetail
	selectedDeparture *models.ServiceSummary
	serviceFavourited bool

	// Saved journeys
	journeyList list.Model

	// Loading and provisioning
	spinner           spinner.Model
	loadingText       string
	provisionStatus   string
	provisionChannels *provisioningStartedMsg
}

// NewModel creates a new application model
func NewModel(deps Deps, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Station name or CRS code (e.g. Sevenoaks or SEV)..."
	ti.CharLimit = 60
	ti.Width = 50

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		state:         StateLoading, // Will be checked in Init
		deps:          deps,
		opts:          opts,
		stationInput:  ti,
		suggestions:   createStationList(nil, 0, 0),
		homeList:      createJourneyList("Suggested", nil, 0, 0),
		departureList: createDepartureList(nil, 0, 0),
		journeyList:   createJourneyList("Saved journeys", nil, 0, 0),
		spinner:       s,
		loadingText:   "Loading stations...",
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	if m.deps.DB != nil {
		needed, err := stations.NeedsProvisioning(m.deps.DB)
		if err == nil && needed {
			return tea.Batch(m.spinner.Tick, initiateProvisioning(m.deps.DB, m.deps.StationsURL))
		}
	}
	return tea.Batch(m.spinner.Tick, m.loadDirectory())
}

func (m Model) listSize() (int, int) {
	return max(m.width-4, 20), max(m.height-10, 5)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Handle window size
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		w, h := m.listSize()
		m.homeList.SetSize(w, h)
		m.suggestions.SetSize(w, h-3)
		m.departureList.SetSize(w, h)
		m.journeyList.SetSize(w, h)
		return m, nil
	}

	// Handle custom messages
	switch msg := msg.(type) {
	case errMsg:
		m.err = msg.err
		m.state = StateError
		return m, nil

	// Provisioning messages
	case provisioningStartedMsg:
		m.state = StateProvisioning
		m.provisionStatus = "Starting station download..."
		m.provisionChannels = &msg
		return m, tea.Batch(
			waitForProvisionStatus(msg.progressChan),
			waitForProvisionResult(msg.resultChan),
		)

	case provisionStatusMsg:
		m.provisionStatus = string(msg)
		if m.provisionChannels != nil {
			return m, waitForProvisionStatus(m.provisionChannels.progressChan)
		}
		return m, nil

	case provisionResultMsg:
		m.provisionChannels = nil
		if msg.err != nil {
			m.err = fmt.Errorf("provisioning failed: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		m.state = StateLoading
		m.loadingText = "Loading stations..."
		return m, m.loadDirectory()

	case directoryLoadedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("loading stations: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		return m.start()

	case homeLoadedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("loading journeys: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		m.recommended = msg.recommended
		m.recent = msg.recent
		w, h := m.listSize()
		m.homeList = createJourneyList("Suggested", homeItems(msg.recommended, msg.recent), w, h)
		return m, nil

	case pickerSeedMsg:
		m.seedFavs = msg.favourites
		m.seedRecent = msg.recent
		cmd = m.refreshSuggestions()
		return m, cmd

	case departuresFetchedMsg:
		if msg.err != nil {
			m.err = describeFetchError("fetching departures", msg.err)
			m.state = StateError
			return m, nil
		}
		m.timetable = msg.timetable
		m.journeySaved = msg.saved
		w, h := m.listSize()
		m.departureList = createDepartureList(msg.timetable.Departures, w, h)
		m.state = StateDepartures
		return m, nil

	case serviceFetchedMsg:
		if msg.err != nil {
			m.err = describeFetchError("fetching service", msg.err)
			m.state = StateError
			return m, nil
		}
		m.service = msg.detail
		m.serviceFavourited = msg.favourited
		m.state = StateService
		return m, nil

	case journeysFetchedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("loading saved journeys: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		items := make([]list.Item, len(msg.journeys))
		for i, j := range msg.journeys {
			items[i] = journeyItem{journey: j}
		}
		w, h := m.listSize()
		m.journeyList = createJourneyList("Saved journeys", items, w, h)
		m.state = StateJourneys
		return m, nil

	case journeyToggledMsg:
		if msg.err != nil {
			m.status = errorStyle.Render("Could not update journey: " + msg.err.Error())
			return m, nil
		}
		m.journeySaved = msg.saved
		if msg.saved {
			m.status = successStyle.Render("★ Journey saved")
		} else {
			m.status = mutedStyle.Render("Journey removed")
		}
		return m, nil

	case journeyDeletedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("deleting journey: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		m.status = mutedStyle.Render("Journey deleted")
		return m, m.fetchJourneys()

	case favouriteToggledMsg:
		if msg.err != nil {
			m.status = errorStyle.Render("Could not update favourite: " + msg.err.Error())
			return m, nil
		}
		m.serviceFavourited = msg.favourited
		if msg.favourited {
			m.status = successStyle.Render("★ Service pinned")
		} else {
			m.status = mutedStyle.Render("Service unpinned")
		}
		return m, nil

	case stationPinnedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render("Could not update station: " + msg.err.Error())
			return m, nil
		}
		if msg.pinned {
			m.status = successStyle.Render("★ Station added to favourites")
		} else {
			m.status = mutedStyle.Render("Station removed from favourites")
		}
		return m, nil

	case searchForgottenMsg:
		if msg.err != nil {
			m.status = errorStyle.Render("Could not remove search: " + msg.err.Error())
			return m, nil
		}
		m.status = mutedStyle.Render("Recent search removed")
		return m, m.loadHome()
	}

	// Handle keyboard input
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// Global keys; q is a character while typing a station
		if keyMsg.String() == "ctrl+c" || (keyMsg.String() == "q" && m.state != StatePickStation) {
			return m, tea.Quit
		}

		switch m.state {
		case StateHome:
			return m.handleHome(keyMsg)
		case StatePickStation:
			return m.handlePicker(keyMsg)
		case StateDepartures:
			return m.handleDepartures(keyMsg)
		case StateService:
			return m.handleService(keyMsg)
		case StateJourneys:
			return m.handleJourneys(keyMsg)
		case StateError:
			// Any key returns home (except quit keys)
			m.err = nil
			return m.goHome()
		}
		return m, nil
	}

	// Update appropriate component based on state
	switch m.state {
	case StateProvisioning, StateLoading:
		m.spinner, cmd = m.spinner.Update(msg)
	case StatePickStation:
		m.stationInput, cmd = m.stationInput.Update(msg)
	}

	return m, cmd
}

// start leaves the loading screen once stations are known, opening the
// board for the startup journey when one was given
func (m Model) start() (tea.Model, tea.Cmd) {
	if m.opts.FromCRS == "" {
		return m.goHome()
	}

	from, ok := m.deps.Directory.Lookup(m.opts.FromCRS)
	if !ok {
		m.err = fmt.Errorf("unknown station code %q", m.opts.FromCRS)
		m.state = StateError
		return m, nil
	}
	m.from = &from
	m.to = nil
	if m.opts.ToCRS != "" {
		to, ok := m.deps.Directory.Lookup(m.opts.ToCRS)
		if !ok {
			m.err = fmt.Errorf("unknown station code %q", m.opts.ToCRS)
			m.state = StateError
			return m, nil
		}
		m.to = &to
	}
	return m.startDepartures()
}

func (m Model) goHome() (tea.Model, tea.Cmd) {
	m.state = StateHome
	m.status = ""
	m.boardTime = time.Time{}
	return m, m.loadHome()
}

func (m Model) startPicker() (tea.Model, tea.Cmd) {
	m.state = StatePickStation
	m.pick = pickFrom
	m.from = nil
	m.to = nil
	m.status = ""
	m.boardTime = time.Time{}
	m.stationInput.SetValue("")
	m.stationInput.Focus()
	return m, tea.Batch(textinput.Blink, m.loadPickerSeed())
}

func (m Model) startDepartures() (tea.Model, tea.Cmd) {
	m.state = StateLoading
	m.status = ""
	m.stationInput.Blur()
	if m.to != nil {
		m.loadingText = fmt.Sprintf("Fetching departures from %s to %s...", m.from.Name, m.to.Name)
	} else {
		m.loadingText = fmt.Sprintf("Fetching departures from %s...", m.from.Name)
	}
	return m, tea.Batch(m.spinner.Tick, m.fetchDepartures(*m.from, m.to, m.boardTime), m.recordSearch(*m.from, m.to))
}

// refreshSuggestions re-ranks the station list against the typed query
func (m *Model) refreshSuggestions() tea.Cmd {
	query := m.stationInput.Value()
	var items []list.Item
	if strings.TrimSpace(query) == "" {
		items = seedItems(m.seedFavs, m.seedRecent)
	} else {
		items = stationItems(m.deps.Directory.Search(query, stations.DefaultSearchLimit), "")
	}

	if m.pick == pickTo && m.from != nil {
		filtered := items[:0]
		for _, it := range items {
			if si, ok := it.(stationItem); !ok || si.station.CRS != m.from.CRS {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	m.suggestions.Select(0)
	return m.suggestions.SetItems(items)
}

// handleHome handles keyboard input on the home screen
func (m Model) handleHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/", "s":
		return m.startPicker()
	case "j":
		if m.deps.Journeys == nil {
			return m, nil
		}
		m.state = StateLoading
		m.loadingText = "Loading saved journeys..."
		return m, tea.Batch(m.spinner.Tick, m.fetchJourneys())
	case "r":
		return m, m.loadHome()
	case "d":
		if item, ok := m.homeList.SelectedItem().(recentItem); ok && m.deps.History != nil {
			return m, m.forgetSearch(item.search)
		}
		return m, nil
	case "enter":
		switch item := m.homeList.SelectedItem().(type) {
		case journeyItem:
			from, to := item.journey.FromStation, item.journey.ToStation
			m.from, m.to = &from, &to
			next, cmd := m.startDepartures()
			return next, tea.Batch(cmd, m.useJourney(item.journey.ID))
		case recentItem:
			from, to := item.search.From, item.search.To
			m.from, m.to = &from, &to
			return m.startDepartures()
		}
		return m.startPicker()
	}

	var cmd tea.Cmd
	m.homeList, cmd = m.homeList.Update(msg)
	return m, cmd
}

// handlePicker handles keyboard input while choosing a station
func (m Model) handlePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.pick == pickTo {
			m.pick = pickFrom
			m.from = nil
			m.stationInput.SetValue("")
			cmd := m.refreshSuggestions()
			return m, cmd
		}
		m.stationInput.Blur()
		return m.goHome()

	case tea.KeyTab:
		// Board for the origin only, no destination filter
		if m.pick == pickTo && m.from != nil {
			m.to = nil
			return m.startDepartures()
		}
		return m, nil

	case tea.KeyUp, tea.KeyDown:
		var cmd tea.Cmd
		m.suggestions, cmd = m.suggestions.Update(msg)
		return m, cmd

	case tea.KeyEnter:
		station, ok := m.selectedSuggestion()
		if !ok {
			return m, nil
		}
		if m.pick == pickFrom {
			m.from = &station
			m.pick = pickTo
			m.stationInput.SetValue("")
			cmd := m.refreshSuggestions()
			return m, cmd
		}
		m.to = &station
		return m.startDepartures()
	}

	var cmd tea.Cmd
	m.stationInput, cmd = m.stationInput.Update(msg)
	refresh := m.refreshSuggestions()
	return m, tea.Batch(cmd, refresh)
}

// selectedSuggestion returns the highlighted station, falling back to an
// exact CRS code typed into the input
func (m Model) selectedSuggestion() (models.Station, bool) {
	if item, ok := m.suggestions.SelectedItem().(stationItem); ok {
		return item.station, true
	}
	return m.deps.Directory.Lookup(strings.TrimSpace(m.stationInput.Value()))
}

// handleDepartures handles keyboard input on the departure board
func (m Model) handleDepartures(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		return m.goHome()
	case "r":
		return m.startDepartures()
	case "]", "[":
		base := m.boardTime
		if base.IsZero() {
			base = m.deps.now()
		}
		if msg.String() == "]" {
			m.boardTime = base.Add(time.Hour)
		} else {
			m.boardTime = base.Add(-time.Hour)
		}
		return m.startDepartures()
	case "n":
		if m.boardTime.IsZero() {
			return m, nil
		}
		m.boardTime = time.Time{}
		return m.startDepartures()
	case "s":
		if m.deps.Journeys == nil {
			return m, nil
		}
		if m.to == nil {
			m.status = mutedStyle.Render("Choose a destination to save this journey")
			return m, nil
		}
		return m, m.toggleJourney(*m.from, *m.to)
	case "p":
		if m.deps.Favourites == nil {
			return m, nil
		}
		return m, m.toggleStation(*m.from)
	case "enter":
		item, ok := m.departureList.SelectedItem().(departureItem)
		if !ok {
			return m, nil
		}
		if item.departure.TimetableID == "" {
			m.status = mutedStyle.Render("No calling points available for this service")
			return m, nil
		}
		dep := item.departure
		m.selectedDeparture = &dep
		m.state = StateLoading
		m.status = ""
		m.loadingText = fmt.Sprintf("Fetching the %s to %s...", dep.AimedDepartureTime, dep.DestinationName)
		return m, tea.Batch(m.spinner.Tick, m.fetchService(dep.TimetableID))
	}

	var cmd tea.Cmd
	m.departureList, cmd = m.departureList.Update(msg)
	return m, cmd
}

// handleService handles keyboard input on the calling points view
func (m Model) handleService(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.state = StateDepartures
		m.status = ""
		return m, nil
	case "f":
		if m.deps.Favourites == nil || m.selectedDeparture == nil {
			return m, nil
		}
		to := models.Station{Name: m.service.DestinationName}
		if m.to != nil {
			to = *m.to
		}
		return m, m.toggleFavourite(m.selectedDeparture.TimetableID, *m.from, to, m.selectedDeparture.AimedDepartureTime)
	}
	return m, nil
}

// handleJourneys handles keyboard input on the saved journeys list
func (m Model) handleJourneys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		return m.goHome()
	case "d":
		if item, ok := m.journeyList.SelectedItem().(journeyItem); ok {
			return m, m.deleteJourney(item.journey.ID)
		}
		return m, nil
	case "enter":
		if item, ok := m.journeyList.SelectedItem().(journeyItem); ok {
			from, to := item.journey.FromStation, item.journey.ToStation
			m.from, m.to = &from, &to
			next, cmd := m.startDepartures()
			return next, tea.Batch(cmd, m.useJourney(item.journey.ID))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.journeyList, cmd = m.journeyList.Update(msg)
	return m, cmd
}

// describeFetchError turns API failures into something readable
func describeFetchError(action string, err error) error {
	if transportapi.IsNotFound(err) {
		return fmt.Errorf("%s: nothing found for that station", action)
	}
	return fmt.Errorf("%s: %w", action, err)
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.state {
	case StateProvisioning:
		return m.viewProvisioning()
	case StateLoading:
		return m.viewLoading()
	case StateHome:
		return m.viewHome()
	case StatePickStation:
		return m.viewPicker()
	case StateDepartures:
		return m.viewDepartures()
	case StateService:
		return m.viewService()
	case StateJourneys:
		return m.viewJourneys()
	case StateError:
		return m.viewError()
	}

	return ""
}

// viewProvisioning renders the initial setup screen
func (m Model) viewProvisioning() string {
	title := titleStyle.Render("🚆 Train Terminal Setup")

	status := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render(m.provisionStatus)

	info := helpStyle.Render("One-time setup: downloading the station list...")

	return lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		title,
		"",
		fmt.Sprintf("%s %s", m.spinner.View(), status),
		"",
		info,
	)
}

// viewLoading renders the spinner while a fetch is running
func (m Model) viewLoading() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		titleStyle.Render("🚆 Train Terminal"),
		"",
		fmt.Sprintf("%s %s", m.spinner.View(), m.loadingText),
	)
}

// viewError renders the error view
func (m Model) viewError() string {
	title := errorStyle.Render("✗ Error")

	errorMsg := "An unknown error occurred"
	if m.err != nil {
		errorMsg = m.err.Error()
	}

	help := helpStyle.Render("Press any key to return home • Q: Quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", errorMsg, "", help)
}

// viewHome renders suggested journeys and recent searches
func (m Model) viewHome() string {
	sections := []string{titleStyle.Render("🚆 Train Terminal"), ""}

	if len(m.homeList.Items()) == 0 {
		sections = append(sections, mutedStyle.Render("No suggestions right now. Press / to search for a station."))
	} else {
		sections = append(sections, m.homeList.View())
	}

	if m.status != "" {
		sections = append(sections, m.status)
	}
	sections = append(sections, helpStyle.Render("Enter: Open • /: Search • J: Saved journeys • D: Forget search • R: Refresh • Q: Quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewPicker renders the station search box and suggestions
func (m Model) viewPicker() string {
	sections := []string{titleStyle.Render("🚆 Train Terminal"), ""}

	if m.pick == pickTo && m.from != nil {
		sections = append(sections,
			labelStyle.Render("From: ")+valueStyle.Render(m.from.String()),
			sectionHeaderStyle.Render("Where to?"),
		)
	} else {
		sections = append(sections, sectionHeaderStyle.Render("Where from?"))
	}
	sections = append(sections, m.stationInput.View(), "")

	if len(m.suggestions.Items()) > 0 {
		sections = append(sections, m.suggestions.View())
	} else if m.stationInput.Value() != "" {
		sections = append(sections, mutedStyle.Render("No matching stations"))
	}

	help := "↑/↓: Choose • Enter: Select • Esc: Back • Ctrl+C: Quit"
	if m.pick == pickTo {
		help = "↑/↓: Choose • Enter: Select • Tab: All departures • Esc: Back • Ctrl+C: Quit"
	}
	sections = append(sections, helpStyle.Render(help))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewDepartures renders the departure board
func (m Model) viewDepartures() string {
	var from models.Station
	if m.from != nil {
		from = *m.from
	}
	header := renderBoardHeader(m.timetable, from, m.to)
	if m.journeySaved {
		header += "  " + successStyle.Render("★ Saved")
	}
	sections := []string{header}
	if !m.boardTime.IsZero() {
		sections = append(sections, labelStyle.Render(timeutil.FormatTimeOption(m.boardTime, m.deps.now())))
	}
	sections = append(sections, "")

	if m.timetable == nil || len(m.timetable.Departures) == 0 {
		sections = append(sections, mutedStyle.Render("No departures found"))
	} else {
		sections = append(sections, boardSummary(m.timetable), m.departureList.View())
	}

	if m.status != "" {
		sections = append(sections, m.status)
	}
	sections = append(sections, helpStyle.Render("Enter: Calling points • S: Save journey • P: Favourite station • [/]: Earlier/Later • N: Now • R: Refresh • Esc: Home • Q: Quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewService renders the calling points of the selected service
func (m Model) viewService() string {
	var fromCRS, toCRS string
	if m.from != nil {
		fromCRS = m.from.CRS
	}
	if m.to != nil {
		toCRS = m.to.CRS
	}

	title := activeTitleStyle.Render(" Calling points ")
	if m.serviceFavourited {
		title += "  " + successStyle.Render("★ Pinned")
	}
	sections := []string{title, "", renderService(m.service, fromCRS, toCRS)}

	if m.status != "" {
		sections = append(sections, m.status)
	}
	sections = append(sections, helpStyle.Render("F: Pin service • Esc: Back • Q: Quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewJourneys renders the saved journeys list
func (m Model) viewJourneys() string {
	sections := []string{titleStyle.Render("🚆 Train Terminal"), ""}

	if len(m.journeyList.Items()) == 0 {
		sections = append(sections, mutedStyle.Render("No saved journeys. Press S on a departure board to save one."))
	} else {
		sections = append(sections, m.journeyList.View())
	}

	if m.status != "" {
		sections = append(sections, m.status)
	}
	sections = append(sections, helpStyle.Render("Enter: Departures • D: Delete • Esc: Home • Q: Quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
