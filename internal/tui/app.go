package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stronk-dev/croon/internal/browse"
	"github.com/stronk-dev/croon/internal/config"
	"github.com/stronk-dev/croon/internal/core"
	"github.com/stronk-dev/croon/internal/enrich"
	"github.com/stronk-dev/croon/internal/librespot"
	"github.com/stronk-dev/croon/internal/log"
	"github.com/stronk-dev/croon/internal/player"
	"github.com/stronk-dev/croon/internal/tui/components"
	"github.com/stronk-dev/croon/internal/tui/styles"
)

// Panel represents which panel is focused
type Panel int

const (
	PanelNowPlaying Panel = iota
	PanelQueue
	PanelPlaylists
	PanelBrowse

	panelCount
)

// visibilityMargin is how many off-screen rows count as "near the viewport"
// for enrichment, so names are usually ready before the user scrolls.
const visibilityMargin = 4

// App wires the store, event feed, enrichment, and navigation together for
// the TUI.
type App struct {
	cfg    *config.Config
	client *librespot.Client
	store  *player.Store
	feed   *librespot.Feed
	tracks *enrich.Scheduler[*librespot.Track]
	nav    *browse.Stack
	ctxRes *browse.ContextResolver
	sleep  *player.SleepTimer

	queueDisp    *enrich.Dispatcher
	playlistDisp *enrich.Dispatcher
	browseDisp   *enrich.Dispatcher

	wantMoreRoot atomic.Bool
	notify       chan struct{}
	cancel       context.CancelFunc
}

// NewApp builds the TUI application around the configured daemon.
func NewApp(cfg *config.Config) (*App, error) {
	client := librespot.New(cfg.Daemon.APIURL)

	session, err := player.OpenSession(filepath.Join(config.StateDir(), "session.json"))
	if err != nil {
		log.Warnf("tui: open session: %v", err)
	}

	app := &App{
		cfg:    cfg,
		client: client,
		store:  player.NewStore(client, client.BaseURL(), session),
		notify: make(chan struct{}, 1),
	}

	app.tracks = enrich.NewScheduler[*librespot.Track](
		enrich.Config{
			MaxConcurrent: cfg.Enrich.MaxConcurrent,
			MaxRetries:    cfg.Enrich.MaxRetries,
		},
		func(ctx context.Context, uri string) (*librespot.Track, bool, error) {
			track, err := client.GetTrack(ctx, librespot.ExtractID(uri))
			if err != nil {
				return nil, false, err
			}
			return track, track != nil, nil
		},
		func(string, *librespot.Track, bool) { app.poke() },
	)

	app.nav = browse.NewStack(client, cfg.Rootlist.PageSize, app.poke)
	app.ctxRes = browse.NewContextResolver(client, app.poke)
	app.sleep = player.NewSleepTimer(func() {
		if err := app.store.Pause(context.Background()); err != nil {
			log.Warnf("tui: sleep timer pause: %v", err)
		}
		app.poke()
	})

	app.queueDisp = enrich.NewDispatcher(app.tracks.Enqueue, nil)
	app.browseDisp = enrich.NewDispatcher(app.tracks.Enqueue, app.nav.LoadMore)
	app.playlistDisp = enrich.NewDispatcher(app.tracks.Enqueue, func() {
		app.wantMoreRoot.Store(true)
		app.poke()
	})

	app.feed = librespot.NewFeed(cfg.Daemon.WSURL, app.store)
	return app, nil
}

// poke coalesces out-of-band change notifications into the bubbletea loop.
func (a *App) poke() {
	select {
	case a.notify <- struct{}{}:
	default:
	}
}

// Start runs the event feed until Stop.
func (a *App) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	go func() {
		_ = a.feed.Run(ctx)
	}()
}

// Stop tears down background work.
func (a *App) Stop() {
	if a.cancel != nil {
		a.cancel()
	}
	a.sleep.Cancel()
	a.tracks.Close()
	a.queueDisp.Close()
	a.playlistDisp.Close()
	a.browseDisp.Close()
}

// trackName resolves an enriched display name for a track URI, or "".
func (a *App) trackName(uri string) string {
	if track, ok := a.tracks.Result(uri); ok && track != nil {
		return track.Name
	}
	return ""
}

// Model is the main TUI model
type Model struct {
	app          *App
	width        int
	height       int
	focusedPanel Panel

	// State
	state       core.PlaybackState
	rootlist    []librespot.PlaylistRef
	rootTotal   int
	rootLoading bool

	// Components
	nowPlaying    *components.NowPlaying
	queueView     *components.Queue
	playlistsView *components.Playlists
	browseView    *components.Browse

	showHelp  bool
	showOpen  bool
	openInput textinput.Model
	openErr   string
	lastErr   string
	quitting  bool
}

// NewModel creates a new TUI model
func NewModel(app *App) Model {
	ti := textinput.New()
	ti.Placeholder = "spotify:playlist:... / spotify:album:... / spotify:track:..."
	ti.CharLimit = 120
	ti.Width = 60

	return Model{
		openInput:     ti,
		app:           app,
		focusedPanel:  PanelNowPlaying,
		state:         app.store.Snapshot(),
		nowPlaying:    components.NewNowPlaying(),
		queueView:     components.NewQueue(),
		playlistsView: components.NewPlaylists(),
		browseView:    components.NewBrowse(),
	}
}

// Messages
type stateMsg core.PlaybackState
type refreshMsg struct{}
type rootlistMsg struct {
	list   *librespot.Rootlist
	offset int
	err    error
}

// Commands
func (m Model) waitForState() tea.Cmd {
	updates := m.app.store.Updates()
	return func() tea.Msg {
		return stateMsg(<-updates)
	}
}

func (m Model) waitForRefresh() tea.Cmd {
	notify := m.app.notify
	return func() tea.Msg {
		return refreshMsg(<-notify)
	}
}

func (m Model) fetchRootlist(offset int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		list, err := m.app.client.GetRootlist(ctx, m.app.cfg.Rootlist.PageSize, offset)
		return rootlistMsg{list: list, offset: offset, err: err}
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	m.app.Start()
	return tea.Batch(
		m.waitForState(),
		m.waitForRefresh(),
		m.fetchRootlist(0),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.dispatchVisibility()
		return m, nil

	case stateMsg:
		m.state = core.PlaybackState(msg)
		m.lastErr = m.state.LastError
		m.dispatchVisibility()
		return m, m.waitForState()

	case refreshMsg:
		var cmds []tea.Cmd
		if m.app.wantMoreRoot.Swap(false) && !m.rootLoading && len(m.rootlist) < m.rootTotal {
			m.rootLoading = true
			cmds = append(cmds, m.fetchRootlist(len(m.rootlist)))
		}
		m.dispatchVisibility()
		cmds = append(cmds, m.waitForRefresh())
		return m, tea.Batch(cmds...)

	case rootlistMsg:
		m.rootLoading = false
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			return m, nil
		}
		if msg.list != nil {
			if msg.offset == 0 {
				m.rootlist = msg.list.Playlists
			} else {
				m.rootlist = append(m.rootlist, msg.list.Playlists...)
			}
			if msg.list.Total > 0 {
				m.rootTotal = msg.list.Total
			} else if m.rootTotal < len(m.rootlist) {
				m.rootTotal = len(m.rootlist)
			}
		}
		m.dispatchVisibility()
		return m, nil
	}

	// Forward other messages to the input when the open prompt is up.
	if m.showOpen {
		var inputCmd tea.Cmd
		m.openInput, inputCmd = m.openInput.Update(msg)
		return m, inputCmd
	}

	return m, nil
}

// dispatchVisibility reports in-view rows of every list panel to their
// enrichment dispatchers.
func (m *Model) dispatchVisibility() {
	rows := m.listHeight()

	m.app.queueDisp.Visible(
		m.queueView.VisibleRows(m.state.Queue, rows, visibilityMargin, m.app.trackName))
	m.app.playlistDisp.Visible(
		m.playlistsView.VisibleRows(m.rootlist, m.rootTotal, rows, visibilityMargin))
	m.app.browseDisp.Visible(
		m.browseView.VisibleRows(m.app.nav.Current(), m.app.trackName, rows, visibilityMargin))
}

// listHeight is how many rows a list panel can show.
func (m *Model) listHeight() int {
	h := m.height/2 - 6
	if max := m.app.cfg.UI.PanelMaxRows; max > 0 && h > max {
		h = max
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		m.app.Stop()
		return m, tea.Quit
	}

	if m.showHelp {
		switch msg.String() {
		case "?", "esc":
			m.showHelp = false
		}
		return m, nil
	}

	if m.showOpen {
		return m.handleOpenKeyPress(msg)
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		m.app.Stop()
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "o":
		m.showOpen = true
		m.openErr = ""
		m.openInput.SetValue("")
		m.openInput.Focus()
		return m, textinput.Blink

	case "tab":
		m.focusedPanel = (m.focusedPanel + 1) % panelCount
		return m, nil

	case "shift+tab":
		m.focusedPanel = (m.focusedPanel + panelCount - 1) % panelCount
		return m, nil
	}

	// Playback controls
	switch msg.String() {
	case " ":
		return m, m.command(m.app.store.TogglePlayback)
	case "n":
		return m, m.command(m.app.store.Next)
	case "p":
		return m, m.command(m.app.store.Previous)
	case "+", "=":
		return m, m.volumeDelta(1)
	case "-":
		return m, m.volumeDelta(-1)
	case "s":
		return m, m.command(m.app.store.ToggleShuffle)
	case "R":
		return m, m.command(m.app.store.CycleRepeat)
	case "<", ",":
		return m, m.seekDelta(-15 * time.Second)
	case ">", ".":
		return m, m.seekDelta(15 * time.Second)
	case "z":
		return m, m.cycleSleep()
	case "r":
		return m, m.command(m.app.store.Initialize)
	}

	// Panel-specific keys
	switch m.focusedPanel {
	case PanelQueue:
		switch msg.String() {
		case "j", "down":
			m.queueView.ScrollDown()
			m.dispatchVisibility()
		case "k", "up":
			m.queueView.ScrollUp()
			m.dispatchVisibility()
		}

	case PanelPlaylists:
		switch msg.String() {
		case "j", "down":
			m.playlistsView.SelectNext(len(m.rootlist))
			m.dispatchVisibility()
		case "k", "up":
			m.playlistsView.SelectPrev()
			m.dispatchVisibility()
		case "enter":
			return m, m.openSelectedPlaylist(false)
		case "x":
			return m, m.openSelectedPlaylist(true)
		}

	case PanelBrowse:
		switch msg.String() {
		case "j", "down":
			m.browseView.SelectNext(m.app.nav.Current())
			m.dispatchVisibility()
		case "k", "up":
			m.browseView.SelectPrev()
			m.dispatchVisibility()
		case "enter":
			return m, m.activateBrowseSelection()
		case "a":
			return m, m.queueBrowseSelection()
		case "esc", "backspace", "h", "left":
			m.app.nav.Pop()
			m.browseView.ResetCursor()
			m.dispatchVisibility()
		}
	}

	return m, nil
}

func (m Model) handleOpenKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.showOpen = false
		m.openInput.Blur()
		return m, nil

	case "enter":
		uri := strings.TrimSpace(m.openInput.Value())
		if uri == "" {
			return m, nil
		}

		switch core.KindFromURI(uri) {
		case core.KindAlbum, core.KindArtist, core.KindShow, core.KindPlaylist:
			m.app.nav.Reset()
			if err := m.app.nav.Push(uri); err != nil {
				m.openErr = err.Error()
				return m, nil
			}
			m.showOpen = false
			m.openInput.Blur()
			m.browseView.ResetCursor()
			m.focusedPanel = PanelBrowse
			m.dispatchVisibility()
			return m, nil

		case core.KindTrack, core.KindEpisode:
			m.showOpen = false
			m.openInput.Blur()
			app := m.app
			return m, func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = app.store.Play(ctx, uri, "")
				return nil
			}

		default:
			m.openErr = "not a spotify URI"
			return m, nil
		}
	}

	var inputCmd tea.Cmd
	m.openInput, inputCmd = m.openInput.Update(msg)
	return m, inputCmd
}

// command runs a store command in the background, surfacing errors in the
// status bar through the notify channel.
func (m Model) command(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := fn(ctx); err != nil {
			log.Debugf("tui: command: %v", err)
		}
		return nil
	}
}

func (m Model) volumeDelta(direction int) tea.Cmd {
	app := m.app
	state := m.state
	return func() tea.Msg {
		step := state.MaxVolume / 20
		if step < 1 {
			step = 1
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = app.store.ChangeVolume(ctx, direction*step)
		return nil
	}
}

func (m Model) seekDelta(d time.Duration) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = app.store.SeekRelative(ctx, d.Milliseconds())
		return nil
	}
}

// cycleSleep steps the sleep timer 15m -> 30m -> 60m -> off.
func (m Model) cycleSleep() tea.Cmd {
	remaining := m.app.sleep.Remaining()
	switch {
	case remaining == 0:
		m.app.sleep.Set(15 * time.Minute)
	case remaining <= 15*time.Minute:
		m.app.sleep.Set(30 * time.Minute)
	case remaining <= 30*time.Minute:
		m.app.sleep.Set(60 * time.Minute)
	default:
		m.app.sleep.Cancel()
	}
	return nil
}

func (m *Model) openSelectedPlaylist(play bool) tea.Cmd {
	idx := m.playlistsView.Selected()
	if idx < 0 || idx >= len(m.rootlist) {
		return nil
	}
	uri := m.rootlist[idx].URI

	if play {
		app := m.app
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = app.store.Play(ctx, uri, "")
			return nil
		}
	}

	m.app.nav.Reset()
	if err := m.app.nav.Push(uri); err == nil {
		m.browseView.ResetCursor()
		m.focusedPanel = PanelBrowse
	}
	return nil
}

// activateBrowseSelection drills into navigable entities and plays tracks
// within the context being browsed.
func (m *Model) activateBrowseSelection() tea.Cmd {
	entry := m.app.nav.Current()
	uri := m.browseView.SelectedURI(entry)
	if uri == "" {
		return nil
	}

	switch core.KindFromURI(uri) {
	case core.KindAlbum, core.KindArtist, core.KindShow, core.KindPlaylist:
		if err := m.app.nav.Push(uri); err == nil {
			m.browseView.ResetCursor()
			m.dispatchVisibility()
		}
		return nil

	case core.KindTrack, core.KindEpisode:
		app := m.app
		contextURI := ""
		if entry != nil && entry.Kind != core.KindArtist {
			contextURI = entry.URI
		}
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if contextURI != "" {
				_ = app.store.Play(ctx, contextURI, uri)
			} else {
				_ = app.store.Play(ctx, uri, "")
			}
			return nil
		}
	}
	return nil
}

func (m Model) queueBrowseSelection() tea.Cmd {
	uri := m.browseView.SelectedURI(m.app.nav.Current())
	if core.KindFromURI(uri) != core.KindTrack {
		return nil
	}
	app := m.app
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = app.store.AddToQueue(ctx, uri)
		return nil
	}
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	if m.app.cfg.UI.HideOnDisconnect && !m.state.Connected() {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(styles.Dim.Render("waiting for daemon..."))
	}

	if m.showHelp {
		return m.renderHelp()
	}
	if m.showOpen {
		return m.renderOpen()
	}

	contextName := m.app.ctxRes.Name(m.state.ContextURI)

	if m.app.cfg.UI.Kiosk || m.narrow() {
		nowPlaying := m.nowPlaying.Render(m.state, contextName, m.width-2, m.height-3, false)
		return lipgloss.JoinVertical(lipgloss.Left, nowPlaying, m.renderStatusBar())
	}

	leftWidth := m.width * 55 / 100
	rightWidth := m.width - leftWidth - 2
	topHeight := m.height * 45 / 100
	bottomHeight := m.height - topHeight - 3

	nowPlaying := m.nowPlaying.Render(m.state, contextName, leftWidth-2, topHeight-2, m.focusedPanel == PanelNowPlaying)
	queueView := m.queueView.Render(m.state.Queue, leftWidth-2, bottomHeight-2, m.focusedPanel == PanelQueue, m.app.trackName)
	playlistsView := m.playlistsView.Render(m.rootlist, m.rootTotal, rightWidth-2, topHeight-2, m.focusedPanel == PanelPlaylists, m.rootLoading)
	browseView := m.browseView.Render(m.app.nav.Current(), rightWidth-2, bottomHeight-2, m.focusedPanel == PanelBrowse, m.app.trackName)

	leftCol := lipgloss.JoinVertical(lipgloss.Left, nowPlaying, queueView)
	rightCol := lipgloss.JoinVertical(lipgloss.Left, playlistsView, browseView)
	main := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, rightCol)

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

// narrow decides the single-panel layout, either forced by config or by a
// small terminal.
func (m Model) narrow() bool {
	switch m.app.cfg.UI.Layout {
	case "narrow":
		return true
	case "wide":
		return false
	}
	return m.width < m.app.cfg.UI.WidthBreakpoint
}

func (m Model) renderStatusBar() string {
	status := styles.Dim.Render("q:quit  ?:help  space:play/pause  n/p:track  +/-:volume  s:shuffle  z:sleep  tab:panel")

	if remaining := m.app.sleep.Remaining(); remaining > 0 {
		status = styles.Paused.Render(fmt.Sprintf("💤 %s  ", remaining.Round(time.Second))) + status
	}
	if !m.state.Connected() {
		status = styles.Disconnected.Render("⚠ disconnected  ") + status
	} else if m.lastErr != "" {
		status = styles.Disconnected.Render("Error: "+m.lastErr) + "  " + status
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

func (m Model) renderOpen() string {
	var b strings.Builder

	b.WriteString(styles.Highlight.Render("Open URI"))
	b.WriteString("\n\n")
	b.WriteString(m.openInput.View())
	b.WriteString("\n\n")
	if m.openErr != "" {
		b.WriteString(styles.Disconnected.Render(m.openErr))
		b.WriteString("\n")
	}
	b.WriteString(styles.Dim.Render("Enter:open  Esc:close"))

	content := lipgloss.NewStyle().
		Width(70).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.FocusedBorder.Render(content))
}

func (m Model) renderHelp() string {
	title := "Croon UI - Keyboard Shortcuts"
	divider := styles.Repeat("═", len(title))

	help := `
  ` + title + `
  ` + divider + `

  Global
  ──────
  q, Ctrl+C    Quit
  ?            Toggle help
  o            Open a spotify URI
  Tab          Next panel
  Shift+Tab    Previous panel
  r            Re-sync from daemon

  Playback
  ────────
  Space        Play/Pause
  n            Next track
  p            Previous track
  +/=          Volume up
  -            Volume down
  s            Toggle shuffle
  R            Cycle repeat (off/context/track)
  < / >        Seek ±15s
  z            Sleep timer (15m/30m/60m/off)

  Playlists Panel
  ───────────────
  j/↓ k/↑      Move cursor
  Enter        Browse playlist
  x            Play playlist

  Browse Panel
  ────────────
  j/↓ k/↑      Move cursor
  Enter        Open / play selection
  a            Add track to queue
  Esc, h       Back

  Press ? or Esc to close
`

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.BorderStyle.Render(help))
}

// Run starts the TUI application
func Run(cfg *config.Config) error {
	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	defer app.Stop()

	model := NewModel(app)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err = p.Run()
	return err
}
