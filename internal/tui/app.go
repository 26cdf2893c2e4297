package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/jobtrack/internal/browser"
	"github.com/matheuskafuri/jobtrack/internal/digest"
	"github.com/matheuskafuri/jobtrack/internal/gate"
	"github.com/matheuskafuri/jobtrack/internal/match"
	"github.com/matheuskafuri/jobtrack/internal/notify"
	"github.com/matheuskafuri/jobtrack/internal/rank"
	"github.com/matheuskafuri/jobtrack/internal/status"
	"github.com/matheuskafuri/jobtrack/internal/workspace"
)

type focusPane int

const (
	focusList focusPane = iota
	focusPreview
)

type view int

const (
	viewDashboard view = iota
	viewSaved
	viewDigest
	viewChecklist
	viewShip
)

var viewNames = []string{"Dashboard", "Saved", "Digest", "Checklist", "Ship"}

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeFilter
	modeHelp
	modeNote
	modeLink
)

// rowState answers per-posting status and saved flags for the list.
type rowState struct {
	ws *workspace.Workspace
}

func (r rowState) Get(id int) status.Status { return r.ws.Status.Get(id) }
func (r rowState) Has(id int) bool          { return r.ws.Saved.Has(id) }

type App struct {
	ws       *workspace.Workspace
	queue    *notify.Queue
	launcher browser.Launcher
	now      func() time.Time

	postings []match.Scored
	cursor   int
	focus    focusPane
	view     view
	mode     mode

	width  int
	height int

	// Sub-components
	searchInput textinput.Model
	editInput   textinput.Model
	spinner     spinner.Model
	filterBar   filterBar

	// State
	sort          rank.Strategy
	matchesOnly   bool
	previewScroll int
	checkCursor   int
	showTip       bool
	digestCursor  int
	linkCursor    int
	today         *digest.Digest
	opening       bool
	toasts        []notify.Notification
	toastTTL      time.Duration
	currentDate   string
	err           error
	unsubscribe   func()
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Workspace   *workspace.Workspace
	Queue       *notify.Queue
	Sort        rank.Strategy
	MatchesOnly bool
	ToastTTL    time.Duration
	Launcher    browser.Launcher
	Now         func() time.Time
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Search title or company..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 100

	ei := textinput.New()
	ei.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	if opts.Queue == nil {
		opts.Queue = &notify.Queue{}
	}
	if opts.Launcher.Start == nil {
		opts.Launcher = browser.System
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Sort == "" {
		opts.Sort = rank.Latest
	}

	a := &App{
		ws:          opts.Workspace,
		queue:       opts.Queue,
		launcher:    opts.Launcher,
		now:         opts.Now,
		filterBar:   newFilterBar(),
		searchInput: ti,
		editInput:   ei,
		spinner:     sp,
		sort:        opts.Sort,
		matchesOnly: opts.MatchesOnly,
		toastTTL:    notify.ClampTTL(opts.ToastTTL),
		currentDate: opts.Now().Format("Mon, Jan 2"),
	}
	a.unsubscribe = a.ws.Gate.Subscribe(a.onChecklistChange)
	if d, ok := a.ws.Digests.Today(a.now()); ok {
		a.today = d
	}
	a.refresh()
	return a
}

func (a *App) Init() tea.Cmd {
	return nil
}

// onChecklistChange runs after every persisted checklist mutation. Losing the
// unlock while the ship view is open sends the user back to the checklist.
func (a *App) onChecklistChange(c gate.Checklist) {
	if a.view == viewShip && c.Count() < gate.Total {
		a.view = viewChecklist
		a.mode = modeNormal
		a.queue.Notify("Shipping locked: complete all 10 checks")
	}
}

func (a *App) query() workspace.Query {
	return workspace.Query{
		Filter:      a.filterBar.state(a.searchInput.Value()),
		MatchesOnly: a.matchesOnly,
		Sort:        a.sort,
	}
}

// refresh recomputes the visible list for the current view.
func (a *App) refresh() {
	switch a.view {
	case viewSaved:
		a.postings = rank.Sort(a.ws.SavedPostings(), a.sort)
	default:
		a.postings = a.ws.View(a.query())
	}
	if a.cursor >= len(a.postings) {
		a.cursor = max(0, len(a.postings)-1)
	}
}

func (a *App) selected() *match.Scored {
	if len(a.postings) == 0 || a.cursor >= len(a.postings) {
		return nil
	}
	return &a.postings[a.cursor]
}

// flushToasts moves queued notifications on screen and schedules their
// removal.
func (a *App) flushToasts() tea.Cmd {
	var cmds []tea.Cmd
	for _, n := range a.queue.Drain() {
		a.toasts = append(a.toasts, n)
		id := n.ID
		cmds = append(cmds, tea.Tick(a.toastTTL, func(time.Time) tea.Msg {
			return toastExpiredMsg{id: id}
		}))
	}
	return tea.Batch(cmds...)
}

func (a *App) openCmd(url string) tea.Cmd {
	a.opening = true
	l := a.launcher
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		return openDoneMsg{err: l.Open(url)}
	})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		model, cmd := a.handleKey(msg)
		return model, tea.Batch(cmd, a.flushToasts())

	case toastExpiredMsg:
		for i, t := range a.toasts {
			if t.ID == msg.id {
				a.toasts = append(a.toasts[:i], a.toasts[i+1:]...)
				break
			}
		}
		return a, nil

	case openDoneMsg:
		a.opening = false
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.opening {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	}

	// Mode-specific handling
	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeFilter:
		return a.handleFilterKey(msg)
	case modeNote:
		return a.handleNoteKey(msg)
	case modeLink:
		return a.handleLinkKey(msg)
	case modeHelp:
		if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
			a.mode = modeNormal
		}
		return a, nil
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "?":
		a.mode = modeHelp
		return a, nil
	case "1":
		a.switchView(viewDashboard)
		return a, nil
	case "2", "v":
		a.switchView(viewSaved)
		return a, nil
	case "3", "d":
		a.switchView(viewDigest)
		return a, nil
	case "4", "c":
		a.switchView(viewChecklist)
		return a, nil
	case "5", "S":
		a.switchView(viewShip)
		return a, nil
	case "esc":
		if a.view != viewDashboard && !a.ws.Gate.ResetPending() {
			a.switchView(viewDashboard)
			return a, nil
		}
	}

	switch a.view {
	case viewChecklist:
		return a.handleChecklistKey(msg)
	case viewDigest:
		return a.handleDigestKey(msg)
	case viewShip:
		return a.handleShipKey(msg)
	}
	return a.handleListKey(msg)
}

// switchView changes view, refusing the ship view while the gate is locked.
func (a *App) switchView(v view) {
	if v == viewShip && !a.ws.Gate.IsUnlocked() {
		done, total := a.ws.Gate.Progress()
		a.queue.Notify(fmt.Sprintf("Complete all tests before shipping (%d/%d)", done, total))
		v = viewChecklist
	}
	a.view = v
	a.mode = modeNormal
	a.cursor = 0
	a.previewScroll = 0
	if v == viewDashboard || v == viewSaved {
		a.refresh()
	}
}

func (a *App) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if a.focus == focusList && a.cursor < len(a.postings)-1 {
			a.cursor++
			a.previewScroll = 0
		} else if a.focus == focusPreview {
			a.previewScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.previewScroll = 0
		} else if a.focus == focusPreview && a.previewScroll > 0 {
			a.previewScroll--
		}
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusPreview
		} else {
			a.focus = focusList
		}
		return a, nil
	case "o", "enter":
		if p := a.selected(); p != nil {
			return a, a.openCmd(p.ApplyURL)
		}
		return a, nil
	case " ", "b":
		if p := a.selected(); p != nil {
			if _, err := a.ws.ToggleSaved(p.ID); err != nil {
				a.err = err
			}
			a.refresh()
		}
		return a, nil
	case "t":
		if p := a.selected(); p != nil {
			if err := a.ws.SetStatus(p.ID, a.ws.Status.Get(p.ID).Next()); err != nil {
				a.err = err
			}
			a.refresh()
		}
		return a, nil
	case "n":
		if p := a.selected(); p != nil {
			note, _ := a.ws.Notes.Get(p.ID)
			a.editInput.SetValue(note)
			a.editInput.Prompt = searchPromptStyle.Render("note: ")
			a.editInput.Placeholder = "Add a note (empty to delete)"
			a.editInput.Focus()
			a.mode = modeNote
			return a, textinput.Blink
		}
		return a, nil
	case "s":
		a.sort = a.sort.Next()
		a.cursor = 0
		a.refresh()
		return a, nil
	}

	if a.view != viewDashboard {
		return a, nil
	}

	switch msg.String() {
	case "m":
		a.matchesOnly = !a.matchesOnly
		a.cursor = 0
		a.refresh()
		return a, nil
	case "/":
		a.mode = modeSearch
		a.searchInput.Focus()
		return a, textinput.Blink
	case "f":
		a.mode = modeFilter
		a.filterBar.filterMode = true
		return a, nil
	case "x":
		a.filterBar.clear()
		a.searchInput.SetValue("")
		a.cursor = 0
		a.refresh()
		return a, nil
	}
	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.refresh()
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.searchInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	a.cursor = 0
	a.refresh()
	return a, cmd
}

func (a *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "f":
		a.mode = modeNormal
		a.filterBar.filterMode = false
		return a, nil
	case "left", "h":
		if a.filterBar.filterCursor > 0 {
			a.filterBar.filterCursor--
		}
		return a, nil
	case "right", "l":
		if a.filterBar.filterCursor < len(a.filterBar.slots)-1 {
			a.filterBar.filterCursor++
		}
		return a, nil
	case " ", "enter", "j", "down":
		a.filterBar.cycle(1)
	case "k", "up":
		a.filterBar.cycle(-1)
	case "x":
		a.filterBar.clear()
	default:
		return a, nil
	}
	a.cursor = 0
	a.refresh()
	return a, nil
}

func (a *App) handleNoteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.editInput.Blur()
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.editInput.Blur()
		if p := a.selected(); p != nil {
			if err := a.ws.Notes.Set(p.ID, a.editInput.Value()); err != nil {
				a.err = err
			} else {
				a.queue.Notify("Note saved")
			}
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.editInput, cmd = a.editInput.Update(msg)
	return a, cmd
}

func (a *App) handleChecklistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	g := a.ws.Gate
	if g.ResetPending() {
		switch msg.String() {
		case "y":
			if err := g.ConfirmReset(); err != nil {
				a.err = err
			} else {
				a.queue.Notify("Test progress reset")
			}
		case "n", "esc":
			g.CancelReset()
		}
		return a, nil
	}

	switch msg.String() {
	case "j", "down":
		if a.checkCursor < gate.Total-1 {
			a.checkCursor++
		}
	case "k", "up":
		if a.checkCursor > 0 {
			a.checkCursor--
		}
	case " ", "enter":
		wasUnlocked := g.IsUnlocked()
		if err := g.Toggle(gate.Items[a.checkCursor].ID); err != nil {
			a.err = err
		} else if !wasUnlocked && g.IsUnlocked() {
			a.queue.Notify("All tests passed: shipping unlocked")
		}
	case "i":
		a.showTip = !a.showTip
	case "R":
		g.RequestReset()
	}
	return a, nil
}

func (a *App) handleDigestKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "g":
		if a.today != nil {
			a.queue.Notify("Today's digest is already generated")
			return a, nil
		}
		d, err := a.ws.Digest(a.now())
		if err != nil {
			a.err = err
			return a, nil
		}
		a.today = d
		a.digestCursor = 0
		return a, nil
	case "j", "down":
		if a.today != nil && a.digestCursor < len(a.today.Entries)-1 {
			a.digestCursor++
		}
	case "k", "up":
		if a.digestCursor > 0 {
			a.digestCursor--
		}
	case "o", "enter":
		if a.today != nil && a.digestCursor < len(a.today.Entries) {
			return a, a.openCmd(a.today.Entries[a.digestCursor].ApplyURL)
		}
	case "e":
		if a.today != nil {
			return a, a.openCmd(a.today.MailtoURL())
		}
	}
	return a, nil
}

func (a *App) handleShipKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if a.linkCursor < len(linkLabels)-1 {
			a.linkCursor++
		}
	case "k", "up":
		if a.linkCursor > 0 {
			a.linkCursor--
		}
	case "e", "enter":
		a.editInput.SetValue(linkValues(a.ws.Proof.Load())[a.linkCursor])
		a.editInput.Prompt = searchPromptStyle.Render(linkLabels[a.linkCursor] + ": ")
		a.editInput.Placeholder = "https://..."
		a.editInput.Focus()
		a.mode = modeLink
		return a, textinput.Blink
	}
	return a, nil
}

func (a *App) handleLinkKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.editInput.Blur()
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.editInput.Blur()
		links := withLink(a.ws.Proof.Load(), a.linkCursor, a.editInput.Value())
		if err := a.ws.Proof.Save(links); err != nil {
			a.err = err
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.editInput, cmd = a.editInput.Update(msg)
	return a, cmd
}

func (a *App) withBottomBar(content string, hints string) string {
	done, total := a.ws.Gate.Progress()
	bar := renderBottomBar(done, total, hints, a.width)
	if t := a.latestToast(); t != "" {
		bar = toastStyle.Width(a.width).Render(t)
	}
	if a.err != nil {
		bar = errStyle.Width(a.width).Render(a.err.Error())
	}
	lines := strings.Split(content, "\n")
	for len(lines) < a.height-1 {
		lines = append(lines, "")
	}
	if len(lines) >= a.height {
		lines = lines[:a.height-1]
	}
	lines = append(lines, bar)
	return strings.Join(lines, "\n")
}

func (a *App) latestToast() string {
	if len(a.toasts) == 0 {
		return ""
	}
	return a.toasts[len(a.toasts)-1].Message
}

func (a *App) renderTabs() string {
	var parts []string
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if view(i) == viewShip && !a.ws.Gate.IsUnlocked() {
			label += " 🔒"
		}
		if view(i) == a.view {
			parts = append(parts, tabActiveStyle.Render(label))
		} else {
			parts = append(parts, tabInactiveStyle.Render(label))
		}
	}
	return strings.Join(parts, tabSeparatorStyle.Render(" "))
}

func (a *App) renderHeader() string {
	headerLeft := headerStyle.Render("jobtrack") + " " + a.renderTabs()
	headerRight := headerDateStyle.Render(a.currentDate)
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	return headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  jobtrack")
	}

	if a.mode == modeHelp {
		return a.withBottomBar(a.renderHelp(), "? close  q quit")
	}

	header := a.renderHeader()
	bodyHeight := a.height - 2

	switch a.view {
	case viewChecklist:
		body := renderChecklist(a.ws.Gate.State(), a.checkCursor, a.showTip, a.ws.Gate.ResetPending(), a.width, bodyHeight)
		return a.withBottomBar(header+"\n"+body, "space toggle  i tip  R reset  esc back  q quit")
	case viewDigest:
		body := renderDigest(a.today, a.ws.HasPreferences(), a.digestCursor, a.width, bodyHeight)
		return a.withBottomBar(header+"\n"+body, "g generate  o open  e email draft  esc back  q quit")
	case viewShip:
		editing := ""
		if a.mode == modeLink {
			editing = a.editInput.View()
		}
		body := renderShip(a.ws.Proof.Load(), a.ws.ProofStage(), a.linkCursor, editing, a.width, bodyHeight)
		return a.withBottomBar(header+"\n"+body, "e edit link  esc back  q quit")
	}

	return a.renderListView(header)
}

func (a *App) renderListView(header string) string {
	// Layout calculations
	headerHeight := 1
	filterHeight := 1
	statusHeight := 1
	bannerHeight := 0
	if !a.ws.HasPreferences() {
		bannerHeight = 1
	}
	contentHeight := a.height - headerHeight - filterHeight - statusHeight - bannerHeight - 4 // borders

	listWidth := int(float64(a.width) * 0.4)
	previewWidth := a.width - listWidth - 1 // gap

	if contentHeight < 3 {
		contentHeight = 3
	}

	// Filter bar
	bar := a.filterBar.render(a.width)
	if a.view == viewSaved {
		bar = lipgloss.NewStyle().Background(colorSurface).Width(a.width).PaddingLeft(1).
			Render(fmt.Sprintf("Saved Jobs (%d)", len(a.postings)))
	}

	// Search bar (replaces filter when searching)
	if a.mode == modeSearch {
		bar = a.searchInput.View()
	}
	if a.mode == modeNote {
		bar = a.editInput.View()
	}

	// List pane
	empty := "No jobs found. Try clearing filters (x)."
	if a.view == viewSaved {
		empty = "No saved jobs yet. Press space on a job to save it."
	}
	innerListW := listWidth - 4 // border + padding
	listContent := renderList(a.postings, rowState{a.ws}, a.cursor, contentHeight, innerListW, empty)

	var listPane string
	if a.focus == focusList {
		listPane = listPaneActiveStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	} else {
		listPane = listPaneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	}

	// Preview pane
	pd := previewData{}
	if p := a.selected(); p != nil {
		pd.posting = p
		pd.breakdown, _ = a.ws.Breakdown(p.ID)
		pd.status = a.ws.Status.Get(p.ID)
		pd.saved = a.ws.Saved.Has(p.ID)
		pd.note, _ = a.ws.Notes.Get(p.ID)
	}
	innerPreviewW := previewWidth - 4
	previewContent := renderPreview(pd, innerPreviewW, contentHeight, a.previewScroll)

	var previewPane string
	if a.focus == focusPreview {
		previewPane = previewPaneActiveStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	} else {
		previewPane = previewPaneStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	}

	// Join panes
	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)

	// Status bar
	sb := renderStatusBar(statusInfo{
		count:       len(a.postings),
		filterLabel: a.filterBar.activeLabel(),
		sort:        a.sort,
		matchesOnly: a.matchesOnly,
		searching:   a.mode == modeSearch,
		opening:     a.opening,
	}, a.width)

	if a.opening {
		sb = a.spinner.View() + " " + sb
	}
	if t := a.latestToast(); t != "" {
		sb = toastStyle.Width(a.width).Render(t)
	}
	if a.err != nil {
		sb = errStyle.Render(a.err.Error())
	}

	rows := []string{header}
	if bannerHeight > 0 {
		rows = append(rows, bannerStyle.Width(a.width).Render("Set your preferences to activate intelligent matching: jobtrack prefs set --roles ..."))
	}
	rows = append(rows, bar, content, sb)
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("jobtrack")
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Views") + "\n" +
		"  1-5           Dashboard, Saved, Digest, Checklist, Ship\n" +
		"  esc           Back to dashboard\n\n" +
		dim.Render("Jobs") + "\n" +
		"  j/k, ↑/↓     Navigate job list\n" +
		"  tab           Switch focus between list and preview\n" +
		"  o, enter      Open apply link in browser\n" +
		"  space, b      Save / unsave job\n" +
		"  t             Cycle application status\n" +
		"  n             Edit note\n" +
		"  s             Cycle sort (latest, score, salary)\n\n" +
		dim.Render("Dashboard") + "\n" +
		"  /             Search title or company\n" +
		"  f             Filter mode (←/→ slot, space cycle value)\n" +
		"  m             Toggle show only matches\n" +
		"  x             Clear filters\n\n" +
		dim.Render("Checklist") + "\n" +
		"  space         Toggle item   i  Show tip   R  Reset\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Close releases the gate subscription.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	defer app.Close()
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
