// Package search provides the advanced search view for the TUI.
package search

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/proxsearch/internal/adapters/driving/present"
	"github.com/custodia-labs/proxsearch/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/proxsearch/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/proxsearch/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/proxsearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/proxsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/proxsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/proxsearch/internal/core/domain"
	"github.com/custodia-labs/proxsearch/internal/core/ports/driving"
	"github.com/custodia-labs/proxsearch/internal/logger"
)

// RangeStep is how far one range adjustment moves the proximity range.
const RangeStep = 10

// View is the search view: query input, option toggles, result list,
// line detail pane and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar

	searchService driving.SearchService
	settings      driving.SettingsService
	ctx           context.Context

	doc       *domain.Document
	presenter *present.Presenter
	options   domain.SearchOptions
	report    *domain.SearchReport
	detail    []present.DetailLine

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = typing a query, false = navigating results
	detailOpen bool
}

// NewView creates a search view over doc. Settings is optional; when set
// it supplies the starting options and remembers them after each search.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	settings driving.SettingsService,
	doc *domain.Document,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:        s,
		keymap:        km,
		input:         input.NewSearchInput(s),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		settings:      settings,
		ctx:           context.Background(),
		options:       startingOptions(settings),
		width:         80,
		height:        24,
		focusInput:    true,
	}
	v.SetDocument(doc)
	v.input.SetRegex(v.options.Regex)
	return v
}

// startingOptions loads the saved defaults, falling back to the built-in ones.
func startingOptions(settings driving.SettingsService) domain.SearchOptions {
	opts := domain.DefaultSearchOptions()
	if settings != nil {
		if saved, err := settings.Get(); err == nil && saved != nil {
			opts = saved.Search.Defaults
		} else if err != nil {
			logger.Warn("Loading search defaults: %v", err)
		}
	}
	opts.Range = domain.ClampRange(opts.Range)
	if !opts.Mode.IsValid() {
		opts.Mode = domain.MatchModeAll
	}
	// The TUI has no selection to restrict to.
	opts.SelectionOnly = false
	return opts
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchRequested:
		v.options = msg.Options
		v.input.SetValue(msg.Query)
		return v, v.startSearch()

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

// handleKeyMsg processes keyboard input.
//
//nolint:gocyclo // central key dispatch
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		if v.detailOpen {
			v.closeDetail()
			return v, nil
		}
		return v, func() tea.Msg { return messages.Quit{} }
	}

	// Toggles use alt chords while typing and bare keys over the results.
	if !v.focusInput || msg.Alt {
		if changed := v.applyToggle(msg.String()); changed {
			return v, v.optionsChanged()
		}
	}

	if v.focusInput {
		switch msg.Type {
		case tea.KeyEnter:
			return v, v.startSearch()
		case tea.KeyDown, tea.KeyTab:
			if !v.list.IsEmpty() {
				v.blurInput()
				if msg.Type == tea.KeyTab {
					v.openDetail()
				}
				return v, nil
			}
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Search):
		return v, v.startSearch()
	case keymap.Matches(key, v.keymap.Up):
		if v.list.Selected() == 0 && !v.detailOpen {
			return v, v.focusQuery()
		}
		v.list.MoveUp()
		v.refreshDetail()
	case keymap.Matches(key, v.keymap.Down):
		v.list.MoveDown()
		v.refreshDetail()
	case keymap.Matches(key, v.keymap.Detail):
		if v.detailOpen {
			v.closeDetail()
		} else {
			v.openDetail()
		}
		open := v.detailOpen
		return v, func() tea.Msg { return messages.DetailToggled{Open: open} }
	case keymap.Matches(key, v.keymap.Edit):
		return v, v.focusQuery()
	case keymap.Matches(key, v.keymap.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }
	default:
		v.list, _ = v.list.Update(msg)
		v.refreshDetail()
	}
	return v, nil
}

// applyToggle changes one option for key and reports whether it did.
func (v *View) applyToggle(key string) bool {
	km := v.keymap
	switch {
	case keymap.Matches(key, km.ToggleRegex):
		v.options.Regex = !v.options.Regex
		v.input.SetRegex(v.options.Regex)
		v.statusbar.SetMessage("Regex " + onOff(v.options.Regex))
	case keymap.Matches(key, km.ToggleCase):
		v.options.CaseSensitive = !v.options.CaseSensitive
		v.statusbar.SetMessage("Case sensitive " + onOff(v.options.CaseSensitive))
	case keymap.Matches(key, km.ToggleWholeWord):
		v.options.WholeWord = !v.options.WholeWord
		v.statusbar.SetMessage("Whole word " + onOff(v.options.WholeWord))
	case keymap.Matches(key, km.ToggleMode):
		if v.options.Mode == domain.MatchModeAny {
			v.options.Mode = domain.MatchModeAll
		} else {
			v.options.Mode = domain.MatchModeAny
		}
		v.statusbar.SetMessage(v.options.Mode.Description())
	case keymap.Matches(key, km.RangeUp):
		v.options.Range = domain.ClampRange(v.options.Range + RangeStep)
		v.statusbar.SetMessage(fmt.Sprintf("Range %d words", v.options.Range))
	case keymap.Matches(key, km.RangeDown):
		v.options.Range = domain.ClampRange(max(domain.MinRange, v.options.Range-RangeStep))
		v.statusbar.SetMessage(fmt.Sprintf("Range %d words", v.options.Range))
	default:
		return false
	}
	return true
}

// optionsChanged re-runs the last search under the new options, or just
// announces them when nothing has been searched yet.
func (v *View) optionsChanged() tea.Cmd {
	if v.report != nil && strings.TrimSpace(v.input.Value()) != "" {
		return v.startSearch()
	}
	if v.statusbar.State() != status.StateError {
		v.statusbar.SetState(status.StateReady)
	}
	opts := v.options
	return func() tea.Msg { return messages.OptionsChanged{Options: opts} }
}

// startSearch marks the view busy and returns the command that runs the search.
func (v *View) startSearch() tea.Cmd {
	v.statusbar.SetState(status.StateSearching)
	return v.performSearch(v.input.Value(), v.options)
}

// performSearch executes a search against the view's document.
func (v *View) performSearch(query string, opts domain.SearchOptions) tea.Cmd {
	svc, doc, ctx := v.searchService, v.doc, v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}
		if doc == nil {
			return messages.ErrorOccurred{Err: ErrNoDocument}
		}
		report, err := svc.Search(ctx, doc, domain.SearchRequest{Query: query, Options: opts})
		if err != nil {
			return messages.SearchCompleted{Err: err}
		}
		return messages.SearchCompleted{Report: report}
	}
}

// handleSearchCompleted applies a finished search.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	v.closeDetail()
	if msg.Err != nil {
		v.err = msg.Err
		v.report = nil
		v.list.Clear()
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(present.SearchMessage(msg.Err, v.options.Regex))
		v.focusQuery()
		return
	}
	if msg.Report == nil {
		return
	}

	v.err = nil
	v.report = msg.Report
	v.list.SetResults(v.presenter.Describe(msg.Report.Results))
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("")
	v.statusbar.SetResultCount(len(msg.Report.Results))
	v.statusbar.SetSummary(present.StatusLine(msg.Report))

	if v.list.IsEmpty() {
		v.focusQuery()
	} else {
		v.blurInput()
	}
	v.remember(msg.Report.Options)
}

// remember saves opts as the defaults for the next session.
func (v *View) remember(opts domain.SearchOptions) {
	if v.settings == nil {
		return
	}
	if err := v.settings.SetSearchDefaults(opts); err != nil {
		logger.Warn("Saving search defaults: %v", err)
	}
}

func (v *View) blurInput() {
	v.focusInput = false
	v.input.Blur()
}

func (v *View) focusQuery() tea.Cmd {
	v.focusInput = true
	v.closeDetail()
	return v.input.Focus()
}

func (v *View) openDetail() {
	if v.report == nil {
		return
	}
	sel := v.list.Selected()
	if sel < 0 || sel >= len(v.report.Results) {
		return
	}
	v.detail = v.presenter.Detail(v.report.Results[sel])
	v.detailOpen = true
}

func (v *View) closeDetail() {
	v.detail = nil
	v.detailOpen = false
}

func (v *View) refreshDetail() {
	if v.detailOpen {
		v.openDetail()
	}
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)
	sections = append(sections, v.renderHeader(), "", v.input.View(), v.renderOptions(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render(present.SearchMessage(v.err, v.options.Regex)), "")
	}

	sections = append(sections, v.list.View())

	if v.detailOpen {
		sections = append(sections, "", v.renderDetail())
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderHeader() string {
	title := v.styles.Title.Render("proxsearch")
	if v.doc == nil {
		return title
	}
	name := v.doc.Title
	if name == "" {
		name = v.doc.URI
	}
	return title + "  " + v.styles.Muted.Render(name)
}

// renderOptions draws the toggle row, e.g. "[x] regex  [ ] case".
func (v *View) renderOptions() string {
	box := func(on bool, label string) string {
		if on {
			return v.styles.OptionOn.Render("[x] " + label)
		}
		return v.styles.OptionOff.Render("[ ] " + label)
	}
	parts := []string{
		box(v.options.Regex, "regex"),
		box(v.options.CaseSensitive, "case"),
		box(v.options.WholeWord, "whole word"),
		v.styles.Normal.Render("mode: " + v.options.Mode.String()),
		v.styles.Normal.Render(fmt.Sprintf("range: %d", v.options.Range)),
	}
	return strings.Join(parts, "  ")
}

// renderDetail draws every line touched by the selected result with its
// matches highlighted.
func (v *View) renderDetail() string {
	if len(v.detail) == 0 {
		return ""
	}
	limit := max(20, v.width-12)
	rows := make([]string, 0, len(v.detail))
	for _, line := range v.detail {
		gutter := v.styles.LineNumber.Render(fmt.Sprintf("%d", line.Line))
		rows = append(rows, gutter+"  "+v.highlightLine(line, limit))
	}
	return v.styles.Border.Padding(0, 1).Render(strings.Join(rows, "\n"))
}

// highlightLine renders line.Text with its spans in the match style,
// cutting the text at limit bytes.
func (v *View) highlightLine(line present.DetailLine, limit int) string {
	text := strings.ReplaceAll(line.Text, "\t", " ")
	truncated := false
	if len(text) > limit {
		text = text[:limit]
		truncated = true
	}

	var b strings.Builder
	cursor := 0
	for _, sp := range line.Spans {
		start := min(max(sp.Start, cursor), len(text))
		end := min(max(sp.End, start), len(text))
		if start > cursor {
			b.WriteString(v.styles.Normal.Render(text[cursor:start]))
		}
		if end > start {
			b.WriteString(v.styles.Match.Render(text[start:end]))
		}
		cursor = end
	}
	if cursor < len(text) {
		b.WriteString(v.styles.Normal.Render(text[cursor:]))
	}
	if truncated {
		b.WriteString(v.styles.Muted.Render("..."))
	}
	return b.String()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	// Header, input, options, status and an open detail pane share the rest.
	v.list.SetDimensions(width, max(4, height-14))
	v.statusbar.SetWidth(width)
}

// SetDocument replaces the document under search and clears old results.
func (v *View) SetDocument(doc *domain.Document) {
	v.doc = doc
	text := ""
	if doc != nil {
		text = doc.Content
	}
	v.presenter = present.New(text)
	v.report = nil
	v.list.Clear()
	v.closeDetail()
}

// Document returns the document under search.
func (v *View) Document() *domain.Document {
	return v.doc
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Options returns the options the next search will use.
func (v *View) Options() domain.SearchOptions {
	return v.options
}

// Report returns the last successful search report, or nil.
func (v *View) Report() *domain.SearchReport {
	return v.report
}

// Results returns the summaries of the current results.
func (v *View) Results() []present.Summary {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// DetailOpen reports whether the line detail pane is shown.
func (v *View) DetailOpen() bool {
	return v.detailOpen
}

// DetailLines returns the lines shown in the detail pane.
func (v *View) DetailLines() []present.DetailLine {
	return v.detail
}

// StatusMessage returns the status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// ClearError clears the current error.
func (v *View) ClearError() {
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// Reset returns the view to an empty query with focus on the input.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.report = nil
	v.list.Clear()
	v.closeDetail()
	v.err = nil
	v.statusbar.Clear()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
