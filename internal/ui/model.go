package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"shardview/internal/carousel"
	"shardview/internal/config"
	"shardview/internal/domain"
	"shardview/internal/eventbus"
	"shardview/internal/listing"
	"shardview/internal/ui/input"
	inputtypes "shardview/internal/ui/input/types"
	"shardview/internal/ui/state"
	"shardview/internal/ui/views"
)

const (
	tickInterval  = 80 * time.Millisecond
	statusTimeout = 4 * time.Second
	carouselEmpty = "No products to show yet."
)

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	logger *zap.Logger
	state  *state.AppState // centralized state

	// UI-specific state not in AppState
	width        int
	height       int
	frame        int
	inPagerMode  bool
	statusError  bool
	captured     bool // a carousel gesture holds the pointer
	searchOrigin string
	detailOffset int

	products *listing.List[domain.Product]
	projects *listing.List[domain.Project]
	pages    map[state.Tab]*listPage

	carousel    *carousel.Engine[domain.Product]
	carouselCfg carousel.Config

	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	pagerOps     *PagerOps
	inputHandler *input.Handler
	markdown     *glamour.TermRenderer
	markdownWrap int
	now          func() time.Time

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, logger *zap.Logger) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Model{
		bus:          bus,
		config:       cfg,
		logger:       logger,
		state:        state.NewAppState(state.ParseTab(cfg.UI.StartTab)),
		pages:        make(map[state.Tab]*listPage),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		pagerOps:     NewPagerOps(),
		inputHandler: input.New(),
		now:          time.Now,
	}

	pageSize := views.ListPageSize(0)

	productsViewport := NewViewport(pageSize)
	m.products = listing.New[domain.Product](listing.Options{
		Title:        "Products",
		Key:          domain.FieldCategories,
		EmptyMessage: cfg.UI.ProductsEmptyMessage,
		Label:        listing.DefaultLabel,
		Observer:     productsViewport,
	})
	m.pages[state.TabProducts] = newListPage(m.products, state.TabProducts, domain.KindProducts,
		productsViewport, productTitle, productCard)

	projectsViewport := NewViewport(pageSize)
	m.projects = listing.New[domain.Project](listing.Options{
		Title:        "Projects",
		Key:          domain.FieldTechnologies,
		EmptyMessage: cfg.UI.ProjectsEmptyMessage,
		Label:        listing.IdentityLabel,
		Observer:     projectsViewport,
	})
	m.pages[state.TabProjects] = newListPage(m.projects, state.TabProjects, domain.KindProjects,
		projectsViewport, projectTitle, projectCard)

	if !cfg.UI.ShowDeprecated {
		m.projects.ToggleDeprecated()
	}

	for tab, page := range m.pages {
		t := tab
		page.OnShown(func(position int) {
			m.state.ScheduleReveal(t, position, m.now().Add(listing.StaggerDelay(position)))
		})
	}

	m.carouselCfg = carousel.Config{
		LockDuration:   cfg.Carousel.LockDuration.Std(),
		SwipeThreshold: cfg.Carousel.SwipeThreshold,
		DragFactor:     cfg.Carousel.DragFactor,
		Capturer: carousel.CaptureFunc(func() func() {
			m.captured = true
			return func() { m.captured = false }
		}),
		OnChange: func() {
			if m.program != nil {
				m.program.Send(carouselUnlockedMsg{})
			}
		},
	}

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pagerOps.SetProgram(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.state.ViewportHeight = views.ListRows(msg.Height)
		m.syncPages()
		return m, nil

	case tea.KeyMsg:
		before := m.inputHandler.CurrentMode()
		actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())
		if before == inputtypes.ModeNormal && m.inputHandler.CurrentMode() == inputtypes.ModeSearch {
			if page := m.activePage(); page != nil {
				m.searchOrigin = page.State().Search
			}
		}

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	default:
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			return m, cmd
		}
		return m.handleNonKeyboardMsg(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	return m.renderer.Render(m.buildViewState())
}

func (m *Model) buildViewState() views.ViewState {
	vs := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Tab:           m.state.Tab,
		Frame:         m.frame,
		Loading:       m.state.Loading[m.activeKind()],
		StatusMessage: m.state.StatusMessage,
		StatusIsError: m.statusError,
		ShowHelp:      m.state.ShowHelp,
		ShowDetail:    m.state.ShowDetail,
		DetailTitle:   m.state.DetailTitle,
		CarouselEmpty: carouselEmpty,
	}
	if m.state.ShowHelp {
		vs.HelpContent = m.helpRenderer.RenderHelpContent(m.height, m.state.HelpScrollOffset)
	}
	if m.state.ShowDetail {
		vs.DetailContent = m.detailWindow()
	}

	if m.state.Tab == state.TabShowcase {
		if m.carousel != nil {
			vs.Carousel = m.carouselViewState()
			vs.CarouselLayout = views.NewCarouselLayout(m.width, m.carousel.Len())
		}
		return vs
	}

	if page := m.activePage(); page != nil {
		searching := m.inputHandler.CurrentMode() == inputtypes.ModeSearch
		searchView := ""
		if ti := m.inputHandler.TextInput(); ti != nil {
			searchView = ti.View()
		}
		vs.List = page.viewState(m.state, m.now(), searching, searchView)
	}
	return vs
}

func (m *Model) carouselViewState() *views.CarouselViewState {
	slots := m.carousel.Slots()
	cards := make([]views.CarouselCard, len(slots))
	for i, slot := range slots {
		cards[i] = views.CarouselCard{
			Offset:      slot.Offset,
			X:           slot.X,
			Z:           slot.Z,
			Opacity:     slot.Opacity,
			Scale:       slot.Scale,
			Title:       slot.Item.Title,
			Tag:         slot.Item.Tag,
			Highlight:   slot.Item.Highlight,
			Description: slot.Item.Description,
		}
	}
	return &views.CarouselViewState{
		Cards:     cards,
		Index:     m.carousel.EffectiveIndex(),
		Len:       m.carousel.Len(),
		Dragging:  m.carousel.Dragging(),
		Animating: m.carousel.Animating(),
		CellWidth: m.config.Carousel.CellWidth,
	}
}

// inputContext exposes the state the key bindings depend on
func (m *Model) inputContext() *input.ModelContext {
	ctx := &input.ModelContext{State: m.state}
	if m.state.Tab == state.TabShowcase {
		if m.carousel != nil {
			ctx.ItemCount = m.carousel.Len()
		}
		return ctx
	}
	if page := m.activePage(); page != nil {
		ctx.ItemCount = page.count()
		ctx.Search = page.State().Search
		ctx.Deprecation = page.deprecation
	}
	return ctx
}

func (m *Model) activePage() *listPage {
	return m.pages[m.state.Tab]
}

func (m *Model) activeKind() domain.CollectionKind {
	if m.state.Tab == state.TabProjects {
		return domain.KindProjects
	}
	return domain.KindProducts
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.QuitAction:
		m.Close()
		return tea.Quit

	case inputtypes.SwitchTabAction:
		m.switchTab(a)
		return nil

	case inputtypes.CarouselAction:
		if m.carousel == nil {
			return nil
		}
		key := carousel.KeyArrowRight
		if a.Direction == "left" {
			key = carousel.KeyArrowLeft
		}
		m.carousel.HandleKey(key)
		return nil

	case inputtypes.SelectSlideAction:
		if m.carousel != nil {
			m.carousel.SelectSlide(a.Index)
		}
		return nil

	case inputtypes.NavigateAction:
		m.navigate(a.Direction)
		return nil

	case inputtypes.CycleCategoryAction:
		if page := m.activePage(); page != nil {
			page.CycleCategory(a.Delta)
			m.filtersChanged(page)
		}
		return nil

	case inputtypes.ToggleDeprecatedAction:
		if page := m.activePage(); page != nil && page.deprecation {
			shown := page.ToggleDeprecated()
			m.filtersChanged(page)
			if shown {
				return m.setStatus("Showing deprecated projects", false)
			}
			return m.setStatus("Hiding deprecated projects", false)
		}
		return nil

	case inputtypes.ClearFiltersAction:
		if page := m.activePage(); page != nil {
			page.ClearFilters()
			m.filtersChanged(page)
		}
		return nil

	case inputtypes.UpdateTextAction:
		if page := m.activePage(); page != nil {
			page.SetSearch(a.Text)
			m.filtersChanged(page)
		}
		return nil

	case inputtypes.SubmitTextAction:
		if page := m.activePage(); page != nil && a.Mode == inputtypes.ModeSearch {
			page.SetSearch(strings.TrimSpace(a.Text))
			m.filtersChanged(page)
		}
		return nil

	case inputtypes.CancelTextAction:
		if page := m.activePage(); page != nil {
			page.SetSearch(m.searchOrigin)
			m.filtersChanged(page)
		}
		return nil

	case inputtypes.OpenDetailAction:
		title, body, ok := m.selectedMarkdown()
		if !ok {
			return nil
		}
		rendered := m.renderMarkdown(body)
		if a.Pager {
			return m.fetchPager(rendered)
		}
		m.state.ShowDetail = true
		m.state.DetailTitle = title
		m.state.DetailContent = rendered
		m.detailOffset = 0
		return nil

	case inputtypes.ToggleHelpAction:
		if a.Pager {
			return m.fetchPager(m.helpRenderer.RenderHelpContentPlain())
		}
		m.state.ShowHelp = !m.state.ShowHelp
		m.state.HelpScrollOffset = 0
		return nil

	case inputtypes.ClosePopupAction:
		m.state.ClosePopups()
		m.detailOffset = 0
		return nil

	case inputtypes.ScrollPopupAction:
		m.scrollPopup(a.Delta)
		return nil

	case inputtypes.ReloadAction:
		m.requestReload()
		return m.setStatus("Reloading catalog...", false)
	}

	return nil
}

func (m *Model) switchTab(a inputtypes.SwitchTabAction) {
	if m.captured && m.carousel != nil {
		m.carousel.PointerLeave()
	}
	if a.Index >= 0 && a.Index < len(state.Tabs) {
		m.state.Tab = state.Tabs[a.Index]
	} else if a.Index < 0 {
		m.state.NextTab(a.Delta)
	}
	m.syncCarouselFocus()
	m.syncPages()
}

func (m *Model) syncCarouselFocus() {
	if m.carousel == nil {
		return
	}
	if m.state.Tab == state.TabShowcase {
		m.carousel.Focus()
	} else {
		m.carousel.Blur()
	}
}

func (m *Model) navigate(direction string) {
	page := m.activePage()
	if page == nil {
		return
	}
	cursor := m.state.Cursor()
	pageSize := views.ListPageSize(m.height)
	switch direction {
	case "up":
		cursor.Selected--
	case "down":
		cursor.Selected++
	case "pageup":
		cursor.Selected -= pageSize
	case "pagedown":
		cursor.Selected += pageSize
	case "home":
		cursor.Selected = 0
	case "end":
		cursor.Selected = page.count() - 1
	}
	m.syncPage(page)
}

// filtersChanged restarts the entrance of a list whose filtered set changed
func (m *Model) filtersChanged(page *listPage) {
	m.state.Cursors[page.tab].Selected = 0
	m.state.Cursors[page.tab].Offset = 0
	page.Close()
	m.state.ResetReveals(page.tab)
	m.syncPage(page)
}

func (m *Model) syncPages() {
	for _, tab := range state.Tabs {
		if page := m.pages[tab]; page != nil {
			m.syncPage(page)
		}
	}
}

// syncPage clamps the cursor and scrolls the viewport over it
func (m *Model) syncPage(page *listPage) {
	pageSize := views.ListPageSize(m.height)
	cursor := m.state.Cursors[page.tab]
	cursor.Clamp(page.count(), pageSize)
	page.viewport.Scroll(cursor.Offset, pageSize)
}

func (m *Model) selectedMarkdown() (string, string, bool) {
	if m.state.Tab == state.TabShowcase {
		if m.carousel == nil {
			return "", "", false
		}
		item := m.carousel.Current()
		return item.Title, item.Markdown(), true
	}
	if page := m.activePage(); page != nil {
		return page.markdown(m.state.Cursor().Selected)
	}
	return "", "", false
}

// renderMarkdown renders item details, falling back to the raw markdown
func (m *Model) renderMarkdown(body string) string {
	wrap := min(max(m.width-14, 20), 80)
	if m.markdown == nil || m.markdownWrap != wrap {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			m.logger.Warn("markdown renderer unavailable", zap.Error(err))
			return body
		}
		m.markdown, m.markdownWrap = r, wrap
	}
	out, err := m.markdown.Render(body)
	if err != nil {
		m.logger.Warn("markdown render failed", zap.Error(err))
		return body
	}
	return strings.Trim(out, "\n")
}

// detailWindow returns the part of the detail popup that fits on screen
func (m *Model) detailWindow() string {
	lines := strings.Split(m.state.DetailContent, "\n")
	visible := m.detailHeight()
	if len(lines) <= visible {
		return m.state.DetailContent
	}
	offset := max(min(m.detailOffset, len(lines)-visible), 0)
	return strings.Join(lines[offset:offset+visible], "\n")
}

func (m *Model) detailHeight() int {
	return max(m.height-6, 5)
}

func (m *Model) scrollPopup(delta int) {
	if m.state.ShowHelp {
		offset := m.state.HelpScrollOffset + delta
		m.state.HelpScrollOffset = max(min(offset, m.helpRenderer.MaxScroll(m.height)), 0)
		return
	}
	if m.state.ShowDetail {
		lines := strings.Count(m.state.DetailContent, "\n") + 1
		maxOffset := max(lines-m.detailHeight(), 0)
		m.detailOffset = max(min(m.detailOffset+delta, maxOffset), 0)
	}
}

// Reload marks both collections loading and asks the loader for them
func (m *Model) Reload() {
	m.requestReload()
}

func (m *Model) requestReload() {
	for _, kind := range []domain.CollectionKind{domain.KindProducts, domain.KindProjects} {
		m.state.Loading[kind] = true
	}
	m.products.SetLoading(true)
	m.projects.SetLoading(true)
	if m.bus != nil {
		m.bus.Publish(eventbus.CatalogLoadRequestedEvent{})
	}
}

// setStatus shows a message and clears it after a while
func (m *Model) setStatus(message string, isError bool) tea.Cmd {
	m.state.StatusMessage = message
	m.statusError = isError
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// fetchPager returns a command that shows content using the ov pager
func (m *Model) fetchPager(content string) tea.Cmd {
	if m.program == nil {
		return nil
	}
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pagerOps.ShowInPager(content)
		m.program.Send(resumeRenderingMsg{})
		return pagerMsg{err: err}
	}
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case tickMsg:
		// Don't continue tick loop if we're in pager mode
		if m.inPagerMode {
			return m, nil
		}
		m.frame++
		return m, tick()

	case carouselUnlockedMsg:
		// The lock released; the next frame reflects it
		return m, nil

	case tea.BlurMsg:
		// Losing the terminal counts as the pointer leaving the carousel
		if m.carousel != nil {
			m.carousel.PointerLeave()
		}
		return m, nil

	case tea.FocusMsg:
		m.syncCarouselFocus()
		return m, nil

	case pagerMsg:
		if msg.err != nil {
			m.logger.Warn("pager failed", zap.Error(msg.err))
			return m, m.setStatus(fmt.Sprintf("Pager failed: %v", msg.err), true)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, tick()

	case clearStatusMsg:
		m.state.StatusMessage = ""
		m.statusError = false
		return m, nil
	}
	return m, nil
}

// handleEvent applies a domain event to the UI
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.CatalogLoadedEvent:
		m.logger.Debug("catalog loaded",
			zap.String("kind", string(e.Kind)),
			zap.Int("products", len(e.Products)),
			zap.Int("projects", len(e.Projects)))
		delete(m.state.LoadErrors, e.Kind)
		m.applyCollection(e.Kind, e.Products, e.Projects)
		return nil

	case eventbus.CatalogLoadFailedEvent:
		m.logger.Warn("catalog load failed",
			zap.String("kind", string(e.Kind)),
			zap.String("source", e.Source),
			zap.Error(e.Err))
		m.state.LoadErrors[e.Kind] = e.Message
		m.applyCollection(e.Kind, nil, nil)
		return m.setStatus(e.Message, true)

	case eventbus.ErrorEvent:
		return m.setStatus(e.Message, true)
	}
	return nil
}

// applyCollection mounts a freshly loaded collection
func (m *Model) applyCollection(kind domain.CollectionKind, products []domain.Product, projects []domain.Project) {
	m.state.Loading[kind] = false
	switch kind {
	case domain.KindProducts:
		m.products.SetItems(products)
		m.mountCarousel(products)
		m.filtersChanged(m.pages[state.TabProducts])
	case domain.KindProjects:
		m.projects.SetItems(projects)
		m.filtersChanged(m.pages[state.TabProjects])
	}
}

// mountCarousel replaces the carousel. The previous one is closed so its
// pending unlock and pointer capture are released.
func (m *Model) mountCarousel(products []domain.Product) {
	if m.carousel != nil {
		m.carousel.Close()
		m.carousel = nil
	}
	if len(products) == 0 {
		return
	}
	c, err := carousel.New(products, m.carouselCfg)
	if err != nil {
		m.logger.Error("carousel mount failed", zap.Error(err))
		return
	}
	m.carousel = c
	m.syncCarouselFocus()
}

// Close releases the engines
func (m *Model) Close() {
	if m.carousel != nil {
		m.carousel.Close()
	}
	m.products.Close()
	m.projects.Close()
}

// tick returns a command that sends a tick message after a delay
func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
