package ui

import (
	"time"

	"shardview/internal/domain"
	"shardview/internal/listing"
	"shardview/internal/ui/state"
	"shardview/internal/ui/views"
)

// filterable is the item-type independent part of listing.List
type filterable interface {
	Title() string
	Placeholder() string
	EmptyMessage() string
	Label(tag string) string
	FilterValues() []string
	State() listing.FilterState
	SetCategory(category string)
	CycleCategory(delta int) string
	SetSearch(term string)
	ToggleDeprecated() bool
	ClearFilters()
	SetLoading(loading bool)
	Loading() bool
	OnShown(fn func(position int))
	Close()
}

// listPage binds one filterable list to its tab, viewport and renderers
type listPage struct {
	filterable
	tab         state.Tab
	kind        domain.CollectionKind
	viewport    *Viewport
	deprecation bool

	count    func() int
	cards    func(offset, limit int) []views.ListCard
	markdown func(index int) (title, body string, ok bool)
}

type markdowner interface {
	Markdown() string
}

// newListPage wraps a typed list. toCard maps an item to its card without
// selection or reveal state.
func newListPage[T interface {
	listing.Record
	markdowner
}](list *listing.List[T], tab state.Tab, kind domain.CollectionKind, viewport *Viewport, title func(T) string, toCard func(T) views.ListCard) *listPage {
	_, deprecation := any(*new(T)).(listing.Deprecatable)
	return &listPage{
		filterable:  list,
		tab:         tab,
		kind:        kind,
		viewport:    viewport,
		deprecation: deprecation,
		count:       func() int { return len(list.Visible()) },
		cards: func(offset, limit int) []views.ListCard {
			visible := list.Visible()
			var out []views.ListCard
			for i := offset; i < len(visible) && i < offset+limit; i++ {
				out = append(out, toCard(visible[i]))
			}
			return out
		},
		markdown: func(index int) (string, string, bool) {
			visible := list.Visible()
			if index < 0 || index >= len(visible) {
				return "", "", false
			}
			return title(visible[index]), visible[index].Markdown(), true
		},
	}
}

func productCard(p domain.Product) views.ListCard {
	return views.ListCard{
		Title:       p.Title,
		Description: p.Description,
		Meta:        p.Tag,
		Tags:        []string(p.Categories),
	}
}

func projectCard(p domain.Project) views.ListCard {
	return views.ListCard{
		Title:       p.Title,
		Description: p.Description,
		Meta:        p.Date,
		Tags:        []string(p.Technologies),
		Deprecated:  p.IsDeprecated(),
	}
}

func productTitle(p domain.Product) string { return p.Title }
func projectTitle(p domain.Project) string { return p.Title }

// viewState builds the list page for rendering
func (p *listPage) viewState(s *state.AppState, now time.Time, searching bool, searchView string) *views.ListViewState {
	cursor := s.Cursors[p.tab]
	offset, pageSize := p.viewport.Window()

	filter := p.State()
	chips := []views.CategoryChip{{Label: p.Label(listing.AllCategories), Active: filter.Category == listing.AllCategories}}
	for _, value := range p.FilterValues() {
		chips = append(chips, views.CategoryChip{Label: p.Label(value), Active: filter.Category == value})
	}

	cards := p.cards(offset, pageSize)
	for i := range cards {
		position := offset + i
		cards[i].Selected = position == cursor.Selected
		cards[i].Revealed = s.Revealed(p.tab, position, now)
	}

	return &views.ListViewState{
		Title:              p.Title(),
		Placeholder:        p.Placeholder(),
		Search:             filter.Search,
		Searching:          searching,
		SearchView:         searchView,
		Categories:         chips,
		SupportsDeprecated: p.deprecation,
		ShowDeprecated:     filter.ShowDeprecated,
		Cards:              cards,
		Offset:             offset,
		Total:              p.count(),
		EmptyMessage:       p.EmptyMessage(),
		Loading:            p.Loading(),
		LoadError:          s.LoadErrors[p.kind],
	}
}

// categoryAt resolves a chip index to a category value
func (p *listPage) categoryAt(index int) (string, bool) {
	if index == 0 {
		return listing.AllCategories, true
	}
	values := p.FilterValues()
	if index < 1 || index > len(values) {
		return "", false
	}
	return values[index-1], true
}

// chipLabels lists the category bar labels in display order
func (p *listPage) chipLabels() []string {
	labels := []string{p.Label(listing.AllCategories)}
	for _, value := range p.FilterValues() {
		labels = append(labels, p.Label(value))
	}
	return labels
}
