package listing

import (
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultEmptyMessage is shown when no item survives the filters
const DefaultEmptyMessage = "No items match your current filters."

// resultCacheSize bounds the number of memoised filter results per list
const resultCacheSize = 64

// Observer reports whether the item at a rendered position is in view.
// Observe subscribes fn for position and returns a function that cancels
// the subscription. fn may be called synchronously from Observe.
type Observer interface {
	Observe(position int, fn func(inView bool)) (cancel func())
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(position int, fn func(inView bool)) func()

// Observe implements Observer
func (f ObserverFunc) Observe(position int, fn func(inView bool)) func() {
	return f(position, fn)
}

// AlwaysVisible reports every position as in view immediately
var AlwaysVisible Observer = ObserverFunc(func(_ int, fn func(bool)) func() {
	fn(true)
	return func() {}
})

// Options configures a List
type Options struct {
	Title        string
	Key          string   // filter dimension, e.g. "categories"
	SearchFields []string // defaults to DefaultSearchFields
	EmptyMessage string
	Label        LabelFunc
	Observer     Observer
}

// FilterState is the user-controlled part of a List
type FilterState struct {
	Category       string
	Search         string
	ShowDeprecated bool
}

// DefaultFilterState shows everything
func DefaultFilterState() FilterState {
	return FilterState{Category: AllCategories, ShowDeprecated: true}
}

// List is a filterable, searchable collection with per-position visibility.
// It is not safe for concurrent use; drive it from one goroutine.
type List[T Record] struct {
	opts    Options
	items   []T
	values  []string
	state   FilterState
	loading bool

	cache *lru.Cache[FilterState, []T]

	subs    map[int]func()
	inView  map[int]bool
	onShown func(position int)
}

// New creates an empty list
func New[T Record](opts Options) *List[T] {
	if len(opts.SearchFields) == 0 {
		opts.SearchFields = DefaultSearchFields
	}
	if opts.EmptyMessage == "" {
		opts.EmptyMessage = DefaultEmptyMessage
	}
	if opts.Label == nil {
		opts.Label = DefaultLabel
	}
	if opts.Observer == nil {
		opts.Observer = AlwaysVisible
	}
	// lru.New only fails for a non-positive size
	cache, _ := lru.New[FilterState, []T](resultCacheSize)

	return &List[T]{
		opts:    opts,
		state:   DefaultFilterState(),
		cache:   cache,
		subs:    make(map[int]func()),
		inView:  make(map[int]bool),
		loading: true,
	}
}

// SetItems replaces the collection. The filter dimension is recomputed and
// memoised results are dropped. An active category that no longer exists
// falls back to AllCategories.
func (l *List[T]) SetItems(items []T) {
	l.items = items
	l.values = FilterValues(items, l.opts.Key)
	l.cache.Purge()
	l.loading = false

	if l.state.Category != AllCategories && !l.hasValue(l.state.Category) {
		l.state.Category = AllCategories
	}
}

// Items returns the unfiltered collection
func (l *List[T]) Items() []T {
	return l.items
}

// SetLoading marks the list as waiting for its collection
func (l *List[T]) SetLoading(loading bool) {
	l.loading = loading
}

// Loading reports whether the collection is still being fetched
func (l *List[T]) Loading() bool {
	return l.loading
}

// Title returns the list title
func (l *List[T]) Title() string {
	return l.opts.Title
}

// Placeholder is the search input hint
func (l *List[T]) Placeholder() string {
	return fmt.Sprintf("Search %s...", strings.ToLower(l.opts.Title))
}

// EmptyMessage is shown when Visible is empty
func (l *List[T]) EmptyMessage() string {
	return l.opts.EmptyMessage
}

// State returns the current filter state
func (l *List[T]) State() FilterState {
	return l.state
}

// FilterValues returns the sorted unique tags of the collection
func (l *List[T]) FilterValues() []string {
	return l.values
}

// Label formats a tag for display
func (l *List[T]) Label(tag string) string {
	if tag == AllCategories {
		return "All " + l.opts.Title
	}
	return l.opts.Label(tag)
}

// SetCategory selects a tag, or AllCategories
func (l *List[T]) SetCategory(category string) {
	if category == "" {
		category = AllCategories
	}
	l.state.Category = category
}

// CycleCategory moves the active category by delta through
// [AllCategories, FilterValues()...], wrapping at both ends
func (l *List[T]) CycleCategory(delta int) string {
	options := append([]string{AllCategories}, l.values...)
	current := 0
	for i, option := range options {
		if option == l.state.Category {
			current = i
			break
		}
	}
	n := len(options)
	next := ((current+delta)%n + n) % n
	l.state.Category = options[next]
	return l.state.Category
}

// SetSearch sets the free-text search term
func (l *List[T]) SetSearch(term string) {
	l.state.Search = term
}

// ToggleDeprecated flips deprecated item visibility and returns the new value
func (l *List[T]) ToggleDeprecated() bool {
	l.state.ShowDeprecated = !l.state.ShowDeprecated
	return l.state.ShowDeprecated
}

// ClearFilters restores the default filter state
func (l *List[T]) ClearFilters() {
	l.state = DefaultFilterState()
}

// Visible returns the filtered items and keeps one visibility subscription
// per rendered position
func (l *List[T]) Visible() []T {
	result, ok := l.cache.Get(l.state)
	if !ok {
		result = Apply(l.items, Query{
			Category:       l.state.Category,
			Key:            l.opts.Key,
			Search:         l.state.Search,
			SearchFields:   l.opts.SearchFields,
			ShowDeprecated: l.state.ShowDeprecated,
		})
		l.cache.Add(l.state, result)
	}
	l.syncObservers(len(result))
	return result
}

// Render calls fn for every visible item and collects its output
func (l *List[T]) Render(fn func(item T, isVisible bool, index int) string) []string {
	visible := l.Visible()
	out := make([]string, 0, len(visible))
	for i, item := range visible {
		out = append(out, fn(item, l.inView[i], i))
	}
	return out
}

// InView reports the last visibility signal for a rendered position
func (l *List[T]) InView(position int) bool {
	return l.inView[position]
}

// OnShown registers a callback fired when a position first reports in view
func (l *List[T]) OnShown(fn func(position int)) {
	l.onShown = fn
}

// Subscriptions returns the number of live visibility subscriptions
func (l *List[T]) Subscriptions() int {
	return len(l.subs)
}

// Close releases every visibility subscription
func (l *List[T]) Close() {
	l.syncObservers(0)
}

// syncObservers subscribes positions [0, n) and cancels the rest
func (l *List[T]) syncObservers(n int) {
	for pos, cancel := range l.subs {
		if pos >= n {
			cancel()
			delete(l.subs, pos)
			delete(l.inView, pos)
		}
	}
	for pos := 0; pos < n; pos++ {
		if _, ok := l.subs[pos]; ok {
			continue
		}
		position := pos
		// Reserve the slot first so a synchronous callback sees a live subscription
		l.subs[position] = func() {}
		l.subs[position] = l.opts.Observer.Observe(position, func(inView bool) {
			if _, live := l.subs[position]; !live {
				return
			}
			was := l.inView[position]
			l.inView[position] = inView
			if inView && !was && l.onShown != nil {
				l.onShown(position)
			}
		})
	}
}

// StaggerDelay spreads entrance reveals across a row of three
func StaggerDelay(index int) time.Duration {
	return time.Duration(index%3) * 150 * time.Millisecond
}

func (l *List[T]) hasValue(v string) bool {
	for _, existing := range l.values {
		if existing == v {
			return true
		}
	}
	return false
}
