package carousel

import (
	"errors"
	"math"
	"sync"
	"time"
)

// Defaults for Config fields left zero
const (
	DefaultLockDuration   = 500 * time.Millisecond
	DefaultSwipeThreshold = 50.0
	DefaultDragFactor     = 0.4
)

// ErrNoItems is returned when a carousel is created without items
var ErrNoItems = errors.New("carousel needs at least one item")

// Source identifies the input device of a gesture
type Source int

const (
	SourceMouse Source = iota
	SourceTouch
)

func (s Source) String() string {
	if s == SourceTouch {
		return "touch"
	}
	return "mouse"
}

// Key is a keyboard input the carousel reacts to
type Key int

const (
	KeyArrowLeft Key = iota
	KeyArrowRight
)

// Swipe is the outcome of a finished gesture
type Swipe int

const (
	SwipeNone Swipe = iota
	SwipeNext
	SwipePrev
)

func (s Swipe) String() string {
	switch s {
	case SwipeNext:
		return "next"
	case SwipePrev:
		return "prev"
	default:
		return "none"
	}
}

// Capturer grants pointer capture for the lifetime of a gesture. The
// returned release function is called exactly once, when the gesture ends
// or the carousel is closed.
type Capturer interface {
	Capture() (release func())
}

// CaptureFunc adapts a function to Capturer
type CaptureFunc func() func()

// Capture implements Capturer
func (f CaptureFunc) Capture() func() { return f() }

// Config tunes an Engine. Zero values select the defaults.
type Config struct {
	LockDuration   time.Duration
	SwipeThreshold float64
	DragFactor     float64
	Clock          Clock
	Capturer       Capturer
	// OnChange runs after the animation lock is released by its timer.
	// It is called without the engine lock held.
	OnChange func()
}

// Engine is a looping carousel over a fixed item sequence
type Engine[T any] struct {
	mu  sync.Mutex
	cfg Config

	items     []T
	current   int
	animating bool
	token     uint64
	pending   Timer

	tracking bool
	dragging bool
	source   Source
	origin   float64
	latest   float64
	release  func()

	focused bool
	closed  bool
}

// New mounts a carousel at index 0
func New[T any](items []T, cfg Config) (*Engine[T], error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if cfg.LockDuration <= 0 {
		cfg.LockDuration = DefaultLockDuration
	}
	if cfg.SwipeThreshold <= 0 {
		cfg.SwipeThreshold = DefaultSwipeThreshold
	}
	if cfg.DragFactor == 0 {
		cfg.DragFactor = DefaultDragFactor
	}
	if cfg.Clock == nil {
		cfg.Clock = RealClock{}
	}

	owned := make([]T, len(items))
	copy(owned, items)
	return &Engine[T]{cfg: cfg, items: owned}, nil
}

// Wrap reduces k into [0, n). It never returns a negative remainder.
func Wrap(k, n int) int {
	if n <= 0 {
		return 0
	}
	return ((k % n) + n) % n
}

// Next advances by one slide unless a transition is in flight
func (e *Engine[T]) Next() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.moveLocked(e.stepLocked(1))
}

// Prev goes back one slide unless a transition is in flight
func (e *Engine[T]) Prev() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.moveLocked(e.stepLocked(-1))
}

// SelectSlide jumps to an absolute index unless a transition is in flight
func (e *Engine[T]) SelectSlide(target int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.moveLocked(target)
}

// stepLocked returns current+delta, falling back to the effective index
// when the raw sum would overflow
func (e *Engine[T]) stepLocked(delta int) int {
	next := e.current + delta
	if (delta > 0 && next < e.current) || (delta < 0 && next > e.current) {
		return Wrap(e.current, len(e.items)) + delta
	}
	return next
}

// moveLocked commits index and takes the animation lock. Calls made while
// locked are dropped, not queued.
func (e *Engine[T]) moveLocked(index int) bool {
	if e.closed || e.animating {
		return false
	}
	e.animating = true
	e.current = index
	e.token++
	token := e.token
	e.pending = e.cfg.Clock.AfterFunc(e.cfg.LockDuration, func() { e.unlock(token) })
	return true
}

func (e *Engine[T]) unlock(token uint64) {
	e.mu.Lock()
	if e.closed || token != e.token || !e.animating {
		e.mu.Unlock()
		return
	}
	e.animating = false
	e.pending = nil
	onChange := e.cfg.OnChange
	e.mu.Unlock()

	if onChange != nil {
		onChange()
	}
}

// PointerDown starts a gesture at x. Mouse and touch are tracked alike.
func (e *Engine[T]) PointerDown(x float64, source Source) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.tracking = true
	e.dragging = true
	e.source = source
	e.origin = x
	e.latest = x
	if e.release == nil && e.cfg.Capturer != nil {
		e.release = e.cfg.Capturer.Capture()
	}
}

// PointerMove records the latest position of an active gesture
func (e *Engine[T]) PointerMove(x float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.tracking {
		return
	}
	e.latest = x
}

// PointerUp finishes the gesture. A horizontal travel beyond the swipe
// threshold moves one slide: leftwards advances, rightwards goes back.
// Gesture state is cleared whether or not a swipe fired.
func (e *Engine[T]) PointerUp() Swipe {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.tracking {
		return SwipeNone
	}

	diff := e.origin - e.latest
	e.endGestureLocked()

	if math.Abs(diff) <= e.cfg.SwipeThreshold {
		return SwipeNone
	}
	if diff > 0 {
		e.moveLocked(e.current + 1)
		return SwipeNext
	}
	e.moveLocked(e.current - 1)
	return SwipePrev
}

// PointerLeave finalises an active drag the same way PointerUp does
func (e *Engine[T]) PointerLeave() Swipe {
	e.mu.Lock()
	dragging := e.dragging
	e.mu.Unlock()
	if !dragging {
		return SwipeNone
	}
	return e.PointerUp()
}

func (e *Engine[T]) endGestureLocked() {
	e.tracking = false
	e.dragging = false
	e.origin = 0
	e.latest = 0
	if e.release != nil {
		release := e.release
		e.release = nil
		release()
	}
}

// Focus routes keyboard input to the carousel
func (e *Engine[T]) Focus() {
	e.mu.Lock()
	e.focused = true
	e.mu.Unlock()
}

// Blur stops keyboard routing
func (e *Engine[T]) Blur() {
	e.mu.Lock()
	e.focused = false
	e.mu.Unlock()
}

// Focused reports whether keys are routed to the carousel
func (e *Engine[T]) Focused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.focused
}

// HandleKey maps arrow keys to Next and Prev while focused
func (e *Engine[T]) HandleKey(key Key) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.focused {
		return false
	}
	switch key {
	case KeyArrowRight:
		return e.moveLocked(e.current + 1)
	case KeyArrowLeft:
		return e.moveLocked(e.current - 1)
	}
	return false
}

// Close tears the carousel down: the pending unlock is cancelled and can
// no longer touch state, and any pointer capture is released.
func (e *Engine[T]) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
	e.endGestureLocked()
}

// Len returns the number of items
func (e *Engine[T]) Len() int {
	return len(e.items)
}

// Index returns the raw, unbounded index
func (e *Engine[T]) Index() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// EffectiveIndex returns the wrapped index in [0, Len())
func (e *Engine[T]) EffectiveIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Wrap(e.current, len(e.items))
}

// Current returns the centred item
func (e *Engine[T]) Current() T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.items[Wrap(e.current, len(e.items))]
}

// Item returns the item at a wrapped index
func (e *Engine[T]) Item(index int) T {
	return e.items[Wrap(index, len(e.items))]
}

// Animating reports whether the transition lock is held
func (e *Engine[T]) Animating() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.animating
}

// Dragging reports whether a gesture is active
func (e *Engine[T]) Dragging() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dragging
}

// Source returns the input device of the active or last gesture
func (e *Engine[T]) Source() Source {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.source
}

// DragOffset is latest minus origin while dragging, zero otherwise
func (e *Engine[T]) DragOffset() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dragOffsetLocked()
}

func (e *Engine[T]) dragOffsetLocked() float64 {
	if !e.dragging || !e.tracking {
		return 0
	}
	return e.latest - e.origin
}

// Closed reports whether Close has been called
func (e *Engine[T]) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}
