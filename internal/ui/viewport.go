package ui

// Viewport tracks which list positions are on screen and implements
// listing.Observer over that window. Each subscription reports in-view
// once and then stays quiet, like an entrance animation trigger.
type Viewport struct {
	offset int
	height int

	nextID int
	subs   map[int]*viewportSub
}

type viewportSub struct {
	position int
	fn       func(inView bool)
	fired    bool
}

// NewViewport creates a viewport showing height positions from the top
func NewViewport(height int) *Viewport {
	return &Viewport{height: height, subs: make(map[int]*viewportSub)}
}

// Contains reports whether position is inside the window
func (v *Viewport) Contains(position int) bool {
	return position >= v.offset && position < v.offset+v.height
}

// Window returns the first position in view and the window height
func (v *Viewport) Window() (offset, height int) {
	return v.offset, v.height
}

// Observe implements listing.Observer
func (v *Viewport) Observe(position int, fn func(inView bool)) func() {
	id := v.nextID
	v.nextID++
	sub := &viewportSub{position: position, fn: fn}
	v.subs[id] = sub
	v.notify(sub)
	return func() { delete(v.subs, id) }
}

// Scroll moves the window and notifies positions that came into view
func (v *Viewport) Scroll(offset, height int) {
	if offset == v.offset && height == v.height {
		return
	}
	v.offset, v.height = offset, height
	for _, sub := range v.subs {
		v.notify(sub)
	}
}

// Len returns the number of live subscriptions
func (v *Viewport) Len() int {
	return len(v.subs)
}

func (v *Viewport) notify(sub *viewportSub) {
	if sub.fired || !v.Contains(sub.position) {
		return
	}
	sub.fired = true
	sub.fn(true)
}
