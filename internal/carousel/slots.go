package carousel

// SlotCount is the number of slides rendered around the centre
const SlotCount = 5

// Slot is one rendered position of the carousel window
type Slot[T any] struct {
	Offset  int
	Index   int
	Item    T
	X       float64
	Z       int
	Opacity float64
	Scale   float64
}

type slotStyle struct {
	x       float64
	z       int
	opacity float64
	scale   float64
}

// slotStyles is keyed by offset from the centre
var slotStyles = map[int]slotStyle{
	-2: {x: -400, z: 1, opacity: 0.2, scale: 0.5},
	-1: {x: -220, z: 2, opacity: 0.6, scale: 0.8},
	0:  {x: 0, z: 3, opacity: 1, scale: 1},
	1:  {x: 220, z: 2, opacity: 0.6, scale: 0.8},
	2:  {x: 400, z: 1, opacity: 0.2, scale: 0.5},
}

// Slots returns the window of offsets -2..+2 around the current index, in
// order. Collections shorter than five repeat items. While dragging every
// slot is shifted by the drag offset scaled by the drag factor.
func (e *Engine[T]) Slots() []Slot[T] {
	e.mu.Lock()
	defer e.mu.Unlock()

	shift := 0.0
	if e.dragging {
		shift = e.dragOffsetLocked() * e.cfg.DragFactor
	}

	n := len(e.items)
	centre := Wrap(e.current, n)
	slots := make([]Slot[T], 0, SlotCount)
	for offset := -2; offset <= 2; offset++ {
		style := slotStyles[offset]
		index := Wrap(centre+offset, n)
		slots = append(slots, Slot[T]{
			Offset:  offset,
			Index:   index,
			Item:    e.items[index],
			X:       style.x + shift,
			Z:       style.z,
			Opacity: style.opacity,
			Scale:   style.scale,
		})
	}
	return slots
}

// Centre returns the slot at offset zero
func (e *Engine[T]) Centre() Slot[T] {
	return e.Slots()[2]
}
