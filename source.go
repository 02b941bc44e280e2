package scrollstage

// ScrollEvent carries one scroll update. Y is the absolute scroll position of
// the document, DeltaY the change since the previous event.
type ScrollEvent struct {
	Y      float64
	DeltaY float64
}

// Handle unregisters a listener. Calling Remove more than once is a no-op.
type Handle interface {
	Remove()
}

// ScrollSource is the scroll event stream a binding listens to.
type ScrollSource interface {
	// Position returns the current absolute scroll position.
	Position() float64
	// OnScroll registers fn for every subsequent scroll event.
	OnScroll(fn func(ScrollEvent)) Handle
}

type scrollHandler struct {
	id uint32
	fn func(ScrollEvent)
}

// ManualSource is an in-memory ScrollSource. Hosts feed it from their native
// wheel or scroll events; tests inject positions directly. Events dispatch
// synchronously.
type ManualSource struct {
	y        float64
	min, max float64
	bounded  bool
	handlers []scrollHandler
	nextID   uint32
	removed  int
}

// NewManualSource returns a source at position 0 with no bounds.
func NewManualSource() *ManualSource {
	return &ManualSource{}
}

// SetBounds clamps future positions to [min, max], like a document whose
// scroll height is known.
func (s *ManualSource) SetBounds(min, max float64) {
	s.min, s.max, s.bounded = min, max, true
}

// Position returns the current scroll position.
func (s *ManualSource) Position() float64 { return s.y }

// Listeners returns the number of registered handlers.
func (s *ManualSource) Listeners() int { return len(s.handlers) }

// Removals returns how many handlers have been unregistered over the
// source's lifetime.
func (s *ManualSource) Removals() int { return s.removed }

// OnScroll registers fn and returns a handle that removes it.
func (s *ManualSource) OnScroll(fn func(ScrollEvent)) Handle {
	s.nextID++
	s.handlers = append(s.handlers, scrollHandler{id: s.nextID, fn: fn})
	return &CallbackHandle{id: s.nextID, src: s}
}

// InjectScroll moves to absolute position y and notifies listeners. No event
// is sent when the position does not change.
func (s *ManualSource) InjectScroll(y float64) {
	if s.bounded {
		y = clamp(y, s.min, s.max)
	}
	if y == s.y {
		return
	}
	ev := ScrollEvent{Y: y, DeltaY: y - s.y}
	s.y = y
	// Handlers may remove themselves while being called.
	hs := append([]scrollHandler(nil), s.handlers...)
	for _, h := range hs {
		if s.has(h.id) {
			h.fn(ev)
		}
	}
}

// Repositioner is a ScrollSource whose position can be moved without
// notifying listeners. The coordinator uses it to keep progress fixed when a
// rebuild changes the pin distance.
type Repositioner interface {
	ScrollSource
	Reposition(y float64)
}

// Reposition moves to y silently. Bounds are not applied, so a host that
// resizes its document can set new bounds afterwards.
func (s *ManualSource) Reposition(y float64) {
	s.y = y
}

// InjectScrollBy moves by dy relative to the current position.
func (s *ManualSource) InjectScrollBy(dy float64) {
	s.InjectScroll(s.y + dy)
}

func (s *ManualSource) has(id uint32) bool {
	for i := range s.handlers {
		if s.handlers[i].id == id {
			return true
		}
	}
	return false
}

func (s *ManualSource) remove(id uint32) bool {
	for i := range s.handlers {
		if s.handlers[i].id == id {
			copy(s.handlers[i:], s.handlers[i+1:])
			s.handlers[len(s.handlers)-1] = scrollHandler{}
			s.handlers = s.handlers[:len(s.handlers)-1]
			s.removed++
			return true
		}
	}
	return false
}

// CallbackHandle removes one ManualSource listener.
type CallbackHandle struct {
	id  uint32
	src *ManualSource
}

// Remove unregisters the listener. Later calls do nothing.
func (h *CallbackHandle) Remove() {
	if h == nil || h.src == nil {
		return
	}
	h.src.remove(h.id)
	h.src = nil
}
