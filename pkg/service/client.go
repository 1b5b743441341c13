package service

// InteractionEventType ...
type InteractionEventType uint32

// InteractionEvent is a client-agnostic input event
type InteractionEvent struct {
	T InteractionEventType
}

const (
	KeyNull InteractionEventType = iota
	KeyEscape
	KeyCursorDown
	KeyCursorUp
	KeyCopy
)

// EffectType describes what the client should do after an interaction, beyond repainting
type EffectType uint32

const (
	EffectNone EffectType = iota
	EffectCopy
)

// Effect ...
type Effect struct {
	T    EffectType
	Text string
}

// Selector owns the loaded lists and the current selection. It is the only state
// the client mutates, and only via HandleInteraction.
type Selector struct {
	Lists   Collection
	Cur     int
	Running bool
}

// NewSelector ...
func NewSelector(lists Collection) *Selector {
	return &Selector{
		Lists:   lists,
		Running: true,
	}
}

// HandleInteraction applies a single event to the selection
func (s *Selector) HandleInteraction(ev InteractionEvent) Effect {
	n := len(s.Lists)
	switch ev.T {
	case KeyEscape:
		s.Running = false
	case KeyCursorDown:
		if n > 0 {
			s.Cur = (s.Cur + 1) % n
		}
	case KeyCursorUp:
		if n > 0 {
			if s.Cur == 0 {
				s.Cur = n - 1
			} else {
				s.Cur--
			}
		}
	case KeyCopy:
		if l, ok := s.CurList(); ok {
			return Effect{T: EffectCopy, Text: l.Markdown()}
		}
	}
	return Effect{}
}

// CurList returns the selected list, or false if there are none
func (s *Selector) CurList() (TodoList, bool) {
	if len(s.Lists) == 0 {
		return TodoList{}, false
	}
	return s.Lists[s.Cur], true
}

// ListNames ...
func (s *Selector) ListNames() []string {
	names := make([]string, len(s.Lists))
	for i, l := range s.Lists {
		names[i] = l.Name
	}
	return names
}

// DetailLines returns the checkbox lines of the selected list
func (s *Selector) DetailLines() []string {
	l, ok := s.CurList()
	if !ok {
		return nil
	}
	lines := make([]string, len(l.Items))
	for i, item := range l.Items {
		lines[i] = item.Checkbox()
	}
	return lines
}
