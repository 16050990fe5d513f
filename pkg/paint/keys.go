package paint

import "strconv"

// Key is one logical keyboard command.
type Key int

const (
	// KeyNone means no key was pressed this frame.
	KeyNone Key = iota
	// KeyQuit ends the loop.
	KeyQuit
	// KeyClear empties the stroke path.
	KeyClear
	// KeyToggle pauses or resumes drawing and always lifts the pen.
	KeyToggle
	// KeyColor1 through KeyColor9 select a preset pen color.
	KeyColor1
	KeyColor2
	KeyColor3
	KeyColor4
	KeyColor5
	KeyColor6
	KeyColor7
	KeyColor8
	KeyColor9
)

const keyEsc = 27

// modifierMask covers the Shift/Ctrl/Alt flags highgui reports above bit 16.
const modifierMask = 0xFF0000

// ParseKey maps a highgui key code to a Key. Modifier flags are ignored, but
// the rest of the code must match exactly: X keysyms such as Insert (0xFF63)
// share their low byte with ASCII letters and must not alias them.
func ParseKey(code int) Key {
	if code < 0 {
		return KeyNone
	}
	code &^= modifierMask
	switch {
	case code == 'q' || code == keyEsc:
		return KeyQuit
	case code == 'c':
		return KeyClear
	case code == ' ':
		return KeyToggle
	case code >= '1' && code <= '9':
		return KeyColor1 + Key(code-'1')
	}
	return KeyNone
}

// ParseKeyName maps a command name used by the dashboard ("quit", "clear",
// "toggle", "1".."9") to a Key.
func ParseKeyName(name string) (Key, bool) {
	switch name {
	case "quit":
		return KeyQuit, true
	case "clear":
		return KeyClear, true
	case "toggle", "space":
		return KeyToggle, true
	}
	if d, err := strconv.Atoi(name); err == nil && d >= 1 && d <= 9 {
		return KeyColor1 + Key(d-1), true
	}
	return KeyNone, false
}

// Digit returns the preset number for a color key, or 0.
func (k Key) Digit() int {
	if k >= KeyColor1 && k <= KeyColor9 {
		return int(k-KeyColor1) + 1
	}
	return 0
}

func (k Key) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyQuit:
		return "quit"
	case KeyClear:
		return "clear"
	case KeyToggle:
		return "toggle"
	}
	if d := k.Digit(); d > 0 {
		return strconv.Itoa(d)
	}
	return "unknown"
}

// KeyQueue carries keys from other goroutines (the dashboard) into the
// paint loop, which drains at most one per frame.
type KeyQueue struct {
	ch chan Key
}

// NewKeyQueue creates a queue holding up to size pending keys.
func NewKeyQueue(size int) *KeyQueue {
	if size < 1 {
		size = 1
	}
	return &KeyQueue{ch: make(chan Key, size)}
}

// Push enqueues k without blocking. It returns false when the queue is full.
func (q *KeyQueue) Push(k Key) bool {
	select {
	case q.ch <- k:
		return true
	default:
		return false
	}
}

// Poll returns the oldest pending key, or KeyNone.
func (q *KeyQueue) Poll() Key {
	select {
	case k := <-q.ch:
		return k
	default:
		return KeyNone
	}
}
