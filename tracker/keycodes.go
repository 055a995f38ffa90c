package tracker

// Keyboard keycodes follow the NohBoard-compatible virtual-key space used
// by layout files. Only the codes the tracker itself interprets are named
// here; everything else passes through opaquely.
const (
	KeyCapsLock   uint32 = 20
	KeyShiftLeft  uint32 = 160
	KeyShiftRight uint32 = 161
)

// Mouse button codes.
const (
	ButtonLeft    uint32 = 0
	ButtonRight   uint32 = 1
	ButtonMiddle  uint32 = 2
	ButtonBack    uint32 = 3
	ButtonForward uint32 = 4
)

// Scroll axis codes, one per wheel direction.
const (
	ScrollUp    uint32 = 0
	ScrollDown  uint32 = 1
	ScrollRight uint32 = 2
	ScrollLeft  uint32 = 3
)

// WheelAxis maps a wheel event's deltas to the axis code of the dominant
// direction. Horizontal movement wins over vertical, matching the reference
// tool.
func WheelAxis(dx, dy int) uint32 {
	switch {
	case dx < 0:
		return ScrollLeft
	case dx > 0:
		return ScrollRight
	case dy < 0:
		return ScrollDown
	default:
		return ScrollUp
	}
}
