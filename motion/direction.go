package motion

// Direction is the vertical motion class of a body
type Direction uint8

const (
	DirNone Direction = iota
	DirUp
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "none"
	}
}

// Classify maps a vertical speed to a Direction with a dead band of ±threshold
func Classify(vy, threshold float64) Direction {
	switch {
	case vy > threshold:
		return DirUp
	case vy < -threshold:
		return DirDown
	default:
		return DirNone
	}
}

// Flipped reports an up↔down reversal; transitions through none do not count
func Flipped(prev, cur Direction) bool {
	return (prev == DirUp && cur == DirDown) || (prev == DirDown && cur == DirUp)
}
