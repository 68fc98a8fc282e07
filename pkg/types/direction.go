package types

import "strings"

// Direction is a logical gesture direction reported by the sensor.
type Direction int

const (
	DirNone Direction = iota
	DirLeft
	DirRight
	DirUp
	DirDown
	DirNear
	DirFar
)

// Cardinals lists the directions that address action table columns, in
// column order.
var Cardinals = [...]Direction{DirLeft, DirRight, DirUp, DirDown}

var directionNames = map[Direction]string{
	DirNone:  "NONE",
	DirLeft:  "LEFT",
	DirRight: "RIGHT",
	DirUp:    "UP",
	DirDown:  "DOWN",
	DirNear:  "NEAR",
	DirFar:   "FAR",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "NONE"
}

// IsCardinal reports whether d is one of LEFT, RIGHT, UP or DOWN.
func (d Direction) IsCardinal() bool {
	return d >= DirLeft && d <= DirDown
}

// ParseDirection parses a direction name, case-insensitively.
func ParseDirection(s string) (Direction, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for d, name := range directionNames {
		if name == s {
			return d, true
		}
	}
	return DirNone, false
}
