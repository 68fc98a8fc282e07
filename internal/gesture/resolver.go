// Package gesture converts raw sensor gesture codes into logical directions.
package gesture

import "gesturekey/pkg/types"

// Raw gesture codes as reported by the APDS-9960 gesture engine driver.
const (
	CodeNone  = 0
	CodeLeft  = 1
	CodeRight = 2
	CodeUp    = 3
	CodeDown  = 4
	CodeNear  = 5
	CodeFar   = 6
	CodeAll   = 7 // driver catch-all, never mapped
)

var codeDirections = map[int]types.Direction{
	CodeLeft:  types.DirLeft,
	CodeRight: types.DirRight,
	CodeUp:    types.DirUp,
	CodeDown:  types.DirDown,
	CodeNear:  types.DirNear,
	CodeFar:   types.DirFar,
}

// ResolveDirection maps a raw code to a Direction. Unknown codes resolve to
// DirNone.
func ResolveDirection(code int) types.Direction {
	if d, ok := codeDirections[code]; ok {
		return d
	}
	return types.DirNone
}

// CodeOf is the inverse of ResolveDirection for the six real directions.
func CodeOf(d types.Direction) int {
	for code, dir := range codeDirections {
		if dir == d {
			return code
		}
	}
	return CodeNone
}

// ToActionIndex maps a cardinal direction to its action table column.
// NEAR, FAR and NONE report false.
func ToActionIndex(d types.Direction) (int, bool) {
	for i, c := range types.Cardinals {
		if c == d {
			return i, true
		}
	}
	return 0, false
}
