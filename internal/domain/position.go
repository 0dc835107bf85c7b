package domain

// Position represents a football position
type Position string

const (
	PositionGK  Position = "GK"
	PositionCB  Position = "CB"
	PositionLB  Position = "LB"
	PositionRB  Position = "RB"
	PositionCDM Position = "CDM"
	PositionCM  Position = "CM"
	PositionCAM Position = "CAM"
	PositionLW  Position = "LW"
	PositionRW  Position = "RW"
	PositionST  Position = "ST"
)

// AllPositions contains all valid positions
var AllPositions = []Position{
	PositionGK, PositionCB, PositionLB, PositionRB,
	PositionCDM, PositionCM, PositionCAM,
	PositionLW, PositionRW, PositionST,
}

// IsValid checks if a position is valid
func (p Position) IsValid() bool {
	for _, pos := range AllPositions {
		if p == pos {
			return true
		}
	}
	return false
}

// IsGoalkeeper reports whether the position is the goalkeeper position
func (p Position) IsGoalkeeper() bool {
	return p == PositionGK
}

// String returns the string representation of the position
func (p Position) String() string {
	return string(p)
}
