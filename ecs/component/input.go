package component

type TurnSign int

const (
	TurnNone  TurnSign = 0
	TurnLeft  TurnSign = -1
	TurnRight TurnSign = 1
)

// RotationalInput is the steering intent of a human or scripted pilot.
type RotationalInput struct {
	Turn      TurnSign
	Thrusting bool
}

var RotationalInputComponent = NewComponent[RotationalInput]()

// MoveAttributes bounds what steering intent turns into: thrust sets the
// velocity magnitude to Speed, a turn sets the rotation rate to ±TurnRate.
type MoveAttributes struct {
	Speed    float64
	TurnRate float64
}

var MoveAttributesComponent = NewComponent[MoveAttributes]()
