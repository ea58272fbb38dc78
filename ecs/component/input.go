package component

// Input stores the discrete commands for the current tick.
type Input struct {
	MoveLeft  bool
	MoveRight bool
	Jump      bool
}

var InputComponent = NewComponent[Input]()
