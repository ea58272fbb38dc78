package component

type Enemy struct {
	Kind  string
	Speed float64
	// Script names a tengo brain under prefabs/scripts. Empty uses the
	// built-in patrol.
	Script string
	// HitWall is set by physics when the last step was blocked horizontally.
	HitWall bool
	// TrampleTime is how long the flattened enemy lingers before removal.
	TrampleTime float64
}

var EnemyComponent = NewComponent[Enemy]()
