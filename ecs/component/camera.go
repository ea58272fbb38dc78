package component

// Camera follows the player horizontally, in world units.
type Camera struct {
	X          float64
	ViewWidth  float64
	Smoothness float64
	MinX       float64
	MaxX       float64
}

var CameraComponent = NewComponent[Camera]()
