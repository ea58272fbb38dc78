package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TileSize is the number of screen pixels drawn per world unit. One world
	// unit is one level tile.
	TileSize = 40

	// TPS is the fixed simulation rate of the ebiten client.
	TPS = 60
)
