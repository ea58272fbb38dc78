package component

import "image/color"

// Sprite is how an entity looks to the front-ends. The ebiten client fills
// the body rectangle with Color; the terminal client draws Glyph in every
// cell the body covers. Lower layers draw first.
type Sprite struct {
	Color color.NRGBA
	Glyph rune
	Layer int
}

var SpriteComponent = NewComponent[Sprite]()
