package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/sfx"
)

// soundBoard holds one ebiten player per cue. Cues are synthesised once at
// startup.
type soundBoard struct {
	players map[component.Sound]*audio.Player
	muted   bool
}

func newSoundBoard() *soundBoard {
	board := &soundBoard{players: make(map[component.Sound]*audio.Player, len(component.Sounds))}

	bank, err := sfx.NewBank(sfx.SampleRate)
	if err != nil {
		log.Printf("[Audio] Warning: failed to render cues: %v (sound disabled)", err)
		return board
	}

	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(int(sfx.SampleRate))
	}
	for _, s := range component.Sounds {
		board.players[s] = ctx.NewPlayerFromBytes(bank.PCM(s))
	}
	return board
}

func (b *soundBoard) Play(s component.Sound) {
	if b == nil || b.muted {
		return
	}
	p := b.players[s]
	if p == nil {
		return
	}
	if err := p.Rewind(); err != nil {
		log.Printf("[Audio] rewind %s: %v", s, err)
		return
	}
	p.Play()
}
