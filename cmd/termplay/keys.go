package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/platformer/ecs/component"
)

type action uint8

const (
	actionLeft action = iota
	actionRight
	actionJump
	actionCount
)

// holdWindow is how long a key counts as held after its last press or
// repeat. Terminals never report releases.
const holdWindow = 150 * time.Millisecond

// heldKeys turns the terminal's press events into per-tick commands.
// Jump fires once per press; movement stays on while presses keep arriving.
type heldKeys struct {
	window time.Duration
	last   [actionCount]time.Time
	jump   bool
	now    func() time.Time
}

func newHeldKeys() *heldKeys {
	return &heldKeys{window: holdWindow, now: time.Now}
}

func actionFor(ev *tcell.EventKey) (action, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return actionLeft, true
	case tcell.KeyRight:
		return actionRight, true
	case tcell.KeyUp:
		return actionJump, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A', 'h':
			return actionLeft, true
		case 'd', 'D', 'l':
			return actionRight, true
		case ' ', 'w', 'W', 'k':
			return actionJump, true
		}
	}
	return 0, false
}

func (k *heldKeys) Press(a action) {
	now := k.now()
	switch a {
	case actionLeft:
		// Reversing direction drops the other side immediately.
		k.last[actionRight] = time.Time{}
	case actionRight:
		k.last[actionLeft] = time.Time{}
	case actionJump:
		k.jump = true
	}
	k.last[a] = now
}

func (k *heldKeys) held(a action, now time.Time) bool {
	t := k.last[a]
	return !t.IsZero() && now.Sub(t) < k.window
}

func (k *heldKeys) Poll() component.Input {
	now := k.now()
	cmd := component.Input{
		MoveLeft:  k.held(actionLeft, now),
		MoveRight: k.held(actionRight, now),
		Jump:      k.jump,
	}
	k.jump = false
	return cmd
}
