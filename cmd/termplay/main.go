// Command termplay runs the platformer in a terminal. It drives the same
// simulation as the ebiten client at a fixed 60Hz and draws one character
// cell per tile.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/level"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/progress"
	"github.com/milk9111/platformer/session"
)

const tick = time.Second / common.TPS

func main() {
	levelName := flag.String("level", "", "level name in level/ (defaults to the saved level)")
	save := flag.Bool("save", false, "persist completed levels and deaths")
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	// The terminal owns stdout; logs go to a file or nowhere.
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "termplay: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if err := run(*levelName, *save); err != nil {
		fmt.Fprintf(os.Stderr, "termplay: %v\n", err)
		os.Exit(1)
	}
}

func run(levelName string, save bool) error {
	spec, err := prefabs.LoadWorldSpec()
	if err != nil {
		return err
	}
	store := progress.NewStore(nil)
	if save {
		store = progress.Open("platformer")
	}
	if levelName == "" {
		levelName = store.Resume("1-1")
	}
	lvl, err := level.Load(levelName)
	if err != nil {
		return err
	}

	keys := newHeldKeys()
	sess, err := session.New(lvl, spec, session.Config{Commands: keys})
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorDefault).Foreground(tcell.ColorWhite))
	screen.HideCursor()
	screen.Clear()

	p := &player{screen: screen, session: sess, progress: store, keys: keys}
	return p.loop()
}

type player struct {
	screen   tcell.Screen
	session  *session.Session
	progress *progress.Store
	keys     *heldKeys
	// banner is shown once the level is clear; the simulation pauses while
	// it is up.
	banner string
}

func (p *player) loop() error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go p.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				done, err := p.handleKey(ev)
				if done || err != nil {
					return err
				}
			case *tcell.EventResize:
				p.screen.Sync()
			}
		case <-ticker.C:
			if err := p.step(); err != nil {
				return err
			}
			p.render()
		}
	}
}

func (p *player) handleKey(ev *tcell.EventKey) (bool, error) {
	var r rune
	if ev.Key() == tcell.KeyRune {
		r = ev.Rune()
	}
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || r == 'q' {
		return true, p.progress.Save()
	}

	switch r {
	case 'r':
		p.banner = ""
		return false, p.session.Restart()
	case 'n':
		next := p.session.Level.Next
		if p.banner == "" || next == "" {
			return false, nil
		}
		lvl, err := level.Load(next)
		if err != nil {
			return false, err
		}
		p.banner = ""
		return false, p.session.Load(lvl)
	}

	if a, ok := actionFor(ev); ok {
		p.keys.Press(a)
	}
	return false, nil
}

func (p *player) step() error {
	if p.banner != "" {
		return nil
	}

	for _, ev := range p.session.Step(tick.Seconds()) {
		if ev.Type != ecs.EventSound {
			continue
		}
		// The terminal bell stands in for the louder cues.
		switch ev.Data {
		case component.SoundDeath, component.SoundFlag, component.SoundPowerUp:
			_ = p.screen.Beep()
		}
	}

	sess := p.session
	switch sess.Outcome {
	case session.Dead:
		p.progress.RecordDeath(sess.Level.Name)
		return sess.Restart()
	case session.Completed:
		best := p.progress.Complete(sess.Level.Name, sess.Level.Next, sess.Elapsed)
		if err := p.progress.Save(); err != nil {
			log.Printf("[Termplay] Warning: %v", err)
		}
		p.banner = fmt.Sprintf("World %s clear in %.2fs", sess.Level.Name, sess.Elapsed)
		if best {
			p.banner += " (best)"
		}
		if sess.Level.Next != "" {
			p.banner += "  n: next level"
		}
		p.banner += "  r: replay  q: quit"
	}
	return nil
}

func (p *player) render() {
	width, height := p.screen.Size()
	f := composeFrame(p.session, width, height)
	if p.banner != "" {
		f.text(max((width-len(p.banner))/2, 0), height/2, p.banner, clothStyle)
	}
	f.draw(p.screen)
	p.screen.Show()
}
