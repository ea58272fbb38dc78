package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/level"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/progress"
	"github.com/milk9111/platformer/session"
)

const (
	appName      = "platformer"
	firstLevel   = "1-1"
	tickDuration = 1.0 / common.TPS
)

type Options struct {
	Level string
	Debug bool
	// Watch enables hot reload of prefabs, scripts and levels from disk.
	Watch bool
	Save  bool
}

type Game struct {
	session  *session.Session
	progress *progress.Store
	sounds   *soundBoard
	watcher  *prefabs.Watcher

	pauseUI *ebitenui.UI
	clearUI *ebitenui.UI

	paused  bool
	cleared bool
	quit    bool
	debug   bool
}

func NewGame(opts Options) (*Game, error) {
	spec, err := prefabs.LoadWorldSpec()
	if err != nil {
		return nil, err
	}

	store := progress.NewStore(nil)
	if opts.Save {
		store = progress.Open(appName)
	}

	name := opts.Level
	if name == "" {
		name = store.Resume(firstLevel)
	}
	lvl, err := level.Load(name)
	if err != nil {
		return nil, err
	}

	sess, err := session.New(lvl, spec, session.Config{Commands: deviceCommands{}})
	if err != nil {
		return nil, err
	}

	g := &Game{
		session:  sess,
		progress: store,
		sounds:   newSoundBoard(),
		debug:    opts.Debug,
	}
	g.pauseUI = NewPauseUI(g)

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts", "level")
		if err != nil {
			log.Printf("[Game] Warning: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	log.Printf("[Game] starting %s", lvl.Name)
	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		g.close()
		return ebiten.Termination
	}

	g.applyChanges()

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if !g.cleared && pausePressed() {
		g.paused = !g.paused
	}

	switch {
	case g.paused:
		g.pauseUI.Update()
		return nil
	case g.cleared:
		g.clearUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart()
		return nil
	}

	for _, ev := range g.session.Step(tickDuration) {
		if ev.Type != ecs.EventSound {
			continue
		}
		if s, ok := ev.Data.(component.Sound); ok {
			g.sounds.Play(s)
		}
	}

	switch g.session.Outcome {
	case session.Dead:
		g.onDeath()
	case session.Completed:
		g.onComplete()
	}
	return nil
}

func (g *Game) onDeath() {
	g.progress.RecordDeath(g.session.Level.Name)
	g.save()
	g.restart()
}

func (g *Game) onComplete() {
	lvl := g.session.Level
	elapsed := g.session.Elapsed
	best := g.progress.Complete(lvl.Name, lvl.Next, elapsed)
	g.save()

	lines := []string{
		fmt.Sprintf("World %s clear!", lvl.Name),
		fmt.Sprintf("Time %.2fs", elapsed),
	}
	if rec, ok := g.progress.Completed(lvl.Name); ok {
		if best {
			lines = append(lines, "New best time!")
		} else {
			lines = append(lines, fmt.Sprintf("Best %.2fs", rec.BestTime))
		}
		lines = append(lines, fmt.Sprintf("Deaths %d", rec.Deaths))
	}

	g.clearUI = NewLevelCompleteUI(g, lines, lvl.Next != "")
	g.cleared = true
}

func (g *Game) restart() {
	g.cleared = false
	if err := g.session.Restart(); err != nil {
		log.Printf("[Game] restart %s: %v", g.session.Level.Name, err)
	}
}

// advance loads the level after the current one, or replays the current one
// if that fails.
func (g *Game) advance() {
	next := g.session.Level.Next
	if next == "" {
		g.restart()
		return
	}
	lvl, err := level.Load(next)
	if err != nil {
		log.Printf("[Game] load %s: %v", next, err)
		g.restart()
		return
	}
	g.cleared = false
	if err := g.session.Load(lvl); err != nil {
		log.Printf("[Game] start %s: %v", next, err)
		g.restart()
		return
	}
	log.Printf("[Game] starting %s", lvl.Name)
}

func (g *Game) save() {
	if err := g.progress.Save(); err != nil {
		log.Printf("[Game] Warning: %v", err)
	}
}

// applyChanges reloads whatever the watcher saw change since the last tick.
// A level or prefab edit restarts the current level. Script edits take effect
// on the next enemy decision.
func (g *Game) applyChanges() {
	if g.watcher == nil {
		return
	}

	select {
	case err, ok := <-g.watcher.Errors:
		if ok && err != nil {
			log.Printf("[Reload] watcher: %v", err)
		}
	default:
	}

	restart := false
	for _, c := range g.watcher.Poll() {
		switch c.Kind {
		case prefabs.ChangeScript:
			g.session.ReloadScripts()
			log.Printf("[Reload] scripts: %s", c.Path)
		case prefabs.ChangePrefab:
			spec, err := prefabs.LoadWorldSpec()
			if err != nil {
				log.Printf("[Reload] %s: %v (keeping previous tuning)", c.Path, err)
				continue
			}
			g.session.SetWorldSpec(spec)
			restart = true
			log.Printf("[Reload] prefab: %s", c.Path)
		case prefabs.ChangeLevel:
			lvl, err := level.Load(g.session.Level.Name)
			if err != nil {
				log.Printf("[Reload] %s: %v (keeping previous level)", c.Path, err)
				continue
			}
			g.session.Level = lvl
			restart = true
			log.Printf("[Reload] level: %s", c.Path)
		}
	}

	if restart {
		g.restart()
	}
}

func (g *Game) close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("[Game] close watcher: %v", err)
		}
		g.watcher = nil
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawSession(screen, g.session)
	drawHUD(screen, g.session.Status(), g.debug)

	switch {
	case g.paused:
		g.pauseUI.Draw(screen)
	case g.cleared:
		g.clearUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
