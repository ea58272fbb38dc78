package physics

import (
	"testing"

	"github.com/jakecoffman/cp"
)

type gridQuery struct {
	solid     map[[2]int]bool
	obstacles []Obstacle
}

func newGridQuery(cells ...[2]int) *gridQuery {
	q := &gridQuery{solid: make(map[[2]int]bool, len(cells))}
	for _, c := range cells {
		q.solid[c] = true
	}
	return q
}

func (g *gridQuery) Tiles(minX, minY, maxX, maxY int) []cp.BB {
	var out []cp.BB
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if g.solid[[2]int{x, y}] {
				out = append(out, cp.BB{L: float64(x), B: float64(y), R: float64(x + 1), T: float64(y + 1)})
			}
		}
	}
	return out
}

func (g *gridQuery) Obstacles() []Obstacle {
	return g.obstacles
}

type fakeObstacle struct {
	box       cp.BB
	destroyed bool
	hits      []int
}

func (o *fakeObstacle) Bounds() cp.BB   { return o.box }
func (o *fakeObstacle) Destroyed() bool { return o.destroyed }
func (o *fakeObstacle) Hit(level int)   { o.hits = append(o.hits, level) }
func (o *fakeObstacle) RestY() float64  { return o.box.B }

func floorRow(y, from, to int) [][2]int {
	cells := make([][2]int, 0, to-from+1)
	for x := from; x <= to; x++ {
		cells = append(cells, [2]int{x, y})
	}
	return cells
}

func TestIntegrateZeroDeltaIsNoop(t *testing.T) {
	cases := []struct {
		name string
		body Body
	}{
		{"at_rest", NewBody(cp.Vector{}, cp.Vector{X: 1, Y: 1})},
		{"moving", Body{Position: cp.Vector{X: 3, Y: 4}, Size: cp.Vector{X: 1, Y: 2}, Velocity: cp.Vector{X: 8, Y: -3}}},
		{"grounded_slow", Body{Position: cp.Vector{X: -2, Y: 0}, Size: cp.Vector{X: 1, Y: 1}, Velocity: cp.Vector{X: 0.5}, Grounded: true}},
	}

	q := newGridQuery(floorRow(-1, -5, 5)...)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := c.body
			ev := Integrate(&b, q, 0, Params{Gravity: -20, Damping: 0.87})
			if b != c.body {
				t.Fatalf("expected body unchanged, got %+v want %+v", b, c.body)
			}
			if ev != (Events{}) {
				t.Fatalf("expected no events, got %+v", ev)
			}
		})
	}
}

func TestIntegrateRestingOnTile(t *testing.T) {
	b := NewBody(cp.Vector{X: 0, Y: 0}, cp.Vector{X: 1, Y: 1})
	q := newGridQuery([2]int{0, -1})

	ev := Integrate(&b, q, 0.1, Params{Gravity: -20, Damping: 0.87})

	if !b.Grounded {
		t.Fatalf("expected grounded")
	}
	if b.Velocity.Y != 0 {
		t.Fatalf("expected vy=0, got %v", b.Velocity.Y)
	}
	if b.Position.Y != 0 {
		t.Fatalf("expected y unchanged, got %v", b.Position.Y)
	}
	if !ev.Landed {
		t.Fatalf("expected landed event")
	}
}

func TestIntegrateRestingAcrossSteps(t *testing.T) {
	cases := []struct {
		name string
		x    float64
		dt   float64
	}{
		{"aligned_60hz", 0, 1.0 / 60},
		{"straddling_cells", 2.5, 1.0 / 60},
		{"long_step", 1.25, 0.1},
		{"negative_x", -3.4, 1.0 / 30},
	}

	q := newGridQuery(floorRow(-1, -6, 6)...)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := NewBody(cp.Vector{X: c.x, Y: 0}, cp.Vector{X: 0.875, Y: 1})
			for i := 0; i < 10; i++ {
				Integrate(&b, q, c.dt, Params{Gravity: -20, Damping: 0.87})
				if !b.Grounded || b.Velocity.Y != 0 || b.Position.Y != 0 {
					t.Fatalf("tick %d: expected grounded at rest, got %+v", i, b)
				}
			}
		})
	}
}

func TestIntegrateDampingReachesZero(t *testing.T) {
	cases := []struct {
		name string
		vx   float64
	}{
		{"right", 8},
		{"left", -8},
		{"just_above_snap", 1.01},
		{"fast", 40},
	}

	q := newGridQuery(floorRow(-1, -100, 100)...)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := NewBody(cp.Vector{}, cp.Vector{X: 1, Y: 1})
			b.Grounded = true
			b.Velocity.X = c.vx

			for i := 0; i < 100; i++ {
				prev := b.Velocity.X
				Integrate(&b, q, 1.0/60, Params{Gravity: -20, Damping: 0.87})
				if prev*b.Velocity.X < 0 {
					t.Fatalf("tick %d: vx changed sign from %v to %v", i, prev, b.Velocity.X)
				}
				if b.Velocity.X == 0 {
					return
				}
			}
			t.Fatalf("vx did not reach zero, still %v", b.Velocity.X)
		})
	}
}

func TestIntegrateSettledWhenGroundedAndSlow(t *testing.T) {
	q := newGridQuery(floorRow(-1, -2, 2)...)
	b := NewBody(cp.Vector{}, cp.Vector{X: 1, Y: 1})
	b.Grounded = true
	b.Velocity.X = 0.5

	ev := Integrate(&b, q, 1.0/60, Params{Gravity: -20, Damping: 0.87})
	if !ev.Settled {
		t.Fatalf("expected settled event")
	}
	if b.Velocity.X != 0 {
		t.Fatalf("expected vx snapped to 0, got %v", b.Velocity.X)
	}

	airborne := NewBody(cp.Vector{Y: 5}, cp.Vector{X: 1, Y: 1})
	airborne.Velocity.X = 0.5
	if ev := Integrate(&airborne, q, 1.0/60, Params{Gravity: -20, Damping: 0.87}); ev.Settled {
		t.Fatalf("airborne body should not settle")
	}
}

func TestIntegrateWallStopsHorizontalMovement(t *testing.T) {
	cells := append(floorRow(-1, -1, 3), [2]int{1, 0})

	t.Run("default_policy", func(t *testing.T) {
		q := newGridQuery(cells...)
		b := NewBody(cp.Vector{}, cp.Vector{X: 1, Y: 1})
		b.Velocity.X = 8

		ev := Integrate(&b, q, 0.1, Params{Gravity: -20, Damping: 0.87})
		if !ev.HitX {
			t.Fatalf("expected x collision")
		}
		if b.Position.X != 0 {
			t.Fatalf("expected x unchanged, got %v", b.Position.X)
		}
		if b.Velocity.X != 0 {
			t.Fatalf("expected vx=0, got %v", b.Velocity.X)
		}
		if !b.Grounded {
			t.Fatalf("expected y pass to still land the body")
		}
	})

	t.Run("custom_policy", func(t *testing.T) {
		q := newGridQuery(cells...)
		b := NewBody(cp.Vector{}, cp.Vector{X: 1, Y: 1})
		b.Velocity.X = 8
		calls := 0

		Integrate(&b, q, 0.1, Params{
			Gravity: -20,
			Damping: 1,
			OnHitX: func(b *Body) {
				calls++
				b.Velocity.X = -b.Velocity.X
				b.FacesRight = false
			},
		})
		if calls != 1 {
			t.Fatalf("expected OnHitX once, got %d", calls)
		}
		if b.Position.X != 0 {
			t.Fatalf("expected no horizontal movement on the colliding step, got x=%v", b.Position.X)
		}
		if b.Velocity.X != -8 || b.FacesRight {
			t.Fatalf("expected reversed velocity, got %+v", b)
		}
	})

	t.Run("touching_wall_moving_away", func(t *testing.T) {
		q := newGridQuery(cells...)
		b := NewBody(cp.Vector{}, cp.Vector{X: 1, Y: 1})
		b.Velocity.X = -8

		ev := Integrate(&b, q, 0.1, Params{Gravity: -20, Damping: 1})
		if ev.HitX {
			t.Fatalf("moving away from a touching wall must not collide")
		}
		if b.Position.X >= 0 {
			t.Fatalf("expected body to move left, got x=%v", b.Position.X)
		}
	})
}

func TestIntegrateCeilingClampsBelowTile(t *testing.T) {
	q := newGridQuery([2]int{0, 1})
	b := NewBody(cp.Vector{X: 0, Y: -0.5}, cp.Vector{X: 1, Y: 1})
	b.Velocity.Y = 10

	ev := Integrate(&b, q, 0.1, Params{Gravity: -20, Damping: 0.87})
	if !ev.HitCeiling {
		t.Fatalf("expected ceiling hit")
	}
	if b.Position.Y != 0 {
		t.Fatalf("expected body clamped just below the tile at y=0, got %v", b.Position.Y)
	}
	if b.Velocity.Y != 0 {
		t.Fatalf("expected vy=0, got %v", b.Velocity.Y)
	}
	if b.Grounded {
		t.Fatalf("ceiling hit must not ground the body")
	}
}

func TestIntegrateObstacles(t *testing.T) {
	t.Run("bump_from_below", func(t *testing.T) {
		block := &fakeObstacle{box: cp.BB{L: 0, B: 1, R: 1, T: 2}}
		q := newGridQuery()
		q.obstacles = []Obstacle{block}
		b := NewBody(cp.Vector{X: 0, Y: -0.5}, cp.Vector{X: 1, Y: 1})
		b.Velocity.Y = 10

		ev := Integrate(&b, q, 0.1, Params{Gravity: -20, Damping: 0.87, Level: 2})
		if len(block.hits) != 1 || block.hits[0] != 2 {
			t.Fatalf("expected one hit at level 2, got %v", block.hits)
		}
		if ev.Bumped != Obstacle(block) {
			t.Fatalf("expected bumped obstacle reported")
		}
		if b.Position.Y != 0 || b.Velocity.Y != 0 {
			t.Fatalf("expected clamp below rest y, got %+v", b)
		}
	})

	t.Run("land_on_top", func(t *testing.T) {
		block := &fakeObstacle{box: cp.BB{L: 0, B: -1, R: 1, T: 0}}
		q := newGridQuery()
		q.obstacles = []Obstacle{block}
		b := NewBody(cp.Vector{X: 0, Y: 0.1}, cp.Vector{X: 1, Y: 1})
		b.Velocity.Y = -5

		ev := Integrate(&b, q, 0.1, Params{Gravity: -20, Damping: 0.87})
		if !ev.Landed || !b.Grounded || b.Position.Y != 0 {
			t.Fatalf("expected landing on obstacle, got %+v ev=%+v", b, ev)
		}
		if len(block.hits) != 0 {
			t.Fatalf("landing must not hit the obstacle")
		}
	})

	t.Run("destroyed_ignored", func(t *testing.T) {
		block := &fakeObstacle{box: cp.BB{L: 0, B: 1, R: 1, T: 2}, destroyed: true}
		q := newGridQuery()
		q.obstacles = []Obstacle{block}
		b := NewBody(cp.Vector{X: 0, Y: -0.5}, cp.Vector{X: 1, Y: 1})
		b.Velocity.Y = 10

		ev := Integrate(&b, q, 0.1, Params{Gravity: -20, Damping: 0.87})
		if ev.HitCeiling || len(block.hits) != 0 {
			t.Fatalf("destroyed obstacle must not collide")
		}
	})

	t.Run("first_hit_only", func(t *testing.T) {
		left := &fakeObstacle{box: cp.BB{L: -0.5, B: 1, R: 0.5, T: 2}}
		right := &fakeObstacle{box: cp.BB{L: 0.5, B: 1, R: 1.5, T: 2}}
		q := newGridQuery()
		q.obstacles = []Obstacle{left, right}
		b := NewBody(cp.Vector{X: 0, Y: -0.5}, cp.Vector{X: 1, Y: 1})
		b.Velocity.Y = 10

		Integrate(&b, q, 0.1, Params{Gravity: -20, Damping: 0.87, Level: 1})
		if len(left.hits) != 1 || len(right.hits) != 0 {
			t.Fatalf("expected only the first obstacle hit, got left=%v right=%v", left.hits, right.hits)
		}
	})

	t.Run("tile_wins_over_obstacle", func(t *testing.T) {
		block := &fakeObstacle{box: cp.BB{L: 0.5, B: 1, R: 1.5, T: 2}}
		q := newGridQuery([2]int{0, 1})
		q.obstacles = []Obstacle{block}
		b := NewBody(cp.Vector{X: 0, Y: -0.5}, cp.Vector{X: 1, Y: 1})
		b.Velocity.Y = 10

		ev := Integrate(&b, q, 0.1, Params{Gravity: -20, Damping: 0.87})
		if !ev.HitCeiling || ev.Bumped != nil || len(block.hits) != 0 {
			t.Fatalf("expected the tile to resolve the contact, got ev=%+v hits=%v", ev, block.hits)
		}
	})
}

func TestIntegrateFall(t *testing.T) {
	b := NewBody(cp.Vector{X: 0, Y: -2.9}, cp.Vector{X: 1, Y: 1})
	params := Params{Gravity: -20, Damping: 0.87, CheckFall: true, FallLimit: -3}

	ev := Integrate(&b, newGridQuery(), 0.1, params)
	if !ev.Fell {
		t.Fatalf("expected fall event at y=%v", b.Position.Y)
	}

	params.CheckFall = false
	b = NewBody(cp.Vector{X: 0, Y: -2.9}, cp.Vector{X: 1, Y: 1})
	if ev := Integrate(&b, newGridQuery(), 0.1, params); ev.Fell {
		t.Fatalf("fall check disabled, expected no event")
	}
}

func TestOverlaps(t *testing.T) {
	unit := cp.BB{L: 0, B: 0, R: 1, T: 1}
	cases := []struct {
		name  string
		other cp.BB
		want  bool
	}{
		{"same", unit, true},
		{"inside", cp.BB{L: 0.25, B: 0.25, R: 0.75, T: 0.75}, true},
		{"edge_right", cp.BB{L: 1, B: 0, R: 2, T: 1}, false},
		{"edge_top", cp.BB{L: 0, B: 1, R: 1, T: 2}, false},
		{"corner", cp.BB{L: 1, B: 1, R: 2, T: 2}, false},
		{"partial", cp.BB{L: 0.9, B: 0.9, R: 2, T: 2}, true},
		{"apart", cp.BB{L: 3, B: 3, R: 4, T: 4}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Overlaps(unit, c.other); got != c.want {
				t.Fatalf("Overlaps(%v, %v) = %v, want %v", unit, c.other, got, c.want)
			}
			if got := Overlaps(c.other, unit); got != c.want {
				t.Fatalf("Overlaps is not symmetric for %v", c.other)
			}
		})
	}
}

func TestNewBodyRejectsInvalidSize(t *testing.T) {
	cases := []cp.Vector{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: -1, Y: 1}, {X: 1, Y: -2}}
	for _, size := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic for size %v", size)
				}
			}()
			NewBody(cp.Vector{}, size)
		}()
	}
}
