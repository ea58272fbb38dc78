package component

import "fmt"

type ObstacleKind uint8

const (
	ObstacleBrick ObstacleKind = iota + 1
	ObstacleBonus
)

func (k ObstacleKind) String() string {
	switch k {
	case ObstacleBrick:
		return "brick"
	case ObstacleBonus:
		return "bonus"
	}
	return fmt.Sprintf("ObstacleKind(%d)", uint8(k))
}

func ParseObstacleKind(name string) (ObstacleKind, error) {
	switch name {
	case "brick":
		return ObstacleBrick, nil
	case "bonus":
		return ObstacleBonus, nil
	}
	return 0, fmt.Errorf("component: unknown obstacle kind %q", name)
}

// Obstacle is a static block that can be bumped from below. RestY is the
// resting bottom edge; the body may sit above it while the bump plays.
type Obstacle struct {
	Kind      ObstacleKind
	Destroyed bool
	RestY     float64
	// Contents is the pickup prefab a bonus block releases.
	Contents string
	Used     bool

	// Pending is set by the resolver on an upward hit and consumed by the
	// obstacle system in the same tick.
	Pending  bool
	HitLevel int
}

var ObstacleComponent = NewComponent[Obstacle]()
