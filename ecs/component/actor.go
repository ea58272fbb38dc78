package component

import "fmt"

// ActorKind selects the behaviour row an actor uses in the physics and
// rules tables.
type ActorKind uint8

const (
	ActorPlayer ActorKind = iota + 1
	ActorEnemy
	ActorPickup
	ActorObstacle
	ActorFlag
)

var actorKindNames = map[ActorKind]string{
	ActorPlayer:   "player",
	ActorEnemy:    "enemy",
	ActorPickup:   "pickup",
	ActorObstacle: "obstacle",
	ActorFlag:     "flag",
}

func (k ActorKind) String() string {
	if name, ok := actorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ActorKind(%d)", uint8(k))
}

func ParseActorKind(name string) (ActorKind, error) {
	for k, n := range actorKindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("component: unknown actor kind %q", name)
}

type Actor struct {
	Kind ActorKind
}

var ActorComponent = NewComponent[Actor]()
