package component

// Sound names a one-shot cue carried by ecs.EventSound.
type Sound string

const (
	SoundJump    Sound = "jump"
	SoundStomp   Sound = "stomp"
	SoundPowerUp Sound = "powerup"
	SoundDamage  Sound = "damage"
	SoundDeath   Sound = "death"
	SoundFlag    Sound = "flag"
	SoundBump    Sound = "bump"
	SoundBreak   Sound = "break"
)

// Sounds lists every cue in a stable order.
var Sounds = []Sound{SoundJump, SoundStomp, SoundPowerUp, SoundDamage, SoundDeath, SoundFlag, SoundBump, SoundBreak}
