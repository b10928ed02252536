package event

type Cue string

const (
	CueShot        Cue = "shot"
	CueHit         Cue = "hit"
	CueDeath       Cue = "death"
	CuePlayerDeath Cue = "player_death"
)

// Cues lists every cue the simulation can request.
func Cues() []Cue {
	return []Cue{CueShot, CueHit, CueDeath, CuePlayerDeath}
}

func (c Cue) String() string {
	return string(c)
}
