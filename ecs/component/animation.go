package component

// Animation is a timed frame counter. A non-looping animation despawns its
// entity once it has wrapped Repeats times.
type Animation struct {
	FrameCount    int
	FrameDuration float64
	Current       int
	Elapsed       float64
	Loop          bool
	Repeats       int
}

var AnimationComponent = NewComponent[Animation]()
