package quiz

// Player is the media playback collaborator. The engine calls Seek then Play
// only after Ready has been observed, and Pause on every exit from the
// playing phase.
type Player interface {
	// Ready returns a channel that is closed once the current source's
	// metadata has loaded and seeking is possible.
	Ready() <-chan struct{}
	// Load points the player at a new source and re-arms Ready.
	Load(audioRef string) error
	Seek(offsetSeconds float64) error
	Play() error
	Pause() error
}
