package motion

// Input is the per-tick player intent.
type Input struct {
	// JumpPressed is true only on the tick the jump key went down.
	JumpPressed bool
	// Horizontal is the raw axis value in [-1, 1].
	Horizontal float64
}

// InputSource produces one Input per tick.
type InputSource interface {
	Poll() Input
}
