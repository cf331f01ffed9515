package common

const (
	// TPS is the fixed simulation rate.
	TPS = 60
	// FixedDelta is the simulated seconds per tick.
	FixedDelta = 1.0 / TPS

	BaseWidth  = 1280
	BaseHeight = 720

	// PixelsPerUnit scales world units for the top-down viewer.
	PixelsPerUnit = 12.0
)
