package render

import "github.com/taigrr/relic/pkg/fixed"

// Observer holds the camera parameters the interaction loop mutates between
// frames: viewing angles in whole degrees, wrapped into [0, 360), and the
// distance from the model origin along the view axis.
type Observer struct {
	AngleH   int // horizontal rotation, degrees
	AngleV   int // vertical rotation, degrees
	AngleW   int // screen roll, degrees
	Distance fixed.Fixed
}

// DefaultObserver returns the starting viewpoint.
func DefaultObserver() Observer {
	return Observer{
		AngleH:   30,
		AngleV:   20,
		AngleW:   0,
		Distance: fixed.FromInt(30),
	}
}

// WorldPosition returns the observer's location in model space, used by the
// BSP walk to classify the camera against partition planes.
func (o Observer) WorldPosition() fixed.Vec3 {
	sinH := fixed.Radians(o.AngleH).Sin()
	cosH := fixed.Radians(o.AngleH).Cos()
	sinV := fixed.Radians(o.AngleV).Sin()
	cosV := fixed.Radians(o.AngleV).Cos()
	return fixed.Vec3{
		X: o.Distance.Mul(cosH.Mul(cosV)),
		Y: o.Distance.Mul(sinH.Mul(cosV)),
		Z: o.Distance.Mul(sinV),
	}
}

// Viewport carries the projection surface parameters: pixel dimensions and
// the perspective scale numerator.
type Viewport struct {
	Width  int
	Height int
	Scale  fixed.Fixed
}

// DefaultViewport matches the original 320x200 raster with its hardcoded
// projection scale of 100.
func DefaultViewport() Viewport {
	return Viewport{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Scale:  fixed.FromInt(100),
	}
}

// Center returns the screen center in fixed-point.
func (v Viewport) Center() (cx, cy fixed.Fixed) {
	return fixed.FromInt(v.Width / 2), fixed.FromInt(v.Height / 2)
}
