// Package fixed provides deterministic 16.16 fixed-point arithmetic for the
// relic rendering pipeline. Every value is a signed 32-bit integer holding
// value*65536, giving a range of about ±32768 with 1/65536 resolution,
// the same numeric model the renderer's target hardware used.
package fixed

// Fixed is a signed 16.16 fixed-point number: 16 integer bits, 16
// fractional bits.
type Fixed int32

// Shift is the number of fractional bits.
const Shift = 16

// Scale is the value of 1.0 in fixed-point form.
const Scale = 1 << Shift

// Pre-quantized mathematical constants.
const (
	One    Fixed = Scale
	Pi     Fixed = 205887 // π
	TwoPi  Fixed = 411775 // 2π
	HalfPi Fixed = 102944 // π/2
)

// FromInt converts an integer to fixed-point.
func FromInt(x int) Fixed {
	return Fixed(x) << Shift
}

// FromFloat converts a float64 to fixed-point, truncating toward zero.
func FromFloat(x float64) Fixed {
	return Fixed(x * Scale)
}

// Int truncates a fixed-point value to its integer part.
func (f Fixed) Int() int {
	return int(f >> Shift)
}

// Float converts a fixed-point value to float64.
func (f Fixed) Float() float64 {
	return float64(f) / Scale
}

// Abs returns the absolute value.
func (f Fixed) Abs() Fixed {
	if f < 0 {
		return -f
	}
	return f
}

// Mul multiplies two fixed-point values through a 64-bit intermediate.
// A plain 32-bit multiply overflows for products as small as 0.5*1.0
// (the raw integers exceed 2^31), so all pipeline math must come through
// here rather than multiplying Fixed values directly.
func (f Fixed) Mul(g Fixed) Fixed {
	return Fixed((int64(f) * int64(g)) >> Shift)
}

// Div divides two fixed-point values through a 64-bit intermediate.
// Division by zero is the caller's bug: the pipeline guards every divisor
// (camera-space depth is checked for > 0 before projecting).
func (f Fixed) Div(g Fixed) Fixed {
	return Fixed((int64(f) << Shift) / int64(g))
}

// Vec3 is a 3-component fixed-point vector, used for plane classification
// in the BSP walk.
type Vec3 struct {
	X, Y, Z Fixed
}

// V3 creates a new Vec3.
func V3(x, y, z Fixed) Vec3 {
	return Vec3{x, y, z}
}

// Add returns the vector sum a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns the vector difference a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Dot returns the dot product a · b.
func (a Vec3) Dot(b Vec3) Fixed {
	return a.X.Mul(b.X) + a.Y.Mul(b.Y) + a.Z.Mul(b.Z)
}

// Cross returns the cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y.Mul(b.Z) - a.Z.Mul(b.Y),
		a.Z.Mul(b.X) - a.X.Mul(b.Z),
		a.X.Mul(b.Y) - a.Y.Mul(b.X),
	}
}
