package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Vec3 is a world-space point or direction. Y is up; the ground plane is X/Z.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Length() float64      { return math.Sqrt(v.Dot(v)) }
func (v Vec3) SqrLength() float64   { return v.Dot(v) }

// Flat drops the vertical component.
func (v Vec3) Flat() Vec3 { return Vec3{X: v.X, Z: v.Z} }

// Normalized returns the unit vector, or the zero vector for near-zero input.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l < 1e-9 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

func Distance(a, b Vec3) float64 {
	return a.Sub(b).Length()
}

// AngleBetween returns the unsigned angle in degrees between two vectors.
func AngleBetween(a, b Vec3) float64 {
	denom := a.Length() * b.Length()
	if denom < 1e-15 {
		return 0
	}
	c := a.Dot(b) / denom
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c) * 180 / math.Pi
}

// Forward returns the unit facing vector for a yaw about +Y. Yaw 0 faces +Z.
func Forward(yaw float64) Vec3 {
	return Vec3{X: math.Sin(yaw), Z: math.Cos(yaw)}
}

// YawOf returns the yaw that faces along dir on the ground plane.
func YawOf(dir Vec3) float64 {
	return math.Atan2(dir.X, dir.Z)
}

// WrapAngle maps an angle in radians into (-Pi, Pi].
func WrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// LerpAngle interpolates along the shortest arc from a to b.
func LerpAngle(a, b, t float64) float64 {
	return WrapAngle(a + WrapAngle(b-a)*Clamp01(t))
}

// RotateYaw rotates a local offset (x right, z forward) into world space.
func RotateYaw(local Vec3, yaw float64) Vec3 {
	s, c := math.Sincos(yaw)
	return Vec3{
		X: local.X*c + local.Z*s,
		Y: local.Y,
		Z: -local.X*s + local.Z*c,
	}
}
