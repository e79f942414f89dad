package vmath

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is the float64 3D vector used across the scene
type Vec3 = mgl64.Vec3

// V3 builds a Vec3 from components
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// RandRange returns a uniform value in [lo, lo+span)
func RandRange(rng *rand.Rand, lo, span float64) float64 {
	return lo + rng.Float64()*span
}

// Jitter returns a uniform value in [-spread/2, spread/2)
func Jitter(rng *rand.Rand, spread float64) float64 {
	return (rng.Float64() - 0.5) * spread
}

// RandomUnitSphere samples a point uniformly on the unit sphere
// angle in [0, 2π), z in [-1, 1], planar radius √(1-z²)
func RandomUnitSphere(rng *rand.Rand) Vec3 {
	angle := rng.Float64() * 2 * math.Pi
	z := rng.Float64()*2 - 1
	r := math.Sqrt(1 - z*z)
	return Vec3{r * math.Cos(angle), r * math.Sin(angle), z}
}

// ScaleXZ multiplies only the horizontal components
func ScaleXZ(v Vec3, f float64) Vec3 {
	return Vec3{v[0] * f, v[1], v[2] * f}
}

// Finite reports whether every component is a finite number
func Finite(v Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
