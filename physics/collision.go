package physics

import (
	"math"

	"github.com/tiaohai/splash/parameter"
	"github.com/tiaohai/splash/vmath"
)

// ElasticCollision resolves two approaching spheres in place
// Returns false when the bodies are coincident or already separating
func ElasticCollision(posA, posB, velA, velB *vmath.Vec3, massA, massB, restitution float64) bool {
	delta := posB.Sub(*posA)
	dist := delta.Len()
	if dist == 0 {
		return false
	}
	n := delta.Mul(1 / dist)

	vn := velA.Sub(*velB).Dot(n)
	if vn <= 0 {
		return false
	}

	invA := 1.0 / massA
	invB := 1.0 / massB
	j := (1.0 + restitution) * vn / (invA + invB)

	*velA = velA.Sub(n.Mul(j * invA))
	*velB = velB.Add(n.Mul(j * invB))
	return true
}

// SeparateOverlap pushes overlapping spheres apart, heavier body moves less
func SeparateOverlap(posA, posB *vmath.Vec3, radiusA, radiusB, massA, massB float64) bool {
	delta := posB.Sub(*posA)
	distSq := delta.Dot(delta)
	minDist := radiusA + radiusB
	if distSq >= minDist*minDist || distSq == 0 {
		return false
	}

	dist := math.Sqrt(distSq)
	n := delta.Mul(1 / dist)
	push := minDist - dist + parameter.SeparationMargin

	total := massA + massB
	*posA = posA.Sub(n.Mul(push * massB / total))
	*posB = posB.Add(n.Mul(push * massA / total))
	return true
}

// ReflectFloor clamps a sphere above the floor plane and bounces its vertical velocity
func ReflectFloor(pos, vel *vmath.Vec3, radius, floorY, restitution float64) bool {
	if pos[1]-radius >= floorY {
		return false
	}
	pos[1] = floorY + radius
	if vel[1] < 0 {
		vel[1] = -vel[1] * restitution
	}
	return true
}
