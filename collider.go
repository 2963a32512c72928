package grove

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half-line in world space. Direction should be normalized;
// distances reported by colliders are in units of Direction's length.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Collider is a world-space hit volume attached to an Interactable. grove
// does not simulate physics; colliders exist so that a host without its own
// collision system can still produce FrameSamples.
type Collider interface {
	// Raycast returns the distance to the first intersection in front of the
	// ray origin and the surface normal there.
	Raycast(r Ray) (dist float64, normal mgl64.Vec3, ok bool)
}

// --- Built-in Collider types ---

// HitSphere is a sphere collider.
type HitSphere struct {
	Center mgl64.Vec3
	Radius float64
}

// Raycast intersects the ray with the sphere. A ray starting inside the
// sphere hits the far surface.
func (c HitSphere) Raycast(r Ray) (float64, mgl64.Vec3, bool) {
	oc := r.Origin.Sub(c.Center)
	a := r.Direction.Dot(r.Direction)
	if a == 0 {
		return 0, mgl64.Vec3{}, false
	}
	b := oc.Dot(r.Direction)
	cc := oc.Dot(oc) - c.Radius*c.Radius
	disc := b*b - a*cc
	if disc < 0 {
		return 0, mgl64.Vec3{}, false
	}
	sq := math.Sqrt(disc)
	t := (-b - sq) / a
	if t < 0 {
		t = (-b + sq) / a
	}
	if t < 0 {
		return 0, mgl64.Vec3{}, false
	}
	n := r.At(t).Sub(c.Center)
	if n.Len() > 0 {
		n = n.Normalize()
	}
	return t, n, true
}

// HitBox is an axis-aligned box collider given by its min and max corners.
type HitBox struct {
	Min, Max mgl64.Vec3
}

// Raycast intersects the ray with the box using the slab method.
// Points on the faces are considered inside.
func (c HitBox) Raycast(r Ray) (float64, mgl64.Vec3, bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)
	var enterAxis int
	var enterSign float64

	for i := 0; i < 3; i++ {
		o := r.Origin[i]
		d := r.Direction[i]
		if d == 0 {
			if o < c.Min[i] || o > c.Max[i] {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		t1 := (c.Min[i] - o) / d
		t2 := (c.Max[i] - o) / d
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1.0
		}
		if t1 > tmin {
			tmin = t1
			enterAxis = i
			enterSign = sign
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, mgl64.Vec3{}, false
		}
	}
	if tmax < 0 {
		return 0, mgl64.Vec3{}, false
	}

	var n mgl64.Vec3
	if tmin < 0 {
		// Origin inside the box.
		return 0, n, true
	}
	n[enterAxis] = enterSign
	return tmin, n, true
}

// --- Raycasting ---

// Raycast finds the nearest enabled, live interactable whose collider the
// ray hits within maxDist (maxDist <= 0 means unbounded). Equidistant hits
// resolve to the interactable registered first. Returns false if nothing
// is hit.
func (s *System) Raycast(r Ray, maxDist float64) (Hit, bool) {
	var best Hit
	found := false
	for _, ia := range s.registry.interactables {
		if !ia.Enabled || !ia.IsAlive() || ia.Collider == nil {
			continue
		}
		dist, normal, ok := ia.Collider.Raycast(r)
		if !ok {
			continue
		}
		if maxDist > 0 && dist > maxDist {
			continue
		}
		// Strict comparison keeps the earlier registration on ties.
		if !found || dist < best.Distance {
			best = Hit{Target: ia, Point: r.At(dist), Normal: normal, Distance: dist}
			found = true
		}
	}
	return best, found
}

// NearestHit picks the closest hit among candidates produced by a host's own
// collision system. Dead or disabled targets are skipped; equal distances
// resolve to the earlier registered interactable, matching Raycast.
func NearestHit(candidates []Hit) (Hit, bool) {
	var best Hit
	found := false
	for _, h := range candidates {
		if h.Target == nil || !h.Target.Enabled || !h.Target.IsAlive() {
			continue
		}
		if !found || h.Distance < best.Distance ||
			(h.Distance == best.Distance && h.Target.order < best.Target.order) {
			best = h
			found = true
		}
	}
	return best, found
}
