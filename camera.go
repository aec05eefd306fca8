package backdrop

import "math"

// Camera is a perspective camera looking down -Z from Position.
type Camera struct {
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Aspect is the viewport width divided by its height.
	Aspect float64
	// Near and Far bound the visible depth range.
	Near, Far float64
	// Position is the camera location in world space.
	Position Vec3

	focal      float64 // 1 / tan(fov/2), cached
	viewMatrix Mat4
	dirty      bool
}

// newCamera creates a Camera with the configured lens and a 1:1 aspect until
// the first resize.
func newCamera(cfg Config) *Camera {
	return &Camera{
		FOV:      cfg.CameraFOV,
		Aspect:   1,
		Near:     cfg.CameraNear,
		Far:      cfg.CameraFar,
		Position: Vec3{Z: cfg.CameraZ},
		dirty:    true,
	}
}

// SetAspect updates the aspect ratio and marks the projection dirty.
func (c *Camera) SetAspect(aspect float64) {
	if aspect <= 0 || aspect == c.Aspect {
		return
	}
	c.Aspect = aspect
	c.dirty = true
}

// MarkDirty forces a recomputation of the projection and view matrices.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// updateProjection recomputes the cached matrices if dirty.
func (c *Camera) updateProjection() {
	if !c.dirty {
		return
	}
	c.dirty = false
	c.focal = 1 / math.Tan(c.FOV*math.Pi/360)
	c.viewMatrix = Mat4Translation(Vec3{-c.Position.X, -c.Position.Y, -c.Position.Z})
}

// ViewMatrix returns the world-to-camera transform.
func (c *Camera) ViewMatrix() Mat4 {
	c.updateProjection()
	return c.viewMatrix
}

// Project maps a camera-space point onto a target of w×h pixels. depth is the
// distance in front of the camera; ok is false for points outside [Near, Far].
func (c *Camera) Project(v Vec3, w, h int) (sx, sy, depth float64, ok bool) {
	c.updateProjection()
	depth = -v.Z
	if depth < c.Near || depth > c.Far {
		return 0, 0, depth, false
	}
	nx := c.focal / c.Aspect * v.X / depth
	ny := c.focal * v.Y / depth
	sx = (nx + 1) * 0.5 * float64(w)
	sy = (1 - ny) * 0.5 * float64(h)
	return sx, sy, depth, true
}

// clipNear clips the camera-space segment a-b against the near plane.
// It returns false when the whole segment is behind the plane.
func (c *Camera) clipNear(a, b Vec3) (Vec3, Vec3, bool) {
	limit := -c.Near
	ina := a.Z <= limit
	inb := b.Z <= limit
	switch {
	case ina && inb:
		return a, b, true
	case !ina && !inb:
		return a, b, false
	}
	t := (limit - a.Z) / (b.Z - a.Z)
	p := Vec3{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t, limit}
	if ina {
		return a, p, true
	}
	return p, b, true
}
