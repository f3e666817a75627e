package scene

import (
	"errors"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrFull is returned when an actor would exceed the scene capacity.
var ErrFull = errors.New("scene: actor capacity reached")

// Camera is an orbit camera around Target. Angles are degrees; Pan moves the
// eye in world units after the orbit is applied.
type Camera struct {
	Azimuth   float64
	Elevation float64
	Twist     float64
	Zoom      float64
	Pan       r3.Vec
	Target    r3.Vec
}

// DefaultCamera is the start-up view: slightly above and to the side.
func DefaultCamera() Camera {
	return Camera{Azimuth: -25, Elevation: -15, Zoom: 0.5}
}

// Scene is an ordered list of actors. Index 0 is the sampled-motion actor
// once one is loaded.
type Scene struct {
	actors   []*Actor
	capacity int

	Camera     Camera
	Background bool
	Light      bool
	SpotJoint  int // bone to highlight, -1 for none
}

// New returns an empty scene. A capacity <= 0 means unbounded.
func New(capacity int) *Scene {
	return &Scene{
		capacity:   capacity,
		Camera:     DefaultCamera(),
		Background: true,
		SpotJoint:  -1,
	}
}

// Add appends an actor and returns its index.
func (s *Scene) Add(a *Actor) (int, error) {
	if s.capacity > 0 && len(s.actors) >= s.capacity {
		return -1, ErrFull
	}
	s.actors = append(s.actors, a)
	return len(s.actors) - 1, nil
}

// Actor returns the actor at i.
func (s *Scene) Actor(i int) (*Actor, bool) {
	if i < 0 || i >= len(s.actors) {
		return nil, false
	}
	return s.actors[i], true
}

// Actors returns the actor list. The slice is a copy; the actors are not.
func (s *Scene) Actors() []*Actor {
	out := make([]*Actor, len(s.actors))
	copy(out, s.actors)
	return out
}

// Find returns the first actor with the given role.
func (s *Scene) Find(role Role) (*Actor, bool) {
	for _, a := range s.actors {
		if a.Role == role {
			return a, true
		}
	}
	return nil, false
}

func (s *Scene) Len() int { return len(s.actors) }
func (s *Scene) Cap() int { return s.capacity }

// RemoveRoles drops every actor whose role is listed and returns how many
// were removed. Order of the rest is kept.
func (s *Scene) RemoveRoles(roles ...Role) int {
	before := len(s.actors)
	s.actors = slices.DeleteFunc(s.actors, func(a *Actor) bool {
		return slices.Contains(roles, a.Role)
	})
	return before - len(s.actors)
}

// Clear drops every actor.
func (s *Scene) Clear() {
	s.actors = nil
}
