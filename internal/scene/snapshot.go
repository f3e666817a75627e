package scene

import "gonum.org/v1/gonum/spatial/r3"

// Segment is a drawable bone in world space.
type Segment struct {
	Bone       int
	Start, End r3.Vec
}

// ActorView is the frozen, world-space form of an actor.
type ActorView struct {
	Role     Role
	Color    Color
	Root     r3.Vec
	Segments []Segment
}

// Snapshot is an immutable copy of everything a renderer needs for one frame.
// It shares nothing with the live scene, so it can be handed to a worker.
type Snapshot struct {
	Frame      int
	Camera     Camera
	Background bool
	Light      bool
	SpotJoint  int
	Actors     []ActorView
}

// Snapshot freezes the scene at the given frame label.
func (s *Scene) Snapshot(frame int) Snapshot {
	snap := Snapshot{
		Frame:      frame,
		Camera:     s.Camera,
		Background: s.Background,
		Light:      s.Light,
		SpotJoint:  s.SpotJoint,
		Actors:     make([]ActorView, 0, len(s.actors)),
	}
	for _, a := range s.actors {
		snap.Actors = append(snap.Actors, a.View())
	}
	return snap
}

// View freezes one actor.
func (a *Actor) View() ActorView {
	pose := a.WorldPose()
	v := ActorView{Role: a.Role, Color: a.Color}
	if len(pose.End) > 0 {
		v.Root = pose.End[0]
	}
	for i := range pose.Start {
		if a.Skeleton.Bones[i].Parent < 0 {
			continue
		}
		v.Segments = append(v.Segments, Segment{Bone: i, Start: pose.Start[i], End: pose.End[i]})
	}
	return v
}
