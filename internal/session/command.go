package session

import (
	"fmt"

	"mocap-player/internal/scene"
)

// Command is one named operation. The concrete types below are the complete
// set; Dispatch runs any of them.
type Command interface {
	Name() string
	command()
}

type (
	LoadActor      struct{ Path string }
	LoadMotion     struct{ Path string }
	ClearKeyframes struct{}
	Interpolate    struct{}
	Reset          struct{}
	Play           struct{}
	Pause          struct{}
	Repeat         struct{}
	Rewind         struct{}
	Locate         struct{}

	// AddKeyframe keys Frame, or the cursor when AtCursor is set.
	AddKeyframe struct {
		Frame    int
		AtCursor bool
	}

	// Tick runs Count playback steps; zero means one.
	Tick struct{ Count int }

	Scrub             struct{ Frame int }
	SetFrameIncrement struct{ N int }

	SetTimeOffset struct {
		Subject int
		Offset  int
	}

	SetTransform struct {
		Subject   int
		Transform scene.Transform
	}
)

func (LoadActor) Name() string         { return "load_actor" }
func (LoadMotion) Name() string        { return "load_motion" }
func (AddKeyframe) Name() string       { return "add_keyframe" }
func (ClearKeyframes) Name() string    { return "clear_keyframes" }
func (Interpolate) Name() string       { return "interpolate" }
func (Reset) Name() string             { return "reset" }
func (Play) Name() string              { return "play" }
func (Pause) Name() string             { return "pause" }
func (Repeat) Name() string            { return "repeat" }
func (Rewind) Name() string            { return "rewind" }
func (Locate) Name() string            { return "locate" }
func (Tick) Name() string              { return "tick" }
func (Scrub) Name() string             { return "scrub" }
func (SetFrameIncrement) Name() string { return "set_frame_increment" }
func (SetTimeOffset) Name() string     { return "set_time_offset" }
func (SetTransform) Name() string      { return "set_transform" }

func (LoadActor) command()         {}
func (LoadMotion) command()        {}
func (AddKeyframe) command()       {}
func (ClearKeyframes) command()    {}
func (Interpolate) command()       {}
func (Reset) command()             {}
func (Play) command()              {}
func (Pause) command()             {}
func (Repeat) command()            {}
func (Rewind) command()            {}
func (Locate) command()            {}
func (Tick) command()              {}
func (Scrub) command()             {}
func (SetFrameIncrement) command() {}
func (SetTimeOffset) command()     {}
func (SetTransform) command()      {}

// Dispatch runs one command. Rejections the operator should see (a full
// keyframe set, a locked offset) come back as errors; no-ops do not.
func (s *Session) Dispatch(c Command) error {
	switch c := c.(type) {
	case LoadActor:
		return s.LoadActor(c.Path)
	case LoadMotion:
		return s.LoadMotion(c.Path)
	case AddKeyframe:
		var err error
		if c.AtCursor {
			_, err = s.AddKeyframeAtCursor()
		} else {
			_, err = s.AddKeyframe(c.Frame)
		}
		return err
	case ClearKeyframes:
		s.ClearKeyframes()
	case Interpolate:
		_, _, err := s.Interpolate()
		return err
	case Reset:
		s.Reset()
	case Play:
		s.Play()
	case Pause:
		s.Pause()
	case Repeat:
		s.Repeat()
	case Rewind:
		s.Rewind()
	case Locate:
		s.Locate()
	case Tick:
		n := max(c.Count, 1)
		for range n {
			s.Tick()
		}
	case Scrub:
		s.Scrub(c.Frame)
	case SetFrameIncrement:
		s.SetFrameIncrement(c.N)
	case SetTimeOffset:
		return s.SetTimeOffset(c.Subject, c.Offset)
	case SetTransform:
		return s.SetActorTransform(c.Subject, c.Transform)
	default:
		return fmt.Errorf("session: unknown command %T", c)
	}
	return nil
}
