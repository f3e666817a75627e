// Package session is the application context of the player: it owns the
// skeleton, the sampled and interpolated motions, the keyframe set, the
// playback controller and the display scene, and exposes the named
// operations a UI or script drives it with.
package session

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"mocap-player/internal/amc"
	"mocap-player/internal/interp"
	"mocap-player/internal/keyframe"
	"mocap-player/internal/log"
	"mocap-player/internal/motion"
	"mocap-player/internal/playback"
	"mocap-player/internal/scene"
	"mocap-player/internal/skeleton"
)

// Offsets applied on interpolation so the sampled and interpolated actors
// stand side by side, in skeleton file units.
const (
	SampledShift      = 30
	InterpolatedShift = 60
)

// Store selects a posture store.
type Store int

const (
	StoreSampled Store = iota
	StoreInterpolated
)

// Options configures a session.
type Options struct {
	Scale          float64
	MaxSkeletons   int
	FrameIncrement int
	Interp         interp.Options
	Logger         *slog.Logger
}

// DefaultOptions mirrors the defaults of the config package.
func DefaultOptions() Options {
	return Options{
		Scale:          0.06,
		MaxSkeletons:   keyframe.DefaultMaxSkeletons,
		FrameIncrement: 1,
	}
}

// Session is single-owner and not safe for concurrent use. Renderers that
// run in parallel take a scene.Snapshot instead.
type Session struct {
	opts Options
	log  *slog.Logger

	skeleton *skeleton.Skeleton
	sampled  *motion.Motion
	interp   *interp.Result
	keys     *keyframe.Set
	player   *playback.Controller
	scene    *scene.Scene

	actorPath  string
	motionPath string
}

// New returns an empty session.
func New(opts Options) *Session {
	if opts.MaxSkeletons <= 0 {
		opts.MaxSkeletons = keyframe.DefaultMaxSkeletons
	}
	if opts.Scale <= 0 {
		opts.Scale = DefaultOptions().Scale
	}
	if opts.Logger == nil {
		opts.Logger = log.L()
	}
	s := &Session{opts: opts, log: opts.Logger.With("component", "session")}
	s.init()
	return s
}

func (s *Session) init() {
	s.keys = keyframe.NewSet(keyframe.CapacityFor(s.opts.MaxSkeletons))
	s.player = playback.New(0, 0)
	s.player.SetIncrement(s.opts.FrameIncrement)
	var cam *scene.Camera
	if s.scene != nil {
		c := s.scene.Camera
		cam = &c
	}
	s.scene = scene.New(actorCapacity(s.opts.MaxSkeletons))
	if cam != nil {
		s.scene.Camera = *cam
	}
}

// actorCapacity fits the sampled actor, one preview per keyframe and the
// two synthetic previews plus the interpolated actor added by a pass.
func actorCapacity(maxSkeletons int) int {
	return 1 + keyframe.CapacityFor(maxSkeletons) + keyframe.Reserved
}

// Skeleton returns the loaded skeleton, nil before LoadActor.
func (s *Session) Skeleton() *skeleton.Skeleton { return s.skeleton }

// Sampled returns the sampled motion, nil before LoadMotion.
func (s *Session) Sampled() *motion.Motion { return s.sampled }

// Interpolated returns the last interpolation result, nil until one ran.
func (s *Session) Interpolated() *interp.Result { return s.interp }

// Scene returns the display actors and camera.
func (s *Session) Scene() *scene.Scene { return s.scene }

// Player returns the playback controller.
func (s *Session) Player() *playback.Controller { return s.player }

// Keyframes returns a copy of the keyframe set in its current order.
func (s *Session) Keyframes() []int { return s.keys.Frames() }

// Frame returns the playback cursor.
func (s *Session) Frame() int { return s.player.Frame() }

// State returns the playback state.
func (s *Session) State() playback.State { return s.player.State() }

// ActorPath and MotionPath return the loaded file paths, empty when unset.
func (s *Session) ActorPath() string  { return s.actorPath }
func (s *Session) MotionPath() string { return s.motionPath }

// Options returns the options the session runs with.
func (s *Session) Options() Options { return s.opts }

// LoadActor reads a skeleton and shows it in its base posture. It is a no-op
// while a skeleton is loaded; Reset first to swap it.
func (s *Session) LoadActor(path string) error {
	if s.skeleton != nil {
		s.log.Debug("actor already loaded", "path", s.actorPath)
		return nil
	}
	sk, err := skeleton.Load(path, s.opts.Scale)
	if err != nil {
		return err
	}
	if _, err := s.scene.Add(scene.NewActor(sk, scene.RoleSampled, scene.ColorSampled)); err != nil {
		return err
	}
	s.skeleton = sk
	s.actorPath = path
	s.player.Scrub(0)
	s.log.Info("actor loaded", "path", path, "bones", sk.NumBones())
	return nil
}

// LoadMotion reads sampled motion for the loaded skeleton. It is a no-op
// while a motion is loaded.
func (s *Session) LoadMotion(path string) error {
	if s.skeleton == nil {
		return ErrNoActor
	}
	if s.sampled != nil {
		s.log.Debug("motion already loaded", "path", s.motionPath)
		return nil
	}
	m, err := amc.Parse(path, s.skeleton)
	if err != nil {
		return err
	}
	s.sampled = m
	s.motionPath = path
	s.player.SetSpan(0, s.sampledSpan())
	s.player.Scrub(0)
	s.refresh()
	s.log.Info("motion loaded", "path", path, "frames", m.NumFrames())
	return nil
}

// sampledSpan is the frame count playable before interpolation: frames
// [0, NumFrames-1-offset].
func (s *Session) sampledSpan() int {
	n := s.sampled.NumFrames() - s.sampled.Offset()
	if n < 1 {
		n = 1
	}
	return n
}

// AddKeyframe records frame and adds a preview actor showing the sampled
// posture there. A duplicate returns false without error; a full set
// returns keyframe.ErrFull and a frame past the motion keyframe.ErrFrameRange.
func (s *Session) AddKeyframe(frame int) (bool, error) {
	if s.skeleton == nil {
		return false, ErrNoActor
	}
	if s.sampled == nil {
		return false, ErrNoMotion
	}
	if n := s.sampled.NumFrames(); frame >= n {
		s.log.Warn("keyframe rejected", "frame", frame, "frames", n)
		return false, fmt.Errorf("%w: frame %d of %d", keyframe.ErrFrameRange, frame, n)
	}
	added, err := s.keys.Add(frame)
	if err != nil {
		s.log.Warn("keyframe rejected", "frame", frame, "err", err)
		return false, err
	}
	if !added {
		return false, nil
	}
	if err := s.addPreview(frame, scene.RoleKeyframe); err != nil {
		return false, err
	}
	s.log.Debug("keyframe added", "frame", frame, "count", s.keys.Len())
	return true, nil
}

// AddKeyframeAtCursor keys the current frame shifted by the sampled offset.
func (s *Session) AddKeyframeAtCursor() (bool, error) {
	off := 0
	if s.sampled != nil {
		off = s.sampled.Offset()
	}
	return s.AddKeyframe(s.player.Frame() + off)
}

func (s *Session) addPreview(frame int, role scene.Role) error {
	a := scene.NewActor(s.skeleton, role, scene.ColorKeyframe)
	a.Frame = frame
	a.SetPosture(s.sampled.Posture(frame))
	if _, err := s.scene.Add(a); err != nil {
		return fmt.Errorf("session: preview for frame %d: %w", frame, err)
	}
	return nil
}

// ClearKeyframes empties the keyframe set and drops the preview actors. An
// existing interpolated motion is kept.
func (s *Session) ClearKeyframes() {
	s.keys.Clear()
	n := s.scene.RemoveRoles(scene.RoleKeyframe, scene.RoleSynthetic)
	s.log.Debug("keyframes cleared", "previews", n)
}

// Interpolate builds the interpolated motion from the keyframe set. The
// second result is false when nothing happened: fewer than two keyframes,
// no motion, or an interpolated motion already exists (it is returned).
func (s *Session) Interpolate() (*interp.Result, bool, error) {
	if s.interp != nil {
		return s.interp, false, nil
	}
	if s.sampled == nil || s.keys.Len() < 2 {
		return nil, false, nil
	}

	offset := s.sampled.Offset()
	s.sampled.SetTimeOffset(0)
	res, err := interp.Interpolate(s.keys.Frames(), s.sampled, s.opts.Interp)
	if err != nil {
		s.sampled.SetTimeOffset(offset)
		return nil, false, err
	}

	previews := make([]*scene.Actor, 0, len(res.Synthetic))
	for _, f := range res.Synthetic {
		a := scene.NewActor(s.skeleton, scene.RoleSynthetic, scene.ColorKeyframe)
		a.Frame = f
		a.SetPosture(s.sampled.Posture(f))
		previews = append(previews, a)
	}
	base, _ := s.scene.Find(scene.RoleSampled)
	ia := scene.NewActor(s.skeleton, scene.RoleInterpolated, scene.ColorInterpolated)
	ia.Transform = base.Transform
	ia.Transform.Tx += InterpolatedShift

	if free := s.scene.Cap() - s.scene.Len(); free < len(previews)+1 {
		s.sampled.SetTimeOffset(offset)
		return nil, false, fmt.Errorf("session: interpolation needs %d actors, %d free: %w", len(previews)+1, free, scene.ErrFull)
	}

	// nothing below fails
	s.keys.Pad()
	for _, a := range append(previews, ia) {
		s.scene.Add(a)
	}
	base.Transform.Tx += SampledShift

	s.interp = res
	s.player.SetSpan(res.FirstFrame, res.MaxFrames)
	s.player.Scrub(res.FirstFrame)
	s.refresh()

	s.log.Info("interpolated",
		"keys", res.Keys,
		"synthetic", res.Synthetic,
		"first", res.FirstFrame,
		"frames", res.MaxFrames,
		"rotation", s.opts.Interp.Rotation.String(),
	)
	return res, true, nil
}

// Tick advances playback by one step and refreshes the actors.
func (s *Session) Tick() int {
	if s.sampled == nil {
		return s.player.Frame()
	}
	f := s.player.Tick()
	s.refresh()
	return f
}

// Scrub jumps to frame and stops playback.
func (s *Session) Scrub(frame int) {
	if s.sampled == nil {
		return
	}
	s.player.Scrub(frame)
	s.refresh()
}

// SetFrameIncrement sets the per-tick advance, minimum one.
func (s *Session) SetFrameIncrement(n int) {
	s.opts.FrameIncrement = n
	s.player.SetIncrement(n)
}

// SetTimeOffset sets the sampled motion offset and recomputes the playable
// span. subject is the actor whose display is refreshed.
func (s *Session) SetTimeOffset(subject, offset int) error {
	if s.interp != nil {
		return ErrOffsetLocked
	}
	if s.sampled == nil {
		return ErrNoMotion
	}
	a, ok := s.scene.Actor(subject)
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoSubject, subject)
	}
	s.sampled.SetTimeOffset(offset)
	s.player.SetSpan(0, s.sampledSpan())
	a.SetPosture(s.sampled.Posture(s.player.Frame()))
	s.log.Info("time offset", "subject", subject, "offset", offset)
	return nil
}

// SetActorTransform moves and turns one actor.
func (s *Session) SetActorTransform(subject int, t scene.Transform) error {
	a, ok := s.scene.Actor(subject)
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoSubject, subject)
	}
	a.Transform = t
	return nil
}

// Play starts playback. Play, Pause, Repeat and Rewind do nothing until
// a motion is loaded.
func (s *Session) Play() {
	if s.sampled != nil {
		s.player.Play()
	}
}

// Pause stops playback and clears repeat.
func (s *Session) Pause() {
	if s.sampled != nil {
		s.player.Pause()
	}
}

// Repeat starts looping playback over the span.
func (s *Session) Repeat() {
	if s.sampled != nil {
		s.player.RepeatOn()
	}
}

// Rewind returns the cursor to the start of the span on the next tick.
func (s *Session) Rewind() {
	if s.sampled != nil {
		s.player.Rewind()
	}
}

// Posture returns the posture of a store at frame. ok is false when the
// store does not exist yet.
func (s *Session) Posture(store Store, frame int) (motion.Posture, bool) {
	switch store {
	case StoreSampled:
		if s.sampled != nil {
			return s.sampled.Posture(frame), true
		}
	case StoreInterpolated:
		if s.interp != nil {
			return s.interp.Motion.Posture(frame), true
		}
	}
	return motion.Posture{}, false
}

// Locate points the camera at the sampled actor's root on the ground plane.
func (s *Session) Locate() {
	if s.sampled == nil {
		return
	}
	base, ok := s.scene.Find(scene.RoleSampled)
	if !ok {
		return
	}
	root := base.RootPosition()
	s.scene.Camera.Zoom = 1
	s.scene.Camera.Target = r3.Vec{X: root.X, Z: root.Z}
}

// Reset drops the skeleton, both motions, the keyframes and every actor.
// The camera is kept.
func (s *Session) Reset() {
	s.skeleton = nil
	s.sampled = nil
	s.interp = nil
	s.actorPath = ""
	s.motionPath = ""
	s.init()
	s.log.Info("session reset")
}

// refresh poses the sampled and interpolated actors at the cursor.
func (s *Session) refresh() {
	f := s.player.Frame()
	if a, ok := s.scene.Find(scene.RoleSampled); ok && s.sampled != nil {
		a.SetPosture(s.sampled.Posture(f))
	}
	if a, ok := s.scene.Find(scene.RoleInterpolated); ok && s.interp != nil {
		a.SetPosture(s.interp.Motion.Posture(f))
	}
}
