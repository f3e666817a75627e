package session

import "errors"

var (
	// ErrNoActor is returned when an operation needs a loaded skeleton.
	ErrNoActor = errors.New("session: no actor loaded")

	// ErrNoMotion is returned when an operation needs a loaded motion.
	ErrNoMotion = errors.New("session: no motion loaded")

	// ErrOffsetLocked is returned when the time offset is changed after an
	// interpolated motion exists.
	ErrOffsetLocked = errors.New("session: time offset is locked after interpolation")

	// ErrNoSubject is returned for an actor index outside the scene.
	ErrNoSubject = errors.New("session: no such subject")

	// ErrUnbounded is returned by Record when repeat is on and no limit is
	// given.
	ErrUnbounded = errors.New("session: recording with repeat needs a frame limit")
)
