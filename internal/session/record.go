package session

import (
	"mocap-player/internal/playback"
	"mocap-player/internal/scene"
)

// Snapshot captures the scene at the cursor.
func (s *Session) Snapshot() scene.Snapshot {
	return s.scene.Snapshot(s.player.Frame())
}

// Record plays from the cursor and collects one snapshot per displayed frame
// until playback stops. limit caps the number of snapshots; zero means no
// cap, which is rejected while repeat is on.
func (s *Session) Record(limit int) ([]scene.Snapshot, error) {
	if s.sampled == nil {
		return nil, ErrNoMotion
	}
	if limit <= 0 && s.player.Repeat() {
		return nil, ErrUnbounded
	}
	if s.player.State() != playback.Playing {
		s.player.Play()
	}
	s.refresh()

	var out []scene.Snapshot
	for {
		out = append(out, s.Snapshot())
		if limit > 0 && len(out) >= limit {
			break
		}
		s.Tick()
		if s.player.State() == playback.Stopped {
			break
		}
	}
	s.log.Debug("recorded", "frames", len(out), "last", s.player.Frame())
	return out, nil
}
