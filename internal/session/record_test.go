package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mocap-player/internal/log"
	"mocap-player/internal/playback"
)

func frameNumbers(t *testing.T, s *Session, limit int) []int {
	t.Helper()
	snaps, err := s.Record(limit)
	require.NoError(t, err)
	var out []int
	for _, sn := range snaps {
		out = append(out, sn.Frame)
	}
	return out
}

func TestRecordStopsAtSpanEnd(t *testing.T) {
	s := newSession(t, 10)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, frameNumbers(t, s, 0))
	assert.Equal(t, playback.Stopped, s.State())

	s.Scrub(0)
	s.SetFrameIncrement(4)
	assert.Equal(t, []int{0, 4, 8}, frameNumbers(t, s, 0))
}

func TestRecordWithRepeatNeedsLimit(t *testing.T) {
	s := newSession(t, 6)
	s.Repeat()
	_, err := s.Record(0)
	assert.ErrorIs(t, err, ErrUnbounded)

	assert.Equal(t, []int{0, 1, 2, 3, 4, 0, 1}, frameNumbers(t, s, 7))
}

func TestRecordCarriesActors(t *testing.T) {
	s := newSession(t, 12)
	addKeys(t, s, 2, 9)
	_, ok, err := s.Interpolate()
	require.NoError(t, err)
	require.True(t, ok)

	snaps, err := s.Record(0)
	require.NoError(t, err)
	require.NotEmpty(t, snaps)
	assert.Equal(t, 2, snaps[0].Frame)
	assert.Equal(t, s.Scene().Len(), len(snaps[0].Actors))
}

func TestRecordWithoutMotion(t *testing.T) {
	s := New(Options{Logger: log.Discard()})
	_, err := s.Record(3)
	assert.ErrorIs(t, err, ErrNoMotion)
}
