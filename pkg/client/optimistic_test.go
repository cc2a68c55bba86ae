package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileAdoptsServerTruth(t *testing.T) {
	state := PostState{Liked: false, LikeCount: 3}

	var observed PostState
	err := Reconcile(&state,
		func(s PostState) PostState {
			s.Liked = true
			s.LikeCount++
			return s
		},
		func() (PostState, error) {
			// The optimistic guess must already be visible mid-flight.
			observed = state
			// Server truth disagrees with the guess: someone else liked too.
			return PostState{Liked: true, LikeCount: 5}, nil
		})

	require.NoError(t, err)
	assert.Equal(t, PostState{Liked: true, LikeCount: 4}, observed)
	assert.Equal(t, PostState{Liked: true, LikeCount: 5}, state)
}

func TestReconcileRestoresSnapshotOnFailure(t *testing.T) {
	original := PostState{Liked: true, Shared: true, LikeCount: 7, ShareCount: 2}
	state := original

	err := Reconcile(&state,
		func(s PostState) PostState {
			s.Liked = false
			s.LikeCount--
			return s
		},
		func() (PostState, error) {
			return PostState{}, errors.New("server unavailable")
		})

	require.Error(t, err)
	assert.Equal(t, original, state)
}
