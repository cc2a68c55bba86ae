package client

// Reconcile runs the optimistic mutation protocol over a local state
// value: snapshot the prior state, apply the inferred next state
// immediately, then call the backing operation. On success the server's
// authoritative state replaces the guess; on failure the snapshot is
// restored, so callers rendering *state never see a half-applied flip.
func Reconcile[S any](state *S, apply func(S) S, commit func() (S, error)) error {
	snapshot := *state
	*state = apply(snapshot)

	authoritative, err := commit()
	if err != nil {
		*state = snapshot
		return err
	}

	*state = authoritative
	return nil
}
