package state

// Snapshot is an immutable view of the committed state.
type Snapshot struct {
	values map[Key]any
	counts map[Kind]int64
	round  uint64
}

func newSnapshot(values map[Key]any, counts map[Kind]int64, round uint64) *Snapshot {
	return &Snapshot{values: values, counts: counts, round: round}
}

func (s *Snapshot) Get(key Key) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *Snapshot) Count(kind Kind) int64 {
	return s.counts[kind]
}

// Round returns the round number the snapshot was committed in.
func (s *Snapshot) Round() uint64 {
	return s.round
}

// Len returns the total number of values in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.values)
}
