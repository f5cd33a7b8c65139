package state

import (
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/hashgraph/hedera-services-sub009/keyvaluedb"
)

type (
	// State keeps the committed ledger snapshot and the uncommitted changes of the current block.
	//
	// State can be changed by calling Apply function with one or more Action function. Savepoint
	// method can be used to add a special marker to the state that allows all actions that are
	// executed after savepoint was established to be rolled back. In other words, savepoint lets
	// you roll back part of the state changes instead of the entire state. Calling Commit makes
	// the changes permanent (and persists them when State is backed by a database).
	State struct {
		mutex     sync.RWMutex
		committed *Snapshot
		newValue  ValueConstructor
		db        keyvaluedb.KeyValueDB

		// savepoints[0] holds the block changes, each following layer is a nested savepoint.
		savepoints []*layer
	}

	// Key of a value in the state. The first byte is the Kind of the value.
	Key string

	// Kind groups values of the same type, e.g. accounts.
	Kind byte

	Reader interface {
		// Get returns the value stored under key. Returned value is shared and must not be modified.
		Get(key Key) (any, bool)
		// Count returns the number of values of given kind.
		Count(kind Kind) int64
	}

	Writer interface {
		Reader
		Put(key Key, value any)
		Delete(key Key)
	}

	// ValueConstructor returns pointer to an empty value a persisted record of given key
	// can be decoded into.
	ValueConstructor func(key Key) (any, error)

	layer struct {
		values map[Key]entry
		counts map[Kind]int64
	}

	entry struct {
		value   any
		deleted bool
	}
)

// metaRoundKey stores the round number of the committed state, KindMeta is never counted.
const (
	KindMeta     Kind = 0
	metaRoundKey Key  = "\x00round"
)

var ErrUncommittedSavepoints = errors.New("state has unreleased savepoints")

func (k Key) Kind() Kind {
	if len(k) == 0 {
		return KindMeta
	}
	return Kind(k[0])
}

func NewEmptyState(opts ...Option) *State {
	options := loadOptions(opts...)
	return &State{
		committed:  newSnapshot(make(map[Key]any), make(map[Kind]int64), 0),
		newValue:   options.valueConstructor,
		db:         options.db,
		savepoints: []*layer{newLayer()},
	}
}

// New creates State backed by the database in options. Existing records are loaded
// into the committed snapshot.
func New(opts ...Option) (*State, error) {
	s := NewEmptyState(opts...)
	if s.db == nil {
		return s, nil
	}
	if s.newValue == nil {
		return nil, fmt.Errorf("value constructor is required to load state from database")
	}
	snap, err := loadSnapshot(s.db, s.newValue)
	if err != nil {
		return nil, fmt.Errorf("loading state from database: %w", err)
	}
	s.committed = snap
	return s, nil
}

func loadSnapshot(db keyvaluedb.KeyValueDB, newValue ValueConstructor) (_ *Snapshot, err error) {
	values := make(map[Key]any)
	counts := make(map[Kind]int64)
	var round uint64

	it := db.First()
	defer func() { err = errors.Join(err, it.Close()) }()
	for ; it.Valid(); it.Next() {
		key := Key(it.Key())
		if key == metaRoundKey {
			if err := it.Value(&round); err != nil {
				return nil, fmt.Errorf("decoding round: %w", err)
			}
			continue
		}
		v, err := newValue(key)
		if err != nil {
			return nil, fmt.Errorf("constructing value for key %x: %w", []byte(key), err)
		}
		if err := it.Value(v); err != nil {
			return nil, fmt.Errorf("decoding value for key %x: %w", []byte(key), err)
		}
		values[key] = v
		counts[key.Kind()]++
	}
	return newSnapshot(values, counts, round), nil
}

func newLayer() *layer {
	return &layer{values: make(map[Key]entry), counts: make(map[Kind]int64)}
}

// Snapshot returns the committed state. Snapshot never changes, later commits create a new one.
func (s *State) Snapshot() *Snapshot {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.committed
}

// Get returns the value of key from the latest savepoint.
func (s *State) Get(key Key) (any, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.get(key)
}

// Count returns number of values of kind in the latest savepoint.
func (s *State) Count(kind Kind) int64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.count(kind)
}

// Apply applies given actions to the state. All Action functions are executed together as a
// single atomic operation. If any of the Action functions returns an error all previous state
// changes made by any of the action function will be reverted.
func (s *State) Apply(actions ...Action) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	id := s.createSavepoint()
	w := &latestView{s: s}
	for _, action := range actions {
		if err := action(w); err != nil {
			s.rollbackToSavepoint(id)
			return err
		}
	}
	s.releaseToSavepoint(id)
	return nil
}

// Savepoint creates a new savepoint and returns an id of the savepoint. Use RollbackToSavepoint
// to roll back all changes made after calling Savepoint method. Use ReleaseToSavepoint to keep
// all changes made to the state.
func (s *State) Savepoint() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.createSavepoint()
}

// RollbackToSavepoint destroys the savepoint (and all savepoints created after it) without
// keeping the changes.
func (s *State) RollbackToSavepoint(id int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.rollbackToSavepoint(id)
}

// ReleaseToSavepoint destroys the savepoint (and all savepoints created after it) keeping all
// the changes in the enclosing savepoint. If a savepoint with given id does not exist then this
// method does nothing.
func (s *State) ReleaseToSavepoint(id int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.releaseToSavepoint(id)
}

// Commit makes the changes of the block permanent. All savepoints must be released before.
func (s *State) Commit(round uint64) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.savepoints) != 1 {
		return fmt.Errorf("%w: %d", ErrUncommittedSavepoints, len(s.savepoints)-1)
	}
	changes := s.savepoints[0]

	if s.db != nil {
		if err := persist(s.db, changes, round); err != nil {
			return fmt.Errorf("persisting state: %w", err)
		}
	}

	values := maps.Clone(s.committed.values)
	counts := maps.Clone(s.committed.counts)
	for k, e := range changes.values {
		if e.deleted {
			delete(values, k)
		} else {
			values[k] = e.value
		}
	}
	for kind, d := range changes.counts {
		counts[kind] += d
	}
	s.committed = newSnapshot(values, counts, round)
	s.savepoints = []*layer{newLayer()}
	return nil
}

func persist(db keyvaluedb.KeyValueDB, changes *layer, round uint64) (err error) {
	tx, err := db.StartTx()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()
	for k, e := range changes.values {
		if e.deleted {
			if err := tx.Delete([]byte(k)); err != nil {
				return fmt.Errorf("deleting %x: %w", []byte(k), err)
			}
			continue
		}
		if err := tx.Write([]byte(k), e.value); err != nil {
			return fmt.Errorf("writing %x: %w", []byte(k), err)
		}
	}
	if err := tx.Write([]byte(metaRoundKey), round); err != nil {
		return fmt.Errorf("writing round: %w", err)
	}
	return tx.Commit()
}

// Revert rolls back all changes made to the state since the last commit.
func (s *State) Revert() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.savepoints = []*layer{newLayer()}
}

// IsCommitted returns true when there are no uncommitted changes.
func (s *State) IsCommitted() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	for _, l := range s.savepoints {
		if len(l.values) > 0 {
			return false
		}
	}
	return true
}

func (s *State) createSavepoint() int {
	s.savepoints = append(s.savepoints, newLayer())
	return len(s.savepoints) - 1
}

func (s *State) rollbackToSavepoint(id int) {
	if id < 1 || id >= len(s.savepoints) {
		return
	}
	s.savepoints = s.savepoints[:id]
}

func (s *State) releaseToSavepoint(id int) {
	if id < 1 || id >= len(s.savepoints) {
		return
	}
	target := s.savepoints[id-1]
	for _, l := range s.savepoints[id:] {
		maps.Copy(target.values, l.values)
		for kind, d := range l.counts {
			target.counts[kind] += d
		}
	}
	s.savepoints = s.savepoints[:id]
}

func (s *State) get(key Key) (any, bool) {
	for i := len(s.savepoints) - 1; i >= 0; i-- {
		if e, ok := s.savepoints[i].values[key]; ok {
			if e.deleted {
				return nil, false
			}
			return e.value, true
		}
	}
	return s.committed.Get(key)
}

func (s *State) count(kind Kind) int64 {
	c := s.committed.Count(kind)
	for _, l := range s.savepoints {
		c += l.counts[kind]
	}
	return c
}

func (s *State) put(key Key, value any) {
	_, exists := s.get(key)
	top := s.savepoints[len(s.savepoints)-1]
	top.values[key] = entry{value: value}
	if !exists {
		top.counts[key.Kind()]++
	}
}

func (s *State) delete(key Key) {
	if _, exists := s.get(key); !exists {
		return
	}
	top := s.savepoints[len(s.savepoints)-1]
	top.values[key] = entry{deleted: true}
	top.counts[key.Kind()]--
}

// latestView is the Writer handed to actions, the state lock is already held.
type latestView struct {
	s *State
}

func (v *latestView) Get(key Key) (any, bool) { return v.s.get(key) }

func (v *latestView) Count(kind Kind) int64 { return v.s.count(kind) }

func (v *latestView) Put(key Key, value any) { v.s.put(key, value) }

func (v *latestView) Delete(key Key) { v.s.delete(key) }
