package txsystem

import (
	"github.com/hashgraph/hedera-services-sub009/state"
)

/*
SavepointStack provides nested rollback scopes for the state changes and
record builders of one transaction. Every Begin must be paired with either
Commit or Rollback.
*/
type SavepointStack struct {
	st       *state.State
	user     *RecordBuilder
	frames   []*savepoint
	children []*RecordBuilder
}

type savepoint struct {
	id       int
	children []*RecordBuilder
}

func NewSavepointStack(st *state.State, user *RecordBuilder) *SavepointStack {
	return &SavepointStack{st: st, user: user}
}

// Begin opens a new scope.
func (s *SavepointStack) Begin() {
	s.frames = append(s.frames, &savepoint{id: s.st.Savepoint()})
}

// Commit closes the innermost scope keeping its changes in the enclosing scope.
func (s *SavepointStack) Commit() {
	top := s.pop()
	if top == nil {
		return
	}
	s.st.ReleaseToSavepoint(top.id)
	if n := len(s.frames); n > 0 {
		s.frames[n-1].children = append(s.frames[n-1].children, top.children...)
	} else {
		s.children = append(s.children, top.children...)
	}
}

// Rollback closes the innermost scope discarding its state changes and child records.
func (s *SavepointStack) Rollback() {
	if top := s.pop(); top != nil {
		s.st.RollbackToSavepoint(top.id)
	}
}

// RollbackAll discards all open scopes.
func (s *SavepointStack) RollbackAll() {
	for len(s.frames) > 0 {
		s.Rollback()
	}
}

func (s *SavepointStack) Depth() int { return len(s.frames) }

/*
Attempt runs f in a child scope which is committed when f succeeds and
rolled back otherwise, the error of f is returned.
*/
func (s *SavepointStack) Attempt(f func() error) error {
	s.Begin()
	if err := f(); err != nil {
		s.Rollback()
		return err
	}
	s.Commit()
	return nil
}

/*
BaseBuilder returns the builder of the user record for RecordTypeUser. For
RecordTypeChild a new builder is created in the innermost scope, it is
discarded when the scope is rolled back.
*/
func (s *SavepointStack) BaseBuilder(recordType RecordType) *RecordBuilder {
	if recordType == RecordTypeUser {
		return s.user
	}
	b := NewRecordBuilder(RecordTypeChild)
	if n := len(s.frames); n > 0 {
		s.frames[n-1].children = append(s.frames[n-1].children, b)
	} else {
		s.children = append(s.children, b)
	}
	return b
}

// ChildBuilders returns builders of the child records whose scopes were committed.
func (s *SavepointStack) ChildBuilders() []*RecordBuilder {
	return s.children
}

func (s *SavepointStack) pop() *savepoint {
	n := len(s.frames)
	if n == 0 {
		return nil
	}
	top := s.frames[n-1]
	s.frames = s.frames[:n-1]
	return top
}
