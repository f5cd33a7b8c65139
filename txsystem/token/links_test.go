package token

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type testNode struct {
	prev, next int
}

// testList is a persisted list, each batch of changes goes through a fresh linkedList view.
type testList struct {
	head  int
	nodes map[int]*testNode
}

func (s *testList) view() *linkedList[int, *testNode] {
	return newLinkedList(s.head,
		func(k int) (*testNode, error) {
			n, ok := s.nodes[k]
			if !ok {
				return nil, nil
			}
			c := *n
			return &c, nil
		},
		links[int, *testNode]{
			prev:    func(n *testNode) int { return n.prev },
			next:    func(n *testNode) int { return n.next },
			setPrev: func(n *testNode, k int) { n.prev = k },
			setNext: func(n *testNode, k int) { n.next = k },
			exists:  func(n *testNode) bool { return n != nil },
		})
}

func (s *testList) save(l *linkedList[int, *testNode], keys map[*testNode]int) {
	for _, n := range l.Changed() {
		s.nodes[keys[n]] = n
	}
	for _, k := range l.Removed() {
		delete(s.nodes, k)
	}
	s.head = l.Head()
}

// walk returns the keys from head to tail, checking the back links.
func (s *testList) walk(t require.TestingT) []int {
	var res []int
	prev := 0
	for k := s.head; k != 0; {
		n, ok := s.nodes[k]
		require.True(t, ok, "node %d", k)
		require.Equal(t, prev, n.prev, "previous of %d", k)
		res = append(res, k)
		require.LessOrEqual(t, len(res), len(s.nodes), "cycle")
		prev, k = k, n.next
	}
	return res
}

func TestLinkedList_InsertAndRemove(t *testing.T) {
	s := &testList{nodes: map[int]*testNode{}}
	l := s.view()
	keys := map[*testNode]int{}
	for _, k := range []int{1, 2, 3} {
		n := &testNode{}
		keys[n] = k
		require.NoError(t, l.InsertHead(k, n))
	}
	require.ErrorContains(t, l.InsertHead(3, &testNode{}), "already in the list")
	require.ErrorContains(t, l.InsertHead(0, &testNode{}), "sentinel")
	s.save(l, keys)
	require.Equal(t, []int{3, 2, 1}, s.walk(t))

	l = s.view()
	require.NoError(t, l.Remove(2))
	require.ErrorContains(t, l.Remove(2), "not in the list")
	s.save(l, nodeKeys(t, l, 3, 1))
	require.Equal(t, []int{3, 1}, s.walk(t))
	require.NotContains(t, s.nodes, 2)
}

// nodeKeys maps nodes of the view back to their keys.
func nodeKeys(t require.TestingT, l *linkedList[int, *testNode], keys ...int) map[*testNode]int {
	res := map[*testNode]int{}
	for _, k := range keys {
		n, ok, err := l.node(k)
		require.NoError(t, err)
		if ok {
			res[n] = k
		}
	}
	return res
}

func TestLinkedList_OrphanedHead(t *testing.T) {
	s := &testList{head: 42, nodes: map[int]*testNode{}}
	l := s.view()
	n := &testNode{}
	require.NoError(t, l.InsertHead(7, n))
	s.save(l, map[*testNode]int{n: 7})
	require.Equal(t, []int{7}, s.walk(t))
	require.Zero(t, s.nodes[7].next)
}

func TestLinkedList_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := &testList{nodes: map[int]*testNode{}}
		var model []int
		next := 1
		batches := rapid.IntRange(1, 10).Draw(t, "batches")
		for b := 0; b < batches; b++ {
			l := s.view()
			touched := map[int]bool{}
			ops := rapid.IntRange(1, 8).Draw(t, "ops")
			for i := 0; i < ops; i++ {
				if len(model) == 0 || rapid.Bool().Draw(t, "insert") {
					k := next
					next++
					require.NoError(t, l.InsertHead(k, &testNode{}))
					model = append([]int{k}, model...)
					touched[k] = true
					continue
				}
				idx := rapid.IntRange(0, len(model)-1).Draw(t, "remove")
				require.NoError(t, l.Remove(model[idx]))
				model = slices.Delete(model, idx, idx+1)
			}
			var keys []int
			for k := range s.nodes {
				keys = append(keys, k)
			}
			for k := range touched {
				keys = append(keys, k)
			}
			s.save(l, nodeKeys(t, l, keys...))
			require.Equal(t, model, s.walk(t))
			require.Len(t, s.nodes, len(model))
		}
	})
}
