package token

import (
	"fmt"

	"github.com/hashgraph/hedera-services-sub009/store"
	"github.com/hashgraph/hedera-services-sub009/types"
)

/*
linkedList is an in-memory view of one intrusive doubly linked list (token
relations or pending airdrops of an account). Nodes are loaded on first
access and modified in the view only, all splices of a batch see the
result of the previous ones. The zero value of K is the end of list
sentinel.
*/
type linkedList[K comparable, V any] struct {
	head    K
	nodes   map[K]V
	order   []K
	removed map[K]bool
	load    func(K) (V, error)
	links   links[K, V]
}

// links gives access to the pointers of the node type.
type links[K comparable, V any] struct {
	prev    func(V) K
	next    func(V) K
	setPrev func(V, K)
	setNext func(V, K)
	exists  func(V) bool
}

func newLinkedList[K comparable, V any](head K, load func(K) (V, error), l links[K, V]) *linkedList[K, V] {
	return &linkedList[K, V]{
		head:    head,
		nodes:   make(map[K]V),
		removed: make(map[K]bool),
		load:    load,
		links:   l,
	}
}

func (l *linkedList[K, V]) Head() K { return l.head }

// node returns the node of the view, ok is false when there is no such node.
func (l *linkedList[K, V]) node(key K) (v V, ok bool, err error) {
	var zero K
	if key == zero || l.removed[key] {
		return v, false, nil
	}
	if v, ok := l.nodes[key]; ok {
		return v, true, nil
	}
	if v, err = l.load(key); err != nil {
		return v, false, err
	}
	if !l.links.exists(v) {
		return v, false, nil
	}
	l.nodes[key] = v
	l.order = append(l.order, key)
	return v, true, nil
}

/*
InsertHead makes "v" the first node of the list. When the current head
refers to a node which doesn't exist the new node becomes the only node of
the list.
*/
func (l *linkedList[K, V]) InsertHead(key K, v V) error {
	var zero K
	if key == zero {
		return fmt.Errorf("inserting node with sentinel key")
	}
	_, loaded := l.nodes[key]
	if loaded && !l.removed[key] {
		return fmt.Errorf("node %v is already in the list", key)
	}
	old, ok, err := l.node(l.head)
	if err != nil {
		return err
	}
	l.links.setPrev(v, zero)
	if ok {
		l.links.setNext(v, l.head)
		l.links.setPrev(old, key)
	} else {
		l.links.setNext(v, zero)
	}
	delete(l.removed, key)
	l.nodes[key] = v
	if !loaded {
		l.order = append(l.order, key)
	}
	l.head = key
	return nil
}

/*
Remove splices the node out of the list, the head is advanced when the
node is the first one.
*/
func (l *linkedList[K, V]) Remove(key K) error {
	v, ok, err := l.node(key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("node %v is not in the list", key)
	}
	prevKey, nextKey := l.links.prev(v), l.links.next(v)
	prev, hasPrev, err := l.node(prevKey)
	if err != nil {
		return err
	}
	next, hasNext, err := l.node(nextKey)
	if err != nil {
		return err
	}
	if hasPrev {
		l.links.setNext(prev, nextKey)
	}
	if hasNext {
		l.links.setPrev(next, prevKey)
	}
	if l.head == key {
		l.head = nextKey
	}
	l.removed[key] = true
	return nil
}

// Changed returns the nodes of the view which are still in the list in the order they were loaded.
func (l *linkedList[K, V]) Changed() []V {
	res := make([]V, 0, len(l.order))
	for _, k := range l.order {
		if !l.removed[k] {
			res = append(res, l.nodes[k])
		}
	}
	return res
}

// Removed returns keys of the removed nodes.
func (l *linkedList[K, V]) Removed() []K {
	var res []K
	for _, k := range l.order {
		if l.removed[k] {
			res = append(res, k)
		}
	}
	return res
}

type relationList = linkedList[types.TokenID, *types.TokenRelation]

func newRelationList(acc *types.Account, relations *store.ReadableTokenRelationStore) *relationList {
	return newLinkedList(acc.HeadTokenID,
		func(token types.TokenID) (*types.TokenRelation, error) {
			return relations.Get(acc.AccountID, token)
		},
		links[types.TokenID, *types.TokenRelation]{
			prev:    func(r *types.TokenRelation) types.TokenID { return r.PreviousToken },
			next:    func(r *types.TokenRelation) types.TokenID { return r.NextToken },
			setPrev: func(r *types.TokenRelation, k types.TokenID) { r.PreviousToken = k },
			setNext: func(r *types.TokenRelation, k types.TokenID) { r.NextToken = k },
			exists:  func(r *types.TokenRelation) bool { return r != nil },
		})
}

type airdropList = linkedList[types.PendingAirdropID, *types.AccountPendingAirdrop]

func newAirdropList(acc *types.Account, airdrops *store.ReadableAirdropStore) *airdropList {
	return newLinkedList(airdropKey(acc.HeadPendingAirdropID),
		airdrops.Get,
		links[types.PendingAirdropID, *types.AccountPendingAirdrop]{
			prev:    func(p *types.AccountPendingAirdrop) types.PendingAirdropID { return airdropKey(p.PreviousAirdrop) },
			next:    func(p *types.AccountPendingAirdrop) types.PendingAirdropID { return airdropKey(p.NextAirdrop) },
			setPrev: func(p *types.AccountPendingAirdrop, k types.PendingAirdropID) { p.PreviousAirdrop = airdropPtr(k) },
			setNext: func(p *types.AccountPendingAirdrop, k types.PendingAirdropID) { p.NextAirdrop = airdropPtr(k) },
			exists:  func(p *types.AccountPendingAirdrop) bool { return p != nil },
		})
}

func airdropKey(id *types.PendingAirdropID) types.PendingAirdropID {
	if id == nil {
		return types.PendingAirdropID{}
	}
	return *id
}

func airdropPtr(id types.PendingAirdropID) *types.PendingAirdropID {
	if id == (types.PendingAirdropID{}) {
		return nil
	}
	return &id
}
