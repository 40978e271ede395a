package memory

import (
	"bytes"
	"sort"
	"strings"
	"sync"

	"github.com/tarantool/go-datastore/kvquery"
)

// stagedRevision marks values written inside a transaction that is not committed yet.
const stagedRevision = -1

// Store is the manager of the memory driver: a thread-safe
// key-value map with a global modification revision.
type Store struct {
	mu       sync.RWMutex
	data     map[string]kvquery.KeyValue
	revision int64
	closed   bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		mu:       sync.RWMutex{},
		data:     make(map[string]kvquery.KeyValue),
		revision: 1,
		closed:   false,
	}
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data)
}

// Revision returns the current store revision.
func (s *Store) Revision() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.revision
}

func (s *Store) close() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasClosed := s.closed
	s.closed = true
	s.data = make(map[string]kvquery.KeyValue)

	return !wasClosed
}

func (s *Store) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.closed
}

func sortByKey(values []kvquery.KeyValue) {
	sort.Slice(values, func(i, j int) bool {
		return bytes.Compare(values[i].Key, values[j].Key) < 0
	})
}

// txView overlays staged writes on top of the store.
// A nil staged entry is a deletion. Reads require the caller to hold the store lock.
//
// guards holds the strict predicates that were checked against committed
// data. They are checked again on commit.
type txView struct {
	store  *Store
	staged map[string]*kvquery.KeyValue
	guards []kvquery.Predicate
}

func newTxView(store *Store) *txView {
	return &txView{store: store, staged: make(map[string]*kvquery.KeyValue), guards: nil}
}

// committedPredicates returns the predicates of a strict query whose keys
// are not staged in the view.
func (v *txView) committedPredicates(query kvquery.Query) []kvquery.Predicate {
	if !query.Strict {
		return nil
	}

	var predicates []kvquery.Predicate

	for _, predicate := range query.If {
		if _, staged := v.staged[string(predicate.Key)]; !staged {
			predicates = append(predicates, predicate)
		}
	}

	return predicates
}

// brokenGuardsLocked returns the guards that no longer hold for the
// committed data. The caller holds the store lock.
func (v *txView) brokenGuardsLocked() []kvquery.Predicate {
	committed := newTxView(v.store)

	var broken []kvquery.Predicate

	for _, guard := range v.guards {
		if !checkPredicates(committed, []kvquery.Predicate{guard}) {
			broken = append(broken, guard)
		}
	}

	return broken
}

func (v *txView) get(key string) (kvquery.KeyValue, bool) {
	if staged, ok := v.staged[key]; ok {
		if staged == nil {
			return kvquery.KeyValue{}, false
		}

		return *staged, true
	}

	val, ok := v.store.data[key]

	return val, ok
}

func (v *txView) scan(prefix string) []kvquery.KeyValue {
	var values []kvquery.KeyValue

	for k, val := range v.store.data {
		if _, shadowed := v.staged[k]; !shadowed && strings.HasPrefix(k, prefix) {
			values = append(values, val)
		}
	}

	for k, staged := range v.staged {
		if staged != nil && strings.HasPrefix(k, prefix) {
			values = append(values, *staged)
		}
	}

	sortByKey(values)

	return values
}

func (v *txView) put(key string, value []byte) kvquery.KeyValue {
	kv := kvquery.KeyValue{Key: []byte(key), Value: value, ModRevision: stagedRevision}
	v.staged[key] = &kv

	return kv
}

func (v *txView) delete(key string) (kvquery.KeyValue, bool) {
	prev, ok := v.get(key)
	if ok {
		v.staged[key] = nil
	}

	return prev, ok
}

// applyLocked writes the staged changes into the store and returns the
// revision they were written at. The caller holds the store write lock.
func (v *txView) applyLocked() (int64, error) {
	if v.store.closed {
		return 0, ErrClosed
	}

	if broken := v.brokenGuardsLocked(); len(broken) > 0 {
		return 0, kvquery.NewPreconditionError(broken)
	}

	if len(v.staged) == 0 {
		return v.store.revision, nil
	}

	revision := v.store.revision

	for key, staged := range v.staged {
		if staged == nil {
			delete(v.store.data, key)
			continue
		}

		staged.ModRevision = revision
		v.store.data[key] = *staged
	}

	v.store.revision++
	v.staged = make(map[string]*kvquery.KeyValue)
	v.guards = nil

	return revision, nil
}

// Keys returns the stored keys under prefix, sorted. Useful in tests.
func (s *Store) Keys(prefix string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string

	for key := range s.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	return keys
}
