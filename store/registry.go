package store

import (
	"math"
	"sync"

	"github.com/emirpasic/gods/maps/treemap"

	"github.com/tferdous17/tango/internal/rbtree"
	"github.com/tferdous17/tango/utils"
)

// expectedKeys is what a filter is sized for when only its bit count is given.
const expectedKeys = 1024

// Registry is the tree table behind the rbtree menu: integer ids mapped to
// red-black trees over int keys. All trees share one arena so any two of them
// can be joined.
type Registry struct {
	mu     sync.Mutex
	arena  *rbtree.Arena[int, struct{}]
	trees  *treemap.Map // int -> *entry
	bits   uint64
	hashes uint64
}

type entry struct {
	root   rbtree.NodeID
	filter *BloomFilter
}

// SplitView is a rendered split: the keys below the split key, the split node
// and the keys above it.
type SplitView struct {
	Left  string
	Pivot string
	Right string
}

type RegistryOption func(*registryConfig)

type registryConfig struct {
	bits   uint64
	checks bool
}

// WithFilterBits sizes every tree's membership filter.
func WithFilterBits(bits uint64) RegistryOption {
	return func(c *registryConfig) { c.bits = bits }
}

func WithRegistryChecks() RegistryOption {
	return func(c *registryConfig) { c.checks = true }
}

func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := registryConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	bits, hashes := FilterParams(expectedKeys)
	if cfg.bits > 0 {
		bits = cfg.bits
		hashes = uint64(math.Ceil(float64(bits) / expectedKeys * math.Ln2))
	}

	var arenaOpts []rbtree.Option
	if cfg.checks {
		arenaOpts = append(arenaOpts, rbtree.WithInvariantChecks())
	}
	return &Registry{
		arena:  rbtree.New[int, struct{}](arenaOpts...),
		trees:  treemap.NewWithIntComparator(),
		bits:   bits,
		hashes: hashes,
	}
}

func (r *Registry) lookup(id int) (*entry, bool) {
	v, ok := r.trees.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*entry), true
}

func (r *Registry) getOrCreate(id int) *entry {
	if e, ok := r.lookup(id); ok {
		return e
	}
	e := &entry{root: rbtree.Nil, filter: NewBloomFilter(r.bits, r.hashes)}
	r.trees.Put(id, e)
	registryTrees.Set(float64(r.trees.Size()))
	return e
}

// Insert adds key to tree id, creating the tree on first use.
func (r *Registry) Insert(id, key int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.getOrCreate(id)
	e.root = r.arena.Insert(e.root, key, struct{}{})
	e.filter.Add(key)
	registryOps.WithLabelValues("insert", "ok").Inc()
}

// Contains reports false for an unknown id.
func (r *Registry) Contains(id, key int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	registryOps.WithLabelValues("contains", "ok").Inc()

	e, ok := r.lookup(id)
	if !ok {
		return false
	}
	if !e.filter.MightContain(key) {
		filterSkips.Inc()
		return false
	}
	return r.arena.Contains(e.root, key)
}

func (r *Registry) Remove(id, key int) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer func() { registryOps.WithLabelValues("remove", status(err)).Inc() }()

	e, ok := r.lookup(id)
	if !ok {
		return utils.ErrInvalidID
	}
	e.root = r.arena.Remove(e.root, key)
	return nil
}

// Join glues tree id1, a new node holding key and tree id2 into one tree kept
// under id1. Tree id2 is consumed. Unknown ids count as empty trees.
func (r *Registry) Join(id1, key, id2 int) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer func() { registryOps.WithLabelValues("join", status(err)).Inc() }()

	t1, t2 := rbtree.Nil, rbtree.Nil
	if e, ok := r.lookup(id1); ok {
		t1 = e.root
	}
	if e, ok := r.lookup(id2); ok {
		t2 = e.root
	}

	pivot := r.arena.NewNode(key, struct{}{})
	root, err := r.arena.Join(t1, pivot, t2)
	if err != nil {
		r.arena.Free(pivot)
		return err
	}

	left := r.getOrCreate(id1)
	left.root = root
	left.filter.Add(key)
	if right, ok := r.lookup(id2); ok && id2 != id1 {
		left.filter.Union(right.filter)
		r.trees.Remove(id2)
		registryTrees.Set(float64(r.trees.Size()))
	}
	return nil
}

// Split renders the three parts of tree id cut at key. The tree itself is put
// back together before Split returns.
func (r *Registry) Split(id, key int) (view SplitView, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer func() { registryOps.WithLabelValues("split", status(err)).Inc() }()

	e, ok := r.lookup(id)
	if !ok {
		return SplitView{}, utils.ErrInvalidID
	}
	l, x, rt, err := r.arena.Split(e.root, key)
	if err != nil {
		return SplitView{}, err
	}

	view = SplitView{
		Left:  r.arena.Render(l, nil),
		Pivot: r.arena.Render(x, nil),
		Right: r.arena.Render(rt, nil),
	}
	if e.root, err = r.arena.Join(l, x, rt); err != nil {
		panic(err)
	}
	return view, nil
}

// Show renders tree id; an unknown id renders as an empty tree.
func (r *Registry) Show(id int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	registryOps.WithLabelValues("show", "ok").Inc()

	e, ok := r.lookup(id)
	if !ok {
		return r.arena.Render(rbtree.Nil, nil)
	}
	return r.arena.Render(e.root, nil)
}

// Keys lists tree id in ascending order.
func (r *Registry) Keys(id int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.lookup(id)
	if !ok {
		return nil, utils.ErrInvalidID
	}
	return r.arena.Keys(e.root), nil
}

// IDs lists the registered tree ids in ascending order.
func (r *Registry) IDs() []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]int, 0, r.trees.Size())
	for _, k := range r.trees.Keys() {
		ids = append(ids, k.(int))
	}
	return ids
}
