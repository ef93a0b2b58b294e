package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/serialx/hashring"

	"github.com/tferdous17/tango/internal/tango"
	"github.com/tferdous17/tango/utils"
)

// Shard owns a set of named tango trees. A tango tree mutates on every search,
// so each shard serializes access to its trees.
type Shard struct {
	ID    string
	mu    sync.Mutex
	trees map[string]*tango.Tree
}

// Forest spreads named tango trees over shards picked by consistent hashing.
type Forest struct {
	hashRing *hashring.HashRing
	shards   map[string]*Shard
	opts     []tango.Option
}

// SearchResult is what one tango search on a forest tree reports.
type SearchResult struct {
	Tree  string `json:"tree"`
	Shard string `json:"shard"`
	Key   int    `json:"key"`
	Found bool   `json:"found"`
	Steps int    `json:"steps"`
	Path  []int  `json:"path"`
}

func NewForest(numOfShards int, opts ...tango.Option) *Forest {
	f := &Forest{shards: make(map[string]*Shard), opts: opts}
	numOfShards = max(numOfShards, 1)

	var shardIDs []string
	for i := 0; i < numOfShards; i++ {
		shard := &Shard{
			ID:    fmt.Sprintf("shard-%d", i+1),
			trees: make(map[string]*tango.Tree),
		}
		f.shards[shard.ID] = shard
		shardIDs = append(shardIDs, shard.ID)
		forestTrees.WithLabelValues(shard.ID).Set(0)
	}

	f.hashRing = hashring.New(shardIDs)
	return f
}

// ShardOf reports which shard a tree name belongs to.
func (f *Forest) ShardOf(name string) *Shard {
	shardID, _ := f.hashRing.GetNode(name) // get which shard this tree should be on
	return f.shards[shardID]
}

// Create builds a tango tree over [1, n] under name.
func (f *Forest) Create(name string, n int) error {
	shard := f.ShardOf(name)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	if _, ok := shard.trees[name]; ok {
		return utils.ErrTreeExists
	}
	tree, err := tango.Build(n, f.opts...)
	if err != nil {
		return err
	}
	shard.trees[name] = tree
	forestTrees.WithLabelValues(shard.ID).Set(float64(len(shard.trees)))
	utils.Logf("tree %s (n = %d) added @ %s", name, n, shard.ID)
	return nil
}

func (f *Forest) Search(name string, key int) (SearchResult, error) {
	shard := f.ShardOf(name)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	tree, ok := shard.trees[name]
	if !ok {
		return SearchResult{}, utils.ErrInvalidID
	}
	found, steps := tree.Search(key)
	forestSearches.WithLabelValues(shard.ID).Inc()
	forestSearchSteps.Observe(float64(steps))

	return SearchResult{
		Tree:  name,
		Shard: shard.ID,
		Key:   key,
		Found: found,
		Steps: steps,
		Path:  tree.PathKeys(),
	}, nil
}

func (f *Forest) Show(name string) (string, error) {
	shard := f.ShardOf(name)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	tree, ok := shard.trees[name]
	if !ok {
		return "", utils.ErrInvalidID
	}
	return tree.String(), nil
}

// Verify checks every tree of the forest.
func (f *Forest) Verify() error {
	for _, shard := range f.shards {
		shard.mu.Lock()
		for name, tree := range shard.trees {
			if err := tree.Verify(); err != nil {
				shard.mu.Unlock()
				return fmt.Errorf("tree %s: %w", name, err)
			}
		}
		shard.mu.Unlock()
	}
	return nil
}

// Diagnostics maps each shard to the names of its trees.
func (f *Forest) Diagnostics() map[string][]string {
	out := make(map[string][]string, len(f.shards))
	for id, shard := range f.shards {
		shard.mu.Lock()
		names := make([]string, 0, len(shard.trees))
		for name := range shard.trees {
			names = append(names, name)
		}
		shard.mu.Unlock()
		sort.Strings(names)
		out[id] = names
	}
	return out
}

func (f *Forest) PrintDiagnostics() {
	diag := f.Diagnostics()
	ids := make([]string, 0, len(diag))
	for id := range diag {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	utils.Log[string]("DIAGNOSTICS:")
	for _, id := range ids {
		utils.Logf("%s, num trees: %d %v", id, len(diag[id]), diag[id])
	}
}
