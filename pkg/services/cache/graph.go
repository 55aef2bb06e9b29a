package cache

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var (
	ErrCycle           = errors.New("dependency cycle")
	ErrUnknownNode     = errors.New("unknown node")
	ErrDuplicateNode   = errors.New("duplicate node")
	ErrNotBuilt        = errors.New("graph not built")
	ErrTypeMismatch    = errors.New("node value type mismatch")
	ErrAlreadyBuilt    = errors.New("graph already built")
	ErrMissingComputer = errors.New("node has no compute function")
)

// VersionFunc reports the current version of an externally owned source.
type VersionFunc func() uint64

// ValueFunc reads the current value of an externally owned source.
type ValueFunc func() any

// ComputeFunc derives a node value from the values of its dependencies.
type ComputeFunc func(in Inputs) any

// Inputs gives a compute function access to its dependencies' current values.
type Inputs interface {
	Value(name string) any
}

type node struct {
	name    string
	deps    []string
	version uint64
	value   any

	// sources only
	versionOf VersionFunc
	valueOf   ValueFunc

	// derived only
	compute    ComputeFunc
	seen       []uint64
	computed   bool
	recomputes int
}

func (n *node) isSource() bool { return n.versionOf != nil }

// Graph is a DAG of named computations. Sources are versioned by their owners;
// a derived node is recomputed only when a dependency version moved since its
// last computation.
type Graph struct {
	logger zerolog.Logger
	nodes  map[string]*node
	added  []string
	order  []*node
	built  bool
}

func New(logger zerolog.Logger) *Graph {
	return &Graph{
		logger: logger,
		nodes:  make(map[string]*node),
	}
}

// Source registers an externally versioned input.
func (g *Graph) Source(name string, version VersionFunc, value ValueFunc) error {
	if version == nil || value == nil {
		return fmt.Errorf("source %q: %w", name, ErrMissingComputer)
	}
	return g.add(&node{name: name, versionOf: version, valueOf: value})
}

// Node registers a derived computation over the named dependencies.
func (g *Graph) Node(name string, deps []string, compute ComputeFunc) error {
	if compute == nil {
		return fmt.Errorf("node %q: %w", name, ErrMissingComputer)
	}
	return g.add(&node{
		name:    name,
		deps:    append([]string(nil), deps...),
		compute: compute,
		seen:    make([]uint64, len(deps)),
	})
}

func (g *Graph) add(n *node) error {
	if g.built {
		return fmt.Errorf("add %q: %w", n.name, ErrAlreadyBuilt)
	}
	if _, ok := g.nodes[n.name]; ok {
		return fmt.Errorf("add %q: %w", n.name, ErrDuplicateNode)
	}
	g.nodes[n.name] = n
	g.added = append(g.added, n.name)
	return nil
}

// Build validates dependencies and fixes the evaluation order.
func (g *Graph) Build() error {
	if g.built {
		return ErrAlreadyBuilt
	}

	indegree := make(map[string]int, len(g.nodes))
	dependents := make(map[string][]string, len(g.nodes))
	for _, name := range g.added {
		n := g.nodes[name]
		for _, dep := range n.deps {
			if _, ok := g.nodes[dep]; !ok {
				return fmt.Errorf("node %q depends on %q: %w", name, dep, ErrUnknownNode)
			}
			indegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	// Kahn's algorithm; ties keep registration order so evaluation is stable.
	queue := make([]string, 0, len(g.added))
	for _, name := range g.added {
		if indegree[name] == 0 {
			queue = append(queue, name)
		}
	}
	order := make([]*node, 0, len(g.added))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		order = append(order, g.nodes[name])
		for _, next := range dependents[name] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}
	if len(order) != len(g.added) {
		return ErrCycle
	}

	g.order = order
	g.built = true
	return nil
}

// Refresh brings every node up to date, in topological order.
func (g *Graph) Refresh() error {
	if !g.built {
		return ErrNotBuilt
	}
	for _, n := range g.order {
		if n.isSource() {
			n.version = n.versionOf()
			continue
		}
		if n.computed && !g.stale(n) {
			continue
		}
		n.value = n.compute(inputs{g: g})
		for i, dep := range n.deps {
			n.seen[i] = g.nodes[dep].version
		}
		n.version++
		n.recomputes++
		n.computed = true
		g.logger.Trace().
			Str("node", n.name).
			Int("recomputes", n.recomputes).
			Msg("node recomputed")
	}
	return nil
}

func (g *Graph) stale(n *node) bool {
	for i, dep := range n.deps {
		if g.nodes[dep].version != n.seen[i] {
			return true
		}
	}
	return false
}

// Order returns node names in evaluation order.
func (g *Graph) Order() []string {
	names := make([]string, 0, len(g.order))
	for _, n := range g.order {
		names = append(names, n.name)
	}
	return names
}

// Recomputes reports how many times a derived node has been computed.
func (g *Graph) Recomputes(name string) int {
	if n, ok := g.nodes[name]; ok {
		return n.recomputes
	}
	return 0
}

// Version reports the version of a node as of the last Refresh.
func (g *Graph) Version(name string) uint64 {
	if n, ok := g.nodes[name]; ok {
		return n.version
	}
	return 0
}

// Lookup returns the current value of a node. Source values are read live.
func (g *Graph) Lookup(name string) (any, error) {
	if !g.built {
		return nil, ErrNotBuilt
	}
	n, ok := g.nodes[name]
	if !ok {
		return nil, fmt.Errorf("lookup %q: %w", name, ErrUnknownNode)
	}
	if n.isSource() {
		return n.valueOf(), nil
	}
	return n.value, nil
}

// Get returns the current value of a node as T.
func Get[T any](g *Graph, name string) (T, error) {
	var zero T
	v, err := g.Lookup(name)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("get %q as %T from %T: %w", name, zero, v, ErrTypeMismatch)
	}
	return typed, nil
}

type inputs struct {
	g *Graph
}

func (in inputs) Value(name string) any {
	v, _ := in.g.Lookup(name)
	return v
}
