// Package reasoner implements the Solver orchestrator: it stages raw
// statements per influencing/influenced pair, keeps a dependency graph of
// which variables are claimed to influence which, and answers hypothesis
// queries by running the bounded-search solve phase before and after
// building a transitive cover along the dependency path.
package reasoner

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/lattice-ware/qualreason/container"
	"github.com/lattice-ware/qualreason/depgraph"
	"github.com/lattice-ware/qualreason/quality"
	"github.com/lattice-ware/qualreason/rules"
	"github.com/lattice-ware/qualreason/statement"
)

// ErrNotStaged is returned by Remove when the given statement isn't
// currently staged under its influencing/influenced pair.
var ErrNotStaged = errors.New("reasoner: statement not staged")

// ErrCycle re-exports depgraph.ErrCycle so callers can check Add's
// cycle-rejection failures with errors.Is(err, reasoner.ErrCycle)
// without importing depgraph directly.
var ErrCycle = depgraph.ErrCycle

// Tuple is the external 5-field representation of a statement claim:
// influencing variable, x-range, quality, y-range, influenced variable.
type Tuple struct {
	Influencing  string
	BeginX, EndX float64
	Q            quality.Quality
	BeginY, EndY float64
	Influenced   string
}

type pair struct {
	a, b string
}

// config mirrors the unexported-struct-plus-Option idiom: documented
// defaults, applied in order by gatherOptions.
type config struct {
	logger       *slog.Logger
	heightWindow *[2]float64
	checkCycles  bool
}

func defaultConfig() config {
	return config{logger: slog.Default(), checkCycles: true}
}

// Option configures a Solver at construction time.
type Option func(*config)

// WithLogger overrides the default logger (slog.Default()). A nil
// logger keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHeightWindow records an external height window for
// Statement.StrongerAs on the Solver. The solve path does not consult
// it: the rule engine calls Statement.StrongerAs with no window.
func WithHeightWindow(lo, hi float64) Option {
	return func(c *config) { c.heightWindow = &[2]float64{lo, hi} }
}

// WithoutCycleCheck disables cycle checking on Add, an escape hatch for
// trusted bulk loads that are known acyclic — the same trust boundary
// the transitive-closure phase uses internally when it records new
// edges with check=false.
func WithoutCycleCheck() Option {
	return func(c *config) { c.checkCycles = false }
}

func gatherOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Solver holds the staged raw statements, the per-pair containers built
// by the last Solve call, and the dependency graph. The zero value is
// not usable; construct with New.
type Solver struct {
	staged     map[pair][]statement.Statement
	containers map[pair]container.Container
	graph      *depgraph.Graph
	goal       *container.DynamicList

	logger       *slog.Logger
	heightWindow *[2]float64
	checkCycles  bool
}

// New returns an empty Solver configured by opts.
func New(opts ...Option) *Solver {
	cfg := gatherOptions(opts)
	return &Solver{
		staged:       make(map[pair][]statement.Statement),
		containers:   make(map[pair]container.Container),
		graph:        depgraph.New(),
		logger:       cfg.logger,
		heightWindow: cfg.heightWindow,
		checkCycles:  cfg.checkCycles,
	}
}

// Add parses t, inserts the dependency edge (rejecting it, and staging
// nothing, if it would close a cycle) and stages the statement.
func (s *Solver) Add(t Tuple) error {
	st, err := statement.New(t.BeginX, t.EndX, t.Q, t.BeginY, t.EndY)
	if err != nil {
		return err
	}
	if err := s.graph.Add(t.Influencing, t.Influenced, s.checkCycles); err != nil {
		s.logger.Debug("rejected cyclic edge", "influencing", t.Influencing, "influenced", t.Influenced)
		return err
	}

	p := pair{t.Influencing, t.Influenced}
	s.staged[p] = append(s.staged[p], st)
	s.logger.Debug("staged statement", "influencing", t.Influencing, "influenced", t.Influenced, "quality", t.Q)
	return nil
}

// AddMany stages every tuple in ts, stopping at the first error.
func (s *Solver) AddMany(ts []Tuple) error {
	for _, t := range ts {
		if err := s.Add(t); err != nil {
			return err
		}
	}
	return nil
}

// Remove removes exactly one staged statement matching t. It returns
// ErrNotStaged if no such statement is staged.
func (s *Solver) Remove(t Tuple) error {
	st, err := statement.New(t.BeginX, t.EndX, t.Q, t.BeginY, t.EndY)
	if err != nil {
		return err
	}

	p := pair{t.Influencing, t.Influenced}
	idx := indexOf(s.staged[p], st)
	if idx < 0 {
		return fmt.Errorf("%w: %s -> %s", ErrNotStaged, t.Influencing, t.Influenced)
	}
	s.staged[p] = removeAt(s.staged[p], idx)
	return nil
}

// Discard removes a staged statement matching t, if any is staged. It
// is a no-op otherwise.
func (s *Solver) Discard(t Tuple) {
	st, err := statement.New(t.BeginX, t.EndX, t.Q, t.BeginY, t.EndY)
	if err != nil {
		return
	}

	p := pair{t.Influencing, t.Influenced}
	if idx := indexOf(s.staged[p], st); idx >= 0 {
		s.staged[p] = removeAt(s.staged[p], idx)
	}
}

// Solve answers whether hypothesis h follows from the staged statements
// and dependency graph, per the six-step algorithm: reflexive shortcut,
// path extraction, container materialization, a direct-cover solve
// phase, a transitive-closure build along the path, and a final solve
// phase.
func (s *Solver) Solve(h Tuple) (bool, error) {
	hyp, err := statement.New(h.BeginX, h.EndX, h.Q, h.BeginY, h.EndY)
	if err != nil {
		return false, err
	}

	if h.Influencing == h.Influenced {
		return reflexive(hyp), nil
	}

	order := s.graph.Setup(h.Influencing, h.Influenced)
	used := make(map[string]struct{}, len(order)+2)
	for _, n := range order {
		used[n] = struct{}{}
	}
	used[h.Influencing] = struct{}{}
	used[h.Influenced] = struct{}{}

	goalPair := pair{h.Influencing, h.Influenced}
	s.containers = make(map[pair]container.Container)

	var dyn *container.DynamicList
	for p, raw := range s.staged {
		if _, ok := used[p.a]; !ok {
			continue
		}
		if _, ok := used[p.b]; !ok {
			continue
		}

		items := raw
		if p.b == h.Influenced {
			items = filterOverlapsY(raw, h.BeginY, h.EndY)
		}

		switch {
		case p == goalPair:
			dl := container.NewDynamicList(hyp, items)
			s.containers[p] = dl
			dyn = dl
		case p.b == h.Influenced && p.a != h.Influencing:
			om := container.NewOverlapMap()
			for _, st := range items {
				om.Add(st, true)
			}
			s.containers[p] = om
		default:
			s.containers[p] = container.NewStaticList(items)
		}
	}
	if dyn == nil {
		dyn = container.NewDynamicList(hyp, nil)
		s.containers[goalPair] = dyn
	}
	s.goal = dyn
	s.logger.Debug("containers materialized", "pairs", len(s.containers))

	if dyn.Solve() {
		return true, nil
	}
	dyn.Reset()

	s.buildTransitiveCover(order, h.Influenced)

	result := dyn.Solve()
	if !result {
		s.logger.Warn("hypothesis not proven", "influencing", h.Influencing, "influenced", h.Influenced)
	}
	return result, nil
}

// buildTransitiveCover walks order (predecessors before successors,
// relative to goal) and, for every node n and predecessor p, composes
// the (p,n) static cover with the (n,goal) overlap cover into (p,goal).
// n is removed from the graph once every predecessor edge into it has
// been used, mirroring the path being consumed hop by hop.
func (s *Solver) buildTransitiveCover(order []string, goal string) {
	for _, n := range order {
		for _, p := range s.graph.GetPre(n) {
			s.buildTransitives(p, n, goal)
		}
		s.graph.RemoveNode(n)
	}
}

func (s *Solver) buildTransitives(a, b, c string) {
	sl, ok := s.containers[pair{a, b}].(*container.StaticList)
	if !ok {
		return
	}

	bc, ok := s.containers[pair{b, c}].(*container.OverlapMap)
	if !ok {
		return
	}
	bc.Initiate()

	// Only create a fresh OverlapMap when (a,c) is entirely new. When a
	// is the overall hypothesis's influencing variable, (a,c) is the
	// goal pair itself, already holding the DynamicList from
	// materialization — that container must keep accumulating into
	// Phase 2's staged set, not be replaced.
	if _, exists := s.containers[pair{a, c}]; !exists {
		s.containers[pair{a, c}] = container.NewOverlapMap()
	}

	sl.IntervalHeightAndTransitives(s, bc, a, c, s.goal)
}

// adder is the shape shared by OverlapMap and DynamicList's staging
// method, letting CreateTransitive feed a composed statement into
// whichever of the two already occupies (a,c).
type adder interface {
	Add(statement.Statement, bool) bool
}

// CreateTransitive implements container.TransitiveBuilder. It looks up
// the tightest cover of st's y-range in next, composes the two via
// Transitivity, and — on success — stages the result into whatever
// container already occupies (a,c) and records the a->c edge without a
// cycle check, since the edge is derived from an already-acyclic path.
func (s *Solver) CreateTransitive(st statement.Statement, next *container.OverlapMap, a, c string) (statement.Statement, bool) {
	cover, ok := next.Slimmest(st.BeginY, st.EndY)
	if !ok {
		return statement.Statement{}, false
	}

	result, ok := rules.Transitivity(st, cover)
	if !ok {
		return statement.Statement{}, false
	}

	target, ok := s.containers[pair{a, c}].(adder)
	if !ok {
		return statement.Statement{}, false
	}
	if target.Add(result, true) {
		s.graph.Add(a, c, false)
	}
	return result, true
}

// Len reports the total normalized statement count across every
// container materialized by the last Solve call.
func (s *Solver) Len() int {
	total := 0
	for _, c := range s.containers {
		total += len(c.Statements())
	}
	return total
}

// Pair identifies a variable pair in a Snapshot.
type Pair struct {
	Influencing, Influenced string
}

// Snapshot is a read-only view of the normalized statements behind
// every container materialized by the last Solve call, for rendering or
// inspection. It holds no reference back into the solver.
type Snapshot struct {
	Pairs map[Pair][]statement.Statement
}

// Snapshot captures the current container set. Render and similar
// collaborators never see the solver itself, only this copy.
func (s *Solver) Snapshot() Snapshot {
	out := make(map[Pair][]statement.Statement, len(s.containers))
	for p, c := range s.containers {
		stmts := c.Statements()
		out[Pair{p.a, p.b}] = append([]statement.Statement(nil), stmts...)
	}
	return Snapshot{Pairs: out}
}

// reflexive decides a hypothesis whose influencing and influenced
// variables coincide: it holds iff the quality permits a self-loop
// (Mono or Arb, never Anti or Cons) and the y-range lies within the
// x-range.
func reflexive(h statement.Statement) bool {
	if h.Q == quality.Anti || h.Q == quality.Cons {
		return false
	}
	return h.Enveloping(h.BeginY, h.EndY)
}

func filterOverlapsY(list []statement.Statement, lo, hi float64) []statement.Statement {
	out := make([]statement.Statement, 0, len(list))
	for _, s := range list {
		if s.OverlapsY(lo, hi) {
			out = append(out, s)
		}
	}
	return out
}

func indexOf(list []statement.Statement, st statement.Statement) int {
	for i, s := range list {
		if s == st {
			return i
		}
	}
	return -1
}

func removeAt(list []statement.Statement, idx int) []statement.Statement {
	return append(list[:idx], list[idx+1:]...)
}
