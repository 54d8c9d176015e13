package orm

import (
	"context"

	"mini-orm/core/metrics"
	"mini-orm/core/schema"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// State is the phase of a Context's save cycle.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateFailed
	StateInTransaction
	StateCommitted
	StateRolledBack
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateFailed:
		return "failed"
	case StateInTransaction:
		return "in_transaction"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

// Model collects the declared entity sets, in declaration order.
type Model struct {
	reg *registry
	err error
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{reg: newRegistry()}
}

// Declare registers a set named name for entity type T. The name is also the
// table name unless the mapping sets one. Declaring T twice makes Open fail.
func Declare[T any](m *Model, name string, mapping *schema.Mapping[T]) *Set[T] {
	s := newSet(name, mapping)
	if err := m.reg.add(s); err != nil && m.err == nil {
		m.err = err
	}
	return s
}

// reset empties every set so a failed Open leaves no loaded state behind.
func (m *Model) reset() {
	for _, s := range m.reg.sets {
		s.reset()
	}
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger used for load and save cycles.
func WithLogger(l *zap.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMetrics sets the Prometheus collector.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *Context) {
		c.metrics = m
	}
}

// WithValidator replaces the validator used for field rules.
func WithValidator(v *validator.Validate) Option {
	return func(c *Context) {
		if v != nil {
			c.validate = v
		}
	}
}

// Context is a loaded unit of work over a Store.
// It is not safe for concurrent use.
type Context struct {
	model    *Model
	store    Store
	log      *zap.Logger
	metrics  *metrics.Collector
	validate *validator.Validate
	state    State
}

// Open checks every declaration, loads every set in declaration order and
// then resolves relations. Any failure leaves no Context behind and empties
// the declared sets again.
func Open(ctx context.Context, store Store, model *Model, opts ...Option) (*Context, error) {
	if model.err != nil {
		return nil, model.err
	}

	c := &Context{
		model:    model,
		store:    store,
		log:      zap.NewNop(),
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, s := range model.reg.sets {
		if err := s.check(); err != nil {
			return nil, err
		}
	}

	for _, s := range model.reg.sets {
		if err := s.load(ctx, store); err != nil {
			c.log.Error("Failed to load set", zap.String("set", s.setName()), zap.Error(err))
			model.reset()
			return nil, err
		}
		n := s.loaded()
		c.metrics.SetLoaded(s.tableInfo().Name, n)
		c.log.Debug("Loaded set",
			zap.String("set", s.setName()),
			zap.String("table", s.tableInfo().Name),
			zap.Int("entities", n),
		)
	}

	for _, s := range model.reg.sets {
		if err := s.mapRelations(model.reg); err != nil {
			c.log.Error("Failed to map relations", zap.String("set", s.setName()), zap.Error(err))
			model.reset()
			return nil, err
		}
	}

	c.log.Info("Context opened", zap.Int("sets", len(model.reg.sets)))
	return c, nil
}

// State returns the phase reached by the last save cycle.
func (c *Context) State() State {
	return c.state
}

// Sets returns the declared set names, in declaration order.
func (c *Context) Sets() []string {
	names := make([]string, len(c.model.reg.sets))
	for i, s := range c.model.reg.sets {
		names[i] = s.setName()
	}
	return names
}

// Tables returns the discovered table of every set, in declaration order.
func (c *Context) Tables() []*schema.Table {
	tables := make([]*schema.Table, len(c.model.reg.sets))
	for i, s := range c.model.reg.sets {
		tables[i] = s.tableInfo()
	}
	return tables
}
