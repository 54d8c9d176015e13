package orm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mini-orm/core/logger"
	"mini-orm/core/metrics"
	"mini-orm/core/schema"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChangeSummary counts the pending work of one set.
type ChangeSummary struct {
	Table    string `json:"table" yaml:"table"`
	Added    int    `json:"added" yaml:"added"`
	Modified int    `json:"modified" yaml:"modified"`
	Removed  int    `json:"removed" yaml:"removed"`
}

// Empty reports whether the set has nothing to write.
func (c ChangeSummary) Empty() bool {
	return c.Added == 0 && c.Modified == 0 && c.Removed == 0
}

type persistStats struct {
	inserted int
	updated  int
	deleted  int
}

func (p *persistStats) add(o persistStats) {
	p.inserted += o.inserted
	p.updated += o.updated
	p.deleted += o.deleted
}

type observer struct {
	log     *zap.Logger
	metrics *metrics.Collector
}

func (o observer) statement(op, table string, rows int, err error) {
	var affected int64
	if err == nil {
		affected = int64(rows)
	}
	o.metrics.ObserveStatement(op, table, affected, err)
	if err != nil {
		o.log.Warn("Write failed", zap.String("op", op), zap.String("table", table), zap.Int("rows", rows), zap.Error(err))
		return
	}
	o.log.Debug("Write applied", zap.String("op", op), zap.String("table", table), zap.Int("rows", rows))
}

var errCommit = errors.New("commit failed")

// txScope ends a transaction exactly once: commit when the cycle succeeded,
// rollback otherwise.
type txScope struct {
	tx        Transaction
	committed bool
}

func (s *txScope) finish(err error) error {
	if err != nil {
		if rbErr := s.tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
		}
		return err
	}
	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", errCommit, err)
	}
	s.committed = true
	return nil
}

// Changes previews the pending work of every set without touching the store.
func (c *Context) Changes() ([]ChangeSummary, error) {
	out := make([]ChangeSummary, 0, len(c.model.reg.sets))
	for _, s := range c.model.reg.sets {
		sum, err := s.summary()
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, nil
}

// SaveChanges reconciles the store with memory in one transaction: for every
// set in declaration order it inserts pending adds, updates modified entities
// and deletes pending removes. It either returns nil with the store matching
// memory, or one error with the store unchanged.
func (c *Context) SaveChanges(ctx context.Context) error {
	start := time.Now()
	log := logger.WithCycle(c.log, uuid.NewString())
	obs := observer{log: log, metrics: c.metrics}

	c.state = StateValidating
	for _, s := range c.model.reg.sets {
		if err := s.validate(c.validate); err != nil {
			c.state = StateFailed
			c.metrics.ObserveCycle("invalid", time.Since(start))
			log.Warn("Validation failed", zap.Error(err))
			return err
		}
	}

	tx, err := c.store.Begin(ctx)
	if err != nil {
		c.state = StateFailed
		c.metrics.ObserveCycle("failed", time.Since(start))
		log.Error("Failed to begin transaction", zap.Error(err))
		return err
	}
	c.state = StateInTransaction

	scope := &txScope{tx: tx}
	var stats persistStats
	for _, s := range c.model.reg.sets {
		st, perr := s.persist(ctx, tx, obs)
		stats.add(st)
		if perr != nil {
			err = perr
			break
		}
	}

	if err = scope.finish(err); err != nil {
		if errors.Is(err, errCommit) {
			c.state = StateFailed
		} else {
			c.state = StateRolledBack
		}
		c.metrics.ObserveCycle(c.state.String(), time.Since(start))
		log.Error("Save cycle aborted", zap.Stringer("state", c.state), zap.Error(err))
		return err
	}

	c.state = StateCommitted
	for _, s := range c.model.reg.sets {
		s.accept()
		c.metrics.SetLoaded(s.tableInfo().Name, s.loaded())
	}
	c.metrics.ObserveCycle(c.state.String(), time.Since(start))
	log.Info("Save cycle committed",
		zap.Int("inserted", stats.inserted),
		zap.Int("updated", stats.updated),
		zap.Int("deleted", stats.deleted),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// persist writes the set's pending work through w.
func (s *Set[T]) persist(ctx context.Context, w Writer, obs observer) (persistStats, error) {
	var stats persistStats
	table := s.table
	columns := table.Writable()
	fields := s.fieldsFor(columns)
	keyColumns := table.Keys

	if len(s.tracker.added) > 0 {
		rows := make([][]any, len(s.tracker.added))
		for i, e := range s.tracker.added {
			rows[i] = valuesOf(fields, e)
		}
		identity := table.IdentityKey()
		generated, err := w.InsertRows(ctx, table.Name, columns, rows, identity)
		obs.statement("insert", table.Name, len(rows), err)
		if err != nil {
			return stats, err
		}
		if identity != "" {
			if err := s.assignGenerated(identity, generated); err != nil {
				return stats, err
			}
		}
		stats.inserted = len(rows)
	}

	modified, err := s.tracker.Modified(table.Name, s.entities)
	if err != nil {
		return stats, err
	}
	if len(modified) > 0 {
		values := make([][]any, len(modified))
		keys := make([][]any, len(modified))
		for i, e := range modified {
			values[i] = valuesOf(fields, e)
			keys[i] = s.mapping.KeyValues(e)
		}
		err := w.UpdateRows(ctx, table.Name, columns, values, keyColumns, keys)
		obs.statement("update", table.Name, len(modified), err)
		if err != nil {
			return stats, err
		}
		stats.updated = len(modified)
	}

	if len(s.tracker.removed) > 0 {
		keys := make([][]any, len(s.tracker.removed))
		for i, e := range s.tracker.removed {
			key, ok := s.tracker.OriginalKey(e)
			if !ok {
				key = s.mapping.KeyValues(e)
			}
			keys[i] = key
		}
		err := w.DeleteRows(ctx, table.Name, keyColumns, keys)
		obs.statement("delete", table.Name, len(keys), err)
		if err != nil {
			return stats, err
		}
		stats.deleted = len(keys)
	}

	return stats, nil
}

// assignGenerated stores the server-generated keys into the pending adds, in
// insert order, so the commit can baseline them like loaded entities.
func (s *Set[T]) assignGenerated(identity string, generated []any) error {
	if len(generated) != len(s.tracker.added) {
		return fmt.Errorf("insert into %s returned %d generated keys for %d rows",
			s.table.Name, len(generated), len(s.tracker.added))
	}
	f := s.mapping.Field(identity)
	for i, e := range s.tracker.added {
		if err := f.Set(e, generated[i]); err != nil {
			return fmt.Errorf("insert into %s: %w", s.table.Name, err)
		}
	}
	return nil
}

func (s *Set[T]) fieldsFor(columns []string) []*schema.Field[T] {
	fields := make([]*schema.Field[T], len(columns))
	for i, c := range columns {
		fields[i] = s.mapping.Field(c)
	}
	return fields
}

func valuesOf[T any](fields []*schema.Field[T], e *T) []any {
	values := make([]any, len(fields))
	for i, f := range fields {
		values[i] = f.Get(e)
	}
	return values
}
