// Package orm is a minimal change-tracking object mapper.
//
// A Model declares one Set per entity type, each with an explicit
// schema.Mapping. Open loads every set from a Store, snapshots the loaded
// values and wires navigations. Application code then mutates entities and
// sets in memory and calls SaveChanges, which reconciles the store with memory
// inside a single transaction.
//
// # Loading
//
// Open runs in three phases, all of which must succeed:
//  1. every mapping is checked, before any I/O;
//  2. every set, in declaration order, discovers its table and loads all rows;
//  3. every set resolves its RefersTo and HasMany navigations.
//
// # Saving
//
// SaveChanges moves through the states
//
//	Idle -> Validating -> Failed | InTransaction -> Committed | RolledBack
//
// Validation errors are returned before the store is touched. Inside the
// transaction each set issues one batched insert for pending adds, one update
// per modified entity and one delete per pending remove; any row-count
// mismatch rolls the whole cycle back. After a commit the live state becomes
// the new baseline.
//
// # Usage
//
//	model := orm.NewModel()
//	people := orm.Declare(model, "People", personMapping)
//	db, err := orm.Open(ctx, store, model, orm.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	people.First().Name = "Ada"
//	err = db.SaveChanges(ctx)
package orm
