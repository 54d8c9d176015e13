// Package schema holds the explicit persistence descriptors of entity types and
// derives their table shape from the store.
//
// Every persisted type registers a Mapping: an ordered list of Fields (name,
// type tag, getter, setter, key/required flags) plus Relations. Getters and
// setters are closures over the struct fields, so loading, snapshotting and
// diffing never inspect entity types at runtime.
//
// # Type Tags
//
// TypeTag is the closed enumeration of supported scalar types (text, signed and
// unsigned integers, decimal, bool, timestamp). Normalize turns raw driver values
// into canonical Go values and Equal compares them: decimals by exact value,
// timestamps to full precision, nil only to nil.
//
// # Discovery
//
// Discover resolves the table name (explicit override, else the set name), the
// persisted columns (mapping fields present in the store), the key columns and
// the identity (server-generated) columns.
//
// # Usage
//
//	mapping := schema.NewMapping(
//	    schema.Scalar("Id", func(d *Department) *int32 { return &d.ID }).PrimaryKey(),
//	    schema.Scalar("Name", func(d *Department) *string { return &d.Name }).Required(),
//	).Relate(
//	    schema.HasMany(func(d *Department) *[]*Employee { return &d.employees }),
//	)
//
//	table, err := schema.Discover(ctx, conn, "Departments", mapping)
package schema
