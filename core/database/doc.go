// Package database handles database connections, schema inspection and the
// SQL side of reconciliation.
//
// It provides a wrapper around GORM to configure MySQL or SQLite connections
// based on the application's configuration.
//
// # Connect
//
// Connect opens the configured driver and verifies the connection with a ping.
// MySQL DSNs always enable clientFoundRows so that UPDATE reports matched rows;
// the engine requires exactly one affected row per keyed update, even when the
// new values equal the stored ones.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns in ordinal order, through SHOW COLUMNS
// on MySQL and PRAGMA table_info on SQLite. Auto-increment columns (and a lone
// INTEGER primary key on SQLite) are reported as identity columns.
//
// # Store
//
// Connection implements orm.Store. Reads select every row of a table. Writes run
// inside the transaction returned by Begin: one multi-row INSERT per set, then one
// UPDATE and one DELETE per entity, each checked against the row-count policy.
//
// # Usage
//
//	conn, err := database.Open(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", zap.Error(err))
//	}
//	defer conn.Close()
//
//	columns, err := database.GetTableColumns(conn.DB(), "Employees")
package database
