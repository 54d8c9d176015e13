package orm

import "context"

// Reader loads table shapes and rows.
type Reader interface {
	// FetchColumnNames returns the table's columns in ordinal order.
	FetchColumnNames(ctx context.Context, table string) ([]string, error)
	// FetchIdentityColumns returns the server-generated columns of the table.
	FetchIdentityColumns(ctx context.Context, table string) ([]string, error)
	// FetchRows returns every row of table, values positioned like columns.
	FetchRows(ctx context.Context, table string, columns []string) ([][]any, error)
}

// Writer applies reconciliation statements. Implementations enforce the
// row-count policy with CheckInserted, CheckUpdated and CheckDeleted.
type Writer interface {
	// InsertRows issues a single batched insert of rows. When identity names
	// a server-generated column, it returns the generated values in row order.
	InsertRows(ctx context.Context, table string, columns []string, rows [][]any, identity string) ([]any, error)
	// UpdateRows issues one update per row, keyed by keys[i].
	UpdateRows(ctx context.Context, table string, columns []string, values [][]any, keyColumns []string, keys [][]any) error
	// DeleteRows issues one delete per key.
	DeleteRows(ctx context.Context, table string, keyColumns []string, keys [][]any) error
}

// Transaction is a Writer bound to one open transaction.
type Transaction interface {
	Writer
	Commit() error
	Rollback() error
}

// Store is the database collaborator consumed by the engine.
type Store interface {
	Reader
	// Begin opens the transaction used for one reconciliation cycle.
	Begin(ctx context.Context) (Transaction, error)
}
