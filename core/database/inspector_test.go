package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	// Setup In-Memory DB
	cfg := Config{
		Driver: "sqlite",
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	require.NoError(t, err)
	require.NotNil(t, db)

	err = db.Exec("CREATE TABLE Items (Id INTEGER PRIMARY KEY, Name TEXT NOT NULL, Description TEXT DEFAULT 'n/a')").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "Items")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	assert.Equal(t, "Id", columns[0].Field)
	assert.Equal(t, "integer", columns[0].Type)
	assert.Equal(t, "PRI", columns[0].Key)
	assert.True(t, columns[0].IsIdentity())

	assert.Equal(t, "Name", columns[1].Field)
	assert.Equal(t, "NO", columns[1].Null)
	assert.False(t, columns[1].IsIdentity())

	require.NotNil(t, columns[2].Default)
	assert.Equal(t, "'n/a'", *columns[2].Default)
	assert.Equal(t, "YES", columns[2].Null)

	// PRAGMA table_info returns an empty result for a missing table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestGetTableColumns_CompositeKeyIsNotIdentity(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE Links (A INTEGER, B INTEGER, PRIMARY KEY (A, B))").Error)

	columns, err := GetTableColumns(db, "Links")

	require.NoError(t, err)
	require.Len(t, columns, 2)
	for _, c := range columns {
		assert.Equal(t, "PRI", c.Key)
		assert.False(t, c.IsIdentity())
	}
}

func TestGetTableColumns_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("Id", "INT(11)", "NO", "PRI", nil, "auto_increment").
		AddRow("Name", "VARCHAR(50)", "NO", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `Departments`").WillReturnRows(rows)

	columns, err := GetTableColumns(db, "Departments")

	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "Id", columns[0].Field)
	assert.Equal(t, "int(11)", columns[0].Type)
	assert.True(t, columns[0].IsIdentity())
	assert.Equal(t, "varchar(50)", columns[1].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}
