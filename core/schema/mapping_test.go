package schema

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type owner struct {
	ID    int64
	Title string
	Note  *string
	Seen  time.Time
	items []*item
}

type item struct {
	ID      int32
	OwnerID int64
	owner   *owner
}

type link struct {
	OwnerID int64
	ItemID  int32
	owner   *owner
	item    *item
}

func ownerMapping() *Mapping[owner] {
	return NewMapping(
		Scalar("Id", func(o *owner) *int64 { return &o.ID }).PrimaryKey(),
		Scalar("Title", func(o *owner) *string { return &o.Title }).Required().Validate("max=10"),
		Nullable("Note", func(o *owner) **string { return &o.Note }),
		Scalar("Seen", func(o *owner) *time.Time { return &o.Seen }),
	).Relate(
		HasMany(func(o *owner) *[]*item { return &o.items }),
	)
}

func itemMapping() *Mapping[item] {
	return NewMapping(
		Scalar("Id", func(i *item) *int32 { return &i.ID }).PrimaryKey(),
		Scalar("OwnerId", func(i *item) *int64 { return &i.OwnerID }),
	).Relate(
		RefersTo("OwnerId", func(i *item) **owner { return &i.owner }),
	)
}

func linkMapping() *Mapping[link] {
	return NewMapping(
		Scalar("OwnerId", func(l *link) *int64 { return &l.OwnerID }).PrimaryKey(),
		Scalar("ItemId", func(l *link) *int32 { return &l.ItemID }).PrimaryKey(),
	).Relate(
		RefersTo("OwnerId", func(l *link) **owner { return &l.owner }),
		RefersTo("ItemId", func(l *link) **item { return &l.item }),
	).AsJoin()
}

func TestField_GetSet(t *testing.T) {
	m := ownerMapping()
	o := &owner{}

	require.NoError(t, m.Field("id").Set(o, []byte("17")))
	require.NoError(t, m.Field("Title").Set(o, "boss"))
	require.NoError(t, m.Field("Note").Set(o, "memo"))

	assert.Equal(t, int64(17), o.ID)
	assert.Equal(t, "boss", o.Title)
	require.NotNil(t, o.Note)
	assert.Equal(t, "memo", *o.Note)
	assert.Equal(t, "memo", m.Field("Note").Get(o))

	require.NoError(t, m.Field("Note").Set(o, nil))
	assert.Nil(t, o.Note)
	assert.Nil(t, m.Field("Note").Get(o))

	require.NoError(t, m.Field("Title").Set(o, nil))
	assert.Equal(t, "", o.Title)

	assert.Error(t, m.Field("Id").Set(o, "seventeen"))
}

func TestField_Info(t *testing.T) {
	info := ownerMapping().Field("Title").Info()
	assert.Equal(t, "Title", info.Name)
	assert.Equal(t, TypeString, info.Type)
	assert.True(t, info.Required)
	assert.Equal(t, "max=10", info.Rules)
	assert.False(t, info.Key)
}

func TestMapping_KeysAndReferences(t *testing.T) {
	lm := linkMapping()
	l := &link{OwnerID: 3, ItemID: 4}

	assert.Equal(t, []any{int64(3), int32(4)}, lm.KeyValues(l))
	assert.Equal(t, []string{"OwnerId"}, lm.ReferencesTo(reflect.TypeFor[owner]()))
	assert.Equal(t, []string{"ItemId"}, lm.ReferencesTo(reflect.TypeFor[item]()))
	assert.Empty(t, itemMapping().ReferencesTo(reflect.TypeFor[link]()))
}

func TestRelation_Assign(t *testing.T) {
	o := &owner{ID: 1}
	i1, i2 := &item{ID: 1}, &item{ID: 2}

	ownerMapping().Relations[0].Assign(o, []any{i1, i2})
	assert.Equal(t, []*item{i1, i2}, o.items)

	itemMapping().Relations[0].Assign(i1, []any{o})
	assert.Same(t, o, i1.owner)

	ownerMapping().Relations[0].Assign(o, nil)
	assert.NotNil(t, o.items)
	assert.Empty(t, o.items)
}

func TestMapping_Check(t *testing.T) {
	assert.NoError(t, ownerMapping().Check("Owners"))
	assert.NoError(t, itemMapping().Check("Items"))
	assert.NoError(t, linkMapping().Check("Links"))

	tests := []struct {
		name    string
		mapping func() error
		reason  string
	}{
		{
			name: "no key",
			mapping: func() error {
				return NewMapping(Scalar("Title", func(o *owner) *string { return &o.Title })).Check("Owners")
			},
			reason: "no primary key",
		},
		{
			name: "duplicate field",
			mapping: func() error {
				return NewMapping(
					Scalar("Id", func(o *owner) *int64 { return &o.ID }).PrimaryKey(),
					Scalar("ID", func(o *owner) *int64 { return &o.ID }),
				).Check("Owners")
			},
			reason: "declared twice",
		},
		{
			name: "unknown foreign key",
			mapping: func() error {
				return NewMapping(
					Scalar("Id", func(i *item) *int32 { return &i.ID }).PrimaryKey(),
				).Relate(RefersTo("OwnerId", func(i *item) **owner { return &i.owner })).Check("Items")
			},
			reason: "foreign key OwnerId",
		},
		{
			name: "join with single key",
			mapping: func() error {
				return NewMapping(
					Scalar("OwnerId", func(l *link) *int64 { return &l.OwnerID }).PrimaryKey(),
					Scalar("ItemId", func(l *link) *int32 { return &l.ItemID }),
				).Relate(
					RefersTo("OwnerId", func(l *link) **owner { return &l.owner }),
				).AsJoin().Check("Links")
			},
			reason: "exactly two key fields",
		},
		{
			name: "join key not a foreign key",
			mapping: func() error {
				return NewMapping(
					Scalar("OwnerId", func(l *link) *int64 { return &l.OwnerID }).PrimaryKey(),
					Scalar("ItemId", func(l *link) *int32 { return &l.ItemID }).PrimaryKey(),
				).Relate(
					RefersTo("OwnerId", func(l *link) **owner { return &l.owner }),
				).AsJoin().Check("Links")
			},
			reason: "not a foreign key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mapping()
			var schemaErr *SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.Contains(t, schemaErr.Reason, tt.reason)
		})
	}
}
