package orm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_AddRejectsNil(t *testing.T) {
	hr := mustOpenHR(t, seededStore())

	err := hr.Projects.Add(nil)

	var nullErr *NullEntityError
	require.ErrorAs(t, err, &nullErr)
	assert.Equal(t, "add", nullErr.Op)
	assert.Equal(t, 2, hr.Projects.Len())
}

func TestSet_RemoveRejectsNil(t *testing.T) {
	hr := mustOpenHR(t, seededStore())

	ok, err := hr.Projects.Remove(nil)

	var nullErr *NullEntityError
	require.ErrorAs(t, err, &nullErr)
	assert.False(t, ok)
}

func TestSet_AddAppendsInOrder(t *testing.T) {
	hr := mustOpenHR(t, seededStore())
	p := &project{ID: 3, Name: "Mercury"}

	require.NoError(t, hr.Projects.Add(p))

	assert.Equal(t, 3, hr.Projects.Len())
	assert.Same(t, p, hr.Projects.Last())
	assert.True(t, hr.Projects.Contains(p))
	assert.Equal(t, []*project{p}, hr.Projects.Tracker().Added())

	var names []string
	for e := range hr.Projects.All() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Apollo", "Gemini", "Mercury"}, names)
}

func TestSet_RemoveUsesIdentity(t *testing.T) {
	hr := mustOpenHR(t, seededStore())

	lookalike := &project{ID: 1, Name: "Apollo"}
	ok, err := hr.Projects.Remove(lookalike)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, hr.Projects.Tracker().Removed())

	apollo := hr.Projects.First()
	ok, err = hr.Projects.Remove(apollo)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, hr.Projects.Contains(apollo))
	assert.Equal(t, []*project{apollo}, hr.Projects.Tracker().Removed())
}

func TestSet_RemovingPendingAddCancelsIt(t *testing.T) {
	hr := mustOpenHR(t, seededStore())
	p := &project{ID: 3, Name: "Mercury"}
	require.NoError(t, hr.Projects.Add(p))

	ok, err := hr.Projects.Remove(p)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, hr.Projects.Tracker().Added())
	assert.Empty(t, hr.Projects.Tracker().Removed())
}

func TestSet_ClearRemovesEverything(t *testing.T) {
	hr := mustOpenHR(t, seededStore())

	require.NoError(t, hr.Links.Clear())

	assert.Zero(t, hr.Links.Len())
	assert.Len(t, hr.Links.Tracker().Removed(), 3)
	assert.Nil(t, hr.Links.First())
	assert.Nil(t, hr.Links.Last())
}

func TestSet_RemoveRange(t *testing.T) {
	hr := mustOpenHR(t, seededStore())
	links := hr.Links.Slice()

	require.NoError(t, hr.Links.RemoveRange(links[:2]))

	assert.Equal(t, 1, hr.Links.Len())
	assert.Same(t, links[2], hr.Links.First())
}

func TestSet_SliceIsACopy(t *testing.T) {
	hr := mustOpenHR(t, seededStore())

	s := hr.Projects.Slice()
	s[0] = nil

	assert.NotNil(t, hr.Projects.First())
}

func TestSet_Find(t *testing.T) {
	hr := mustOpenHR(t, seededStore())

	assert.Equal(t, "Gemini", hr.Projects.Find(func(p *project) bool { return p.ID == 2 }).Name)
	assert.Nil(t, hr.Projects.Find(func(p *project) bool { return p.ID == 7 }))
	assert.Equal(t, "Projects", hr.Projects.Name())
	assert.Equal(t, "Projects", hr.Projects.Table().Name)
}

func TestSet_AddBackRemovedEntityCancelsDelete(t *testing.T) {
	store := seededStore()
	hr := mustOpenHR(t, store)
	gemini := hr.Projects.Last()

	_, err := hr.Projects.Remove(gemini)
	require.NoError(t, err)
	require.NoError(t, hr.Projects.Add(gemini))

	assert.True(t, hr.Projects.Contains(gemini))
	assert.Equal(t, 2, hr.Projects.Len())
	assert.Empty(t, hr.Projects.Tracker().Added())
	assert.Empty(t, hr.Projects.Tracker().Removed())

	gemini.Name = "Gemini 2"
	require.NoError(t, hr.SaveChanges(context.Background()))
	assert.Equal(t, []string{"update Projects [2]", "commit"}, store.log)
	assert.Len(t, store.rows("Projects"), 2)
}

func TestSet_AddRejectsLiveEntity(t *testing.T) {
	store := seededStore()
	hr := mustOpenHR(t, store)
	ops := &department{Name: "Ops"}
	require.NoError(t, hr.Departments.Add(ops))

	for _, e := range []*department{hr.Departments.First(), ops} {
		err := hr.Departments.Add(e)

		var stateErr *EntityStateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, "Departments", stateErr.Set)
		assert.Equal(t, "add", stateErr.Op)
	}
	assert.Equal(t, 3, hr.Departments.Len())
	assert.Equal(t, []*department{ops}, hr.Departments.Tracker().Added())

	require.NoError(t, hr.SaveChanges(context.Background()))
	assert.Equal(t, []string{"insert Departments 1", "commit"}, store.log)
}
