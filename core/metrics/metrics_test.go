package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveStatement(t *testing.T) {
	c := New("test")

	c.ObserveStatement("insert", "Employees", 3, nil)
	c.ObserveStatement("update", "Employees", 0, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Statements.WithLabelValues("insert", "Employees", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Statements.WithLabelValues("update", "Employees", "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.RowsAffected.WithLabelValues("insert", "Employees")))
}

func TestObserveCycle(t *testing.T) {
	c := New("test")

	c.ObserveCycle("committed", 20*time.Millisecond)
	c.ObserveCycle("rolled_back", time.Millisecond)
	c.ObserveCycle("committed", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Cycles.WithLabelValues("committed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Cycles.WithLabelValues("rolled_back")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.CycleDuration))
}

func TestSetLoaded(t *testing.T) {
	c := New("test")
	c.SetLoaded("Departments", 4)
	c.SetLoaded("Departments", 5)
	assert.Equal(t, 5.0, testutil.ToFloat64(c.Loaded.WithLabelValues("Departments")))
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveStatement("insert", "t", 1, nil)
		c.ObserveCycle("committed", time.Second)
		c.SetLoaded("t", 1)
	})
	assert.Nil(t, c.Registry())
}

func TestHandler(t *testing.T) {
	c := New("test")
	c.SetLoaded("Projects", 2)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `test_loaded_entities{table="Projects"} 2`))
}

func TestCollectorsAreIndependent(t *testing.T) {
	a := New("test")
	b := New("test")
	a.ObserveCycle("committed", time.Millisecond)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Cycles.WithLabelValues("committed")))
}
