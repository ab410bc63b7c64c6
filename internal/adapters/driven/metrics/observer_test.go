package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

func TestObserver_RecordsSearches(t *testing.T) {
	reg := prometheus.NewRegistry()
	o, err := NewObserver(reg)
	require.NoError(t, err)

	o.ObserveSearch("terms", 3*time.Millisecond, 4, domain.SearchErrorNone)
	o.ObserveSearch("terms", time.Millisecond, 0, domain.SearchErrorEmptyInput)
	o.ObserveSearch("regex", time.Millisecond, 0, domain.SearchErrorInvalidPattern)

	assert.Equal(t, 1.0, testutil.ToFloat64(o.searches.WithLabelValues("terms", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.searches.WithLabelValues("terms", "empty_input")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.searches.WithLabelValues("regex", "invalid_pattern")))

	assert.Equal(t, 2, testutil.CollectAndCount(o.duration, "proxsearch_search_duration_seconds"))
	assert.Equal(t, 1, testutil.CollectAndCount(o.results, "proxsearch_search_results"))
}

func TestObserver_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewObserver(reg)
	require.NoError(t, err)
	second, err := NewObserver(reg)
	require.NoError(t, err)

	first.ObserveSearch("regex", time.Millisecond, 1, domain.SearchErrorNone)
	second.ObserveSearch("regex", time.Millisecond, 1, domain.SearchErrorNone)

	assert.Same(t, first.searches, second.searches)
	assert.Equal(t, 2.0, testutil.ToFloat64(second.searches.WithLabelValues("regex", OutcomeOK)))
}

func TestObserver_NilIsSafe(t *testing.T) {
	var o *Observer
	assert.NotPanics(t, func() {
		o.ObserveSearch("terms", time.Millisecond, 1, domain.SearchErrorNone)
	})
}
