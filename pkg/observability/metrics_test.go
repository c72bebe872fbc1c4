package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/canopy"
	"github.com/aretw0/canopy/pkg/schema"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	root := canopy.MustNew(
		map[string]any{"a": schema.Int(), "b": schema.Int()},
		canopy.WithName("pair"),
		canopy.WithHooks(m.Hooks()),
	)

	root.Parse(map[string]any{"a": 1, "b": 2})
	root.Parse(map[string]any{"a": "x"})
	root.Parse(map[string]any{"a": 1, "b": 2})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Parses.WithLabelValues("pair", "valid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Parses.WithLabelValues("pair", "invalid")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Errors.WithLabelValues("pair")))

	count, err := testutil.GatherAndCount(reg, "canopy_parse_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewMetrics_Unregistered(t *testing.T) {
	m := NewMetrics(nil)
	m.Observe(&canopy.ParseEvent{Schema: "s", Errors: 3})
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Errors.WithLabelValues("s")))
}
