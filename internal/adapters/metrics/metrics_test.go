package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/impact/internal/adapters/metrics"
	"go.trai.ch/impact/internal/core/domain"
	"go.trai.ch/impact/internal/core/ports"
)

var _ ports.Metrics = (*metrics.Recorder)(nil)

func sampleStats() domain.SelectionStats {
	return domain.SelectionStats{
		Build: domain.BuildStats{
			Files:      10,
			Parsed:     4,
			Reused:     5,
			Reresolved: 1,
			Degraded:   1,
			Edges:      14,
			Tests:      3,
		},
		Changed:     2,
		Selected:    3,
		Fallback:    true,
		Diagnostics: 1,
		Duration:    40 * time.Millisecond,
	}
}

func TestRecorder_Observe(t *testing.T) {
	r := metrics.NewRecorder()
	r.Observe(sampleStats())
	r.Observe(sampleStats())

	count, err := testutil.GatherAndCount(r.Registry(),
		"impact_selections_total", "impact_fallback_selections_total", "impact_catalog_files")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	problems, err := testutil.GatherAndLint(r.Registry())
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestRecorder_Values(t *testing.T) {
	r := metrics.NewRecorder()
	r.Observe(sampleStats())
	r.Observe(domain.SelectionStats{Selected: 1})

	families, err := r.Registry().Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				key := mf.GetName()
				for _, l := range m.GetLabel() {
					key += "/" + l.GetValue()
				}
				values[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[mf.GetName()] = m.GetGauge().GetValue()
			}
		}
	}

	assert.InDelta(t, 2, values["impact_selections_total"], 0)
	assert.InDelta(t, 1, values["impact_fallback_selections_total"], 0)
	assert.InDelta(t, 4, values["impact_modules_total/parsed"], 0)
	assert.InDelta(t, 5, values["impact_modules_total/reused"], 0)
	assert.InDelta(t, 1, values["impact_selected_tests"], 0)
	assert.InDelta(t, 0, values["impact_catalog_files"], 0)
}

func TestRecorder_WriteFile(t *testing.T) {
	r := metrics.NewRecorder()
	r.Observe(sampleStats())

	path := filepath.Join(t.TempDir(), "textfile", "impact.prom")
	require.NoError(t, r.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "impact_selected_tests 3")
	assert.Contains(t, string(data), `impact_modules_total{outcome="degraded"} 1`)
}

func TestRecorder_WriteFile_Unwritable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	err := metrics.NewRecorder().WriteFile(filepath.Join(blocker, "impact.prom"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create metrics directory")
}
