package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/predictionsbetting/internal/models"
)

func TestPrometheusMetrics(t *testing.T) {
	pm := NewPrometheusMetrics()

	pm.PropositionScored()
	pm.PropositionScored()
	pm.PropositionSkipped("no result yet")
	pm.PropositionSkipped("")
	pm.TransfersRecorded(models.Straight, []models.Transfer{
		{Amount: 1, Payer: "a", Payee: "b", Method: models.Straight},
		{Amount: 1, Payer: "a", Payee: "c", Method: models.Straight},
	})

	assert.Equal(t, 2.0, testutil.ToFloat64(pm.scored))
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.skipped.WithLabelValues("no result yet")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.skipped.WithLabelValues("unknown")))
	assert.Equal(t, 2.0, testutil.ToFloat64(pm.transfers.WithLabelValues("Straight")))
}

func TestPrometheusMetrics_Independent(t *testing.T) {
	a := NewPrometheusMetrics()
	b := NewPrometheusMetrics()
	a.PropositionScored()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.scored))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.scored))
}

func TestWriteTextfile(t *testing.T) {
	pm := NewPrometheusMetrics()
	pm.PropositionScored()

	path := filepath.Join(t.TempDir(), "predictbet.prom")
	require.NoError(t, pm.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "predictbet_propositions_scored_total 1")
}

func TestNop(t *testing.T) {
	var r Recorder = Nop{}
	r.PropositionScored()
	r.PropositionSkipped("x")
	r.TransfersRecorded(models.FullContract, nil)
}
