package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestObserveProfileUpdate(t *testing.T) {
	okBefore := counterValue(t, ProfileUpdates.WithLabelValues("notice", StatusOK))
	errBefore := counterValue(t, ProfileUpdates.WithLabelValues("notice", StatusError))

	ObserveProfileUpdate("notice", nil)
	ObserveProfileUpdate("notice", errors.New("boom"))
	ObserveProfileUpdate("notice", nil)

	assert.Equal(t, okBefore+2, counterValue(t, ProfileUpdates.WithLabelValues("notice", StatusOK)))
	assert.Equal(t, errBefore+1, counterValue(t, ProfileUpdates.WithLabelValues("notice", StatusError)))
}
