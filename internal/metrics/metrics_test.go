package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestViabilityLabel(t *testing.T) {
	assert.Equal(t, "inviable", ViabilityLabel(true))
	assert.Equal(t, "viable", ViabilityLabel(false))
}

func TestAnalysesTotal_Counts(t *testing.T) {
	counter := AnalysesTotal.WithLabelValues("risky", "inviable")
	before := testutil.ToFloat64(counter)

	counter.Inc()

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
