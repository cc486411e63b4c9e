package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollectorsAreIsolated(t *testing.T) {
	a := NewCollector()
	b := NewCollector()

	a.Signups.Inc()
	a.ObserveLogin("success")
	a.ObserveAICall("summarize", errors.New("down"))

	assert.Equal(t, float64(1), testutil.ToFloat64(a.Signups))
	assert.Equal(t, float64(0), testutil.ToFloat64(b.Signups))
	assert.Equal(t, float64(1), testutil.ToFloat64(a.Logins.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(a.AICalls.WithLabelValues("summarize", "error")))
}
