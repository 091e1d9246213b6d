package metrics

import (
	"database/sql"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_DomainCounters(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.RecordBookingCreated("emergency")
	m.RecordBookingCreated("emergency")
	m.RecordStatusTransition("pending", "scheduled")
	m.RecordDriverAssigned()
	m.RecordPayment("charge", "succeeded")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingsCreated.WithLabelValues("emergency")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusTransitions.WithLabelValues("pending", "scheduled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.driverAssignments))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.payments.WithLabelValues("charge", "succeeded")))
}

func TestMetrics_HTTPAndPool(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.ObserveHTTP("GET", "/api/v1/bookings", 200, 10*time.Millisecond)
	m.SetPoolStats(sql.DBStats{OpenConnections: 5, InUse: 2, Idle: 3})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/bookings", "200")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.dbOpen))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.dbInUse))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.dbIdle))
}
