package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	Register()
	Register()

	before := testutil.ToFloat64(appointmentConflict)
	IncAppointmentConflict()
	assert.Equal(t, before+1, testutil.ToFloat64(appointmentConflict))

	IncRoleChanged("client", "barber")
	assert.Equal(t, 1.0, testutil.ToFloat64(roleChanged.WithLabelValues("client", "barber")))

	IncPaymentCreated("Paid")
	assert.GreaterOrEqual(t, testutil.ToFloat64(paymentCreated.WithLabelValues("Paid")), 1.0)
}
