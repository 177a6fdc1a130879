package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "afritrim"

var (
	once sync.Once

	appointmentCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointment_created_total",
			Help:      "Count of appointments booked.",
		},
	)

	appointmentConflict = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointment_conflict_total",
			Help:      "Count of bookings rejected because the barber was busy.",
		},
	)

	paymentCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_created_total",
			Help:      "Count of payments recorded by status.",
		},
		[]string{"status"},
	)

	roleChanged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "role_change_total",
			Help:      "Count of role transitions.",
		},
		[]string{"from", "to"},
	)

	uploadFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_upload_failed_total",
			Help:      "Count of image uploads the blob store rejected.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			appointmentCreated,
			appointmentConflict,
			paymentCreated,
			roleChanged,
			uploadFailed,
		)
	})
}

func IncAppointmentCreated() {
	appointmentCreated.Inc()
}

func IncAppointmentConflict() {
	appointmentConflict.Inc()
}

func IncPaymentCreated(status string) {
	paymentCreated.WithLabelValues(status).Inc()
}

func IncRoleChanged(from, to string) {
	roleChanged.WithLabelValues(from, to).Inc()
}

func IncUploadFailed() {
	uploadFailed.Inc()
}
