package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Delivery is best-effort with no persisted ledger; these counters plus
// log lines are the only record of per-recipient outcomes.
var (
	SMSAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "club_sms_attempts_total",
		Help: "SMS deliveries attempted across all broadcasts.",
	})
	SMSFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "club_sms_failures_total",
		Help: "SMS deliveries that returned a provider error.",
	})
	PushAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "club_push_attempts_total",
		Help: "Push messages attempted across all broadcasts.",
	})
	PushFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "club_push_failures_total",
		Help: "Push messages in chunks that returned a provider error.",
	})
	SweepRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "club_reminder_sweeps_total",
		Help: "Reminder sweep invocations.",
	})
	MeetingsNotified = promauto.NewCounter(prometheus.CounterOpts{
		Name: "club_reminder_meetings_notified_total",
		Help: "Meetings claimed and notified by the reminder sweep.",
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
