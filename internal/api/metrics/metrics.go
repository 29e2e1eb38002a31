// Package metrics defines and registers all custom Prometheus metrics for the
// learning platform API. It is the single source of truth for metric names,
// labels, and help strings.
//
// The promauto constructors register everything with the default registry at
// package init; the /metrics endpoint exposes it.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "learnhub"

// SignupsTotal counts account creations that completed successfully.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// EnrollmentsTotal counts enroll calls that returned an enrollment.
// Label:
//   - outcome: "created" (new row) or "existing" (converged on a prior row)
var EnrollmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollments_total",
		Help:      "Total number of successful enroll calls, by outcome.",
	},
	[]string{"outcome"},
)

// CourseMutationsTotal counts admin catalog writes.
// Label:
//   - action: "create", "update" or "delete"
var CourseMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "course_mutations_total",
		Help:      "Total number of catalog create/update/delete operations.",
	},
	[]string{"action"},
)
