// Package metrics defines all custom Prometheus metrics for the community
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register themselves with the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "community"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "banned", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts signup attempts.
// Label:
//   - result: "success", "invalid_key", "username_taken", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// KeysRequestedTotal counts acceptance keys minted via the public endpoint.
var KeysRequestedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "keys_requested_total",
		Help:      "Total number of acceptance keys generated.",
	},
)

// AnnouncementsPostedTotal counts announcements published by admins.
var AnnouncementsPostedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "announcements_posted_total",
		Help:      "Total number of announcements posted.",
	},
)

// BansTotal counts ban-flag mutations.
// Label:
//   - action: "ban" or "unban"
var BansTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bans_total",
		Help:      "Total number of ban/unban operations applied.",
	},
	[]string{"action"},
)
