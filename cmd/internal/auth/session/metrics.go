package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// The resolver's cost is linear in unmatched cookies and in total users,
// and each step is a full bcrypt verification. These series exist so that
// cost stays observable as cookie jars and the user base grow.
var (
	metricIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "velo_sessions_issued_total",
		Help: "Session cookies issued (registration and login).",
	})

	metricResolveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "velo_session_resolve_total",
		Help: "Resolve attempts by outcome.",
	}, []string{"outcome"})

	metricResolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "velo_session_resolve_duration_seconds",
		Help:    "Wall time of a full resolve, dominated by bcrypt verifications.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	})

	metricCookiesScanned = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "velo_session_resolve_cookies_scanned",
		Help:    "Cookie names verified per resolve (name phase).",
		Buckets: prometheus.ExponentialBuckets(1, 2, 8),
	})

	metricCandidatesScanned = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "velo_session_resolve_candidates_scanned",
		Help:    "User ids verified per resolve (value phase).",
		Buckets: prometheus.ExponentialBuckets(1, 2, 14),
	})

	metricRevokedCookies = promauto.NewCounter(prometheus.CounterOpts{
		Name: "velo_session_cookies_cleared_total",
		Help: "Cookies instructed to be cleared by logout.",
	})
)

const (
	outcomeResolved        = "resolved"
	outcomeNoCookies       = "no_cookies"
	outcomeUnauthenticated = "unauthenticated"
	outcomeError           = "error"
)
