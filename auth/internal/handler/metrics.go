package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_registrations_total",
		Help: "Total number of successful user registrations.",
	})

	loginsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_logins_total",
		Help: "Total number of successful logins.",
	})

	loginFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_login_failures_total",
		Help: "Total number of failed login attempts.",
	})

	refreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_refreshes_total",
		Help: "Total number of successful token refreshes.",
	})

	passwordResetsRequestedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_password_resets_requested_total",
		Help: "Total number of password reset requests accepted.",
	})

	passwordResetsCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_password_resets_completed_total",
		Help: "Total number of completed password resets.",
	})

	blacklistCleanupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_blacklist_cleanups_total",
		Help: "Total number of blacklist cleanup sweeps.",
	})

	tokenVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_token_verifications_total",
			Help: "Total number of token verification attempts by type and status.",
		},
		[]string{"type", "status"},
	)
)
