// Package metrics registers prometheus counters for the auth and upload flows.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SignupTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "auth", Name: "signup_total",
			Help: "Signup attempts by result",
		},
		[]string{"result"},
	)

	LoginTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "auth", Name: "login_total",
			Help: "Login attempts by result",
		},
		[]string{"result"},
	)

	RefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "auth", Name: "refresh_total",
			Help: "Refresh attempts by result",
		},
		[]string{"result"},
	)

	IssuedTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "auth", Name: "issued_tokens_total",
			Help: "Issued tokens by class",
		},
		[]string{"type"},
	)

	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "uploads", Name: "files_total",
			Help: "File uploads by result",
		},
		[]string{"result"},
	)
)
