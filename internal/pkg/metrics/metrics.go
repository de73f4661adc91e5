package metrics

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "connectx"

// Token refresh outcomes.
const (
	RefreshOK            = "ok"
	RefreshExchangeError = "exchange_error"
	RefreshStoreError    = "store_error"
)

var (
	Registry = prometheus.NewRegistry()

	onboardingResults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "onboarding_results_total",
		Help:      "Onboarding calls by returned status.",
	}, []string{"status"})

	tokenRefreshes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "integration_token_refreshes_total",
		Help:      "Integration token refresh attempts by outcome.",
	}, []string{"outcome"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		onboardingResults,
		tokenRefreshes,
	)
}

// ObserveOnboarding counts one onboarding result.
func ObserveOnboarding(status int) {
	onboardingResults.WithLabelValues(strconv.Itoa(status)).Inc()
}

// ObserveTokenRefresh counts one refresh attempt.
func ObserveTokenRefresh(outcome string) {
	tokenRefreshes.WithLabelValues(outcome).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}
