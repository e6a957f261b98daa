package metrics

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/plexdi/studio/pkg/application"
)

// Counters for upstream calls to the commissions API and the payment
// provider. Services increment these so operators can watch failure
// rates without scraping logs.
var (
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studio_upstream_requests_total",
		Help: "Requests made to upstream services, by target and outcome.",
	}, []string{"target", "outcome"})

	CheckoutSessions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "studio_checkout_sessions_total",
		Help: "Checkout sessions successfully created.",
	})

	CacheRefreshes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "studio_commission_cache_refreshes_total",
		Help: "Full refreshes of the commission cache.",
	})
)

type PrometheusController struct {
	path string
}

func NewPrometheusController(path string) application.Controller {
	if path == "" {
		path = "/debug/prometheus"
	}
	return &PrometheusController{path: path}
}

func (c *PrometheusController) Key() string {
	return c.path
}

func (c *PrometheusController) Register(r *mux.Router) {
	r.Handle(c.path, promhttp.Handler()).Methods(http.MethodGet)
}
