package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var AdminRequestCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "admin_api_request_total",
	Help: "The total number of requests by endpoint to the admin API",
}, []string{"endpoint"})

var AdminResponseCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "admin_api_response_total",
	Help: "The total number of responses by status code from the admin API",
}, []string{"status_code"})

var AdminRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name: "admin_api_request_duration_seconds",
	Help: "Duration of requests to the admin API",
}, []string{"endpoint"})

var ConfigSaveCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "config_save_total",
	Help: "Number of configuration saves by kind and result",
}, []string{"kind", "result"})

var CollectionLoadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "collection_load_failures_total",
	Help: "Number of failed collection fetches during bulk load",
}, []string{"collection"})

var BulkLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name: "bulk_load_duration_seconds",
	Help: "Duration of the bulk load of all configuration collections",
	Buckets: []float64{
		0.05, 0.1, 0.2, 0.5, 1, 2, 5, 10,
	},
})

var BulkLoadTimeouts = promauto.NewCounter(prometheus.CounterOpts{
	Name: "bulk_load_timeouts_total",
	Help: "Number of bulk loads that hit the loading timeout",
})

var ChangeNotificationErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: "change_notification_errors_total",
	Help: "Number of configuration change notifications that could not be published",
})
