package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records payroll and HTTP metrics. It satisfies payroll.Recorder.
type Collector struct {
	calculations    *prometheus.CounterVec
	blocked         prometheus.Counter
	violations      *prometheus.CounterVec
	exports         *prometheus.CounterVec
	requests        *prometheus.CounterVec
	requestDuration prometheus.Histogram
}

func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payroll_calculations_total",
			Help: "Completed payroll calculations by pay type.",
		}, []string{"pay_type"}),
		blocked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "payroll_blocked_timesheets_total",
			Help: "Timesheets that failed validation and were not calculated.",
		}),
		violations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payroll_compliance_violations_total",
			Help: "Compliance findings by kind.",
		}, []string{"kind"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payroll_exports_total",
			Help: "Payroll exports by format.",
		}, []string{"format"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payroll_http_requests_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "payroll_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(c.calculations, c.blocked, c.violations, c.exports, c.requests, c.requestDuration)
	return c
}

func (c *Collector) RecordCalculation(payType string) {
	c.calculations.WithLabelValues(payType).Inc()
}

func (c *Collector) RecordBlocked() {
	c.blocked.Inc()
}

func (c *Collector) RecordViolation(kind string) {
	c.violations.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordExport(format string) {
	c.exports.WithLabelValues(format).Inc()
}

// Record is called by the request logging middleware once per response.
func (c *Collector) Record(status int, duration time.Duration) {
	c.requests.WithLabelValues(strconv.Itoa(status)).Inc()
	c.requestDuration.Observe(duration.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
