package metrics

import (
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	registry        *prom.Registry
	weatherDuration *prom.HistogramVec
	weatherResults  *prom.CounterVec
	contactResults  *prom.CounterVec
	carouselOps     *prom.CounterVec
	contentItems    *prom.GaugeVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.once.Do(func() {
		pr.weatherDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "portfolio",
			Name:      "weather_fetch_duration_seconds",
			Help:      "Duration of upstream weather lookups",
			Buckets:   prom.DefBuckets,
		}, []string{"result"})
		pr.weatherResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "portfolio",
			Name:      "weather_fetch_total",
			Help:      "Weather lookups by outcome",
		}, []string{"result"})
		pr.contactResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "portfolio",
			Name:      "contact_submissions_total",
			Help:      "Contact form submissions by outcome",
		}, []string{"result"})
		pr.carouselOps = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "portfolio",
			Name:      "carousel_operations_total",
			Help:      "Carousel advance/select calls by outcome",
		}, []string{"op", "result"})
		pr.contentItems = prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "portfolio",
			Name:      "content_items",
			Help:      "Items per content section after the last load",
		}, []string{"section"})
		reg.MustRegister(pr.weatherDuration, pr.weatherResults, pr.contactResults, pr.carouselOps, pr.contentItems)
	})
	return pr
}

// Handler serves the recorder's registry in the Prometheus exposition format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (p *PrometheusRecorder) ObserveWeatherFetch(d time.Duration, result ResultLabel) {
	if p == nil || p.weatherDuration == nil {
		return
	}
	p.weatherDuration.WithLabelValues(string(result)).Observe(d.Seconds())
	p.weatherResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncContactSubmission(result ResultLabel) {
	if p == nil || p.contactResults == nil {
		return
	}
	p.contactResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncCarouselOp(op string, result ResultLabel) {
	if p == nil || p.carouselOps == nil {
		return
	}
	p.carouselOps.WithLabelValues(op, string(result)).Inc()
}

func (p *PrometheusRecorder) SetContentItems(section string, n int) {
	if p == nil || p.contentItems == nil {
		return
	}
	p.contentItems.WithLabelValues(section).Set(float64(n))
}
