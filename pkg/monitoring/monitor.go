package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// DroppedRecords 统计时被剔除的非法记录
	DroppedRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_dropped_records_total",
			Help: "Records rejected by the analytics engine",
		},
		[]string{"kind", "reason"},
	)

	// MonthlyStatSeeds 月度统计行补建结果：created / conflict
	MonthlyStatSeeds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_monthly_stat_seeds_total",
			Help: "Monthly stat seed attempts by result",
		},
		[]string{"result"},
	)

	ReportCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_report_cache_lookups_total",
			Help: "Report cache lookups by result",
		},
		[]string{"result"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(DroppedRecords)
		prometheus.MustRegister(MonthlyStatSeeds)
		prometheus.MustRegister(ReportCacheLookups)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
