package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CollectRunsTotal 依結果統計收集次數。
	CollectRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ranking_collect_runs_total",
		Help: "Number of ranking collection runs by result.",
	}, []string{"result"})

	// RecordsSavedTotal 依類別統計寫入的排名筆數。
	RecordsSavedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ranking_records_saved_total",
		Help: "Number of ranking records persisted by category.",
	}, []string{"category"})

	// ProviderRequestsTotal 依來源與狀態統計外部排名請求。
	ProviderRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ranking_provider_requests_total",
		Help: "Number of live ranking source requests by provider and status.",
	}, []string{"provider", "status"})

	// ReportsGeneratedTotal 統計產生的 Excel 報表數。
	ReportsGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ranking_reports_generated_total",
		Help: "Number of Excel reports generated.",
	})

	// InsightsTotal 依產生方式統計洞察請求（llm、rules、fallback）。
	InsightsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ranking_insights_total",
		Help: "Number of insight payloads produced by source.",
	}, []string{"source"})

	// HTTPRequestDuration 記錄 API 延遲。
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ranking_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Handler 回傳 /metrics 使用的 handler。
func Handler() http.Handler {
	return promhttp.Handler()
}
