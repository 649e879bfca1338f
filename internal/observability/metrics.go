package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ColetasTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "coletas_total",
			Help: "Total de coletas de produtos executadas",
		},
	)

	SourceErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coleta_source_errors_total",
			Help: "Total de falhas por fonte",
		},
		[]string{"source"},
	)

	RecordsFetched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coleta_records_fetched_total",
			Help: "Registros coletados por fonte",
		},
		[]string{"source"},
	)

	OverridesAplicados = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "coleta_overrides_total",
			Help: "Total de campos sobrescritos via skus_info",
		},
	)
)

func Start(port string) {
	prometheus.MustRegister(ColetasTotal, SourceErrors, RecordsFetched, OverridesAplicados)
	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":"+port, nil)
}
