package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	RemoteFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bot_vacancies_fetch_duration_seconds",
			Help:    "Duration of one paginated vacancies fetch in seconds.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30},
		},
	)
	CacheLookupsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_vacancies_cache_lookups_total",
			Help: "Vacancy cache lookups by result.",
		},
		[]string{"result"},
	)
	VacanciesFetchedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_vacancies_fetched_total",
			Help: "Total number of vacancies fetched from the provider.",
		},
	)
	PagesServedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_vacancy_pages_served_total",
			Help: "Total number of result pages served to users.",
		},
	)
	GenerationDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "bot_generation_duration_seconds",
			Help:       "Duration of resume and cover letter generation.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"kind"},
	)
)

func StartMetricsServer() {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(RemoteFetchDuration)
	prometheus.MustRegister(CacheLookupsCounter)
	prometheus.MustRegister(VacanciesFetchedCounter)
	prometheus.MustRegister(PagesServedCounter)
	prometheus.MustRegister(GenerationDuration)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(":8080", nil))
	}()
}
