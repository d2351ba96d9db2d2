package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	CandidateMatchScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "candidate_match_score",
			Help:    "Distribution of computed candidate match scores",
			Buckets: []float64{10, 20, 35, 50, 65, 75, 85, 95, 100},
		},
	)

	CandidateListSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "candidate_list_size",
			Help:    "Number of candidates before and after filtering",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
		[]string{"stage"},
	)

	CandidateSnapshotLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "candidate_snapshot_lookups_total",
			Help: "Owner snapshot cache lookups by result",
		},
		[]string{"result"},
	)

	CandidateStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "candidate_status_changes_total",
			Help: "Persisted candidate status changes by target status",
		},
		[]string{"status"},
	)
)
