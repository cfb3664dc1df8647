package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Decisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "credit_decisions_total",
		Help: "Eligibility decisions, labelled by operation and outcome.",
	}, []string{"operation", "outcome"})

	Scores = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "credit_score",
		Help:    "Distribution of computed credit scores.",
		Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})

	LoansCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "credit_loans_created_total",
		Help: "Loans persisted by successful applications.",
	})

	CustomersRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "credit_customers_registered_total",
		Help: "Customers created through registration.",
	})

	IngestedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "credit_ingested_rows_total",
		Help: "Spreadsheet rows processed by bulk ingestion, labelled by sheet and result.",
	}, []string{"sheet", "result"})
)

const (
	OutcomeApproved = "approved"
	OutcomeRejected = "rejected"
	OutcomeCapped   = "income_capped"
)
