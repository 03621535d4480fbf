// Package metrics provides Prometheus metrics definitions.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rolechain"

// Lookup results.
const (
	ResultFound    = "found"
	ResultNotFound = "not_found"
)

// Walk outcomes.
const (
	OutcomePresent = "present"
	OutcomeAbsent  = "absent"
)

var (
	// PermissionLookups counts catalog lookups by result.
	PermissionLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "lookups_total",
			Help:      "Permission catalog lookups by result",
		},
		[]string{"result"},
	)

	// AncestryWalks counts ancestor walks by requested depth and outcome.
	AncestryWalks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ancestry",
			Name:      "walks_total",
			Help:      "Ancestor walks by depth and outcome",
		},
		[]string{"depth", "outcome"},
	)

	// ChainLength tracks the length of chains built from the command line.
	ChainLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ancestry",
			Name:      "chain_length",
			Help:      "Number of users in chains built per command",
			Buckets:   []float64{1, 2, 3, 4, 6, 8, 16},
		},
	)
)

// MaxDepthLabel is the largest depth recorded as its own label value.
const MaxDepthLabel = 8

// DepthLabel bounds the depth label set: depths above MaxDepthLabel share one value
// and negative depths are labelled "invalid".
func DepthLabel(depth int) string {
	switch {
	case depth < 0:
		return "invalid"
	case depth > MaxDepthLabel:
		return strconv.Itoa(MaxDepthLabel) + "+"
	}
	return strconv.Itoa(depth)
}

// Outcome maps a walk result to its label.
func Outcome(ok bool) string {
	if ok {
		return OutcomePresent
	}
	return OutcomeAbsent
}
