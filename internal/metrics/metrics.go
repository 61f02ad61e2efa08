// Package metrics exposes Prometheus counters for the extraction engine and
// the draft persistence controller.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FieldsParsed counts per-field extraction outcomes, labeled
	// outcome=parsed|failed.
	FieldsParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quickpaste_fields_total",
		Help: "Extraction outcomes per field",
	}, []string{"field", "outcome"})

	// PasteEvents counts paste operations by variant (memo, diligence).
	PasteEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quickpaste_events_total",
		Help: "Quick-paste parse invocations by variant",
	}, []string{"variant"})

	// AddressNormalizations counts address chain outcomes by method
	// (geocoder, regex, fallback).
	AddressNormalizations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "address_normalizations_total",
		Help: "Address normalization outcomes by method",
	}, []string{"method"})

	// DraftWrites counts successful draft snapshot writes.
	DraftWrites = promauto.NewCounter(prometheus.CounterOpts{
		Name: "draft_writes_total",
		Help: "Draft snapshots written to the store",
	})

	// DraftSkips counts settled changes that did not result in a write,
	// labeled by reason (unchanged, paste_in_flight, no_interaction,
	// not_dirty).
	DraftSkips = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "draft_skips_total",
		Help: "Settled changes skipped without a store write",
	}, []string{"reason"})

	// DraftErrors counts storage failures surfaced as warnings.
	DraftErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "draft_errors_total",
		Help: "Draft store failures (write or corrupted restore)",
	})
)
