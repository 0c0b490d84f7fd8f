// Copyright 2023 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package v2

import "github.com/prometheus/client_golang/prometheus"

var (
	catalogDDLCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mo",
			Subsystem: "catalog",
			Name:      "ddl_total",
			Help:      "Total number of applied catalog DDL statements.",
		}, []string{"type"})
	CatalogCreateCounter     = catalogDDLCounter.WithLabelValues("create")
	CatalogDropCounter       = catalogDDLCounter.WithLabelValues("drop")
	CatalogAlterPropsCounter = catalogDDLCounter.WithLabelValues("alter-props")
	CatalogAlterNameCounter  = catalogDDLCounter.WithLabelValues("alter-name")
	CatalogRefreshCounter    = catalogDDLCounter.WithLabelValues("refresh")

	catalogConstructCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mo",
			Subsystem: "catalog",
			Name:      "construct_total",
			Help:      "Total number of catalogs constructed from a catalog log.",
		}, []string{"result"})
	CatalogConstructOKCounter    = catalogConstructCounter.WithLabelValues("ok")
	CatalogConstructErrorCounter = catalogConstructCounter.WithLabelValues("error")

	CatalogJournalAppendDurationHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "mo",
			Subsystem: "catalog",
			Name:      "journal_append_duration_seconds",
			Help:      "Bucketed histogram of catalog journal append duration.",
			Buckets:   getDurationBuckets(),
		})
)

var (
	pushdownPredicateCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mo",
			Subsystem: "pushdown",
			Name:      "predicate_total",
			Help:      "Total number of filters offered for predicate pushdown, by outcome.",
		}, []string{"result"})
	PushdownPushedCounter      = pushdownPredicateCounter.WithLabelValues("pushed")
	PushdownUnsupportedCounter = pushdownPredicateCounter.WithLabelValues("unsupported")
)
