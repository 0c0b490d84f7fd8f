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

import (
	"math"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registry = prometheus.NewRegistry()
)

// GetRegistry returns the registry all catalog metrics are registered on.
func GetRegistry() *prometheus.Registry {
	return registry
}

func init() {
	initCatalogMetrics()
	initPushdownMetrics()
}

func initCatalogMetrics() {
	registry.MustRegister(catalogDDLCounter)
	registry.MustRegister(catalogConstructCounter)
	registry.MustRegister(CatalogJournalAppendDurationHistogram)
}

func initPushdownMetrics() {
	registry.MustRegister(pushdownPredicateCounter)
}

func getDurationBuckets() []float64 {
	return append(prometheus.ExponentialBuckets(0.0005, 2.0, 20), math.MaxFloat64)
}
