// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"strings"

	"github.com/vechain/nftstaking/metrics"
)

var (
	metricQueryParameters = metrics.LazyLoadCounterVec("eventdb_query_parameters", []string{"parameters"})
	metricQueryOrder      = metrics.LazyLoadCounterVec("eventdb_query_order", []string{"order"})
	metricLimitBucket     = metrics.LazyLoadHistogramVec("eventdb_query_limit_bucket", []string{"type"}, []int64{
		0, 5, 10, 25, 50, 100, 250, 500, 1000,
	})
	metricInsertCount = metrics.LazyLoadCounter("eventdb_insert_count")
)

func metricsHandleFilter(filter *Filter) {
	if metrics.NoOp() {
		return
	}

	params := make([]string, 0, 3)
	if filter.Caller != nil {
		params = append(params, "caller")
	}
	if filter.Kind != "" {
		params = append(params, "kind")
	}
	if filter.Asset != nil {
		params = append(params, "asset")
	}
	metricQueryParameters().AddWithLabel(1, map[string]string{"parameters": strings.Join(params, ",")})

	if filter.Order == DESC {
		metricQueryOrder().AddWithLabel(1, map[string]string{"order": "desc"})
	} else {
		metricQueryOrder().AddWithLabel(1, map[string]string{"order": "asc"})
	}

	if filter.Options != nil {
		limit := min(filter.Options.Limit, 1001)
		metricLimitBucket().ObserveWithLabels(int64(limit), map[string]string{"type": "activity"})
	}
}
