// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/vechain/nftstaking/metrics"
	"github.com/vechain/nftstaking/reverts"
)

var (
	metricOpCount    = metrics.LazyLoadCounterVec("ledger_op_count", []string{"kind", "result"})
	metricOpDuration = metrics.LazyLoadHistogramVec("ledger_op_duration_ms", []string{"kind"}, metrics.BucketHTTPReqs)
	metricTreasury   = metrics.LazyLoadGauge("ledger_treasury_balance")
	metricLastRound  = metrics.LazyLoadGauge("ledger_last_round")
)

// resultLabel is "ok", the revert kind, or "error" for infrastructure failures.
func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	if kind := reverts.KindOf(err); kind != reverts.Unknown {
		return kind.String()
	}
	return "error"
}
