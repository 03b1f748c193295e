// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// #nosec G404
package metrics

import (
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func TestNoopMetrics(t *testing.T) {
	metrics = defaultNoopMetrics()
	require.True(t, NoOp())

	server := httptest.NewServer(HTTPHandler())
	t.Cleanup(server.Close)

	Counter("count1").Add(1)
	CounterVec("countVec1", []string{"zeroOrOne"}).AddWithLabel(1, map[string]string{"thisIsNonsense": "butDoesntBreak"})
	HistogramVec("hist1", []string{"zeroOrOne"}, nil).ObserveWithLabels(1, map[string]string{"thisIsNonsense": "butDoesntBreak"})
	Gauge("gauge1").Set(3)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()
	require.False(t, NoOp())

	count1 := Counter("count1")
	countVect := CounterVec("countVec1", []string{"zeroOrOne"})
	gauge1 := Gauge("gauge1")
	gaugeVec := GaugeVec("gaugeVec1", []string{"zeroOrOne"})

	count1.Add(1)
	randCount := rand.Intn(100) + 1
	for iter := 0; iter < randCount; iter++ {
		// same name returns the same meter
		Counter("count1").Add(1)
	}

	histTotal := 0
	for i, histN := 0, rand.Intn(100)+2; i < histN; i++ {
		HistogramVec("hist2", []string{"zeroOrOne"}, BucketHTTPReqs).
			ObserveWithLabels(int64(i), map[string]string{"zeroOrOne": strconv.Itoa(i % 2)})
		histTotal += i
	}

	total := 0
	for i, totalN := 0, rand.Intn(100)+2; i < totalN; i++ {
		labels := map[string]string{"zeroOrOne": strconv.Itoa(i % 2)}
		countVect.AddWithLabel(int64(i), labels)
		gaugeVec.AddWithLabel(int64(i), labels)
		total += i
	}
	gauge1.Set(42)

	metricFamilies, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	families := make(map[string]*dto.MetricFamily)
	for _, mf := range metricFamilies {
		families[mf.GetName()] = mf
	}

	require.Equal(t, float64(randCount+1), families["nftstaking_count1"].Metric[0].GetCounter().GetValue())
	require.Equal(t, float64(42), families["nftstaking_gauge1"].Metric[0].GetGauge().GetValue())

	sumHist := families["nftstaking_hist2"].Metric[0].GetHistogram().GetSampleSum() +
		families["nftstaking_hist2"].Metric[1].GetHistogram().GetSampleSum()
	require.Equal(t, float64(histTotal), sumHist)

	sumCountVec := families["nftstaking_countVec1"].Metric[0].GetCounter().GetValue() +
		families["nftstaking_countVec1"].Metric[1].GetCounter().GetValue()
	require.Equal(t, float64(total), sumCountVec)

	sumGaugeVec := families["nftstaking_gaugeVec1"].Metric[0].GetGauge().GetValue() +
		families["nftstaking_gaugeVec1"].Metric[1].GetGauge().GetValue()
	require.Equal(t, float64(total), sumGaugeVec)
}

func TestLazyLoading(t *testing.T) {
	metrics = defaultNoopMetrics()

	for _, a := range []any{
		Gauge("noopGauge"),
		GaugeVec("noopGauge", nil),
		Counter("noopCounter"),
		CounterVec("noopCounter", nil),
		HistogramVec("noopHist", nil, nil),
	} {
		require.IsType(t, &noopMeters{}, a)
	}

	lazyGauge := LazyLoadGauge("lazyGauge")
	lazyGaugeVec := LazyLoadGaugeVec("lazyGaugeVec", nil)
	lazyCounter := LazyLoadCounter("lazyCounter")
	lazyCounterVec := LazyLoadCounterVec("lazyCounterVec", nil)
	lazyHistogramVec := LazyLoadHistogramVec("lazyHistogramVec", nil, nil)

	// after initialization, newly created metrics become of the prometheus type
	InitializePrometheusMetrics()

	require.IsType(t, &promGaugeMeter{}, lazyGauge())
	require.IsType(t, &promGaugeVecMeter{}, lazyGaugeVec())
	require.IsType(t, &promCountMeter{}, lazyCounter())
	require.IsType(t, &promCountVecMeter{}, lazyCounterVec())
	require.IsType(t, &promHistogramVecMeter{}, lazyHistogramVec())
}
