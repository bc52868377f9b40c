package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObserveLoad(ResultSuccess, 5*time.Millisecond)
	pr.ObserveLoad(ResultInvalid, time.Millisecond)
	pr.ObserveRender("astro", ResultSuccess, 20*time.Millisecond)
	pr.ObserveRender("astro", ResultSkipped, 0)
	pr.SetIssues(2, 3)
	pr.IncReload()

	assert.InDelta(t, 1, testutil.ToFloat64(pr.loads.WithLabelValues("success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.loads.WithLabelValues("invalid")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.renders.WithLabelValues("astro", "skipped")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(pr.issues.WithLabelValues("error")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(pr.issues.WithLabelValues("warning")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.reloads), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}

func TestNilRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveLoad(ResultFailed, time.Second)
	pr.ObserveRender("json", ResultFailed, time.Second)
	pr.SetIssues(1, 1)
	pr.IncReload()

	var r Recorder = NoopRecorder{}
	r.ObserveLoad(ResultSuccess, 0)
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncReload()

	srv := httptest.NewServer(HTTPHandler(reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "docsite_config_reloads_total 1"))
}
