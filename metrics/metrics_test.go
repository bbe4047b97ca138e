package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/events/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/events/", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/events/", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))
}

func TestServiceCounters(t *testing.T) {
	m := New()
	m.SlotCacheLookup(true)
	m.SlotCacheLookup(false)
	m.SlotCacheLookup(false)
	m.ScheduleSubmitted("stored", 4)
	m.ScheduleSubmitted("rejected", 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.slotCache.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.slotCache.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissions.WithLabelValues("stored")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.eventsCreated))
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.ScheduleSubmitted("stored", 1)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.True(t, strings.Contains(string(body), "groupcal_events_created_total 1"))
}
