package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

type CollectorTestSuite struct {
	suite.Suite
	reg       *prometheus.Registry
	collector *Collector
}

func TestCollectorSuite(t *testing.T) {
	suite.Run(t, new(CollectorTestSuite))
}

func (s *CollectorTestSuite) SetupTest() {
	s.reg = prometheus.NewRegistry()
	s.collector = NewCollector(s.reg)
}

func (s *CollectorTestSuite) TestObserveHTTP() {
	s.collector.ObserveHTTP(http.MethodPost, "/api/course/checkout/:id", http.StatusCreated, 20*time.Millisecond)
	s.collector.ObserveHTTP(http.MethodPost, "/api/course/checkout/:id", http.StatusCreated, 30*time.Millisecond)

	s.InDelta(2, testutil.ToFloat64(
		s.collector.httpRequests.WithLabelValues(http.MethodPost, "/api/course/checkout/:id", "201"),
	), 0)
	s.Equal(1, testutil.CollectAndCount(s.collector.httpDuration))
}

func (s *CollectorTestSuite) TestDeliveries() {
	s.collector.ObserveDelivery("course.purchased", nil)
	s.collector.ObserveDelivery("course.purchased", errors.New("broker down"))
	s.collector.ObserveDelivery("course.purchased", nil)

	s.InDelta(2, testutil.ToFloat64(s.collector.deliveries.WithLabelValues("course.purchased", ResultOK)), 0)
	s.InDelta(1, testutil.ToFloat64(s.collector.deliveries.WithLabelValues("course.purchased", ResultFailed)), 0)
}

func (s *CollectorTestSuite) TestBusinessCounters() {
	s.collector.RecordCheckout(ResultOK)
	s.collector.RecordVerification("rejected")

	s.InDelta(1, testutil.ToFloat64(s.collector.checkouts.WithLabelValues(ResultOK)), 0)
	s.InDelta(1, testutil.ToFloat64(s.collector.verifications.WithLabelValues("rejected")), 0)
}

func (s *CollectorTestSuite) TestHandler() {
	s.collector.RecordCheckout(ResultOK)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler(s.reg).ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.True(strings.Contains(string(body), "learnmarket_checkouts_total"))
}
