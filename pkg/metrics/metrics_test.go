package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a metrics manager on its own registry", t, func() {
		reg := prometheus.NewRegistry()
		m := NewManager(WithRegistry(reg), WithNamespace("test"), WithSubsystem("run"))

		Convey("Then its handler serves the registered metrics", func() {
			m.pagesFetched.Inc()
			m.patientsFetched.Add(5)
			m.retryAttempts.WithLabelValues("429").Inc()
			m.invalidFields.WithLabelValues("age").Inc()
			m.alertBucketSize.WithLabelValues("fever").Set(2)
			m.runDuration.Observe(0.25)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/metrics", nil)
			m.Handler().ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, 200)
			So(rec.Body.String(), ShouldContainSubstring, "test_run_pages_fetched_total")
			So(rec.Body.String(), ShouldContainSubstring, "test_run_retry_attempts_total")
		})

		Convey("And the registry accessor returns the same registry", func() {
			So(m.Registry(), ShouldEqual, reg)
		})
	})
}

func TestPackageHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then the record helpers do not panic", func() {
			So(func() {
				RecordPageFetched()
				RecordPatientsFetched(3)
				RecordPatientsFetched(0)
				RecordRetryAttempt("503")
				RecordTransportError()
				RecordInvalidField("blood_pressure")
				UpdateAlertBucketSize("high_risk", 4)
				RecordSubmission()
				ObserveRunDuration(time.Second)
			}, ShouldNotPanic)
		})

		Convey("And the global handler serves metrics", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/metrics", nil)
			Handler().ServeHTTP(rec, req)
			So(rec.Code, ShouldEqual, 200)
		})
	})
}
