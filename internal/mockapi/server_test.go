package mockapi_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/medwatch/triage/internal/adapters/api"
	"github.com/medwatch/triage/internal/app"
	"github.com/medwatch/triage/internal/mockapi"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServer_Roster(t *testing.T) {
	Convey("Given a mock API with a fixed seed", t, func() {
		cfg := mockapi.Config{NumPatients: 10, Seed: 7, MalformedRate: 0.5}
		srv := mockapi.New(cfg, nil)

		Convey("Then the roster should have the configured size", func() {
			So(srv.RosterSize(), ShouldEqual, 10)
		})

		Convey("And two servers with the same seed should serve identical rosters", func() {
			a := httptest.NewServer(mockapi.New(cfg, nil).Handler())
			defer a.Close()
			b := httptest.NewServer(mockapi.New(cfg, nil).Handler())
			defer b.Close()

			fetch := func(base string) []string {
				client := api.New(base, "k", api.WithSleeper(func(time.Duration) {}))
				patients, err := client.FetchAllPatients(context.Background())
				So(err, ShouldBeNil)
				ids := make([]string, 0, len(patients))
				for _, p := range patients {
					if id, ok := p.Identifier(); ok {
						ids = append(ids, id)
					}
				}
				return ids
			}

			So(fetch(a.URL), ShouldResemble, fetch(b.URL))
		})
	})
}

func TestServer_Pagination(t *testing.T) {
	Convey("Given a mock API without faults", t, func() {
		cfg := mockapi.Config{NumPatients: 23, Seed: 3}
		ts := httptest.NewServer(mockapi.New(cfg, nil).Handler())
		defer ts.Close()

		client := api.New(ts.URL, "k",
			api.WithPageSize(10),
			api.WithSleeper(func(time.Duration) {}),
		)

		Convey("When fetching all patients", func() {
			patients, err := client.FetchAllPatients(context.Background())

			Convey("Then every record should arrive exactly once", func() {
				So(err, ShouldBeNil)
				So(len(patients), ShouldEqual, 23)
			})
		})
	})
}

func TestServer_ShapeRotation(t *testing.T) {
	Convey("Given a mock API that rotates envelope shapes", t, func() {
		cfg := mockapi.Config{NumPatients: 25, Seed: 3, RotateShapes: true}
		ts := httptest.NewServer(mockapi.New(cfg, nil).Handler())
		defer ts.Close()

		client := api.New(ts.URL, "k",
			api.WithPageSize(10),
			api.WithSleeper(func(time.Duration) {}),
		)

		Convey("When fetching across differently shaped pages", func() {
			patients, err := client.FetchAllPatients(context.Background())

			Convey("Then the shape adapters should recover every record", func() {
				So(err, ShouldBeNil)
				So(len(patients), ShouldEqual, 25)
			})
		})
	})
}

func TestServer_EndToEndWithFaults(t *testing.T) {
	Convey("Given a mock API injecting transient faults", t, func() {
		cfg := mockapi.Config{NumPatients: 15, Seed: 11, MalformedRate: 0.3, FaultRate: 0.3}
		ts := httptest.NewServer(mockapi.New(cfg, nil).Handler())
		defer ts.Close()

		client := api.New(ts.URL, "k",
			api.WithPageSize(5),
			api.WithMaxAttempts(10),
			api.WithBackoff(time.Millisecond, 5*time.Millisecond, 0),
			api.WithSleeper(func(time.Duration) {}),
			api.WithPageDelay(0),
		)
		svc := app.New(app.WithClient(client))

		Convey("When running the full pipeline against it", func() {
			payload, resp, err := svc.Run(context.Background())

			Convey("Then the retry policy should carry the run to completion", func() {
				So(err, ShouldBeNil)
				So(string(resp), ShouldContainSubstring, "accepted")
				// A 0.3 malformed rate over 15 patients makes data-quality
				// hits overwhelmingly likely but not certain; the payload
				// itself must always be well-formed.
				So(payload.HighRisk, ShouldNotBeNil)
				So(payload.Fever, ShouldNotBeNil)
				So(payload.DataQuality, ShouldNotBeNil)
			})
		})
	})
}
