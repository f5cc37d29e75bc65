package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestErrorClass(t *testing.T) {
	Convey("Given error statuses", t, func() {
		cases := map[int]string{
			http.StatusBadRequest:            "bad_request",
			http.StatusNotFound:              "not_found",
			http.StatusMethodNotAllowed:      "method_not_allowed",
			http.StatusRequestEntityTooLarge: "too_large",
			http.StatusServiceUnavailable:    "unavailable",
			http.StatusInternalServerError:   "server_error",
			http.StatusTeapot:                "client_error",
		}
		Convey("Then each maps to a stable class", func() {
			for status, class := range cases {
				So(errorClass(status), ShouldEqual, class)
			}
			So(errorSeverity(http.StatusBadRequest), ShouldEqual, "low")
			So(errorSeverity(http.StatusServiceUnavailable), ShouldEqual, "medium")
			So(errorSeverity(http.StatusInternalServerError), ShouldEqual, "high")
		})
	})
}

func TestMetricsMiddleware(t *testing.T) {
	Convey("Given a wrapped handler", t, func() {
		var inner http.ResponseWriter
		h := MetricsMiddleware(func(w http.ResponseWriter, r *http.Request) {
			inner = w
			w.WriteHeader(http.StatusTeapot)
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("brewed"))
		}, "test")

		Convey("When it is served", func() {
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

			Convey("Then the first status is the one recorded", func() {
				sr, ok := inner.(*statusRecorder)
				So(ok, ShouldBeTrue)
				So(sr.status, ShouldEqual, http.StatusTeapot)
				So(sr.Unwrap(), ShouldEqual, rec)
				So(rec.Body.String(), ShouldEqual, "brewed")
			})
		})
	})
}
