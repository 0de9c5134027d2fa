package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/api/{category}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/api/men", "/api/women"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, http.NoBody))
		assert.Equal(t, http.StatusOK, rr.Code)
	}

	val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/{category}", "200"))
	assert.GreaterOrEqual(t, val, 2.0)
}

func TestMiddleware_StatusCodes(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/bad", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		path   string
		status string
	}{
		{"/bad", "400"},
		{"/boom", "500"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, http.NoBody))

			val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", tc.path, tc.status))
			assert.GreaterOrEqual(t, val, 1.0)
		})
	}
}

func TestObserveQuery(t *testing.T) {
	ObserveQuery("memory", "count", OutcomeOK, 3*time.Millisecond)
	ObserveRows("memory", 12)

	assert.Positive(t, testutil.CollectAndCount(catalogQueryDuration))
	assert.Positive(t, testutil.CollectAndCount(catalogResultRows))
}
