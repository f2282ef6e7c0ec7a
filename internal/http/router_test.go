package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/nhl-penalty-service/internal/app/penalties"
	"github.com/preston-bernstein/nhl-penalty-service/internal/http/handlers"
	"github.com/preston-bernstein/nhl-penalty-service/internal/metrics"
	"github.com/preston-bernstein/nhl-penalty-service/internal/testutil"
)

func newTestRouter(rec *metrics.Recorder) http.Handler {
	logger, _ := testutil.NewBufferLogger()
	svc := penalties.NewService(testutil.PenaltyStore(), logger, rec)
	h := handlers.NewHandler(svc, logger, nil, 0)
	return NewRouter(h, logger, rec)
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router := newTestRouter(nil)

	cases := []struct {
		path string
		want int
	}{
		{"/health", http.StatusOK},
		{"/ready", http.StatusOK},
		{"/", http.StatusOK},
		{"/api/options", http.StatusOK},
		{"/api/charts/teams?team=TOR&season=2015", http.StatusOK},
		{"/api/charts/penalties?penalty=fighting&seasons=2015", http.StatusOK},
		{"/api/charts/teams?team=TOR&season=2018", http.StatusNotFound},
		{"/charts/teams.svg?team=NHL&season=2013", http.StatusOK},
		{"/charts/penalties.svg", http.StatusOK},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != tc.want {
			t.Fatalf("route %s expected status %d, got %d", tc.path, tc.want, rr.Code)
		}
	}
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rr.Code)
	}
}

func TestRouterRejectsWrites(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/charts/teams", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for POST, got %d", rr.Code)
	}
}

func TestRouterSetsRequestIDAndRecordsAggregations(t *testing.T) {
	rec := metrics.NewRecorder()
	router := newTestRouter(rec)

	req := httptest.NewRequest(http.MethodGet, "/api/charts/penalties?penalty=roughing&season=2015&season=2016", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
	if got := rec.Aggregations(penalties.KindByTeam); got.Calls != 1 {
		t.Fatalf("expected one aggregation recorded, got %+v", got)
	}
}
