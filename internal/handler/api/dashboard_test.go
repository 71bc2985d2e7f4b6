package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	icache "streampulse/internal/service/cache"
	"streampulse/internal/service/statsapi"
	"streampulse/internal/usecase"
	xlogger "streampulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

type nopMetrics struct{}

func (nopMetrics) RecordEvent(string, string)          {}
func (nopMetrics) RecordError(string)                  {}
func (nopMetrics) RecordSectionFailure(string, string) {}
func (nopMetrics) RecordLatency(string, float64)       {}

func newTestHandler() *DashboardHandler {
	src := statsapi.NewFixture(func() time.Time {
		return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	})
	logger, _ := xlogger.New(&xlogger.Config{Level: "error", Output: "stderr"})
	m := nopMetrics{}
	return NewDashboardHandler(
		logger,
		usecase.NewOverviewUseCase(src, m),
		usecase.NewStreamerListUseCase(src, m),
		usecase.NewStreamerDetailUseCase(src, m, nil),
		usecase.NewCampaignReportUseCase(src, m),
		usecase.NewPlatformCompareUseCase(src, m, nil),
		CacheTTLs{},
	)
}

func doRequest(t *testing.T, target string, handler func(echo.Context) error, pathParams ...string) map[string]interface{} {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for i := 0; i+1 < len(pathParams); i += 2 {
		c.SetParamNames(pathParams[i])
		c.SetParamValues(pathParams[i+1])
	}
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestOverviewEndpoint(t *testing.T) {
	h := newTestHandler()
	body := doRequest(t, "/api/dashboard/overview?days=7", h.Overview)
	if body["status"] != float64(200) {
		t.Fatalf("expected status 200, got %v", body["status"])
	}
	data := body["data"].(map[string]interface{})
	if len(data["cards"].([]interface{})) != 4 {
		t.Fatalf("expected 4 cards, got %v", data["cards"])
	}
	if len(data["trend"].([]interface{})) != 7 {
		t.Fatalf("expected 7 trend points")
	}
}

func TestOverviewServedFromCache(t *testing.T) {
	src := statsapi.NewFixture(func() time.Time {
		return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	})
	logger, _ := xlogger.New(&xlogger.Config{Level: "error", Output: "stderr"})
	m := nopMetrics{}
	h := NewDashboardHandler(
		logger,
		usecase.NewOverviewUseCase(src, m),
		usecase.NewStreamerListUseCase(src, m),
		usecase.NewStreamerDetailUseCase(src, m, nil),
		usecase.NewCampaignReportUseCase(src, m),
		usecase.NewPlatformCompareUseCase(src, m, nil),
		CacheTTLs{Overview: time.Minute},
	)
	h.SetCache(icache.NewTTLCache())

	first := doRequest(t, "/api/dashboard/overview?days=7", h.Overview)
	second := doRequest(t, "/api/dashboard/overview?days=7", h.Overview)
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Fatalf("cache hit differs from fresh render:\n%s\n%s", a, b)
	}
	if second["status"] != float64(200) {
		t.Fatalf("expected 200 envelope on cache hit, got %v", second["status"])
	}
}

func TestOverviewRejectsBadDays(t *testing.T) {
	h := newTestHandler()
	body := doRequest(t, "/api/dashboard/overview?days=-1", h.Overview)
	if body["status"] != float64(400) {
		t.Fatalf("expected status 400, got %v", body["status"])
	}
}

func TestStreamersEndpointPaginates(t *testing.T) {
	h := newTestHandler()
	body := doRequest(t, "/api/dashboard/streamers?page=1&limit=10", h.Streamers)
	data := body["data"].(map[string]interface{})
	rows := data["streamers"].([]interface{})
	if len(rows) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(rows))
	}
	p := data["pagination"].(map[string]interface{})
	if p["totalCount"] != float64(25) || p["totalPages"] != float64(3) {
		t.Fatalf("unexpected pagination: %v", p)
	}
}

func TestStreamersRejectsUnknownSortKey(t *testing.T) {
	h := newTestHandler()
	body := doRequest(t, "/api/dashboard/streamers?sortBy=height", h.Streamers)
	if body["status"] != float64(400) {
		t.Fatalf("expected status 400, got %v", body["status"])
	}
}

func TestStreamerDetailEndpoint(t *testing.T) {
	h := newTestHandler()
	body := doRequest(t, "/api/dashboard/streamers/st-001", h.StreamerDetail, "id", "st-001")
	data := body["data"].(map[string]interface{})
	profile := data["profile"].(map[string]interface{})
	if profile["id"] != "st-001" {
		t.Fatalf("unexpected profile: %v", profile)
	}
	if profile["influenceGrade"] == "" {
		t.Fatal("expected influence grade")
	}
}

func TestStreamerDetailNotFound(t *testing.T) {
	h := newTestHandler()
	body := doRequest(t, "/api/dashboard/streamers/st-999", h.StreamerDetail, "id", "st-999")
	if body["status"] != float64(404) {
		t.Fatalf("expected status 404, got %v", body["status"])
	}
	errs := body["data"].([]interface{})
	first := errs[0].(map[string]interface{})
	if !strings.Contains(first["message"].(string), "st-999") {
		t.Fatalf("expected id in message, got %v", first["message"])
	}
}

func TestCampaignsEndpointFilters(t *testing.T) {
	h := newTestHandler()
	body := doRequest(t, "/api/dashboard/campaigns?status=active", h.Campaigns)
	data := body["data"].(map[string]interface{})
	for _, row := range data["campaigns"].([]interface{}) {
		if row.(map[string]interface{})["status"] != "active" {
			t.Fatalf("non-active campaign in response: %v", row)
		}
	}
}

func TestPlatformsEndpoint(t *testing.T) {
	h := newTestHandler()
	body := doRequest(t, "/api/dashboard/platforms?days=30", h.Platforms)
	data := body["data"].(map[string]interface{})
	if len(data["platforms"].([]interface{})) != 4 {
		t.Fatalf("expected 4 platforms, got %v", data["platforms"])
	}
}
