package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	models "streampulse/internal/domain/models"
	domrepo "streampulse/internal/domain/repository"
	icache "streampulse/internal/service/cache"
	"streampulse/internal/service/metrics"
	"streampulse/internal/service/ratelimit"
	"streampulse/internal/usecase"
	pkgcache "streampulse/pkg/cache"
	xhttp "streampulse/pkg/http"
	xlogger "streampulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CacheTTLs holds the handler-edge cache lifetime per screen. A zero value
// disables caching for that screen.
type CacheTTLs struct {
	Overview  time.Duration
	Streamers time.Duration
	Detail    time.Duration
	Campaigns time.Duration
	Platforms time.Duration
}

// DashboardHandler serves the assembled dashboard view-models over Echo.
type DashboardHandler struct {
	logger    *xlogger.Logger
	overview  *usecase.OverviewUseCase
	streamers *usecase.StreamerListUseCase
	detail    *usecase.StreamerDetailUseCase
	campaigns *usecase.CampaignReportUseCase
	platforms *usecase.PlatformCompareUseCase
	cache     icache.BytesCache
	rl        *ratelimit.Limiter
	vs        *usecase.ViewStateKeeper
	ttl       CacheTTLs
}

func NewDashboardHandler(
	logger *xlogger.Logger,
	overview *usecase.OverviewUseCase,
	streamers *usecase.StreamerListUseCase,
	detail *usecase.StreamerDetailUseCase,
	campaigns *usecase.CampaignReportUseCase,
	platforms *usecase.PlatformCompareUseCase,
	ttl CacheTTLs,
) *DashboardHandler {
	metrics.Register()
	return &DashboardHandler{
		logger:    logger,
		overview:  overview,
		streamers: streamers,
		detail:    detail,
		campaigns: campaigns,
		platforms: platforms,
		rl:        ratelimit.New(),
		vs:        usecase.NewViewStateKeeper(),
		ttl:       ttl,
	}
}

// SetCache injects the handler-edge bytes cache.
func (h *DashboardHandler) SetCache(c icache.BytesCache) { h.cache = c }

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/dashboard")
	g.GET("/overview", h.Overview)
	g.GET("/streamers", h.Streamers)
	g.GET("/streamers/:id", h.StreamerDetail)
	g.GET("/campaigns", h.Campaigns)
	g.GET("/platforms", h.Platforms)
}

func (h *DashboardHandler) Overview(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.AssemblyLatency.WithLabelValues("overview").Observe(time.Since(start).Seconds()) }()

	req := &models.OverviewRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":overview", 5, 2) {
		return xhttp.AppErrorResponse(c, tooManyRequests())
	}
	key := pkgcache.GenerateKeyWithParams("overview", req.Days)
	if served, err := h.cached(c, "overview", key); served {
		return err
	}

	gen := h.vs.Begin(key)
	res, err := h.overview.Assemble(c.Request().Context(), *req)
	if err != nil {
		metrics.AssemblyErrors.WithLabelValues("overview").Inc()
		h.logger.Error("overview assemble error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return h.respond(c, "overview", key, gen, h.ttl.Overview, res)
}

func (h *DashboardHandler) Streamers(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.AssemblyLatency.WithLabelValues("streamers").Observe(time.Since(start).Seconds()) }()

	req := &models.StreamersRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":streamers", 5, 2) {
		return xhttp.AppErrorResponse(c, tooManyRequests())
	}
	key := pkgcache.GenerateKeyWithParams("streamers", req.Search, req.SortBy, req.SortOrder, req.Page, req.Limit)
	if served, err := h.cached(c, "streamers", key); served {
		return err
	}

	gen := h.vs.Begin(key)
	res, err := h.streamers.Assemble(c.Request().Context(), *req)
	if err != nil {
		metrics.AssemblyErrors.WithLabelValues("streamers").Inc()
		h.logger.Error("streamers assemble error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return h.respond(c, "streamers", key, gen, h.ttl.Streamers, res)
}

func (h *DashboardHandler) StreamerDetail(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.AssemblyLatency.WithLabelValues("streamer_detail").Observe(time.Since(start).Seconds()) }()

	req := &models.StreamerDetailRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":detail", 5, 2) {
		return xhttp.AppErrorResponse(c, tooManyRequests())
	}
	key := pkgcache.GenerateKeyWithParams("detail", req.ID, req.Months)
	if served, err := h.cached(c, "streamer_detail", key); served {
		return err
	}

	gen := h.vs.Begin(key)
	res, err := h.detail.Assemble(c.Request().Context(), *req)
	if err != nil {
		var nf *domrepo.NotFoundError
		if errors.As(err, &nf) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("streamer %s not found", nf.ID))
		}
		metrics.AssemblyErrors.WithLabelValues("streamer_detail").Inc()
		h.logger.Error("streamer detail assemble error", xlogger.Error(err), xlogger.String("id", req.ID))
		return xhttp.AppErrorResponse(c, err)
	}
	return h.respond(c, "streamer_detail", key, gen, h.ttl.Detail, res)
}

func (h *DashboardHandler) Campaigns(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.AssemblyLatency.WithLabelValues("campaigns").Observe(time.Since(start).Seconds()) }()

	req := &models.CampaignsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":campaigns", 5, 2) {
		return xhttp.AppErrorResponse(c, tooManyRequests())
	}
	key := pkgcache.GenerateKey("campaigns", req.Status)
	if served, err := h.cached(c, "campaigns", key); served {
		return err
	}

	gen := h.vs.Begin(key)
	res, err := h.campaigns.Assemble(c.Request().Context(), *req)
	if err != nil {
		metrics.AssemblyErrors.WithLabelValues("campaigns").Inc()
		h.logger.Error("campaigns assemble error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return h.respond(c, "campaigns", key, gen, h.ttl.Campaigns, res)
}

func (h *DashboardHandler) Platforms(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.AssemblyLatency.WithLabelValues("platforms").Observe(time.Since(start).Seconds()) }()

	req := &models.PlatformsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":platforms", 5, 2) {
		return xhttp.AppErrorResponse(c, tooManyRequests())
	}
	key := pkgcache.GenerateKeyWithParams("platforms", req.Days)
	if served, err := h.cached(c, "platforms", key); served {
		return err
	}

	gen := h.vs.Begin(key)
	res, err := h.platforms.Assemble(c.Request().Context(), *req)
	if err != nil {
		metrics.AssemblyErrors.WithLabelValues("platforms").Inc()
		h.logger.Error("platforms assemble error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return h.respond(c, "platforms", key, gen, h.ttl.Platforms, res)
}

// cached serves a cache hit directly. The bool reports whether the response
// was written.
func (h *DashboardHandler) cached(c echo.Context, screen, key string) (bool, error) {
	if h.cache == nil {
		return false, nil
	}
	b, ok, err := h.cache.GetBytes(key)
	if err != nil {
		h.logger.Warn("cache get error", xlogger.Error(err), xlogger.String("screen", screen))
		return false, nil
	}
	if !ok {
		return false, nil
	}
	h.logger.Debug("cache hit", xlogger.String("key", key))
	return true, c.JSONBlob(http.StatusOK, b)
}

// respond commits the refresh cycle, caches the serialized body and writes
// it. A cycle that lost the race to a newer one serves the fresher committed
// view instead of its own result.
func (h *DashboardHandler) respond(c echo.Context, screen, key string, gen uint64, ttl time.Duration, res interface{}) error {
	if !h.vs.Commit(key, gen, res) {
		if cur, ok := h.vs.Current(key); ok {
			h.logger.Debug("refresh cycle superseded", xlogger.String("key", key))
			res = cur
		}
	}
	if h.cache != nil && ttl > 0 {
		if b, err := jsonBody(res); err == nil {
			if err := h.cache.SetBytes(key, b, ttl); err != nil {
				h.logger.Warn("cache set error", xlogger.Error(err), xlogger.String("screen", screen))
			}
		}
	}
	return xhttp.SuccessResponse(c, res)
}

// jsonBody pre-serializes the response envelope so cache hits can be served
// byte-for-byte identical to a fresh render.
func jsonBody(data interface{}) ([]byte, error) {
	return json.Marshal(xhttp.APIResponse{
		Status:  http.StatusOK,
		Message: http.StatusText(http.StatusOK),
		Data:    data,
	})
}

func tooManyRequests() *xhttp.AppError {
	return xhttp.NewAppError("rate_limited", "", "Too many requests", http.StatusTooManyRequests)
}
