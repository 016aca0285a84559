package api

import (
	"net/http"
	"time"

	"BrentLens/internal/domain/models"
	"BrentLens/internal/usecase"
	xhttp "BrentLens/pkg/http"
	xlogger "BrentLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// LivenessMessage is returned by GET /.
const LivenessMessage = "BrentLens is running!"

// Querier is the read side the handler needs.
type Querier interface {
	ListPrices() []models.PriceRecord
	ListEvents() []models.EventRecord
	ListChangePointMatches() []models.MatchResult
	Summary() models.PriceSummary
	WindowDays() int
}

// DashboardEchoHandler serves the dataset endpoints consumed by the dashboard.
type DashboardEchoHandler struct {
	logger *xlogger.Logger
	q      Querier
	ds     *usecase.Dataset
}

func NewDashboardEchoHandler(logger *xlogger.Logger, q Querier, ds *usecase.Dataset) *DashboardEchoHandler {
	return &DashboardEchoHandler{logger: logger, q: q, ds: ds}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Home)
	e.GET("/health", h.Health)

	g := e.Group("/api")
	g.GET("/prices", h.Prices)
	g.GET("/events", h.Events)
	g.GET("/change-points", h.ChangePoints)
	g.GET("/summary", h.Summary)
}

func (h *DashboardEchoHandler) Home(c echo.Context) error {
	return c.String(http.StatusOK, LivenessMessage)
}

// Prices, Events and ChangePoints answer with bare JSON arrays, not the envelope.
func (h *DashboardEchoHandler) Prices(c echo.Context) error {
	return c.JSON(http.StatusOK, h.q.ListPrices())
}

func (h *DashboardEchoHandler) Events(c echo.Context) error {
	return c.JSON(http.StatusOK, h.q.ListEvents())
}

func (h *DashboardEchoHandler) ChangePoints(c echo.Context) error {
	res := h.q.ListChangePointMatches()
	h.logger.Debug("change points matched", xlogger.Int("count", len(res)))
	return c.JSON(http.StatusOK, res)
}

func (h *DashboardEchoHandler) Summary(c echo.Context) error {
	sum := h.q.Summary()
	h.logger.Debug("summary computed",
		xlogger.Int("data_points", sum.DataPoints),
		xlogger.Float64("average", sum.Average),
		xlogger.Float64("volatility", sum.Volatility),
	)
	return c.JSON(http.StatusOK, sum)
}

type healthResponse struct {
	Status     string         `json:"status"`
	LoadedAt   string         `json:"loaded_at"`
	WindowDays int            `json:"window_days"`
	Rows       map[string]int `json:"rows"`
}

func (h *DashboardEchoHandler) Health(c echo.Context) error {
	if h.ds == nil {
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_NOT_READY", "dataset not loaded", http.StatusServiceUnavailable))
	}
	p, e, cp := h.ds.Counts()
	return c.JSON(http.StatusOK, healthResponse{
		Status:     "ok",
		LoadedAt:   h.ds.LoadedAt().UTC().Format(time.RFC3339),
		WindowDays: h.q.WindowDays(),
		Rows:       map[string]int{"prices": p, "events": e, "change_points": cp},
	})
}
