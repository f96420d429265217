package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "shoppulse/internal/errors"
	"shoppulse/internal/infrastructure"
)

// summaryRequest carries the validated query parameters of GET /summary
type summaryRequest struct {
	Start string `validate:"required,datetime=2006-01-02"`
	End   string `validate:"required,datetime=2006-01-02"`
}

// DashboardHandler handles dashboard HTTP requests with RFC 7807 compliance
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the dashboard routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summary", h.GetSummary)
	r.Get("/quality", h.GetDataQuality)
	r.Get("/health", h.GetHealth)

	return r
}

// GetSummary handles GET /api/summary?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	reqID := infrastructure.GetTraceID(r.Context())
	started := time.Now()

	req := summaryRequest{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	}

	if err := h.validate.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(
			"start/end", "start and end must be dates in YYYY-MM-DD format"))
		observeSummary(http.StatusBadRequest, time.Since(started))
		return
	}

	start, _ := time.Parse("2006-01-02", req.Start)
	end, _ := time.Parse("2006-01-02", req.End)

	h.logger.InfoContext(r.Context(), "computing summary",
		slog.String("request_id", reqID),
		slog.String("start", req.Start),
		slog.String("end", req.End),
	)

	summary, err := h.service.GetSummary(r.Context(), start, end)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		observeSummary(http.StatusInternalServerError, time.Since(started))
		return
	}

	render.JSON(w, r, summary)
	observeSummary(http.StatusOK, time.Since(started))
}

// GetDataQuality handles GET /api/quality
func (h *DashboardHandler) GetDataQuality(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.GetDataQuality(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, report)
}

// GetHealth handles GET /api/health with the loaded dataset date range
func (h *DashboardHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status": "ok",
	}

	if min, max, err := h.service.DateRange(r.Context()); err == nil {
		response["data_from"] = min.Format("2006-01-02")
		response["data_to"] = max.Format("2006-01-02")
	} else {
		response["status"] = "loading"
	}

	render.JSON(w, r, response)
}
