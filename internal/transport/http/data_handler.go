package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/satyenduM/Quant-Matrix-EDA-App/internal/errors"
	"github.com/satyenduM/Quant-Matrix-EDA-App/pkg/contracts/domain"
)

// DashboardRequest is the body of POST /data. An absent or empty filters
// object selects the whole dataset.
type DashboardRequest struct {
	Filters domain.FilterSpec `json:"filters"`
}

// DataHandler serves the filter option listing and the dashboard payload.
type DataHandler struct {
	service      DataService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewDataHandler creates a new data handler.
func NewDataHandler(service DataService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "data")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the data routes.
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/filters", h.GetFilters)
	r.Post("/data", h.GetDashboard)
	return r
}

// GetFilters handles GET /filters.
func (h *DataHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.FilterOptions(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, opts)
}

// GetDashboard handles POST /data.
func (h *DataHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	var req DashboardRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrInvalidRequest("invalid request body"))
		return
	}
	if err := h.validate.Struct(req.Filters); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("invalid filters: "+err.Error()))
		return
	}

	payload, err := h.service.Dashboard(r.Context(), req.Filters)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, payload)
}
