package chapter

import (
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-tour-chapters/app/observability/metrics"
	"github.com/FACorreiaa/go-tour-chapters/internal/api"
	"github.com/FACorreiaa/go-tour-chapters/internal/types"
)

type Handler struct {
	chapterService Service
	metrics        *metrics.AppMetrics
	logger         *slog.Logger
}

func NewHandler(chapterService Service, appMetrics *metrics.AppMetrics, logger *slog.Logger) *Handler {
	return &Handler{
		chapterService: chapterService,
		metrics:        appMetrics,
		logger:         logger,
	}
}

// GenerateTour handles POST /api/v1/tours.
func (h *Handler) GenerateTour(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GenerateTour").Start(r.Context(), "GenerateTour", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/tours"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateTour"))
	start := time.Now()

	var req types.TourRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.PlaceName == "" {
		l.ErrorContext(ctx, "Place name is required")
		api.ErrorResponse(w, r, http.StatusBadRequest, "place_name is required")
		return
	}
	span.SetAttributes(attribute.String("place.name", req.PlaceName))

	response := h.chapterService.GenerateTour(ctx, req)

	if h.metrics != nil {
		h.metrics.TourRequestsTotal.Add(ctx, 1)
		h.metrics.TourDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}

	status := http.StatusOK
	if !response.Success {
		status = http.StatusUnprocessableEntity
	}
	api.WriteJSONResponse(w, r, status, response)
}
