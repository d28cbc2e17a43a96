package list_schedules

import (
	"net/http"

	"github.com/meetsync/MS-SchedulingService/internal/api/handlers"
	"github.com/meetsync/MS-SchedulingService/internal/api/middleware"
)

const (
	msgInvalidTimezone = "некорректная временная зона"
	msgUnauthorized    = "требуется аутентификация"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedules
// Возвращает расписания вызывающего хоста
// Опциональный query параметр tz задает зону отображения времени
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hostID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.List(r.Context(), hostID)
	if err != nil {
		h.logger.Error("GET /schedules - Failed to list schedules: host_id=%d, error=%v", hostID, err)
		handlers.RespondInternalError(w)
		return
	}

	response, err := FromServiceResponse(result, r.URL.Query().Get("tz"))
	if err != nil {
		h.logger.Warn("GET /schedules - Invalid timezone: host_id=%d, error=%v", hostID, err)
		handlers.RespondBadRequest(w, msgInvalidTimezone)
		return
	}

	h.logger.Info("GET /schedules - Schedules retrieved successfully: host_id=%d, count=%d", hostID, len(response))
	handlers.RespondJSON(w, http.StatusOK, response)
}
