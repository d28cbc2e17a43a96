package create_schedule

import (
	"errors"
	"net/http"

	"github.com/meetsync/MS-SchedulingService/internal/api/handlers"
	"github.com/meetsync/MS-SchedulingService/internal/api/middleware"
	"github.com/meetsync/MS-SchedulingService/internal/service/schedules"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimestamp   = "некорректная метка времени, ожидается YYYY-MM-DD HH:MM и валидная IANA зона"
	msgInvalidWindow      = "конец окна должен быть позже начала"
	msgInvalidDuration    = "некорректные границы длительности"
	msgWindowTooShort     = "окно меньше минимальной длительности сессии"
	msgScheduleOverlap    = "окно пересекается с существующим расписанием"
	msgUnauthorized       = "требуется аутентификация"
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

// Handle POST /api/v1/schedules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hostID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель сервиса (с нормализацией времени)
	serviceReq, err := req.ToServiceRequest(hostID)
	if err != nil {
		h.logger.Warn("POST /schedules - Failed to parse timestamps: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimestamp)
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrScheduleOverlap):
			h.logger.Warn("POST /schedules - Window overlap: host_id=%d", hostID)
			handlers.RespondError(w, http.StatusConflict, msgScheduleOverlap)

		case errors.Is(err, schedules.ErrInvalidWindow):
			h.logger.Warn("POST /schedules - Invalid window: host_id=%d", hostID)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, schedules.ErrWindowTooShort):
			h.logger.Warn("POST /schedules - Window too short: host_id=%d", hostID)
			handlers.RespondBadRequest(w, msgWindowTooShort)

		case errors.Is(err, schedules.ErrInvalidDuration):
			h.logger.Warn("POST /schedules - Invalid duration bounds: host_id=%d", hostID)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("POST /schedules - Invalid input: host_id=%d, error=%v", hostID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /schedules - Failed to create schedule: host_id=%d, error=%v", hostID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response, err := FromServiceResponse(result, req.Timezone)
	if err != nil {
		h.logger.Error("POST /schedules - Failed to format response: schedule_id=%d, error=%v", result.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /schedules - Schedule created successfully: schedule_id=%d, host_id=%d", result.ID, hostID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
