package update_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/meetsync/MS-SchedulingService/internal/api/handlers"
	"github.com/meetsync/MS-SchedulingService/internal/api/middleware"
	"github.com/meetsync/MS-SchedulingService/internal/service/schedules"
)

const (
	msgInvalidScheduleID  = "некорректный ID расписания"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimestamp   = "некорректная метка времени, ожидается YYYY-MM-DD HH:MM и валидная IANA зона"
	msgInvalidWindow      = "конец окна должен быть позже начала"
	msgInvalidDuration    = "некорректные границы длительности"
	msgWindowTooShort     = "окно меньше минимальной длительности сессии"
	msgScheduleOverlap    = "окно пересекается с существующим расписанием"
	msgNotFound           = "расписание не найдено"
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

// Handle PUT /api/v1/schedules/{scheduleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hostID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	scheduleID, err := strconv.ParseInt(vars["scheduleId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /schedules/{id} - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedules/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(scheduleID, hostID)
	if err != nil {
		h.logger.Warn("PUT /schedules/{id} - Failed to parse timestamps: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimestamp)
		return
	}

	result, err := h.service.Update(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrScheduleNotFound):
			h.logger.Warn("PUT /schedules/{id} - Schedule not found: schedule_id=%d, host_id=%d", scheduleID, hostID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, schedules.ErrScheduleOverlap):
			h.logger.Warn("PUT /schedules/{id} - Window overlap: schedule_id=%d, host_id=%d", scheduleID, hostID)
			handlers.RespondError(w, http.StatusConflict, msgScheduleOverlap)

		case errors.Is(err, schedules.ErrInvalidWindow):
			h.logger.Warn("PUT /schedules/{id} - Invalid window: schedule_id=%d", scheduleID)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, schedules.ErrWindowTooShort):
			h.logger.Warn("PUT /schedules/{id} - Window too short: schedule_id=%d", scheduleID)
			handlers.RespondBadRequest(w, msgWindowTooShort)

		case errors.Is(err, schedules.ErrInvalidDuration):
			h.logger.Warn("PUT /schedules/{id} - Invalid duration bounds: schedule_id=%d", scheduleID)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("PUT /schedules/{id} - Invalid input: schedule_id=%d, error=%v", scheduleID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /schedules/{id} - Failed to update schedule: schedule_id=%d, error=%v", scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response, err := FromServiceResponse(result, req.Timezone)
	if err != nil {
		h.logger.Error("PUT /schedules/{id} - Failed to format response: schedule_id=%d, error=%v", scheduleID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /schedules/{id} - Schedule updated successfully: schedule_id=%d, host_id=%d", scheduleID, hostID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
