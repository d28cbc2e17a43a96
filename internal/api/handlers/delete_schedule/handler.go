package delete_schedule

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/meetsync/MS-SchedulingService/internal/api/handlers"
	"github.com/meetsync/MS-SchedulingService/internal/api/middleware"
)

const (
	msgInvalidScheduleID = "некорректный ID расписания"
	msgUnauthorized      = "требуется аутентификация"
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

// Handle DELETE /api/v1/schedules/{scheduleId}
// Идемпотентно: удаление отсутствующего расписания тоже дает 204
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hostID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	scheduleID, err := strconv.ParseInt(vars["scheduleId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /schedules/{id} - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	if err := h.service.Delete(r.Context(), scheduleID, hostID); err != nil {
		h.logger.Error("DELETE /schedules/{id} - Failed to delete schedule: schedule_id=%d, error=%v", scheduleID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /schedules/{id} - Schedule deleted: schedule_id=%d, host_id=%d", scheduleID, hostID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
