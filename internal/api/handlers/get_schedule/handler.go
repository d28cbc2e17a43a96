package get_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/meetsync/MS-SchedulingService/internal/api/handlers"
	"github.com/meetsync/MS-SchedulingService/internal/api/middleware"
	"github.com/meetsync/MS-SchedulingService/internal/service/schedules"
	"github.com/meetsync/MS-SchedulingService/internal/service/schedules/models"
	"github.com/meetsync/MS-SchedulingService/pkg/timezone"
)

const (
	msgInvalidScheduleID = "некорректный ID расписания"
	msgInvalidTimezone   = "некорректная временная зона"
	msgNotFound          = "расписание не найдено"
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

// ScheduleResponse HTTP response model
type ScheduleResponse struct {
	ID                 int64  `json:"id"`
	HostID             int64  `json:"hostId"`
	WindowStart        string `json:"windowStart"`
	WindowEnd          string `json:"windowEnd"`
	Timezone           string `json:"timezone"`
	MinDurationMinutes int    `json:"minDurationMinutes"`
	MaxDurationMinutes int    `json:"maxDurationMinutes"`
	AutoApprove        bool   `json:"autoApprove"`
	CreatedAt          string `json:"createdAt"`
	UpdatedAt          string `json:"updatedAt"`
}

// Handle GET /api/v1/schedules/{scheduleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hostID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	scheduleID, err := strconv.ParseInt(vars["scheduleId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /schedules/{id} - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	result, err := h.service.Get(r.Context(), scheduleID, hostID)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrScheduleNotFound):
			h.logger.Warn("GET /schedules/{id} - Schedule not found: schedule_id=%d, host_id=%d", scheduleID, hostID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /schedules/{id} - Failed to get schedule: schedule_id=%d, error=%v", scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response, err := toResponse(result, r.URL.Query().Get("tz"))
	if err != nil {
		h.logger.Warn("GET /schedules/{id} - Invalid timezone: schedule_id=%d, error=%v", scheduleID, err)
		handlers.RespondBadRequest(w, msgInvalidTimezone)
		return
	}

	h.logger.Info("GET /schedules/{id} - Schedule retrieved successfully: schedule_id=%d, host_id=%d", scheduleID, hostID)
	handlers.RespondJSON(w, http.StatusOK, response)
}

func toResponse(resp *models.ScheduleResponse, zone string) (*ScheduleResponse, error) {
	if zone == "" {
		zone = timezone.DefaultZone
	}

	windowStart, err := timezone.ToDisplay(resp.WindowStart, zone)
	if err != nil {
		return nil, err
	}

	windowEnd, err := timezone.ToDisplay(resp.WindowEnd, zone)
	if err != nil {
		return nil, err
	}

	return &ScheduleResponse{
		ID:                 resp.ID,
		HostID:             resp.HostID,
		WindowStart:        windowStart,
		WindowEnd:          windowEnd,
		Timezone:           zone,
		MinDurationMinutes: resp.MinDurationMinutes,
		MaxDurationMinutes: resp.MaxDurationMinutes,
		AutoApprove:        resp.AutoApprove,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}, nil
}
