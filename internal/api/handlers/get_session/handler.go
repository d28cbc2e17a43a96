package get_session

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/meetsync/MS-SchedulingService/internal/api/handlers"
	"github.com/meetsync/MS-SchedulingService/internal/api/middleware"
	"github.com/meetsync/MS-SchedulingService/internal/service/sessions"
	"github.com/meetsync/MS-SchedulingService/internal/service/sessions/models"
	"github.com/meetsync/MS-SchedulingService/pkg/timezone"
)

const (
	msgInvalidSessionID = "некорректный ID сессии"
	msgInvalidTimezone  = "некорректная временная зона"
	msgNotFound         = "сессия не найдена"
	msgForbidden        = "доступ запрещен"
	msgUnauthorized     = "требуется аутентификация"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// SessionResponse HTTP response model
type SessionResponse struct {
	ID         int64   `json:"id"`
	HostID     int64   `json:"hostId"`
	GuestID    int64   `json:"guestId"`
	ScheduleID int64   `json:"scheduleId"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Timezone   string  `json:"timezone"`
	Title      string  `json:"title"`
	Confirmed  bool    `json:"confirmed"`
	HostURL    *string `json:"hostUrl,omitempty"`
	GuestURL   *string `json:"guestUrl,omitempty"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// Handle GET /api/v1/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	sessionID, err := strconv.ParseInt(vars["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /sessions/{id} - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	result, err := h.service.GetByID(r.Context(), sessionID, callerID)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("GET /sessions/{id} - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("GET /sessions/{id} - Access denied: session_id=%d, user_id=%d", sessionID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /sessions/{id} - Failed to get session: session_id=%d, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response, err := toResponse(result, r.URL.Query().Get("tz"))
	if err != nil {
		h.logger.Warn("GET /sessions/{id} - Invalid timezone: session_id=%d, error=%v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidTimezone)
		return
	}

	h.logger.Info("GET /sessions/{id} - Session retrieved successfully: session_id=%d, user_id=%d", sessionID, callerID)
	handlers.RespondJSON(w, http.StatusOK, response)
}

func toResponse(resp *models.SessionResponse, zone string) (*SessionResponse, error) {
	if zone == "" {
		zone = timezone.DefaultZone
	}

	start, err := timezone.ToDisplay(resp.StartTime, zone)
	if err != nil {
		return nil, err
	}

	end, err := timezone.ToDisplay(resp.EndTime, zone)
	if err != nil {
		return nil, err
	}

	return &SessionResponse{
		ID:         resp.ID,
		HostID:     resp.HostID,
		GuestID:    resp.GuestID,
		ScheduleID: resp.ScheduleID,
		Start:      start,
		End:        end,
		Timezone:   zone,
		Title:      resp.Title,
		Confirmed:  resp.Confirmed,
		HostURL:    resp.HostURL,
		GuestURL:   resp.GuestURL,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}, nil
}
