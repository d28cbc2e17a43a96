package get_user_sessions

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
	msgInvalidUserID   = "некорректный ID пользователя"
	msgInvalidFilter   = "некорректные параметры фильтра"
	msgInvalidTimezone = "некорректная временная зона"
	msgForbidden       = "доступ запрещен"
	msgUnauthorized    = "требуется аутентификация"
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

// Handle GET /api/v1/users/{userId}/sessions
// Query параметры: role=host|guest, confirmed=true|false, tz=IANA-зона
// Пользователь видит только собственные сессии
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{userId}/sessions - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	if userID != callerID {
		h.logger.Warn("GET /users/{userId}/sessions - Access denied: user_id=%d, caller_id=%d", userID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	serviceReq := &models.ListSessionsRequest{UserID: userID}

	if role := r.URL.Query().Get("role"); role != "" {
		serviceReq.Role = &role
	}

	if confirmed := r.URL.Query().Get("confirmed"); confirmed != "" {
		value, err := strconv.ParseBool(confirmed)
		if err != nil {
			h.logger.Warn("GET /users/{userId}/sessions - Invalid confirmed filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		serviceReq.Confirmed = &value
	}

	result, err := h.service.ListUserSessions(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("GET /users/{userId}/sessions - Invalid filter: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /users/{userId}/sessions - Failed to list sessions: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response, err := toResponseList(result, r.URL.Query().Get("tz"))
	if err != nil {
		h.logger.Warn("GET /users/{userId}/sessions - Invalid timezone: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidTimezone)
		return
	}

	h.logger.Info("GET /users/{userId}/sessions - Sessions retrieved successfully: user_id=%d, count=%d",
		userID, len(response))
	handlers.RespondJSON(w, http.StatusOK, response)
}

func toResponseList(resp *models.SessionListResponse, zone string) ([]*SessionResponse, error) {
	if zone == "" {
		zone = timezone.DefaultZone
	}

	result := make([]*SessionResponse, len(resp.Sessions))
	for i, session := range resp.Sessions {
		start, err := timezone.ToDisplay(session.StartTime, zone)
		if err != nil {
			return nil, err
		}

		end, err := timezone.ToDisplay(session.EndTime, zone)
		if err != nil {
			return nil, err
		}

		result[i] = &SessionResponse{
			ID:         session.ID,
			HostID:     session.HostID,
			GuestID:    session.GuestID,
			ScheduleID: session.ScheduleID,
			Start:      start,
			End:        end,
			Timezone:   zone,
			Title:      session.Title,
			Confirmed:  session.Confirmed,
			HostURL:    session.HostURL,
			GuestURL:   session.GuestURL,
			CreatedAt:  session.CreatedAt.Format(time.RFC3339),
			UpdatedAt:  session.UpdatedAt.Format(time.RFC3339),
		}
	}

	return result, nil
}
