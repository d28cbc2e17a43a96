package approve_session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/meetsync/MS-SchedulingService/internal/api/handlers"
	"github.com/meetsync/MS-SchedulingService/internal/api/middleware"
	approveSession "github.com/meetsync/MS-SchedulingService/internal/usecase/approve_session"
)

const (
	msgInvalidSessionID = "некорректный ID сессии"
	msgInvalidTimezone  = "некорректная временная зона"
	msgNotFound         = "сессия не найдена"
	msgUnauthorized     = "требуется аутентификация"
)

type Handler struct {
	useCase ApproveSessionUseCase
	logger  Logger
}

func NewHandler(useCase ApproveSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hostID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	sessionID, err := strconv.ParseInt(vars["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /sessions/{id}/approve - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &approveSession.Request{
		SessionID: sessionID,
		HostID:    hostID,
	})
	if err != nil {
		switch {
		case errors.Is(err, approveSession.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/approve - Session not found: session_id=%d, host_id=%d",
				sessionID, hostID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, approveSession.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{id}/approve - Invalid input: session_id=%d, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidSessionID)

		default:
			h.logger.Error("POST /sessions/{id}/approve - Failed to approve session: session_id=%d, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response, err := FromUseCaseResponse(result, r.URL.Query().Get("tz"))
	if err != nil {
		h.logger.Warn("POST /sessions/{id}/approve - Invalid timezone: session_id=%d, error=%v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidTimezone)
		return
	}

	h.logger.Info("POST /sessions/{id}/approve - Session approved: session_id=%d, host_id=%d, cancelled=%d",
		sessionID, hostID, len(result.CancelledSessionIDs))
	handlers.RespondJSON(w, http.StatusOK, response)
}
