package request_session

import (
	"errors"
	"net/http"

	"github.com/meetsync/MS-SchedulingService/internal/api/handlers"
	"github.com/meetsync/MS-SchedulingService/internal/api/middleware"
	requestSession "github.com/meetsync/MS-SchedulingService/internal/usecase/request_session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimestamp   = "некорректная метка времени, ожидается YYYY-MM-DD HH:MM и валидная IANA зона"
	msgScheduleNotFound   = "расписание не найдено или не покрывает запрошенный интервал"
	msgInvalidDuration    = "длительность сессии вне границ расписания"
	msgDuplicateRequest   = "заявка на этот интервал уже существует"
	msgHostUnavailable    = "у хоста уже есть подтвержденная сессия в этом интервале"
	msgGuestUnavailable   = "у вас уже есть подтвержденная сессия в этом интервале"
	msgUnauthorized       = "требуется аутентификация"
)

type Handler struct {
	useCase RequestSessionUseCase
	logger  Logger
}

func NewHandler(useCase RequestSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	guestID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req RequestSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(guestID)
	if err != nil {
		h.logger.Warn("POST /sessions - Failed to parse timestamps: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimestamp)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, requestSession.ErrScheduleNotFound):
			h.logger.Warn("POST /sessions - Schedule not found or interval outside window: schedule_id=%d, guest_id=%d",
				req.ScheduleID, guestID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, requestSession.ErrInvalidDuration):
			h.logger.Warn("POST /sessions - Duration outside bounds: schedule_id=%d, guest_id=%d", req.ScheduleID, guestID)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, requestSession.ErrDuplicateRequest):
			h.logger.Warn("POST /sessions - Duplicate request: schedule_id=%d, guest_id=%d", req.ScheduleID, guestID)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateRequest)

		case errors.Is(err, requestSession.ErrHostUnavailable):
			h.logger.Warn("POST /sessions - Host unavailable: schedule_id=%d, guest_id=%d", req.ScheduleID, guestID)
			handlers.RespondError(w, http.StatusConflict, msgHostUnavailable)

		case errors.Is(err, requestSession.ErrGuestUnavailable):
			h.logger.Warn("POST /sessions - Guest unavailable: schedule_id=%d, guest_id=%d", req.ScheduleID, guestID)
			handlers.RespondError(w, http.StatusConflict, msgGuestUnavailable)

		case errors.Is(err, requestSession.ErrInvalidInput):
			h.logger.Warn("POST /sessions - Invalid input: guest_id=%d, error=%v", guestID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /sessions - Failed to create session: schedule_id=%d, guest_id=%d, error=%v",
				req.ScheduleID, guestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response, err := FromUseCaseResponse(result, req.Timezone)
	if err != nil {
		h.logger.Error("POST /sessions - Failed to format response: session_id=%d, error=%v", result.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /sessions - Session created successfully: session_id=%d, guest_id=%d, confirmed=%t",
		result.ID, guestID, result.Confirmed)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
