package approve_session

import (
	"context"
	"errors"
	"fmt"

	"github.com/meetsync/MS-SchedulingService/internal/domain"
	sessionRepo "github.com/meetsync/MS-SchedulingService/internal/infra/storage/session"
)

// UseCase use case для подтверждения pending-сессии хостом
type UseCase struct {
	sessionRepo SessionRepository
	meetClient  MeetProviderClient
	notifier    NotifierClient
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	meetClient MeetProviderClient,
	notifier NotifierClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo: sessionRepo,
		meetClient:  meetClient,
		notifier:    notifier,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case подтверждения сессии
// Переход pending -> confirmed односторонний и идемпотентный:
// повторное подтверждение уже подтвержденной сессии - no-op успех
//
// Каскад: остальные pending-заявки хоста, пересекающиеся с подтвержденным
// интервалом, удаляются в той же транзакции, что и смена статуса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApproveSession: session=%d, host=%d", req.SessionID, req.HostID)

	if req.SessionID <= 0 || req.HostID <= 0 {
		return nil, fmt.Errorf("%w: sessionID and hostID must be positive", ErrInvalidInput)
	}

	var (
		result          *domain.Session
		cancelled       []*domain.Session
		alreadyApproved bool
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		session, err := uc.sessionRepo.GetByID(txCtx, req.SessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				uc.logger.Warn("ApproveSession: session id=%d not found", req.SessionID)
				return ErrSessionNotFound
			}
			uc.logger.Error("ApproveSession: failed to get session id=%d: %v", req.SessionID, err)
			return fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
		}

		// Чужая сессия для хоста неотличима от несуществующей
		if session.HostID != req.HostID {
			uc.logger.Warn("ApproveSession: session id=%d does not belong to host=%d", req.SessionID, req.HostID)
			return ErrSessionNotFound
		}

		if session.IsConfirmed() {
			uc.logger.Info("ApproveSession: session id=%d already confirmed, no-op", session.ID)
			result = session
			alreadyApproved = true
			return nil
		}

		if err := uc.sessionRepo.Confirm(txCtx, session.ID); err != nil {
			uc.logger.Error("ApproveSession: failed to confirm session id=%d: %v", session.ID, err)
			return fmt.Errorf("%w: failed to confirm session: %v", ErrInternal, err)
		}
		session.Confirmed = true

		// Каскад: pending-заявки хоста, ставшие невозможными
		cancelled, err = uc.sessionRepo.DeletePendingOverlapping(
			txCtx, session.HostID, session.StartTime, session.EndTime, session.ID)
		if err != nil {
			uc.logger.Error("ApproveSession: failed to cascade pending deletions for session id=%d: %v", session.ID, err)
			return fmt.Errorf("%w: failed to cascade pending deletions: %v", ErrInternal, err)
		}

		result = session
		return nil
	})

	if err != nil {
		return nil, err
	}

	if alreadyApproved {
		return toResponse(result, nil), nil
	}

	uc.logger.Info("ApproveSession: session id=%d confirmed, %d pending requests cancelled by cascade",
		result.ID, len(cancelled))

	// Внешние эффекты после коммита
	uc.provisionMeeting(ctx, result)
	uc.notifyParties(ctx, result, cancelled)

	return toResponse(result, cancelled), nil
}

// provisionMeeting создает встречу у провайдера
// Ошибка провайдера не отменяет подтверждение: сессия остается
// confirmed без ссылок (degraded success)
func (uc *UseCase) provisionMeeting(ctx context.Context, session *domain.Session) {
	meeting, err := uc.meetClient.ProvisionMeeting(ctx, session.Title, session.StartTime)
	if err != nil {
		uc.logger.Error("ApproveSession: meeting provisioning failed for session id=%d: %v", session.ID, err)
		return
	}

	if err := uc.sessionRepo.SetMeetingURLs(ctx, session.ID, meeting.HostURL, meeting.GuestURL); err != nil {
		uc.logger.Error("ApproveSession: failed to store meeting urls for session id=%d: %v", session.ID, err)
		return
	}

	session.HostURL = &meeting.HostURL
	session.GuestURL = &meeting.GuestURL
}

// notifyParties уведомляет хоста и гостя о подтверждении,
// гостей отмененных заявок - об отмене (все fire-and-forget)
func (uc *UseCase) notifyParties(ctx context.Context, session *domain.Session, cancelled []*domain.Session) {
	payload := map[string]string{
		"sessionId": fmt.Sprintf("%d", session.ID),
		"title":     session.Title,
	}
	uc.notifier.Notify(ctx, session.HostID, domain.EventSessionConfirmed, payload)
	uc.notifier.Notify(ctx, session.GuestID, domain.EventSessionConfirmed, payload)

	for _, c := range cancelled {
		uc.notifier.Notify(ctx, c.GuestID, domain.EventSessionCancelled, map[string]string{
			"sessionId": fmt.Sprintf("%d", c.ID),
			"title":     c.Title,
		})
	}
}

func toResponse(session *domain.Session, cancelled []*domain.Session) *Response {
	cancelledIDs := make([]int64, len(cancelled))
	for i, c := range cancelled {
		cancelledIDs[i] = c.ID
	}

	return &Response{
		ID:                  session.ID,
		HostID:              session.HostID,
		GuestID:             session.GuestID,
		ScheduleID:          session.ScheduleID,
		Start:               session.StartTime,
		End:                 session.EndTime,
		Title:               session.Title,
		Confirmed:           session.Confirmed,
		HostURL:             session.HostURL,
		GuestURL:            session.GuestURL,
		CreatedAt:           session.CreatedAt,
		UpdatedAt:           session.UpdatedAt,
		CancelledSessionIDs: cancelledIDs,
	}
}
