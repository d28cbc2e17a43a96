package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/meetsync/MS-SchedulingService/internal/domain"
	sessionRepo "github.com/meetsync/MS-SchedulingService/internal/infra/storage/session"
	"github.com/meetsync/MS-SchedulingService/internal/service/sessions/models"
)

// Service сервис для чтения и удаления сессий
type Service struct {
	sessionRepo SessionRepository
	notifier    NotifierClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	sessionRepo SessionRepository,
	notifier NotifierClient,
	logger Logger,
) *Service {
	return &Service{
		sessionRepo: sessionRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetByID получает сессию по ID
// Доступ есть только у хоста и гостя сессии
func (s *Service) GetByID(ctx context.Context, id int64, callerID int64) (*models.SessionResponse, error) {
	s.logger.Info("GetSession: fetching session id=%d for user=%d", id, callerID)

	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("GetSession: session id=%d not found", id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("GetSession: repository error for session id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetSession - repository error: %v", ErrInternal, err)
	}

	if !session.InvolvesUser(callerID) {
		s.logger.Warn("GetSession: access denied for user=%d to session id=%d", callerID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainSession(session), nil
}

// ListUserSessions получает сессии пользователя с фильтрацией по роли и статусу
func (s *Service) ListUserSessions(ctx context.Context, req *models.ListSessionsRequest) (*models.SessionListResponse, error) {
	s.logger.Info("ListUserSessions: user=%d, role=%v, confirmed=%v", req.UserID, req.Role, req.Confirmed)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListUserSessions: invalid filter for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	sessions, err := s.sessionRepo.ListByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListUserSessions: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: ListUserSessions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListUserSessions: fetched %d sessions for user=%d", len(sessions), req.UserID)
	return models.FromDomainSessionList(sessions), nil
}

// Delete удаляет сессию
// Удалить сессию может хост или гость, из любого статуса
// Вторая сторона получает уведомление об отмене
func (s *Service) Delete(ctx context.Context, id int64, callerID int64) error {
	s.logger.Info("DeleteSession: session=%d, caller=%d", id, callerID)

	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("DeleteSession: session id=%d not found", id)
			return ErrSessionNotFound
		}
		s.logger.Error("DeleteSession: repository error for session id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteSession - repository error: %v", ErrInternal, err)
	}

	if !session.InvolvesUser(callerID) {
		s.logger.Warn("DeleteSession: caller=%d is neither host nor guest of session id=%d", callerID, id)
		return ErrAccessDenied
	}

	if err := s.sessionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			// Конкурентное удаление: сессии уже нет, цель достигнута
			return nil
		}
		s.logger.Error("DeleteSession: failed to delete session id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteSession - failed to delete: %v", ErrInternal, err)
	}

	// Уведомляем вторую сторону об отмене (fire-and-forget)
	counterparty := session.HostID
	if callerID == session.HostID {
		counterparty = session.GuestID
	}
	s.notifier.Notify(ctx, counterparty, domain.EventSessionCancelled, map[string]string{
		"sessionId": fmt.Sprintf("%d", session.ID),
		"title":     session.Title,
	})

	s.logger.Info("DeleteSession: session id=%d deleted by user=%d", id, callerID)
	return nil
}
