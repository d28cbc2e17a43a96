package request_session

import (
	"context"
	"errors"
	"fmt"

	"github.com/meetsync/MS-SchedulingService/internal/domain"
	scheduleRepo "github.com/meetsync/MS-SchedulingService/internal/infra/storage/schedule"
)

// UseCase use case для создания сессии (запроса на встречу)
type UseCase struct {
	scheduleRepo ScheduleRepository
	sessionRepo  SessionRepository
	meetClient   MeetProviderClient
	notifier     NotifierClient
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	sessionRepo SessionRepository,
	meetClient MeetProviderClient,
	notifier NotifierClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		sessionRepo:  sessionRepo,
		meetClient:   meetClient,
		notifier:     notifier,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case создания сессии
// Проверки и вставка выполняются в сериализуемой транзакции: два
// конкурентных запроса на пересекающиеся интервалы одного хоста
// не могут оба увидеть "нет конфликта" и оба закоммититься подтвержденными
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestSession: schedule=%d, guest=%d, interval=%s..%s",
		req.ScheduleID, req.GuestID, req.Start.Format("2006-01-02 15:04"), req.End.Format("2006-01-02 15:04"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RequestSession: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Session

	// 2. Выполняем проверки и вставку в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Загружаем расписание (границы всегда перечитываются,
		// а не кэшируются на сессии: расписание могло измениться
		// между показом слотов и запросом)
		schedule, err := uc.scheduleRepo.GetByID(txCtx, req.ScheduleID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				uc.logger.Warn("RequestSession: schedule id=%d not found", req.ScheduleID)
				return ErrScheduleNotFound
			}
			uc.logger.Error("RequestSession: failed to get schedule id=%d: %v", req.ScheduleID, err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		// 2.2. Интервал должен целиком лежать внутри окна расписания
		if !schedule.ContainsInterval(req.Start, req.End) {
			uc.logger.Warn("RequestSession: interval %s..%s outside window of schedule id=%d",
				req.Start.Format("15:04"), req.End.Format("15:04"), schedule.ID)
			return ErrScheduleNotFound
		}

		// 2.3. Длительность в границах [min, max]
		if !schedule.AllowsDuration(req.End.Sub(req.Start)) {
			uc.logger.Warn("RequestSession: duration %s outside bounds [%d, %d] of schedule id=%d",
				req.End.Sub(req.Start), schedule.MinDurationMinutes, schedule.MaxDurationMinutes, schedule.ID)
			return ErrInvalidDuration
		}

		// 2.4. Повторная заявка гостя на тот же интервал
		exists, err := uc.sessionRepo.ExistsForGuest(txCtx, req.ScheduleID, req.GuestID, req.Start, req.End)
		if err != nil {
			uc.logger.Error("RequestSession: failed to check duplicate: %v", err)
			return fmt.Errorf("%w: failed to check duplicate: %v", ErrInternal, err)
		}
		if exists {
			uc.logger.Warn("RequestSession: duplicate request from guest=%d on schedule id=%d", req.GuestID, req.ScheduleID)
			return ErrDuplicateRequest
		}

		// 2.5. Конфликты с подтвержденными сессиями хоста (с блокировкой FOR UPDATE)
		hostSessions, err := uc.sessionRepo.ListConfirmedByParty(txCtx, schedule.HostID, domain.RoleHost)
		if err != nil {
			uc.logger.Error("RequestSession: failed to load host sessions: %v", err)
			return fmt.Errorf("%w: failed to load host sessions: %v", ErrInternal, err)
		}
		if domain.HasConflict(hostSessions, req.Start, req.End, 0) {
			uc.logger.Warn("RequestSession: host=%d unavailable at %s..%s",
				schedule.HostID, req.Start.Format("15:04"), req.End.Format("15:04"))
			return ErrHostUnavailable
		}

		// 2.6. Конфликты с подтвержденными сессиями гостя - гость держит
		// такую же эксклюзивность календаря, как и хост
		guestSessions, err := uc.sessionRepo.ListConfirmedByParty(txCtx, req.GuestID, domain.RoleGuest)
		if err != nil {
			uc.logger.Error("RequestSession: failed to load guest sessions: %v", err)
			return fmt.Errorf("%w: failed to load guest sessions: %v", ErrInternal, err)
		}
		if domain.HasConflict(guestSessions, req.Start, req.End, 0) {
			uc.logger.Warn("RequestSession: guest=%d unavailable at %s..%s",
				req.GuestID, req.Start.Format("15:04"), req.End.Format("15:04"))
			return ErrGuestUnavailable
		}

		// 2.7. Статус определяется политикой расписания
		session := &domain.Session{
			HostID:     schedule.HostID,
			GuestID:    req.GuestID,
			ScheduleID: schedule.ID,
			StartTime:  req.Start,
			EndTime:    req.End,
			Title:      req.Title,
			Confirmed:  schedule.AutoApprove,
		}

		created, err := uc.sessionRepo.Create(txCtx, session)
		if err != nil {
			uc.logger.Error("RequestSession: failed to create session: %v", err)
			return fmt.Errorf("%w: failed to create session: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RequestSession: created session id=%d, confirmed=%t", result.ID, result.Confirmed)

	// 3. Внешние эффекты после коммита: их ошибки не откатывают
	// уже сохраненную сессию
	if result.Confirmed {
		uc.provisionAndNotify(ctx, result)
	} else {
		uc.notifier.Notify(ctx, result.HostID, domain.EventSessionRequested, map[string]string{
			"sessionId": fmt.Sprintf("%d", result.ID),
			"title":     result.Title,
		})
	}

	return &Response{
		ID:         result.ID,
		HostID:     result.HostID,
		GuestID:    result.GuestID,
		ScheduleID: result.ScheduleID,
		Start:      result.StartTime,
		End:        result.EndTime,
		Title:      result.Title,
		Confirmed:  result.Confirmed,
		HostURL:    result.HostURL,
		GuestURL:   result.GuestURL,
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}

// provisionAndNotify создает встречу у провайдера и уведомляет обе стороны
// Ошибка провайдера логируется: сессия остается подтвержденной без ссылок
// (degraded success), дозаполнение - ответственность внешней системы
func (uc *UseCase) provisionAndNotify(ctx context.Context, session *domain.Session) {
	meeting, err := uc.meetClient.ProvisionMeeting(ctx, session.Title, session.StartTime)
	if err != nil {
		uc.logger.Error("RequestSession: meeting provisioning failed for session id=%d: %v", session.ID, err)
	} else {
		if err := uc.sessionRepo.SetMeetingURLs(ctx, session.ID, meeting.HostURL, meeting.GuestURL); err != nil {
			uc.logger.Error("RequestSession: failed to store meeting urls for session id=%d: %v", session.ID, err)
		} else {
			session.HostURL = &meeting.HostURL
			session.GuestURL = &meeting.GuestURL
		}
	}

	payload := map[string]string{
		"sessionId": fmt.Sprintf("%d", session.ID),
		"title":     session.Title,
	}
	uc.notifier.Notify(ctx, session.HostID, domain.EventSessionConfirmed, payload)
	uc.notifier.Notify(ctx, session.GuestID, domain.EventSessionConfirmed, payload)
}
