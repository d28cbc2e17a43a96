package schedules

import (
	"context"
	"errors"
	"fmt"

	"github.com/meetsync/MS-SchedulingService/internal/domain"
	scheduleRepo "github.com/meetsync/MS-SchedulingService/internal/infra/storage/schedule"
	"github.com/meetsync/MS-SchedulingService/internal/service/schedules/models"
	"github.com/meetsync/MS-SchedulingService/pkg/ptr"
)

// Service сервис для работы с расписаниями (окнами доступности)
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create создает расписание и материализует его слоты
// Проверка пересечения окон хоста и вставка выполняются в сериализуемой
// транзакции: два конкурентных создания не могут оба пройти проверку
func (s *Service) Create(ctx context.Context, req *models.CreateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("CreateSchedule: host=%d, window=%s..%s, min=%d, max=%d, autoApprove=%t",
		req.HostID, req.WindowStart.Format("2006-01-02 15:04"), req.WindowEnd.Format("2006-01-02 15:04"),
		req.MinDurationMinutes, req.MaxDurationMinutes, req.AutoApprove)

	if req.HostID <= 0 {
		return nil, fmt.Errorf("%w: hostID must be positive", ErrInvalidInput)
	}

	if err := validateWindow(req.WindowStart, req.WindowEnd, req.MinDurationMinutes, req.MaxDurationMinutes); err != nil {
		s.logger.Warn("CreateSchedule: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Schedule

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		overlapping, err := s.scheduleRepo.FindOverlapping(txCtx, req.HostID, req.WindowStart, req.WindowEnd, nil)
		if err != nil {
			s.logger.Error("CreateSchedule: failed to check overlap for host=%d: %v", req.HostID, err)
			return fmt.Errorf("%w: failed to check overlap: %v", ErrInternal, err)
		}

		if len(overlapping) > 0 {
			s.logger.Warn("CreateSchedule: window overlaps schedule id=%d for host=%d",
				overlapping[0].ID, req.HostID)
			return ErrScheduleOverlap
		}

		schedule := &domain.Schedule{
			HostID:             req.HostID,
			WindowStart:        req.WindowStart,
			WindowEnd:          req.WindowEnd,
			MinDurationMinutes: req.MinDurationMinutes,
			MaxDurationMinutes: req.MaxDurationMinutes,
			AutoApprove:        req.AutoApprove,
		}

		created, err := s.scheduleRepo.Create(txCtx, schedule)
		if err != nil {
			s.logger.Error("CreateSchedule: failed to create schedule for host=%d: %v", req.HostID, err)
			return fmt.Errorf("%w: failed to create schedule: %v", ErrInternal, err)
		}

		if err := s.regenerateSlots(txCtx, created); err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("CreateSchedule: successfully created schedule id=%d for host=%d", result.ID, result.HostID)
	return models.FromDomainSchedule(result), nil
}

// Update полностью заменяет параметры расписания и перегенерирует слоты
// Проверка пересечения исключает само обновляемое расписание
func (s *Service) Update(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: schedule=%d, host=%d, window=%s..%s",
		req.ScheduleID, req.HostID,
		req.WindowStart.Format("2006-01-02 15:04"), req.WindowEnd.Format("2006-01-02 15:04"))

	if req.ScheduleID <= 0 || req.HostID <= 0 {
		return nil, fmt.Errorf("%w: scheduleID and hostID must be positive", ErrInvalidInput)
	}

	if err := validateWindow(req.WindowStart, req.WindowEnd, req.MinDurationMinutes, req.MaxDurationMinutes); err != nil {
		s.logger.Warn("UpdateSchedule: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Schedule

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := s.scheduleRepo.GetByID(txCtx, req.ScheduleID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				s.logger.Warn("UpdateSchedule: schedule id=%d not found", req.ScheduleID)
				return ErrScheduleNotFound
			}
			s.logger.Error("UpdateSchedule: failed to get schedule id=%d: %v", req.ScheduleID, err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		// Чужое расписание для хоста неотличимо от несуществующего
		if existing.HostID != req.HostID {
			s.logger.Warn("UpdateSchedule: schedule id=%d does not belong to host=%d", req.ScheduleID, req.HostID)
			return ErrScheduleNotFound
		}

		overlapping, err := s.scheduleRepo.FindOverlapping(txCtx, req.HostID, req.WindowStart, req.WindowEnd, ptr.Ptr(req.ScheduleID))
		if err != nil {
			s.logger.Error("UpdateSchedule: failed to check overlap for host=%d: %v", req.HostID, err)
			return fmt.Errorf("%w: failed to check overlap: %v", ErrInternal, err)
		}

		if len(overlapping) > 0 {
			s.logger.Warn("UpdateSchedule: window overlaps schedule id=%d for host=%d",
				overlapping[0].ID, req.HostID)
			return ErrScheduleOverlap
		}

		updated := &domain.Schedule{
			ID:                 req.ScheduleID,
			HostID:             req.HostID,
			WindowStart:        req.WindowStart,
			WindowEnd:          req.WindowEnd,
			MinDurationMinutes: req.MinDurationMinutes,
			MaxDurationMinutes: req.MaxDurationMinutes,
			AutoApprove:        req.AutoApprove,
			CreatedAt:          existing.CreatedAt,
		}

		if err := s.scheduleRepo.Update(txCtx, updated); err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return ErrScheduleNotFound
			}
			s.logger.Error("UpdateSchedule: failed to update schedule id=%d: %v", req.ScheduleID, err)
			return fmt.Errorf("%w: failed to update schedule: %v", ErrInternal, err)
		}

		if err := s.regenerateSlots(txCtx, updated); err != nil {
			return err
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateSchedule: successfully updated schedule id=%d", result.ID)
	return models.FromDomainSchedule(result), nil
}

// Delete удаляет расписание вместе со слотами
// Идемпотентно: повторное удаление не является ошибкой
func (s *Service) Delete(ctx context.Context, scheduleID, hostID int64) error {
	s.logger.Info("DeleteSchedule: schedule=%d, host=%d", scheduleID, hostID)

	if err := s.scheduleRepo.Delete(ctx, scheduleID, hostID); err != nil {
		s.logger.Error("DeleteSchedule: failed to delete schedule id=%d: %v", scheduleID, err)
		return fmt.Errorf("%w: failed to delete schedule: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteSchedule: schedule id=%d deleted", scheduleID)
	return nil
}

// List получает все расписания хоста
func (s *Service) List(ctx context.Context, hostID int64) (*models.ScheduleListResponse, error) {
	s.logger.Info("ListSchedules: host=%d", hostID)

	schedules, err := s.scheduleRepo.ListByHost(ctx, hostID)
	if err != nil {
		s.logger.Error("ListSchedules: repository error for host=%d: %v", hostID, err)
		return nil, fmt.Errorf("%w: ListSchedules - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListSchedules: fetched %d schedules for host=%d", len(schedules), hostID)
	return models.FromDomainScheduleList(schedules), nil
}

// Get получает расписание хоста по ID
func (s *Service) Get(ctx context.Context, scheduleID, hostID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: schedule=%d, host=%d", scheduleID, hostID)

	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("GetSchedule: schedule id=%d not found", scheduleID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("GetSchedule: repository error for schedule id=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	if schedule.HostID != hostID {
		s.logger.Warn("GetSchedule: schedule id=%d does not belong to host=%d", scheduleID, hostID)
		return nil, ErrScheduleNotFound
	}

	return models.FromDomainSchedule(schedule), nil
}

// ListSlots получает материализованные слоты расписания
// Слоты - индекс для отображения свободного времени; валидность
// бронирования всегда перепроверяется по живому расписанию
func (s *Service) ListSlots(ctx context.Context, scheduleID int64) (*models.SlotListResponse, error) {
	s.logger.Info("ListSlots: schedule=%d", scheduleID)

	if _, err := s.scheduleRepo.GetByID(ctx, scheduleID); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("ListSlots: schedule id=%d not found", scheduleID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("ListSlots: repository error for schedule id=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: ListSlots - repository error: %v", ErrInternal, err)
	}

	slots, err := s.scheduleRepo.ListSlots(ctx, scheduleID)
	if err != nil {
		s.logger.Error("ListSlots: failed to list slots for schedule id=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: ListSlots - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlots(scheduleID, slots), nil
}

// regenerateSlots замещает набор слотов расписания свежей генерацией
func (s *Service) regenerateSlots(ctx context.Context, schedule *domain.Schedule) error {
	slots := domain.GenerateSlots(schedule.WindowStart, schedule.WindowEnd, schedule.MinDurationMinutes)

	if err := s.scheduleRepo.ReplaceSlots(ctx, schedule.ID, slots); err != nil {
		s.logger.Error("regenerateSlots: failed to replace slots for schedule id=%d: %v", schedule.ID, err)
		return fmt.Errorf("%w: failed to replace slots: %v", ErrInternal, err)
	}

	if len(slots) == 0 {
		// Окно не вмещает ни одного слота минимальной длительности:
		// расписание существует, но не участвует в поиске по слотам
		s.logger.Warn("regenerateSlots: schedule id=%d generated zero slots (window %s, min %d minutes)",
			schedule.ID, schedule.WindowDuration(), schedule.MinDurationMinutes)
	} else {
		s.logger.Info("regenerateSlots: schedule id=%d materialized %d slots", schedule.ID, len(slots))
	}

	return nil
}
