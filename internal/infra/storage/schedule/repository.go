package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/meetsync/MS-SchedulingService/internal/domain"
	"github.com/meetsync/MS-SchedulingService/pkg/dbmetrics"
	"github.com/meetsync/MS-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с расписаниями и их слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое расписание
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedules").
		Columns(
			"host_id",
			"window_start",
			"window_end",
			"min_duration_minutes",
			"max_duration_minutes",
			"auto_approve",
		).
		Values(
			schedule.HostID,
			schedule.WindowStart,
			schedule.WindowEnd,
			schedule.MinDurationMinutes,
			schedule.MaxDurationMinutes,
			schedule.AutoApprove,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return schedule, nil
}

// Update полностью заменяет окно, границы длительности и политику
// подтверждения расписания (delete-then-recreate семантика для слотов
// обеспечивается на уровне сервиса через ReplaceSlots)
func (r *Repository) Update(ctx context.Context, schedule *domain.Schedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedules").
		Set("window_start", schedule.WindowStart).
		Set("window_end", schedule.WindowEnd).
		Set("min_duration_minutes", schedule.MinDurationMinutes).
		Set("max_duration_minutes", schedule.MaxDurationMinutes).
		Set("auto_approve", schedule.AutoApprove).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": schedule.ID, "host_id": schedule.HostID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

// GetByID получает расписание по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := scheduleSelect().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSchedule(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// ListByHost получает все расписания хоста, отсортированные по началу окна
func (r *Repository) ListByHost(ctx context.Context, hostID int64) ([]*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := scheduleSelect().
		Where(squirrel.Eq{"host_id": hostID}).
		OrderBy("window_start ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByHost - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByHost - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSchedules(rows)
}

// FindOverlapping получает расписания хоста, пересекающиеся с окном [start, end)
// Граничащие окна пересечением не считаются (полуоткрытые интервалы)
// excludeID исключает обновляемое расписание из проверки (nil - ничего не исключать)
//
// Внутри транзакции добавляет FOR UPDATE, чтобы два конкурентных создания
// расписаний не прошли проверку пересечения одновременно
func (r *Repository) FindOverlapping(ctx context.Context, hostID int64, start, end time.Time, excludeID *int64) ([]*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := scheduleSelect().
		Where(squirrel.Eq{"host_id": hostID}).
		Where(squirrel.Lt{"window_start": end}).
		Where(squirrel.Gt{"window_end": start})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSchedules(rows)
}

// Delete удаляет расписание вместе со слотами (каскад на уровне схемы)
// Идемпотентно: отсутствие расписания не является ошибкой
func (r *Repository) Delete(ctx context.Context, id int64, hostID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedules").
		Where(squirrel.Eq{"id": id, "host_id": hostID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// ReplaceSlots заменяет материализованные слоты расписания:
// удаляет старый набор и вставляет новый одним bulk insert
func (r *Repository) ReplaceSlots(ctx context.Context, scheduleID int64, slots []domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceSlots - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceSlots - execute delete: %v", ErrExecQuery, err)
	}

	if len(slots) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("slots").
		Columns("schedule_id", "slot_start", "slot_end")

	for _, slot := range slots {
		insertBuilder = insertBuilder.Values(scheduleID, slot.SlotStart, slot.SlotEnd)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceSlots - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceSlots - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListSlots получает слоты расписания, отсортированные по началу
func (r *Repository) ListSlots(ctx context.Context, scheduleID int64) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"schedule_id",
		"slot_start",
		"slot_end",
	).
		From("slots").
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		OrderBy("slot_start ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		var slot domain.Slot
		if err := rows.Scan(&slot.ID, &slot.ScheduleID, &slot.SlotStart, &slot.SlotEnd); err != nil {
			return nil, fmt.Errorf("%w: ListSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

func scheduleSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"host_id",
		"window_start",
		"window_end",
		"min_duration_minutes",
		"max_duration_minutes",
		"auto_approve",
		"created_at",
		"updated_at",
	).From("schedules")
}

func (r *Repository) scanSchedule(row *sql.Row, method string) (*domain.Schedule, error) {
	var schedule domain.Schedule
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&schedule.ID,
		&schedule.HostID,
		&schedule.WindowStart,
		&schedule.WindowEnd,
		&schedule.MinDurationMinutes,
		&schedule.MaxDurationMinutes,
		&schedule.AutoApprove,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan schedule: %v", ErrScanRow, method, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return &schedule, nil
}

func (r *Repository) scanSchedules(rows *sql.Rows) ([]*domain.Schedule, error) {
	schedules := make([]*domain.Schedule, 0)

	for rows.Next() {
		var schedule domain.Schedule
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&schedule.ID,
			&schedule.HostID,
			&schedule.WindowStart,
			&schedule.WindowEnd,
			&schedule.MinDurationMinutes,
			&schedule.MaxDurationMinutes,
			&schedule.AutoApprove,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanSchedules - scan row: %v", ErrScanRow, err)
		}

		schedule.CreatedAt = createdAt.Time
		schedule.UpdatedAt = updatedAt.Time

		schedules = append(schedules, &schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSchedules - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}
