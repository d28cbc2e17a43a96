package session

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

// Repository репозиторий для работы с сессиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую сессию
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sessions").
		Columns(
			"host_id",
			"guest_id",
			"schedule_id",
			"start_time",
			"end_time",
			"title",
			"confirmed",
		).
		Values(
			session.HostID,
			session.GuestID,
			session.ScheduleID,
			session.StartTime,
			session.EndTime,
			session.Title,
			session.Confirmed,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&session.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	session.CreatedAt = createdAt.Time
	session.UpdatedAt = updatedAt.Time

	return session, nil
}

// GetByID получает сессию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := sessionSelect().
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку: approve читает сессию,
	// затем меняет её статус и удаляет конкурирующие pending-заявки
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return scanSessionRow(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// ListConfirmedByParty получает подтвержденные сессии участника в указанной роли
// Роль хоста и гостя симметричны: обе стороны держат эксклюзивность календаря
//
// Внутри транзакции добавляет FOR UPDATE - последовательность
// "прочитать подтвержденные сессии - проверить пересечения - вставить новую"
// должна выполняться атомарно
func (r *Repository) ListConfirmedByParty(ctx context.Context, partyID int64, role domain.PartyRole) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	partyColumn := "guest_id"
	if role == domain.RoleHost {
		partyColumn = "host_id"
	}

	selectBuilder := sessionSelect().
		Where(squirrel.Eq{partyColumn: partyID, "confirmed": true}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedByParty - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedByParty - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// ExistsForGuest проверяет, есть ли у гостя заявка (pending или confirmed)
// на точно такой же интервал этого расписания
func (r *Repository) ExistsForGuest(ctx context.Context, scheduleID, guestID int64, start, end time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("sessions").
		Where(squirrel.Eq{
			"schedule_id": scheduleID,
			"guest_id":    guestID,
			"start_time":  start,
			"end_time":    end,
		}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsForGuest - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsForGuest - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// Confirm переводит сессию в подтвержденный статус
// Переход одностороннний: пути confirmed -> pending не существует
func (r *Repository) Confirm(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("confirmed", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Confirm - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Confirm - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// SetMeetingURLs записывает ссылки на встречу, выданные провайдером
func (r *Repository) SetMeetingURLs(ctx context.Context, id int64, hostURL, guestURL string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("host_url", hostURL).
		Set("guest_url", guestURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetMeetingURLs - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetMeetingURLs - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetMeetingURLs - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// DeletePendingOverlapping удаляет pending-заявки хоста, пересекающиеся
// с интервалом [start, end), кроме сессии excludeID
// Возвращает удаленные сессии - их гости получают уведомления об отмене
func (r *Repository) DeletePendingOverlapping(ctx context.Context, hostID int64, start, end time.Time, excludeID int64) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("sessions").
		Where(squirrel.Eq{"host_id": hostID, "confirmed": false}).
		Where(squirrel.NotEq{"id": excludeID}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		Suffix("RETURNING id, host_id, guest_id, schedule_id, start_time, end_time, title, confirmed, host_url, guest_url, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: DeletePendingOverlapping - build delete query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: DeletePendingOverlapping - execute delete: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// Delete удаляет сессию
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// ListByFilter получает сессии пользователя с гибкой фильтрацией
// Поддерживает фильтрацию по роли (host/guest) и статусу
func (r *Repository) ListByFilter(ctx context.Context, filter domain.SessionsFilter) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := sessionSelect()

	if filter.Role != nil {
		switch *filter.Role {
		case domain.RoleHost:
			selectBuilder = selectBuilder.Where(squirrel.Eq{"host_id": filter.UserID})
		case domain.RoleGuest:
			selectBuilder = selectBuilder.Where(squirrel.Eq{"guest_id": filter.UserID})
		}
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"host_id": filter.UserID},
			squirrel.Eq{"guest_id": filter.UserID},
		})
	}

	if filter.Confirmed != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"confirmed": *filter.Confirmed})
	}

	query, args, err := selectBuilder.
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

func sessionSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"host_id",
		"guest_id",
		"schedule_id",
		"start_time",
		"end_time",
		"title",
		"confirmed",
		"host_url",
		"guest_url",
		"created_at",
		"updated_at",
	).From("sessions")
}

func scanSessionRow(row *sql.Row, method string) (*domain.Session, error) {
	var session domain.Session
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&session.ID,
		&session.HostID,
		&session.GuestID,
		&session.ScheduleID,
		&session.StartTime,
		&session.EndTime,
		&session.Title,
		&session.Confirmed,
		&session.HostURL,
		&session.GuestURL,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan session: %v", ErrScanRow, method, err)
	}

	session.CreatedAt = createdAt.Time
	session.UpdatedAt = updatedAt.Time

	return &session, nil
}

func scanSessions(rows *sql.Rows) ([]*domain.Session, error) {
	sessions := make([]*domain.Session, 0)

	for rows.Next() {
		var session domain.Session
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&session.ID,
			&session.HostID,
			&session.GuestID,
			&session.ScheduleID,
			&session.StartTime,
			&session.EndTime,
			&session.Title,
			&session.Confirmed,
			&session.HostURL,
			&session.GuestURL,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanSessions - scan row: %v", ErrScanRow, err)
		}

		session.CreatedAt = createdAt.Time
		session.UpdatedAt = updatedAt.Time

		sessions = append(sessions, &session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSessions - rows error: %v", ErrScanRow, err)
	}

	return sessions, nil
}
