package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

const (
	tableName = "appointments"

	// activeSlotIndex частичный уникальный индекс (appointment_date, start_time) WHERE status <> 'cancelled'
	activeSlotIndex = "appointments_active_slot_uidx"

	pgUniqueViolation = "23505"
)

var columns = []string{
	"id",
	"appointment_date",
	"start_time",
	"end_time",
	"client_name",
	"client_phone",
	"client_email",
	"notes",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись.
// Конкурентная запись на тот же слот отклоняется уникальным индексом, тогда возвращается ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if appt.ID == uuid.Nil {
		appt.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"appointment_date",
			"start_time",
			"end_time",
			"client_name",
			"client_phone",
			"client_email",
			"notes",
			"status",
		).
		Values(
			appt.ID,
			appt.Date.Format(domain.DateFormat),
			appt.StartTime,
			appt.EndTime,
			appt.ClientName,
			appt.ClientPhone,
			appt.ClientEmail,
			appt.Notes,
			appt.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.CreatedAt,
		&appt.UpdatedAt,
	)
	if err != nil {
		if isSlotConflict(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// ExistsActiveAt проверяет, есть ли неотменённая запись на дату и время.
// Внутри транзакции найденная строка блокируется (FOR UPDATE).
func (r *Repository) ExistsActiveAt(ctx context.Context, date time.Time, start types.TimeString) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From(tableName).
		Where(squirrel.Eq{"appointment_date": date.Format(domain.DateFormat)}).
		Where(squirrel.Eq{"start_time": start}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveAt - build select query: %v", ErrBuildQuery, err)
	}

	var id uuid.UUID
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveAt - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// ListByDate получает записи на дату, отсортированные по времени начала.
// Отменённые записи включаются только при filter.IncludeCancelled.
func (r *Repository) ListByDate(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"appointment_date": filter.Date.Format(domain.DateFormat)})

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	selectBuilder = selectBuilder.OrderBy("start_time ASC", "created_at ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// UpdateStatus обновляет статус записи и возвращает её новое состояние.
// Возврат отменённой записи в активный статус может нарушить уникальность слота, тогда ErrSlotTaken.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		if isSlotConflict(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return appt, nil
}

// UpdateDetails обновляет данные клиента и заметки
func (r *Repository) UpdateDetails(ctx context.Context, id uuid.UUID, upd domain.AppointmentDetailsUpdate) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(tableName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if upd.ClientName != nil {
		updateBuilder = updateBuilder.Set("client_name", *upd.ClientName)
	}
	if upd.ClientPhone != nil {
		updateBuilder = updateBuilder.Set("client_phone", *upd.ClientPhone)
	}
	// Пустая строка очищает необязательные поля
	if upd.ClientEmail != nil {
		updateBuilder = updateBuilder.Set("client_email", nullableString(*upd.ClientEmail))
	}
	if upd.Notes != nil {
		updateBuilder = updateBuilder.Set("notes", nullableString(*upd.Notes))
	}

	query, args, err := updateBuilder.Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateDetails - build update query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateDetails - execute update: %v", ErrExecQuery, err)
	}

	return appt, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var email, notes sql.NullString

	err := row.Scan(
		&appt.ID,
		&appt.Date,
		&appt.StartTime,
		&appt.EndTime,
		&appt.ClientName,
		&appt.ClientPhone,
		&email,
		&notes,
		&appt.Status,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if email.Valid {
		appt.ClientEmail = &email.String
	}
	if notes.Valid {
		appt.Notes = &notes.String
	}

	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// isSlotConflict распознаёт нарушение уникального индекса активных слотов
func isSlotConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == pgUniqueViolation && (pqErr.Constraint == "" || pqErr.Constraint == activeSlotIndex)
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
