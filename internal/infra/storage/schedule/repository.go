package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
)

const tableName = "shop_settings"

// Repository репозиторий настроек мастерской (одна строка на мастерскую)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает единственную строку настроек
func (r *Repository) Get(ctx context.Context) (*domain.ShopSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"shop_name",
		"slot_duration_minutes",
		"morning_start",
		"morning_end",
		"afternoon_start",
		"afternoon_end",
		"working_days",
		"contact_phone",
		"google_maps_url",
		"prices_url",
		"created_at",
		"updated_at",
	).
		From(tableName).
		OrderBy("id ASC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var schedule domain.ShopSchedule
	var workingDays pq.Int64Array
	var contactPhone, mapsURL, pricesURL sql.NullString

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&schedule.ShopName,
		&schedule.SlotDurationMinutes,
		&schedule.MorningStart,
		&schedule.MorningEnd,
		&schedule.AfternoonStart,
		&schedule.AfternoonEnd,
		&workingDays,
		&contactPhone,
		&mapsURL,
		&pricesURL,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan schedule: %v", ErrScanRow, err)
	}

	schedule.WorkingDays = fromInt64Array(workingDays)
	schedule.ContactPhone = fromNullString(contactPhone)
	schedule.GoogleMapsURL = fromNullString(mapsURL)
	schedule.PricesURL = fromNullString(pricesURL)

	return &schedule, nil
}

// Update перезаписывает все поля настроек по ID
func (r *Repository) Update(ctx context.Context, schedule *domain.ShopSchedule) (*domain.ShopSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("shop_name", schedule.ShopName).
		Set("slot_duration_minutes", schedule.SlotDurationMinutes).
		Set("morning_start", schedule.MorningStart).
		Set("morning_end", schedule.MorningEnd).
		Set("afternoon_start", schedule.AfternoonStart).
		Set("afternoon_end", schedule.AfternoonEnd).
		Set("working_days", toInt64Array(schedule.WorkingDays)).
		Set("contact_phone", schedule.ContactPhone).
		Set("google_maps_url", schedule.GoogleMapsURL).
		Set("prices_url", schedule.PricesURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": schedule.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&schedule.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return schedule, nil
}

func toInt64Array(days []int) pq.Int64Array {
	arr := make(pq.Int64Array, 0, len(days))
	for _, d := range days {
		arr = append(arr, int64(d))
	}
	return arr
}

func fromInt64Array(arr pq.Int64Array) []int {
	days := make([]int, 0, len(arr))
	for _, d := range arr {
		days = append(days, int(d))
	}
	return days
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
