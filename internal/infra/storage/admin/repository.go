package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
)

const tableName = "admin_users"

// Repository репозиторий администраторов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория администраторов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByEmail получает администратора по email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "email", "password_hash", "created_at").
		From(tableName).
		Where(squirrel.Eq{"email": email}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - build select query: %v", ErrBuildQuery, err)
	}

	var admin domain.Admin
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - scan admin: %v", ErrScanRow, err)
	}

	return &admin, nil
}

// Create создает администратора, если email ещё не занят.
// Возвращает false, если администратор уже существовал.
func (r *Repository) Create(ctx context.Context, admin *domain.Admin) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("id", "email", "password_hash").
		Values(admin.ID, admin.Email, admin.PasswordHash).
		Suffix("ON CONFLICT (email) DO NOTHING").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Create - rows affected: %v", ErrExecQuery, err)
	}

	return affected > 0, nil
}
