// Package appointments persists confirmed bookings in Postgres.
package appointments

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/apptbot/bot/domain"
	"github.com/m3rciful/apptbot/core/logger"
	"log/slog"
)

const table = "appointments"

// Repository provides access to the appointments table.
type Repository struct {
	db      *sqlx.DB
	builder sq.StatementBuilderType
}

// NewRepository constructs a Repository over the given connection.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Create inserts a new appointment and fills its ID and stored creation time.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	query, args, err := r.builder.
		Insert(table).
		Columns("chat_id", "full_name", "phone", "address", "full_address", "latitude", "longitude", "weekday", "created_at").
		Values(a.ChatID, a.FullName, a.Phone, a.Address, a.FullAddress, a.Latitude, a.Longitude, string(a.Weekday), a.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert: %v", ErrBuildQuery, err)
	}

	start := time.Now()
	row := r.db.QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&a.ID); err != nil {
		logger.DB.Error("appointment insert failed",
			slog.String("event", "db.query"),
			slog.Int64("chat_id", a.ChatID),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%w: Create - insert appointment: %v", ErrExecQuery, err)
	}

	logger.DB.Debug("appointment created",
		slog.String("event", "db.query"),
		slog.Int64("chat_id", a.ChatID),
		slog.Int64("appointment_id", a.ID),
		slog.String("weekday", string(a.Weekday)),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return nil
}

// ListByChat returns all appointments for a chat in insertion order.
func (r *Repository) ListByChat(ctx context.Context, chatID int64) ([]domain.Appointment, error) {
	query, args, err := r.builder.
		Select("id", "chat_id", "full_name", "phone", "address", "full_address", "latitude", "longitude", "weekday", "created_at").
		From(table).
		Where(sq.Eq{"chat_id": chatID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByChat - build select: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByChat - select appointments: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var list []domain.Appointment
	for rows.Next() {
		var a domain.Appointment
		if err := rows.StructScan(&a); err != nil {
			return nil, fmt.Errorf("%w: ListByChat - scan appointment: %v", ErrScanRow, err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByChat - iterate rows: %v", ErrExecQuery, err)
	}

	return list, nil
}
