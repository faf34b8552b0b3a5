package repository

import (
	"context"
	"fmt"
	"strconv"

	"lodge-booking/internal/data/entity"
	"lodge-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// RoomFilter narrows the public room listing. Nil fields are ignored.
type RoomFilter struct {
	CategoryID *int
	Available  *bool
	MinPrice   *float64
	MaxPrice   *float64
}

// RoomWithCategory carries the category display fields the listing and
// booking responses join in.
type RoomWithCategory struct {
	entity.Room
	CategoryName string
	CategorySlug string
	CategoryIcon string
}

type RoomRepository interface {
	FindByID(ctx context.Context, roomID int) (*entity.Room, error)
	FindEnabledByID(ctx context.Context, roomID int) (*RoomWithCategory, error)
	FindEnabled(ctx context.Context, filter RoomFilter) ([]*RoomWithCategory, error)
	FindEnabledIDs(ctx context.Context) ([]int, error)
	SetAvailability(ctx context.Context, roomID int, available bool) error
}

type roomRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoomRepository(db database.PgxIface, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

const roomColumns = `r.room_id, r.room_number, r.title, r.category_id, r.short_tagline,
	r.long_description, r.price, r.offer_percentage, r.final_price,
	r.is_available, r.is_enabled, r.created_at, r.updated_at`

func scanRoom(row pgx.Row, room *entity.Room, extra ...any) error {
	dest := []any{
		&room.RoomID,
		&room.RoomNumber,
		&room.Title,
		&room.CategoryID,
		&room.ShortTagline,
		&room.LongDescription,
		&room.Price,
		&room.OfferPercentage,
		&room.FinalPrice,
		&room.IsAvailable,
		&room.IsEnabled,
		&room.CreatedAt,
		&room.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *roomRepository) FindByID(ctx context.Context, roomID int) (*entity.Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM rooms r
		WHERE r.room_id = $1
	`

	var room entity.Room
	err := scanRoom(r.db.QueryRow(ctx, query, roomID), &room)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room by ID",
			zap.Error(err),
			zap.Int("room_id", roomID),
		)
		return nil, fmt.Errorf("find room by ID %d: %w", roomID, err)
	}

	return &room, nil
}

func (r *roomRepository) FindEnabledByID(ctx context.Context, roomID int) (*RoomWithCategory, error) {
	query := `
		SELECT ` + roomColumns + `, c.name, c.slug, c.icon
		FROM rooms r
		INNER JOIN room_categories c ON r.category_id = c.category_id
		WHERE r.room_id = $1 AND r.is_enabled = TRUE
	`

	var room RoomWithCategory
	err := scanRoom(r.db.QueryRow(ctx, query, roomID), &room.Room,
		&room.CategoryName, &room.CategorySlug, &room.CategoryIcon)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find enabled room by ID",
			zap.Error(err),
			zap.Int("room_id", roomID),
		)
		return nil, fmt.Errorf("find enabled room by ID %d: %w", roomID, err)
	}

	return &room, nil
}

func (r *roomRepository) FindEnabled(ctx context.Context, filter RoomFilter) ([]*RoomWithCategory, error) {
	query := `
		SELECT ` + roomColumns + `, c.name, c.slug, c.icon
		FROM rooms r
		INNER JOIN room_categories c ON r.category_id = c.category_id
		WHERE r.is_enabled = TRUE
	`
	var args []any

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += " AND r.category_id = $" + strconv.Itoa(len(args))
	}
	if filter.Available != nil {
		args = append(args, *filter.Available)
		query += " AND r.is_available = $" + strconv.Itoa(len(args))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		query += " AND r.final_price >= $" + strconv.Itoa(len(args))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		query += " AND r.final_price <= $" + strconv.Itoa(len(args))
	}

	query += " ORDER BY r.room_id DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find enabled rooms", zap.Error(err))
		return nil, fmt.Errorf("find enabled rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*RoomWithCategory
	for rows.Next() {
		var room RoomWithCategory
		err := scanRoom(rows, &room.Room, &room.CategoryName, &room.CategorySlug, &room.CategoryIcon)
		if err != nil {
			r.log.Error("Failed to scan room row", zap.Error(err))
			return nil, fmt.Errorf("scan room row: %w", err)
		}
		rooms = append(rooms, &room)
	}

	return rooms, nil
}

func (r *roomRepository) FindEnabledIDs(ctx context.Context) ([]int, error) {
	query := `SELECT room_id FROM rooms WHERE is_enabled = TRUE ORDER BY room_id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find enabled room IDs", zap.Error(err))
		return nil, fmt.Errorf("find enabled room IDs: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan room ID: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (r *roomRepository) SetAvailability(ctx context.Context, roomID int, available bool) error {
	query := `UPDATE rooms SET is_available = $2, updated_at = NOW() WHERE room_id = $1`

	result, err := r.db.Exec(ctx, query, roomID, available)
	if err != nil {
		r.log.Error("Failed to set room availability",
			zap.Error(err),
			zap.Int("room_id", roomID),
			zap.Bool("available", available),
		)
		return fmt.Errorf("set room %d availability: %w", roomID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("room %d: %w", roomID, ErrNotFound)
	}

	return nil
}
