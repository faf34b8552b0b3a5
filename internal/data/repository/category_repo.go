package repository

import (
	"context"
	"fmt"

	"lodge-booking/internal/data/entity"
	"lodge-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// CategorySummary is a category plus its room counts for the public
// listing.
type CategorySummary struct {
	entity.RoomCategory
	TotalRooms     int
	AvailableRooms int
}

type CategoryRepository interface {
	FindByID(ctx context.Context, categoryID int) (*entity.RoomCategory, error)
	FindEnabledWithCounts(ctx context.Context) ([]*CategorySummary, error)
}

type categoryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCategoryRepository(db database.PgxIface, log *zap.Logger) CategoryRepository {
	return &categoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "category")),
	}
}

func (r *categoryRepository) FindByID(ctx context.Context, categoryID int) (*entity.RoomCategory, error) {
	query := `
		SELECT category_id, name, slug, icon, description, display_order, is_enabled
		FROM room_categories
		WHERE category_id = $1
	`

	var category entity.RoomCategory
	err := r.db.QueryRow(ctx, query, categoryID).Scan(
		&category.CategoryID,
		&category.Name,
		&category.Slug,
		&category.Icon,
		&category.Description,
		&category.DisplayOrder,
		&category.IsEnabled,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find category by ID",
			zap.Error(err),
			zap.Int("category_id", categoryID),
		)
		return nil, fmt.Errorf("find category by ID %d: %w", categoryID, err)
	}

	return &category, nil
}

func (r *categoryRepository) FindEnabledWithCounts(ctx context.Context) ([]*CategorySummary, error) {
	query := `
		SELECT c.category_id, c.name, c.slug, c.icon, c.description, c.display_order, c.is_enabled,
		       COUNT(DISTINCT r.room_id) AS total_rooms,
		       COUNT(DISTINCT CASE WHEN r.is_available THEN r.room_id END) AS available_rooms
		FROM room_categories c
		LEFT JOIN rooms r ON c.category_id = r.category_id AND r.is_enabled = TRUE
		WHERE c.is_enabled = TRUE
		GROUP BY c.category_id
		ORDER BY c.display_order ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find categories with counts", zap.Error(err))
		return nil, fmt.Errorf("find categories with counts: %w", err)
	}
	defer rows.Close()

	var categories []*CategorySummary
	for rows.Next() {
		var c CategorySummary
		err := rows.Scan(
			&c.CategoryID,
			&c.Name,
			&c.Slug,
			&c.Icon,
			&c.Description,
			&c.DisplayOrder,
			&c.IsEnabled,
			&c.TotalRooms,
			&c.AvailableRooms,
		)
		if err != nil {
			r.log.Error("Failed to scan category row", zap.Error(err))
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, &c)
	}

	return categories, nil
}
