package entity

type RoomCategory struct {
	CategoryID   int    `db:"category_id"`
	Name         string `db:"name"`
	Slug         string `db:"slug"`
	Icon         string `db:"icon"`
	Description  string `db:"description"`
	DisplayOrder int    `db:"display_order"`
	IsEnabled    bool   `db:"is_enabled"`
}
