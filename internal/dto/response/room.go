package response

import (
	"lodge-booking/internal/data/repository"
)

type RoomResponse struct {
	RoomID          int     `json:"room_id"`
	RoomNumber      string  `json:"room_number"`
	Title           string  `json:"title"`
	CategoryID      int     `json:"category_id"`
	CategoryName    string  `json:"category_name,omitempty"`
	CategorySlug    string  `json:"category_slug,omitempty"`
	CategoryIcon    string  `json:"category_icon,omitempty"`
	ShortTagline    string  `json:"short_tagline,omitempty"`
	LongDescription string  `json:"long_description,omitempty"`
	Price           float64 `json:"price"`
	OfferPercentage float64 `json:"offer_percentage"`
	FinalPrice      float64 `json:"final_price"`
	IsAvailable     bool    `json:"is_available"`
}

type CategoryResponse struct {
	CategoryID     int    `json:"category_id"`
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	Icon           string `json:"icon,omitempty"`
	Description    string `json:"description,omitempty"`
	TotalRooms     int    `json:"total_rooms"`
	AvailableRooms int    `json:"available_rooms"`
}

type RoomListResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Rooms      []RoomResponse     `json:"rooms"`
}

func RoomToResponse(r *repository.RoomWithCategory) RoomResponse {
	return RoomResponse{
		RoomID:          r.RoomID,
		RoomNumber:      r.RoomNumber,
		Title:           r.Title,
		CategoryID:      r.CategoryID,
		CategoryName:    r.CategoryName,
		CategorySlug:    r.CategorySlug,
		CategoryIcon:    r.CategoryIcon,
		ShortTagline:    r.ShortTagline,
		LongDescription: r.LongDescription,
		Price:           r.Price,
		OfferPercentage: r.OfferPercentage,
		FinalPrice:      r.FinalPrice,
		IsAvailable:     r.IsAvailable,
	}
}

func CategoryToResponse(c *repository.CategorySummary) CategoryResponse {
	return CategoryResponse{
		CategoryID:     c.CategoryID,
		Name:           c.Name,
		Slug:           c.Slug,
		Icon:           c.Icon,
		Description:    c.Description,
		TotalRooms:     c.TotalRooms,
		AvailableRooms: c.AvailableRooms,
	}
}
