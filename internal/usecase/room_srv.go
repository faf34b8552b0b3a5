package usecase

import (
	"context"
	"fmt"

	"lodge-booking/internal/data/repository"
	"lodge-booking/internal/dto/request"
	"lodge-booking/internal/dto/response"

	"go.uber.org/zap"
)

type RoomService interface {
	GetRooms(ctx context.Context, req *request.RoomFilterRequest) (*response.RoomListResponse, error)
	GetRoomByID(ctx context.Context, roomID int) (*response.RoomResponse, error)
}

type roomService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRoomService(repo *repository.Repository, log *zap.Logger) RoomService {
	return &roomService{
		repo: repo,
		log:  log.With(zap.String("service", "room")),
	}
}

func (s *roomService) GetRooms(ctx context.Context, req *request.RoomFilterRequest) (*response.RoomListResponse, error) {
	filter := repository.RoomFilter{
		CategoryID: req.CategoryID,
		Available:  req.Available,
		MinPrice:   req.MinPrice,
		MaxPrice:   req.MaxPrice,
	}

	rooms, err := s.repo.Room.FindEnabled(ctx, filter)
	if err != nil {
		s.log.Error("Failed to get rooms", zap.Error(err))
		return nil, fmt.Errorf("get rooms: %w", err)
	}

	categories, err := s.repo.Category.FindEnabledWithCounts(ctx)
	if err != nil {
		s.log.Error("Failed to get categories", zap.Error(err))
		return nil, fmt.Errorf("get categories: %w", err)
	}

	out := &response.RoomListResponse{
		Categories: make([]response.CategoryResponse, len(categories)),
		Rooms:      make([]response.RoomResponse, len(rooms)),
	}
	for i, c := range categories {
		out.Categories[i] = response.CategoryToResponse(c)
	}
	for i, r := range rooms {
		out.Rooms[i] = response.RoomToResponse(r)
	}

	return out, nil
}

func (s *roomService) GetRoomByID(ctx context.Context, roomID int) (*response.RoomResponse, error) {
	room, err := s.repo.Room.FindEnabledByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room %d not found", roomID)
	}

	resp := response.RoomToResponse(room)
	return &resp, nil
}
