package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskrooms/internal/cache"
	apperrors "taskrooms/internal/errors"
	"taskrooms/internal/model"
	"taskrooms/internal/repository"
)

const roomsCacheKey = "rooms:all"

// RoomService exposes room collection operations. Room codes are unique; the
// service pre-checks for collisions so a duplicate surfaces as a conflict, and
// the store's unique index remains as the backstop under concurrent creates.
type RoomService interface {
	Create(ctx context.Context, roomCode, ownerUserID string) (*model.Room, error)
	List(ctx context.Context) ([]model.Room, error)
	Update(ctx context.Context, id uuid.UUID, roomCode, ownerUserID string) (*model.Room, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type roomService struct {
	repo  repository.RoomRepository
	cache *cache.Client
}

// NewRoomService builds a RoomService with repository and cache.
func NewRoomService(repo repository.RoomRepository, cache *cache.Client) RoomService {
	return &roomService{repo: repo, cache: cache}
}

// Create inserts a new room. The owner id is stored as given; it is never
// checked against the users table.
func (s *roomService) Create(ctx context.Context, roomCode, ownerUserID string) (*model.Room, error) {
	if roomCode == "" {
		return nil, apperrors.NewValidationError("roomCode is required")
	}
	if ownerUserID == "" {
		return nil, apperrors.NewValidationError("ownerUserId is required")
	}

	if err := s.checkCodeAvailable(ctx, roomCode, uuid.Nil); err != nil {
		return nil, err
	}

	room := &model.Room{
		RoomCode:    roomCode,
		OwnerUserID: ownerUserID,
	}
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	_ = s.cache.Delete(ctx, roomsCacheKey)
	return room, nil
}

func (s *roomService) List(ctx context.Context) ([]model.Room, error) {
	if data, _ := s.cache.Get(ctx, roomsCacheKey); data != nil {
		var cached []model.Room
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(rooms); err == nil {
		_ = s.cache.Set(ctx, roomsCacheKey, payload, listCacheTTL)
	}
	return rooms, nil
}

// Update performs a full overwrite of roomCode and ownerUserId. A non-empty
// room code moving onto another room's code is rejected as a conflict.
func (s *roomService) Update(ctx context.Context, id uuid.UUID, roomCode, ownerUserID string) (*model.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("find room: %w", err)
	}

	if roomCode != "" && roomCode != room.RoomCode {
		if err := s.checkCodeAvailable(ctx, roomCode, room.ID); err != nil {
			return nil, err
		}
	}

	room.RoomCode = roomCode
	room.OwnerUserID = ownerUserID

	if err := s.repo.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}

	_ = s.cache.Delete(ctx, roomsCacheKey)
	return room, nil
}

// Delete removes the room only. Tasks referencing it are left in place.
func (s *roomService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrRoomNotFound
		}
		return fmt.Errorf("find room: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete room: %w", err)
	}

	_ = s.cache.Delete(ctx, roomsCacheKey)
	return nil
}

func (s *roomService) checkCodeAvailable(ctx context.Context, roomCode string, selfID uuid.UUID) error {
	existing, err := s.repo.FindByCode(ctx, roomCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("check room code: %w", err)
	}
	if existing.ID != selfID {
		return apperrors.ErrRoomCodeTaken
	}
	return nil
}
