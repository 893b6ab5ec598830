package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taskrooms/internal/model"
)

// memRoomRepo and memTaskRepo are tiny in-memory repositories used to exercise
// the cross-record behavior no single mock expectation captures: deleting a
// task leaves its room, and deleting a room leaves its tasks.

type memRoomRepo struct {
	rooms map[uuid.UUID]model.Room
}

func newMemRoomRepo() *memRoomRepo {
	return &memRoomRepo{rooms: make(map[uuid.UUID]model.Room)}
}

func (r *memRoomRepo) Create(ctx context.Context, room *model.Room) error {
	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}
	r.rooms[room.ID] = *room
	return nil
}

func (r *memRoomRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &room, nil
}

func (r *memRoomRepo) FindByCode(ctx context.Context, roomCode string) (*model.Room, error) {
	for _, room := range r.rooms {
		if room.RoomCode == roomCode {
			return &room, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRoomRepo) List(ctx context.Context) ([]model.Room, error) {
	out := make([]model.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, room)
	}
	return out, nil
}

func (r *memRoomRepo) Update(ctx context.Context, room *model.Room) error {
	r.rooms[room.ID] = *room
	return nil
}

func (r *memRoomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.rooms, id)
	return nil
}

type memTaskRepo struct {
	tasks map[uuid.UUID]model.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[uuid.UUID]model.Task)}
}

func (r *memTaskRepo) Create(ctx context.Context, task *model.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *memTaskRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &task, nil
}

func (r *memTaskRepo) List(ctx context.Context) ([]model.Task, error) {
	out := make([]model.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		out = append(out, task)
	}
	return out, nil
}

func (r *memTaskRepo) Update(ctx context.Context, task *model.Task) error {
	r.tasks[task.ID] = *task
	return nil
}

func (r *memTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.tasks, id)
	return nil
}

func TestTaskRoundTrip(t *testing.T) {
	ctx := context.Background()
	roomSvc := NewRoomService(newMemRoomRepo(), nil)
	taskSvc := NewTaskService(newMemTaskRepo(), nil)

	room, err := roomSvc.Create(ctx, "ABC123", uuid.NewString())
	require.NoError(t, err)

	task, err := taskSvc.Create(ctx, "write report", "quarterly numbers", "", room.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.StatusToDo, task.Status)

	tasks, err := taskSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)

	require.NoError(t, taskSvc.Delete(ctx, task.ID))

	tasks, err = taskSvc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	// The parent room is untouched by the task delete.
	rooms, err := roomSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, room.ID, rooms[0].ID)
}

func TestRoomDeleteLeavesTasks(t *testing.T) {
	ctx := context.Background()
	roomSvc := NewRoomService(newMemRoomRepo(), nil)
	taskSvc := NewTaskService(newMemTaskRepo(), nil)

	room, err := roomSvc.Create(ctx, "ABC123", uuid.NewString())
	require.NoError(t, err)

	task, err := taskSvc.Create(ctx, "write report", "quarterly numbers", model.StatusInProgress, room.ID.String())
	require.NoError(t, err)

	require.NoError(t, roomSvc.Delete(ctx, room.ID))

	// No cascade: the task survives with its now-dangling room reference.
	tasks, err := taskSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
	assert.Equal(t, room.ID.String(), tasks[0].RoomID)
}

func TestCreateAssignsDistinctIDs(t *testing.T) {
	ctx := context.Background()
	taskSvc := NewTaskService(newMemTaskRepo(), nil)

	seen := make(map[uuid.UUID]bool)
	for i := 0; i < 5; i++ {
		task, err := taskSvc.Create(ctx, "t", "d", "", uuid.NewString())
		require.NoError(t, err)
		assert.False(t, seen[task.ID])
		seen[task.ID] = true
	}
}
