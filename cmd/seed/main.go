package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskrooms/internal/config"
	"taskrooms/internal/db"
	"taskrooms/internal/model"
	"taskrooms/internal/repository"
)

const (
	demoEmail      = "demo@example.com"
	demoCredential = "demo-password"
	demoRoomCode   = "DEMO01"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Room{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	roomRepo := repository.NewRoomRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	user, err := seedUser(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed user: %v", err)
	}

	room, err := seedRoom(ctx, roomRepo, user)
	if err != nil {
		log.Fatalf("Failed to seed room: %v", err)
	}

	created, err := seedTasks(ctx, taskRepo, room)
	if err != nil {
		log.Fatalf("Failed to seed tasks: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - User: %s (login with %q)", user.Email, demoCredential)
	log.Printf("  - Room: %s", room.RoomCode)
	log.Printf("  - Tasks created: %d", created)
}

// seedUser creates the demo user unless one with the demo email exists.
func seedUser(ctx context.Context, repo repository.UserRepository) (*model.User, error) {
	existing, err := repo.FindByEmail(ctx, demoEmail)
	if err == nil {
		log.Printf("User %s already present, skipping", demoEmail)
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoCredential), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:              demoEmail,
		PasswordCredential: string(hashed),
		Role:               "admin",
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// seedRoom creates the demo room owned by the demo user.
func seedRoom(ctx context.Context, repo repository.RoomRepository, owner *model.User) (*model.Room, error) {
	existing, err := repo.FindByCode(ctx, demoRoomCode)
	if err == nil {
		log.Printf("Room %s already present, skipping", demoRoomCode)
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	room := &model.Room{
		RoomCode:    demoRoomCode,
		OwnerUserID: owner.ID.String(),
	}
	if err := repo.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// seedTasks drops a few tasks into the demo room, one per status.
func seedTasks(ctx context.Context, repo repository.TaskRepository, room *model.Room) (int, error) {
	tasks := []model.Task{
		{Title: "Plan the sprint", Description: "Draft the backlog for the week", Status: model.StatusToDo, RoomID: room.ID.String()},
		{Title: "Wire up CI", Description: "Run the test suite on every push", Status: model.StatusInProgress, RoomID: room.ID.String()},
		{Title: "Kickoff meeting", Description: "Introduce the room to the team", Status: model.StatusDone, RoomID: room.ID.String()},
	}

	created := 0
	for i := range tasks {
		if err := repo.Create(ctx, &tasks[i]); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
