package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tasktrack/internal/config"
	"tasktrack/internal/db"
	"tasktrack/internal/model"
	"tasktrack/internal/repository"
)

const (
	demoEmail    = "demo@tasktrack.local"
	demoPassword = "password123"
	demoName     = "Demo User"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	ctx := context.Background()

	user, err := seedDemoUser(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}

	created, err := seedDemoTasks(ctx, taskRepo, user.ID)
	if err != nil {
		log.Fatalf("Failed to seed demo tasks: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Demo user: %s / %s", demoEmail, demoPassword)
	log.Printf("  - Tasks created: %d", created)
}

// seedDemoUser creates the demo user if it does not exist yet.
func seedDemoUser(ctx context.Context, repo repository.UserRepository) (*model.User, error) {
	existing, err := repo.FindByEmail(ctx, demoEmail)
	if err == nil {
		log.Println("Demo user already exists, skipping")
		return existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        demoEmail,
		PasswordHash: string(hashed),
		Name:         demoName,
		Bio:          "Seeded account for local development.",
		Avatar:       model.DefaultAvatarURL(demoEmail),
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// seedDemoTasks populates a handful of sample tasks for the demo user. Tasks
// are only added when the user has none, so reruns stay idempotent.
func seedDemoTasks(ctx context.Context, repo repository.TaskRepository, ownerID uuid.UUID) (int, error) {
	existing, err := repo.ListByOwner(ctx, ownerID, repository.TaskFilter{})
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		log.Println("Demo user already has tasks, skipping")
		return 0, nil
	}

	due := time.Now().Add(72 * time.Hour)
	samples := []model.Task{
		{Title: "Review pull requests", Description: "Go through the open review queue.", Status: model.TaskStatusPending, Priority: model.TaskPriorityHigh, DueDate: &due},
		{Title: "Update project roadmap", Status: model.TaskStatusInProgress, Priority: model.TaskPriorityMedium},
		{Title: "Book dentist appointment", Status: model.TaskStatusPending, Priority: model.TaskPriorityLow},
		{Title: "Write release notes", Status: model.TaskStatusCompleted, Priority: model.TaskPriorityMedium},
	}

	created := 0
	for i := range samples {
		samples[i].ID = uuid.New()
		samples[i].UserID = ownerID
		if err := repo.Create(ctx, &samples[i]); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
