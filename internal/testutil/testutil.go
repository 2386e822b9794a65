// Package testutil wires the global DB handle to an in-memory SQLite database
// and provides seed helpers for tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/teamtrack-dev/teamtrack/db"
	"github.com/teamtrack-dev/teamtrack/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB points db.DB at a fresh named in-memory database for the
// duration of the test. Each test gets its own database.
func OpenTestDB(t *testing.T) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = gdb.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
	)

	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	previous := db.DB
	db.DB = gdb

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
		db.DB = previous
	})
}

// CreateUser inserts an active user. MinCost keeps bcrypt cheap in tests.
func CreateUser(t *testing.T, name, email, role string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)

	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// CreateProject inserts a project owned by the user, without any membership
// rows. Compose with AddMember to mirror the create-project flow.
func CreateProject(t *testing.T, name string, owner models.User) models.Project {
	t.Helper()

	project := models.Project{
		Name:        name,
		Status:      models.ProjectStatusActive,
		CreatedByID: owner.ID,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	return project
}

// AddMember inserts a membership row.
func AddMember(t *testing.T, project models.Project, user models.User, role string) models.ProjectMember {
	t.Helper()

	member := models.ProjectMember{
		UserID:    user.ID,
		ProjectID: project.ID,
		Role:      role,
	}

	if err := db.DB.Create(&member).Error; err != nil {
		t.Fatalf("failed to create membership: %v", err)
	}

	return member
}

// CreateTask inserts a task with the given status.
func CreateTask(t *testing.T, project models.Project, creator models.User, title, status string) models.Task {
	t.Helper()

	task := models.Task{
		ProjectID:   project.ID,
		Title:       title,
		Status:      status,
		Priority:    models.TaskPriorityMedium,
		CreatedByID: creator.ID,
	}

	if err := db.DB.Create(&task).Error; err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	return task
}
