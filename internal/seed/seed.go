// Package seed replaces the database contents with sample data.
package seed

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/services"
	"github.com/yukikurage/project-tracker-api/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed fixture.yaml
var defaultFixture []byte

// Fixture references owners by email and projects by name so it does not
// depend on identity sequences
type Fixture struct {
	Users    []UserFixture    `yaml:"users"`
	Projects []ProjectFixture `yaml:"projects"`
	Tasks    []TaskFixture    `yaml:"tasks"`
}

type UserFixture struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type ProjectFixture struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"`
	DueDate     string `yaml:"due_date"`
	Owner       string `yaml:"owner"`
}

type TaskFixture struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Completed   bool   `yaml:"completed"`
	Priority    string `yaml:"priority"`
	DueDate     string `yaml:"due_date"`
	Project     string `yaml:"project"`
}

// DefaultFixture returns the built-in sample data
func DefaultFixture() (*Fixture, error) {
	return ParseFixture(defaultFixture)
}

// ParseFixture decodes a YAML fixture
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return &f, nil
}

// Run deletes all tasks, projects and users, then inserts the fixture.
// Everything happens in one transaction.
func Run(db *gorm.DB, f *Fixture, bcryptCost int, log *zap.Logger) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.Task{}, &models.Project{}, &models.User{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", model, err)
			}
		}

		users := make(map[string]uint64, len(f.Users))
		for _, u := range f.Users {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcryptCost)
			if err != nil {
				return fmt.Errorf("failed to hash password for %s: %w", u.Email, err)
			}
			user := models.User{
				Username:     u.Username,
				Email:        services.NormalizeEmail(u.Email),
				PasswordHash: string(hash),
			}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("failed to create user %s: %w", u.Email, err)
			}
			users[user.Email] = user.ID
		}

		projects := make(map[string]uint64, len(f.Projects))
		for _, p := range f.Projects {
			ownerID, ok := users[services.NormalizeEmail(p.Owner)]
			if !ok {
				return fmt.Errorf("project %q: unknown owner %q", p.Name, p.Owner)
			}
			due, err := optionalDate(p.DueDate)
			if err != nil {
				return fmt.Errorf("project %q: %w", p.Name, err)
			}
			project := models.Project{
				Name:        p.Name,
				Description: p.Description,
				Status:      p.Status,
				DueDate:     due,
				UserID:      ownerID,
			}
			if err := tx.Create(&project).Error; err != nil {
				return fmt.Errorf("failed to create project %q: %w", p.Name, err)
			}
			projects[project.Name] = project.ID
		}

		for _, t := range f.Tasks {
			projectID, ok := projects[t.Project]
			if !ok {
				return fmt.Errorf("task %q: unknown project %q", t.Title, t.Project)
			}
			due, err := optionalDate(t.DueDate)
			if err != nil {
				return fmt.Errorf("task %q: %w", t.Title, err)
			}
			task := models.Task{
				Title:       t.Title,
				Description: t.Description,
				Completed:   t.Completed,
				Priority:    t.Priority,
				DueDate:     due,
				ProjectID:   projectID,
			}
			if err := tx.Create(&task).Error; err != nil {
				return fmt.Errorf("failed to create task %q: %w", t.Title, err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	log.Info("database seeded",
		zap.Int("users", len(f.Users)),
		zap.Int("projects", len(f.Projects)),
		zap.Int("tasks", len(f.Tasks)),
	)
	return nil
}

func optionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := utils.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
