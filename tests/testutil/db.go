package testutil

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/auth"
	"github.com/perfcycle/review-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var emailCounter atomic.Int64

// SetupTestDB creates a connection to the test PostgreSQL database.
// It uses environment variables or falls back to docker-compose defaults.
func SetupTestDB(t *testing.T) *gorm.DB {
	host := getEnvOrDefault("DATABASE_HOST", "localhost")
	port := getEnvOrDefault("DATABASE_PORT", "5432")
	user := getEnvOrDefault("DATABASE_USER", "review_user")
	password := getEnvOrDefault("DATABASE_PASSWORD", "review_password")
	dbname := getEnvOrDefault("DATABASE_NAME", "review")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		host, port, user, password, dbname)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	require.NoError(t, err, "Failed to connect to test database. Ensure PostgreSQL is running.")

	err = db.AutoMigrate(
		&domain.Company{},
		&domain.User{},
		&domain.Question{},
		&domain.ReviewCycle{},
		&domain.ReviewConfig{},
		&domain.ReviewerAssignment{},
		&domain.Review{},
		&domain.Answer{},
		&domain.Notification{},
		&domain.ScoreReport{},
	)
	require.NoError(t, err, "Failed to migrate test schema")

	return db
}

// CleanupTestData deletes test data from all tables in FK-safe order
func CleanupTestData(t *testing.T, db *gorm.DB) {
	tables := []string{
		"score_reports",
		"notifications",
		"answers",
		"reviews",
		"reviewer_assignments",
		"review_configs",
		"review_cycles",
		"questions",
		"users",
		"companies",
	}

	for _, table := range tables {
		err := db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id IS NOT NULL", table)).Error
		if err != nil {
			t.Logf("Note: Could not clean table %s: %v", table, err)
		}
	}
}

// CreateTestCompany creates a company (tenant) and returns it
func CreateTestCompany(t *testing.T, db *gorm.DB, name string) *domain.Company {
	company := &domain.Company{Name: name}
	err := db.Create(company).Error
	require.NoError(t, err)
	return company
}

// CreateTestUser creates an active user in the given company. Emails are
// globally unique, so each call generates a fresh one.
func CreateTestUser(t *testing.T, db *gorm.DB, companyID uuid.UUID, name string, role domain.UserRole) *domain.User {
	user := &domain.User{
		CompanyID: companyID,
		Name:      name,
		Email:     UniqueEmail("user"),
		Role:      role,
		IsActive:  true,
	}
	err := db.Create(user).Error
	require.NoError(t, err)
	return user
}

// CreateTestCycle creates a review cycle with the given status and a
// single SELF workflow step spanning the whole window.
func CreateTestCycle(t *testing.T, db *gorm.DB, companyID uuid.UUID, name string, status domain.CycleStatus, start, end time.Time) *domain.ReviewCycle {
	cycle := &domain.ReviewCycle{
		CompanyID: companyID,
		Name:      name,
		StartDate: start,
		EndDate:   end,
		Status:    status,
		Configs: []domain.ReviewConfig{
			{StepNumber: 0, ReviewType: domain.ReviewTypeSelf, StartDate: start, EndDate: end},
		},
	}
	err := db.Create(cycle).Error
	require.NoError(t, err)
	return cycle
}

// AddCycleStep appends a workflow step of the given type spanning the
// whole cycle window.
func AddCycleStep(t *testing.T, db *gorm.DB, cycle *domain.ReviewCycle, reviewType domain.ReviewType) {
	cfg := domain.ReviewConfig{
		ReviewCycleID: cycle.ID,
		StepNumber:    len(cycle.Configs),
		ReviewType:    reviewType,
		StartDate:     cycle.StartDate,
		EndDate:       cycle.EndDate,
	}
	require.NoError(t, db.Create(&cfg).Error)
	cycle.Configs = append(cycle.Configs, cfg)
}

// CreateTestQuestion creates a question in the company's question bank
func CreateTestQuestion(t *testing.T, db *gorm.DB, companyID uuid.UUID, reviewType domain.ReviewType, kind domain.QuestionKind, text string, order int) *domain.Question {
	question := &domain.Question{
		CompanyID:    companyID,
		ReviewType:   reviewType,
		Kind:         kind,
		Text:         text,
		DisplayOrder: order,
	}
	err := db.Create(question).Error
	require.NoError(t, err)
	return question
}

// UniqueEmail returns an email address that has not been used before
func UniqueEmail(prefix string) string {
	n := emailCounter.Add(1)
	return fmt.Sprintf("%s-%d-%d@example.com", prefix, time.Now().UnixNano(), n)
}

// TenantContext builds a context authenticated as a user of the given
// company, the way the HTTP middleware would after validating a token.
func TenantContext(companyID, userID uuid.UUID, role domain.UserRole) context.Context {
	return auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:      userID,
		DisplayName: "Test User",
		Email:       "test@example.com",
		Role:        role,
		CompanyID:   companyID,
	})
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
