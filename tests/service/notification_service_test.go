package service_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/domain"
	"github.com/perfcycle/review-api/internal/repository"
	"github.com/perfcycle/review-api/internal/service"
	"github.com/perfcycle/review-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupNotificationServiceTestDB(t *testing.T) *gorm.DB {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestData(t, db) })
	return db
}

func createNotificationService(db *gorm.DB) *service.NotificationService {
	return service.NewNotificationService(repository.NewNotificationRepository(db), zap.NewNop())
}

func createTestNotification(t *testing.T, db *gorm.DB, companyID, userID uuid.UUID, title string, read bool) *domain.Notification {
	n := &domain.Notification{
		UserID:    userID,
		CompanyID: companyID,
		Type:      string(domain.NotificationTypeCycleStarted),
		Title:     title,
		Message:   fmt.Sprintf("%s message", title),
		Read:      read,
	}
	require.NoError(t, db.Create(n).Error)
	return n
}

func TestNotificationService_ListForUser(t *testing.T) {
	db := setupNotificationServiceTestDB(t)
	svc := createNotificationService(db)

	company := testutil.CreateTestCompany(t, db, "Notify Co")
	user := testutil.CreateTestUser(t, db, company.ID, "Recipient", domain.RoleEmployee)
	other := testutil.CreateTestUser(t, db, company.ID, "Bystander", domain.RoleEmployee)
	ctx := testutil.TenantContext(company.ID, user.ID, domain.RoleEmployee)

	createTestNotification(t, db, company.ID, user.ID, "Cycle started", false)
	createTestNotification(t, db, company.ID, user.ID, "Review submitted", true)
	createTestNotification(t, db, company.ID, other.ID, "Not yours", false)

	t.Run("lists only the user's notifications", func(t *testing.T) {
		notifications, total, err := svc.ListForUser(ctx, user.ID, false, 1, 20)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		require.Len(t, notifications, 2)
		for _, n := range notifications {
			assert.NotEqual(t, "Not yours", n.Title)
		}
	})

	t.Run("unread filter drops read entries", func(t *testing.T) {
		notifications, total, err := svc.ListForUser(ctx, user.ID, true, 1, 20)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, notifications, 1)
		assert.Equal(t, "Cycle started", notifications[0].Title)
		assert.False(t, notifications[0].Read)
	})

	t.Run("counts unread per user", func(t *testing.T) {
		count, err := svc.CountUnread(ctx, user.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})
}

func TestNotificationService_MarkRead(t *testing.T) {
	db := setupNotificationServiceTestDB(t)
	svc := createNotificationService(db)

	company := testutil.CreateTestCompany(t, db, "Notify Co")
	user := testutil.CreateTestUser(t, db, company.ID, "Recipient", domain.RoleEmployee)
	other := testutil.CreateTestUser(t, db, company.ID, "Bystander", domain.RoleEmployee)
	ctx := testutil.TenantContext(company.ID, user.ID, domain.RoleEmployee)

	t.Run("marks a notification read with timestamp", func(t *testing.T) {
		n := createTestNotification(t, db, company.ID, user.ID, "Cycle started", false)

		require.NoError(t, svc.MarkRead(ctx, n.ID, user.ID))

		notifications, _, err := svc.ListForUser(ctx, user.ID, false, 1, 20)
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.True(t, notifications[0].Read)
		assert.NotNil(t, notifications[0].ReadAt)
	})

	t.Run("cannot mark another user's notification", func(t *testing.T) {
		n := createTestNotification(t, db, company.ID, other.ID, "Not yours", false)

		err := svc.MarkRead(ctx, n.ID, user.ID)
		var notFoundErr *domain.NotFoundError
		require.ErrorAs(t, err, &notFoundErr)

		count, err := svc.CountUnread(ctx, other.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("unknown notification is not found", func(t *testing.T) {
		err := svc.MarkRead(ctx, uuid.New(), user.ID)
		var notFoundErr *domain.NotFoundError
		assert.ErrorAs(t, err, &notFoundErr)
	})

	t.Run("mark all read clears only the caller's backlog", func(t *testing.T) {
		createTestNotification(t, db, company.ID, user.ID, "One", false)
		createTestNotification(t, db, company.ID, user.ID, "Two", false)

		require.NoError(t, svc.MarkAllRead(ctx, user.ID))

		count, err := svc.CountUnread(ctx, user.ID)
		require.NoError(t, err)
		assert.Zero(t, count)

		otherCount, err := svc.CountUnread(ctx, other.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, otherCount)
	})
}
