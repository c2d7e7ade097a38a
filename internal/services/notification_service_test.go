package services

import (
	"testing"
	"time"

	"tradepilot/internal/models"
	"tradepilot/internal/pagination"
	"tradepilot/internal/testutil"
)

func TestCreateNotification(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewNotificationService(db)
		user := testutil.CreateTestUser(t, db)

		notification, err := svc.CreateNotification(user.ID, "Order placed", time.Now(), models.NotificationTypeAlert, models.NotificationStatusSent)
		testutil.AssertNoError(t, err)

		if notification.ID == 0 {
			t.Fatal("expected non-zero notification ID")
		}
		if notification.Status != models.NotificationStatusSent {
			t.Errorf("expected status SENT, got %s", notification.Status)
		}
	})

	t.Run("empty_message", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewNotificationService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateNotification(user.ID, "", time.Now(), models.NotificationTypeAlert, models.NotificationStatusSent)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetNotificationByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewNotificationService(db)
	user := testutil.CreateTestUser(t, db)

	created := testutil.CreateTestNotification(t, db, user.ID)

	notification, err := svc.GetNotificationByID(created.ID)
	testutil.AssertNoError(t, err)
	if notification.ID != created.ID {
		t.Errorf("expected notification ID %d, got %d", created.ID, notification.ID)
	}

	_, err = svc.GetNotificationByID(999)
	testutil.AssertAppError(t, err, "NOTIFICATION_NOT_FOUND")
}

func TestGetUserNotifications(t *testing.T) {
	t.Run("only_own_in_order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewNotificationService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		first := testutil.CreateTestNotification(t, db, alice.ID)
		testutil.CreateTestNotification(t, db, bob.ID)
		second := testutil.CreateTestNotification(t, db, alice.ID)

		resp, err := svc.GetUserNotifications(alice.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if resp.TotalItems != 2 {
			t.Fatalf("expected 2 notifications, got %d", resp.TotalItems)
		}
		if resp.Data[0].ID != first.ID || resp.Data[1].ID != second.ID {
			t.Error("expected notifications in insertion order")
		}
	})

	t.Run("pagination", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewNotificationService(db)
		user := testutil.CreateTestUser(t, db)

		for i := 0; i < 7; i++ {
			testutil.CreateTestNotification(t, db, user.ID)
		}

		resp, err := svc.GetUserNotifications(user.ID, pagination.PageRequest{Page: 2, PageSize: 3})
		testutil.AssertNoError(t, err)

		if len(resp.Data) != 3 {
			t.Errorf("expected 3 items, got %d", len(resp.Data))
		}
		if resp.TotalPages != 3 {
			t.Errorf("expected 3 pages, got %d", resp.TotalPages)
		}
	})
}
