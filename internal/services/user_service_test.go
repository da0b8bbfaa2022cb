package services

import (
	"strconv"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"hearthbook/internal/cache"
	"hearthbook/internal/models"
	"hearthbook/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("hashes_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, cache.New[*models.User](time.Minute))

		user, err := svc.CreateUser("alice", "supersecret")
		testutil.AssertNoError(t, err)

		if user.Password == "supersecret" {
			t.Error("expected password to be hashed")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("supersecret")); err != nil {
			t.Errorf("stored hash does not match password: %v", err)
		}
		if !user.IsActive {
			t.Error("expected new user to be active")
		}
	})

	t.Run("rejects_short_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, cache.New[*models.User](time.Minute))

		_, err := svc.CreateUser("bob", "short")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects_duplicate_username", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, cache.New[*models.User](time.Minute))

		_, err := svc.CreateUser("carol", "supersecret")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("carol", "othersecret")
		testutil.AssertAppError(t, err, "DUPLICATE_USERNAME")
	})
}

func TestGetUserByID(t *testing.T) {
	t.Run("caches_lookups", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userCache := cache.New[*models.User](time.Minute)
		svc := NewUserService(db, userCache)

		user := testutil.CreateTestUser(t, db)

		found, err := svc.GetUserByID(user.ID)
		testutil.AssertNoError(t, err)
		if found.Username != user.Username {
			t.Errorf("expected username %q, got %q", user.Username, found.Username)
		}

		key := strconv.FormatUint(uint64(user.ID), 10)
		if _, ok := userCache.Get(key); !ok {
			t.Error("expected user to be cached after lookup")
		}

		// Second lookup is served from the cache even if the row is gone.
		testutil.AssertNoError(t, db.Unscoped().Delete(user).Error)
		cached, err := svc.GetUserByID(user.ID)
		testutil.AssertNoError(t, err)
		if cached.Username != user.Username {
			t.Errorf("expected cached username %q, got %q", user.Username, cached.Username)
		}
	})

	t.Run("unknown_id_returns_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, cache.New[*models.User](time.Minute))

		_, err := svc.GetUserByID(9999)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}
