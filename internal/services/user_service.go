package services

import (
	"errors"
	"strconv"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hearthbook/internal/cache"
	apperrors "hearthbook/internal/errors"
	"hearthbook/internal/models"
)

// userService handles user records. ID lookups are cached because the log
// recorder resolves a username on every ledger write.
type userService struct {
	db    *gorm.DB
	cache *cache.TTLCache[*models.User]
}

// NewUserService creates a new UserServicer with the given lookup cache.
func NewUserService(db *gorm.DB, userCache *cache.TTLCache[*models.User]) UserServicer {
	return &userService{db: db, cache: userCache}
}

// CreateUser creates a user with a bcrypt-hashed password.
func (s *userService) CreateUser(username, password string) (*models.User, error) {
	if username == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "username is required")
	}
	if len(password) < 8 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "password must be at least 8 characters")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Username: username,
		Password: string(hash),
		IsActive: true,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// GetUserByID retrieves a user, consulting the cache first.
func (s *userService) GetUserByID(id uint) (*models.User, error) {
	key := strconv.FormatUint(uint64(id), 10)
	if user, ok := s.cache.Get(key); ok {
		return user, nil
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.cache.Set(key, &user)
	return &user, nil
}
