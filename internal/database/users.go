package database

import (
	"context"

	"it-inventory/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err, ErrInvalidReference)
	}
	return &u, nil
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("username = ?", models.NormalizeUsername(username)).First(&u).Error
	if err != nil {
		return nil, translate(err, ErrInvalidReference)
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := s.db.WithContext(ctx).Order("username").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser stores a new account with a bcrypt hash of password.
func (s *Store) CreateUser(ctx context.Context, username, password string, role models.UserRole) (*models.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Username:     models.NormalizeUsername(username),
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, translate(err, ErrInvalidReference)
	}
	return u, nil
}

// EnsureAdmin creates the configured admin account unless an admin already
// exists.
func (s *Store) EnsureAdmin(ctx context.Context, username, password string, log logrus.FieldLogger) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	u, err := s.CreateUser(ctx, username, password, models.RoleAdmin)
	if err != nil {
		return err
	}
	log.WithField("username", u.Username).Info("created default admin user")
	return nil
}
