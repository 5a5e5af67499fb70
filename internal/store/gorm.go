package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/example/pigeon/internal/models"
)

// gormUsers implements Users on top of gorm. Every call runs under a bounded
// timeout so a stalled database round trip fails the request instead of
// hanging it.
type gormUsers struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewUsers returns a Users collection backed by the given database.
func NewUsers(db *gorm.DB, timeout time.Duration) Users {
	return &gormUsers{db: db, timeout: timeout}
}

func (s *gormUsers) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (s *gormUsers) Get(ctx context.Context, uid string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *gormUsers) Update(ctx context.Context, uid string, fields map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result := s.db.WithContext(ctx).Model(&models.User{}).Where("uid = ?", uid).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormUsers) FindByFirstName(ctx context.Context, name string) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var users []models.User
	if err := s.db.WithContext(ctx).Where("first_name = ?", name).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *gormUsers) FindByLastName(ctx context.Context, name string) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var users []models.User
	if err := s.db.WithContext(ctx).Where("last_name = ?", name).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *gormUsers) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "phone_number = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

type gormMessages struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewMessages returns a Messages collection backed by the given database.
func NewMessages(db *gorm.DB, timeout time.Duration) Messages {
	return &gormMessages{db: db, timeout: timeout}
}

func (s *gormMessages) Create(ctx context.Context, message *models.Message) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.db.WithContext(ctx).Create(message).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (s *gormMessages) Get(ctx context.Context, mid string) (*models.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var message models.Message
	if err := s.db.WithContext(ctx).First(&message, "mid = ?", mid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (s *gormMessages) Delete(ctx context.Context, mid string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.db.WithContext(ctx).Delete(&models.Message{}, "mid = ?", mid).Error
}

func (s *gormMessages) Between(ctx context.Context, sender, receiver string) ([]models.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var messages []models.Message
	if err := s.db.WithContext(ctx).
		Where("sender = ? AND receiver = ?", sender, receiver).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
