package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sv1nxmmvt/GigaChat/internal/common"
	"github.com/sv1nxmmvt/GigaChat/internal/dbmysql"
)

// Repository persists user accounts. GetByIDs also serves the chat
// directory when it resolves member profiles.
type Repository interface {
	Create(ctx context.Context, user *dbmysql.User) error
	GetByID(ctx context.Context, id string) (*dbmysql.User, error)
	GetByUsername(ctx context.Context, username string) (*dbmysql.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]dbmysql.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Search(ctx context.Context, query string, limit int) ([]dbmysql.User, error)
	Update(ctx context.Context, user *dbmysql.User) error
	Delete(ctx context.Context, id string) error
	TouchLastActive(ctx context.Context, id string) error
}

type gormRepo struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepo{db: db}
}

func (r *gormRepo) Create(ctx context.Context, user *dbmysql.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *gormRepo) GetByID(ctx context.Context, id string) (*dbmysql.User, error) {
	var user dbmysql.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (r *gormRepo) GetByUsername(ctx context.Context, username string) (*dbmysql.User, error) {
	var user dbmysql.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %s", common.ErrNotFound, username)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &user, nil
}

func (r *gormRepo) GetByIDs(ctx context.Context, ids []string) ([]dbmysql.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []dbmysql.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	return users, nil
}

func (r *gormRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.User{}).
		Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return count > 0, nil
}

func (r *gormRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.User{}).
		Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return count > 0, nil
}

func (r *gormRepo) Search(ctx context.Context, query string, limit int) ([]dbmysql.User, error) {
	var users []dbmysql.User
	err := r.db.WithContext(ctx).
		Where("username LIKE ?", "%"+query+"%").
		Order("username ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

func (r *gormRepo) Update(ctx context.Context, user *dbmysql.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete removes the account and its chat memberships. Messages stay
// under the departed sender's id so ledger history remains intact.
func (r *gormRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&dbmysql.ChatMember{}).Error; err != nil {
			return fmt.Errorf("delete memberships: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&dbmysql.User{})
		if res.Error != nil {
			return fmt.Errorf("delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: user %s", common.ErrNotFound, id)
		}
		return nil
	})
}

func (r *gormRepo) TouchLastActive(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&dbmysql.User{}).
		Where("id = ?", id).
		Update("last_active", time.Now().UTC()).Error
}
