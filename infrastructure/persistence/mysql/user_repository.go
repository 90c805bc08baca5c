package mysql

import (
	"context"
	"errors"

	"github.com/nesmy/users-api/domain/user"
	"github.com/nesmy/users-api/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// UserRepository is the GORM-backed persistence gateway for user records.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates the repository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID returns the stored user, or nil when no row exists.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	var rec po.UserPO
	err := r.db.WithContext(ctx).First(&rec, "user_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec.ToDomain(), nil
}

// Save inserts the user when it carries no identifier, letting MySQL assign
// the auto-increment key, and replaces the full row otherwise.
func (r *UserRepository) Save(ctx context.Context, u *user.User) (*user.User, error) {
	rec := po.FromDomain(u)
	if u.UserID == nil {
		if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
			return nil, err
		}
	} else {
		// Save writes every column, including NULLing cleared optionals.
		if err := r.db.WithContext(ctx).Save(rec).Error; err != nil {
			return nil, err
		}
	}
	return rec.ToDomain(), nil
}

// Delete removes the row. A missing row is not an error.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&po.UserPO{}, "user_id = ?", id).Error
}

// FindByBirthDateBetween returns users born in [start, end], inclusive,
// ordered by birth date.
func (r *UserRepository) FindByBirthDateBetween(ctx context.Context, start, end user.Date) ([]*user.User, error) {
	var recs []po.UserPO
	err := r.db.WithContext(ctx).
		Where("birth_date BETWEEN ? AND ?", start.Time(), end.Time()).
		Order("birth_date, user_id").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}

	users := make([]*user.User, len(recs))
	for i := range recs {
		users[i] = recs[i].ToDomain()
	}
	return users, nil
}

// Compile-time interface check.
var _ user.Repository = (*UserRepository)(nil)
