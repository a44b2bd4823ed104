package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/user"
)

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var u user.User
	if err := dbFrom(ctx, r.db).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	if err := dbFrom(ctx, r.db).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, u *user.User) error {
	return dbFrom(ctx, r.db).Create(u).Error
}

func (r *userRepo) ListAll(ctx context.Context) ([]*user.User, error) {
	var list []*user.User
	if err := dbFrom(ctx, r.db).Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
