package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/auth"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/config"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/customer"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/user"
)

// UserService 注册 / 登录，注册时同步建立购买者档案
type UserService struct {
	repo         user.Repository
	customerRepo customer.Repository
	jwt          *config.JWTConfig
}

func NewUserService(repo user.Repository, customerRepo customer.Repository, jwt *config.JWTConfig) *UserService {
	return &UserService{repo: repo, customerRepo: customerRepo, jwt: jwt}
}

func hashPassword(raw, salt string) string {
	h := sha256.Sum256([]byte(raw + salt))
	return hex.EncodeToString(h[:])
}

// Register 注册用户并创建购买者档案
func (s *UserService) Register(ctx context.Context, username, password, email string) (*user.User, error) {
	if username == "" || password == "" {
		return nil, errors.New("用户名和密码不能为空")
	}
	u := &user.User{
		Username: username,
		Email:    email,
		Salt:     "hockeyshop", // 简化实现，真实业务请使用随机盐
	}
	u.Password = hashPassword(password, u.Salt)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Create(ctx, &customer.Customer{UserID: u.ID}); err != nil {
		return nil, err
	}
	return u, nil
}

// Login 登录并返回 JWT
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if hashPassword(password, u.Salt) != u.Password {
		return "", errors.New("invalid password")
	}
	return auth.GenerateToken(s.jwt, u.ID, u.Username)
}
