package service

import (
	"cognilab_backend/internal/model"
	"cognilab_backend/internal/repository"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
)

type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Storage:  storage,
	}
}

func (s *UserService) List(page, limit int) ([]model.User, int64, error) {
	return s.UserRepo.List(page, limit)
}

func (s *UserService) Get(id uint) (*model.User, error) {
	return s.UserRepo.FindByID(id)
}

// UserPatch 管理员对用户的稀疏更新，nil 字段不改动
type UserPatch struct {
	FullName *string         `json:"fullName"`
	Role     *model.UserRole `json:"role"`
	IsActive *bool           `json:"isActive"`
}

func (s *UserService) Patch(id uint, patch UserPatch) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if patch.FullName != nil {
		user.FullName = *patch.FullName
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(id uint) error {
	return s.UserRepo.Delete(id)
}

func (s *UserService) UploadAvatar(ctx context.Context, userID uint, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("avatars/%d/%s%s", userID, uuid.New().String(), filepath.Ext(filename))
	url, err := s.Storage.Upload(ctx, objectName, reader, size, contentType)
	if err != nil {
		return "", err
	}

	user.Avatar = url
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}
	return url, nil
}
