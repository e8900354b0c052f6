package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"kaamtrack/internal/model"
	"kaamtrack/internal/model/dto"
	"kaamtrack/internal/repository"
	pkgerrors "kaamtrack/pkg/errors"
	"kaamtrack/pkg/logger"
	"kaamtrack/pkg/snowflake"
	"kaamtrack/pkg/token"
	"kaamtrack/storage/database"
	"kaamtrack/utils"
)

var (
	authService *AuthService
	authOnce    sync.Once
)

func Auth() *AuthService {
	authOnce.Do(func() {
		authService = NewAuthService(
			repository.NewUserStore(database.DB()),
			repository.NewWorkerStore(database.DB()),
		)
	})
	return authService
}

type AuthService struct {
	users   repository.UserStore
	workers repository.WorkerStore
}

func NewAuthService(users repository.UserStore, workers repository.WorkerStore) *AuthService {
	return &AuthService{users: users, workers: workers}
}

// Register 注册账号。缺省注册为雇主；工人账号要带工牌令牌绑定档案。
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenPairResponse, error) {
	if !utils.ValidatePhone(req.Phone) {
		return nil, pkgerrors.InvalidCredentials
	}
	if len(req.Password) < 6 {
		return nil, pkgerrors.InvalidCredentials
	}

	role := model.UserRole(req.Role)
	if role == "" {
		role = model.RoleOwner
	}
	if role != model.RoleOwner && role != model.RoleWorker {
		return nil, pkgerrors.RoleForbidden
	}

	existing, err := s.users.GetByPhone(ctx, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	if existing != nil {
		return nil, pkgerrors.PhoneAlreadyRegistered
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	user := &model.User{
		PublicID:     publicID,
		Name:         req.Name,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         role,
	}

	// 工人账号绑定档案：按注册手机号全局找工牌令牌匹配的工人
	if role == model.RoleWorker {
		if req.WorkerQrToken == "" {
			return nil, pkgerrors.WorkerNotFound
		}
		worker, err := s.findWorkerByToken(ctx, req.WorkerQrToken)
		if err != nil {
			return nil, err
		}
		user.WorkerPublicID = &worker.PublicID
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Logger.Info("New user registered",
		zap.Int64("public_id", publicID),
		zap.String("role", string(role)),
	)

	return s.issueTokens(user)
}

// Login 手机号 + 密码登录
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenPairResponse, error) {
	user, err := s.users.GetByPhone(ctx, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	if user == nil {
		return nil, pkgerrors.InvalidCredentials
	}

	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		return nil, pkgerrors.InvalidCredentials
	}

	return s.issueTokens(user)
}

// Refresh 用 refresh token 换新令牌对
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error) {
	userIDStr, _, err := token.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, pkgerrors.Unauthorized
	}

	userID, defErr := parsePublicID(userIDStr)
	if defErr != nil {
		return nil, defErr
	}

	user, err := s.users.GetByPublicID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	if user == nil {
		return nil, pkgerrors.UserNotFound
	}

	return s.issueTokens(user)
}

// Me 当前账号快照
func (s *AuthService) Me(ctx context.Context, userID string) (*dto.UserSnapshot, error) {
	id, defErr := parsePublicID(userID)
	if defErr != nil {
		return nil, defErr
	}

	user, err := s.users.GetByPublicID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	if user == nil {
		return nil, pkgerrors.UserNotFound
	}

	snapshot := snapshotOf(user)
	return &snapshot, nil
}

func (s *AuthService) findWorkerByToken(ctx context.Context, qrToken string) (*model.Worker, error) {
	// 工牌令牌全局唯一，逐雇主找没有意义，直接全表查
	worker, err := s.workers.GetByQrToken(ctx, 0, qrToken)
	if err != nil {
		return nil, fmt.Errorf("failed to query worker: %w", err)
	}
	if worker == nil {
		return nil, pkgerrors.WorkerNotFound
	}
	return worker, nil
}

func (s *AuthService) issueTokens(user *model.User) (*dto.TokenPairResponse, error) {
	var workerID int64
	if user.WorkerPublicID != nil {
		workerID = *user.WorkerPublicID
	}

	userIDStr := fmt.Sprintf("%d", user.PublicID)
	accessToken, refreshToken, expiresIn, err := token.GenerateTokenPair(userIDStr, string(user.Role), workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &dto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		User:         snapshotOf(user),
	}, nil
}

func snapshotOf(user *model.User) dto.UserSnapshot {
	snapshot := dto.UserSnapshot{
		ID:    fmt.Sprintf("%d", user.PublicID),
		Name:  user.Name,
		Phone: user.Phone,
		Role:  string(user.Role),
	}
	if user.WorkerPublicID != nil {
		snapshot.WorkerPublicID = fmt.Sprintf("%d", *user.WorkerPublicID)
	}
	return snapshot
}
