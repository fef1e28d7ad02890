package services

import (
	"context"
	"errors"
	"time"

	"salescrm/internal/logger"
	"salescrm/internal/models"
	"salescrm/internal/repositories"
	"salescrm/internal/utils"
)

const (
	AccessTokenDuration  = 15 * time.Minute
	RefreshTokenDuration = 30 * 24 * time.Hour
)

type AuthService struct {
	userRepo  *repositories.UserRepository
	redisRepo *repositories.RedisRepository
	log       *logger.Logger
}

func NewAuthService(userRepo *repositories.UserRepository, redisRepo *repositories.RedisRepository, log *logger.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		redisRepo: redisRepo,
		log:       log,
	}
}

func (s *AuthService) Register(user *models.User) (string, string, error) {
	existing, _ := s.userRepo.FindByEmail(user.Email)
	if existing != nil {
		return "", "", errors.New("user already exists")
	}

	hashedPassword, err := utils.Hash(user.Password)
	if err != nil {
		return "", "", err
	}
	user.PasswordHash = string(hashedPassword)
	user.Password = ""

	// Policy: first user becomes admin
	userCount, err := s.userRepo.Count()
	if err != nil {
		return "", "", err
	}
	if userCount == 0 {
		user.Role = "admin"
	}

	if err := s.userRepo.Create(user); err != nil {
		return "", "", err
	}

	s.log.Info("user registered", "email", user.Email, "role", user.Role)
	return s.issueTokens(user)
}

func (s *AuthService) Login(email, password string) (string, string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil || user == nil {
		return "", "", errors.New("user not found")
	}

	if err := utils.VerifyPassword(user.PasswordHash, password); err != nil {
		return "", "", errors.New("invalid password")
	}

	if err := s.userRepo.TouchLastLogin(user.ID); err != nil {
		s.log.Warn("failed to update last login", "email", email, "error", err)
	}

	return s.issueTokens(user)
}

// Refresh validates the refresh token and issues a new token pair,
// rotating the Redis session entry.
func (s *AuthService) Refresh(refreshToken string) (string, string, error) {
	claims, err := utils.VerifyJWT(refreshToken, utils.RefreshTokenSecret)
	if err != nil {
		return "", "", errors.New("invalid or expired refresh token")
	}

	ctx := context.Background()

	blacklisted, err := s.redisRepo.IsBlacklisted(ctx, claims.ID)
	if err == nil && blacklisted {
		return "", "", errors.New("refresh token revoked")
	}

	exists, err := s.redisRepo.SessionExists(ctx, claims.ID)
	if err != nil || !exists {
		return "", "", errors.New("session not found")
	}

	if err := s.redisRepo.DeleteSession(ctx, claims.ID); err != nil {
		s.log.Warn("failed to delete rotated session", "jti", claims.ID, "error", err)
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil || user == nil {
		return "", "", errors.New("user not found")
	}

	return s.issueTokens(user)
}

// Logout revokes the refresh token's session.
func (s *AuthService) Logout(refreshToken string) error {
	claims, err := utils.VerifyJWT(refreshToken, utils.RefreshTokenSecret)
	if err != nil {
		return errors.New("invalid refresh token")
	}

	ctx := context.Background()
	if err := s.redisRepo.DeleteSession(ctx, claims.ID); err != nil {
		return err
	}
	return s.redisRepo.Blacklist(ctx, claims.ID)
}

func (s *AuthService) issueTokens(user *models.User) (string, string, error) {
	accessToken, _, err := utils.GenerateJWT(user.ID, user.Email, AccessTokenDuration, utils.AccessTokenSecret)
	if err != nil {
		return "", "", err
	}

	refreshToken, jti, err := utils.GenerateJWT(user.ID, user.Email, RefreshTokenDuration, utils.RefreshTokenSecret)
	if err != nil {
		return "", "", err
	}

	if err := s.redisRepo.StoreSession(context.Background(), jti, user.ID.String()); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}
