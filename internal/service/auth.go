// 상담원 인증 비즈니스 로직 정의
//
// 단일 관리자 계정을 환경변수로 부트스트랩하고, HS256 JWT access token만
// 발급한다. refresh token 회전은 두지 않는다. 내부 상담원 도구라 세션
// 수명이 짧고 재로그인 비용이 낮기 때문이다.

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ticket-triage/backend/internal/config"
	"github.com/ticket-triage/backend/internal/db"
	"github.com/ticket-triage/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

const (
	minLoginIDLength  = 3
	minPasswordLength = 8
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrMisconfigured = errors.New("auth config invalid")
)

type AuthService struct {
	repo      *db.Postgres
	jwtSecret []byte
	accessTTL time.Duration
}

type authClaims struct {
	LoginID string `json:"loginId"`
	jwt.RegisteredClaims
}

func NewAuthService(repo *db.Postgres, cfg config.AuthConfig) (*AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}

	accessTTL, err := time.ParseDuration(cfg.JWTAccessTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JWT_ACCESS_TTL", ErrMisconfigured)
	}

	return &AuthService{
		repo:      repo,
		jwtSecret: []byte(cfg.JWTSecret),
		accessTTL: accessTTL,
	}, nil
}

func (s *AuthService) EnsureSchema(ctx context.Context) error {
	return s.repo.EnsureAuthSchema(ctx)
}

// EnsureAdmin - 관리자 계정이 없으면 생성 (부트스트랩)
func (s *AuthService) EnsureAdmin(ctx context.Context, loginID, password string) error {
	if strings.TrimSpace(loginID) == "" || strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: ADMIN_LOGIN_ID/ADMIN_PASSWORD are required", ErrMisconfigured)
	}

	existing, err := s.repo.GetAgentByLoginID(ctx, loginID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	if err := validateCredentials(loginID, password); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.CreateAgent(ctx, loginID, string(hash))
}

func (s *AuthService) Login(ctx context.Context, loginID, password string) (string, int64, error) {
	if err := validateCredentials(loginID, password); err != nil {
		return "", 0, err
	}

	agent, err := s.repo.GetAgentByLoginID(ctx, loginID)
	if err != nil {
		return "", 0, err
	}
	if agent == nil {
		return "", 0, ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(agent.PasswordHash), []byte(password)); err != nil {
		return "", 0, ErrUnauthorized
	}

	return s.generateAccessToken(agent)
}

func (s *AuthService) ParseAccessToken(tokenStr string) (*model.AuthUser, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrUnauthorized
	}

	return &model.AuthUser{
		UserID:  userID,
		LoginID: claims.LoginID,
	}, nil
}

func (s *AuthService) generateAccessToken(agent *db.AgentAccount) (string, int64, error) {
	now := time.Now()
	claims := authClaims{
		LoginID: agent.LoginID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", agent.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", 0, err
	}

	return signed, int64(s.accessTTL.Seconds()), nil
}

func validateCredentials(loginID, password string) error {
	loginID = strings.TrimSpace(loginID)
	password = strings.TrimSpace(password)

	if len(loginID) < minLoginIDLength || len(loginID) > 64 {
		return ErrInvalidInput
	}
	if len(password) < minPasswordLength || len(password) > 128 {
		return ErrInvalidInput
	}
	return nil
}
