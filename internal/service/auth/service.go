package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	adminRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/admin"
	"github.com/m04kA/SMC-BarberBooking/internal/service/auth/models"
)

const tokenType = "Bearer"

// Service сервис аутентификации администраторов
type Service struct {
	adminRepo    AdminRepository
	secret       []byte
	tokenTTL     time.Duration
	bcryptCost   int
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(adminRepo AdminRepository, secret string, tokenTTL time.Duration, logger Logger) *Service {
	return &Service{
		adminRepo:    adminRepo,
		secret:       []byte(secret),
		tokenTTL:     tokenTTL,
		bcryptCost:   bcrypt.DefaultCost,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Login проверяет email и пароль и выдаёт JWT
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, adminRepo.ErrAdminNotFound) {
			s.logger.Warn("Login: unknown admin email=%s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for email=%s", email)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.issueToken(admin)
	if err != nil {
		s.logger.Error("Login: failed to sign token for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: Login - sign token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: admin id=%s logged in", admin.ID)
	return &models.LoginResponse{
		AccessToken: token,
		TokenType:   tokenType,
		ExpiresAt:   expiresAt,
	}, nil
}

// ParseToken проверяет подпись и срок действия токена
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer))

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// EnsureAdmin создаёт администратора при первом запуске.
// Существующая учётная запись не изменяется.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		s.logger.Info("EnsureAdmin: bootstrap admin is not configured, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("%w: EnsureAdmin - hash password: %v", ErrInternal, err)
	}

	created, err := s.adminRepo.Create(ctx, &domain.Admin{
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		s.logger.Error("EnsureAdmin: repository error for email=%s: %v", email, err)
		return fmt.Errorf("%w: EnsureAdmin - repository error: %v", ErrInternal, err)
	}

	if created {
		s.logger.Info("EnsureAdmin: created admin email=%s", email)
	} else {
		s.logger.Info("EnsureAdmin: admin email=%s already exists", email)
	}
	return nil
}

func (s *Service) issueToken(admin *domain.Admin) (string, time.Time, error) {
	now := s.timeProvider.Now()
	expiresAt := now.Add(s.tokenTTL)

	claims := &Claims{
		AdminID: admin.ID.String(),
		Email:   admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   admin.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
