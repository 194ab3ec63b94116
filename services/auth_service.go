package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/league-api/models"
	"github.com/Dosada05/league-api/repositories"
	"github.com/Dosada05/league-api/utils"
	"github.com/golang-jwt/jwt/v4"
)

const (
	minPasswordLength = 8

	jwtClaimUserID = "user_id"
	jwtClaimRole   = "role"
)

type RegisterInput struct {
	Username string          `json:"username"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
}

type AuthResult struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input models.Credentials) (*AuthResult, error)
	// ParseToken проверяет подпись и срок действия токена.
	ParseToken(tokenString string) (*models.Principal, error)
}

type AuthConfig struct {
	Secret     []byte
	TTL        time.Duration
	BcryptCost int
}

type authService struct {
	userRepo repositories.UserRepository
	cfg      AuthConfig
	now      func() time.Time
	logger   *slog.Logger
}

func NewAuthService(userRepo repositories.UserRepository, cfg AuthConfig, logger *slog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
		now:      time.Now,
		logger:   logger,
	}
}

// Register создаёт пользователя. Роль admin самостоятельно получить нельзя.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if input.Role == "" {
		input.Role = models.RolePlayer
	}

	v := newValidator()
	v.check(notBlank(input.Username), "username", "must be provided")
	v.check(len(input.Password) >= minPasswordLength, "password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	v.check(input.Role.Valid() && input.Role != models.RoleAdmin, "role", "must be one of organizer, player, sponsor")
	if err := v.err(); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(input.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	user := &models.User{
		Username:     input.Username,
		Role:         input.Role,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserUsernameConflict) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", slog.String("user_id", user.ID), slog.String("role", string(user.Role)))
	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, input models.Credentials) (*AuthResult, error) {
	if !notBlank(input.Username) || input.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	if !utils.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *authService) issue(user *models.User) (*AuthResult, error) {
	expiresAt := s.now().Add(s.cfg.TTL)
	claims := jwt.MapClaims{
		jwtClaimUserID: user.ID,
		jwtClaimRole:   string(user.Role),
		"iat":          s.now().Unix(),
		"exp":          expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания токена: %w", err)
	}
	user.PasswordHash = ""
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *authService) ParseToken(tokenString string) (*models.Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.cfg.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected claims type", ErrAuthenticationFailed)
	}
	userID, _ := claims[jwtClaimUserID].(string)
	role, _ := claims[jwtClaimRole].(string)
	principal := &models.Principal{UserID: userID, Role: models.UserRole(role)}
	if principal.UserID == "" || !principal.Role.Valid() {
		return nil, fmt.Errorf("%w: token is missing user_id or role", ErrAuthenticationFailed)
	}
	return principal, nil
}
