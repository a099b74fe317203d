// Package auth implements credential checks and JWT issuance.
package auth

import (
	"context"
	"log/slog"
	"time"

	"finbook/pkg/config"
	"finbook/pkg/domain/user"
	"finbook/pkg/dto"
	"finbook/pkg/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash keeps the bcrypt cost of a failed lookup indistinguishable from
// a failed password check.
const dummyHash = "$2a$10$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

// Service authenticates users and issues tokens.
type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

// New creates the auth service.
func New(uow repository.UnitOfWork, cfg *config.Jwt, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches the bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Login resolves identity (username or email) and verifies the password.
// Both failure modes collapse into user.ErrUnauthorized.
func (s *Service) Login(ctx context.Context, identity, password string) (u *dto.UserRead, err error) {
	log := s.logger.With("context", "Login", "identity", identity)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.GetByIdentity(ctx, identity)
		if err != nil {
			CheckPasswordHash(password, dummyHash)
			return user.ErrUnauthorized
		}
		if !CheckPasswordHash(password, u.Password) {
			return user.ErrUnauthorized
		}
		return nil
	})
	if err != nil {
		log.Warn("login failed", "error", err)
		return nil, err
	}
	log.Info("login successful", "userID", u.ID)
	return u, nil
}

// GenerateToken signs an HS256 JWT for the user. The role claim lets the
// API authorize without a user lookup per request.
func (s *Service) GenerateToken(u *dto.UserRead) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = u.ID.String()
	claims["username"] = u.Username
	claims["email"] = u.Email
	claims["role"] = u.Role
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		s.logger.Error("token signing failed", "userID", u.ID, "error", err)
		return "", err
	}
	return signed, nil
}

// Identity is the authenticated caller extracted from a verified token.
type Identity struct {
	UserID uuid.UUID
	Role   user.Role
}

// IdentityFromToken extracts the caller identity from a verified JWT.
func IdentityFromToken(token *jwt.Token) (Identity, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, user.ErrUnauthorized
	}
	rawID, ok := claims["user_id"].(string)
	if !ok {
		return Identity{}, user.ErrUnauthorized
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return Identity{}, user.ErrUnauthorized
	}
	role, _ := claims["role"].(string)
	if !user.Role(role).IsValid() {
		return Identity{}, user.ErrUnauthorized
	}
	return Identity{UserID: id, Role: user.Role(role)}, nil
}
