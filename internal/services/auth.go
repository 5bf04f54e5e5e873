package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/warblerhq/warbler/internal/logger"
	"github.com/warblerhq/warbler/internal/models"
	"github.com/warblerhq/warbler/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrPasswordRequired   = errors.New("password is required")
	ErrUserAlreadyExists  = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	List(ctx context.Context) ([]models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, email, passwordHash string, imageURL *string) (uuid.UUID, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// SessionStore defines the server-side session operations.
type SessionStore interface {
	Save(ctx context.Context, sessionID, userID uuid.UUID) error
	Get(ctx context.Context, sessionID uuid.UUID) (uuid.UUID, error)
	Delete(ctx context.Context, sessionID uuid.UUID) error
}

// TokenIssuer defines an interface for issuing and parsing session tokens.
type TokenIssuer interface {
	Generate(ctx context.Context, userID, sessionID uuid.UUID) (string, error)
	Parse(ctx context.Context, tokenString string) (userID, sessionID uuid.UUID, err error)
}

// AuthService handles signup, login, and logout.
type AuthService struct {
	reader   UserReader
	writer   UserWriter
	sessions SessionStore
	tokens   TokenIssuer
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, sessions SessionStore, tokens TokenIssuer) *AuthService {
	return &AuthService{
		reader:   reader,
		writer:   writer,
		sessions: sessions,
		tokens:   tokens,
	}
}

// Signup creates a new user. The password is checked before anything touches
// the store and only its bcrypt hash is persisted. Duplicate usernames or
// emails surface as ErrUserAlreadyExists via the store's unique constraints.
func (svc *AuthService) Signup(ctx context.Context, username, email, password string, imageURL *string) (*models.UserDB, error) {
	if password == "" {
		logger.Log.Errorw("signup with empty password", "username", username)
		return nil, ErrPasswordRequired
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	userID, err := svc.writer.Save(ctx, username, email, string(hashedPassword), imageURL)
	if err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			logger.Log.Errorw("user already exists", "username", username, "email", email)
			return nil, ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	return svc.reader.GetByID(ctx, userID)
}

// Authenticate verifies the credentials and returns the matching user, or
// nil when there is no match. An unknown username and a wrong password are
// indistinguishable to the caller; neither is an error.
func (svc *AuthService) Authenticate(ctx context.Context, username, password string) (*models.UserDB, error) {
	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil
	}

	return user, nil
}

// Login authenticates the user, opens a server-side session, and returns a
// bearer token bound to that session.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := svc.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	if user == nil {
		logger.Log.Errorw("invalid credentials", "username", username)
		return "", ErrInvalidCredentials
	}

	sessionID := uuid.New()
	token, err := svc.tokens.Generate(ctx, user.UserID, sessionID)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "err", err)
		return "", err
	}

	if err := svc.sessions.Save(ctx, sessionID, user.UserID); err != nil {
		logger.Log.Errorw("failed to save session", "err", err)
		return "", err
	}

	return token, nil
}

// Logout revokes the session bound to the token. The token itself remains
// signed and unexpired, so revocation happens purely in the session store.
func (svc *AuthService) Logout(ctx context.Context, tokenString string) error {
	_, sessionID, err := svc.tokens.Parse(ctx, tokenString)
	if err != nil {
		logger.Log.Errorw("failed to parse token on logout", "err", err)
		return err
	}

	return svc.sessions.Delete(ctx, sessionID)
}
