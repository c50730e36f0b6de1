package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tbourn/go-survey-backend/internal/repo"
)

// TokenIssuer mints a session token for subject.
type TokenIssuer interface {
	Issue(subject string) (token string, expiresAt time.Time, err error)
}

// Session is the signed-in state handed back to a client.
type Session struct {
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthService implements the credential store and the sign-in flow.
type AuthService struct {
	DB     *gorm.DB
	Tokens TokenIssuer
	Cost   int
}

// NewAuthService wires an AuthService. A cost outside bcrypt's range falls
// back to bcrypt.DefaultCost.
func NewAuthService(db *gorm.DB, tokens TokenIssuer, cost int) *AuthService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{DB: db, Tokens: tokens, Cost: cost}
}

func credentials(email, password string) (string, error) {
	email, err := requireText("email", email, maxEmailRunes)
	if err != nil {
		return "", err
	}
	if password == "" {
		return "", invalid("password", "must not be empty")
	}
	return strings.TrimSpace(email), nil
}

// Register stores a salted hash for email and signs the user in.
// An existing credential yields ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, email, password string) (out *Session, err error) {
	ctx, span := tracer("AuthService").Start(ctx, "Register")
	defer func() { track(span, "user", "register", err); span.End() }()

	email, err = credentials(email, password)
	if err != nil {
		return nil, err
	}
	if err := validate.Var(email, "email"); err != nil {
		return nil, invalid("email", "must be a valid address")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.Cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, invalid("password", "too long")
	}
	if err != nil {
		return nil, err
	}

	if _, err := repo.CreateUser(ctx, s.DB, email, string(hash)); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, storageErr(err)
	}
	zerolog.Ctx(ctx).Info().Msg("user registered")
	return s.session(email)
}

// Authenticate checks password against the stored hash. Unknown emails
// yield a NotFoundError and wrong passwords ErrInvalidCredential.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (out *Session, err error) {
	ctx, span := tracer("AuthService").Start(ctx, "Authenticate")
	defer func() { track(span, "user", "authenticate", err); span.End() }()

	email, err = credentials(email, password)
	if err != nil {
		return nil, err
	}
	u, err := repo.GetUser(ctx, s.DB, email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, &NotFoundError{Kind: "user"}
	}
	if err != nil {
		return nil, storageErr(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}
	return s.session(u.Email)
}

func (s *AuthService) session(email string) (*Session, error) {
	token, exp, err := s.Tokens.Issue(email)
	if err != nil {
		return nil, err
	}
	return &Session{Email: email, Token: token, ExpiresAt: exp}, nil
}
