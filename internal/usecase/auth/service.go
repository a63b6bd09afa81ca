package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rocker1166/skilllink/internal/domain/user"
	"github.com/rocker1166/skilllink/internal/pkg/jwt"
	"github.com/rocker1166/skilllink/internal/pkg/magiclink"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrLinkExpired            = errors.New("link expired")
	ErrLinkInvalid            = errors.New("link invalid")
	ErrInvalidRefreshToken    = errors.New("invalid refresh token")
	ErrRefreshTokenExpired    = errors.New("refresh token expired")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type LoginInput struct {
	Email    string
	Password string
}

type TokenPair struct {
	Access  string
	Refresh string
}

// Session is the authenticated viewer context derived from an access token.
type Session struct {
	UserID uuid.UUID
	Email  string
	Name   string
}

// SessionRepository tracks the single local session per user.
type SessionRepository interface {
	Revoke(ctx context.Context, userID uuid.UUID) error
	Save(ctx context.Context, userID uuid.UUID, refreshTokenHash string, expiresAt time.Time) error
	IsCurrent(ctx context.Context, userID uuid.UUID, refreshTokenHash string) (bool, error)
}

// LinkService issues and redeems one-time magic-link tokens.
type LinkService interface {
	Issue(ctx context.Context, userID uuid.UUID, email string) (string, error)
	Consume(ctx context.Context, token string) (magiclink.Ticket, error)
}

// MailDispatcher hands a message off for asynchronous delivery.
type MailDispatcher interface {
	Dispatch(to, subject, body string)
}

type Service struct {
	users    user.Repository
	sessions SessionRepository
	links    LinkService
	mail     MailDispatcher
	jwt      jwt.Service

	refreshTTL time.Duration
	baseURL    string
	logger     *log.Logger
}

func NewService(
	users user.Repository,
	sessions SessionRepository,
	links LinkService,
	mail MailDispatcher,
	jwtSvc jwt.Service,
	refreshTTL time.Duration,
	baseURL string,
	logger *log.Logger,
) *Service {
	return &Service{
		users:      users,
		sessions:   sessions,
		links:      links,
		mail:       mail,
		jwt:        jwtSvc,
		refreshTTL: refreshTTL,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, TokenPair, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !isValidPassword(in.Password) {
		return user.User{}, TokenPair{}, ErrInvalidInput
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return user.User{}, TokenPair{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, TokenPair{}, ErrInternal
	}
	if exists {
		return user.User{}, TokenPair{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, TokenPair{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
	}
	if err := s.users.Create(ctx, u); err != nil {
		exists, exErr := s.users.ExistsByEmail(ctx, email)
		if exErr == nil && exists {
			return user.User{}, TokenPair{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, TokenPair{}, ErrInternal
	}

	tokens, err := s.establishSession(ctx, u)
	if err != nil {
		return user.User{}, TokenPair{}, err
	}
	return sanitizeUser(u), tokens, nil
}

// Login verifies the credentials and establishes a fresh local session. Any
// existing local session for the user is revoked first so two sessions
// never race (local scope only, nothing server-wide).
func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, TokenPair, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, TokenPair{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, TokenPair{}, ErrInvalidCredentials
		}
		return user.User{}, TokenPair{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, TokenPair{}, ErrInvalidCredentials
	}

	tokens, err := s.establishSession(ctx, u)
	if err != nil {
		return user.User{}, TokenPair{}, err
	}
	return sanitizeUser(u), tokens, nil
}

// RequestMagicLink mints a one-time link and hands the email off for async
// delivery. Success means "link dispatched", never "link delivered". The
// acknowledgment is identical whether or not the address has an account.
func (s *Service) RequestMagicLink(ctx context.Context, email, redirectTarget string) error {
	email = normalizeEmail(email)
	if email == "" {
		return ErrInvalidInput
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// Same ack as the known-address path.
			return nil
		}
		return ErrInternal
	}

	token, err := s.links.Issue(ctx, u.ID, u.Email)
	if err != nil {
		return ErrInternal
	}

	link := s.consumeURL(token, redirectTarget)
	body := fmt.Sprintf(
		"Click the link below to sign in to SkillLink:\n\n%s\n\nThe link will expire in 24 hours. If it has expired, simply request a new one.",
		link,
	)
	s.mail.Dispatch(u.Email, "Your SkillLink sign-in link", body)
	return nil
}

// ConsumeMagicLink redeems a one-time token and establishes a session.
func (s *Service) ConsumeMagicLink(ctx context.Context, token string) (user.User, TokenPair, error) {
	ticket, err := s.links.Consume(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, magiclink.ErrExpired):
			return user.User{}, TokenPair{}, ErrLinkExpired
		case errors.Is(err, magiclink.ErrInvalid):
			return user.User{}, TokenPair{}, ErrLinkInvalid
		default:
			return user.User{}, TokenPair{}, ErrInternal
		}
	}

	u, err := s.users.GetByID(ctx, ticket.UserID)
	if err != nil {
		return user.User{}, TokenPair{}, ErrInternal
	}

	tokens, err := s.establishSession(ctx, u)
	if err != nil {
		return user.User{}, TokenPair{}, err
	}
	return sanitizeUser(u), tokens, nil
}

// Refresh rotates the token pair when the presented refresh token matches
// the user's current local session.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if refreshToken == "" {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	claims, err := s.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenPair{}, ErrRefreshTokenExpired
		}
		return TokenPair{}, ErrInvalidRefreshToken
	}
	if !s.jwt.IsRefreshToken(claims) {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	current, err := s.sessions.IsCurrent(ctx, claims.UserID, hashToken(refreshToken))
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	if !current {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return TokenPair{}, ErrInternal
	}

	return s.establishSession(ctx, u)
}

// CurrentSession resolves an access token into a viewer context. A missing
// or invalid token yields ok=false, not an error: the caller degrades to
// the anonymous view.
func (s *Service) CurrentSession(_ context.Context, accessToken string) (Session, bool) {
	if accessToken == "" {
		return Session{}, false
	}
	claims, err := s.jwt.ValidateToken(accessToken)
	if err != nil {
		return Session{}, false
	}
	if claims.TokenType != jwt.TokenTypeAccess {
		return Session{}, false
	}
	return Session{UserID: claims.UserID, Email: claims.Email, Name: claims.Name}, true
}

func (s *Service) establishSession(ctx context.Context, u user.User) (TokenPair, error) {
	if err := s.sessions.Revoke(ctx, u.ID); err != nil {
		return TokenPair{}, ErrInternal
	}

	access, err := s.jwt.GenerateAccessToken(u.ID, u.Email, u.Name)
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	refresh, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return TokenPair{}, ErrInternal
	}

	expiresAt := time.Now().UTC().Add(s.refreshTTL)
	if err := s.sessions.Save(ctx, u.ID, hashToken(refresh), expiresAt); err != nil {
		return TokenPair{}, ErrInternal
	}

	return TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *Service) consumeURL(token, redirectTarget string) string {
	q := url.Values{}
	q.Set("token", token)
	if redirectTarget != "" {
		q.Set("redirect_to", redirectTarget)
	}
	return s.baseURL + "/api/v1/auth/magic-link/consume?" + q.Encode()
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
