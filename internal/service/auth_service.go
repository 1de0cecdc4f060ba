package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"

	"go-ticket-tracker/internal/lock"
	"go-ticket-tracker/internal/metrics"
	"go-ticket-tracker/internal/model"
	"go-ticket-tracker/internal/repository"
	"go-ticket-tracker/internal/token"
	"go-ticket-tracker/pkg/apierror"
)

const minPasswordLength = 6

type AuthConfig struct {
	// RefreshRotation replaces the presented refresh token on every successful
	// refresh, making each refresh token single-use.
	RefreshRotation bool
	BcryptCost      int
}

type AuthService struct {
	users   repository.UserRepository
	tokens  repository.TokenStore
	issuer  *token.Issuer
	locker  lock.Locker
	metrics *metrics.Metrics
	cfg     AuthConfig
	now     func() time.Time
}

func NewAuthService(
	users repository.UserRepository,
	tokens repository.TokenStore,
	issuer *token.Issuer,
	locker lock.Locker,
	m *metrics.Metrics,
	cfg AuthConfig,
) *AuthService {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if locker == nil {
		locker = lock.NewMemoryLocker()
	}

	return &AuthService{
		users:   users,
		tokens:  tokens,
		issuer:  issuer,
		locker:  locker,
		metrics: m,
		cfg:     cfg,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a user and signs them in. Self-registration can only claim the
// submitter or developer role; privileged roles are granted by an admin.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.TokenPair, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)

	if name == "" {
		return model.TokenPair{}, invalidInput("name is required", "")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return model.TokenPair{}, invalidInput("a valid email is required", req.Email)
	}
	if len(req.Password) < minPasswordLength {
		return model.TokenPair{}, invalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength), "")
	}

	role := model.RoleSubmitter
	if strings.TrimSpace(req.Role) != "" {
		parsed, err := model.ParseRole(req.Role)
		if err != nil {
			return model.TokenPair{}, invalidInput("invalid role", req.Role)
		}
		if parsed != model.RoleSubmitter && parsed != model.RoleDeveloper {
			return model.TokenPair{}, apierror.Forbidden(model.ErrForbidden, "role can only be granted by an admin")
		}
		role = parsed
	}

	user, err := s.createUser(ctx, name, email, req.Password, role)
	if err != nil {
		return model.TokenPair{}, err
	}

	slog.Info("user registered", "user_id", user.ID, "role", user.Role)
	return s.issueTokenPair(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.TokenPair, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return model.TokenPair{}, invalidInput("email and password are required", "")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.TokenPair{}, errUnauthenticatedCredentials
		}
		return model.TokenPair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return model.TokenPair{}, errUnauthenticatedCredentials
	}

	return s.issueTokenPair(ctx, user)
}

// Refresh trades a stored refresh token for a new access token. The store is
// consulted before the signature, so a revoked token is reported as missing even
// when it would still verify.
func (s *AuthService) Refresh(ctx context.Context, raw string) (model.RefreshResult, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		s.metrics.RefreshOutcome(model.RefreshRejected)
		return model.RefreshResult{State: model.RefreshRejected}, errNoRefreshToken
	}

	release, err := s.locker.Acquire(ctx, lock.Key("refresh", raw))
	if err != nil {
		return model.RefreshResult{State: model.RefreshPending}, fmt.Errorf("acquire refresh lock: %w", err)
	}
	defer release()

	result, err := s.refreshLocked(ctx, raw)
	s.metrics.RefreshOutcome(result.State)
	return result, err
}

func (s *AuthService) refreshLocked(ctx context.Context, raw string) (model.RefreshResult, error) {
	rejected := model.RefreshResult{State: model.RefreshRejected}

	record, err := s.tokens.Find(ctx, raw)
	if err != nil {
		if errors.Is(err, model.ErrTokenNotFound) {
			return rejected, errNoRefreshToken
		}
		return model.RefreshResult{State: model.RefreshPending}, err
	}

	claims, err := s.issuer.VerifyRefreshToken(raw)
	if err != nil {
		return rejected, errInvalidRefreshToken
	}
	if claims.UserID() != record.UserID {
		slog.Warn("refresh token subject does not match its record", "record_id", record.ID)
		return rejected, errInvalidRefreshToken
	}

	access, err := s.issuer.IssueAccessToken(claims.UserID())
	if err != nil {
		return model.RefreshResult{State: model.RefreshPending}, err
	}
	s.metrics.TokenIssued(model.TokenTypeAccess)

	result := model.RefreshResult{
		State:       model.RefreshGranted,
		AccessToken: access,
		ExpiresIn:   int64(s.issuer.AccessTTL().Seconds()),
	}

	if !s.cfg.RefreshRotation {
		return result, nil
	}

	next, err := s.saveRefreshToken(ctx, claims.UserID())
	if err != nil {
		return model.RefreshResult{State: model.RefreshPending}, err
	}
	if err := s.tokens.Delete(ctx, raw); err != nil {
		_ = s.tokens.Delete(ctx, next)
		return model.RefreshResult{State: model.RefreshPending}, fmt.Errorf("revoke rotated refresh token: %w", err)
	}
	result.RefreshToken = next

	return result, nil
}

// Logout revokes one refresh token. Unknown tokens are ignored; a token owned by
// another user can only be revoked by an admin.
func (s *AuthService) Logout(ctx context.Context, actor model.Identity, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return errNoRefreshToken
	}

	record, err := s.tokens.Find(ctx, raw)
	if err != nil {
		if errors.Is(err, model.ErrTokenNotFound) {
			return nil
		}
		return err
	}

	if record.UserID != actor.ID && actor.Role != model.RoleAdmin {
		return errForbidden
	}

	return s.tokens.Delete(ctx, raw)
}

// LogoutAll revokes every refresh token held by the user.
func (s *AuthService) LogoutAll(ctx context.Context, userID string) error {
	return s.tokens.DeleteByUser(ctx, userID)
}

// ResolveIdentity is the single identity lookup the auth middleware performs per request.
func (s *AuthService) ResolveIdentity(ctx context.Context, userID string) (model.Identity, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.Identity{}, err
	}
	return user.Identity(), nil
}

func (s *AuthService) createUser(ctx context.Context, name string, email string, password string, role model.Role) (model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrUserAlreadyExists) {
			return model.User{}, apierror.Wrap(err, "ALREADY_EXISTS", "email already registered", http.StatusConflict)
		}
		return model.User{}, err
	}

	return user, nil
}

func (s *AuthService) issueTokenPair(ctx context.Context, user model.User) (model.TokenPair, error) {
	access, err := s.issuer.IssueAccessToken(user.ID)
	if err != nil {
		return model.TokenPair{}, err
	}
	s.metrics.TokenIssued(model.TokenTypeAccess)

	refresh, err := s.saveRefreshToken(ctx, user.ID)
	if err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.issuer.AccessTTL().Seconds()),
		User:         user.Identity(),
	}, nil
}

func (s *AuthService) saveRefreshToken(ctx context.Context, userID string) (string, error) {
	raw, expiresAt, err := s.issuer.IssueRefreshToken(userID)
	if err != nil {
		return "", err
	}

	record := model.RefreshToken{
		ID:        ulid.Make().String(),
		Token:     raw,
		UserID:    userID,
		CreatedAt: s.now(),
		ExpiresAt: expiresAt,
	}
	if err := s.tokens.Save(ctx, record); err != nil {
		return "", fmt.Errorf("save refresh token: %w", err)
	}
	s.metrics.TokenIssued(model.TokenTypeRefresh)

	return raw, nil
}

func normalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
