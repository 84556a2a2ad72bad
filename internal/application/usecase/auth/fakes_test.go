package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/passmeter/backend/internal/application/adapter"
	"github.com/passmeter/backend/internal/domain/entity"
	domainerror "github.com/passmeter/backend/internal/domain/error"
	"github.com/passmeter/backend/internal/domain/valueobject"
)

type fakeUserRepository struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*entity.User
	createErr error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepository) UpdatePassword(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[user.ID]
	if !ok {
		return domainerror.ErrUserNotFound
	}
	stored.PasswordHash = user.PasswordHash
	stored.PasswordChangedAt = user.PasswordChangedAt
	stored.UpdatedAt = user.UpdatedAt
	return nil
}

func (r *fakeUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

// fakePasswordService prefixes instead of hashing and enforces the Moderate minimum.
type fakePasswordService struct{}

func (fakePasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakePasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func (fakePasswordService) EvaluateStrength(password string) valueobject.StrengthResult {
	return valueobject.EvaluatePasswordStrength(password)
}

func (s fakePasswordService) ValidatePasswordStrength(password string) error {
	if !s.EvaluateStrength(password).Label.AtLeast(valueobject.StrengthModerate) {
		return errors.New("password is too weak")
	}
	return nil
}

type fakeTokenService struct {
	mu          sync.Mutex
	issued      int
	refresh     map[string]uuid.UUID
	invalidated map[string]bool
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{
		refresh:     make(map[string]uuid.UUID),
		invalidated: make(map[string]bool),
	}
}

func (s *fakeTokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*adapter.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	refresh := uuid.NewString()
	s.refresh[refresh] = userID
	return &adapter.TokenPair{AccessToken: "access-" + uuid.NewString(), RefreshToken: refresh}, nil
}

func (s *fakeTokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeTokenService) ValidateRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.refresh[token]
	if !ok {
		return nil, errors.New("unknown token")
	}
	return &adapter.TokenClaims{UserID: userID, Email: "user@example.com", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (s *fakeTokenService) InvalidateRefreshToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidated[token] = true
	return nil
}

func (s *fakeTokenService) InvalidateAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, owner := range s.refresh {
		if owner == userID {
			s.invalidated[token] = true
		}
	}
	return nil
}

func (s *fakeTokenService) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.refresh[token]
	return ok && !s.invalidated[token], nil
}

type fakeResetTokenService struct {
	mu        sync.Mutex
	users     *fakeUserRepository
	tokens    map[string]*adapter.PasswordResetToken
	used      map[string]bool
	issueErr  error
	redeemErr error
}

func newFakeResetTokenService(users *fakeUserRepository) *fakeResetTokenService {
	return &fakeResetTokenService{
		users:  users,
		tokens: make(map[string]*adapter.PasswordResetToken),
		used:   make(map[string]bool),
	}
}

func (s *fakeResetTokenService) Issue(ctx context.Context, userID uuid.UUID) (*adapter.PasswordResetToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.issueErr != nil {
		return nil, s.issueErr
	}
	token := &adapter.PasswordResetToken{Token: uuid.NewString(), UserID: userID, ExpiresAt: time.Now().UTC().Add(time.Hour)}
	s.tokens[token.Token] = token
	return token, nil
}

func (s *fakeResetTokenService) Lookup(ctx context.Context, token string) (*adapter.PasswordResetToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	found, ok := s.tokens[token]
	if !ok || s.used[token] {
		return nil, domainerror.ErrInvalidResetToken
	}
	copied := *found
	return &copied, nil
}

func (s *fakeResetTokenService) Redeem(ctx context.Context, token string, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[token]; !ok || s.used[token] {
		return domainerror.ErrInvalidResetToken
	}
	if s.redeemErr != nil {
		return s.redeemErr
	}
	if err := s.users.UpdatePassword(ctx, user); err != nil {
		return err
	}
	s.used[token] = true
	return nil
}

func (s *fakeResetTokenService) expire(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token].ExpiresAt = time.Now().UTC().Add(-time.Minute)
}

type fakeEmailService struct {
	mu     sync.Mutex
	queued []adapter.PasswordResetEmail
}

func (s *fakeEmailService) QueuePasswordResetEmail(ctx context.Context, input adapter.PasswordResetEmail) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queued = append(s.queued, input)
	return nil
}
