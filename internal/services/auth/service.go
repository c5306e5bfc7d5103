package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vkaradzhov/belot-server/internal/dependencies/clock"
	"github.com/vkaradzhov/belot-server/internal/dependencies/random"
	"github.com/vkaradzhov/belot-server/internal/model"
	"github.com/vkaradzhov/belot-server/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUsernameExists     = errors.New("username already exists")
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Token is an issued bearer credential bound to a player
type Token struct {
	Value     string
	PlayerID  model.PlayerID
	Player    model.Player
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service issues and validates bearer tokens for guests and registered
// players. Tokens live in memory; player records go through storage.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random

	mu     sync.RWMutex
	tokens map[string]*Token

	tokenDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	TokenDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		TokenDuration: 24 * time.Hour,
	}
}

// New creates an auth service
func New(storage storage.Storage, clock clock.Clock, random random.Random, cfg Config) *Service {
	if cfg.TokenDuration == 0 {
		cfg.TokenDuration = DefaultConfig().TokenDuration
	}
	return &Service{
		storage:       storage,
		clock:         clock,
		random:        random,
		tokens:        make(map[string]*Token),
		tokenDuration: cfg.TokenDuration,
	}
}

// CreateGuest creates an anonymous player and issues a token
func (s *Service) CreateGuest(ctx context.Context, displayName string) (*Token, error) {
	now := s.clock.Now()
	player := &model.Player{
		ID:          model.PlayerID("p_" + s.random.String(22, tokenAlphabet)),
		DisplayName: displayName,
		IsGuest:     true,
		CreatedAt:   now,
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	return s.issue(player), nil
}

// Register creates a registered player account and issues a token
func (s *Service) Register(ctx context.Context, username, password, displayName string) (*Token, error) {
	_, err := s.storage.GetRegisteredPlayerByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameExists
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	player := &model.Player{
		ID:          model.PlayerID("p_" + s.random.String(22, tokenAlphabet)),
		DisplayName: displayName,
		IsGuest:     false,
		CreatedAt:   now,
	}
	registered := &model.RegisteredPlayer{
		PlayerID:     player.ID,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}
	if err := s.storage.SaveRegisteredPlayer(ctx, registered); err != nil {
		return nil, err
	}

	return s.issue(player), nil
}

// Login authenticates a registered player and issues a token
func (s *Service) Login(ctx context.Context, username, password string) (*Token, error) {
	rp, err := s.storage.GetRegisteredPlayerByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rp.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	player, err := s.storage.GetPlayer(ctx, rp.PlayerID)
	if err != nil {
		return nil, err
	}

	return s.issue(player), nil
}

// Validate checks a token value and returns the token record
func (s *Service) Validate(value string) (*Token, error) {
	s.mu.RLock()
	token, ok := s.tokens[value]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidToken
	}

	if s.clock.Now().After(token.ExpiresAt) {
		s.mu.Lock()
		delete(s.tokens, value)
		s.mu.Unlock()
		return nil, ErrInvalidToken
	}

	return token, nil
}

// Invalidate revokes a token
func (s *Service) Invalidate(value string) {
	s.mu.Lock()
	delete(s.tokens, value)
	s.mu.Unlock()
}

// GetPlayer returns the player a token value belongs to
func (s *Service) GetPlayer(value string) (*model.Player, error) {
	token, err := s.Validate(value)
	if err != nil {
		return nil, err
	}
	return &token.Player, nil
}

// CleanExpiredTokens removes expired tokens (call periodically)
func (s *Service) CleanExpiredTokens() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for value, token := range s.tokens {
		if now.After(token.ExpiresAt) {
			delete(s.tokens, value)
		}
	}
}

func (s *Service) issue(player *model.Player) *Token {
	now := s.clock.Now()
	token := &Token{
		Value:     "tok_" + s.random.String(32, tokenAlphabet),
		PlayerID:  player.ID,
		Player:    *player,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenDuration),
	}

	s.mu.Lock()
	s.tokens[token.Value] = token
	s.mu.Unlock()

	return token
}
