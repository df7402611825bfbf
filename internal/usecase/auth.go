package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

const (
	tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	tokenLength   = 40
)

// NewSessionToken gera um token de sessão aleatório.
func NewSessionToken() (string, error) {
	tok, err := nanoid.Generate(tokenAlphabet, tokenLength)
	if err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}
	return tok, nil
}

type AuthUseCase struct {
	Users      entity.UserRepositoryInterface
	Sessions   entity.SessionRepositoryInterface
	SessionTTL time.Duration
	HashCost   int
	NewToken   TokenGenerator
	Now        func() time.Time
}

func NewAuthUseCase(users entity.UserRepositoryInterface, sessions entity.SessionRepositoryInterface, ttl time.Duration) *AuthUseCase {
	return &AuthUseCase{
		Users:      users,
		Sessions:   sessions,
		SessionTTL: ttl,
		HashCost:   bcrypt.DefaultCost,
		NewToken:   NewSessionToken,
		Now:        time.Now,
	}
}

func (uc *AuthUseCase) SignUp(ctx context.Context, input SignUpInput) (*entity.User, error) {
	input.Email = entity.NormalizeEmail(input.Email)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), uc.HashCost)
	if err != nil {
		return nil, &TechnicalError{Code: "HASH_ERROR", Message: err.Error(), Err: err}
	}

	user := entity.NewUser(input.Email, string(hash))
	if err := uc.Users.Create(ctx, user); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, &DomainError{Code: CodeEmailTaken, Message: err.Error(), Err: err}
		}
		return nil, databaseError("erro ao criar usuário", err)
	}
	return user, nil
}

// Login confere a senha e abre uma sessão nova.
func (uc *AuthUseCase) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	invalid := &DomainError{
		Code:    CodeInvalidCredentials,
		Message: entity.ErrInvalidCredentials.Error(),
		Err:     entity.ErrInvalidCredentials,
	}

	user, err := uc.Users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, invalid
		}
		return nil, databaseError("erro ao buscar usuário", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, invalid
	}

	token, err := uc.NewToken()
	if err != nil {
		return nil, &TechnicalError{Code: "TOKEN_ERROR", Message: err.Error(), Err: err}
	}
	now := uc.Now()
	session := &entity.Session{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: now.Add(uc.SessionTTL),
		CreatedAt: now,
	}
	if err := uc.Sessions.Create(ctx, session); err != nil {
		return nil, databaseError("erro ao criar sessão", err)
	}

	return &LoginOutput{Token: token, ExpiresAt: session.ExpiresAt, User: user}, nil
}

func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := uc.Sessions.Delete(ctx, token); err != nil {
		return databaseError("erro ao encerrar sessão", err)
	}
	return nil
}

// CurrentUser resolve o dono de um token. Sessão vencida é apagada na hora.
func (uc *AuthUseCase) CurrentUser(ctx context.Context, token string) (*entity.User, error) {
	unauthenticated := &DomainError{
		Code:    CodeUnauthenticated,
		Message: entity.ErrUnauthenticated.Error(),
		Err:     entity.ErrUnauthenticated,
	}
	if token == "" {
		return nil, unauthenticated
	}

	session, err := uc.Sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, entity.ErrUnauthenticated) {
			return nil, unauthenticated
		}
		return nil, databaseError("erro ao buscar sessão", err)
	}
	if session.Expired(uc.Now()) {
		_ = uc.Sessions.Delete(ctx, token)
		return nil, unauthenticated
	}

	user, err := uc.Users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, unauthenticated
		}
		return nil, databaseError("erro ao buscar usuário", err)
	}
	return user, nil
}

// CleanupSessions apaga sessões vencidas.
func (uc *AuthUseCase) CleanupSessions(ctx context.Context) (int64, error) {
	return uc.Sessions.DeleteExpired(ctx, uc.Now())
}
