package auth

import (
	"context"

	"github.com/ortelius/cms-auth/internal/apperror"
	"github.com/ortelius/cms-auth/model"
	"go.uber.org/zap"
)

// Service runs the signup and signin flows
type Service struct {
	store  Store
	hasher *Hasher
	tokens *TokenService
	logger *zap.Logger
}

// NewService wires the flow to its collaborators
func NewService(store Store, hasher *Hasher, tokens *TokenService, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, hasher: hasher, tokens: tokens, logger: logger}
}

// Tokens returns the token service used to sign sessions
func (s *Service) Tokens() *TokenService {
	return s.tokens
}

// Logger returns the service logger
func (s *Service) Logger() *zap.Logger {
	return s.logger
}

// Store returns the credential store
func (s *Service) Store() Store {
	return s.store
}

// Signup registers a new account. Authors start pending, every other role
// starts approved.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (model.PublicUser, error) {
	req.normalize()
	if err := validationError(req.Validate()); err != nil {
		return model.PublicUser{}, err
	}

	_, err := s.store.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return model.PublicUser{}, apperror.New(apperror.DuplicateIdentifier)
	case !apperror.Is(err, apperror.NotFound):
		return model.PublicUser{}, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.PublicUser{}, err
	}

	user := model.NewUser(req.Name, req.Email, hash, req.Role)
	user.ProfileImage = req.ProfileImage

	// the unique index on email catches a concurrent signup that passed the check above
	if err := s.store.Insert(ctx, user); err != nil {
		return model.PublicUser{}, err
	}

	s.logger.Info("user registered",
		zap.String("id", user.Key),
		zap.String("role", string(user.Role)),
		zap.String("status", string(user.Status)))

	return user.Public(), nil
}

// Signin checks credentials and the account status, then issues a token.
// An unknown email and a wrong password produce the same error.
func (s *Service) Signin(ctx context.Context, req SigninRequest) (SessionUser, error) {
	req.normalize()
	if err := validationError(req.Validate()); err != nil {
		return SessionUser{}, err
	}

	user, err := s.store.FindCredentialsByEmail(ctx, req.Email)
	if err != nil {
		if apperror.Is(err, apperror.NotFound) {
			return SessionUser{}, apperror.New(apperror.InvalidCredentials)
		}
		return SessionUser{}, err
	}

	switch {
	case user.IsBanned():
		return SessionUser{}, apperror.New(apperror.AccountBanned)
	case user.IsPending():
		return SessionUser{}, apperror.New(apperror.AccountPending)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return SessionUser{}, apperror.New(apperror.InvalidCredentials)
	}

	token, err := s.tokens.Issue(user.Key)
	if err != nil {
		return SessionUser{}, err
	}

	return SessionUser{PublicUser: user.Public(), Token: token}, nil
}

// Profile returns the public projection of the user with the given id
func (s *Service) Profile(ctx context.Context, id string) (model.PublicUser, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return model.PublicUser{}, err
	}
	return user.Public(), nil
}
