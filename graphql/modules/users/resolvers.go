package users

import (
	"context"

	"github.com/ortelius/cms-auth/internal/apperror"
	"github.com/ortelius/cms-auth/model"
	"github.com/ortelius/cms-auth/restapi/modules/auth"
	"go.uber.org/zap"
)

// ResolverError is returned to GraphQL clients. It carries the translated
// message only; internal causes stay on the server.
type ResolverError struct {
	Message string
	Code    string
}

func (e *ResolverError) Error() string {
	return e.Message
}

// Extensions adds the error kind to the GraphQL error payload
func (e *ResolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

// resolverError translates err for the client. Unclassified failures never
// reach the HTTP error handler, so they are logged here.
func resolverError(log *zap.Logger, field string, err error) error {
	if apperror.KindOf(err) == apperror.Unclassified {
		log.Error("graphql resolver failed", zap.String("field", field), zap.Error(err))
	}
	_, body := apperror.Translate(err)
	return &ResolverError{Message: body.Message, Code: apperror.KindOf(err).String()}
}

// ResolveMe returns the caller's own profile
func ResolveMe(ctx context.Context, svc *auth.Service) (interface{}, error) {
	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return nil, resolverError(svc.Logger(), "me", apperror.New(apperror.NotAuthenticated))
	}

	user, err := svc.Profile(ctx, identity.ID)
	if err != nil {
		return nil, resolverError(svc.Logger(), "me", err)
	}
	return user, nil
}

// ResolveUser returns any user's profile; admins only
func ResolveUser(ctx context.Context, svc *auth.Service, id string) (interface{}, error) {
	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return nil, resolverError(svc.Logger(), "user", apperror.New(apperror.NotAuthenticated))
	}
	if err := auth.Authorize(identity, []model.Role{model.RoleAdmin}); err != nil {
		return nil, resolverError(svc.Logger(), "user", err)
	}

	user, err := svc.Profile(ctx, id)
	if err != nil {
		if apperror.Is(err, apperror.NotFound) {
			return nil, nil
		}
		return nil, resolverError(svc.Logger(), "user", err)
	}
	return user, nil
}
