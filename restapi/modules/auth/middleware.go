package auth

import (
	"context"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/ortelius/cms-auth/internal/apperror"
	"github.com/ortelius/cms-auth/model"
)

const identityLocal = "identity"

// Identity is what an authenticated request carries downstream
type Identity struct {
	ID     string       `json:"id"`
	Role   model.Role   `json:"role"`
	Status model.Status `json:"status"`
}

type contextKey struct {
	name string
}

var identityKey = &contextKey{"identity"}

// WithIdentity returns a copy of ctx carrying the identity
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the identity stored by RequireAuth
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

// CurrentIdentity returns the identity attached to the request
func CurrentIdentity(c *fiber.Ctx) (Identity, bool) {
	identity, ok := c.Locals(identityLocal).(Identity)
	return identity, ok
}

// RequireAuth middleware validates the bearer token, reloads the account's
// role and status and blocks banned accounts
func RequireAuth(store Store, tokens *TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return apperror.New(apperror.NotAuthenticated)
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			return err
		}

		access, err := store.FindAccessByID(c.UserContext(), claims.UserID)
		if err != nil {
			if apperror.Is(err, apperror.NotFound) {
				return apperror.Newf(apperror.NotAuthenticated, "User account does not exist")
			}
			return err
		}

		if access.Status == model.StatusBanned {
			return apperror.Newf(apperror.Forbidden, "Your account has been banned")
		}

		identity := Identity{ID: access.ID, Role: access.Role, Status: access.Status}
		c.Locals(identityLocal, identity)
		c.SetUserContext(WithIdentity(c.UserContext(), identity))

		return c.Next()
	}
}

// Authorize allows the identity if its role is in allowed
func Authorize(identity Identity, allowed []model.Role) error {
	if slices.Contains(allowed, identity.Role) {
		return nil
	}
	return apperror.New(apperror.Forbidden)
}

// RequireRole middleware checks if user has one of the required roles.
// It must run after RequireAuth.
func RequireRole(allowedRoles ...model.Role) fiber.Handler {
	allowed := slices.Clone(allowedRoles)

	return func(c *fiber.Ctx) error {
		identity, ok := CurrentIdentity(c)
		if !ok {
			return apperror.New(apperror.NotAuthenticated)
		}
		if err := Authorize(identity, allowed); err != nil {
			return err
		}
		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
