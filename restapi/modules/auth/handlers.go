package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ortelius/cms-auth/internal/apperror"
)

// ============================================================================
// AUTH HANDLERS
// ============================================================================

// Signup handles account registration
func Signup(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req SignupRequest
		if err := c.BodyParser(&req); err != nil {
			return apperror.Invalid([]apperror.FieldError{{Field: "body", Message: "Invalid request body"}})
		}

		user, err := svc.Signup(c.UserContext(), req)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "Your account has been created successfully",
			"user":    user,
		})
	}
}

// Signin handles credential login and returns the bearer token with the user
func Signin(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req SigninRequest
		if err := c.BodyParser(&req); err != nil {
			return apperror.Invalid([]apperror.FieldError{{Field: "body", Message: "Invalid request body"}})
		}

		session, err := svc.Signin(c.UserContext(), req)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Login successful",
			"user":    session,
		})
	}
}

// Me returns current authenticated user info
func Me(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := CurrentIdentity(c)
		if !ok {
			return apperror.New(apperror.NotAuthenticated)
		}

		user, err := svc.Profile(c.UserContext(), identity.ID)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"success": true,
			"user":    user,
		})
	}
}
