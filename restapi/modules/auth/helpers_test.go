package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ortelius/cms-auth/database"
	"github.com/ortelius/cms-auth/internal/apperror"
	"github.com/ortelius/cms-auth/model"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type fixture struct {
	store  *database.MemoryStore
	tokens *TokenService
	svc    *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tokens, err := NewTokenService(testSecret, time.Hour, "cms-auth-test")
	require.NoError(t, err)

	store := database.NewMemoryStore()
	return &fixture{
		store:  store,
		tokens: tokens,
		svc:    NewService(store, NewHasher(bcrypt.MinCost), tokens, nil),
	}
}

// register signs a user up and returns its public projection
func (f *fixture) register(t *testing.T, email, password string, role model.Role) model.PublicUser {
	t.Helper()

	user, err := f.svc.Signup(context.Background(), SignupRequest{
		Name:     "Test User",
		Email:    email,
		Password: password,
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

// newTestApp returns a Fiber app whose error handler translates like the real one
func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status, body := apperror.Translate(err)
			return c.Status(status).JSON(body)
		},
	})
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

// newRequest builds a bodiless request with a raw Authorization header
func newRequest(method, path, authorization string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}
	return req
}

func decodeMessage(t *testing.T, resp *http.Response) string {
	t.Helper()

	var body apperror.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Message
}
