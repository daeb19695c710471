package auth

import (
	"context"
	"testing"
	"time"

	"github.com/ortelius/cms-auth/database"
	"github.com/ortelius/cms-auth/internal/apperror"
	"github.com/ortelius/cms-auth/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSignupStatusFollowsRole(t *testing.T) {
	tests := []struct {
		role   model.Role
		want   model.Role
		status model.Status
	}{
		{role: model.RoleReader, want: model.RoleReader, status: model.StatusApproved},
		{role: model.RoleAdmin, want: model.RoleAdmin, status: model.StatusApproved},
		{role: model.RoleAuthor, want: model.RoleAuthor, status: model.StatusPending},
		{role: "", want: model.RoleReader, status: model.StatusApproved},
		{role: "Author", want: model.RoleAuthor, status: model.StatusPending},
	}

	for _, tt := range tests {
		t.Run(string(tt.want)+"/"+string(tt.role), func(t *testing.T) {
			f := newFixture(t)
			user := f.register(t, "a@x.com", "secret1", tt.role)

			assert.Equal(t, tt.want, user.Role)
			assert.Equal(t, tt.status, user.Status)
			assert.Equal(t, "a@x.com", user.Email)
			assert.NotEmpty(t, user.ID)
		})
	}
}

func TestSignupStoresOnlyTheHash(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "a@x.com", "secret1", model.RoleReader)

	stored, err := f.store.FindCredentialsByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)

	assert.Equal(t, user.ID, stored.Key)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.True(t, NewHasher(bcrypt.MinCost).Verify("secret1", stored.PasswordHash))
}

func TestSignupDuplicateIdentifier(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "secret1", model.RoleReader)

	for _, req := range []SignupRequest{
		{Name: "Someone Else", Email: "a@x.com", Password: "different", Role: model.RoleAdmin},
		{Name: "Test User", Email: "  A@X.COM ", Password: "secret1"},
		{Name: "Author", Email: "a@x.com", Password: "another1", Role: model.RoleAuthor},
	} {
		_, err := f.svc.Signup(context.Background(), req)
		assert.Equal(t, apperror.DuplicateIdentifier, apperror.KindOf(err), req.Email)
	}
}

// raceStore hides existing users from the pre-insert check, as if a
// concurrent signup committed between the check and the insert
type raceStore struct {
	*database.MemoryStore
}

func (s raceStore) FindByEmail(context.Context, string) (*model.User, error) {
	return nil, apperror.New(apperror.NotFound)
}

func TestSignupDuplicateCaughtAtInsert(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "secret1", model.RoleReader)

	svc := NewService(raceStore{f.store}, NewHasher(bcrypt.MinCost), f.tokens, nil)
	_, err := svc.Signup(context.Background(), SignupRequest{Name: "Late User", Email: "a@x.com", Password: "secret1"})

	assert.Equal(t, apperror.DuplicateIdentifier, apperror.KindOf(err))
}

func TestSignupValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Signup(context.Background(), SignupRequest{
		Name:         "Al",
		Email:        "not-an-email",
		Password:     "123",
		Role:         "superuser",
		ProfileImage: "not a url",
	})
	require.Error(t, err)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.Validation, appErr.Kind)

	fields := make([]string, 0, len(appErr.Fields))
	for _, fe := range appErr.Fields {
		fields = append(fields, fe.Field)
		assert.NotEmpty(t, fe.Message)
	}
	assert.Equal(t, []string{"email", "name", "password", "profileImage", "role"}, fields)

	_, err = f.store.FindByEmail(context.Background(), "not-an-email")
	assert.True(t, apperror.Is(err, apperror.NotFound))
}

func TestSignupRoleRule(t *testing.T) {
	for _, role := range model.Roles {
		req := SignupRequest{Name: "Ada", Email: "ada@x.com", Password: "secret1", Role: role}
		assert.NoError(t, req.Validate(), role)
	}

	req := SignupRequest{Name: "Ada", Email: "ada@x.com", Password: "secret1", Role: "editor"}
	err := validationError(req.Validate())

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "role", appErr.Fields[0].Field)
	assert.Equal(t, "is not a known role", appErr.Fields[0].Message)
}

func TestSigninIssuesVerifiableToken(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "a@x.com", "secret1", model.RoleReader)

	session, err := f.svc.Signin(context.Background(), SigninRequest{Email: "A@x.com", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, user.ID, session.ID)
	assert.Equal(t, model.StatusApproved, session.Status)
	require.NotEmpty(t, session.Token)

	claims, err := f.tokens.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	later := f.tokens.WithClock(func() time.Time { return time.Now().Add(f.tokens.TTL() + time.Minute) })
	_, err = later.Verify(session.Token)
	assert.Equal(t, apperror.TokenExpired, apperror.KindOf(err))
}

func TestSigninNoEnumeration(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "secret1", model.RoleReader)

	_, unknownErr := f.svc.Signin(context.Background(), SigninRequest{Email: "nobody@x.com", Password: "secret1"})
	_, wrongErr := f.svc.Signin(context.Background(), SigninRequest{Email: "a@x.com", Password: "wrong"})

	assert.Equal(t, apperror.InvalidCredentials, apperror.KindOf(unknownErr))
	assert.Equal(t, apperror.InvalidCredentials, apperror.KindOf(wrongErr))

	s1, b1 := apperror.Translate(unknownErr)
	s2, b2 := apperror.Translate(wrongErr)
	assert.Equal(t, s1, s2)
	assert.Equal(t, b1, b2)
}

func TestSigninStatusGate(t *testing.T) {
	f := newFixture(t)
	banned := f.register(t, "banned@x.com", "secret1", model.RoleReader)
	require.NoError(t, f.store.SetStatus(banned.ID, model.StatusBanned))
	f.register(t, "author@x.com", "secret1", model.RoleAuthor)

	tests := []struct {
		name     string
		email    string
		password string
		want     apperror.Kind
	}{
		{"banned", "banned@x.com", "secret1", apperror.AccountBanned},
		{"banned before password check", "banned@x.com", "wrong", apperror.AccountBanned},
		{"pending", "author@x.com", "secret1", apperror.AccountPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := f.svc.Signin(context.Background(), SigninRequest{Email: tt.email, Password: tt.password})
			assert.Equal(t, tt.want, apperror.KindOf(err))
			assert.Empty(t, session.Token)
		})
	}
}

func TestSigninValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Signin(context.Background(), SigninRequest{})
	assert.Equal(t, apperror.Validation, apperror.KindOf(err))
}

func TestProfile(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "a@x.com", "secret1", model.RoleReader)

	got, err := f.svc.Profile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = f.svc.Profile(context.Background(), "missing")
	assert.Equal(t, apperror.NotFound, apperror.KindOf(err))
}
