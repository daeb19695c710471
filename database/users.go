package database

import (
	"context"
	"fmt"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/arangodb/go-driver/v2/arangodb/shared"
	"github.com/ortelius/cms-auth/internal/apperror"
	"github.com/ortelius/cms-auth/model"
)

// errUniqueConstraintViolated is ArangoDB's ERROR_ARANGO_UNIQUE_CONSTRAINT_VIOLATED
const errUniqueConstraintViolated = 1210

// AQL used by UserStore. The default projections drop the password hash.
const (
	queryUserByEmail = `
		FOR u IN users
			FILTER u.email == @email
			LIMIT 1
			RETURN UNSET(u, "password_hash")
	`
	queryCredentialsByEmail = `
		FOR u IN users
			FILTER u.email == @email
			LIMIT 1
			RETURN u
	`
	queryUserByKey = `
		FOR u IN users
			FILTER u._key == @key
			LIMIT 1
			RETURN UNSET(u, "password_hash")
	`
	queryAccessByKey = `
		FOR u IN users
			FILTER u._key == @key
			LIMIT 1
			RETURN { id: u._key, role: u.role, status: u.status }
	`
	queryInsertUser = `
		INSERT @user INTO users
		RETURN NEW._key
	`
)

// UserStore is the ArangoDB backed credential store
type UserStore struct {
	db arangodb.Database
}

// NewUserStore returns a store on the given connection
func NewUserStore(conn DBConnection) *UserStore {
	return &UserStore{db: conn.Database}
}

// FindByEmail returns the user without its password hash
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := s.queryOne(ctx, queryUserByEmail, map[string]interface{}{"email": email}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindCredentialsByEmail returns the user including its password hash
func (s *UserStore) FindCredentialsByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := s.queryOne(ctx, queryCredentialsByEmail, map[string]interface{}{"email": email}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns the user without its password hash
func (s *UserStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := s.queryOne(ctx, queryUserByKey, map[string]interface{}{"key": id}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAccessByID returns only the id, role and status of a user
func (s *UserStore) FindAccessByID(ctx context.Context, id string) (*model.Access, error) {
	var access model.Access
	if err := s.queryOne(ctx, queryAccessByKey, map[string]interface{}{"key": id}, &access); err != nil {
		return nil, err
	}
	return &access, nil
}

// Insert stores a new user. A unique index violation on email is reported
// as DuplicateIdentifier.
func (s *UserStore) Insert(ctx context.Context, user *model.User) error {
	cursor, err := s.db.Query(ctx, queryInsertUser, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"user": user},
	})
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Wrap(apperror.DuplicateIdentifier, err)
		}
		return apperror.Wrap(apperror.Unclassified, fmt.Errorf("insert user: %w", err))
	}
	defer cursor.Close()
	return nil
}

func (s *UserStore) queryOne(ctx context.Context, query string, bindVars map[string]interface{}, out interface{}) error {
	cursor, err := s.db.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: bindVars,
	})
	if err != nil {
		return apperror.Wrap(apperror.Unclassified, fmt.Errorf("query users: %w", err))
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return apperror.New(apperror.NotFound)
	}

	if _, err := cursor.ReadDocument(ctx, out); err != nil {
		return apperror.Wrap(apperror.Unclassified, fmt.Errorf("read user: %w", err))
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return shared.IsArangoErrorWithErrorNum(err, errUniqueConstraintViolated) || shared.IsConflict(err)
}
