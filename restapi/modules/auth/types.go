package auth

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/ortelius/cms-auth/internal/apperror"
	"github.com/ortelius/cms-auth/model"
)

// SignupRequest defines the body for account registration
type SignupRequest struct {
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Password     string     `json:"password"`
	Role         model.Role `json:"role"`
	ProfileImage string     `json:"profileImage"`
}

func (r *SignupRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = model.NormalizeEmail(r.Email)
	r.Role = model.Role(strings.ToLower(strings.TrimSpace(string(r.Role))))
	r.ProfileImage = strings.TrimSpace(r.ProfileImage)
	if r.Role == "" {
		r.Role = model.RoleReader
	}
}

// Validate checks the signup payload
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(3, 50)),
		validation.Field(&r.Email, validation.Required, is.Email),
		// bcrypt only looks at the first 72 bytes
		validation.Field(&r.Password, validation.Required, validation.Length(6, 72)),
		validation.Field(&r.Role, validation.By(knownRole)),
		validation.Field(&r.ProfileImage, is.URL),
	)
}

var errUnknownRole = errors.New("is not a known role")

func knownRole(value interface{}) error {
	if role, _ := value.(model.Role); !role.IsValid() {
		return errUnknownRole
	}
	return nil
}

// SigninRequest defines the body for signin
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *SigninRequest) normalize() {
	r.Email = model.NormalizeEmail(r.Email)
}

// Validate checks the signin payload
func (r SigninRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// SessionUser is the signin response: the public user plus its token
type SessionUser struct {
	model.PublicUser
	Token string `json:"token"`
}

// validationError turns ozzo field errors into an apperror.Validation,
// sorted by field for stable output
func validationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return apperror.Wrap(apperror.Unclassified, err)
	}

	fields := make([]apperror.FieldError, 0, len(fieldErrs))
	for name, ferr := range fieldErrs {
		if ferr == nil {
			continue
		}
		fields = append(fields, apperror.FieldError{Field: name, Message: ferr.Error()})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return apperror.Invalid(fields)
}
