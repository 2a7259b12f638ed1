// Package request holds the typed bodies accepted by the user endpoints. Each body is normalized first and then
// checked; Validate reports every failing field at once as a validation.Errors keyed by JSON field name.
package request

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	minPasswordLength = 6
	maxUserNameLength = 30
	maxNameLength     = 50
)

// Signup is the body of POST /user/signup.
type Signup struct {
	UserName  string `json:"userName"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Normalize trims every name field and lower-cases the user name. The password is left untouched.
func (r Signup) Normalize() Signup {
	r.UserName = normalizeUserName(r.UserName)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	return r
}

func (r Signup) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserName, validation.Required, is.Email, validation.Length(0, maxUserNameLength)),
		validation.Field(&r.Password, validation.Required, validation.Length(minPasswordLength, 0)),
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, maxNameLength)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, maxNameLength)),
	)
}

// Signin is the body of POST /user/signin.
type Signin struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

func (r Signin) Normalize() Signin {
	r.UserName = normalizeUserName(r.UserName)
	return r
}

func (r Signin) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserName, validation.Required, is.Email, validation.Length(3, maxUserNameLength)),
		validation.Field(&r.Password, validation.Required, validation.Length(minPasswordLength, 0)),
	)
}

// Update is the body of PUT /user/. All three fields must be present: the password is mandatory even when only
// names change, and a name key may hold an empty string but may not be omitted.
type Update struct {
	Password  string  `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

func (r Update) Normalize() Update {
	r.FirstName = trimmed(r.FirstName)
	r.LastName = trimmed(r.LastName)
	return r
}

func (r Update) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Required, validation.Length(minPasswordLength, 0)),
		validation.Field(&r.FirstName, validation.NotNil, validation.Length(0, maxNameLength)),
		validation.Field(&r.LastName, validation.NotNil, validation.Length(0, maxNameLength)),
	)
}

// Names returns the first and last name, treating absent fields as empty.
func (r Update) Names() (first, last string) {
	if r.FirstName != nil {
		first = *r.FirstName
	}
	if r.LastName != nil {
		last = *r.LastName
	}
	return first, last
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func normalizeUserName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
