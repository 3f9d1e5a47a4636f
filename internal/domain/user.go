package domain

import (
	"strings"
	"time"
)

// Role is a user's authorization level.
type Role string

// Roles known to the system.
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents an account. Email and NickName are unique among users that
// have not been soft-deleted.
type User struct {
	ID             int64      `json:"id" db:"id"`
	Name           *string    `json:"name" db:"name"`
	Surname        *string    `json:"surname" db:"surname"`
	NickName       *string    `json:"nickName" db:"nick_name"`
	Email          string     `json:"email" db:"email"`
	Age            *int       `json:"age" db:"age"`
	Role           Role       `json:"role" db:"role"`
	HashedPassword string     `json:"-" db:"password"` // never serialized
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt      *time.Time `json:"-" db:"deleted_at"`
}

// NewUser creates a User with an already hashed password. An empty role defaults
// to RoleUser.
func NewUser(email, hashedPassword string, role Role) (*User, error) {
	if role == "" {
		role = RoleUser
	}
	now := time.Now().UTC()
	user := &User{
		Email:          strings.TrimSpace(email),
		HashedPassword: hashedPassword,
		Role:           role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks the invariants a stored user must satisfy.
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	if !u.Role.Valid() {
		return ErrInvalidRole
	}
	if u.Age != nil && (*u.Age < 1 || *u.Age > 120) {
		return ErrInvalidAge
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsDeleted reports whether the user has been soft-deleted.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// UserPatch carries the fields of a partial user update; nil means unchanged.
// HashedPassword is set by the service after hashing, never from input.
type UserPatch struct {
	Name           *string
	Surname        *string
	NickName       *string
	Email          *string
	Age            *int
	Role           *Role
	HashedPassword *string
}

// Apply copies every non-nil field onto u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = p.Name
	}
	if p.Surname != nil {
		u.Surname = p.Surname
	}
	if p.NickName != nil {
		u.NickName = p.NickName
	}
	if p.Email != nil {
		u.Email = strings.TrimSpace(*p.Email)
	}
	if p.Age != nil {
		u.Age = p.Age
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.HashedPassword != nil {
		u.HashedPassword = *p.HashedPassword
	}
}
