package model

import (
	"strings"
	"time"
)

// UserEntity represents the users table entity
type UserEntity struct {
	ID           uint64     `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FirstName    string     `db:"first_name" json:"first_name"`
	LastName     string     `db:"last_name" json:"last_name"`
	Email        string     `db:"email" json:"email"`
	Phone        string     `db:"phone" json:"phone"`
	City         string     `db:"city" json:"city"`
	State        string     `db:"state" json:"state"`
	CoverPic     string     `db:"cover_pic" json:"cover_pic"`
	ProfilePic   string     `db:"profile_pic" json:"profile_pic"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// Location renders the user's location the way the signup form expects it.
func (u *UserEntity) Location() string {
	return u.City + ", " + u.State
}

// Identity returns the session principal for the user.
func (u *UserEntity) Identity() *Identity {
	return &Identity{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		City:      u.City,
		State:     u.State,
	}
}

// Identity is the authenticated principal bound to a session.
type Identity struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	City      string `json:"city"`
	State     string `json:"state"`
}

// UserFilter for querying users. Zero fields are ignored; ExcludeID skips a
// row so uniqueness can be probed on behalf of an existing user.
type UserFilter struct {
	ID        uint64
	Username  string
	Email     string
	Phone     string
	ExcludeID uint64
}

// SignupRequest for user registration
type SignupRequest struct {
	Username  string `json:"username" form:"username" validate:"required,max=20"`
	Password  string `json:"password" form:"password" validate:"required,min=6,eqfield=Confirm"`
	Confirm   string `json:"confirm" form:"confirm"`
	FirstName string `json:"first_name" form:"first_name" validate:"required,max=20"`
	LastName  string `json:"last_name" form:"last_name" validate:"required,max=20"`
	Email     string `json:"email" form:"email" validate:"required,email"`
	Phone     string `json:"phone" form:"phone" validate:"required,len=10,numeric"`
	Location  string `json:"location" form:"location" validate:"required,citystate"`
}

// LoginRequest for user login
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required,max=20"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

// UserEditRequest carries the mutable profile fields
type UserEditRequest struct {
	FirstName  string `json:"first_name" form:"first_name" validate:"required,max=20"`
	LastName   string `json:"last_name" form:"last_name" validate:"required,max=20"`
	Email      string `json:"email" form:"email" validate:"required,email"`
	Phone      string `json:"phone" form:"phone" validate:"required,len=10,numeric"`
	Location   string `json:"location" form:"location" validate:"required,citystate"`
	CoverPic   string `json:"cover_pic" form:"cover_pic"`
	ProfilePic string `json:"profile_pic" form:"profile_pic"`
}

// SessionResponse is returned when a session is started
type SessionResponse struct {
	Token string      `json:"-"`
	User  *UserEntity `json:"user"`
}

// Profile is a user with their listings
type Profile struct {
	User   *UserEntity   `json:"user"`
	Trades []TradeDetail `json:"trades"`
}

// SplitLocation splits "City, State" on the first comma and trims both
// halves. ok is false when there is no comma.
func SplitLocation(location string) (city, state string, ok bool) {
	city, state, ok = strings.Cut(location, ",")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(city), strings.TrimSpace(state), true
}
