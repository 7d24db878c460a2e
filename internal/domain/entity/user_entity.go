package entity

import "time"

// UserType is the closed set of account roles.
type UserType string

const (
	UserBuyer   UserType = "BUYER"
	UserRealtor UserType = "REALTOR"
	UserAdmin   UserType = "ADMIN"
)

func (t UserType) Valid() bool {
	switch t {
	case UserBuyer, UserRealtor, UserAdmin:
		return true
	}
	return false
}

// User holds account identity. Passwords are stored as bcrypt hashes
// in Password.
type User struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Password  string
	UserType  UserType
	CreatedAt time.Time
	UpdatedAt time.Time
}
