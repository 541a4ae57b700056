package models

import "time"

// User roles.
const (
	RoleUser     = "USER"
	RoleProvider = "PROVIDER"
	RoleAdmin    = "ADMIN"
)

// User is an account on the platform.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	PhoneNumber  string    `bson:"phone_number,omitempty" json:"phoneNumber,omitempty"`
	Role         string    `bson:"role" json:"role"`
	FCMToken     string    `bson:"fcm_token,omitempty" json:"-"`
	TokenHash    string    `bson:"token_hash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}
