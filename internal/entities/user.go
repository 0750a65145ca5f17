package entities

import "time"

// User is a registered account. Login holds the value of the configured
// login field (email or username) and is unique across users.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"size:255" json:"name,omitempty"`
	Email        string    `gorm:"size:255" json:"email,omitempty"`
	Username     string    `gorm:"size:100" json:"username,omitempty"`
	Login        string    `gorm:"uniqueIndex;size:255;not null" json:"-"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// PublicUser is the subset of a user that may be returned to clients.
type PublicUser struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Token    string `json:"token,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		Name:     u.Name,
		Email:    u.Email,
		Username: u.Username,
	}
}
