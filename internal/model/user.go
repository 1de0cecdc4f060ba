package model

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin          Role = "admin"
	RoleProjectManager Role = "project manager"
	RoleDeveloper      Role = "developer"
	RoleSubmitter      Role = "submitter"
)

// Roles lists every role a user can hold, most privileged first.
var Roles = []Role{RoleAdmin, RoleProjectManager, RoleDeveloper, RoleSubmitter}

// ParseRole normalizes raw input ("Project Manager", " admin ") into a Role.
func ParseRole(raw string) (Role, error) {
	candidate := Role(strings.ToLower(strings.Join(strings.Fields(raw), " ")))
	for _, role := range Roles {
		if candidate == role {
			return role, nil
		}
	}
	return "", ErrInvalidRole
}

type User struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password"`
	Role         Role      `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updatedAt"`
}

// Identity is the user as seen by request handlers: no credential material.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

type UserList struct {
	Users []Identity `json:"users"`
}
