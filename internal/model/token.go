package model

import "time"

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// RefreshToken is the persisted record backing a refresh token. Token is unique.
type RefreshToken struct {
	ID        string    `json:"id" bson:"recordId"`
	Token     string    `json:"-" bson:"refreshToken"`
	UserID    string    `json:"user_id" bson:"userId"`
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
	ExpiresAt time.Time `json:"expires_at" bson:"expiresAt"`
}

type TokenPair struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	TokenType    string   `json:"tokenType"`
	ExpiresIn    int64    `json:"expiresIn"`
	User         Identity `json:"user"`
}

type RefreshState string

const (
	RefreshPending  RefreshState = "pending"
	RefreshGranted  RefreshState = "granted"
	RefreshRejected RefreshState = "rejected"
)

// RefreshResult reports the terminal state of a refresh attempt. RefreshToken is
// only set when rotation replaced the presented token.
type RefreshResult struct {
	State        RefreshState `json:"state"`
	AccessToken  string       `json:"accessToken,omitempty"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	ExpiresIn    int64        `json:"expiresIn,omitempty"`
}
