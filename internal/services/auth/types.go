package auth

import (
	"errors"
	"time"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAccountNotActive   = errors.New("account is not active")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrRefreshNotFound    = errors.New("refresh token not found")
)

type SessionRecord struct {
	SID       string
	AccountID int64
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type AccessClaims struct {
	AccountID int64
	SID       string
	Role      string
	ExpiresAt time.Time
}

type Me struct {
	ID          int64
	DisplayName string
	Email       string
	Role        string
}

type AuthResult struct {
	AccessToken   string
	RefreshToken  string
	AccessExpires time.Time
	Me            Me
}
