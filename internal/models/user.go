package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserRole distinguishes the two dashboard audiences.
type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleParent UserRole = "PARENT"
)

// JWTClaims is the access token payload.
type JWTClaims struct {
	UserID   string   `json:"uid"`
	Role     UserRole `json:"role"`
	FullName string   `json:"name"`
	jwt.RegisteredClaims
}

// AdminLoginRequest is the admin credential payload.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ParentLoginRequest carries the student id / phone pair checked against the
// registered parents collection.
type ParentLoginRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
}

// LoginResponse returns the issued token and identity echo.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
	User        UserInfo  `json:"user"`
}

// UserInfo is the identity portion of a login response.
type UserInfo struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Role UserRole `json:"role"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	TotalCount int `json:"total_count"`
}
