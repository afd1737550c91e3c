package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/dreamstars/feedback-api/internal/models"
	"github.com/dreamstars/feedback-api/internal/store"
	appErrors "github.com/dreamstars/feedback-api/pkg/errors"
)

const adminUserID = "admin"

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	Secret            string
	TokenExpiry       time.Duration
	Issuer            string
	AdminEmail        string
	AdminPasswordHash []byte
}

// AuthService issues and validates access tokens for admins and parents.
type AuthService struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(st *store.Store, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{store: st, validator: validate, logger: logger, config: config}
}

// AdminLogin authenticates the configured administrator account.
func (s *AuthService) AdminLogin(ctx context.Context, req models.AdminLoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	if req.Email != s.config.AdminEmail {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword(s.config.AdminPasswordHash, []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
	}

	info := models.UserInfo{ID: adminUserID, Name: "Administrator", Role: models.RoleAdmin}
	return s.issueToken(info)
}

// ParentLogin authenticates a parent against the registered parents collection.
func (s *AuthService) ParentLogin(ctx context.Context, req models.ParentLoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	parent, ok := s.store.FindParentByCredentials(NormalizeStudentID(req.StudentID), req.Phone)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "student id or phone number is incorrect")
	}

	info := models.UserInfo{ID: parent.StudentID, Name: parent.ParentName, Role: models.RoleParent}
	return s.issueToken(info)
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

func (s *AuthService) issueToken(user models.UserInfo) (*models.LoginResponse, error) {
	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.config.TokenExpiry)
	claims := &models.JWTClaims{
		UserID:   user.ID,
		Role:     user.Role,
		FullName: user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign access token")
	}

	return &models.LoginResponse{
		AccessToken: signed,
		ExpiresIn:   int64(s.config.TokenExpiry.Seconds()),
		IssuedAt:    issuedAt,
		User:        user,
	}, nil
}

// HashPassword produces the bcrypt hash used for the admin credential check.
func HashPassword(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
}
