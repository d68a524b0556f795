package api

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer = "pawswap-api"
	tokenTTL    = 24 * time.Hour
)

// AuthService issues and validates API tokens
type AuthService struct {
	jwtSecret   []byte
	adminSecret []byte
	now         func() time.Time
}

// NewAuthService creates a new authentication service. An empty adminSecret
// disables token issuance.
func NewAuthService(jwtSecret []byte, adminSecret string) *AuthService {
	return &AuthService{
		jwtSecret:   jwtSecret,
		adminSecret: []byte(adminSecret),
		now:         time.Now,
	}
}

// Claims represents JWT claims. The subject is the caller's bech32 address.
type Claims struct {
	Address string `json:"address"`
	jwt.RegisteredClaims
}

// handleIssueToken exchanges the admin secret for a token bound to an address
func (s *Server) handleIssueToken(c *gin.Context) {
	var req TokenRequest
	if err := ValidateAndBindJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Details: err.Error(),
		})
		return
	}

	if len(s.authService.adminSecret) == 0 {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error: "Token issuance is disabled",
			Code:  "AUTH_DISABLED",
		})
		return
	}

	if len(req.Secret) > MaxSecretLength ||
		subtle.ConstantTimeCompare([]byte(req.Secret), s.authService.adminSecret) != 1 {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "Invalid credentials",
		})
		return
	}

	addr, err := ValidateAddress(req.Address)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid address",
			Details: err.Error(),
		})
		return
	}

	token, expiresAt, err := s.authService.GenerateToken(addr.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to generate token",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		Token:     token,
		Address:   addr.String(),
		ExpiresAt: expiresAt,
	})
}

// GenerateToken generates a JWT token for an address
func (as *AuthService) GenerateToken(address string) (string, time.Time, error) {
	now := as.now()
	expirationTime := now.Add(tokenTTL)

	claims := &Claims{
		Address: address,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   address,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(as.jwtSecret)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expirationTime, nil
}

// ValidateToken validates a JWT token and returns the claims
func (as *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return as.jwtSecret, nil
	}, jwt.WithIssuer(tokenIssuer))

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
