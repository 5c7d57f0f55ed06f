package middleware

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"medleave_backend/model/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RoleAdmin is the role allowed to manage users and settings and to see
// every tenant's records.
const RoleAdmin = "admin"

var (
	secretKey      []byte
	tokenTTL       = 12 * time.Hour
	tokenBlacklist = make(map[string]time.Time)
	mu             sync.Mutex
)

// Claims is the token payload.
type Claims struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the caller has the admin role.
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

// ConfigureAuth sets the signing key and token lifetime.
func ConfigureAuth(secret string, ttl time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	secretKey = []byte(secret)
	if ttl > 0 {
		tokenTTL = ttl
	}
}

func key() []byte {
	mu.Lock()
	defer mu.Unlock()
	return secretKey
}

// GenerateJWT signs a token for the given user.
func GenerateJWT(id uint, username, role string) (string, error) {
	mu.Lock()
	ttl := tokenTTL
	mu.Unlock()

	now := time.Now()
	claims := Claims{
		ID:       id,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key())
}

// VerifyJWT parses and validates a token.
func VerifyJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return key(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// BlacklistToken invalidates a token until it would have expired anyway.
func BlacklistToken(token string, until time.Time) {
	mu.Lock()
	defer mu.Unlock()
	now := time.Now()
	for t, exp := range tokenBlacklist {
		if now.After(exp) {
			delete(tokenBlacklist, t)
		}
	}
	tokenBlacklist[token] = until
}

// IsTokenBlacklisted checks if the JWT was logged out.
func IsTokenBlacklisted(token string) bool {
	mu.Lock()
	defer mu.Unlock()
	_, ok := tokenBlacklist[token]
	return ok
}

// BearerToken extracts the token from the Authorization header. The result
// is a copy and stays valid after the request.
func BearerToken(c *fiber.Ctx) string {
	h := utils.CopyString(c.Get(fiber.HeaderAuthorization))
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// JWTMiddleware checks the bearer token and stores its claims in locals.
func JWTMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := BearerToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(response.ResponseModel{
				RetCode: "401",
				Message: "Unauthorized: No token provided",
			})
		}

		if IsTokenBlacklisted(tokenString) {
			return c.Status(fiber.StatusForbidden).JSON(response.ResponseModel{
				RetCode: "403",
				Message: "Token has been invalidated",
			})
		}

		claims, err := VerifyJWT(tokenString)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(response.ResponseModel{
				RetCode: "403",
				Message: "Invalid token",
				Data:    err.Error(),
			})
		}

		c.Locals("user", claims)
		c.Locals("token", tokenString)
		return c.Next()
	}
}

// RequireAdmin rejects callers without the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CurrentUser(c).IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(response.ResponseModel{
				RetCode: "403",
				Message: "Admin access required",
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the claims stored by JWTMiddleware, or nil.
func CurrentUser(c *fiber.Ctx) *Claims {
	claims, _ := c.Locals("user").(*Claims)
	return claims
}
