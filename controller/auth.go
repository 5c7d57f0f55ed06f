package controller

import (
	"errors"
	"time"

	"medleave_backend/middleware"
	"medleave_backend/model"
	"medleave_backend/model/response"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Login checks a username and password and returns a bearer token.
func Login(c *fiber.Ctx) error {
	type LoginRequest struct {
		Username string `json:"username" form:"username" validate:"required"`
		Password string `json:"password" form:"password" validate:"required"`
	}

	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	var user model.User
	result := middleware.DBConn.Where("username = ?", req.Username).First(&user)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fail(c, fiber.StatusUnauthorized, "Invalid credentials")
	} else if result.Error != nil {
		return dbError(c, result.Error, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return fail(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if !user.IsActive {
		return fail(c, fiber.StatusForbidden, "Your account is disabled")
	}

	token, err := middleware.GenerateJWT(user.ID, user.Username, user.Role)
	if err != nil {
		middleware.Log().Error().Err(err).Msg("sign token")
		return fail(c, fiber.StatusInternalServerError, "Error generating token")
	}

	return c.JSON(response.ResponseModel{
		RetCode: "200",
		Message: "Login successful",
		Data: fiber.Map{
			"token":    token,
			"role":     user.Role,
			"username": user.Username,
			"id":       user.ID,
		},
	})
}

// Logout invalidates the caller's token.
func Logout(c *fiber.Ctx) error {
	token, _ := c.Locals("token").(string)
	until := time.Now().Add(24 * time.Hour)
	if claims := middleware.CurrentUser(c); claims != nil && claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	middleware.BlacklistToken(token, until)
	return respond(c, fiber.StatusOK, "Logout successful", nil)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// UpdateProfile lets the caller change their username and password.
func UpdateProfile(c *fiber.Ctx) error {
	type ProfileRequest struct {
		Username string `json:"username" form:"username" validate:"required"`
		Password string `json:"password" form:"password"`
	}
	var req ProfileRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	claims := middleware.CurrentUser(c)

	updates := map[string]interface{}{"username": req.Username}
	if req.Password != "" {
		hash, err := hashPassword(req.Password)
		if err != nil {
			return fail(c, fiber.StatusInternalServerError, "Error hashing password")
		}
		updates["password"] = hash
	}
	res := middleware.DBConn.Model(&model.User{}).Where("id = ?", claims.ID).Updates(updates)
	if res.Error != nil {
		return dbError(c, res.Error, "User not found")
	}
	if res.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "User not found")
	}
	return respond(c, fiber.StatusOK, "Profile updated", fiber.Map{"username": req.Username})
}
