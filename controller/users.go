package controller

import (
	"time"

	"medleave_backend/middleware"
	"medleave_backend/model"

	"github.com/gofiber/fiber/v2"
)

// UserView is an account with the number of leave records it owns.
type UserView struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	ReportsCount int64     `json:"reports_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// GetUsers lists every account.
func GetUsers(c *fiber.Ctx) error {
	var users []UserView
	err := middleware.DBConn.Model(&model.User{}).
		Select("users.id, users.username, users.role, users.is_active, users.created_at, " +
			"(SELECT COUNT(*) FROM patients WHERE patients.user_id = users.id) AS reports_count").
		Order("users.id").
		Scan(&users).Error
	if err != nil {
		return dbError(c, err, "Not found")
	}
	if users == nil {
		users = []UserView{}
	}
	return respond(c, fiber.StatusOK, "Success", users)
}

type userRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role" validate:"omitempty,oneof=admin user"`
	IsActive *bool  `json:"is_active" form:"is_active"`
}

// CreateUser adds an account. Role defaults to "user".
func CreateUser(c *fiber.Ctx) error {
	var req userRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	if req.Password == "" {
		return fail(c, fiber.StatusBadRequest, "Password is required")
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Error hashing password")
	}
	user := model.User{Username: req.Username, Password: hash, Role: req.Role, IsActive: true}
	if user.Role == "" {
		user.Role = "user"
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	var count int64
	if err := middleware.DBConn.Model(&model.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return dbError(c, err, "Not found")
	}
	if count > 0 {
		return fail(c, fiber.StatusConflict, "Username already exists")
	}
	if err := middleware.DBConn.Create(&user).Error; err != nil {
		return dbError(c, err, "Not found")
	}
	// The column default turns an explicit false into true on insert.
	if req.IsActive != nil && !*req.IsActive {
		if err := middleware.DBConn.Model(&user).Update("is_active", false).Error; err != nil {
			return dbError(c, err, "Not found")
		}
		user.IsActive = false
	}
	return respond(c, fiber.StatusCreated, "User created", user)
}

// UpdateUser edits an account; the password changes only when sent.
func UpdateUser(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, fiber.StatusNotFound, "User not found")
	}
	var req userRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	var user model.User
	if err := middleware.DBConn.First(&user, id).Error; err != nil {
		return dbError(c, err, "User not found")
	}

	updates := map[string]interface{}{"username": req.Username}
	if req.Role != "" {
		updates["role"] = req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Password != "" {
		hash, err := hashPassword(req.Password)
		if err != nil {
			return fail(c, fiber.StatusInternalServerError, "Error hashing password")
		}
		updates["password"] = hash
	}
	if err := middleware.DBConn.Model(&user).Updates(updates).Error; err != nil {
		return dbError(c, err, "User not found")
	}
	return respond(c, fiber.StatusOK, "User updated", user)
}

// DeleteUser removes an account. Admins cannot delete themselves.
func DeleteUser(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, fiber.StatusNotFound, "User not found")
	}
	if claims := middleware.CurrentUser(c); claims != nil && claims.ID == id {
		return fail(c, fiber.StatusBadRequest, "You cannot delete your own account")
	}
	res := middleware.DBConn.Delete(&model.User{}, id)
	if res.Error != nil {
		return dbError(c, res.Error, "User not found")
	}
	if res.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "User not found")
	}
	return respond(c, fiber.StatusOK, "User deleted", nil)
}
