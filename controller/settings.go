package controller

import (
	"context"
	"errors"
	"strings"

	"medleave_backend/middleware"
	"medleave_backend/model"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settingRequest struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value"`
}

// GetSettings lists settings, newest first.
func GetSettings(c *fiber.Ctx) error {
	var rows []model.Setting
	if err := middleware.DBConn.Order("created_at desc, id desc").Find(&rows).Error; err != nil {
		return dbError(c, err, "Not found")
	}
	return respond(c, fiber.StatusOK, "Success", rows)
}

// SaveSetting creates the named setting or replaces its value.
func SaveSetting(c *fiber.Ctx) error {
	var in settingRequest
	if err := bind(c, &in); err != nil {
		return badRequest(c, err)
	}
	s := model.Setting{Name: strings.TrimSpace(in.Name), Value: strings.TrimSpace(in.Value)}
	err := middleware.DBConn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&s).Error
	if err != nil {
		return dbError(c, err, "Not found")
	}
	if err := middleware.DBConn.Where("name = ?", s.Name).First(&s).Error; err != nil {
		return dbError(c, err, "Not found")
	}
	return respond(c, fiber.StatusOK, "Setting saved", s)
}

func DeleteSetting(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, fiber.StatusNotFound, "Not found")
	}
	res := middleware.DBConn.Delete(&model.Setting{}, id)
	if res.Error != nil {
		return dbError(c, res.Error, "Not found")
	}
	if res.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "Not found")
	}
	return respond(c, fiber.StatusOK, "Setting deleted", nil)
}

// SettingsStore reads report configuration from the settings table. Names
// with no row fall back to Defaults.
type SettingsStore struct {
	DB       *gorm.DB
	Defaults map[string]string
}

// Get returns the value stored under name. A missing row is not an error.
func (s SettingsStore) Get(ctx context.Context, name string) (string, bool, error) {
	db := s.DB
	if db == nil {
		db = middleware.DBConn
	}
	if db == nil {
		return "", false, errors.New("settings: no database connection")
	}
	var row model.Setting
	err := db.WithContext(ctx).Where("name = ?", name).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		v, ok := s.Defaults[name]
		return v, ok && v != "", nil
	}
	if err != nil {
		return "", false, err
	}
	return row.Value, true, nil
}
