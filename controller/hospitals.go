package controller

import (
	"errors"
	"strings"

	"medleave_backend/middleware"
	"medleave_backend/model"

	"github.com/gofiber/fiber/v2"
)

// GetHospitals lists the caller's hospitals.
func GetHospitals(c *fiber.Ctx) error {
	var hospitals []model.Hospital
	err := middleware.DBConn.Scopes(OwnedBy(middleware.CurrentUser(c))).
		Order("created_at desc, id desc").Find(&hospitals).Error
	if err != nil {
		return dbError(c, err, "Not found")
	}
	views := make([]HospitalView, 0, len(hospitals))
	for _, h := range hospitals {
		views = append(views, HospitalToAPI(h))
	}
	return respond(c, fiber.StatusOK, "Success", views)
}

// GetHospital returns one hospital.
func GetHospital(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, fiber.StatusNotFound, "Not found")
	}
	var h model.Hospital
	if err := middleware.DBConn.Scopes(OwnedBy(middleware.CurrentUser(c))).First(&h, id).Error; err != nil {
		return dbError(c, err, "Not found")
	}
	return respond(c, fiber.StatusOK, "Success", HospitalToAPI(h))
}

// applyHospitalForm copies the multipart fields that were sent onto h and
// stores a new logo when one was uploaded.
func applyHospitalForm(c *fiber.Ctx, h *model.Hospital) (bool, error) {
	changed := false
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"input_central_type", &h.Type},
		{"input_central_name_ar", &h.NameAr},
		{"input_central_name_en", &h.NameEn},
		{"input_city", &h.City},
		{"input_region", &h.Region},
		{"input_central_license_num", &h.LicenseNumber},
	} {
		if v := strings.TrimSpace(c.FormValue(f.key)); v != "" {
			*f.dst = v
			changed = true
		}
	}

	// Bodies without a multipart file keep the stored logo.
	if file, err := c.FormFile("input_central_logo"); err == nil {
		path, err := saveLogo(file, options().UploadDir)
		if err != nil {
			return changed, err
		}
		h.Logo = path
		changed = true
	}
	return changed, nil
}

// CreateHospital adds a hospital owned by the caller.
func CreateHospital(c *fiber.Ctx) error {
	h := model.Hospital{UserID: ownerOf(middleware.CurrentUser(c))}
	if _, err := applyHospitalForm(c, &h); err != nil {
		return logoError(c, err)
	}
	if h.NameAr == "" && h.NameEn == "" {
		return fail(c, fiber.StatusBadRequest, "Hospital name is required")
	}
	if err := middleware.DBConn.Create(&h).Error; err != nil {
		return dbError(c, err, "Not found")
	}
	return respond(c, fiber.StatusCreated, "Hospital created", HospitalToAPI(h))
}

// UpdateHospital changes the sent fields. Without a new file the logo is
// kept.
func UpdateHospital(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, fiber.StatusNotFound, "Not found")
	}
	var h model.Hospital
	if err := middleware.DBConn.Scopes(OwnedBy(middleware.CurrentUser(c))).First(&h, id).Error; err != nil {
		return dbError(c, err, "Not found")
	}
	changed, err := applyHospitalForm(c, &h)
	if err != nil {
		return logoError(c, err)
	}
	if !changed {
		return fail(c, fiber.StatusBadRequest, "Nothing to update")
	}
	if err := middleware.DBConn.Omit("user_id", "created_at").Save(&h).Error; err != nil {
		return dbError(c, err, "Not found")
	}
	return respond(c, fiber.StatusOK, "Hospital updated", HospitalToAPI(h))
}

func logoError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errNotImage) {
		return fail(c, fiber.StatusBadRequest, "Logo must be a PNG, JPEG, GIF or WebP image")
	}
	middleware.Log().Error().Err(err).Msg("store hospital logo")
	return fail(c, fiber.StatusInternalServerError, "Could not store logo")
}

// DeleteHospital removes a hospital.
func DeleteHospital(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, fiber.StatusNotFound, "Not found")
	}
	res := middleware.DBConn.Scopes(OwnedBy(middleware.CurrentUser(c))).Delete(&model.Hospital{}, id)
	if res.Error != nil {
		return dbError(c, res.Error, "Not found")
	}
	if res.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "Not found")
	}
	return respond(c, fiber.StatusOK, "Hospital deleted", nil)
}
