package controller

import (
	"strings"

	"medleave_backend/middleware"
	"medleave_backend/model"

	"github.com/gofiber/fiber/v2"
)

// GetNationalities lists the shared nationality table.
func GetNationalities(c *fiber.Ctx) error {
	var rows []model.Nationality
	if err := middleware.DBConn.Order("name_ar asc").Find(&rows).Error; err != nil {
		return dbError(c, err, "Not found")
	}
	views := make([]NationalityView, 0, len(rows))
	for _, n := range rows {
		views = append(views, NationalityToAPI(n))
	}
	return respond(c, fiber.StatusOK, "Success", views)
}

func CreateNationality(c *fiber.Ctx) error {
	var in NationalityPayload
	in.NameAr = strings.TrimSpace(c.FormValue("input_national_ar"))
	in.NameEn = strings.TrimSpace(c.FormValue("input_national_en"))
	if in.NameAr == "" {
		if err := bind(c, &in); err != nil {
			return badRequest(c, err)
		}
	}
	n := model.Nationality{NameAr: strings.TrimSpace(in.NameAr), NameEn: strings.TrimSpace(in.NameEn)}
	if err := middleware.DBConn.Create(&n).Error; err != nil {
		return dbError(c, err, "Not found")
	}
	return respond(c, fiber.StatusCreated, "Nationality created", NationalityToAPI(n))
}

func DeleteNationality(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, fiber.StatusNotFound, "Not found")
	}
	res := middleware.DBConn.Delete(&model.Nationality{}, id)
	if res.Error != nil {
		return dbError(c, res.Error, "Not found")
	}
	if res.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "Not found")
	}
	return respond(c, fiber.StatusOK, "Nationality deleted", nil)
}
