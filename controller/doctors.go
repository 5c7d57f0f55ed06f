package controller

import (
	"medleave_backend/middleware"
	"medleave_backend/model"

	"github.com/gofiber/fiber/v2"
)

// GetDoctors lists the caller's doctors.
func GetDoctors(c *fiber.Ctx) error {
	var doctors []model.Doctor
	q := middleware.DBConn.Scopes(OwnedBy(middleware.CurrentUser(c))).Order("created_at desc, id desc")
	if hid := c.Query("hospitalId"); hid != "" {
		q = q.Where("hospital_id = ?", hid)
	}
	if err := q.Find(&doctors).Error; err != nil {
		return dbError(c, err, "Not found")
	}
	views := make([]DoctorView, 0, len(doctors))
	for _, d := range doctors {
		views = append(views, DoctorToAPI(d))
	}
	return respond(c, fiber.StatusOK, "Success", views)
}

// GetDoctor returns one doctor.
func GetDoctor(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, fiber.StatusNotFound, "Not found")
	}
	var d model.Doctor
	if err := middleware.DBConn.Scopes(OwnedBy(middleware.CurrentUser(c))).First(&d, id).Error; err != nil {
		return dbError(c, err, "Not found")
	}
	return respond(c, fiber.StatusOK, "Success", DoctorToAPI(d))
}

// CreateDoctor adds a doctor owned by the caller.
func CreateDoctor(c *fiber.Ctx) error {
	var in DoctorPayload
	if err := bind(c, &in); err != nil {
		return badRequest(c, err)
	}
	d := model.Doctor{UserID: ownerOf(middleware.CurrentUser(c))}
	DoctorFromAPI(in, &d)
	if d.NameAr == "" && d.NameEn == "" {
		return fail(c, fiber.StatusBadRequest, "Doctor name is required")
	}
	if err := middleware.DBConn.Create(&d).Error; err != nil {
		return dbError(c, err, "Not found")
	}
	return respond(c, fiber.StatusCreated, "Doctor created", DoctorToAPI(d))
}

// UpdateDoctor changes the sent fields of a doctor.
func UpdateDoctor(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, fiber.StatusNotFound, "Not found")
	}
	var in DoctorPayload
	if err := bind(c, &in); err != nil {
		return badRequest(c, err)
	}
	var d model.Doctor
	if err := middleware.DBConn.Scopes(OwnedBy(middleware.CurrentUser(c))).First(&d, id).Error; err != nil {
		return dbError(c, err, "Not found")
	}
	if !DoctorFromAPI(in, &d) {
		return fail(c, fiber.StatusBadRequest, "Nothing to update")
	}
	if err := middleware.DBConn.Omit("user_id", "created_at").Save(&d).Error; err != nil {
		return dbError(c, err, "Not found")
	}
	return respond(c, fiber.StatusOK, "Doctor updated", DoctorToAPI(d))
}

// DeleteDoctor removes a doctor.
func DeleteDoctor(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, fiber.StatusNotFound, "Not found")
	}
	res := middleware.DBConn.Scopes(OwnedBy(middleware.CurrentUser(c))).Delete(&model.Doctor{}, id)
	if res.Error != nil {
		return dbError(c, res.Error, "Not found")
	}
	if res.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "Not found")
	}
	return respond(c, fiber.StatusOK, "Doctor deleted", nil)
}
