package controller

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"

	"medleave_backend/middleware"
	"medleave_backend/model"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LeaveCode builds a leave code for a hospital type: GSL for government
// facilities, PSL otherwise, then "260" and eight random digits.
func LeaveCode(hospitalType string) (string, error) {
	prefix := "PSL"
	t := strings.ToLower(hospitalType)
	for _, marker := range []string{"government", "ministry", "gsl"} {
		if strings.Contains(t, marker) {
			prefix = "GSL"
			break
		}
	}
	digits := make([]byte, 8)
	for i := range digits {
		limit := int64(10)
		if i == 0 {
			limit = 9
		}
		n, err := rand.Int(rand.Reader, big.NewInt(limit))
		if err != nil {
			return "", err
		}
		d := byte(n.Int64())
		if i == 0 {
			d++
		}
		digits[i] = '0' + d
	}
	return prefix + "260" + string(digits), nil
}

func listPatients(c *fiber.Ctx, limit int) error {
	var patients []model.Patient
	q := middleware.DBConn.Scopes(OwnedBy(middleware.CurrentUser(c))).Order("created_at desc, id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&patients).Error; err != nil {
		return dbError(c, err, "Not found")
	}
	views := make([]PatientView, 0, len(patients))
	for _, p := range patients {
		views = append(views, PatientToAPI(p))
	}
	return respond(c, fiber.StatusOK, "Success", views)
}

// GetAllPatients lists the caller's leave records, newest first.
func GetAllPatients(c *fiber.Ctx) error {
	return listPatients(c, 0)
}

// GetLatestPatients lists the caller's 20 newest leave records.
func GetLatestPatients(c *fiber.Ctx) error {
	return listPatients(c, 20)
}

func findPatient(c *fiber.Ctx, id uint) (model.Patient, error) {
	var p model.Patient
	err := middleware.DBConn.Scopes(OwnedBy(middleware.CurrentUser(c))).First(&p, id).Error
	return p, err
}

// GetPatient returns one leave record.
func GetPatient(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, fiber.StatusNotFound, "Not found")
	}
	p, err := findPatient(c, id)
	if err != nil {
		return dbError(c, err, "Not found")
	}
	return respond(c, fiber.StatusOK, "Success", PatientToAPI(p))
}

// assignLeaveCode gives a record with a hospital and no code a fresh one.
func assignLeaveCode(p *model.Patient) error {
	if p.GSLCode != "" || p.HospitalID == nil {
		return nil
	}
	var h model.Hospital
	if err := middleware.DBConn.Select("id", "type").First(&h, *p.HospitalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	code, err := LeaveCode(h.Type)
	if err != nil {
		return err
	}
	p.GSLCode = code
	return nil
}

// CreatePatient stores a new leave record owned by the caller.
func CreatePatient(c *fiber.Ctx) error {
	claims := middleware.CurrentUser(c)
	var in PatientPayload
	if err := bind(c, &in); err != nil {
		return badRequest(c, err)
	}
	if !claims.IsAdmin() {
		in.PreventInquiry = nil
	}

	p := model.Patient{UserID: ownerOf(claims)}
	PatientFromAPI(in, &p)
	if err := assignLeaveCode(&p); err != nil {
		return dbError(c, err, "Hospital not found")
	}
	if err := middleware.DBConn.Create(&p).Error; err != nil {
		return dbError(c, err, "Not found")
	}
	return respond(c, fiber.StatusCreated, "Patient created", PatientToAPI(p))
}

// UpdatePatient changes only the fields that were sent. The owner never
// changes and only admins may toggle inquiry visibility.
func UpdatePatient(c *fiber.Ctx) error {
	claims := middleware.CurrentUser(c)
	id, valid := paramID(c)
	if !valid {
		return fail(c, fiber.StatusNotFound, "Not found")
	}
	var in PatientPayload
	if err := bind(c, &in); err != nil {
		return badRequest(c, err)
	}
	if !claims.IsAdmin() {
		in.PreventInquiry = nil
	}

	p, err := findPatient(c, id)
	if err != nil {
		return dbError(c, err, "Not found")
	}
	if !PatientFromAPI(in, &p) {
		return fail(c, fiber.StatusBadRequest, "Nothing to update")
	}
	if err := assignLeaveCode(&p); err != nil {
		return dbError(c, err, "Hospital not found")
	}
	if err := middleware.DBConn.Omit("user_id", "created_at").Save(&p).Error; err != nil {
		return dbError(c, err, "Not found")
	}
	return respond(c, fiber.StatusOK, "Patient updated", PatientToAPI(p))
}

// DeletePatient removes a leave record.
func DeletePatient(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, fiber.StatusNotFound, "Not found")
	}
	res := middleware.DBConn.Scopes(OwnedBy(middleware.CurrentUser(c))).Delete(&model.Patient{}, id)
	if res.Error != nil {
		return dbError(c, res.Error, "Not found")
	}
	if res.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "Not found")
	}
	return respond(c, fiber.StatusOK, "Patient deleted", nil)
}
