package controller

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"strings"

	"medleave_backend/middleware"
	"medleave_backend/model"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	msgInquiryMissing  = "يرجى إدخال رمز الخدمة ورقم الهوية."
	msgInquiryNotFound = "خطأ في الاستعلام"
	msgInquiryFailed   = "حدث خطأ أثناء الاتصال بالنظام، يرجى المحاولة لاحقًا."
)

//go:embed templates/inquiry.html
var templateFS embed.FS

var inquiryPage = template.Must(template.ParseFS(templateFS, "templates/inquiry.html"))

// InquiryRequest is the public lookup form.
type InquiryRequest struct {
	ServiceCode string `json:"service_code" form:"service_code" validate:"required"`
	NationalID  string `json:"national_id" form:"national_id" validate:"required"`
}

// InquiryResult is what the public may see of a leave record.
type InquiryResult struct {
	Name            string `json:"name"`
	HospitalName    string `json:"hospital_name"`
	IssueDate       string `json:"issue_date"`
	DateFrom        string `json:"date_from"`
	DateTo          string `json:"date_to"`
	DayCount        string `json:"day_count"`
	DoctorName      string `json:"doctor_name"`
	DoctorSpecialty string `json:"doctor_specialty"`
}

type inquiryResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Data    *InquiryResult `json:"data,omitempty"`
}

type inquiryView struct {
	ServiceCode string
	NationalID  string
	Error       string
	Result      *InquiryResult
}

// lookupInquiry finds a record by leave code and identity number unless
// it was hidden from public lookup.
func lookupInquiry(code, identity string) (*InquiryResult, error) {
	var p model.Patient
	err := middleware.DBConn.Preload("Hospital").
		Where("gsl_code = ? AND identity_number = ?", code, identity).
		Where("prevent_inquiry = ? OR prevent_inquiry IS NULL", false).
		Order("id desc").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	res := &InquiryResult{
		Name:            p.NameAr,
		IssueDate:       dateString(p.IssueDate),
		DateFrom:        dateString(p.DateFrom),
		DateTo:          dateString(p.DateTo),
		DayCount:        p.DayCount,
		DoctorName:      p.DoctorNameAr,
		DoctorSpecialty: p.DoctorSpecialtyAr,
	}
	if p.Hospital != nil {
		res.HospitalName = p.Hospital.NameAr
	}
	return res, nil
}

func readInquiry(c *fiber.Ctx) InquiryRequest {
	var in InquiryRequest
	_ = c.BodyParser(&in)
	in.ServiceCode = strings.TrimSpace(in.ServiceCode)
	in.NationalID = strings.TrimSpace(in.NationalID)
	return in
}

func renderInquiry(c *fiber.Ctx, view inquiryView) error {
	var buf bytes.Buffer
	if err := inquiryPage.Execute(&buf, view); err != nil {
		middleware.Log().Error().Err(err).Msg("render inquiry page")
		return fiber.ErrInternalServerError
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// InquiryPage shows the empty lookup form.
func InquiryPage(c *fiber.Ctx) error {
	return renderInquiry(c, inquiryView{})
}

// InquirySubmit answers the form post with the result block or an error.
func InquirySubmit(c *fiber.Ctx) error {
	in := readInquiry(c)
	view := inquiryView{ServiceCode: in.ServiceCode, NationalID: in.NationalID}
	if err := validate.Struct(in); err != nil {
		view.Error = msgInquiryMissing
		return renderInquiry(c, view)
	}
	res, err := lookupInquiry(in.ServiceCode, in.NationalID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		view.Error = msgInquiryNotFound
	case err != nil:
		middleware.Log().Error().Err(err).Msg("inquiry lookup")
		view.Error = msgInquiryFailed
	default:
		view.Result = res
	}
	return renderInquiry(c, view)
}

// InquiryAPI is the JSON form of the public lookup.
func InquiryAPI(c *fiber.Ctx) error {
	in := readInquiry(c)
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(inquiryResponse{Message: msgInquiryMissing})
	}
	res, err := lookupInquiry(in.ServiceCode, in.NationalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(inquiryResponse{Message: msgInquiryNotFound})
	}
	if err != nil {
		middleware.Log().Error().Err(err).Msg("inquiry lookup")
		return c.Status(fiber.StatusInternalServerError).JSON(inquiryResponse{Message: "حدث خطأ أثناء الاتصال بالنظام"})
	}
	return c.JSON(inquiryResponse{Success: true, Data: res})
}
