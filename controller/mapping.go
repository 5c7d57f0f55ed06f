package controller

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"medleave_backend/dateutil"
	"medleave_backend/model"
	"medleave_backend/report"

	"gorm.io/datatypes"
)

// Text accepts a JSON string or number. The frontend sends day counts and
// license numbers either way.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = Text(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

// RefID is a foreign key sent as a number, a numeric string or "". Zero
// clears the reference.
type RefID uint

func (r *RefID) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n = json.Number(strings.TrimSpace(s))
	}
	if n == "" {
		*r = 0
		return nil
	}
	v, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil {
		return err
	}
	*r = RefID(v)
	return nil
}

func (r *RefID) ptr() *uint {
	if r == nil || *r == 0 {
		return nil
	}
	v := uint(*r)
	return &v
}

// PatientPayload is the create and update body of a leave record. Nil
// fields were not sent.
type PatientPayload struct {
	GSLCode           *Text  `json:"inputgsl"`
	IdentityNumber    *Text  `json:"inputidentity"`
	NameAr            *Text  `json:"inputnamear"`
	NameEn            *Text  `json:"inputnameen"`
	DateFrom          *Text  `json:"inputdatefrom"`
	DateTo            *Text  `json:"inputdateto"`
	DayCount          *Text  `json:"inputdaynum"`
	TimeFrom          *Text  `json:"inputtimefrom"`
	TimeTo            *Text  `json:"inputtimeto"`
	Employer          *Text  `json:"inputemployer"`
	EmployerEn        *Text  `json:"inputemployeren"`
	Relation          *Text  `json:"inputrelation"`
	VisitType         *Text  `json:"inputvisittype"`
	NationalityID     *RefID `json:"nationalityId"`
	HospitalID        *RefID `json:"hospitalId"`
	DoctorID          *RefID `json:"doctorId"`
	DoctorNameAr      *Text  `json:"inputdoctorar"`
	DoctorNameEn      *Text  `json:"inputdoctoren"`
	DoctorSpecialtyAr *Text  `json:"inputworktypear"`
	DoctorSpecialtyEn *Text  `json:"inputworktypeen"`
	IssueDate         *Text  `json:"inputdatehin"`
	LeaveFilePath     *Text  `json:"inputLeaveFilePath"`
	PreventInquiry    *bool  `json:"inputPreventInquiry"`
	LeaveType         *Text  `json:"inputLeaveType"`
}

// PatientView is a leave record as the frontend reads it.
type PatientView struct {
	ID                 uint    `json:"_id"`
	GSLCode            string  `json:"inputgsl"`
	IdentityNumber     string  `json:"inputidentity"`
	NameAr             string  `json:"inputnamear"`
	NameEn             string  `json:"inputnameen"`
	DateFrom           string  `json:"inputdatefrom"`
	DateTo             string  `json:"inputdateto"`
	DayCount           string  `json:"inputdaynum"`
	TimeFrom           string  `json:"inputtimefrom"`
	TimeTo             string  `json:"inputtimeto"`
	Employer           string  `json:"inputemployer"`
	EmployerEn         string  `json:"inputemployeren"`
	Relation           string  `json:"inputrelation"`
	VisitType          string  `json:"inputvisittype"`
	NationalityID      *uint   `json:"nationalityId"`
	HospitalID         *uint   `json:"hospitalId"`
	DoctorID           *uint   `json:"doctorId"`
	DoctorNameAr       string  `json:"inputdoctorar"`
	DoctorNameEn       string  `json:"inputdoctoren"`
	DoctorSpecialtyAr  string  `json:"inputworktypear"`
	DoctorSpecialtyEn  string  `json:"inputworktypeen"`
	IssueDate          string  `json:"inputdatehin"`
	LeaveFilePath      string  `json:"inputLeaveFilePath"`
	PreventInquiry     bool    `json:"inputPreventInquiry"`
	LeaveType          string  `json:"inputLeaveType"`
	HijriAdmissionDate *string `json:"hijri_admission_date"`
	HijriDischargeDate *string `json:"hijri_discharge_date"`
	UserID             *uint   `json:"userId,omitempty"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

func dateString(d *datatypes.Date) string {
	if d == nil {
		return ""
	}
	return dateutil.FormatISO(time.Time(*d))
}

func parseDate(s string) *datatypes.Date {
	t, ok := dateutil.Parse(s)
	if !ok {
		return nil
	}
	d := datatypes.Date(t)
	return &d
}

func dateTime(d *datatypes.Date) time.Time {
	if d == nil {
		return time.Time{}
	}
	return time.Time(*d)
}

// PatientToAPI maps a stored record to its API form.
func PatientToAPI(p model.Patient) PatientView {
	return PatientView{
		ID:                 p.ID,
		GSLCode:            p.GSLCode,
		IdentityNumber:     p.IdentityNumber,
		NameAr:             p.NameAr,
		NameEn:             p.NameEn,
		DateFrom:           dateString(p.DateFrom),
		DateTo:             dateString(p.DateTo),
		DayCount:           p.DayCount,
		TimeFrom:           p.TimeFrom,
		TimeTo:             p.TimeTo,
		Employer:           p.Employer,
		EmployerEn:         p.EmployerEn,
		Relation:           p.Relation,
		VisitType:          p.VisitType,
		NationalityID:      p.NationalityID,
		HospitalID:         p.HospitalID,
		DoctorID:           p.DoctorID,
		DoctorNameAr:       p.DoctorNameAr,
		DoctorNameEn:       p.DoctorNameEn,
		DoctorSpecialtyAr:  p.DoctorSpecialtyAr,
		DoctorSpecialtyEn:  p.DoctorSpecialtyEn,
		IssueDate:          dateString(p.IssueDate),
		LeaveFilePath:      p.LeaveFilePath,
		PreventInquiry:     p.PreventInquiry,
		LeaveType:          p.LeaveType,
		HijriAdmissionDate: p.HijriAdmissionDate,
		HijriDischargeDate: p.HijriDischargeDate,
		UserID:             p.UserID,
		CreatedAt:          p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          p.UpdatedAt.Format(time.RFC3339),
	}
}

func setText(dst *string, src *Text) bool {
	if src == nil {
		return false
	}
	*dst = string(*src)
	return true
}

// PatientFromAPI applies the sent fields of in to p and reports whether
// anything changed. Hijri dates follow the Gregorian dates they mirror.
func PatientFromAPI(in PatientPayload, p *model.Patient) bool {
	changed := false
	for _, f := range []struct {
		dst *string
		src *Text
	}{
		{&p.GSLCode, in.GSLCode},
		{&p.IdentityNumber, in.IdentityNumber},
		{&p.NameAr, in.NameAr},
		{&p.NameEn, in.NameEn},
		{&p.DayCount, in.DayCount},
		{&p.TimeFrom, in.TimeFrom},
		{&p.TimeTo, in.TimeTo},
		{&p.Employer, in.Employer},
		{&p.EmployerEn, in.EmployerEn},
		{&p.Relation, in.Relation},
		{&p.VisitType, in.VisitType},
		{&p.DoctorNameAr, in.DoctorNameAr},
		{&p.DoctorNameEn, in.DoctorNameEn},
		{&p.DoctorSpecialtyAr, in.DoctorSpecialtyAr},
		{&p.DoctorSpecialtyEn, in.DoctorSpecialtyEn},
		{&p.LeaveFilePath, in.LeaveFilePath},
		{&p.LeaveType, in.LeaveType},
	} {
		if setText(f.dst, f.src) {
			changed = true
		}
	}
	if in.DateFrom != nil {
		p.DateFrom = parseDate(string(*in.DateFrom))
		p.HijriAdmissionDate = dateutil.HijriPtr(string(*in.DateFrom))
		changed = true
	}
	if in.DateTo != nil {
		p.DateTo = parseDate(string(*in.DateTo))
		p.HijriDischargeDate = dateutil.HijriPtr(string(*in.DateTo))
		changed = true
	}
	if in.IssueDate != nil {
		p.IssueDate = parseDate(string(*in.IssueDate))
		changed = true
	}
	if in.NationalityID != nil {
		p.NationalityID = in.NationalityID.ptr()
		changed = true
	}
	if in.HospitalID != nil {
		p.HospitalID = in.HospitalID.ptr()
		changed = true
	}
	if in.DoctorID != nil {
		p.DoctorID = in.DoctorID.ptr()
		changed = true
	}
	if in.PreventInquiry != nil {
		p.PreventInquiry = *in.PreventInquiry
		changed = true
	}
	return changed
}

// ToRecord assembles the certificate input from a record and its preloaded
// references.
func ToRecord(p model.Patient) *report.Record {
	rec := &report.Record{
		Code:              p.GSLCode,
		IdentityNumber:    p.IdentityNumber,
		NameAr:            p.NameAr,
		NameEn:            p.NameEn,
		DateFrom:          dateTime(p.DateFrom),
		DateTo:            dateTime(p.DateTo),
		DayCount:          report.ParseDayCount(p.DayCount),
		TimeFrom:          p.TimeFrom,
		TimeTo:            p.TimeTo,
		Relation:          p.Relation,
		Employer:          p.Employer,
		EmployerEn:        p.EmployerEn,
		DoctorNameAr:      p.DoctorNameAr,
		DoctorNameEn:      p.DoctorNameEn,
		DoctorSpecialtyAr: p.DoctorSpecialtyAr,
		DoctorSpecialtyEn: p.DoctorSpecialtyEn,
		IssueDate:         dateTime(p.IssueDate),
		LeaveType:         p.LeaveType,
	}
	if p.HijriAdmissionDate != nil {
		rec.HijriAdmission = *p.HijriAdmissionDate
	}
	if p.HijriDischargeDate != nil {
		rec.HijriDischarge = *p.HijriDischargeDate
	}
	if h := p.Hospital; h != nil {
		rec.Hospital = &report.Hospital{NameAr: h.NameAr, NameEn: h.NameEn, Logo: h.Logo, LicenseNumber: h.LicenseNumber}
	}
	if d := p.Doctor; d != nil {
		rec.Doctor = &report.Doctor{NameAr: d.NameAr, NameEn: d.NameEn, SpecialtyAr: d.SpecialtyAr, SpecialtyEn: d.SpecialtyEn}
	}
	if n := p.Nationality; n != nil {
		rec.Nationality = &report.Nationality{NameAr: n.NameAr, NameEn: n.NameEn}
	}
	return rec
}

// DoctorPayload is the create and update body of a doctor.
type DoctorPayload struct {
	NameAr        *Text  `json:"input_doctor_name_ar"`
	NameEn        *Text  `json:"input_doctor_name_En"`
	SpecialtyAr   *Text  `json:"input_doctor_type_ar"`
	SpecialtyEn   *Text  `json:"input_doctor_type_En"`
	DoctorGroupID *Text  `json:"input_doctor_num"`
	HospitalID    *RefID `json:"hospitalId"`
}

type DoctorView struct {
	ID            uint   `json:"_id"`
	NameAr        string `json:"input_doctor_name_ar"`
	NameEn        string `json:"input_doctor_name_En"`
	SpecialtyAr   string `json:"input_doctor_type_ar"`
	SpecialtyEn   string `json:"input_doctor_type_En"`
	DoctorGroupID string `json:"input_doctor_num"`
	HospitalID    *uint  `json:"hospitalId"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

func DoctorToAPI(d model.Doctor) DoctorView {
	return DoctorView{
		ID:            d.ID,
		NameAr:        d.NameAr,
		NameEn:        d.NameEn,
		SpecialtyAr:   d.SpecialtyAr,
		SpecialtyEn:   d.SpecialtyEn,
		DoctorGroupID: d.DoctorGroupID,
		HospitalID:    d.HospitalID,
		CreatedAt:     d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     d.UpdatedAt.Format(time.RFC3339),
	}
}

func DoctorFromAPI(in DoctorPayload, d *model.Doctor) bool {
	changed := false
	for _, f := range []struct {
		dst *string
		src *Text
	}{
		{&d.NameAr, in.NameAr},
		{&d.NameEn, in.NameEn},
		{&d.SpecialtyAr, in.SpecialtyAr},
		{&d.SpecialtyEn, in.SpecialtyEn},
		{&d.DoctorGroupID, in.DoctorGroupID},
	} {
		if setText(f.dst, f.src) {
			changed = true
		}
	}
	if in.HospitalID != nil {
		d.HospitalID = in.HospitalID.ptr()
		changed = true
	}
	return changed
}

// HospitalView is a hospital as the frontend reads it. Hospitals are
// written as multipart forms with the same field names.
type HospitalView struct {
	ID            uint   `json:"_id"`
	Type          string `json:"input_central_type"`
	NameAr        string `json:"input_central_name_ar"`
	NameEn        string `json:"input_central_name_en"`
	Logo          string `json:"input_central_logo"`
	City          string `json:"input_city"`
	Region        string `json:"input_region"`
	LicenseNumber string `json:"input_central_license_num"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

func HospitalToAPI(h model.Hospital) HospitalView {
	return HospitalView{
		ID:            h.ID,
		Type:          h.Type,
		NameAr:        h.NameAr,
		NameEn:        h.NameEn,
		Logo:          h.Logo,
		City:          h.City,
		Region:        h.Region,
		LicenseNumber: h.LicenseNumber,
		CreatedAt:     h.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     h.UpdatedAt.Format(time.RFC3339),
	}
}

type NationalityPayload struct {
	NameAr string `json:"input_national_ar" form:"input_national_ar" validate:"required"`
	NameEn string `json:"input_national_en" form:"input_national_en"`
}

type NationalityView struct {
	ID     uint   `json:"_id"`
	NameAr string `json:"input_national_ar"`
	NameEn string `json:"input_national_en"`
}

func NationalityToAPI(n model.Nationality) NationalityView {
	return NationalityView{ID: n.ID, NameAr: n.NameAr, NameEn: n.NameEn}
}
