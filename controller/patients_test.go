package controller_test

import (
	"net/http"
	"regexp"
	"strconv"
	"testing"

	"medleave_backend/controller"
	"medleave_backend/middleware"
	"medleave_backend/model"
)

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

type patientView struct {
	ID                 uint    `json:"_id"`
	GSLCode            string  `json:"inputgsl"`
	NameAr             string  `json:"inputnamear"`
	DateFrom           string  `json:"inputdatefrom"`
	DayCount           string  `json:"inputdaynum"`
	PreventInquiry     bool    `json:"inputPreventInquiry"`
	HijriAdmissionDate *string `json:"hijri_admission_date"`
	HijriDischargeDate *string `json:"hijri_discharge_date"`
	UserID             *uint   `json:"userId"`
}

func TestLeaveCode(t *testing.T) {
	pattern := regexp.MustCompile(`^(GSL|PSL)260[1-9][0-9]{7}$`)
	tests := []struct {
		hospitalType string
		prefix       string
	}{
		{"Government Hospital", "GSL"},
		{"MINISTRY of health", "GSL"},
		{"gsl", "GSL"},
		{"Private clinic", "PSL"},
		{"", "PSL"},
	}
	for _, tt := range tests {
		for i := 0; i < 20; i++ {
			code, err := controller.LeaveCode(tt.hospitalType)
			if err != nil {
				t.Fatal(err)
			}
			if !pattern.MatchString(code) || code[:3] != tt.prefix {
				t.Fatalf("LeaveCode(%q) = %q, want %s260 and 8 digits", tt.hospitalType, code, tt.prefix)
			}
		}
	}
}

func TestCreatePatientAssignsCodeAndHijri(t *testing.T) {
	env := newTestEnv(t)
	h := model.Hospital{UserID: &env.user.ID, Type: "Government", NameAr: "مستشفى"}
	if err := middleware.DBConn.Create(&h).Error; err != nil {
		t.Fatal(err)
	}

	resp := env.do(http.MethodPost, "/manger_data/patients", &env.user, map[string]interface{}{
		"inputnamear":         "محمد",
		"inputidentity":       1234567890,
		"inputdatefrom":       "2025-01-01",
		"inputdateto":         "2025-01-03",
		"inputdaynum":         3,
		"hospitalId":          itoa(h.ID),
		"inputPreventInquiry": true,
	})
	expectStatus(t, resp, http.StatusCreated)
	var p patientView
	decode(t, resp, &p)

	if len(p.GSLCode) != 14 || p.GSLCode[:6] != "GSL260" {
		t.Errorf("code = %q, want GSL260 prefix", p.GSLCode)
	}
	if p.DayCount != "3" {
		t.Errorf("day count = %q, want 3", p.DayCount)
	}
	if p.HijriAdmissionDate == nil || *p.HijriAdmissionDate != "01-07-1446" {
		t.Errorf("hijri admission = %v, want 01-07-1446", p.HijriAdmissionDate)
	}
	if p.HijriDischargeDate == nil || *p.HijriDischargeDate != "03-07-1446" {
		t.Errorf("hijri discharge = %v, want 03-07-1446", p.HijriDischargeDate)
	}
	if p.PreventInquiry {
		t.Error("non-admin was able to set prevent_inquiry")
	}
	if p.UserID == nil || *p.UserID != env.user.ID {
		t.Errorf("owner = %v, want %d", p.UserID, env.user.ID)
	}
}

func TestPatientOwnership(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(http.MethodPost, "/manger_data/patients", &env.user, map[string]string{"inputnamear": "a", "inputidentity": "1"})
	expectStatus(t, resp, http.StatusCreated)
	var p patientView
	decode(t, resp, &p)
	path := "/manger_data/patients/" + itoa(p.ID)

	expectStatus(t, env.do(http.MethodGet, path, &env.other, nil), http.StatusNotFound)
	expectStatus(t, env.do(http.MethodPut, path, &env.other, map[string]string{"inputnamear": "x"}), http.StatusNotFound)
	expectStatus(t, env.do(http.MethodDelete, path, &env.other, nil), http.StatusNotFound)
	expectStatus(t, env.do(http.MethodGet, path, &env.admin, nil), http.StatusOK)

	var list []patientView
	resp = env.do(http.MethodGet, "/manger_data/patientsall", &env.other, nil)
	expectStatus(t, resp, http.StatusOK)
	decode(t, resp, &list)
	if len(list) != 0 {
		t.Errorf("other tenant sees %d records", len(list))
	}
	resp = env.do(http.MethodGet, "/manger_data/user20", &env.admin, nil)
	decode(t, resp, &list)
	if len(list) != 1 {
		t.Errorf("admin sees %d records, want 1", len(list))
	}
}

func TestUpdatePatient(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(http.MethodPost, "/manger_data/patients", &env.user, map[string]string{
		"inputnamear": "a", "inputidentity": "1", "inputdatefrom": "2025-01-01",
	})
	var p patientView
	decode(t, resp, &p)
	path := "/manger_data/patients/" + itoa(p.ID)

	expectStatus(t, env.do(http.MethodPut, path, &env.user, map[string]string{}), http.StatusBadRequest)

	resp = env.do(http.MethodPut, path, &env.user, map[string]interface{}{
		"inputdatefrom": "2025-03-01", "inputPreventInquiry": true,
	})
	expectStatus(t, resp, http.StatusOK)
	var got patientView
	decode(t, resp, &got)
	if got.NameAr != "a" {
		t.Errorf("unsent field changed: name = %q", got.NameAr)
	}
	if got.DateFrom != "2025-03-01" || got.HijriAdmissionDate == nil || *got.HijriAdmissionDate != "01-09-1446" {
		t.Errorf("date = %q hijri = %v, want 2025-03-01 / 01-09-1446", got.DateFrom, got.HijriAdmissionDate)
	}
	if got.PreventInquiry {
		t.Error("non-admin toggled prevent_inquiry")
	}
	if got.UserID == nil || *got.UserID != env.user.ID {
		t.Errorf("owner changed to %v", got.UserID)
	}

	resp = env.do(http.MethodPut, path, &env.admin, map[string]bool{"inputPreventInquiry": true})
	decode(t, resp, &got)
	if !got.PreventInquiry {
		t.Error("admin could not set prevent_inquiry")
	}
	if got.UserID == nil || *got.UserID != env.user.ID {
		t.Errorf("admin update changed owner to %v", got.UserID)
	}

	expectStatus(t, env.do(http.MethodDelete, path, &env.user, nil), http.StatusOK)
	expectStatus(t, env.do(http.MethodDelete, path, &env.user, nil), http.StatusNotFound)
}
