package report

import (
	"errors"
	"net/url"
	"testing"
)

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"companion": KindCompanion,
		"Companion": KindCompanion,
		"sick":      KindSickLeave,
		"leave":     KindSickLeave,
	}
	for in, want := range cases {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseKind("visit"); !errors.Is(err, ErrUnsupportedKind) {
		t.Errorf("unknown tag error = %v", err)
	}
}

func TestFilename(t *testing.T) {
	if got := Filename(KindSickLeave, ""); got != "sick_leave_report.pdf" {
		t.Errorf("got %q", got)
	}
	if got := Filename(KindCompanion, "PSL26000000001"); got != "companion_leave_PSL26000000001.pdf" {
		t.Errorf("got %q", got)
	}
}

func TestRelationLabel(t *testing.T) {
	if got := RelationLabel(" Father "); got != (Pair{"Father", "أب"}) {
		t.Errorf("father = %+v", got)
	}
	if got := RelationLabel("cousin"); got != (Pair{"cousin", "cousin"}) {
		t.Errorf("unknown = %+v", got)
	}
	if got := RelationLabel(""); got != (Pair{"-", "-"}) {
		t.Errorf("empty = %+v", got)
	}
}

func TestRecordFallbacks(t *testing.T) {
	r := &Record{IdentityNumber: "1", Doctor: &Doctor{NameEn: "Dr. Ali", SpecialtyAr: "باطنية"}, DoctorNameAr: "د. علي", Employer: "شركة"}
	if en, ar := r.practitioner(); en != "Dr. Ali" || ar != "د. علي" {
		t.Errorf("practitioner = %q %q", en, ar)
	}
	if _, ar := r.position(); ar != "باطنية" {
		t.Errorf("position ar = %q", ar)
	}
	if r.employer() != "شركة" {
		t.Errorf("employer = %q", r.employer())
	}
	r.EmployerEn = "ACME"
	if r.employer() != "ACME" {
		t.Errorf("employer = %q", r.employer())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		rec  *Record
		ok   bool
	}{
		{"english name", &Record{IdentityNumber: "1098765432", NameEn: "A"}, true},
		{"arabic name", &Record{IdentityNumber: "1098765432", NameAr: "أ"}, true},
		{"no identity", &Record{NameEn: "A", NameAr: "أ"}, false},
		{"blank identity", &Record{IdentityNumber: "  ", NameEn: "A"}, false},
		{"no name", &Record{IdentityNumber: "1098765432"}, false},
		{"nil", nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rec.Validate()
			if tc.ok && err != nil {
				t.Errorf("Validate() = %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrIncompleteRecord) {
				t.Errorf("Validate() = %v, want ErrIncompleteRecord", err)
			}
		})
	}
}

func TestParseDayCount(t *testing.T) {
	for in, want := range map[string]int{"3": 3, " 12 ": 12, "": 0, "-2": 0, "abc": 0} {
		if got := ParseDayCount(in); got != want {
			t.Errorf("ParseDayCount(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestWithLeaveCode(t *testing.T) {
	got := WithLeaveCode("https://www.seha.sa/#/inquiries/slenquiry", "GSL1")
	u, err := url.Parse(got)
	if err != nil {
		t.Fatal(err)
	}
	if u.Query().Get("code") != "GSL1" || u.Fragment != "/inquiries/slenquiry" {
		t.Errorf("got %q", got)
	}
	if WithLeaveCode("https://x.test/a", "") != "https://x.test/a" {
		t.Error("empty code should leave the url alone")
	}
}
