package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrUnsupportedKind is returned for a report type tag that has no
	// variant. It is detected before any drawing starts.
	ErrUnsupportedKind = errors.New("report type not supported")
	// ErrIncompleteRecord is returned when a record lacks its identity
	// number or has no name in either language.
	ErrIncompleteRecord = errors.New("leave record needs an identity number and a name")
)

// Kind selects the certificate variant.
type Kind string

const (
	KindCompanion Kind = "companion"
	KindSickLeave Kind = "sick"
)

// ParseKind maps the type tag used in report URLs to a Kind. "leave" is an
// alias of "sick".
func ParseKind(tag string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "companion":
		return KindCompanion, nil
	case "sick", "leave":
		return KindSickLeave, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, tag)
}

// Filename is the attachment name for a certificate. An empty leave code
// gives "<kind>_report.pdf".
func Filename(kind Kind, code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		code = "report"
	}
	prefix := "sick_leave"
	if kind == KindCompanion {
		prefix = "companion_leave"
	}
	return prefix + "_" + code + ".pdf"
}

// Hospital is the issuing facility as printed in the footer.
type Hospital struct {
	NameAr        string
	NameEn        string
	Logo          string
	LicenseNumber string
}

// Nationality is the optional nationality pair of a record.
type Nationality struct {
	NameAr string
	NameEn string
}

// Doctor is the referenced practitioner row. The practitioner fields on
// Record take precedence since they are a snapshot taken at issue time.
type Doctor struct {
	NameAr      string
	NameEn      string
	SpecialtyAr string
	SpecialtyEn string
}

// Record is the composite leave record a certificate is rendered from.
// Callers assemble it per request from the stored rows.
type Record struct {
	Code           string
	IdentityNumber string
	NameAr         string
	NameEn         string

	DateFrom time.Time
	DateTo   time.Time
	// DayCount is printed as stored and is not derived from the dates.
	DayCount int
	TimeFrom string
	TimeTo   string

	Relation   string
	Employer   string
	EmployerEn string

	DoctorNameAr      string
	DoctorNameEn      string
	DoctorSpecialtyAr string
	DoctorSpecialtyEn string

	// Hijri dates are precomputed when the record is written and printed
	// verbatim.
	HijriAdmission string
	HijriDischarge string

	// IssueDate defaults to the generation time when zero.
	IssueDate time.Time
	LeaveType string

	Hospital    *Hospital
	Doctor      *Doctor
	Nationality *Nationality
}

// Validate checks the fields a certificate cannot be printed without.
func (r *Record) Validate() error {
	if r == nil || strings.TrimSpace(r.IdentityNumber) == "" {
		return ErrIncompleteRecord
	}
	if strings.TrimSpace(r.NameAr) == "" && strings.TrimSpace(r.NameEn) == "" {
		return ErrIncompleteRecord
	}
	return nil
}

func (r *Record) practitioner() (en, ar string) {
	en, ar = r.DoctorNameEn, r.DoctorNameAr
	if r.Doctor != nil {
		if en == "" {
			en = r.Doctor.NameEn
		}
		if ar == "" {
			ar = r.Doctor.NameAr
		}
	}
	return en, ar
}

func (r *Record) position() (en, ar string) {
	en, ar = r.DoctorSpecialtyEn, r.DoctorSpecialtyAr
	if r.Doctor != nil {
		if en == "" {
			en = r.Doctor.SpecialtyEn
		}
		if ar == "" {
			ar = r.Doctor.SpecialtyAr
		}
	}
	return en, ar
}

func (r *Record) employer() string {
	if r.EmployerEn != "" {
		return r.EmployerEn
	}
	return r.Employer
}

// Pair is a bilingual display value.
type Pair struct {
	En string
	Ar string
}

var relations = map[string]Pair{
	"father":   {"Father", "أب"},
	"mother":   {"Mother", "أم"},
	"son":      {"Son", "ابن"},
	"daughter": {"Daughter", "ابنة"},
	"husband":  {"Husband", "زوج"},
	"wife":     {"Wife", "زوجة"},
	"brother":  {"Brother", "أخ"},
	"sister":   {"Sister", "أخت"},
}

// RelationLabel maps a stored relation to its bilingual label. Unknown
// values are printed as given in both columns; empty gives "-".
func RelationLabel(relation string) Pair {
	if p, ok := relations[strings.ToLower(strings.TrimSpace(relation))]; ok {
		return p
	}
	if strings.TrimSpace(relation) == "" {
		return Pair{"-", "-"}
	}
	return Pair{relation, relation}
}

// ParseDayCount reads a stored day count leniently. Anything that is not a
// non-negative integer counts as zero.
func ParseDayCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
