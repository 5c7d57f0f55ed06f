package report

import (
	"fmt"

	"medleave_backend/dateutil"
)

// Header places the three header images.
type Header struct {
	SehaWidth float64
	// HeaderLogo is centered horizontally at HeaderY.
	HeaderY     float64
	HeaderWidth float64
	// FallbackY is where the kingdom name is printed when the header logo
	// is missing.
	FallbackY       float64
	DecorationWidth float64
}

// Titles are the two centered report titles below the header.
type Titles struct {
	Ar, En           string
	ArColor, EnColor Color
	ArSize, EnSize   float64
	ArY, EnY         float64
}

// Footer holds the footer offsets, relative to FooterY unless noted.
type Footer struct {
	// FooterY and BottomY are distances up from PageHeight.
	FooterY float64
	BottomY float64

	NoteEnY  float64
	LinkY    float64
	LinkSize float64
	// FixedLink makes the footer link point at the public inquiry site
	// rather than the configured inquiry URL.
	FixedLink bool

	NameEnY    float64
	LicenseY   float64
	LicenseSep string
}

// Variant is one certificate layout.
type Variant struct {
	Kind   Kind
	Title  string
	Header Header
	Titles Titles
	Table  Metrics
	TableY float64
	Rows   []RowSpec
	Footer Footer
	// Payload is the QR content for a record given the inquiry URL.
	Payload func(inquiry string, r *Record) string
}

var (
	stripe = Hex("#f7f7f7")
	accent = Hex("#2b5d88")
)

func baseMetrics() Metrics {
	return Metrics{
		X:                 PageMargin,
		Width:             760,
		LabelWidth:        160,
		Inset:             15,
		LabelSize:         14,
		ValueSize:         14,
		Padding:           15,
		MinRowHeight:      40,
		LabelColor:        accent,
		ValueColor:        Hex("#29396e"),
		BorderColor:       Hex("#e0e0e0"),
		DurationHeight:    45,
		DurationLabelSize: 13,
		DurationValueSize: 12,
		DurationFill:      Hex("#2c3e77"),
		DurationRaise:     2,
	}
}

func textValue(f func(r *Record) string) func(r *Record) Value {
	return func(r *Record) Value { return Value{Text: f(r)} }
}

func pairValue(f func(r *Record) Pair) func(r *Record) Value {
	return func(r *Record) Value { return Value{Pair: f(r)} }
}

func leaveIDRow() RowSpec {
	return RowSpec{LabelEn: "Leave ID", LabelAr: "رمز الإجازة",
		Value: textValue(func(r *Record) string { return r.Code })}
}

func durationRow() RowSpec {
	return RowSpec{
		LabelEn: "Leave Duration",
		LabelAr: "مدة الإجازة",
		Style:   StyleDuration,
		Value: textValue(func(r *Record) string {
			return DurationEn(r.DayCount, r.DateFrom, r.DateTo)
		}),
		Fragments: func(r *Record) []Fragment {
			return DurationFragments(r.DayCount, r.HijriAdmission, r.HijriDischarge)
		},
	}
}

func admissionRow(bg *Color) RowSpec {
	return RowSpec{LabelEn: "Admission Date", LabelAr: "تاريخ الدخول", Double: true, Background: bg,
		Value: pairValue(func(r *Record) Pair {
			return Pair{En: dateutil.FormatDMY(r.DateFrom), Ar: r.HijriAdmission}
		})}
}

func dischargeRow(bg *Color) RowSpec {
	return RowSpec{LabelEn: "Discharge Date", LabelAr: "تاريخ الخروج", Double: true, Background: bg,
		Value: pairValue(func(r *Record) Pair {
			return Pair{En: dateutil.FormatDMY(r.DateTo), Ar: r.HijriDischarge}
		})}
}

func issueRow() RowSpec {
	return RowSpec{LabelEn: "Issue Date", LabelAr: "تاريخ إصدار التقرير",
		Value: textValue(func(r *Record) string { return dateutil.FormatDMY(r.IssueDate) })}
}

func nameRow(en, ar string, bg *Color) RowSpec {
	return RowSpec{LabelEn: en, LabelAr: ar, Double: true, Background: bg,
		Value: pairValue(func(r *Record) Pair { return Pair{En: r.NameEn, Ar: r.NameAr} })}
}

func identityRow() RowSpec {
	return RowSpec{LabelEn: "National ID / Iqama", LabelAr: "رقم الهوية / الإقامة",
		Value: textValue(func(r *Record) string { return r.IdentityNumber })}
}

func nationalityRow(bg *Color) RowSpec {
	return RowSpec{LabelEn: "Nationality", LabelAr: "الجنسية", Double: true, Background: bg,
		Value: pairValue(func(r *Record) Pair {
			if r.Nationality == nil {
				return Pair{"-", "-"}
			}
			return Pair{En: r.Nationality.NameEn, Ar: r.Nationality.NameAr}
		})}
}

func relationRow() RowSpec {
	return RowSpec{LabelEn: "Relation", LabelAr: "صلة القرابة", Double: true,
		Value: pairValue(func(r *Record) Pair { return RelationLabel(r.Relation) })}
}

func employerRow() RowSpec {
	return RowSpec{LabelEn: "Employer", LabelAr: "جهة العمل",
		Value: textValue(func(r *Record) string { return r.employer() })}
}

func practitionerRow(bg *Color) RowSpec {
	return RowSpec{LabelEn: "Practitioner Name", LabelAr: "اسم الممارس", Double: true, Background: bg,
		Value: pairValue(func(r *Record) Pair {
			en, ar := r.practitioner()
			return Pair{En: en, Ar: ar}
		})}
}

func positionRow() RowSpec {
	return RowSpec{LabelEn: "Position", LabelAr: "المسمى الوظيفي", Double: true,
		Value: pairValue(func(r *Record) Pair {
			en, ar := r.position()
			return Pair{En: en, Ar: ar}
		})}
}

// SickLeave is the patient certificate. It has no relation row.
var SickLeave = Variant{
	Kind:  KindSickLeave,
	Title: "Sick Leave Report",
	Header: Header{
		SehaWidth:       150,
		HeaderY:         70,
		HeaderWidth:     180,
		FallbackY:       75,
		DecorationWidth: 170,
	},
	Titles: Titles{
		Ar: "تقرير إجازة مرضية", En: "Sick Leave Report",
		ArColor: Hex("#306db5"), EnColor: Hex("#2c3e77"),
		ArSize: 22, EnSize: 19,
		ArY: 165, EnY: 200,
	},
	Table:  baseMetrics(),
	TableY: 250,
	Rows: []RowSpec{
		leaveIDRow(),
		durationRow(),
		admissionRow(&stripe),
		dischargeRow(nil),
		issueRow(),
		nameRow("Name", "الاسم", &stripe),
		identityRow(),
		nationalityRow(&stripe),
		employerRow(),
		practitionerRow(&stripe),
		positionRow(),
	},
	Footer: Footer{
		FooterY:  400,
		BottomY:  150,
		NoteEnY:  160,
		LinkY:    185,
		LinkSize: 11,
		NameEnY:  145,
		LicenseY: 170,
	},
	Payload: func(inquiry string, _ *Record) string { return inquiry },
}

// Companion is the certificate issued to a patient's companion. The QR
// code carries the leave code so the inquiry page can prefill it.
var Companion = Variant{
	Kind:  KindCompanion,
	Title: "Companion Sick Leave Report",
	Header: Header{
		SehaWidth:       100,
		HeaderY:         40,
		HeaderWidth:     250,
		FallbackY:       75,
		DecorationWidth: 140,
	},
	Titles: Titles{
		Ar: "تقرير مرافقة مريض", En: "Companion Sick Leave Report",
		ArColor: accent, EnColor: accent,
		ArSize: 22, EnSize: 18,
		ArY: 160, EnY: 198,
	},
	Table:  companionMetrics(),
	TableY: 250,
	Rows: []RowSpec{
		leaveIDRow(),
		durationRow(),
		admissionRow(nil),
		dischargeRow(nil),
		issueRow(),
		nameRow("Companion Name", "اسم المرافق", nil),
		identityRow(),
		nationalityRow(nil),
		relationRow(),
		employerRow(),
		practitionerRow(nil),
		positionRow(),
	},
	Footer: Footer{
		FooterY:    350,
		BottomY:    90,
		NoteEnY:    150,
		LinkY:      180,
		LinkSize:   9,
		FixedLink:  true,
		NameEnY:    130,
		LicenseY:   150,
		LicenseSep: " : ",
	},
	Payload: func(inquiry string, r *Record) string { return WithLeaveCode(inquiry, r.Code) },
}

func companionMetrics() Metrics {
	m := baseMetrics()
	m.LabelSize, m.ValueSize = 12, 12
	m.Padding = 20
	m.LabelColor = accent
	m.ValueColor = Black
	m.DurationLabelSize, m.DurationValueSize = 12, 10
	m.DurationFill = Hex("#1f2f57")
	return m
}

// VariantFor returns the layout for kind.
func VariantFor(kind Kind) (Variant, error) {
	switch kind {
	case KindSickLeave:
		return SickLeave, nil
	case KindCompanion:
		return Companion, nil
	}
	return Variant{}, fmt.Errorf("%w: %q", ErrUnsupportedKind, string(kind))
}
