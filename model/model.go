package model

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"size:20;default:user" json:"role"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Hospital struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        *uint  `gorm:"index"`
	Type          string `gorm:"size:100"`
	NameAr        string
	NameEn        string
	Logo          string
	City          string
	Region        string
	LicenseNumber string `gorm:"size:50"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Doctor struct {
	ID            uint  `gorm:"primaryKey"`
	UserID        *uint `gorm:"index"`
	HospitalID    *uint `gorm:"index"`
	NameAr        string
	NameEn        string
	SpecialtyAr   string
	SpecialtyEn   string
	DoctorGroupID string `gorm:"size:50"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Hospital *Hospital `gorm:"foreignKey:HospitalID"`
}

// Nationality rows are shared by every tenant.
type Nationality struct {
	ID        uint `gorm:"primaryKey"`
	NameAr    string
	NameEn    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Patient is one issued leave record.
type Patient struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         *uint  `gorm:"index"`
	GSLCode        string `gorm:"column:gsl_code;size:32;index"`
	IdentityNumber string `gorm:"size:32;index"`
	NameAr         string
	NameEn         string
	DateFrom       *datatypes.Date
	DateTo         *datatypes.Date
	DayCount       string `gorm:"size:10"`
	TimeFrom       string `gorm:"size:20"`
	TimeTo         string `gorm:"size:20"`
	Employer       string
	EmployerEn     string
	Relation       string `gorm:"size:50"`
	VisitType      string `gorm:"size:50"`
	NationalityID  *uint
	HospitalID     *uint
	DoctorID       *uint

	DoctorNameAr      string
	DoctorNameEn      string
	DoctorSpecialtyAr string
	DoctorSpecialtyEn string

	IssueDate          *datatypes.Date
	LeaveFilePath      string
	PreventInquiry     bool    `gorm:"default:false"`
	LeaveType          string  `gorm:"size:50"`
	HijriAdmissionDate *string `gorm:"size:20"`
	HijriDischargeDate *string `gorm:"size:20"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Nationality *Nationality `gorm:"foreignKey:NationalityID"`
	Hospital    *Hospital    `gorm:"foreignKey:HospitalID"`
	Doctor      *Doctor      `gorm:"foreignKey:DoctorID"`
}

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
