package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Doctor represents a registered doctor account
type Doctor struct {
	BaseModel
	Title          string     `gorm:"size:20" json:"title"`
	FirstName      string     `gorm:"size:100;not null" json:"firstName"`
	LastName       string     `gorm:"size:100;not null" json:"lastName"`
	Email          string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password       string     `gorm:"size:255;not null" json:"-"`
	PhoneNumber    string     `gorm:"size:30" json:"phoneNumber"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	Age            int        `json:"age,omitempty"`
	Gender         string     `gorm:"size:20" json:"gender"`
	Specialization string     `gorm:"size:100;not null" json:"specialization"`
	AddressLine1   string     `gorm:"size:255" json:"addressLine1"`
	AddressLine2   string     `gorm:"size:255" json:"addressLine2,omitempty"`
	City           string     `gorm:"size:100" json:"city"`
	State          string     `gorm:"size:100" json:"state"`
	ZipCode        string     `gorm:"size:20" json:"zipCode"`
	Country        string     `gorm:"size:100" json:"country"`
	HospitalID     string     `gorm:"uniqueIndex;size:100;not null" json:"hospitalId"`
	IsAvailable    bool       `gorm:"default:true" json:"isAvailable"`

	Appointments []Appointment `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"-"`
}

// DoctorSanitized represents the doctor data that is safe to send in API responses.
type DoctorSanitized struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email"`
	PhoneNumber    string     `json:"phoneNumber"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	Age            int        `json:"age,omitempty"`
	Gender         string     `json:"gender"`
	Specialization string     `json:"specialization"`
	AddressLine1   string     `json:"addressLine1"`
	AddressLine2   string     `json:"addressLine2,omitempty"`
	City           string     `json:"city"`
	State          string     `json:"state"`
	ZipCode        string     `json:"zipCode"`
	Country        string     `json:"country"`
	HospitalID     string     `json:"hospitalId"`
	IsAvailable    bool       `json:"isAvailable"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// SetPassword hashes a password and sets it on the doctor
func (d *Doctor) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	d.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the doctor's hashed password
func (d *Doctor) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(d.Password), []byte(password))
	return err == nil
}

// Sanitize creates a DoctorSanitized struct from a Doctor model, excluding sensitive data.
func (d *Doctor) Sanitize() DoctorSanitized {
	return DoctorSanitized{
		ID:             d.ID,
		Title:          d.Title,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Email:          d.Email,
		PhoneNumber:    d.PhoneNumber,
		DateOfBirth:    d.DateOfBirth,
		Age:            d.Age,
		Gender:         d.Gender,
		Specialization: d.Specialization,
		AddressLine1:   d.AddressLine1,
		AddressLine2:   d.AddressLine2,
		City:           d.City,
		State:          d.State,
		ZipCode:        d.ZipCode,
		Country:        d.Country,
		HospitalID:     d.HospitalID,
		IsAvailable:    d.IsAvailable,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
