package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Patient represents a registered patient account
type Patient struct {
	BaseModel
	Title          string     `gorm:"size:20" json:"title"`
	FirstName      string     `gorm:"size:100;not null" json:"firstName"`
	LastName       string     `gorm:"size:100;not null" json:"lastName"`
	Email          string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password       string     `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	PhoneNumber    string     `gorm:"size:30" json:"phoneNumber"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	Age            int        `json:"age,omitempty"`
	Gender         string     `gorm:"size:20" json:"gender"`
	AddressLine1   string     `gorm:"size:255" json:"addressLine1"`
	AddressLine2   string     `gorm:"size:255" json:"addressLine2,omitempty"`
	City           string     `gorm:"size:100" json:"city"`
	State          string     `gorm:"size:100" json:"state"`
	ZipCode        string     `gorm:"size:20" json:"zipCode"`
	Country        string     `gorm:"size:100" json:"country"`
	HospitalCardID string     `gorm:"uniqueIndex;size:100;not null" json:"hospitalCardId"`
	IsActive       bool       `gorm:"default:true" json:"isActive"`

	// Relations (not always preloaded)
	Appointments []Appointment `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
	Records      []EMR         `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
}

// PatientSanitized represents the patient data that is safe to send in API responses.
type PatientSanitized struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email"`
	PhoneNumber    string     `json:"phoneNumber"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	Age            int        `json:"age,omitempty"`
	Gender         string     `json:"gender"`
	AddressLine1   string     `json:"addressLine1"`
	AddressLine2   string     `json:"addressLine2,omitempty"`
	City           string     `json:"city"`
	State          string     `json:"state"`
	ZipCode        string     `json:"zipCode"`
	Country        string     `json:"country"`
	HospitalCardID string     `json:"hospitalCardId"`
	IsActive       bool       `json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// SetPassword hashes a password and sets it on the patient
func (p *Patient) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the patient's hashed password
func (p *Patient) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(password))
	return err == nil
}

// Sanitize creates a PatientSanitized struct from a Patient model, excluding sensitive data.
func (p *Patient) Sanitize() PatientSanitized {
	return PatientSanitized{
		ID:             p.ID,
		Title:          p.Title,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		PhoneNumber:    p.PhoneNumber,
		DateOfBirth:    p.DateOfBirth,
		Age:            p.Age,
		Gender:         p.Gender,
		AddressLine1:   p.AddressLine1,
		AddressLine2:   p.AddressLine2,
		City:           p.City,
		State:          p.State,
		ZipCode:        p.ZipCode,
		Country:        p.Country,
		HospitalCardID: p.HospitalCardID,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
