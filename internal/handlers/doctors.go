package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"medflow-server/internal/middleware"
	"medflow-server/internal/models"
	"medflow-server/internal/repositories"
	"medflow-server/internal/utils"
)

// DoctorHandler handles doctor directory and profile requests.
type DoctorHandler struct {
	Store repositories.Store
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(store repositories.Store) *DoctorHandler {
	return &DoctorHandler{Store: store}
}

// GetDoctors handles listing doctors with pagination.
func (h *DoctorHandler) GetDoctors(c *gin.Context) {
	offset, limit := parsePagination(c)

	doctors, err := h.Store.Doctors().List(c.Request.Context(), offset, limit)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	utils.Success(c, "Doctors fetched successfully", sanitizeDoctors(doctors))
}

// GetDoctorsBySpecialization handles the doctor directory filter.
func (h *DoctorHandler) GetDoctorsBySpecialization(c *gin.Context) {
	specialization := c.Query("specialization")
	if specialization == "" {
		utils.BadRequest(c, "Query parameter 'specialization' is required")
		return
	}
	offset, limit := parsePagination(c)

	doctors, err := h.Store.Doctors().ListBySpecialization(c.Request.Context(), specialization, offset, limit)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	utils.Success(c, "Doctors fetched successfully", sanitizeDoctors(doctors))
}

// GetDoctorByID handles fetching a single doctor. Availability in the
// response is a snapshot read.
func (h *DoctorHandler) GetDoctorByID(c *gin.Context) {
	doctor, err := h.Store.Doctors().FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.NotFound(c, "Doctor not found")
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.Success(c, "Doctor fetched successfully", doctor.Sanitize())
}

// UpdateDoctorRequest represents the partial-update body for a doctor
// profile. Unset fields are left untouched.
type UpdateDoctorRequest struct {
	Title          *string    `json:"title"`
	FirstName      *string    `json:"firstName"`
	LastName       *string    `json:"lastName"`
	PhoneNumber    *string    `json:"phoneNumber"`
	DateOfBirth    *time.Time `json:"dateOfBirth"`
	Age            *int       `json:"age"`
	Gender         *string    `json:"gender"`
	Specialization *string    `json:"specialization"`
	AddressLine1   *string    `json:"addressLine1"`
	AddressLine2   *string    `json:"addressLine2"`
	City           *string    `json:"city"`
	State          *string    `json:"state"`
	ZipCode        *string    `json:"zipCode"`
	Country        *string    `json:"country"`
}

// UpdateDoctor handles a doctor updating their own profile.
func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	doctorID := c.Param("id")

	doctor, err := h.Store.Doctors().FindByID(c.Request.Context(), doctorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.NotFound(c, "Doctor not found")
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}

	identity, _ := middleware.GetIdentityFromContext(c)
	if !identity.IsDoctor(doctorID) {
		utils.Unauthorized(c, "Not authorized to make changes")
		return
	}

	var req UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if req.Title != nil {
		doctor.Title = *req.Title
	}
	if req.FirstName != nil {
		doctor.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		doctor.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		doctor.PhoneNumber = *req.PhoneNumber
	}
	if req.DateOfBirth != nil {
		doctor.DateOfBirth = req.DateOfBirth
	}
	if req.Age != nil {
		doctor.Age = *req.Age
	}
	if req.Gender != nil {
		doctor.Gender = *req.Gender
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.AddressLine1 != nil {
		doctor.AddressLine1 = *req.AddressLine1
	}
	if req.AddressLine2 != nil {
		doctor.AddressLine2 = *req.AddressLine2
	}
	if req.City != nil {
		doctor.City = *req.City
	}
	if req.State != nil {
		doctor.State = *req.State
	}
	if req.ZipCode != nil {
		doctor.ZipCode = *req.ZipCode
	}
	if req.Country != nil {
		doctor.Country = *req.Country
	}

	if err := h.Store.Doctors().Update(c.Request.Context(), doctor); err != nil {
		utils.InternalServerError(c, "Failed to update doctor: "+err.Error())
		return
	}

	utils.Success(c, "Doctor updated successfully", doctor.Sanitize())
}

// ChangeAvailability handles a doctor manually toggling their availability
// flag. Booking and cancellation flip the flag automatically; this endpoint
// covers walk-ins and off-duty periods.
func (h *DoctorHandler) ChangeAvailability(c *gin.Context) {
	doctorID := c.Param("id")

	doctor, err := h.Store.Doctors().FindByID(c.Request.Context(), doctorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.NotFound(c, "Doctor not found")
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}

	identity, _ := middleware.GetIdentityFromContext(c)
	if !identity.IsDoctor(doctorID) {
		utils.Unauthorized(c, "Not authorized to make changes")
		return
	}

	doctor.IsAvailable = !doctor.IsAvailable
	if err := h.Store.Doctors().Update(c.Request.Context(), doctor); err != nil {
		utils.InternalServerError(c, "Failed to update availability: "+err.Error())
		return
	}

	utils.Success(c, "Availability updated successfully", doctor.Sanitize())
}

// DeleteDoctor handles a doctor deleting their own account.
func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	doctorID := c.Param("id")

	if _, err := h.Store.Doctors().FindByID(c.Request.Context(), doctorID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.NotFound(c, "Doctor not found")
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}

	identity, _ := middleware.GetIdentityFromContext(c)
	if !identity.IsDoctor(doctorID) {
		utils.Unauthorized(c, "Not authorized to make changes")
		return
	}

	if err := h.Store.Doctors().Delete(c.Request.Context(), doctorID); err != nil {
		utils.InternalServerError(c, "Failed to delete doctor: "+err.Error())
		return
	}

	utils.Success(c, "Deleted successfully", nil)
}

func sanitizeDoctors(doctors []models.Doctor) []models.DoctorSanitized {
	sanitized := make([]models.DoctorSanitized, 0, len(doctors))
	for i := range doctors {
		sanitized = append(sanitized, doctors[i].Sanitize())
	}
	return sanitized
}
