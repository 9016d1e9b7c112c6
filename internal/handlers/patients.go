package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"medflow-server/internal/middleware"
	"medflow-server/internal/models"
	"medflow-server/internal/repositories"
	"medflow-server/internal/utils"
)

// PatientHandler handles patient profile requests.
type PatientHandler struct {
	Store repositories.Store
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(store repositories.Store) *PatientHandler {
	return &PatientHandler{Store: store}
}

// parsePagination reads offset/limit query params with sane defaults.
func parsePagination(c *gin.Context) (int, int) {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 10
	}
	return offset, limit
}

// GetPatients handles listing patients with pagination.
func (h *PatientHandler) GetPatients(c *gin.Context) {
	offset, limit := parsePagination(c)

	patients, err := h.Store.Patients().List(c.Request.Context(), offset, limit)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}

	sanitized := make([]models.PatientSanitized, 0, len(patients))
	for i := range patients {
		sanitized = append(sanitized, patients[i].Sanitize())
	}
	utils.Success(c, "Patients fetched successfully", sanitized)
}

// GetPatientByID handles fetching a single patient.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	patient, err := h.Store.Patients().FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.NotFound(c, "Patient not found")
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.Success(c, "Patient fetched successfully", patient.Sanitize())
}

// UpdatePatientRequest represents the partial-update body for a patient
// profile. Unset fields are left untouched.
type UpdatePatientRequest struct {
	Title        *string    `json:"title"`
	FirstName    *string    `json:"firstName"`
	LastName     *string    `json:"lastName"`
	PhoneNumber  *string    `json:"phoneNumber"`
	DateOfBirth  *time.Time `json:"dateOfBirth"`
	Age          *int       `json:"age"`
	Gender       *string    `json:"gender"`
	AddressLine1 *string    `json:"addressLine1"`
	AddressLine2 *string    `json:"addressLine2"`
	City         *string    `json:"city"`
	State        *string    `json:"state"`
	ZipCode      *string    `json:"zipCode"`
	Country      *string    `json:"country"`
}

// UpdatePatient handles a patient updating their own profile.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	patientID := c.Param("id")

	patient, err := h.Store.Patients().FindByID(c.Request.Context(), patientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.NotFound(c, "Patient not found")
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}

	identity, _ := middleware.GetIdentityFromContext(c)
	if !identity.IsPatient(patientID) {
		utils.Unauthorized(c, "You are not authorized to perform this action.")
		return
	}

	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if req.Title != nil {
		patient.Title = *req.Title
	}
	if req.FirstName != nil {
		patient.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		patient.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		patient.PhoneNumber = *req.PhoneNumber
	}
	if req.DateOfBirth != nil {
		patient.DateOfBirth = req.DateOfBirth
	}
	if req.Age != nil {
		patient.Age = *req.Age
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.AddressLine1 != nil {
		patient.AddressLine1 = *req.AddressLine1
	}
	if req.AddressLine2 != nil {
		patient.AddressLine2 = *req.AddressLine2
	}
	if req.City != nil {
		patient.City = *req.City
	}
	if req.State != nil {
		patient.State = *req.State
	}
	if req.ZipCode != nil {
		patient.ZipCode = *req.ZipCode
	}
	if req.Country != nil {
		patient.Country = *req.Country
	}

	if err := h.Store.Patients().Update(c.Request.Context(), patient); err != nil {
		utils.InternalServerError(c, "Failed to update patient: "+err.Error())
		return
	}

	utils.Success(c, "Patient updated successfully", patient.Sanitize())
}

// DeletePatient handles a patient deleting their own account. Appointments
// are removed by the cascade rule.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	patientID := c.Param("id")

	if _, err := h.Store.Patients().FindByID(c.Request.Context(), patientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.NotFound(c, "Patient not found")
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}

	identity, _ := middleware.GetIdentityFromContext(c)
	if !identity.IsPatient(patientID) {
		utils.Unauthorized(c, "You are not authorized to perform this action.")
		return
	}

	if err := h.Store.Patients().Delete(c.Request.Context(), patientID); err != nil {
		utils.InternalServerError(c, "Failed to delete patient: "+err.Error())
		return
	}

	utils.Success(c, "Account deleted successfully", nil)
}
