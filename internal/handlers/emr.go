package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"medflow-server/internal/middleware"
	"medflow-server/internal/services"
	"medflow-server/internal/utils"
)

// EMRHandler handles electronic medical record requests.
type EMRHandler struct {
	Records *services.EMRService
}

// NewEMRHandler creates a new EMRHandler.
func NewEMRHandler(records *services.EMRService) *EMRHandler {
	return &EMRHandler{Records: records}
}

// CreateEMRRequest represents the request body for creating a medical record.
type CreateEMRRequest struct {
	Title      string    `json:"title" binding:"required"`
	Summary    string    `json:"summary"`
	Details    string    `json:"details"`
	RecordDate time.Time `json:"recordDate"`
}

// CreateRecord handles a doctor writing a new clinical entry for a patient.
func (h *EMRHandler) CreateRecord(c *gin.Context) {
	var req CreateEMRRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	identity, _ := middleware.GetIdentityFromContext(c)

	record, err := h.Records.CreateRecord(c.Request.Context(), identity, c.Param("patientId"),
		services.CreateEMRInput{
			Title:      req.Title,
			Summary:    req.Summary,
			Details:    req.Details,
			RecordDate: req.RecordDate,
		})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Created(c, "Medical record created successfully", record)
}

// GetPatientRecords handles listing a patient's medical records.
func (h *EMRHandler) GetPatientRecords(c *gin.Context) {
	identity, _ := middleware.GetIdentityFromContext(c)

	records, err := h.Records.GetPatientRecords(c.Request.Context(), identity, c.Param("patientId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Medical records fetched successfully", records)
}

// GetRecord handles fetching one record scoped to a patient.
func (h *EMRHandler) GetRecord(c *gin.Context) {
	identity, _ := middleware.GetIdentityFromContext(c)

	record, err := h.Records.GetRecord(c.Request.Context(), identity, c.Param("patientId"), c.Param("emrId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Medical record fetched successfully", record)
}

// DeleteRecord handles a doctor deleting a record after passing the access gate.
func (h *EMRHandler) DeleteRecord(c *gin.Context) {
	identity, _ := middleware.GetIdentityFromContext(c)

	err := h.Records.DeleteRecord(c.Request.Context(), identity, c.Param("patientId"), c.Param("emrId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Medical record deleted successfully", nil)
}
