package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"medflow-server/internal/middleware"
	"medflow-server/internal/models"
	"medflow-server/internal/services"
	"medflow-server/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	Appointments *services.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(appointments *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{Appointments: appointments}
}

// CreateAppointmentRequest represents the request body for creating an appointment.
type CreateAppointmentRequest struct {
	DoctorID        string    `json:"doctorId" binding:"required,uuid"`
	PatientID       string    `json:"patientId" binding:"required,uuid"`
	Reason          string    `json:"reason" binding:"required"`
	AppointmentDate time.Time `json:"appointmentDate" binding:"required"`
}

// CreateAppointment handles a patient booking a new appointment.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	identity, exists := middleware.GetIdentityFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	appointment, err := h.Appointments.Create(c.Request.Context(), identity, req.PatientID, req.DoctorID,
		services.CreateAppointmentInput{
			Reason:          req.Reason,
			AppointmentDate: req.AppointmentDate,
		})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Created(c, "Appointment created successfully", appointment)
}

// GetAppointments handles listing appointments with pagination.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	offset, limit := parsePagination(c)

	appointments, err := h.Appointments.List(c.Request.Context(), offset, limit)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentsForPatient handles fetching all appointments of one patient.
func (h *AppointmentHandler) GetAppointmentsForPatient(c *gin.Context) {
	appointments, err := h.Appointments.ListForPatient(c.Request.Context(), c.Param("patientId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID handles fetching a single appointment. Only the involved
// patient or doctor may view it.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointment, err := h.Appointments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	identity, _ := middleware.GetIdentityFromContext(c)
	if !identity.IsPatient(appointment.PatientID) && !identity.IsDoctor(appointment.DoctorID) {
		utils.Forbidden(c, "You are not authorized to view this appointment")
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// UpdateAppointmentRequest represents the partial-update body for an
// appointment. Unset fields are left untouched.
type UpdateAppointmentRequest struct {
	Reason          *string    `json:"reason"`
	AppointmentDate *time.Time `json:"appointmentDate"`
}

// UpdateAppointment handles the owning patient editing reason or date.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	identity, _ := middleware.GetIdentityFromContext(c)

	appointment, err := h.Appointments.Update(c.Request.Context(), identity, c.Param("id"),
		services.UpdateAppointmentInput{
			Reason:          req.Reason,
			AppointmentDate: req.AppointmentDate,
		})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Appointment updated successfully", appointment)
}

// CancelAppointment handles the owning patient cancelling a pending
// appointment. The doctor becomes available again.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	identity, _ := middleware.GetIdentityFromContext(c)

	appointment, err := h.Appointments.Cancel(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Appointment cancelled successfully", appointment)
}

// SwitchStatusRequest represents the request body for a doctor driving the
// appointment state machine.
type SwitchStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
}

// SwitchAppointmentStatus handles a doctor moving an appointment through the
// state machine.
func (h *AppointmentHandler) SwitchAppointmentStatus(c *gin.Context) {
	var req SwitchStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	identity, _ := middleware.GetIdentityFromContext(c)

	appointment, err := h.Appointments.SwitchStatus(c.Request.Context(), identity,
		c.Param("patientId"), c.Param("appointmentId"), req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Appointment status updated successfully", appointment)
}

// GetUncompletedAppointments returns the patient's PENDING and IN_PROGRESS
// appointments.
func (h *AppointmentHandler) GetUncompletedAppointments(c *gin.Context) {
	patientID := c.Param("patientId")

	identity, _ := middleware.GetIdentityFromContext(c)
	if !identity.IsPatient(patientID) && identity.Role != models.RoleDoctor {
		utils.Unauthorized(c, "You are not authorized to perform this action.")
		return
	}

	appointments, err := h.Appointments.GetUncompleted(c.Request.Context(), patientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetPendingAppointment returns the patient's pending appointment if one exists.
func (h *AppointmentHandler) GetPendingAppointment(c *gin.Context) {
	patientID := c.Param("patientId")

	identity, _ := middleware.GetIdentityFromContext(c)
	if !identity.IsPatient(patientID) && identity.Role != models.RoleDoctor {
		utils.Unauthorized(c, "You are not authorized to perform this action.")
		return
	}

	appointment, err := h.Appointments.CheckPending(c.Request.Context(), patientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if appointment == nil {
		utils.Success(c, "No pending appointment", nil)
		return
	}

	utils.Success(c, "Pending appointment fetched successfully", appointment)
}
