package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"medflow-server/internal/config"
	"medflow-server/internal/middleware"
	"medflow-server/internal/models"
	"medflow-server/internal/repositories"
	"medflow-server/internal/services"
	"medflow-server/internal/utils"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	Identity *services.IdentityService
	Store    repositories.Store
	Cfg      *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(identity *services.IdentityService, store repositories.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Identity: identity, Store: store, Cfg: cfg}
}

// RegisterPatientRequest represents the request body for patient signup.
type RegisterPatientRequest struct {
	Title          string    `json:"title" binding:"required"`
	FirstName      string    `json:"firstName" binding:"required"`
	LastName       string    `json:"lastName" binding:"required"`
	Email          string    `json:"email" binding:"required,email"`
	Password       string    `json:"password" binding:"required,min=8"`
	PhoneNumber    string    `json:"phoneNumber" binding:"required"`
	DateOfBirth    time.Time `json:"dateOfBirth" binding:"required"`
	Age            int       `json:"age"`
	Gender         string    `json:"gender" binding:"required"`
	AddressLine1   string    `json:"addressLine1" binding:"required"`
	AddressLine2   string    `json:"addressLine2"`
	City           string    `json:"city" binding:"required"`
	State          string    `json:"state" binding:"required"`
	ZipCode        string    `json:"zipCode" binding:"required"`
	Country        string    `json:"country" binding:"required"`
	HospitalCardID string    `json:"hospitalCardId" binding:"required"`
}

// RegisterPatient handles patient signup.
func (h *AuthHandler) RegisterPatient(c *gin.Context) {
	var req RegisterPatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := utils.ValidatePassword(req.Password, req.FirstName, req.LastName); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	patient := models.Patient{
		Title:          req.Title,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		DateOfBirth:    &req.DateOfBirth,
		Age:            req.Age,
		Gender:         req.Gender,
		AddressLine1:   req.AddressLine1,
		AddressLine2:   req.AddressLine2,
		City:           req.City,
		State:          req.State,
		ZipCode:        req.ZipCode,
		Country:        req.Country,
		HospitalCardID: req.HospitalCardID,
		IsActive:       true,
	}

	if err := h.Identity.RegisterPatient(c.Request.Context(), &patient, req.Password); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Created(c, "Patient registered successfully", patient.Sanitize())
}

// RegisterDoctorRequest represents the request body for doctor signup.
type RegisterDoctorRequest struct {
	Title          string    `json:"title" binding:"required"`
	FirstName      string    `json:"firstName" binding:"required"`
	LastName       string    `json:"lastName" binding:"required"`
	Email          string    `json:"email" binding:"required,email"`
	Password       string    `json:"password" binding:"required,min=8"`
	PhoneNumber    string    `json:"phoneNumber" binding:"required"`
	DateOfBirth    time.Time `json:"dateOfBirth" binding:"required"`
	Age            int       `json:"age"`
	Gender         string    `json:"gender" binding:"required"`
	Specialization string    `json:"specialization" binding:"required"`
	AddressLine1   string    `json:"addressLine1" binding:"required"`
	AddressLine2   string    `json:"addressLine2"`
	City           string    `json:"city" binding:"required"`
	State          string    `json:"state" binding:"required"`
	ZipCode        string    `json:"zipCode" binding:"required"`
	Country        string    `json:"country" binding:"required"`
	HospitalID     string    `json:"hospitalId" binding:"required"`
}

// RegisterDoctor handles doctor signup.
func (h *AuthHandler) RegisterDoctor(c *gin.Context) {
	var req RegisterDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := utils.ValidatePassword(req.Password, req.FirstName, req.LastName); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	doctor := models.Doctor{
		Title:          req.Title,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		DateOfBirth:    &req.DateOfBirth,
		Age:            req.Age,
		Gender:         req.Gender,
		Specialization: req.Specialization,
		AddressLine1:   req.AddressLine1,
		AddressLine2:   req.AddressLine2,
		City:           req.City,
		State:          req.State,
		ZipCode:        req.ZipCode,
		Country:        req.Country,
		HospitalID:     req.HospitalID,
		IsAvailable:    true,
	}

	if err := h.Identity.RegisterDoctor(c.Request.Context(), &doctor, req.Password); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Created(c, "Doctor registered successfully", doctor.Sanitize())
}

// LoginRequest represents the request body for login. Credential is either an
// email address or a hospital-issued ID.
type LoginRequest struct {
	Credential string `json:"credential" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// LoginResponse represents the response body for successful login.
type LoginResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	Role         models.Role `json:"role"`
	User         interface{} `json:"user"`
}

// Login handles login for both patients and doctors.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	resolved, err := h.Identity.Authenticate(c.Request.Context(), req.Credential, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			utils.Unauthorized(c, "Incorrect credential or password")
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}

	accessToken, refreshTokenString, err := utils.GenerateTokens(resolved.Identity, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate tokens: "+err.Error())
		return
	}

	// Store refresh token in DB so it can be rotated and revoked
	refreshToken := models.RefreshToken{
		UserID:    resolved.Identity.ID,
		Role:      string(resolved.Identity.Role),
		Token:     refreshTokenString,
		ExpiresAt: time.Now().Add(time.Duration(h.Cfg.JWTRefreshExpirationHours) * time.Hour),
		IsRevoked: false,
	}
	if err := h.Store.RefreshTokens().Create(c.Request.Context(), &refreshToken); err != nil {
		utils.InternalServerError(c, "Failed to store refresh token: "+err.Error())
		return
	}

	var user interface{}
	if resolved.Patient != nil {
		user = resolved.Patient.Sanitize()
	} else {
		user = resolved.Doctor.Sanitize()
	}

	utils.Success(c, "Login successful", LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		Role:         resolved.Identity.Role,
		User:         user,
	})
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshTokenResponse represents the response body for successful token refresh.
type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken handles refreshing an access token using a refresh token,
// rotating the stored token in the process.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	claims, err := utils.ValidateToken(req.RefreshToken, h.Cfg.JWTRefreshSecret)
	if err != nil {
		utils.Unauthorized(c, "Invalid refresh token: "+err.Error())
		return
	}

	stored, err := h.Store.RefreshTokens().FindActive(c.Request.Context(), req.RefreshToken, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Unauthorized(c, "Refresh token not found, expired, or revoked")
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}

	// Rotation: revoke the old token before issuing a new pair
	if err := h.Store.RefreshTokens().Revoke(c.Request.Context(), stored); err != nil {
		utils.InternalServerError(c, "Failed to revoke refresh token: "+err.Error())
		return
	}

	identity := models.Identity{ID: claims.UserID, Role: claims.Role}
	newAccessToken, newRefreshTokenString, err := utils.GenerateTokens(identity, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate new tokens: "+err.Error())
		return
	}

	newRefreshToken := models.RefreshToken{
		UserID:    identity.ID,
		Role:      string(identity.Role),
		Token:     newRefreshTokenString,
		ExpiresAt: time.Now().Add(time.Duration(h.Cfg.JWTRefreshExpirationHours) * time.Hour),
		IsRevoked: false,
	}
	if err := h.Store.RefreshTokens().Create(c.Request.Context(), &newRefreshToken); err != nil {
		utils.InternalServerError(c, "Failed to store new refresh token: "+err.Error())
		return
	}

	utils.Success(c, "Access token refreshed successfully", RefreshTokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshTokenString,
	})
}

// LogoutRequest represents the request body for logout.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Logout revokes the presented refresh token.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	identity, _ := middleware.GetIdentityFromContext(c)
	stored, err := h.Store.RefreshTokens().FindActive(c.Request.Context(), req.RefreshToken, identity.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Already revoked or unknown, which is acceptable for logout.
			utils.Success(c, "Logout successful", nil)
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}

	if err := h.Store.RefreshTokens().Revoke(c.Request.Context(), stored); err != nil {
		utils.InternalServerError(c, "Failed to revoke refresh token: "+err.Error())
		return
	}

	utils.Success(c, "Logout successful. Refresh token has been invalidated.", nil)
}

// GetProfile handles fetching the currently authenticated account.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	identity, exists := middleware.GetIdentityFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	switch identity.Role {
	case models.RolePatient:
		patient, err := h.Store.Patients().FindByID(c.Request.Context(), identity.ID)
		if err != nil {
			respondServiceError(c, services.ErrPatientNotFound)
			return
		}
		utils.Success(c, "Profile fetched successfully", patient.Sanitize())
	case models.RoleDoctor:
		doctor, err := h.Store.Doctors().FindByID(c.Request.Context(), identity.ID)
		if err != nil {
			respondServiceError(c, services.ErrDoctorNotFound)
			return
		}
		utils.Success(c, "Profile fetched successfully", doctor.Sanitize())
	default:
		utils.Unauthorized(c, "Unknown role")
	}
}
