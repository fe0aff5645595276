package httptransport

import (
	"fmt"
	"net/http"
	"time"

	"job-assignment-service/internal/auth"
	"job-assignment-service/internal/entity"
	"job-assignment-service/internal/service"
)

type registerDTO struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	FirstName   string `json:"first_name" validate:"required,min=2,max=100"`
	LastName    string `json:"last_name" validate:"required,min=2,max=100"`
	City        string `json:"city" validate:"required,min=2,max=100"`
	Pincode     string `json:"pincode" validate:"required,pincode"`
}

type phoneDTO struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
}

type verifyOTPDTO struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
}

type partnerResp struct {
	Message string          `json:"message"`
	Partner *entity.Partner `json:"partner"`
}

type otpSentResp struct {
	Message     string `json:"message"`
	PhoneNumber string `json:"phone_number"`
}

type tokenResp struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresAt   time.Time       `json:"expires_at"`
	Partner     *entity.Partner `json:"partner"`
}

// Register godoc
// @Summary Register a partner
// @Description Creates an unverified partner. The phone number is normalised to 91XXXXXXXXXX.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body registerDTO true "partner details"
// @Success 201 {object} partnerResp
// @Failure 400 {object} apiError
// @Failure 500 {object} apiError
// @Router /api/v1/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto registerDTO
	if !h.decode(w, r, &dto) {
		return
	}

	p, err := h.partners.Register(r.Context(), service.RegisterRequest{
		PhoneNumber: dto.PhoneNumber,
		FirstName:   dto.FirstName,
		LastName:    dto.LastName,
		City:        dto.City,
		Pincode:     dto.Pincode,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, partnerResp{Message: "Partner registered successfully", Partner: p})
}

// Login godoc
// @Summary Send a login OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param request body phoneDTO true "registered phone number"
// @Success 200 {object} otpSentResp
// @Failure 400 {object} apiError
// @Failure 404 {object} apiError
// @Failure 500 {object} apiError
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	h.sendOTP(w, r, "OTP sent successfully to your phone number")
}

// ResendOTP godoc
// @Summary Resend the login OTP
// @Description Issues a fresh code; the previous one stops working.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body phoneDTO true "registered phone number"
// @Success 200 {object} otpSentResp
// @Failure 400 {object} apiError
// @Failure 404 {object} apiError
// @Failure 500 {object} apiError
// @Router /api/v1/auth/resend-otp [post]
func (h *Handler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	h.sendOTP(w, r, "OTP resent successfully")
}

func (h *Handler) sendOTP(w http.ResponseWriter, r *http.Request, msg string) {
	var dto phoneDTO
	if !h.decode(w, r, &dto) {
		return
	}

	phone, err := h.partners.SendOTP(r.Context(), dto.PhoneNumber)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, otpSentResp{Message: msg, PhoneNumber: phone})
}

// VerifyOTP godoc
// @Summary Verify the OTP and open a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body verifyOTPDTO true "phone number and 6-digit code"
// @Success 200 {object} tokenResp
// @Failure 400 {object} apiError
// @Failure 404 {object} apiError
// @Failure 500 {object} apiError
// @Router /api/v1/auth/verify-otp [post]
func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var dto verifyOTPDTO
	if !h.decode(w, r, &dto) {
		return
	}

	sess, err := h.partners.VerifyOTP(r.Context(), dto.PhoneNumber, dto.OTP)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResp{
		AccessToken: sess.AccessToken,
		TokenType:   "bearer",
		ExpiresAt:   sess.ExpiresAt,
		Partner:     sess.Partner,
	})
}

// Logout godoc
// @Summary Log out
// @Description Clears the phone verification flag; the partner has to verify a new OTP.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} apiMessage
// @Failure 401 {object} apiError
// @Failure 500 {object} apiError
// @Router /api/v1/auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PartnerFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := h.partners.Logout(r.Context(), p.ID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, apiMessage{
		Message: fmt.Sprintf("Partner with phone number %s logged out successfully", p.PhoneNumber),
	})
}
