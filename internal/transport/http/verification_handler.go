package httptransport

import (
	"net/http"

	"job-assignment-service/internal/auth"
	"job-assignment-service/internal/entity"
	"job-assignment-service/internal/service"
)

type panDTO struct {
	PAN string `json:"pan" validate:"required,pan"`
}

type bankDTO struct {
	AccountNumber string `json:"account_number" validate:"required,min=9,max=18,numeric"`
	IFSC          string `json:"ifsc" validate:"required,ifsc"`
	FetchIFSC     bool   `json:"fetch_ifsc"`
}

type panResp struct {
	Message   string `json:"message"`
	PanNumber string `json:"pan_number"`
	Name      string `json:"name"`
}

type bankResp struct {
	Message           string `json:"message"`
	AccountNumber     string `json:"account_number"`
	IFSCCode          string `json:"ifsc_code"`
	AccountHolderName string `json:"account_holder_name"`
	AccountStatus     string `json:"account_status,omitempty"`
}

type panelAccessResp struct {
	HasFullAccess bool         `json:"has_full_access"`
	Message       string       `json:"message"`
	Jobs          []entity.Job `json:"jobs"`
}

type pendingAccessResp struct {
	HasFullAccess      bool                       `json:"has_full_access"`
	Message            string                     `json:"message"`
	VerificationStatus service.VerificationStatus `json:"verification_status"`
}

// VerifyPAN godoc
// @Summary Verify the partner's PAN
// @Tags verification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body panDTO true "PAN, e.g. ABCDE1234F"
// @Success 200 {object} panResp
// @Failure 400 {object} apiError
// @Failure 401 {object} apiError
// @Failure 403 {object} apiError
// @Failure 502 {object} apiError
// @Router /api/v1/verification/pan [post]
func (h *Handler) VerifyPAN(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PartnerFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var dto panDTO
	if !h.decode(w, r, &dto) {
		return
	}

	res, err := h.verifier.VerifyPAN(r.Context(), p, dto.PAN)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, panResp{Message: "PAN verified successfully", PanNumber: res.PanNumber, Name: res.Name})
}

// VerifyBank godoc
// @Summary Verify the partner's bank account
// @Tags verification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body bankDTO true "account number and IFSC"
// @Success 200 {object} bankResp
// @Failure 400 {object} apiError
// @Failure 401 {object} apiError
// @Failure 403 {object} apiError
// @Failure 502 {object} apiError
// @Router /api/v1/verification/bank [post]
func (h *Handler) VerifyBank(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PartnerFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var dto bankDTO
	if !h.decode(w, r, &dto) {
		return
	}

	res, err := h.verifier.VerifyBank(r.Context(), p, dto.AccountNumber, dto.IFSC, dto.FetchIFSC)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bankResp{
		Message:           "Bank account verified successfully",
		AccountNumber:     res.AccountNumber,
		IFSCCode:          res.IFSCCode,
		AccountHolderName: res.AccountHolderName,
		AccountStatus:     res.AccountStatus,
	})
}

// VerificationStatus godoc
// @Summary Current partner with verification details
// @Tags verification
// @Produce json
// @Security BearerAuth
// @Success 200 {object} entity.Partner
// @Failure 401 {object} apiError
// @Failure 403 {object} apiError
// @Router /api/v1/verification/status [get]
func (h *Handler) VerificationStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PartnerFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// PanelAccess godoc
// @Summary Panel access check
// @Description Fully verified partners (phone, PAN, bank) get their assigned jobs; others get pendingAccessResp with the pending checks.
// @Tags verification
// @Produce json
// @Security BearerAuth
// @Success 200 {object} panelAccessResp
// @Failure 401 {object} apiError
// @Failure 403 {object} apiError
// @Failure 500 {object} apiError
// @Router /api/v1/verification/panel-access [get]
func (h *Handler) PanelAccess(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PartnerFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	access, err := h.verifier.PanelAccess(r.Context(), p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if access.HasFullAccess {
		jobs := access.Jobs
		if jobs == nil {
			jobs = []entity.Job{}
		}
		writeJSON(w, http.StatusOK, panelAccessResp{
			HasFullAccess: true,
			Message:       "All verifications complete",
			Jobs:          jobs,
		})
		return
	}

	writeJSON(w, http.StatusOK, pendingAccessResp{
		Message:            "Please complete pending verifications",
		VerificationStatus: access.Status,
	})
}
