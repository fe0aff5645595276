package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"job-assignment-service/internal/entity"
)

type approveIDResp struct {
	Message      string `json:"message"`
	PhoneNumber  string `json:"phone_number"`
	IsIDVerified bool   `json:"is_id_verified"`
}

type partnerListResp struct {
	Total    int              `json:"total"`
	Partners []entity.Partner `json:"partners"`
}

// ApproveID godoc
// @Summary Approve a partner's identity documents
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param phone path string true "partner phone number"
// @Success 200 {object} approveIDResp
// @Failure 400 {object} apiError
// @Failure 401 {object} apiError
// @Failure 403 {object} apiError
// @Failure 404 {object} apiError
// @Router /api/v1/admin/verify-id/{phone} [post]
func (h *Handler) ApproveID(w http.ResponseWriter, r *http.Request) {
	p, err := h.approvals.ApproveID(r.Context(), chi.URLParam(r, "phone"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, approveIDResp{
		Message:      "Partner ID verified successfully",
		PhoneNumber:  p.PhoneNumber,
		IsIDVerified: p.IsIDVerified,
	})
}

// ListPartners godoc
// @Summary List partners
// @Description Registration order. limit defaults to 50 and is capped at 200.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param offset query int false "rows to skip"
// @Param limit query int false "page size"
// @Success 200 {object} partnerListResp
// @Failure 400 {object} apiError
// @Failure 401 {object} apiError
// @Failure 403 {object} apiError
// @Router /api/v1/admin/partners [get]
func (h *Handler) ListPartners(w http.ResponseWriter, r *http.Request) {
	var offset, limit int
	if !readPage(w, r.URL.Query(), &offset, &limit) {
		return
	}

	partners, err := h.approvals.ListPartners(r.Context(), offset, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if partners == nil {
		partners = []entity.Partner{}
	}
	writeJSON(w, http.StatusOK, partnerListResp{Total: len(partners), Partners: partners})
}
