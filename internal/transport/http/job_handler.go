package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"job-assignment-service/internal/entity"
	"job-assignment-service/internal/service"
)

const dateLayout = "2006-01-02"

// rates are numeric(10,2)
var maxRate = decimal.New(1, 8)

type createJobDTO struct {
	Name              string           `json:"name" validate:"required,max=255"`
	CustomerName      string           `json:"customer_name" validate:"required,max=255"`
	Address           string           `json:"address" validate:"required"`
	City              string           `json:"city" validate:"required,max=100"`
	Pincode           int              `json:"pincode" validate:"required,gte=0"`
	Type              string           `json:"type" validate:"required,max=100"`
	Rate              *decimal.Decimal `json:"rate" validate:"required" swaggertype:"string" example:"1500.00"`
	Size              *int             `json:"size,omitempty" validate:"omitempty,gte=0"`
	DeliveryDate      string           `json:"delivery_date" validate:"required,datetime=2006-01-02" example:"2025-01-31"`
	ChecklistLink     *string          `json:"checklist_link,omitempty" validate:"omitempty,url"`
	GoogleMapLink     *string          `json:"google_map_link,omitempty" validate:"omitempty,url"`
	AssignedPartnerID *uuid.UUID       `json:"assigned_partner_id,omitempty" swaggertype:"string" format:"uuid"`
}

// optionalUUID tells an absent field apart from an explicit null.
type optionalUUID struct {
	Set   bool
	Value *uuid.UUID
}

func (o *optionalUUID) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(b, []byte("null")) {
		o.Value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

type updateJobDTO struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	CustomerName  *string          `json:"customer_name,omitempty" validate:"omitempty,min=1,max=255"`
	Address       *string          `json:"address,omitempty" validate:"omitempty,min=1"`
	City          *string          `json:"city,omitempty" validate:"omitempty,min=1,max=100"`
	Pincode       *int             `json:"pincode,omitempty" validate:"omitempty,gte=0"`
	Type          *string          `json:"type,omitempty" validate:"omitempty,min=1,max=100"`
	Rate          *decimal.Decimal `json:"rate,omitempty" swaggertype:"string"`
	Size          *int             `json:"size,omitempty" validate:"omitempty,gte=0"`
	DeliveryDate  *string          `json:"delivery_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ChecklistLink *string          `json:"checklist_link,omitempty" validate:"omitempty,url"`
	GoogleMapLink *string          `json:"google_map_link,omitempty" validate:"omitempty,url"`

	// null clears the partner reference
	AssignedPartnerID optionalUUID `json:"assigned_partner_id" swaggertype:"string" format:"uuid"`
	Status            *string      `json:"status,omitempty" swaggerignore:"true"`
}

type notesDTO struct {
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type jobView struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	CustomerName      string           `json:"customer_name"`
	Address           string           `json:"address"`
	City              string           `json:"city"`
	Pincode           int              `json:"pincode"`
	Type              string           `json:"type"`
	Rate              string           `json:"rate"`
	Size              *int             `json:"size,omitempty"`
	DeliveryDate      string           `json:"delivery_date"`
	ChecklistLink     *string          `json:"checklist_link,omitempty"`
	GoogleMapLink     *string          `json:"google_map_link,omitempty"`
	Status            entity.JobStatus `json:"status"`
	AssignedPartnerID *string          `json:"assigned_partner_id,omitempty"`
	StatusChangedAt   string           `json:"status_changed_at"`
	CreatedAt         string           `json:"created_at"`
	UpdatedAt         string           `json:"updated_at"`
}

type jobResp struct {
	Message string  `json:"message"`
	Job     jobView `json:"job"`
}

type jobListResp struct {
	Message string    `json:"message"`
	Total   int       `json:"total"`
	Jobs    []jobView `json:"jobs"`
}

type historyEntryView struct {
	ID        int64            `json:"id"`
	Status    entity.JobStatus `json:"status"`
	Timestamp string           `json:"timestamp"`
	Notes     *string          `json:"notes,omitempty"`
}

type historyResp struct {
	JobID   string             `json:"job_id"`
	History []historyEntryView `json:"history"`
}

type uploadResp struct {
	Message string `json:"message"`
	FileURL string `json:"file_url"`
}

func toJobView(j *entity.Job) jobView {
	v := jobView{
		ID:              j.ID.String(),
		Name:            j.Name,
		CustomerName:    j.CustomerName,
		Address:         j.Address,
		City:            j.City,
		Pincode:         j.Pincode,
		Type:            j.Type,
		Rate:            j.Rate.StringFixed(2),
		Size:            j.Size,
		DeliveryDate:    j.DeliveryDate.Format(dateLayout),
		ChecklistLink:   j.ChecklistLink,
		GoogleMapLink:   j.GoogleMapLink,
		Status:          j.Status,
		StatusChangedAt: j.StatusChangedAt.Format(time.RFC3339Nano),
		CreatedAt:       j.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       j.UpdatedAt.Format(time.RFC3339),
	}
	if j.AssignedPartnerID != nil {
		id := j.AssignedPartnerID.String()
		v.AssignedPartnerID = &id
	}
	return v
}

func checkRate(rate decimal.Decimal) error {
	switch {
	case rate.IsNegative():
		return errors.New("rate must not be negative")
	case !rate.Equal(rate.Round(2)):
		return errors.New("rate must have at most 2 decimal places")
	case rate.Abs().GreaterThanOrEqual(maxRate):
		return errors.New("rate must be less than 100000000")
	}
	return nil
}

func jobID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// CreateJob godoc
// @Summary Create a job
// @Description Creates a job in status created. A given partner must exist and be free; the partner flag is not set until the job starts.
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createJobDTO true "job payload"
// @Success 201 {object} jobResp
// @Failure 400 {object} apiError
// @Failure 404 {object} apiError
// @Failure 500 {object} apiError
// @Router /api/v1/jobs [post]
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var dto createJobDTO
	if !h.decode(w, r, &dto) {
		return
	}
	if err := checkRate(*dto.Rate); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	delivery, err := time.Parse(dateLayout, dto.DeliveryDate)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "delivery_date must be YYYY-MM-DD")
		return
	}

	job, err := h.jobs.CreateJob(r.Context(), service.CreateJobRequest{
		Name:              dto.Name,
		CustomerName:      dto.CustomerName,
		Address:           dto.Address,
		City:              dto.City,
		Pincode:           dto.Pincode,
		Type:              dto.Type,
		Rate:              *dto.Rate,
		Size:              dto.Size,
		DeliveryDate:      delivery,
		ChecklistLink:     dto.ChecklistLink,
		GoogleMapLink:     dto.GoogleMapLink,
		AssignedPartnerID: dto.AssignedPartnerID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, jobResp{Message: "Job created successfully", Job: toJobView(job)})
}

// ListJobs godoc
// @Summary List jobs
// @Description Newest first. limit defaults to 100 and is capped at 500.
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param status query string false "created, in_progress, paused or completed"
// @Param partner_id query string false "assigned partner id (uuid)"
// @Param offset query int false "rows to skip"
// @Param limit query int false "page size"
// @Success 200 {object} jobListResp
// @Failure 400 {object} apiError
// @Failure 500 {object} apiError
// @Router /api/v1/jobs [get]
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter entity.JobFilter

	if s := q.Get("status"); s != "" {
		filter.Status = entity.JobStatus(s)
		if !filter.Status.Valid() {
			writeErr(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", s))
			return
		}
	}
	if s := q.Get("partner_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "invalid partner_id")
			return
		}
		filter.PartnerID = &id
	}
	if !readPage(w, q, &filter.Offset, &filter.Limit) {
		return
	}

	jobs, err := h.jobs.ListJobs(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	views := make([]jobView, 0, len(jobs))
	for i := range jobs {
		views = append(views, toJobView(&jobs[i]))
	}
	writeJSON(w, http.StatusOK, jobListResp{Message: "Jobs fetched successfully", Total: len(views), Jobs: views})
}

// GetJob godoc
// @Summary Get job
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "job id (uuid)"
// @Success 200 {object} jobResp
// @Failure 400 {object} apiError
// @Failure 404 {object} apiError
// @Router /api/v1/jobs/{id} [get]
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := jobID(w, r)
	if !ok {
		return
	}

	job, err := h.jobs.GetJob(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobResp{Message: "Job retrieved successfully", Job: toJobView(job)})
}

// UpdateJob godoc
// @Summary Update job fields
// @Description Partial update. Status changes go through start, pause and finish. Changing the partner of an in_progress job moves the assignment atomically; assigned_partner_id null clears it and is refused while in_progress.
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "job id (uuid)"
// @Param request body updateJobDTO true "fields to change"
// @Success 200 {object} jobResp
// @Failure 400 {object} apiError
// @Failure 404 {object} apiError
// @Failure 500 {object} apiError
// @Router /api/v1/jobs/{id} [put]
func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := jobID(w, r)
	if !ok {
		return
	}

	var dto updateJobDTO
	if !h.decode(w, r, &dto) {
		return
	}
	if dto.Status != nil {
		writeErr(w, http.StatusBadRequest, "status cannot be set directly, use start, pause or finish")
		return
	}

	req := service.UpdateJobRequest{
		Name:          dto.Name,
		CustomerName:  dto.CustomerName,
		Address:       dto.Address,
		City:          dto.City,
		Pincode:       dto.Pincode,
		Type:          dto.Type,
		Rate:          dto.Rate,
		Size:          dto.Size,
		ChecklistLink: dto.ChecklistLink,
		GoogleMapLink: dto.GoogleMapLink,
	}
	if dto.Rate != nil {
		if err := checkRate(*dto.Rate); err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if dto.DeliveryDate != nil {
		d, err := time.Parse(dateLayout, *dto.DeliveryDate)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "delivery_date must be YYYY-MM-DD")
			return
		}
		req.DeliveryDate = &d
	}
	if dto.AssignedPartnerID.Set {
		req.AssignedPartnerID = dto.AssignedPartnerID.Value
		req.ClearAssignedPartner = dto.AssignedPartnerID.Value == nil
	}

	job, err := h.jobs.UpdateJob(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobResp{Message: "Job updated successfully", Job: toJobView(job)})
}

// DeleteJob godoc
// @Summary Delete job
// @Description Removes the job and its status history and frees the assigned partner.
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "job id (uuid)"
// @Success 200 {object} apiMessage
// @Failure 400 {object} apiError
// @Failure 404 {object} apiError
// @Failure 500 {object} apiError
// @Router /api/v1/jobs/{id} [delete]
func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := jobID(w, r)
	if !ok {
		return
	}

	if err := h.jobs.DeleteJob(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, apiMessage{Message: "Job deleted successfully"})
}

// StartJob godoc
// @Summary Start or resume a job
// @Description created or paused -> in_progress. Marks the assigned partner busy; fails if the partner already is.
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "job id (uuid)"
// @Param request body notesDTO false "optional notes for the status log"
// @Success 200 {object} jobResp
// @Failure 400 {object} apiError
// @Failure 404 {object} apiError
// @Failure 500 {object} apiError
// @Router /api/v1/jobs/{id}/start [post]
func (h *Handler) StartJob(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.jobs.StartJob, "Job started successfully")
}

// PauseJob godoc
// @Summary Pause a job
// @Description in_progress -> paused. Frees the assigned partner.
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "job id (uuid)"
// @Param request body notesDTO false "optional notes for the status log"
// @Success 200 {object} jobResp
// @Failure 400 {object} apiError
// @Failure 404 {object} apiError
// @Failure 500 {object} apiError
// @Router /api/v1/jobs/{id}/pause [post]
func (h *Handler) PauseJob(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.jobs.PauseJob, "Job paused successfully")
}

// FinishJob godoc
// @Summary Finish a job
// @Description in_progress -> completed. Frees the assigned partner; completed is terminal.
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "job id (uuid)"
// @Param request body notesDTO false "optional notes for the status log"
// @Success 200 {object} jobResp
// @Failure 400 {object} apiError
// @Failure 404 {object} apiError
// @Failure 500 {object} apiError
// @Router /api/v1/jobs/{id}/finish [post]
func (h *Handler) FinishJob(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.jobs.FinishJob, "Job marked as completed")
}

type transitionFunc func(ctx context.Context, id uuid.UUID, notes *string) (*entity.Job, error)

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn transitionFunc, msg string) {
	id, ok := jobID(w, r)
	if !ok {
		return
	}

	// the body is optional
	var dto notesDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil && !errors.Is(err, io.EOF) {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.validator.Struct(&dto); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := fn(r.Context(), id, dto.Notes)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobResp{Message: msg, Job: toJobView(job)})
}

// JobHistory godoc
// @Summary Job status history
// @Description Chronological; entries with equal timestamps keep insertion order.
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "job id (uuid)"
// @Success 200 {object} historyResp
// @Failure 400 {object} apiError
// @Failure 404 {object} apiError
// @Failure 500 {object} apiError
// @Router /api/v1/jobs/{id}/history [get]
func (h *Handler) JobHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := jobID(w, r)
	if !ok {
		return
	}

	entries, err := h.jobs.GetStatusHistory(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := historyResp{JobID: id.String(), History: make([]historyEntryView, 0, len(entries))}
	for _, e := range entries {
		resp.History = append(resp.History, historyEntryView{
			ID:        e.ID,
			Status:    e.Status,
			Timestamp: e.Timestamp.Format(time.RFC3339Nano),
			Notes:     e.Notes,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// UploadProgress godoc
// @Summary Upload a progress photo
// @Tags jobs
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "job id (uuid)"
// @Param file formData file true "photo"
// @Success 200 {object} uploadResp
// @Failure 400 {object} apiError
// @Failure 404 {object} apiError
// @Failure 413 {object} apiError
// @Failure 500 {object} apiError
// @Router /api/v1/jobs/{id}/upload [post]
func (h *Handler) UploadProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := jobID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErr(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeErr(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeErr(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.uploads.UploadProgress(r.Context(), id, service.Upload{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, uploadResp{Message: "File uploaded successfully", FileURL: url})
}

// readPage parses the optional offset and limit query parameters.
func readPage(w http.ResponseWriter, q url.Values, offset, limit *int) bool {
	for name, dst := range map[string]*int{"offset": offset, "limit": limit} {
		s := q.Get(name)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeErr(w, http.StatusBadRequest, "invalid "+name)
			return false
		}
		*dst = n
	}
	return true
}
