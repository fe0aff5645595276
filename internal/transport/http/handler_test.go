package httptransport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-assignment-service/internal/auth"
	"job-assignment-service/internal/entity"
	"job-assignment-service/internal/repository"
	"job-assignment-service/internal/service"
	httptransport "job-assignment-service/internal/transport/http"
)

// ---- fakes ----

type fakeEngine struct {
	jobs map[uuid.UUID]*entity.Job

	created   []service.CreateJobRequest
	updated   []service.UpdateJobRequest
	lastNotes *string
	filter    entity.JobFilter
	history   []entity.StatusLogEntry
	err       error
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{jobs: map[uuid.UUID]*entity.Job{}}
}

func (e *fakeEngine) add(status entity.JobStatus) *entity.Job {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	j := &entity.Job{
		ID:              uuid.New(),
		Name:            "Kitchen",
		CustomerName:    "Asha",
		Address:         "12 MG Road",
		City:            "Pune",
		Pincode:         411001,
		Type:            "modular",
		Rate:            decimal.RequireFromString("1500.5"),
		DeliveryDate:    time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:          status,
		StatusChangedAt: now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	e.jobs[j.ID] = j
	return j
}

func (e *fakeEngine) get(id uuid.UUID) (*entity.Job, error) {
	if e.err != nil {
		return nil, e.err
	}
	j, ok := e.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", service.ErrJobNotFound, id)
	}
	return j, nil
}

func (e *fakeEngine) CreateJob(ctx context.Context, req service.CreateJobRequest) (*entity.Job, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.created = append(e.created, req)
	j := e.add(entity.StatusCreated)
	j.Rate = req.Rate
	j.AssignedPartnerID = req.AssignedPartnerID
	return j, nil
}

func (e *fakeEngine) UpdateJob(ctx context.Context, id uuid.UUID, req service.UpdateJobRequest) (*entity.Job, error) {
	e.updated = append(e.updated, req)
	return e.get(id)
}

func (e *fakeEngine) DeleteJob(ctx context.Context, id uuid.UUID) error {
	if _, err := e.get(id); err != nil {
		return err
	}
	delete(e.jobs, id)
	return nil
}

func (e *fakeEngine) StartJob(ctx context.Context, id uuid.UUID, notes *string) (*entity.Job, error) {
	return e.move(id, notes, entity.StatusInProgress)
}

func (e *fakeEngine) PauseJob(ctx context.Context, id uuid.UUID, notes *string) (*entity.Job, error) {
	return e.move(id, notes, entity.StatusPaused)
}

func (e *fakeEngine) FinishJob(ctx context.Context, id uuid.UUID, notes *string) (*entity.Job, error) {
	return e.move(id, notes, entity.StatusCompleted)
}

func (e *fakeEngine) move(id uuid.UUID, notes *string, next entity.JobStatus) (*entity.Job, error) {
	e.lastNotes = notes
	j, err := e.get(id)
	if err != nil {
		return nil, err
	}
	if !j.Status.CanTransition(next) {
		return nil, &service.InvalidTransitionError{Op: "move", JobID: id, Current: j.Status}
	}
	j.Status = next
	return j, nil
}

func (e *fakeEngine) GetJob(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	return e.get(id)
}

func (e *fakeEngine) ListJobs(ctx context.Context, filter entity.JobFilter) ([]entity.Job, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.filter = filter
	out := make([]entity.Job, 0, len(e.jobs))
	for _, j := range e.jobs {
		out = append(out, *j)
	}
	return out, nil
}

func (e *fakeEngine) GetStatusHistory(ctx context.Context, id uuid.UUID) ([]entity.StatusLogEntry, error) {
	if _, err := e.get(id); err != nil {
		return nil, err
	}
	return e.history, nil
}

type fakePartnerAuth struct {
	registered []service.RegisterRequest
	otpPhones  []string
	session    *service.Session
	loggedOut  []uuid.UUID
	err        error
}

func (f *fakePartnerAuth) Register(ctx context.Context, req service.RegisterRequest) (*entity.Partner, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.registered = append(f.registered, req)
	return &entity.Partner{ID: uuid.New(), PhoneNumber: "91" + req.PhoneNumber, FirstName: req.FirstName}, nil
}

func (f *fakePartnerAuth) SendOTP(ctx context.Context, rawPhone string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.otpPhones = append(f.otpPhones, rawPhone)
	return "919876543210", nil
}

func (f *fakePartnerAuth) VerifyOTP(ctx context.Context, rawPhone, code string) (*service.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func (f *fakePartnerAuth) Logout(ctx context.Context, partnerID uuid.UUID) error {
	f.loggedOut = append(f.loggedOut, partnerID)
	return f.err
}

type fakeVerifier struct {
	pans   []string
	access *service.PanelAccess
	err    error
}

func (f *fakeVerifier) VerifyPAN(ctx context.Context, p *entity.Partner, pan string) (*service.PANVerification, error) {
	f.pans = append(f.pans, pan)
	if f.err != nil {
		return nil, f.err
	}
	return &service.PANVerification{PanNumber: pan, Name: "ASHA RAO"}, nil
}

func (f *fakeVerifier) VerifyBank(ctx context.Context, p *entity.Partner, acc, ifsc string, fetch bool) (*service.BankVerification, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &service.BankVerification{AccountNumber: acc, IFSCCode: ifsc, AccountHolderName: "ASHA RAO"}, nil
}

func (f *fakeVerifier) PanelAccess(ctx context.Context, p *entity.Partner) (*service.PanelAccess, error) {
	return f.access, f.err
}

type fakeUploader struct {
	name, contentType string
	body              []byte
}

func (f *fakeUploader) UploadProgress(ctx context.Context, jobID uuid.UUID, up service.Upload) (string, error) {
	b, err := io.ReadAll(up.Body)
	if err != nil {
		return "", err
	}
	f.name, f.contentType, f.body = up.Filename, up.ContentType, b
	return "http://blobs/jobs/" + jobID.String() + "/" + up.Filename, nil
}

type fakeApprover struct {
	approved []string
	offset   int
	limit    int
}

func (f *fakeApprover) ApproveID(ctx context.Context, rawPhone string) (*entity.Partner, error) {
	if rawPhone != "9800000009" {
		return nil, service.ErrPartnerNotFound
	}
	f.approved = append(f.approved, rawPhone)
	return &entity.Partner{ID: uuid.New(), PhoneNumber: "91" + rawPhone, IsIDVerified: true}, nil
}

func (f *fakeApprover) ListPartners(ctx context.Context, offset, limit int) ([]entity.Partner, error) {
	f.offset, f.limit = offset, limit
	return nil, nil
}

type partnerMap map[uuid.UUID]*entity.Partner

func (m partnerMap) GetByID(ctx context.Context, id uuid.UUID) (*entity.Partner, error) {
	p, ok := m[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

// ---- helpers ----

type testEnv struct {
	router   http.Handler
	engine   *fakeEngine
	auth     *fakePartnerAuth
	verifier *fakeVerifier
	uploads  *fakeUploader
	admin    *fakeApprover
	partners partnerMap
	tokens   *auth.TokenManager
}

const adminPhone = "919876543210"

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		engine:   newFakeEngine(),
		auth:     &fakePartnerAuth{},
		verifier: &fakeVerifier{},
		uploads:  &fakeUploader{},
		admin:    &fakeApprover{},
		partners: partnerMap{},
		tokens:   auth.NewTokenManager("test-secret", time.Hour),
	}
	h := httptransport.NewHandler(env.engine, env.auth, env.verifier, env.uploads, env.admin, httptransport.WithMaxUploadBytes(1<<20))
	env.router = httptransport.Routes(h, auth.NewAuthenticator(env.tokens, env.partners), httptransport.RouterConfig{
		AdminPhones: []string{adminPhone},
	})
	return env
}

func (e *testEnv) partner(t *testing.T, verified bool) (*entity.Partner, string) {
	t.Helper()
	p := &entity.Partner{ID: uuid.New(), PhoneNumber: "919876543210", FirstName: "Asha", IsVerified: verified}
	e.partners[p.ID] = p
	token, _, err := e.tokens.Issue(p.ID)
	require.NoError(t, err)
	return p, token
}

func (e *testEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var got map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got), "body=%s", rr.Body.String())
	return got
}

const validJob = `{
	"name": "Kitchen",
	"customer_name": "Asha",
	"address": "12 MG Road",
	"city": "Pune",
	"pincode": 411001,
	"type": "modular",
	"rate": "1500.50",
	"delivery_date": "2025-01-31"
}`

// ---- tests ----

func TestHTTP_Health(t *testing.T) {
	env := newEnv(t)
	rr := env.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestHTTP_Jobs_RequireVerifiedPartner(t *testing.T) {
	env := newEnv(t)

	rr := env.do(http.MethodGet, "/api/v1/jobs", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = env.do(http.MethodGet, "/api/v1/jobs", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	_, token := env.partner(t, false)
	rr = env.do(http.MethodGet, "/api/v1/jobs", token, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	_, token = env.partner(t, true)
	rr = env.do(http.MethodGet, "/api/v1/jobs", token, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHTTP_CreateJob_201(t *testing.T) {
	env := newEnv(t)
	_, token := env.partner(t, true)

	rr := env.do(http.MethodPost, "/api/v1/jobs", token, validJob)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	require.Len(t, env.engine.created, 1)
	req := env.engine.created[0]
	assert.True(t, req.Rate.Equal(decimal.RequireFromString("1500.5")))
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), req.DeliveryDate)
	assert.Nil(t, req.AssignedPartnerID)

	job := decodeBody(t, rr)["job"].(map[string]any)
	assert.Equal(t, "created", job["status"])
	assert.Equal(t, "1500.50", job["rate"])
	assert.Equal(t, "2025-01-31", job["delivery_date"])
}

func TestHTTP_CreateJob_400(t *testing.T) {
	env := newEnv(t)
	_, token := env.partner(t, true)

	cases := map[string]struct {
		body string
		msg  string
	}{
		"bad json":       {`{`, "invalid json"},
		"missing name":   {strings.Replace(validJob, `"name": "Kitchen",`, "", 1), "name is required"},
		"bad date":       {strings.Replace(validJob, "2025-01-31", "31/01/2025", 1), "delivery_date"},
		"missing rate":   {strings.Replace(validJob, `"rate": "1500.50",`, "", 1), "rate is required"},
		"rate precision": {strings.Replace(validJob, "1500.50", "1500.505", 1), "2 decimal places"},
		"negative rate":  {strings.Replace(validJob, "1500.50", "-1", 1), "negative"},
		"bad link":       {strings.Replace(validJob, `"city"`, `"checklist_link": "not a url", "city"`, 1), "checklist_link"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rr := env.do(http.MethodPost, "/api/v1/jobs", token, tc.body)
			require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
			assert.Contains(t, decodeBody(t, rr)["message"], tc.msg)
		})
	}
	assert.Empty(t, env.engine.created)
}

func TestHTTP_ServiceErrorMapping(t *testing.T) {
	env := newEnv(t)
	_, token := env.partner(t, true)
	id := uuid.New()

	cases := []struct {
		err  error
		code int
	}{
		{&service.ErrPartnerBusy{PartnerID: id}, http.StatusBadRequest},
		{&service.ErrMissingPartner{JobID: id}, http.StatusBadRequest},
		{&service.InvalidTransitionError{Op: "start", JobID: id, Current: entity.StatusCompleted}, http.StatusBadRequest},
		{&service.PersistenceError{Op: "start job", EntityID: id, Err: errors.New("pq: connection reset")}, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		env.engine.err = tc.err
		rr := env.do(http.MethodGet, "/api/v1/jobs/"+id.String(), token, "")
		assert.Equal(t, tc.code, rr.Code, "%v", tc.err)
		assert.NotContains(t, rr.Body.String(), "connection reset")
		assert.NotContains(t, rr.Body.String(), "boom")
	}
}

func TestHTTP_GetJob_404AndBadID(t *testing.T) {
	env := newEnv(t)
	_, token := env.partner(t, true)

	rr := env.do(http.MethodGet, "/api/v1/jobs/"+uuid.NewString(), token, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(http.MethodGet, "/api/v1/jobs/42", token, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHTTP_StartPauseFinish(t *testing.T) {
	env := newEnv(t)
	_, token := env.partner(t, true)
	job := env.engine.add(entity.StatusCreated)
	base := "/api/v1/jobs/" + job.ID.String()

	rr := env.do(http.MethodPost, base+"/start", token, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Nil(t, env.engine.lastNotes)

	rr = env.do(http.MethodPost, base+"/pause", token, `{"notes":"lunch"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.NotNil(t, env.engine.lastNotes)
	assert.Equal(t, "lunch", *env.engine.lastNotes)

	rr = env.do(http.MethodPost, base+"/pause", token, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeBody(t, rr)["message"], "current status: paused")

	rr = env.do(http.MethodPost, base+"/start", token, "")
	require.Equal(t, http.StatusOK, rr.Code)
	rr = env.do(http.MethodPost, base+"/finish", token, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "completed", decodeBody(t, rr)["job"].(map[string]any)["status"])
}

func TestHTTP_UpdateJob_PartnerField(t *testing.T) {
	env := newEnv(t)
	_, token := env.partner(t, true)
	job := env.engine.add(entity.StatusPaused)
	path := "/api/v1/jobs/" + job.ID.String()
	partnerID := uuid.New()

	rr := env.do(http.MethodPut, path, token, `{"city":"Mumbai"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = env.do(http.MethodPut, path, token, `{"assigned_partner_id":"`+partnerID.String()+`"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = env.do(http.MethodPut, path, token, `{"assigned_partner_id":null}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	require.Len(t, env.engine.updated, 3)

	untouched := env.engine.updated[0]
	require.NotNil(t, untouched.City)
	assert.Equal(t, "Mumbai", *untouched.City)
	assert.Nil(t, untouched.AssignedPartnerID)
	assert.False(t, untouched.ClearAssignedPartner)

	set := env.engine.updated[1]
	require.NotNil(t, set.AssignedPartnerID)
	assert.Equal(t, partnerID, *set.AssignedPartnerID)
	assert.False(t, set.ClearAssignedPartner)

	assert.True(t, env.engine.updated[2].ClearAssignedPartner)
}

func TestHTTP_UpdateJob_RejectsStatus(t *testing.T) {
	env := newEnv(t)
	_, token := env.partner(t, true)
	job := env.engine.add(entity.StatusCreated)

	rr := env.do(http.MethodPut, "/api/v1/jobs/"+job.ID.String(), token, `{"status":"completed"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, env.engine.updated)
}

func TestHTTP_DeleteJob(t *testing.T) {
	env := newEnv(t)
	_, token := env.partner(t, true)
	job := env.engine.add(entity.StatusInProgress)

	rr := env.do(http.MethodDelete, "/api/v1/jobs/"+job.ID.String(), token, "")
	require.Equal(t, http.StatusOK, rr.Code)
	rr = env.do(http.MethodDelete, "/api/v1/jobs/"+job.ID.String(), token, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHTTP_ListJobs_Filters(t *testing.T) {
	env := newEnv(t)
	_, token := env.partner(t, true)
	env.engine.add(entity.StatusPaused)
	partnerID := uuid.New()

	rr := env.do(http.MethodGet, "/api/v1/jobs?status=paused&partner_id="+partnerID.String()+"&offset=10&limit=5", token, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, entity.StatusPaused, env.engine.filter.Status)
	require.NotNil(t, env.engine.filter.PartnerID)
	assert.Equal(t, partnerID, *env.engine.filter.PartnerID)
	assert.Equal(t, 10, env.engine.filter.Offset)
	assert.Equal(t, 5, env.engine.filter.Limit)
	assert.EqualValues(t, 1, decodeBody(t, rr)["total"])

	for _, q := range []string{"status=done", "partner_id=x", "limit=-1", "offset=abc"} {
		rr = env.do(http.MethodGet, "/api/v1/jobs?"+q, token, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code, q)
	}
}

func TestHTTP_JobHistory(t *testing.T) {
	env := newEnv(t)
	_, token := env.partner(t, true)
	job := env.engine.add(entity.StatusInProgress)
	note := "Job started"
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	env.engine.history = []entity.StatusLogEntry{
		{ID: 1, JobID: job.ID, Status: entity.StatusCreated, Timestamp: ts},
		{ID: 2, JobID: job.ID, Status: entity.StatusInProgress, Timestamp: ts, Notes: &note},
	}

	rr := env.do(http.MethodGet, "/api/v1/jobs/"+job.ID.String()+"/history", token, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		JobID   string `json:"job_id"`
		History []struct {
			ID     int64  `json:"id"`
			Status string `json:"status"`
			Notes  string `json:"notes"`
		} `json:"history"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, job.ID.String(), resp.JobID)
	require.Len(t, resp.History, 2)
	assert.Equal(t, "created", resp.History[0].Status)
	assert.Equal(t, "Job started", resp.History[1].Notes)
}

func TestHTTP_UploadProgress(t *testing.T) {
	env := newEnv(t)
	_, token := env.partner(t, true)
	job := env.engine.add(entity.StatusInProgress)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "wall.jpg")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("jpeg-bytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/"+job.ID.String()+"/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "wall.jpg", env.uploads.name)
	assert.Equal(t, "jpeg-bytes", string(env.uploads.body))
	assert.Contains(t, decodeBody(t, rr)["file_url"], "/wall.jpg")

	rr = env.do(http.MethodPost, "/api/v1/jobs/"+job.ID.String()+"/upload", token, `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHTTP_AuthFlow(t *testing.T) {
	env := newEnv(t)

	rr := env.do(http.MethodPost, "/api/v1/auth/register", "",
		`{"phone_number":"9876543210","first_name":"Asha","last_name":"Rao","city":"Pune","pincode":"411001"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	require.Len(t, env.auth.registered, 1)

	rr = env.do(http.MethodPost, "/api/v1/auth/register", "",
		`{"phone_number":"9876543210","first_name":"Asha","last_name":"Rao","city":"Pune","pincode":"4110"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeBody(t, rr)["message"], "pincode")

	rr = env.do(http.MethodPost, "/api/v1/auth/login", "", `{"phone_number":"9876543210"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "919876543210", decodeBody(t, rr)["phone_number"])

	p, _ := env.partner(t, true)
	env.auth.session = &service.Session{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour), Partner: p}
	rr = env.do(http.MethodPost, "/api/v1/auth/verify-otp", "", `{"phone_number":"9876543210","otp":"123456"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body := decodeBody(t, rr)
	assert.Equal(t, "tok", body["access_token"])
	assert.Equal(t, "bearer", body["token_type"])

	rr = env.do(http.MethodPost, "/api/v1/auth/verify-otp", "", `{"phone_number":"9876543210","otp":"12"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	env.auth.err = service.ErrInvalidOTP
	rr = env.do(http.MethodPost, "/api/v1/auth/verify-otp", "", `{"phone_number":"9876543210","otp":"654321"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	env.auth.err = service.ErrPartnerExists
	rr = env.do(http.MethodPost, "/api/v1/auth/register", "",
		`{"phone_number":"9876543210","first_name":"Asha","last_name":"Rao","city":"Pune","pincode":"411001"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHTTP_Logout(t *testing.T) {
	env := newEnv(t)

	rr := env.do(http.MethodPost, "/api/v1/auth/logout", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	p, token := env.partner(t, false)
	rr = env.do(http.MethodPost, "/api/v1/auth/logout", token, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []uuid.UUID{p.ID}, env.auth.loggedOut)
}

func TestHTTP_Verification(t *testing.T) {
	env := newEnv(t)
	_, token := env.partner(t, true)

	rr := env.do(http.MethodPost, "/api/v1/verification/pan", token, `{"pan":"abcde1234f"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code, "lowercase PAN fails the pattern")

	rr = env.do(http.MethodPost, "/api/v1/verification/pan", token, `{"pan":"ABCDE1234F"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "ASHA RAO", decodeBody(t, rr)["name"])

	rr = env.do(http.MethodPost, "/api/v1/verification/bank", token, `{"account_number":"12345678901","ifsc":"SBIN0001234"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = env.do(http.MethodPost, "/api/v1/verification/bank", token, `{"account_number":"1234","ifsc":"SBIN0001234"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	env.verifier.err = &service.VerificationRejectedError{Kind: "pan", Message: "PAN does not exist"}
	rr = env.do(http.MethodPost, "/api/v1/verification/pan", token, `{"pan":"ABCDE1234F"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "PAN does not exist", decodeBody(t, rr)["message"])

	env.verifier.err = service.ErrVerificationUnavailable
	rr = env.do(http.MethodPost, "/api/v1/verification/pan", token, `{"pan":"ABCDE1234F"}`)
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestHTTP_PanelAccess(t *testing.T) {
	env := newEnv(t)
	_, token := env.partner(t, true)

	env.verifier.access = &service.PanelAccess{Status: service.VerificationStatus{PhoneVerified: true}}
	rr := env.do(http.MethodGet, "/api/v1/verification/panel-access", token, "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, false, body["has_full_access"])
	assert.Equal(t, true, body["verification_status"].(map[string]any)["phone_verified"])

	env.verifier.access = &service.PanelAccess{HasFullAccess: true}
	rr = env.do(http.MethodGet, "/api/v1/verification/panel-access", token, "")
	require.Equal(t, http.StatusOK, rr.Code)
	body = decodeBody(t, rr)
	assert.Equal(t, true, body["has_full_access"])
	assert.Equal(t, []any{}, body["jobs"])
}

func TestHTTP_Admin(t *testing.T) {
	env := newEnv(t)
	admin, adminToken := env.partner(t, true)
	require.Equal(t, adminPhone, admin.PhoneNumber)
	other, otherToken := env.partner(t, true)
	other.PhoneNumber = "919800000001"

	rr := env.do(http.MethodPost, "/api/v1/admin/verify-id/9800000009", otherToken, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Empty(t, env.admin.approved)

	rr = env.do(http.MethodPost, "/api/v1/admin/verify-id/9800000009", adminToken, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body := decodeBody(t, rr)
	assert.Equal(t, "919800000009", body["phone_number"])
	assert.Equal(t, true, body["is_id_verified"])

	rr = env.do(http.MethodPost, "/api/v1/admin/verify-id/9800000000", adminToken, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(http.MethodGet, "/api/v1/admin/partners?offset=5&limit=10", adminToken, "")
	require.Equal(t, http.StatusOK, rr.Code)
	body = decodeBody(t, rr)
	assert.Equal(t, []any{}, body["partners"])
	assert.Equal(t, 5, env.admin.offset)
	assert.Equal(t, 10, env.admin.limit)

	rr = env.do(http.MethodGet, "/api/v1/admin/partners?limit=-1", adminToken, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(http.MethodGet, "/api/v1/admin/partners", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
