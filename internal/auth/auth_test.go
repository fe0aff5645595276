package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-assignment-service/internal/auth"
	"job-assignment-service/internal/entity"
	"job-assignment-service/internal/repository"
)

type fakePartners map[uuid.UUID]*entity.Partner

func (f fakePartners) GetByID(ctx context.Context, id uuid.UUID) (*entity.Partner, error) {
	p, ok := f[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := auth.NewTokenManager("s3cret", time.Hour)
	id := uuid.New()

	token, exp, err := tm.Issue(id)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	got, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestTokenManager_RejectsForeignAndExpired(t *testing.T) {
	id := uuid.New()

	other, _, err := auth.NewTokenManager("other", time.Hour).Issue(id)
	require.NoError(t, err)
	_, err = auth.NewTokenManager("s3cret", time.Hour).Parse(other)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	expired, _, err := auth.NewTokenManager("s3cret", time.Nanosecond).Issue(id)
	require.NoError(t, err)
	time.Sleep(time.Second)
	_, err = auth.NewTokenManager("s3cret", time.Hour).Parse(expired)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = auth.NewTokenManager("s3cret", time.Hour).Parse("not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthenticator(t *testing.T) {
	tm := auth.NewTokenManager("s3cret", time.Hour)
	verified := &entity.Partner{ID: uuid.New(), IsVerified: true}
	unverified := &entity.Partner{ID: uuid.New()}
	a := auth.NewAuthenticator(tm, fakePartners{verified.ID: verified, unverified.ID: unverified})

	h := a.Authenticate(auth.RequireVerified(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := auth.PartnerFromContext(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(p.ID.String()))
	})))

	bearer := func(id uuid.UUID) string {
		token, _, err := tm.Issue(id)
		require.NoError(t, err)
		return "Bearer " + token
	}

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"unknown partner", bearer(uuid.New()), http.StatusNotFound},
		{"unverified", bearer(unverified.ID), http.StatusForbidden},
		{"verified", bearer(verified.ID), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, tc.want, rr.Code, rr.Body.String())
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	admin := &entity.Partner{ID: uuid.New(), PhoneNumber: "919800000001"}
	other := &entity.Partner{ID: uuid.New(), PhoneNumber: "919800000002"}

	serve := func(h http.Handler, p *entity.Partner) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if p != nil {
			req = req.WithContext(auth.NewContext(req.Context(), p))
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	gate := auth.RequireAdmin([]string{admin.PhoneNumber})(ok)
	assert.Equal(t, http.StatusOK, serve(gate, admin))
	assert.Equal(t, http.StatusForbidden, serve(gate, other))
	assert.Equal(t, http.StatusUnauthorized, serve(gate, nil))

	closed := auth.RequireAdmin(nil)(ok)
	assert.Equal(t, http.StatusForbidden, serve(closed, admin))
}
