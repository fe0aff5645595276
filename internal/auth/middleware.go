package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"job-assignment-service/internal/entity"
	"job-assignment-service/internal/repository"
)

type PartnerLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Partner, error)
}

type Authenticator struct {
	tokens   *TokenManager
	partners PartnerLookup
	log      *zap.SugaredLogger
}

func NewAuthenticator(tokens *TokenManager, partners PartnerLookup) *Authenticator {
	return &Authenticator{tokens: tokens, partners: partners, log: zap.S().Named("auth")}
}

// Authenticate resolves the bearer token to a partner and stores it in the
// request context.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		id, err := a.tokens.Parse(token)
		if err != nil {
			a.log.Debugw("token rejected", "error", err)
			writeError(w, http.StatusUnauthorized, ErrInvalidToken.Error())
			return
		}

		p, err := a.partners.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				writeError(w, http.StatusNotFound, "partner not found")
				return
			}
			a.log.Errorw("load partner", "partner_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), p)))
	})
}

// RequireVerified rejects partners who have not confirmed their phone by OTP.
func RequireVerified(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PartnerFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		if !p.IsVerified {
			writeError(w, http.StatusForbidden, "phone number not verified, verify your OTP first")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin lets through only partners whose normalized phone number is
// listed. An empty list closes the route.
func RequireAdmin(phones []string) func(http.Handler) http.Handler {
	admins := make(map[string]struct{}, len(phones))
	for _, p := range phones {
		admins[p] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PartnerFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			if _, ok := admins[p.PhoneNumber]; !ok {
				writeError(w, http.StatusForbidden, "admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
