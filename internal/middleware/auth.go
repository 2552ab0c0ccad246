package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// NewSessionAuth returns a middleware that resolves the caller's session
// from an "Authorization: Bearer <token>" header. Tokens must be HS256-signed
// with secret, unexpired, and carry the user's UUID in the sub claim.
//
// On success the session is stored with domain.WithSession; otherwise the
// request is rejected with 401 and never reaches the next handler.
func NewSessionAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := parseSession(r.Header.Get("Authorization"), secret)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", err.Error())
				return
			}
			annotate(r.Context(), "user_id", sess.UserID.String())
			next.ServeHTTP(w, r.WithContext(domain.WithSession(r.Context(), sess)))
		})
	}
}

func parseSession(header string, secret []byte) (domain.Session, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return domain.Session{}, errors.New("missing bearer token")
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Session{}, errors.New("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return domain.Session{}, errors.New("token subject is not a user id")
	}
	return domain.Session{UserID: userID}, nil
}
