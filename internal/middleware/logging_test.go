package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewStdLogger(&buf)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.With(JWTAuth(testSecret)).Get("/employees/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	t.Run("authenticated route", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/employees/"+uuid.NewString(), nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("alice")))

		r.ServeHTTP(httptest.NewRecorder(), req)

		line := buf.String()
		assert.Contains(t, line, "INFO")
		assert.Contains(t, line, "route=/employees/{id}")
		assert.Contains(t, line, "status=204")
		assert.Contains(t, line, "subject=alice")
		assert.Contains(t, line, "request_id=")
	})

	t.Run("server error logged at error level", func(t *testing.T) {
		buf.Reset()
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

		line := buf.String()
		assert.Contains(t, line, "ERROR")
		assert.Contains(t, line, "status=500")
		assert.NotContains(t, line, "subject=")
	})
}
