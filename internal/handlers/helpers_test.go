package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/teamtrack-dev/teamtrack/internal/auth"
	"github.com/teamtrack-dev/teamtrack/internal/models"
	"github.com/teamtrack-dev/teamtrack/internal/router"
	"github.com/teamtrack-dev/teamtrack/internal/testutil"
)

// setupAPI wires a fresh in-memory database and returns the full router.
func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret-for-handlers")

	if err := auth.InitJWTSecret(); err != nil {
		t.Fatalf("failed to init JWT secret: %v", err)
	}

	testutil.OpenTestDB(t)

	return router.NewRouter()
}

func authToken(t *testing.T, user models.User) string {
	t.Helper()

	token, err := auth.GenerateJWT(user.ID, user.Email)

	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	return token
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)

		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}

		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

// errorBody is the shape respondError writes for domain errors.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
