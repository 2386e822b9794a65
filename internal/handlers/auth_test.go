package handlers_test

import (
	"net/http"
	"testing"

	"github.com/teamtrack-dev/teamtrack/db"
	"github.com/teamtrack-dev/teamtrack/internal/models"
	"github.com/teamtrack-dev/teamtrack/internal/testutil"
	"github.com/teamtrack-dev/teamtrack/internal/types"
)

func TestRegisterAndLogin(t *testing.T) {
	r := setupAPI(t)

	w := doRequest(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Alice",
		"email":    "Alice@Example.com",
		"password": "password123",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", w.Code, w.Body.String())
	}

	var registered struct {
		Token string             `json:"token"`
		User  types.UserResponse `json:"user"`
	}

	decodeBody(t, w, &registered)

	if registered.Token == "" {
		t.Error("expected a token in the register response")
	}

	if registered.User.Role != models.RoleTeamMember {
		t.Errorf("new accounts must be TEAM_MEMBER, got %s", registered.User.Role)
	}

	if registered.User.Email != "alice@example.com" {
		t.Errorf("email should be lowercased, got %s", registered.User.Email)
	}

	w = doRequest(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrongpassword",
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("login with wrong password status = %d, want 400", w.Code)
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	r := setupAPI(t)

	user := testutil.CreateUser(t, "Bob", "bob@example.com", models.RoleTeamMember)

	if err := db.DB.Model(&user).Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate user: %v", err)
	}

	w := doRequest(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "bob@example.com",
		"password": "password123",
	})

	if w.Code != http.StatusForbidden {
		t.Errorf("deactivated login status = %d, want 403", w.Code)
	}
}

func TestMe(t *testing.T) {
	r := setupAPI(t)

	user := testutil.CreateUser(t, "Carol", "carol@example.com", models.RoleTeamMember)

	w := doRequest(t, r, http.MethodGet, "/api/auth/me", authToken(t, user), nil)

	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d, body %s", w.Code, w.Body.String())
	}

	var body struct {
		User types.UserResponse `json:"user"`
	}

	decodeBody(t, w, &body)

	if body.User.ID != user.ID {
		t.Errorf("me returned user %d, want %d", body.User.ID, user.ID)
	}

	w = doRequest(t, r, http.MethodGet, "/api/auth/me", "", nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("me without token status = %d, want 401", w.Code)
	}
}
