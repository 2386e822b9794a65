package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/teamtrack-dev/teamtrack/internal/apperrors"
	"github.com/teamtrack-dev/teamtrack/internal/models"
	"github.com/teamtrack-dev/teamtrack/internal/testutil"
	"github.com/teamtrack-dev/teamtrack/internal/types"
)

func TestUserEndpointsRequireAdmin(t *testing.T) {
	r := setupAPI(t)

	member := testutil.CreateUser(t, "Member", "member@example.com", models.RoleTeamMember)

	w := doRequest(t, r, http.MethodGet, "/api/users", authToken(t, member), nil)

	if w.Code != http.StatusForbidden {
		t.Errorf("non-admin list users status = %d, want 403", w.Code)
	}

	w = doRequest(t, r, http.MethodGet, "/api/users", "", nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous list users status = %d, want 401", w.Code)
	}
}

func TestListUsersFilters(t *testing.T) {
	r := setupAPI(t)

	admin := testutil.CreateUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	testutil.CreateUser(t, "Member", "member@example.com", models.RoleTeamMember)

	token := authToken(t, admin)

	var body struct {
		Users []types.UserResponse `json:"users"`
	}

	w := doRequest(t, r, http.MethodGet, "/api/users", token, nil)
	decodeBody(t, w, &body)

	if len(body.Users) != 2 {
		t.Errorf("unfiltered list = %d users, want 2", len(body.Users))
	}

	w = doRequest(t, r, http.MethodGet, "/api/users?role=ADMIN", token, nil)
	decodeBody(t, w, &body)

	if len(body.Users) != 1 || body.Users[0].Role != models.RoleAdmin {
		t.Errorf("role filter returned %+v, want the single admin", body.Users)
	}
}

func TestUpdateUserByAdmin(t *testing.T) {
	r := setupAPI(t)

	admin := testutil.CreateUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	target := testutil.CreateUser(t, "Member", "member@example.com", models.RoleTeamMember)

	token := authToken(t, admin)

	w := doRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/users/%d", target.ID), token, map[string]interface{}{
		"role":      models.RoleAdmin,
		"is_active": false,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("update user status = %d, body %s", w.Code, w.Body.String())
	}

	// A deactivated account's token stops working on the next request.
	w = doRequest(t, r, http.MethodGet, "/api/auth/me", authToken(t, target), nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("deactivated user request status = %d, want 401", w.Code)
	}
}

func TestUpdateUserUnknownTarget(t *testing.T) {
	r := setupAPI(t)

	admin := testutil.CreateUser(t, "Admin", "admin@example.com", models.RoleAdmin)

	w := doRequest(t, r, http.MethodPatch, "/api/users/99999", authToken(t, admin), map[string]interface{}{
		"is_active": false,
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("unknown target status = %d, want 404", w.Code)
	}
}

func TestAdminSelfProtection(t *testing.T) {
	r := setupAPI(t)

	admin := testutil.CreateUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	token := authToken(t, admin)
	path := fmt.Sprintf("/api/users/%d", admin.ID)

	w := doRequest(t, r, http.MethodPatch, path, token, map[string]interface{}{
		"role": models.RoleTeamMember,
	})

	if w.Code != http.StatusForbidden {
		t.Fatalf("self role change status = %d, want 403", w.Code)
	}

	var body errorBody
	decodeBody(t, w, &body)

	if body.Code != apperrors.CodeCannotChangeOwnRole {
		t.Errorf("error code = %q, want %q", body.Code, apperrors.CodeCannotChangeOwnRole)
	}

	w = doRequest(t, r, http.MethodPatch, path, token, map[string]interface{}{
		"is_active": false,
	})

	if w.Code != http.StatusForbidden {
		t.Fatalf("self deactivate status = %d, want 403", w.Code)
	}

	decodeBody(t, w, &body)

	if body.Code != apperrors.CodeCannotDeactivateSelf {
		t.Errorf("error code = %q, want %q", body.Code, apperrors.CodeCannotDeactivateSelf)
	}

	// Re-stating the current role or is_active=true is a no-op, not an error.
	w = doRequest(t, r, http.MethodPatch, path, token, map[string]interface{}{
		"role":      models.RoleAdmin,
		"is_active": true,
	})

	if w.Code != http.StatusOK {
		t.Errorf("self no-op update status = %d, want 200", w.Code)
	}
}
