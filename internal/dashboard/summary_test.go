package dashboard

import (
	"testing"

	"github.com/teamtrack-dev/teamtrack/internal/models"
	"github.com/teamtrack-dev/teamtrack/internal/testutil"
)

func TestBuildSummaryEmpty(t *testing.T) {
	testutil.OpenTestDB(t)

	user := testutil.CreateUser(t, "User", "user@example.com", models.RoleTeamMember)

	summary, err := BuildSummary(&user)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalTasks != 0 || summary.CompletedTasks != 0 || summary.PendingTasks != 0 {
		t.Errorf("expected all-zero summary, got %+v", summary)
	}

	if summary.Projects == nil {
		t.Error("expected empty project list, got nil")
	}

	if len(summary.Projects) != 0 {
		t.Errorf("expected no projects, got %d", len(summary.Projects))
	}
}

func TestBuildSummaryCounts(t *testing.T) {
	testutil.OpenTestDB(t)

	owner := testutil.CreateUser(t, "Owner", "owner@example.com", models.RoleTeamMember)

	alpha := testutil.CreateProject(t, "Alpha", owner)
	beta := testutil.CreateProject(t, "Beta", owner)
	testutil.AddMember(t, alpha, owner, models.MemberRoleProjectAdmin)
	testutil.AddMember(t, beta, owner, models.MemberRoleProjectAdmin)

	// Alpha: one of three done. Beta: no tasks at all.
	testutil.CreateTask(t, alpha, owner, "T1", models.TaskStatusDone)
	testutil.CreateTask(t, alpha, owner, "T2", models.TaskStatusTodo)
	testutil.CreateTask(t, alpha, owner, "T3", models.TaskStatusInProgress)

	summary, err := BuildSummary(&owner)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalTasks != 3 || summary.CompletedTasks != 1 || summary.PendingTasks != 2 {
		t.Errorf("global counts = %d/%d/%d, want 3/1/2",
			summary.TotalTasks, summary.CompletedTasks, summary.PendingTasks)
	}

	if len(summary.Projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(summary.Projects))
	}

	byID := make(map[uint]ProjectProgress)

	for _, progress := range summary.Projects {
		byID[progress.ID] = progress

		if progress.CompletedTasks+progress.PendingTasks != progress.TotalTasks {
			t.Errorf("project %d: completed+pending = %d, want %d",
				progress.ID, progress.CompletedTasks+progress.PendingTasks, progress.TotalTasks)
		}
	}

	if got := byID[alpha.ID].ProgressPct; got != 33.3 {
		t.Errorf("Alpha progress = %v, want 33.3", got)
	}

	if got := byID[beta.ID].ProgressPct; got != 0.0 {
		t.Errorf("Beta (no tasks) progress = %v, want 0.0", got)
	}
}

func TestBuildSummaryFullCompletion(t *testing.T) {
	testutil.OpenTestDB(t)

	owner := testutil.CreateUser(t, "Owner", "owner@example.com", models.RoleTeamMember)

	project := testutil.CreateProject(t, "Alpha", owner)
	testutil.AddMember(t, project, owner, models.MemberRoleProjectAdmin)

	testutil.CreateTask(t, project, owner, "T1", models.TaskStatusDone)

	summary, err := BuildSummary(&owner)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summary.Projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(summary.Projects))
	}

	if got := summary.Projects[0].ProgressPct; got != 100.0 {
		t.Errorf("progress = %v, want 100.0", got)
	}
}

func TestBuildSummaryScopedToVisibleProjects(t *testing.T) {
	testutil.OpenTestDB(t)

	owner := testutil.CreateUser(t, "Owner", "owner@example.com", models.RoleTeamMember)
	member := testutil.CreateUser(t, "Member", "member@example.com", models.RoleTeamMember)

	visible := testutil.CreateProject(t, "Visible", owner)
	hidden := testutil.CreateProject(t, "Hidden", owner)
	testutil.AddMember(t, visible, member, models.MemberRoleMember)

	testutil.CreateTask(t, visible, owner, "V1", models.TaskStatusTodo)
	testutil.CreateTask(t, hidden, owner, "H1", models.TaskStatusTodo)
	testutil.CreateTask(t, hidden, owner, "H2", models.TaskStatusDone)

	summary, err := BuildSummary(&member)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalTasks != 1 {
		t.Errorf("expected 1 visible task, got %d", summary.TotalTasks)
	}

	if len(summary.Projects) != 1 {
		t.Fatalf("expected 1 visible project, got %d", len(summary.Projects))
	}

	if summary.Projects[0].ID != visible.ID {
		t.Errorf("expected project %d, got %d", visible.ID, summary.Projects[0].ID)
	}
}

func TestProgressPctRounding(t *testing.T) {
	cases := []struct {
		completed int64
		total     int64
		want      float64
	}{
		{0, 0, 0.0},
		{0, 1, 0.0},
		{1, 1, 100.0},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{1, 6, 16.7},
		{1, 8, 12.5},
	}

	for _, tc := range cases {
		if got := progressPct(tc.completed, tc.total); got != tc.want {
			t.Errorf("progressPct(%d, %d) = %v, want %v", tc.completed, tc.total, got, tc.want)
		}
	}
}
