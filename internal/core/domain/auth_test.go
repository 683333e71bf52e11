package domain

import "testing"

func TestHasRole_UnauthenticatedDenies(t *testing.T) {
	ctx := AuthContext{Roles: []string{RoleAdmin}}
	if ctx.HasRole(RoleViewer) {
		t.Fatalf("unauthenticated context must deny even with roles present")
	}
}

func TestHasRole_AdminOverridesEverything(t *testing.T) {
	ctx := AuthContext{IsAuthenticated: true, Roles: []string{RoleAdmin}}

	if !ctx.HasRole(RoleViewer, RoleEditor) {
		t.Errorf("admin must pass a viewer/editor check")
	}
	if !ctx.HasRole("SomeFutureRole") {
		t.Errorf("admin must pass checks for roles it does not hold")
	}
	if !ctx.HasRole() {
		t.Errorf("admin must pass the empty required set")
	}
}

func TestHasRole_Intersection(t *testing.T) {
	ctx := AuthContext{IsAuthenticated: true, Roles: []string{RoleEditor}}

	if !ctx.HasRole(RoleEditor, RoleAdmin) {
		t.Errorf("editor must pass a check that includes Editor")
	}
	if ctx.HasRole(RoleAdmin) {
		t.Errorf("editor must not pass an admin-only check")
	}
	if ctx.HasRole() {
		t.Errorf("non-admin must not pass the empty required set")
	}
}

func TestHasRole_NoRoles(t *testing.T) {
	ctx := AuthContext{IsAuthenticated: true}
	if ctx.HasRole(RoleViewer, RoleEditor, RoleAdmin) {
		t.Fatalf("context with no roles must be denied")
	}
}

func TestActor_FallsBackToUnknown(t *testing.T) {
	if got := (AuthContext{}).Actor(); got != "unknown" {
		t.Errorf("Actor() = %q, want unknown", got)
	}
	if got := (AuthContext{UserEmail: "alice@example.com"}).Actor(); got != "alice@example.com" {
		t.Errorf("Actor() = %q", got)
	}
}
