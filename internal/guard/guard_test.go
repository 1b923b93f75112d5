package guard

import (
	"context"
	"testing"
)

type fakeSession struct {
	authenticated bool
	complete      bool
	checkResult   bool
	checkCalls    int
}

func (f *fakeSession) IsAuthenticated() bool    { return f.authenticated }
func (f *fakeSession) HasCompleteProfile() bool { return f.complete }
func (f *fakeSession) CheckAuth(ctx context.Context) bool {
	f.checkCalls++
	f.authenticated = f.checkResult
	return f.checkResult
}

func mustRoute(t *testing.T, name string) Route {
	t.Helper()
	r, ok := RouteByName(name)
	if !ok {
		t.Fatalf("unknown route %q", name)
	}
	return r
}

func TestUnauthenticatedRedirectsToLogin(t *testing.T) {
	sess := &fakeSession{}
	d := Decide(context.Background(), sess, mustRoute(t, "foods"))

	if d.Allow {
		t.Fatal("unauthenticated navigation to foods was allowed")
	}
	if d.RedirectTo != "login" || d.Intended != "/foods" {
		t.Fatalf("decision: %+v", d)
	}
	if sess.checkCalls != 1 {
		t.Fatalf("CheckAuth calls: got %d, want 1", sess.checkCalls)
	}
}

func TestPersistedTokenRevalidated(t *testing.T) {
	sess := &fakeSession{checkResult: true, complete: true}
	d := Decide(context.Background(), sess, mustRoute(t, "dashboard"))

	if !d.Allow {
		t.Fatalf("decision after successful CheckAuth: %+v", d)
	}
	if sess.checkCalls != 1 {
		t.Fatalf("CheckAuth calls: got %d, want 1", sess.checkCalls)
	}
}

func TestAuthenticatedSkipsCheckAuth(t *testing.T) {
	sess := &fakeSession{authenticated: true}
	d := Decide(context.Background(), sess, mustRoute(t, "recipes"))

	if !d.Allow {
		t.Fatalf("decision: %+v", d)
	}
	if sess.checkCalls != 0 {
		t.Fatalf("CheckAuth calls: got %d, want 0", sess.checkCalls)
	}
}

func TestIncompleteProfileGatesDashboardAndNutrition(t *testing.T) {
	for _, name := range []string{"dashboard", "nutrition"} {
		sess := &fakeSession{authenticated: true}
		d := Decide(context.Background(), sess, mustRoute(t, name))
		if d.Allow || d.RedirectTo != "profile" {
			t.Fatalf("%s with incomplete profile: %+v", name, d)
		}
	}

	// The profile view itself must stay reachable or the user is stuck.
	sess := &fakeSession{authenticated: true}
	if d := Decide(context.Background(), sess, mustRoute(t, "profile")); !d.Allow {
		t.Fatalf("profile view blocked: %+v", d)
	}
}

func TestGuestRoutesRedirectAuthenticated(t *testing.T) {
	for _, name := range []string{"login", "register"} {
		sess := &fakeSession{authenticated: true}
		d := Decide(context.Background(), sess, mustRoute(t, name))
		if d.Allow || d.RedirectTo != "dashboard" {
			t.Fatalf("%s while authenticated: %+v", name, d)
		}
	}
}

func TestGuestRoutesAllowAnonymous(t *testing.T) {
	sess := &fakeSession{}
	if d := Decide(context.Background(), sess, mustRoute(t, "login")); !d.Allow {
		t.Fatalf("anonymous login navigation: %+v", d)
	}
	if sess.checkCalls != 0 {
		t.Fatalf("CheckAuth calls on guest route: got %d, want 0", sess.checkCalls)
	}
}

func TestHomeRedirect(t *testing.T) {
	if got := HomeRedirect(true); got != "dashboard" {
		t.Fatalf("with token: got %s", got)
	}
	if got := HomeRedirect(false); got != "login" {
		t.Fatalf("without token: got %s", got)
	}
}
