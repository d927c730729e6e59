package access

import (
	"context"
	"testing"

	"shopwise-server/internal/domain/session/model"
)

type stubRestorer struct {
	state model.State
}

func (s stubRestorer) Restore(context.Context, string) (model.State, error) {
	return s.state, nil
}

func anonymous() model.State {
	return model.Anonymous()
}

func asUser() model.State {
	return model.Authenticated(model.Principal{ID: "1", Username: "muser", Role: model.RoleUser})
}

func asAdmin() model.State {
	return model.Authenticated(model.Principal{ID: "2", Username: "mvc", Role: model.RoleAdmin})
}

func TestRequirementResolution(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		path string
		want Requirement
	}{
		{"/", Public},
		{"/login", Public},
		{"/register", Public},
		{"/pricing", Authenticated},
		{"/dashboard", Authenticated},
		{"/shopping-lists", Authenticated},
		{"/shopping-lists/2", Authenticated},
		{"/stores", Authenticated},
		{"/search", Authenticated},
		{"/admin/users", AdminOnly},
		{"/admin/products", AdminOnly},
		{"/unlisted", Public},
		// prefix match requires a path boundary
		{"/loginx", Public},
		{"/admintools", Public},
	}
	for _, tt := range tests {
		if got := p.Requirement(tt.path); got != tt.want {
			t.Fatalf("Requirement(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestDecide(t *testing.T) {
	g := NewGuard(stubRestorer{}, nil)

	tests := []struct {
		name       string
		state      model.State
		path       string
		want       Outcome
		wantTarget string
	}{
		{name: "anonymous on public page", state: anonymous(), path: "/register", want: Admit},
		{name: "anonymous on pricing", state: anonymous(), path: "/pricing", want: RedirectLogin, wantTarget: "/login"},
		{name: "anonymous on protected page", state: anonymous(), path: "/dashboard", want: RedirectLogin, wantTarget: "/login"},
		{name: "anonymous on admin page", state: anonymous(), path: "/admin/users", want: RedirectLogin, wantTarget: "/login"},
		{name: "user on protected page", state: asUser(), path: "/dashboard", want: Admit},
		{name: "user on admin page goes to landing", state: asUser(), path: "/admin/users", want: RedirectLanding, wantTarget: "/dashboard"},
		{name: "admin on admin page", state: asAdmin(), path: "/admin/users", want: Admit},
		{name: "admin on ordinary protected page", state: asAdmin(), path: "/stores", want: Admit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := g.Decide(tt.state, tt.path)
			if d.Outcome != tt.want {
				t.Fatalf("outcome = %v, want %v", d.Outcome, tt.want)
			}
			if d.Target != tt.wantTarget {
				t.Fatalf("target = %q, want %q", d.Target, tt.wantTarget)
			}
		})
	}
}

func TestEvaluateRestoresFirst(t *testing.T) {
	g := NewGuard(stubRestorer{state: asUser()}, nil)

	d, err := g.Evaluate(context.Background(), "any-token", "/dashboard")
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if d.Outcome != Admit {
		t.Fatalf("expected Admit, got %v", d.Outcome)
	}
	if d.State.Principal == nil || d.State.Principal.Username != "muser" {
		t.Fatalf("decision should carry the restored state: %+v", d.State)
	}
}

func TestEvaluateAnonymous(t *testing.T) {
	g := NewGuard(stubRestorer{state: anonymous()}, nil)

	d, err := g.Evaluate(context.Background(), "", "/shopping-lists")
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if d.Outcome != RedirectLogin || d.Target != "/login" {
		t.Fatalf("expected login redirect, got %+v", d)
	}
}
