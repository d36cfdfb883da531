package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	domainauth "github.com/target/pulse-api/internal/domain/auth"
)

func TestNewAuthUser(t *testing.T) {
	acct := Account{
		ID:           "acct-1",
		Username:     "alice",
		PasswordHash: "$2a$10$secret",
		Role:         domainauth.RoleAdmin,
		CreatedAt:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	teams := []Team{{ID: "team-1", Name: "Analytics"}}

	user := NewAuthUser(acct, teams)

	if user.ID != acct.ID || user.Username != acct.Username {
		t.Errorf("NewAuthUser identity = %s/%s, want %s/%s", user.ID, user.Username, acct.ID, acct.Username)
	}
	if !user.IsAdmin {
		t.Error("admin account must produce IsAdmin=true")
	}
	if len(user.Teams) != 1 || user.Teams[0].ID != "team-1" {
		t.Errorf("Teams = %+v, want the provided team", user.Teams)
	}
}

func TestNewAuthUserNonAdmin(t *testing.T) {
	user := NewAuthUser(Account{ID: "acct-2", Role: domainauth.RoleUser}, nil)
	if user.IsAdmin {
		t.Error("user role must produce IsAdmin=false")
	}
}

func TestNewAuthUserNilTeams(t *testing.T) {
	user := NewAuthUser(Account{ID: "acct-3", Role: domainauth.RoleViewOnly}, nil)
	if user.Teams == nil {
		t.Fatal("Teams must never be nil")
	}

	data, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"teams":[]`) {
		t.Errorf("expected empty teams list in JSON, got %s", data)
	}
}

func TestAccountPasswordHashNotSerialized(t *testing.T) {
	acct := Account{ID: "acct-4", Username: "bob", PasswordHash: "$2a$10$topsecret"}

	data, err := json.Marshal(acct)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "topsecret") {
		t.Errorf("password hash leaked into JSON: %s", data)
	}
}
