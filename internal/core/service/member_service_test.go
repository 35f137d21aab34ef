package service

import (
	"context"
	"testing"

	"github.com/memberhub/community-api/internal/core/domain"
	"github.com/memberhub/community-api/pkg/logger"
)

func TestMemberService_SetBanned(t *testing.T) {
	users := newStubUserRepo()
	keys := newStubKeyRepo()
	u := users.add("alice", "pw1", domain.RoleUser, false)
	svc := NewMemberService(users, keys, logger.Nop())

	if err := svc.SetBanned(context.Background(), u.ID, true); err != nil {
		t.Fatalf("ban failed: %v", err)
	}
	if !users.users["alice"].Banned {
		t.Fatalf("expected user to be banned")
	}

	// Idempotent: setting the flag to its current state is a no-op success.
	if err := svc.SetBanned(context.Background(), u.ID, true); err != nil {
		t.Fatalf("repeated ban failed: %v", err)
	}

	if err := svc.SetBanned(context.Background(), u.ID, false); err != nil {
		t.Fatalf("unban failed: %v", err)
	}
	if users.users["alice"].Banned {
		t.Fatalf("expected user to be unbanned")
	}
}

func TestMemberService_SetBanned_NotFound(t *testing.T) {
	users := newStubUserRepo()
	keys := newStubKeyRepo()
	svc := NewMemberService(users, keys, logger.Nop())

	if err := svc.SetBanned(context.Background(), "missing", true); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemberService_ListMembers_ExcludesAdmins(t *testing.T) {
	users := newStubUserRepo()
	keys := newStubKeyRepo()
	users.add("admin", "Admin@000", domain.RoleAdmin, false)
	users.add("alice", "pw1", domain.RoleUser, false)
	users.add("bob", "pw2", domain.RoleUser, true)
	svc := NewMemberService(users, keys, logger.Nop())

	members, err := svc.ListMembers(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	for _, m := range members {
		if m.Role == domain.RoleAdmin {
			t.Fatalf("admin account leaked into member listing: %+v", m)
		}
	}
}
