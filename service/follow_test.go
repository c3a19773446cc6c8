package service

import (
	"context"
	"errors"
	"testing"

	"github.com/getplume/plume/domain"
)

func TestFollowCreate(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	store.addUser("bob")
	svc := NewFollowService(store, store)

	follow, err := svc.Create(context.Background(), alice, "bob")
	if err != nil {
		t.Fatalf("failed to follow: %v", err)
	}
	if follow.User != "alice" || follow.Following != "bob" {
		t.Errorf("unexpected follow pair: %q -> %q", follow.User, follow.Following)
	}
}

func TestFollowCreateAnonymous(t *testing.T) {
	store := newMemStore()
	store.addUser("bob")
	svc := NewFollowService(store, store)

	if _, err := svc.Create(context.Background(), nil, "bob"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestFollowSelf(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	svc := NewFollowService(store, store)

	// Self-follow is rejected regardless of store state, and before the
	// target-existence check.
	_, err := svc.Create(context.Background(), alice, "alice")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "cannot follow yourself" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestFollowUnknownTarget(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	svc := NewFollowService(store, store)

	_, err := svc.Create(context.Background(), alice, "ghost")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != `user "ghost" not found` {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestFollowDuplicate(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	store.addUser("bob")
	svc := NewFollowService(store, store)

	if _, err := svc.Create(context.Background(), alice, "bob"); err != nil {
		t.Fatalf("first follow failed: %v", err)
	}

	_, err := svc.Create(context.Background(), alice, "bob")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "already following this user" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if len(store.follows) != 1 {
		t.Errorf("expected exactly one follow row, got %d", len(store.follows))
	}
}

func TestFollowConstraintRaceMapsToValidation(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	bob := store.addUser("bob")
	svc := NewFollowService(store, store)

	// Simulate losing the insert race: the row appears between the
	// pre-check and the insert. The store reports the constraint violation
	// and the service surfaces the usual validation error.
	store.CreateFollow(context.Background(), &domain.Follow{
		UserID: alice.ID, User: "alice", FollowingID: bob.ID, Following: "bob",
	})
	// Bypass the pre-check by racing directly against the repository.
	err := store.CreateFollow(context.Background(), &domain.Follow{
		UserID: alice.ID, User: "alice", FollowingID: bob.ID, Following: "bob",
	})
	if !errors.Is(err, domain.ErrDuplicateFollow) {
		t.Fatalf("expected ErrDuplicateFollow from store, got %v", err)
	}

	_, err = svc.Create(context.Background(), alice, "bob")
	if !domain.IsValidation(err) || err.Error() != "already following this user" {
		t.Errorf("expected duplicate validation error, got %v", err)
	}
}

func TestFollowListScopedToActor(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	bob := store.addUser("bob")
	store.addUser("carol")
	svc := NewFollowService(store, store)

	svc.Create(context.Background(), alice, "bob")
	svc.Create(context.Background(), alice, "carol")
	svc.Create(context.Background(), bob, "carol")

	list, err := svc.List(context.Background(), alice, "")
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 follows for alice, got %d", len(list))
	}
	for _, f := range list {
		if f.User != "alice" {
			t.Errorf("foreign follow leaked into listing: %q -> %q", f.User, f.Following)
		}
	}

	// Search matches either side's username.
	list, _ = svc.List(context.Background(), alice, "car")
	if len(list) != 1 || list[0].Following != "carol" {
		t.Errorf("unexpected search result: %+v", list)
	}

	if _, err := svc.List(context.Background(), nil, ""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated for anonymous list, got %v", err)
	}
}
