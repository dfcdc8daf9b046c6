package service

import (
    "context"
    "errors"
    "testing"

    "github.com/gatherly/event-registration/internal/model"
    "github.com/gatherly/event-registration/internal/policy"
)

var (
    manager   = policy.Principal{UserID: 1, Role: policy.RolePlatformManager}
    organizer = policy.Principal{UserID: 2, Role: policy.RoleOrganizer}
    applicant = policy.Principal{UserID: 3, Role: policy.RoleApplicant}
)

func TestApproveAndReject(t *testing.T) {
    ctx := context.Background()
    store := newMemStore()
    store.addEvent(1, model.EventPending, 10)
    lc := NewLifecycle(store)

    if err := lc.Approve(ctx, manager, 1); err != nil {
        t.Fatalf("Approve: %v", err)
    }
    if ok, _ := lc.IsApproved(ctx, 1); !ok {
        t.Error("event should be approved")
    }

    // Approved and rejected are reachable from each other.
    if err := lc.Reject(ctx, manager, 1); err != nil {
        t.Fatalf("Reject after approve: %v", err)
    }
    if ok, _ := lc.IsApproved(ctx, 1); ok {
        t.Error("event should no longer be approved")
    }
    if err := lc.Approve(ctx, manager, 1); err != nil {
        t.Fatalf("Approve after reject: %v", err)
    }
    if ok, _ := lc.IsApproved(ctx, 1); !ok {
        t.Error("event should be approved again")
    }
}

func TestModerationIdempotent(t *testing.T) {
    ctx := context.Background()
    store := newMemStore()
    store.addEvent(1, model.EventPending, 10)
    lc := NewLifecycle(store)

    if err := lc.Approve(ctx, manager, 1); err != nil {
        t.Fatalf("first Approve: %v", err)
    }
    if err := lc.Approve(ctx, manager, 1); err != nil {
        t.Errorf("second Approve: %v, want nil", err)
    }
    if err := lc.Reject(ctx, manager, 1); err != nil {
        t.Fatalf("Reject: %v", err)
    }
    if err := lc.Reject(ctx, manager, 1); err != nil {
        t.Errorf("second Reject: %v, want nil", err)
    }
}

func TestModerationRequiresManager(t *testing.T) {
    ctx := context.Background()
    store := newMemStore()
    store.addEvent(1, model.EventPending, 10)
    lc := NewLifecycle(store)

    for _, p := range []policy.Principal{organizer, applicant, {}} {
        if err := lc.Approve(ctx, p, 1); !errors.Is(err, ErrForbidden) {
            t.Errorf("Approve as %q: err = %v, want ErrForbidden", p.Role, err)
        }
        if err := lc.Reject(ctx, p, 1); !errors.Is(err, ErrForbidden) {
            t.Errorf("Reject as %q: err = %v, want ErrForbidden", p.Role, err)
        }
    }
}

func TestModerationMissingEvent(t *testing.T) {
    ctx := context.Background()
    lc := NewLifecycle(newMemStore())

    if err := lc.Approve(ctx, manager, 99); !errors.Is(err, ErrEventNotFound) {
        t.Errorf("Approve: err = %v, want ErrEventNotFound", err)
    }
    if _, err := lc.IsApproved(ctx, 99); !errors.Is(err, ErrEventNotFound) {
        t.Errorf("IsApproved: err = %v, want ErrEventNotFound", err)
    }
}

// TestRejectedWindowClosesAdmission flips an event approved → rejected
// → approved and checks admission is refused during the rejected window
// and open again afterwards.
func TestRejectedWindowClosesAdmission(t *testing.T) {
    ctx := context.Background()
    store := newMemStore()
    store.addEvent(1, model.EventPending, 10)
    lc := NewLifecycle(store)
    adm := NewAdmission(store)

    if err := lc.Approve(ctx, manager, 1); err != nil {
        t.Fatalf("Approve: %v", err)
    }
    if _, err := adm.Admit(ctx, 1, 20); err != nil {
        t.Fatalf("admit while approved: %v", err)
    }

    if err := lc.Reject(ctx, manager, 1); err != nil {
        t.Fatalf("Reject: %v", err)
    }
    if _, err := adm.Admit(ctx, 1, 21); !errors.Is(err, ErrEventNotApproved) {
        t.Fatalf("admit while rejected: err = %v, want ErrEventNotApproved", err)
    }

    if err := lc.Approve(ctx, manager, 1); err != nil {
        t.Fatalf("re-Approve: %v", err)
    }
    if ok, _ := lc.IsApproved(ctx, 1); !ok {
        t.Error("event should end approved")
    }
    if _, err := adm.Admit(ctx, 1, 21); err != nil {
        t.Errorf("admit after re-approval: %v", err)
    }
}

// TestPendingEventOpensAfterApproval walks the full gate: registration
// is refused while pending and succeeds the moment the event is
// approved.
func TestPendingEventOpensAfterApproval(t *testing.T) {
    ctx := context.Background()
    store := newMemStore()
    store.addEvent(1, model.EventPending, 10)
    lc := NewLifecycle(store)
    adm := NewAdmission(store)

    if _, err := adm.Admit(ctx, 1, 50); !errors.Is(err, ErrEventNotApproved) {
        t.Fatalf("admit while pending: err = %v, want ErrEventNotApproved", err)
    }
    if err := lc.Approve(ctx, manager, 1); err != nil {
        t.Fatalf("Approve: %v", err)
    }
    if _, err := adm.Admit(ctx, 1, 50); err != nil {
        t.Errorf("admit after approval: %v", err)
    }
}
