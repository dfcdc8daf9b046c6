package service

import (
    "context"
    "sync"
    "time"

    "github.com/gatherly/event-registration/internal/model"
)

// memStore is an in-memory Store used to exercise the services without a
// database.  A single mutex held for the whole transaction stands in for
// the event row lock: transactions are fully serialized, which is the
// same guarantee FOR UPDATE gives per event, just coarser.  Mutations
// are rolled back from a snapshot when the callback fails.
type memStore struct {
    mu     sync.Mutex
    events map[uint64]model.Event
    regs   map[uint64]model.Registration
    nextID uint64
}

func newMemStore() *memStore {
    return &memStore{
        events: make(map[uint64]model.Event),
        regs:   make(map[uint64]model.Registration),
    }
}

func (s *memStore) addEvent(id uint64, state model.EventState, capacity uint32) {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.events[id] = model.Event{ID: id, Title: "test event", Capacity: capacity, State: state}
}

func (s *memStore) liveCount(eventID uint64) int {
    s.mu.Lock()
    defer s.mu.Unlock()
    n := 0
    for _, r := range s.regs {
        if r.EventID == eventID && r.Status == model.RegistrationRegistered {
            n++
        }
    }
    return n
}

func (s *memStore) EventByID(_ context.Context, eventID uint64) (model.Event, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    ev, ok := s.events[eventID]
    if !ok {
        return model.Event{}, ErrEventNotFound
    }
    return ev, nil
}

func (s *memStore) SetEventState(_ context.Context, eventID uint64, state model.EventState) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    ev, ok := s.events[eventID]
    if !ok {
        return ErrEventNotFound
    }
    ev.State = state
    s.events[eventID] = ev
    return nil
}

func (s *memStore) InTx(_ context.Context, fn func(tx Tx) error) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    snapshot := make(map[uint64]model.Registration, len(s.regs))
    for id, r := range s.regs {
        snapshot[id] = r
    }
    nextID := s.nextID
    if err := fn(&memTx{s: s}); err != nil {
        s.regs = snapshot
        s.nextID = nextID
        return err
    }
    return nil
}

// memTx operates directly on the store maps; the store mutex is already
// held by InTx.
type memTx struct {
    s *memStore
}

func (t *memTx) EventForUpdate(_ context.Context, eventID uint64) (model.Event, error) {
    ev, ok := t.s.events[eventID]
    if !ok {
        return model.Event{}, ErrEventNotFound
    }
    return ev, nil
}

func (t *memTx) CountLiveRegistrations(_ context.Context, eventID uint64) (int, error) {
    n := 0
    for _, r := range t.s.regs {
        if r.EventID == eventID && r.Status == model.RegistrationRegistered {
            n++
        }
    }
    return n, nil
}

func (t *memTx) HasLiveRegistration(_ context.Context, userID, eventID uint64) (bool, error) {
    for _, r := range t.s.regs {
        if r.UserID == userID && r.EventID == eventID && r.Status == model.RegistrationRegistered {
            return true, nil
        }
    }
    return false, nil
}

func (t *memTx) InsertRegistration(_ context.Context, reg *model.Registration) error {
    // Mirrors the unique (user_id, event_id, live) index.
    for _, r := range t.s.regs {
        if r.UserID == reg.UserID && r.EventID == reg.EventID && r.Status == model.RegistrationRegistered {
            return ErrAlreadyRegistered
        }
    }
    t.s.nextID++
    reg.ID = t.s.nextID
    reg.RegisteredAt = time.Now().UTC()
    reg.UpdatedAt = reg.RegisteredAt
    t.s.regs[reg.ID] = *reg
    return nil
}

func (t *memTx) RegistrationForUpdate(_ context.Context, id uint64) (model.Registration, error) {
    r, ok := t.s.regs[id]
    if !ok {
        return model.Registration{}, ErrRegistrationNotFound
    }
    return r, nil
}

func (t *memTx) MarkRegistrationCancelled(_ context.Context, id uint64) error {
    r, ok := t.s.regs[id]
    if !ok {
        return ErrRegistrationNotFound
    }
    r.Status = model.RegistrationCancelled
    r.UpdatedAt = time.Now().UTC()
    t.s.regs[id] = r
    return nil
}
