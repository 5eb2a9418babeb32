package session

import (
	"strconv"
	"testing"
	"time"

	"github.com/apsara-ai/apsara-server/internal/domain"
)

func TestMemoryStore_GetOrCreateMintsID(t *testing.T) {
	store := NewMemoryStore()

	sess := store.GetOrCreate("")
	if sess.ID == "" {
		t.Fatal("Expected a minted session id")
	}
	if sess.State != domain.StateGreeting {
		t.Errorf("state = %s, want %s", sess.State, domain.StateGreeting)
	}

	again := store.GetOrCreate(sess.ID)
	if again != sess {
		t.Error("Expected the same session record for a known id")
	}
}

func TestMemoryStore_GetOrCreateKeepsSuppliedID(t *testing.T) {
	store := NewMemoryStore()

	sess := store.GetOrCreate("client-chosen-id")
	if sess.ID != "client-chosen-id" {
		t.Errorf("id = %q, want the supplied identifier kept", sess.ID)
	}
}

func TestMemoryStore_GetUnknown(t *testing.T) {
	store := NewMemoryStore()
	if _, ok := store.Get("nope"); ok {
		t.Error("Expected no session for an unknown id")
	}
}

func TestMemoryStore_DeleteRemovesRecord(t *testing.T) {
	store := NewMemoryStore()
	sess := store.GetOrCreate("")

	store.Delete(sess.ID)

	if _, ok := store.Get(sess.ID); ok {
		t.Error("Session still present after delete")
	}
	if store.Len() != 0 {
		t.Errorf("Len = %d, want 0", store.Len())
	}
}

func TestMemoryStore_SweepRemovesOnlyIdleSessions(t *testing.T) {
	store := NewMemoryStore()

	idle := store.GetOrCreate("idle")
	idle.LastActive = time.Now().Add(-2 * time.Hour)
	fresh := store.GetOrCreate("fresh")
	fresh.LastActive = time.Now()

	removed := store.Sweep(time.Hour)

	if removed != 1 {
		t.Errorf("Sweep removed %d sessions, want 1", removed)
	}
	if _, ok := store.Get("idle"); ok {
		t.Error("Idle session survived the sweep")
	}
	if _, ok := store.Get("fresh"); !ok {
		t.Error("Fresh session was swept")
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()

	done := make(chan struct{}, 2)
	go func() {
		for i := 0; i < 1000; i++ {
			store.GetOrCreate("sess-" + strconv.Itoa(i))
		}
		done <- struct{}{}
	}()
	go func() {
		for i := 0; i < 1000; i++ {
			store.Get("sess-" + strconv.Itoa(i))
		}
		done <- struct{}{}
	}()
	<-done
	<-done
}
