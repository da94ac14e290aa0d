package journal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/doeshing/stackctl/internal/domain"
	"github.com/doeshing/stackctl/internal/testutil"
)

func TestRecordAndRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".stackctl", "journal.db")
	store := NewSQLiteStore(path, testutil.NopLogger{})
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	store.Record(ctx, domain.JournalEvent{RunID: "r1", Workflow: domain.WorkflowInstall, Step: "bootstrap", Outcome: domain.OutcomeOK, Detail: "created", At: base})
	store.Record(ctx, domain.JournalEvent{RunID: "r1", Workflow: domain.WorkflowInstall, Step: "build", Outcome: domain.OutcomeFailed, At: base.Add(time.Minute)})
	store.Record(ctx, domain.JournalEvent{RunID: "r2", Workflow: domain.WorkflowStart, Step: "up", Outcome: domain.OutcomeOK, At: base.Add(2 * time.Minute)})

	events, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Step != "up" || events[0].RunID != "r2" || events[0].Workflow != domain.WorkflowStart {
		t.Fatalf("unexpected newest event %+v", events[0])
	}
	if events[1].Outcome != domain.OutcomeFailed || !events[1].At.Equal(base.Add(time.Minute)) {
		t.Fatalf("unexpected second event %+v", events[1])
	}
}

func TestStoreIsLazy(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	store := NewSQLiteStore(filepath.Join(dir, "journal.db"), testutil.NopLogger{})
	events, err := store.Recent(context.Background(), 5)
	if err != nil || len(events) != 0 {
		t.Fatalf("expected empty journal, got %v %v", events, err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatal("reading an absent journal must not create the state directory")
	}
}

func TestRecordSwallowsOpenFailure(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "state")
	if err := os.WriteFile(blocker, []byte("not a dir"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewSQLiteStore(filepath.Join(blocker, "journal.db"), testutil.NopLogger{})
	store.Record(context.Background(), domain.JournalEvent{RunID: "r", Workflow: domain.WorkflowStop, Step: "down", Outcome: domain.OutcomeOK})
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
}
