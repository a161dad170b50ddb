package reportstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/typhon-lang/typhon-analyzer/internal/ast"
	"github.com/typhon-lang/typhon-analyzer/internal/diagnostics"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reports.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordRun_RoundTripsDiagnostics(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	diags := []diagnostics.Diagnostic{
		&diagnostics.UndefinedName{Name: "foo", Location: ast.Span{Start: 1, End: 4}},
		&diagnostics.NotCallable{TypeName: "Int", Location: ast.Span{Start: 10, End: 14}},
	}
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	if err := s.RecordRun(ctx, "session-1", "main.tph", diags, at); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}

	got, err := s.Diagnostics(ctx, "session-1")
	if err != nil {
		t.Fatalf("Diagnostics() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Diagnostics() len = %d, want 2", len(got))
	}
	if got[0].Kind != "UndefinedName" || got[0].SpanStart != 1 || got[0].SpanEnd != 4 {
		t.Errorf("got[0] = %+v, want kind UndefinedName span [1,4]", got[0])
	}
	if got[1].Kind != "NotCallable" {
		t.Errorf("got[1].Kind = %q, want NotCallable", got[1].Kind)
	}
	if !got[0].ReportedAt.Equal(at) {
		t.Errorf("ReportedAt = %v, want %v", got[0].ReportedAt, at)
	}
}

func TestSessions_OrderedMostRecentFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	earlier := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	if err := s.RecordRun(ctx, "s1", "main.tph", nil, earlier); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}
	if err := s.RecordRun(ctx, "s2", "main.tph", nil, later); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}

	ids, err := s.Sessions(ctx, "main.tph")
	if err != nil {
		t.Fatalf("Sessions() error = %v", err)
	}
	if len(ids) != 2 || ids[0] != "s2" || ids[1] != "s1" {
		t.Errorf("Sessions() = %v, want [s2 s1]", ids)
	}
}

func TestDiagnostics_UnknownSessionReturnsEmpty(t *testing.T) {
	s := openTestStore(t)
	got, err := s.Diagnostics(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("Diagnostics() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Diagnostics() = %v, want empty", got)
	}
}
