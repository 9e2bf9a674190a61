package archive

import (
	"context"
	"testing"
	"time"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/memblob"
	"gopkg.in/yaml.v3"
)

func TestSave(t *testing.T) {
	ctx := context.Background()
	bucket, err := blob.OpenBucket(ctx, "mem://")
	if err != nil {
		t.Fatalf("open bucket: %v", err)
	}
	defer bucket.Close()

	solvedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	err = Save(ctx, bucket, "solved/message.txt", Result{
		Message:   "Hello World",
		SourceURL: "http://localhost:8888",
		Fragments: 2,
		Probes:    120,
		Duration:  750 * time.Millisecond,
		SolvedAt:  solvedAt,
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	msg, err := bucket.ReadAll(ctx, "solved/message.txt")
	if err != nil {
		t.Fatalf("read message: %v", err)
	}
	if string(msg) != "Hello World" {
		t.Errorf("expected message %q, got %q", "Hello World", string(msg))
	}

	data, err := bucket.ReadAll(ctx, "solved/message.txt.manifest.yaml")
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal manifest: %v", err)
	}
	if m.SourceURL != "http://localhost:8888" {
		t.Errorf("expected source_url preserved, got %q", m.SourceURL)
	}
	if m.Fragments != 2 {
		t.Errorf("expected 2 fragments, got %d", m.Fragments)
	}
	if m.Probes != 120 {
		t.Errorf("expected 120 probes, got %d", m.Probes)
	}
	if m.Duration != "750ms" {
		t.Errorf("expected duration 750ms, got %q", m.Duration)
	}
	if !m.SolvedAt.Equal(solvedAt) {
		t.Errorf("expected solved_at %v, got %v", solvedAt, m.SolvedAt)
	}
}

func TestSaveEmptyMessage(t *testing.T) {
	ctx := context.Background()
	bucket, err := blob.OpenBucket(ctx, "mem://")
	if err != nil {
		t.Fatalf("open bucket: %v", err)
	}
	defer bucket.Close()

	if err := Save(ctx, bucket, "solved/message.txt", Result{}); err == nil {
		t.Error("expected error for empty message")
	}

	// Nothing is written on refusal.
	if _, err := bucket.ReadAll(ctx, "solved/message.txt"); err == nil {
		t.Error("expected no message object to exist")
	}
}
