package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMemStore_GetSet(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	if _, ok, err := s.Get(ctx, "cart"); err != nil || ok {
		t.Fatalf("empty get: ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "cart", "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "cart", `[{"id":1}]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	v, ok, err := s.Get(ctx, "cart")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if v != `[{"id":1}]` {
		t.Fatalf("value=%q", v)
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")

	a := NewFileStore(path)
	if err := a.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if _, ok, err := a.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("missing file get: ok=%v err=%v", ok, err)
	}
	if err := a.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("set k: %v", err)
	}
	if err := a.Set(ctx, "other", "v2"); err != nil {
		t.Fatalf("set other: %v", err)
	}

	b := NewFileStore(path)
	v, ok, err := b.Get(ctx, "k")
	if err != nil || !ok || v != "v1" {
		t.Fatalf("reopen get: v=%q ok=%v err=%v", v, ok, err)
	}
	v, ok, err = b.Get(ctx, "other")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("reopen other: v=%q ok=%v err=%v", v, ok, err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %d entries", len(entries))
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := NewFileStore(path)
	if _, _, err := s.Get(context.Background(), "k"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestFileStore_PingMissingDir(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope", "storage.json"))
	if err := s.Ping(context.Background()); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestOpen_Drivers(t *testing.T) {
	ctx := context.Background()

	kv, closeFn, err := Open(ctx, Options{Driver: "memory"}, nil)
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	if _, ok := kv.(*MemStore); !ok {
		t.Fatalf("memory driver returned %T", kv)
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	kv, _, err = Open(ctx, Options{Driver: "file", FilePath: filepath.Join(t.TempDir(), "s.json")}, nil)
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	if _, ok := kv.(*FileStore); !ok {
		t.Fatalf("file driver returned %T", kv)
	}

	_, closeFn, err = Open(ctx, Options{Driver: "etcd"}, nil)
	if !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("err=%v want ErrUnknownDriver", err)
	}
	if closeFn == nil {
		t.Fatalf("close func must never be nil")
	}
}
