package catalog

import (
	"context"
	"reflect"
	"testing"

	"github.com/rushteam/cfrec/store"
)

const (
	mbid1 = "3acb406f-c716-45f8-a8bd-96ca3939c2e5"
	mbid2 = "2acb406f-c716-45f8-a8bd-96ca3939c2e5"
)

func TestMemoryCatalog(t *testing.T) {
	ctx := context.Background()
	cat := NewMemory()

	if err := cat.Add(1, mbid1); err != nil {
		t.Fatal(err)
	}
	if err := cat.Add(2, mbid2); err != nil {
		t.Fatal(err)
	}

	t.Run("rejects malformed mbid", func(t *testing.T) {
		if err := cat.Add(3, "not-a-uuid"); err == nil {
			t.Fatal("expected error for malformed mbid")
		}
	})

	t.Run("bidirectional lookup", func(t *testing.T) {
		mbid, err := cat.MBID(ctx, 1)
		if err != nil {
			t.Fatal(err)
		}
		if mbid != mbid1 {
			t.Errorf("MBID(1) = %q, want %q", mbid, mbid1)
		}

		id, err := cat.RecordingID(ctx, mbid2)
		if err != nil {
			t.Fatal(err)
		}
		if id != 2 {
			t.Errorf("RecordingID = %d, want 2", id)
		}
	})

	t.Run("missing entries", func(t *testing.T) {
		if _, err := cat.MBID(ctx, 99); err == nil {
			t.Fatal("expected error for unknown recording")
		}
		if _, err := cat.RecordingID(ctx, "9acb406f-c716-45f8-a8bd-96ca3939c2e5"); err == nil {
			t.Fatal("expected error for unknown mbid")
		}
	})

	t.Run("batch skips unknown ids", func(t *testing.T) {
		got, err := cat.BatchMBID(ctx, []int64{1, 2, 99})
		if err != nil {
			t.Fatal(err)
		}
		want := map[int64]string{1: mbid1, 2: mbid2}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})
}

func TestStoreCatalog(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	cat := NewStoreCatalog(s)

	if err := cat.Add(ctx, 1, mbid1); err != nil {
		t.Fatal(err)
	}
	if err := cat.Add(ctx, 2, mbid2); err != nil {
		t.Fatal(err)
	}
	if err := cat.Add(ctx, 3, "garbage"); err == nil {
		t.Fatal("expected error for malformed mbid")
	}

	mbid, err := cat.MBID(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if mbid != mbid2 {
		t.Errorf("MBID(2) = %q, want %q", mbid, mbid2)
	}

	id, err := cat.RecordingID(ctx, mbid1)
	if err != nil {
		t.Fatal(err)
	}
	if id != 1 {
		t.Errorf("RecordingID = %d, want 1", id)
	}

	got, err := cat.BatchMBID(ctx, []int64{1, 2, 42})
	if err != nil {
		t.Fatal(err)
	}
	want := map[int64]string{1: mbid1, 2: mbid2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
