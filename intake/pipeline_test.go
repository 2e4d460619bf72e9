package intake

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/bordonalmed/REVELA-sub000/storage/flatkv"
	"github.com/bordonalmed/REVELA-sub000/store"
)

// fakeCompressor tags each input so tests can check ordering without decoding
// anything. failOn < 0 disables failure injection.
type fakeCompressor struct {
	calls  atomic.Int32
	failOn int32
}

func (f *fakeCompressor) Compress(ctx context.Context, file []byte, maxWidth, quality int) (string, error) {
	n := f.calls.Add(1)
	if f.failOn >= 0 && n == f.failOn {
		return "", errors.New("decode failed")
	}
	return fmt.Sprintf("compressed(%s,w=%d,q=%d)", file, maxWidth, quality), nil
}

func newTestPipeline(t *testing.T, failOn int32) (*Pipeline, *store.Store) {
	t.Helper()
	primary, err := flatkv.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open primary: %v", err)
	}
	secondary, err := flatkv.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open secondary: %v", err)
	}
	st := store.New(primary, secondary)

	p, err := NewPipeline(st, &fakeCompressor{failOn: failOn}, WithPoolSize(2))
	if err != nil {
		t.Fatalf("Failed to create pipeline: %v", err)
	}
	t.Cleanup(p.Release)
	return p, st
}

func TestCreateProject(t *testing.T) {
	p, st := newTestPipeline(t, -1)
	ctx := context.Background()

	project, err := p.Create(ctx, &Request{
		Name:        "Knee rehab",
		Date:        "2026-03-14",
		Notes:       "Six weeks apart",
		BeforeFiles: [][]byte{[]byte("b0"), []byte("b1"), []byte("b2")},
		AfterFiles:  [][]byte{[]byte("a0")},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if project.Id == 0 {
		t.Fatal("Expected non-zero project id")
	}
	if len(project.BeforeImages) != 3 || len(project.AfterImages) != 1 {
		t.Fatalf("Image counts wrong: %d before, %d after",
			len(project.BeforeImages), len(project.AfterImages))
	}

	// Concurrent compression must preserve input order
	for i, want := range []string{"b0", "b1", "b2"} {
		got := project.BeforeImages[i]
		if got != fmt.Sprintf("compressed(%s,w=%d,q=%d)", want, DefaultMaxWidth, DefaultQuality) {
			t.Fatalf("BeforeImages[%d] = %q, input order not preserved", i, got)
		}
	}

	// Persisted through the facade
	stored, err := st.GetProject(ctx, project.Id)
	if err != nil {
		t.Fatalf("Project not persisted: %v", err)
	}
	if stored.Notes != "Six weeks apart" {
		t.Fatalf("Expected notes round-trip, got %q", stored.Notes)
	}
}

func TestCreateCustomCompressionSettings(t *testing.T) {
	p, _ := newTestPipeline(t, -1)

	project, err := p.Create(context.Background(), &Request{
		Name:        "Custom",
		BeforeFiles: [][]byte{[]byte("b0")},
		MaxWidth:    800,
		Quality:     50,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	want := "compressed(b0,w=800,q=50)"
	if project.BeforeImages[0] != want {
		t.Fatalf("Expected %q, got %q", want, project.BeforeImages[0])
	}
}

func TestCreateRequiresName(t *testing.T) {
	p, _ := newTestPipeline(t, -1)

	_, err := p.Create(context.Background(), &Request{
		BeforeFiles: [][]byte{[]byte("b0")},
	})
	if err == nil {
		t.Fatal("Expected error for empty name")
	}
}

func TestCreateRequiresImages(t *testing.T) {
	p, _ := newTestPipeline(t, -1)

	_, err := p.Create(context.Background(), &Request{Name: "No images"})
	if !errors.Is(err, ErrNoImages) {
		t.Fatalf("Expected ErrNoImages, got %v", err)
	}
}

func TestCreateCompressionFailureNothingPersisted(t *testing.T) {
	p, st := newTestPipeline(t, 2) // second compression fails
	ctx := context.Background()

	_, err := p.Create(ctx, &Request{
		Name:        "Doomed",
		BeforeFiles: [][]byte{[]byte("b0"), []byte("b1"), []byte("b2")},
	})
	if err == nil {
		t.Fatal("Expected Create to fail when a compression fails")
	}

	all, listErr := st.GetAllProjects(ctx)
	if listErr != nil {
		t.Fatalf("GetAllProjects failed: %v", listErr)
	}
	if len(all) != 0 {
		t.Fatalf("Partial project persisted after failed intake: %d records", len(all))
	}
}

func TestNewPipelineValidation(t *testing.T) {
	primary, err := flatkv.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	st := store.New(primary, primary)

	if _, err := NewPipeline(nil, &fakeCompressor{failOn: -1}); !errors.Is(err, ErrStoreRequired) {
		t.Fatalf("Expected ErrStoreRequired, got %v", err)
	}
	if _, err := NewPipeline(st, nil); !errors.Is(err, ErrCompressorRequired) {
		t.Fatalf("Expected ErrCompressorRequired, got %v", err)
	}
}
