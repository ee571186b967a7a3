package catalog

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/zyedidia/generic/mapset"

	"github.com/robalobadob/logoquiz/internal/random"
)

func pngBytes(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func testFS(t *testing.T, names ...string) fstest.MapFS {
	t.Helper()
	data := pngBytes(t, color.RGBA{R: 255, A: 255})
	fsys := fstest.MapFS{}
	for _, n := range names {
		fsys[n] = &fstest.MapFile{Data: data}
	}
	return fsys
}

func TestNewRecognisesExtensions(t *testing.T) {
	fsys := testFS(t, "acme.png", "Bolt.JPG", "crest.jpeg", "delta.PnG", "notes.txt", "archive.gif")
	fsys["sub/inner.png"] = &fstest.MapFile{Data: []byte("x")}

	c, err := New(fsys)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	got := c.IDs()
	want := []string{"Bolt", "acme", "crest", "delta"}
	if len(got) != len(want) {
		t.Fatalf("IDs() = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("IDs()[%d] = %q, expected %q", i, got[i], want[i])
		}
	}
}

func TestNewCollapsesDuplicateIdentifiers(t *testing.T) {
	c, err := New(testFS(t, "acme.png", "acme.JPG"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", c.Len())
	}
}

func TestNewEmpty(t *testing.T) {
	_, err := New(testFS(t, "readme.md"))
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestResolveExtensionOrder(t *testing.T) {
	c, err := New(testFS(t, "acme.JPG", "acme.png", "bolt.JPEG"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	tests := []struct {
		id       string
		expected string
	}{
		{"acme", "acme.png"},
		{"bolt", "bolt.JPEG"},
	}
	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			got, err := c.Resolve(tc.id)
			if err != nil {
				t.Fatalf("Resolve() failed: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Resolve(%q) = %q, expected %q", tc.id, got, tc.expected)
			}
		})
	}
}

func TestResolveNotFound(t *testing.T) {
	fsys := testFS(t, "acme.png")
	c, err := New(fsys)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	delete(fsys, "acme.png")

	if _, err := c.Resolve("acme"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after file removal, got %v", err)
	}
	if _, err := c.Resolve("../etc/passwd"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for invalid path, got %v", err)
	}
}

func TestLoadDecodes(t *testing.T) {
	c, err := New(testFS(t, "acme.png"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	img, err := c.Load("acme")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
}

func TestLoadCorruptFile(t *testing.T) {
	fsys := fstest.MapFS{"acme.png": &fstest.MapFile{Data: []byte("not an image")}}
	c, err := New(fsys)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if _, err := c.Load("acme"); err == nil {
		t.Error("expected decode error")
	}
}

func TestSampleOptions(t *testing.T) {
	c, err := New(testFS(t, "a.png", "b.png", "c.png", "d.png", "e.png", "f.png", "g.png", "h.png"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	rng := random.New(42)
	for i := 0; i < 100; i++ {
		opts := c.SampleOptions(rng, "c", 6)
		if len(opts) != 6 {
			t.Fatalf("len(options) = %d, expected 6", len(opts))
		}
		seen := map[string]bool{}
		for _, o := range opts {
			if seen[o] {
				t.Fatalf("duplicate option %q in %v", o, opts)
			}
			seen[o] = true
		}
		if !seen["c"] {
			t.Fatalf("target missing from %v", opts)
		}
	}
}

func TestSampleOptionsSmallCatalog(t *testing.T) {
	c, err := New(testFS(t, "a.png", "b.png", "c.png", "d.png"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	opts := c.SampleOptions(random.New(1), "b", 6)
	if len(opts) != 4 {
		t.Fatalf("len(options) = %d, expected 4", len(opts))
	}
	seen := map[string]bool{}
	for _, o := range opts {
		seen[o] = true
	}
	for _, id := range []string{"a", "b", "c", "d"} {
		if !seen[id] {
			t.Errorf("expected %q in %v", id, opts)
		}
	}
}

func TestSampleOptionsOrderVaries(t *testing.T) {
	c, err := New(testFS(t, "a.png", "b.png", "c.png", "d.png"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	rng := random.New(5)
	firsts := map[string]bool{}
	for i := 0; i < 50; i++ {
		firsts[c.SampleOptions(rng, "a", 6)[0]] = true
	}
	if len(firsts) < 2 {
		t.Errorf("expected option order to be shuffled, first entries: %v", firsts)
	}
}

func TestPickNextAvoidsUsed(t *testing.T) {
	c, err := New(testFS(t, "a.png", "b.png", "c.png"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	used := mapset.New[string]()
	used.Put("a")
	used.Put("c")
	rng := random.New(9)
	for i := 0; i < 20; i++ {
		id, ok := c.PickNext(rng, used)
		if !ok || id != "b" {
			t.Fatalf("PickNext() = %q, %v; expected b, true", id, ok)
		}
	}

	used.Put("b")
	if id, ok := c.PickNext(rng, used); ok {
		t.Errorf("expected exhaustion, got %q", id)
	}
}

func TestOpenDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "acme.PNG"), pngBytes(t, color.Black), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	c, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if !c.Contains("acme") {
		t.Errorf("expected acme in %v", c.IDs())
	}
	if _, err := c.Load("acme"); err != nil {
		t.Errorf("Load() failed: %v", err)
	}

	if _, err := Open(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestEmbedded(t *testing.T) {
	c, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded() failed: %v", err)
	}
	if c.Len() < 6 {
		t.Errorf("expected at least 6 embedded logos, got %d", c.Len())
	}
	for _, id := range c.IDs() {
		if _, err := c.Load(id); err != nil {
			t.Errorf("Load(%q) failed: %v", id, err)
		}
	}
}
