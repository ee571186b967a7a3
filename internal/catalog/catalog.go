// internal/catalog/catalog.go
//
// Logo catalog for the quiz.
//
// Responsibilities:
//   - Discover logo images once at startup (png/jpg/jpeg, any case).
//   - Map an identifier (file name without extension) back to its file.
//   - Random selection: next target (avoiding the used set) and distractor options.
//
// Sources:
//   - Open(dir):  a directory on disk (LOGO_DIR).
//   - Embedded(): the sample set compiled into the binary.
//   - New(fsys):  any fs.FS (tests use fstest.MapFS).
//
// The catalog is read-only after construction and safe for concurrent use.

package catalog

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/robalobadob/logoquiz/assets"
	"github.com/robalobadob/logoquiz/internal/random"
)

// Extensions lists the file suffixes Resolve tries, in order.
var Extensions = []string{".png", ".PNG", ".jpg", ".JPG", ".jpeg", ".JPEG"}

var (
	ErrNotFound = errors.New("catalog: logo file not found")
	ErrEmpty    = errors.New("catalog: no logo images found")
)

// Catalog is the fixed set of logo identifiers backed by an fs.FS.
type Catalog struct {
	fsys fs.FS
	ids  []string // sorted, distinct
	set  mapset.Set[string]
}

// New scans the root of fsys for logo images.
// Files whose extension is png, jpg or jpeg in any case are kept;
// identifiers that differ only by extension collapse into one entry.
func New(fsys fs.FS) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("catalog: read dir: %w", err)
	}

	c := &Catalog{fsys: fsys, set: mapset.New[string]()}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := path.Ext(name)
		if !isImageExt(ext) {
			continue
		}
		id := strings.TrimSuffix(name, ext)
		if id == "" || c.set.Has(id) {
			continue
		}
		c.set.Put(id)
		c.ids = append(c.ids, id)
	}
	if len(c.ids) == 0 {
		return nil, ErrEmpty
	}
	sort.Strings(c.ids)
	return c, nil
}

// Open builds a catalog from a directory on disk.
func Open(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog: %s is not a directory", dir)
	}
	return New(os.DirFS(dir))
}

// Embedded builds a catalog from the sample logos compiled into the binary.
func Embedded() (*Catalog, error) {
	return New(assets.Logos())
}

// isImageExt reports whether ext is a recognised image suffix (case-insensitive).
func isImageExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

// Resolve returns the file name for id, trying each of Extensions in order.
func (c *Catalog) Resolve(id string) (string, error) {
	for _, ext := range Extensions {
		name := id + ext
		if !fs.ValidPath(name) {
			break
		}
		if info, err := fs.Stat(c.fsys, name); err == nil && !info.IsDir() {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Load resolves id and decodes the image.
func (c *Catalog) Load(id string) (image.Image, error) {
	name, err := c.Resolve(id)
	if err != nil {
		return nil, err
	}
	f, err := c.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", name, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("catalog: decode %s: %w", name, err)
	}
	return img, nil
}

// PickNext chooses uniformly among identifiers not in used.
// It returns false when every identifier has been used; the caller is
// expected to clear used and try again.
func (c *Catalog) PickNext(rng random.Source, used mapset.Set[string]) (string, bool) {
	available := make([]string, 0, len(c.ids))
	for _, id := range c.ids {
		if !used.Has(id) {
			available = append(available, id)
		}
	}
	if len(available) == 0 {
		return "", false
	}
	return available[rng.Intn(len(available))], true
}

// SampleOptions returns exclude plus up to count-1 distinct other identifiers,
// drawn without replacement, in random order.
func (c *Catalog) SampleOptions(rng random.Source, exclude string, count int) []string {
	distractors := make([]string, 0, len(c.ids))
	for _, id := range c.ids {
		if id != exclude {
			distractors = append(distractors, id)
		}
	}

	n := max(0, min(count-1, len(distractors)))
	// Partial Fisher-Yates: the first n entries become the sample.
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(distractors)-i)
		distractors[i], distractors[j] = distractors[j], distractors[i]
	}

	options := append([]string{exclude}, distractors[:n]...)
	rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	return options
}

// IDs returns a copy of all identifiers, sorted.
func (c *Catalog) IDs() []string {
	return append([]string(nil), c.ids...)
}

// Len reports the number of identifiers.
func (c *Catalog) Len() int { return len(c.ids) }

// Contains reports whether id is in the catalog.
func (c *Catalog) Contains(id string) bool { return c.set.Has(id) }
