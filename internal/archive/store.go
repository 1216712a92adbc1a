package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/diewo77/myinvo/internal/models"
)

// Store persists one record per document under <root>/archives, keyed by
// variant tag and document number. There is no index file and no locking:
// concurrent writers to the same key are last-write-wins at the filesystem
// level, which matches the single-user execution model.
type Store struct {
	root string
}

// NewStore returns a store rooted at the working directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Dir returns the archive directory.
func (s *Store) Dir() string {
	return filepath.Join(s.root, "archives")
}

// Path returns the archive file path for a given tag and number.
func (s *Store) Path(t models.DocType, numero string) string {
	return filepath.Join(s.Dir(), fmt.Sprintf("%s_%s.json", t, numero))
}

// Save encodes the document and writes its archive file, creating the
// directory on first use. It returns the written path.
func (s *Store) Save(doc models.Doc) (string, error) {
	data, err := Encode(doc)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.Dir(), 0o755); err != nil {
		return "", fmt.Errorf("archive: création du dossier: %w", err)
	}
	path := s.Path(doc.Type(), doc.Base().Numero)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("archive: écriture de %s: %w", path, err)
	}
	return path, nil
}

// Load reads and decodes a single archive file.
func (s *Store) Load(path string) (models.Doc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("archive: lecture de %s: %w", path, err)
	}
	return Decode(data)
}

// Entry describes one archived document, as derived from its file name.
type Entry struct {
	Type   models.DocType
	Numero string
	Path   string
}

// List returns the archived documents sorted by file name (the date-based
// numbering makes that chronological). Files that do not follow the
// <type>_<numero>.json convention are skipped.
func (s *Store) List() ([]Entry, error) {
	items, err := os.ReadDir(s.Dir())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("archive: lecture du dossier: %w", err)
	}

	var entries []Entry
	for _, it := range items {
		if it.IsDir() || !strings.HasSuffix(it.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(it.Name(), ".json")
		tag, numero, ok := strings.Cut(name, "_")
		if !ok {
			continue
		}
		t := models.DocType(tag)
		if t != models.TypeDevis && t != models.TypeFacture {
			continue
		}
		entries = append(entries, Entry{Type: t, Numero: numero, Path: filepath.Join(s.Dir(), it.Name())})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}
