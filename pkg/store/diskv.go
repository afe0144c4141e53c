package store

import (
	"context"
	"encoding/base32"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
	"github.com/zeebo/blake3"

	"tableflip.dev/leadsheet/pkg/leadsheet"
	"tableflip.dev/leadsheet/pkg/logging"
)

// ErrNotFound is returned by Load, Stat and Delete for unknown sheets.
var ErrNotFound = errors.New("store: sheet not found")

// CurrentSchema tags stored documents.
const CurrentSchema = "leadsheet/v1"

// Persistence defines the persistence contract for lead sheets.
type Persistence interface {
	List(ctx context.Context) []Meta
	Load(name string) (*leadsheet.Snapshot, error)
	// Stat reads the Meta of one sheet from the store itself. Its Digest
	// changes whenever the stored content does, whoever wrote it.
	Stat(name string) (Meta, error)
	Save(name string, snap leadsheet.Snapshot) error
	Delete(name string) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Meta summarizes a stored sheet.
type Meta struct {
	Name     string `json:"name"`
	Size     int    `json:"size"`
	Sections int    `json:"sections"`
	Chords   int    `json:"chords"`
	Digest   string `json:"digest"`
}

// document is the stored form of a sheet.
type document struct {
	Schema string             `json:"schema"`
	Name   string             `json:"name"`
	Digest string             `json:"digest"`
	Sheet  leadsheet.Snapshot `json:"sheet"`
}

func (d *document) meta() Meta {
	m := Meta{Name: d.Name, Size: d.Sheet.Size, Digest: d.Digest}
	for _, rec := range d.Sheet.Items {
		switch rec.Kind {
		case leadsheet.KindSection:
			m.Sections++
		case leadsheet.KindChord:
			m.Chords++
		}
	}
	return m
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	// no read cache: other processes write the same directory
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(key string) (*document, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	doc := &document{}
	if err := json.Unmarshal(val, doc); err != nil {
		return nil, err
	}
	if doc.Name == "" {
		doc.Name = fromName(keyToPathTransform(key).FileName)
	}
	return doc, nil
}

func (p *persistence) List(ctx context.Context) []Meta {
	all := make([]Meta, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if !strings.HasPrefix(key, sheetPrefix+"-") {
			continue
		}
		doc, err := p.read(key)
		if err != nil {
			logging.Warn("store: unreadable sheet", "key", key, "error", err)
			continue
		}
		all = append(all, doc.meta())
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})
	return all
}

func (p *persistence) Load(name string) (*leadsheet.Snapshot, error) {
	key, err := toKey(name)
	if err != nil {
		return nil, err
	}
	if !p.d.Has(key) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	doc, err := p.read(key)
	if err != nil {
		return nil, fmt.Errorf("store: read %q: %w", name, err)
	}
	return &doc.Sheet, nil
}

func (p *persistence) Stat(name string) (Meta, error) {
	key, err := toKey(name)
	if err != nil {
		return Meta{}, err
	}
	if !p.d.Has(key) {
		return Meta{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	doc, err := p.read(key)
	if err != nil {
		return Meta{}, fmt.Errorf("store: read %q: %w", name, err)
	}
	return doc.meta(), nil
}

// Save writes snap under name. A snapshot identical to the stored one is
// not written again.
func (p *persistence) Save(name string, snap leadsheet.Snapshot) error {
	key, err := toKey(name)
	if err != nil {
		return err
	}
	digest, err := Digest(snap)
	if err != nil {
		return err
	}
	if p.d.Has(key) {
		if old, err := p.read(key); err == nil && old.Digest == digest {
			logging.Debug("store: sheet unchanged", "sheet", name, "digest", digest)
			return nil
		}
	}
	data, err := json.Marshal(&document{Schema: CurrentSchema, Name: name, Digest: digest, Sheet: snap})
	if err != nil {
		return err
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %q: %w", name, err)
	}
	return nil
}

func (p *persistence) Delete(name string) error {
	key, err := toKey(name)
	if err != nil {
		return err
	}
	if !p.d.Has(key) {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return p.d.Erase(key)
}

// Digest is the blake3 hash of the JSON form of snap.
func Digest(snap leadsheet.Snapshot) (string, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

const sheetPrefix = "sheet"

// names are base32 encoded so they are safe file names without dashes.
var nameEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `sheet-<encoded name>`
func toKey(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("store: sheet name required")
	}
	return fmt.Sprintf("%s-%s", sheetPrefix, nameEncoding.EncodeToString([]byte(name))), nil
}

func fromName(s string) string {
	name, err := nameEncoding.DecodeString(s)
	if err != nil {
		return fmt.Sprintf("fromName: %s", err)
	}
	return string(name)
}
