package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/trip/pkg/itinerary"
)

const (
	documentKey = "itinerary"
	themeKey    = "theme"
	tempDir     = ".tmp"
)

// ErrNoDocument is returned by Load when nothing has been saved yet.
var ErrNoDocument = errors.New("store: no saved itinerary")

// ParseError reports a stored value that could not be decoded.
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("store: parse %s: %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Theme is the display preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark".
func ParseTheme(raw string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(raw))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", fmt.Errorf("store: unknown theme %q, want light or dark", raw)
}

// Persistence keeps the itinerary document and theme preference.
type Persistence interface {
	Load(ctx context.Context) (itinerary.Document, error)
	Save(ctx context.Context, doc itinerary.Document) error
	Theme(ctx context.Context) (Theme, error)
	SetTheme(ctx context.Context, theme Theme) error
	Reset(ctx context.Context) error
	Watch(ctx context.Context) (<-chan Event, error)
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
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	// No read cache: other trip processes write the same files.
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		TempDir:           filepath.Join(basePath, tempDir),
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Load(ctx context.Context) (itinerary.Document, error) {
	if err := ctx.Err(); err != nil {
		return itinerary.Document{}, err
	}
	val, err := p.d.Read(documentKey)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return itinerary.Document{}, ErrNoDocument
		}
		return itinerary.Document{}, fmt.Errorf("store: read %s: %w", documentKey, err)
	}
	var doc itinerary.Document
	if err := json.Unmarshal(val, &doc); err != nil {
		return itinerary.Document{}, &ParseError{Key: documentKey, Err: err}
	}
	return doc.Clone(), nil
}

func (p *persistence) Save(ctx context.Context, doc itinerary.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(doc.Clone())
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", documentKey, err)
	}
	if err := p.d.Write(documentKey, data); err != nil {
		return fmt.Errorf("store: write %s: %w", documentKey, err)
	}
	return nil
}

func (p *persistence) Theme(ctx context.Context) (Theme, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	val, err := p.d.Read(themeKey)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ThemeLight, nil
		}
		return "", fmt.Errorf("store: read %s: %w", themeKey, err)
	}
	var raw string
	if err := json.Unmarshal(val, &raw); err != nil {
		return ThemeLight, &ParseError{Key: themeKey, Err: err}
	}
	theme, err := ParseTheme(raw)
	if err != nil {
		return ThemeLight, &ParseError{Key: themeKey, Err: err}
	}
	return theme, nil
}

func (p *persistence) SetTheme(ctx context.Context, theme Theme) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}
	data, err := json.Marshal(string(theme))
	if err != nil {
		return err
	}
	if err := p.d.Write(themeKey, data); err != nil {
		return fmt.Errorf("store: write %s: %w", themeKey, err)
	}
	return nil
}

// Reset removes the saved document and theme.
func (p *persistence) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, key := range []string{documentKey, themeKey} {
		if err := p.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("store: erase %s: %w", key, err)
		}
	}
	return nil
}

// LoadDocument is the startup read. A missing or unreadable document yields
// seed, with seeded set. Parse failures are logged.
func LoadDocument(ctx context.Context, p Persistence, seed itinerary.Document) (itinerary.Document, bool) {
	doc, err := p.Load(ctx)
	if err == nil {
		return doc, false
	}
	var perr *ParseError
	switch {
	case errors.Is(err, ErrNoDocument):
	case errors.As(err, &perr):
		log.Printf("store: ignoring saved itinerary: %v", perr)
	default:
		fmt.Fprintf(os.Stderr, "store: %v\n", err)
	}
	return seed.Clone(), true
}

func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: key,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
