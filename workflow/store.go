package workflow

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/crypto/sha3"

	"comfyhost/logger"
)

// Store reads workflow documents from a directory tree. It never writes.
type Store struct {
	Root string
}

func NewStore(root string) *Store {
	return &Store{Root: root}
}

// List returns every *.json file below the root, sorted by name ignoring case.
// A missing root yields an empty list.
func (s *Store) List() ([]Entry, error) {
	entries := []Entry{}

	info, err := os.Stat(s.Root)
	if err != nil || !info.IsDir() {
		return entries, nil
	}

	log := logger.With("workflows", s.Root)
	err = filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn("Skipping unreadable workflow path", "path", path, "error", err)
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), ".json") {
			return nil
		}

		rel, err := filepath.Rel(s.Root, path)
		if err != nil {
			log.Warn("Skipping workflow outside root", "path", path, "error", err)
			return nil
		}

		entries = append(entries, Entry{
			Name:     strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())),
			Filename: filepath.ToSlash(rel),
			Path:     path,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan workflows in %s: %w", s.Root, err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	logger.Debug("Scanned workflows", "root", s.Root, "count", len(entries))

	return entries, nil
}

// Resolve maps a workflow name (a slash separated path relative to the root)
// to a file path. Names that leave the root or do not exist are ErrNotFound.
func (s *Store) Resolve(name string) (string, error) {
	if name == "" {
		return "", ErrNotFound
	}

	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	path := filepath.Join(s.Root, clean)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return path, nil
}

// Read returns the stored bytes of a workflow.
func (s *Store) Read(name string) ([]byte, error) {
	path, err := s.Resolve(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to read workflow %s: %w", name, err)
	}

	return data, nil
}

// Load reads and decodes a workflow.
func (s *Store) Load(name string) (Document, error) {
	data, err := s.Read(name)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Decode parses workflow bytes, keeping numbers as json.Number so seeds and
// other large integers are written back unchanged.
func Decode(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := dec.Decode(new(interface{})); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after document", ErrDecode)
	}

	return doc, nil
}

// Fingerprint is a content hash of the stored workflow bytes.
func Fingerprint(data []byte) string {
	hash := sha3.Sum224(data)
	return hex.EncodeToString(hash[:])
}
