package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var mediaExtensions = map[MediaKind]map[string]bool{
	MediaImage: {".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true, ".webp": true, ".tiff": true},
	MediaVideo: {".mp4": true, ".mov": true, ".avi": true, ".mkv": true, ".webm": true},
}

// ParseMediaKind accepts "image" or "video" in any case.
func ParseMediaKind(s string) (MediaKind, error) {
	kind := MediaKind(strings.ToLower(s))
	if _, ok := mediaExtensions[kind]; !ok {
		return "", ErrUnknownMediaKind
	}
	return kind, nil
}

// ListMedia returns slash separated paths, relative to root, of every file
// below root with an extension of the given kind.
func ListMedia(root string, kind MediaKind) ([]string, error) {
	exts, ok := mediaExtensions[kind]
	if !ok {
		return nil, ErrUnknownMediaKind
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, ErrMediaRootMissing
	}

	matches := []string{}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || !exts[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		matches = append(matches, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan media in %s: %w", root, err)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return strings.ToLower(matches[i]) < strings.ToLower(matches[j])
	})

	return matches, nil
}

// ResolveWithin joins a slash separated relative path onto root and rejects
// results that escape it.
func ResolveWithin(root, rel string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	full := filepath.Join(absRoot, filepath.FromSlash(rel))
	if full != absRoot && !strings.HasPrefix(full, absRoot+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}

	return full, nil
}
