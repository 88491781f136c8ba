package scanner

import "errors"

var (
	ErrUnknownMediaKind = errors.New("type must be image or video")
	ErrMediaRootMissing = errors.New("media directory not found")
	ErrOutsideRoot      = errors.New("invalid path")
)

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

const (
	TypeDirectory = "directory"
	TypeFile      = "file"
)

type (
	// TreeNode is one entry of the models tree. FullPath is only set on files.
	TreeNode struct {
		Type     string     `json:"type"`
		Name     string     `json:"name"`
		Path     string     `json:"path"`
		FullPath string     `json:"full_path,omitempty"`
		Children []TreeNode `json:"children,omitempty"`
	}

	ModelFile struct {
		Name     string `json:"name"`
		Path     string `json:"path"`
		Folder   string `json:"folder"`
		FullPath string `json:"full_path"`
	}
)
