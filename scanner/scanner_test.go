package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root string, rel ...string) {
	t.Helper()
	for _, r := range rel {
		full := filepath.Join(root, filepath.FromSlash(r))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0600))
	}
}

func names(nodes []TreeNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestModelTree(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"readme.txt",
		"checkpoints/sdxl.safetensors",
		"checkpoints/A-model.ckpt",
		"loras/style/ink.safetensors",
		"Upscale/4x.pth",
	)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty", "deeper"), 0755))

	tree := ModelTree(root)

	assert.Equal(t, TypeDirectory, tree.Type)
	assert.Equal(t, "models", tree.Name)
	assert.Equal(t, "", tree.Path)
	assert.Equal(t, []string{"checkpoints", "loras", "Upscale", "readme.txt"}, names(tree.Children))

	checkpoints := tree.Children[0]
	assert.Equal(t, "checkpoints", checkpoints.Path)
	assert.Equal(t, []string{"A-model.ckpt", "sdxl.safetensors"}, names(checkpoints.Children))
	assert.Equal(t, "checkpoints/A-model.ckpt", checkpoints.Children[0].Path)
	assert.Equal(t, filepath.Join(root, "checkpoints", "A-model.ckpt"), checkpoints.Children[0].FullPath)

	style := tree.Children[1].Children[0]
	assert.Equal(t, "loras/style", style.Path)
	assert.Equal(t, "loras/style/ink.safetensors", style.Children[0].Path)

	readme := tree.Children[3]
	assert.Equal(t, TypeFile, readme.Type)
	assert.Equal(t, "readme.txt", readme.Path)
}

func TestModelTreeMissingRoot(t *testing.T) {
	tree := ModelTree(filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, "models", tree.Name)
	assert.Empty(t, tree.Children)
}

func TestFlatten(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "vae/a.pt", "top.bin", "loras/x/y.safetensors")

	files := Flatten(ModelTree(root))
	require.Len(t, files, 3)

	assert.Equal(t, ModelFile{Name: "y.safetensors", Path: "loras/x/y.safetensors", Folder: "loras/x", FullPath: filepath.Join(root, "loras", "x", "y.safetensors")}, files[0])
	assert.Equal(t, "vae", files[1].Folder)
	assert.Equal(t, "", files[2].Folder)
	assert.Equal(t, "top.bin", files[2].Path)
}

func TestListMedia(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "b.PNG", "a/cat.jpg", "clips/run.mp4", "notes.txt", "Z.webm", "c.webp")

	images, err := ListMedia(root, MediaImage)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/cat.jpg", "b.PNG", "c.webp"}, images)

	videos, err := ListMedia(root, MediaVideo)
	require.NoError(t, err)
	assert.Equal(t, []string{"clips/run.mp4", "Z.webm"}, videos)
}

func TestListMediaErrors(t *testing.T) {
	_, err := ListMedia(t.TempDir(), MediaKind("audio"))
	assert.ErrorIs(t, err, ErrUnknownMediaKind)

	_, err = ListMedia(filepath.Join(t.TempDir(), "gone"), MediaImage)
	assert.ErrorIs(t, err, ErrMediaRootMissing)
}

func TestParseMediaKind(t *testing.T) {
	kind, err := ParseMediaKind("Video")
	require.NoError(t, err)
	assert.Equal(t, MediaVideo, kind)

	_, err = ParseMediaKind("")
	assert.ErrorIs(t, err, ErrUnknownMediaKind)
}

func TestResolveWithin(t *testing.T) {
	root := t.TempDir()

	full, err := ResolveWithin(root, "a/b.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a", "b.png"), full)

	for _, rel := range []string{"../secret", "a/../../secret", "../" + filepath.Base(root) + "x/file"} {
		_, err := ResolveWithin(root, rel)
		assert.ErrorIs(t, err, ErrOutsideRoot, rel)
	}
}
