package scanner

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"comfyhost/logger"
)

const modelsRootName = "models"

// ModelTree lists every file under root as a nested tree. Directories come
// before files, names sort without case, and directories with no files
// anywhere below them are left out.
func ModelTree(root string) TreeNode {
	tree := TreeNode{Type: TypeDirectory, Name: modelsRootName, Path: "", Children: []TreeNode{}}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return tree
	}

	tree.Children = buildChildren(root, "")
	return tree
}

func buildChildren(dir, rel string) []TreeNode {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("Failed to read model directory", "dir", dir, "error", err)
		return []TreeNode{}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		iFile, jFile := !entries[i].IsDir(), !entries[j].IsDir()
		if iFile != jFile {
			return !iFile
		}
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	children := []TreeNode{}
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		childRel := path.Join(rel, entry.Name())

		if entry.IsDir() {
			grandChildren := buildChildren(full, childRel)
			if len(grandChildren) == 0 {
				continue
			}
			children = append(children, TreeNode{
				Type:     TypeDirectory,
				Name:     entry.Name(),
				Path:     childRel,
				Children: grandChildren,
			})
			continue
		}

		if !entry.Type().IsRegular() {
			// follow symlinks to regular files, skip anything else
			info, err := os.Stat(full)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}

		children = append(children, TreeNode{
			Type:     TypeFile,
			Name:     entry.Name(),
			Path:     childRel,
			FullPath: full,
		})
	}

	return children
}

// Flatten lists the files of a tree in tree order with their parent folder.
func Flatten(tree TreeNode) []ModelFile {
	files := []ModelFile{}
	var walk func(node TreeNode)
	walk = func(node TreeNode) {
		for _, child := range node.Children {
			if child.Type == TypeDirectory {
				walk(child)
				continue
			}
			files = append(files, ModelFile{
				Name:     child.Name,
				Path:     child.Path,
				Folder:   node.Path,
				FullPath: child.FullPath,
			})
		}
	}
	walk(tree)
	return files
}
