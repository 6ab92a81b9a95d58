package site

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// copyTree copies every file of fsys into dst, creating directories as needed.
// Existing files in dst are overwritten, so later calls overlay earlier ones.
func copyTree(fsys fs.FS, dst string) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		dstPath := filepath.Join(dst, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(dstPath, 0755)
		}
		return copyFile(fsys, path, dstPath)
	})
}

func copyFile(fsys fs.FS, src, dst string) error {
	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}

// copyStatic writes the embedded assets to outputDir and lays the user's
// static directory, when present, on top of them.
func copyStatic(staticDir, outputDir string) error {
	if err := copyTree(defaultStatic(), outputDir); err != nil {
		return fmt.Errorf("failed to copy default static assets: %w", err)
	}
	if staticDir == "" {
		return nil
	}
	info, err := os.Stat(staticDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat static directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("static path %s is not a directory", staticDir)
	}
	if err := copyTree(os.DirFS(staticDir), outputDir); err != nil {
		return fmt.Errorf("failed to copy static directory: %w", err)
	}
	return nil
}
