package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvRoot overrides the managed root directory when set.
const EnvRoot = "VERSO_DIR"

// Paths captures canonical locations for a verso installation root.
type Paths struct {
	Root        string
	ConfigFile  string
	VersionsDir string
	PrevFile    string
	BinDir      string
	LogsDir     string
}

// Resolve determines the managed root using the optional --root flag, the
// VERSO_DIR environment variable, or ~/.verso when both are empty.
func Resolve(rootFlag string) (Paths, error) {
	root := rootFlag
	if root == "" {
		root = os.Getenv(EnvRoot)
	}
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, fmt.Errorf("detect user home: %w", err)
		}
		root = filepath.Join(home, ".verso")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return Paths{}, fmt.Errorf("resolve managed root: %w", err)
	}
	return newPaths(abs), nil
}

func newPaths(root string) Paths {
	versionsDir := filepath.Join(root, "versions")
	return Paths{
		Root:        root,
		ConfigFile:  filepath.Join(root, "config.yaml"),
		VersionsDir: versionsDir,
		PrevFile:    filepath.Join(versionsDir, ".prev"),
		BinDir:      filepath.Join(root, "bin"),
		LogsDir:     filepath.Join(root, "logs"),
	}
}

// Link returns the activation symlink path for the given executable name.
func (p Paths) Link(binary string) string {
	return filepath.Join(p.BinDir, binary)
}

// WithBinDir returns a copy of p with the bin directory replaced. The
// config may point activation at a directory outside the managed root.
func (p Paths) WithBinDir(dir string) Paths {
	if dir == "" {
		return p
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(p.Root, dir)
	}
	p.BinDir = filepath.Clean(dir)
	return p
}

// EnsureVersionsDir creates the versions directory hierarchy.
func (p Paths) EnsureVersionsDir() error {
	if err := os.MkdirAll(p.VersionsDir, 0o755); err != nil {
		return fmt.Errorf("create versions directory: %w", err)
	}
	return nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
