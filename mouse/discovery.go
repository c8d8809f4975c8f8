package mouse

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bnema/mousekit/internal/config"
)

// mouseSuffix matches the symlink names udev gives to mouse event devices
const mouseSuffix = "*-event-mouse"

// DevicePaths returns the canonical paths of the mouse event devices
// currently present under the configured input directory.
func DevicePaths() ([]string, error) {
	return mouseDevicePaths(config.Get().Listener.InputDir)
}

// mouseDevicePaths enumerates the mouse event devices under inputDir. The
// by-id and by-path collections are symlink directories that commonly point
// at the same physical device, so every match is resolved to its canonical
// path and deduplicated before use.
func mouseDevicePaths(inputDir string) ([]string, error) {
	var paths []string
	for _, dir := range []string{"by-id", "by-path"} {
		pattern := filepath.Join(inputDir, dir, mouseSuffix)
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s glob pattern: %w", dir, err)
		}
		for _, match := range matches {
			path, err := resolveDevicePath(match)
			if err != nil {
				return nil, err
			}
			if slices.Contains(paths, path) {
				continue
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// resolveDevicePath canonicalizes one glob match. Absolute symlink targets
// are used as-is; relative targets (udev writes e.g. "../event8") resolve
// against the link's parent directory.
func resolveDevicePath(path string) (string, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat device link %s: %w", path, err)
	}
	if fi.Mode()&os.ModeSymlink == 0 {
		return path, nil
	}

	target, err := os.Readlink(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve device link %s: %w", path, err)
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}

	canonical, err := filepath.EvalSymlinks(target)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize device path %s: %w", target, err)
	}
	return canonical, nil
}
