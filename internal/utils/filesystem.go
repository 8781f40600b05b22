package utils

import "os"

func DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDir creates path and its parents unless it already is a directory.
func EnsureDir(path string) error {
	if DirectoryExists(path) {
		return nil
	}
	return os.MkdirAll(path, 0o755)
}
