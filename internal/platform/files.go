package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Downloads"), nil
}

// CheckWritable verifies the directory can actually receive files by creating
// and removing a probe file. Permission problems surface here instead of
// mid-download.
func CheckWritable(dirPath string) error {
	probe := filepath.Join(dirPath, ".yt-batch-probe")
	f, err := os.Create(probe)
	if err != nil {
		return fmt.Errorf("directory not writable: %w", err)
	}
	f.Close()
	return os.Remove(probe)
}
