package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileInfo describes one discovered report file
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// Discovery finds report files on disk
type Discovery struct {
	maxFileSize int64
}

// NewDiscovery creates a report file discovery handler with the
// specified constraints
func NewDiscovery(maxFileSize int64) *Discovery {
	return &Discovery{
		maxFileSize: maxFileSize,
	}
}

// FindReportFiles searches a directory tree for report files (.pdf,
// .xlsx, .xlsm), optionally filtered by a name query. Files that fail
// basic validation are skipped, not reported as errors.
func (d *Discovery) FindReportFiles(directory, query string) ([]FileInfo, error) {
	if directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}
	if _, err := os.Stat(directory); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", directory)
	}

	absDirectory, err := filepath.Abs(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	var files []FileInfo

	err = filepath.Walk(absDirectory, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr // continue past unreadable entries
		}

		withinDir, err := d.isPathWithinDirectory(path, absDirectory)
		if err != nil || !withinDir {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != absDirectory {
				return filepath.SkipDir
			}
			return nil
		}

		if !isReportFile(info.Name()) {
			return nil
		}
		if info.Size() == 0 || (d.maxFileSize > 0 && info.Size() > d.maxFileSize) {
			return nil
		}
		if query != "" && !strings.Contains(strings.ToLower(info.Name()), query) {
			return nil
		}

		files = append(files, FileInfo{
			Path:         path,
			Name:         info.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	return files, nil
}

// isPathWithinDirectory checks that a path resolves inside the search
// directory, following symlinks
func (d *Discovery) isPathWithinDirectory(path, directory string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}

	realPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return false, fmt.Errorf("failed to evaluate symlinks: %w", err)
		}
		realPath = absPath
	}

	realDir, err := filepath.EvalSymlinks(directory)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate directory symlinks: %w", err)
	}

	realPath = filepath.Clean(realPath)
	realDir = filepath.Clean(realDir)

	if !strings.HasSuffix(realDir, string(filepath.Separator)) {
		realDir += string(filepath.Separator)
	}

	return strings.HasPrefix(realPath, realDir) ||
		realPath == strings.TrimSuffix(realDir, string(filepath.Separator)), nil
}

// isReportFile checks the filename extension against the supported
// report formats
func isReportFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".xlsx", ".xlsm":
		return true
	default:
		return false
	}
}
