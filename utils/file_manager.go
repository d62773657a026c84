package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// CreateTempDir creates the working directory for a video job
func CreateTempDir(baseDir, jobID string) (string, error) {
	jobDir := filepath.Join(baseDir, jobID)

	if err := os.MkdirAll(filepath.Join(jobDir, "output"), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", jobDir, err)
	}

	return jobDir, nil
}

// DownloadFile downloads a file from URL to destination path
func DownloadFile(ctx context.Context, client *http.Client, url, destPath string) error {
	// Create destination directory if not exists
	destDir := filepath.Dir(destPath)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &HTTPStatusError{StatusCode: resp.StatusCode}
	}

	// Copy to a .part file, renamed on success
	tmpPath := destPath + ".part"
	out, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	return os.Rename(tmpPath, destPath)
}

// HTTPStatusError reports a non-200 download response
type HTTPStatusError struct {
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("download failed with status: %d", e.StatusCode)
}

// CleanupJobFiles removes all temporary files for a job
func CleanupJobFiles(baseDir, jobID string) error {
	jobDir := filepath.Join(baseDir, jobID)
	return os.RemoveAll(jobDir)
}

// ScheduleCleanup schedules automatic cleanup after a delay
func ScheduleCleanup(baseDir, jobID string, delay time.Duration) {
	time.AfterFunc(delay, func() {
		_ = CleanupJobFiles(baseDir, jobID)
	})
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
