// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents what a write did to a source file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusNew                  // File did not exist before the write
	StatusModified             // File existed and its content changed
	StatusUnchanged            // File existed with the same content
	StatusDeleted              // File was removed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// 📄 FileInfo contains metadata about a written source file
type FileInfo struct {
	Path     string     // Path relative to the manager's base dir
	Status   FileStatus // What the last operation did
	Size     int64      // Bytes written
	Checksum string     // SHA-256 of the content written
	Error    error      // Any error associated with this file
}

// 💾 Manager writes passage sources back to disk and tracks what changed
type Manager struct {
	baseDir   string          // Base directory for all operations
	logger    *zerolog.Logger // Logger for status updates
	formatter Formatter       // Formatter for status messages

	mu    sync.RWMutex
	files map[string]FileInfo
}

// 🏭 New creates a new status manager
func New(baseDir string, logger *zerolog.Logger) *Manager {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Manager{
		baseDir:   filepath.Clean(baseDir),
		logger:    logger,
		formatter: NewDefaultFormatter(),
		files:     make(map[string]FileInfo),
	}
}

// 🔒 getAbsPath returns the absolute path for a slash separated relative path
func (m *Manager) getAbsPath(path string) string {
	return filepath.Join(m.baseDir, filepath.FromSlash(path))
}

// 🔍 calculateChecksum generates a SHA-256 hash of the content
func calculateChecksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// WriteFile writes content to path atomically, creating parent directories,
// and records whether the file was new, modified or unchanged.
func (m *Manager) WriteFile(ctx context.Context, path string, content []byte) (FileInfo, error) {
	absPath := m.getAbsPath(path)

	info := FileInfo{
		Path:     path,
		Size:     int64(len(content)),
		Checksum: calculateChecksum(content),
	}

	existing, err := os.ReadFile(absPath)
	switch {
	case err == nil && calculateChecksum(existing) == info.Checksum:
		info.Status = StatusUnchanged
		m.TrackFile(ctx, path, info)
		return info, nil
	case err == nil:
		info.Status = StatusModified
	case os.IsNotExist(err):
		info.Status = StatusNew
	default:
		return FileInfo{}, errors.Errorf("reading existing file: %w", err)
	}

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return FileInfo{}, errors.Errorf("creating parent directories: %w", err)
	}

	if err := m.WriteFileAtomic(ctx, path, content); err != nil {
		info.Error = err
		m.TrackFile(ctx, path, info)
		return FileInfo{}, err
	}

	m.TrackFile(ctx, path, info)
	return info, nil
}

// WriteFileAtomic writes to a temp file next to path and renames it into place.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	absPath := m.getAbsPath(path)
	tempPath := absPath + ".tmp"

	mode := os.FileMode(0644)
	if st, err := os.Stat(absPath); err == nil {
		mode = st.Mode().Perm()
	}

	// Write to temp file
	if err := os.WriteFile(tempPath, content, mode); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// DeleteFile removes path and records it as deleted.
func (m *Manager) DeleteFile(ctx context.Context, path string) error {
	if err := os.Remove(m.getAbsPath(path)); err != nil {
		return errors.Errorf("deleting file: %w", err)
	}
	m.TrackFile(ctx, path, FileInfo{Path: path, Status: StatusDeleted})
	return nil
}

// FileExists reports whether path exists under the base dir.
func (m *Manager) FileExists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(m.getAbsPath(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

// TrackFile records info for path and logs it through the formatter.
func (m *Manager) TrackFile(ctx context.Context, path string, info FileInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[path] = info
	msg := m.formatter.FormatFileOperation(path, info.Status)
	if info.Error != nil {
		msg = m.formatter.FormatError(info.Error)
	}
	m.logger.Info().Str("path", path).Str("status", info.Status.String()).Msg(msg)
}

// GetFileInfo returns what was recorded for path.
func (m *Manager) GetFileInfo(ctx context.Context, path string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	info, ok := m.files[path]
	if !ok {
		return FileInfo{}, errors.Errorf("file not tracked: %s", path)
	}
	return info, nil
}

// ListFiles returns every tracked file sorted by path.
func (m *Manager) ListFiles(ctx context.Context) []FileInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]FileInfo, 0, len(m.files))
	for _, info := range m.files {
		files = append(files, info)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}
