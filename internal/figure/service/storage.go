package service

import (
	"fmt"
	"os"
	"path/filepath"
)

// ============================================================
// File Storage
// ============================================================

// FileStorage раскладывает загруженные файлы по каталогам рабочих областей.
type FileStorage struct {
	root string
}

func NewFileStorage(root string) *FileStorage {
	return &FileStorage{root: root}
}

func (s *FileStorage) WorkspaceDir(workspaceID string) string {
	return filepath.Join(s.root, workspaceID)
}

func (s *FileStorage) UploadsDir(workspaceID string) string {
	return filepath.Join(s.WorkspaceDir(workspaceID), "uploads")
}

// UploadPath путь загрузки; от имени файла остаётся только базовая часть.
func (s *FileStorage) UploadPath(workspaceID, filename string) string {
	return filepath.Join(s.UploadsDir(workspaceID), filepath.Base(filepath.Clean("/"+filename)))
}

func (s *FileStorage) EnsureUploadsDir(workspaceID string) error {
	path := s.UploadsDir(workspaceID)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir uploads dir: %w", err)
	}
	return nil
}

// SaveUpload пишет файл в каталог загрузок и возвращает его путь.
func (s *FileStorage) SaveUpload(workspaceID, filename string, data []byte) (string, error) {
	if err := s.EnsureUploadsDir(workspaceID); err != nil {
		return "", err
	}
	target := s.UploadPath(workspaceID, filename)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return target, nil
}

// RemoveWorkspace удаляет все файлы рабочей области.
func (s *FileStorage) RemoveWorkspace(workspaceID string) error {
	if err := os.RemoveAll(s.WorkspaceDir(workspaceID)); err != nil {
		return fmt.Errorf("remove workspace dir: %w", err)
	}
	return nil
}
