package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaStorage хранит загруженные изображения и видео на локальном диске.
type MediaStorage struct {
	rootPath  string
	publicURL string
}

// SavedFile результат сохранения файла.
type SavedFile struct {
	RelativePath string
	URL          string
	Size         int64
}

// NewMediaStorage создаёт файловое хранилище с корнем rootPath. publicURL
// используется как префикс ссылок, например "/media".
func NewMediaStorage(rootPath, publicURL string) (*MediaStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}

	return &MediaStorage{
		rootPath:  rootPath,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Root возвращает каталог хранилища.
func (s *MediaStorage) Root() string {
	return s.rootPath
}

// Save записывает не больше maxBytes из r в <purpose>/<userID>/ и возвращает путь и URL.
func (s *MediaStorage) Save(ctx context.Context, userID uuid.UUID, purpose, originalName string, r io.Reader, maxBytes int64) (SavedFile, error) {
	if err := ctx.Err(); err != nil {
		return SavedFile{}, err
	}

	safeName := sanitizeFilename(originalName)
	fileName := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), uuid.NewString()[:8], strings.ToLower(filepath.Ext(safeName)))

	dir := filepath.Join(s.rootPath, sanitizeFilename(purpose), userID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return SavedFile{}, fmt.Errorf("storage: не удалось создать каталог пользователя: %w", err)
	}

	targetPath := filepath.Join(dir, fileName)
	tempPath := targetPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return SavedFile{}, fmt.Errorf("storage: не удалось создать файл: %w", err)
	}
	defer f.Close()

	limited := io.LimitedReader{R: r, N: maxBytes + 1}
	written, err := io.Copy(f, &limited)
	if err != nil {
		_ = os.Remove(tempPath)
		return SavedFile{}, fmt.Errorf("storage: ошибка записи файла: %w", err)
	}

	if written > maxBytes {
		_ = os.Remove(tempPath)
		return SavedFile{}, fmt.Errorf("storage: размер файла превышает лимит %d байт", maxBytes)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tempPath)
		return SavedFile{}, fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tempPath, targetPath); err != nil {
		return SavedFile{}, fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	relative := path.Join(sanitizeFilename(purpose), userID.String(), fileName)
	return SavedFile{RelativePath: relative, URL: s.PublicURL(relative), Size: written}, nil
}

// PublicURL строит публичную ссылку на файл.
func (s *MediaStorage) PublicURL(relativePath string) string {
	return s.publicURL + "/" + strings.TrimLeft(filepath.ToSlash(relativePath), "/")
}

// RelativeFromURL обратное преобразование для ссылок этого хранилища.
func (s *MediaStorage) RelativeFromURL(url string) (string, bool) {
	prefix := s.publicURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	rel := strings.TrimPrefix(url, prefix)
	if rel == "" || strings.Contains(rel, "..") {
		return "", false
	}
	return rel, true
}

// Delete удаляет файл из хранилища.
func (s *MediaStorage) Delete(ctx context.Context, relativePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.Contains(relativePath, "..") {
		return fmt.Errorf("storage: недопустимый путь %q", relativePath)
	}

	target := filepath.Join(s.rootPath, filepath.FromSlash(relativePath))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}

// sanitizeFilename удаляет потенциально опасные символы.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" || name == "." {
		name = "file"
	}
	return name
}
