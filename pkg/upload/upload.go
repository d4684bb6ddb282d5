// Package upload проверяет загружаемые файлы одинаково на сервере и в SDK:
// количество, размер и реальный тип по магическим байтам.
package upload

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// Kind назначение загружаемых файлов.
type Kind string

const (
	Gallery        Kind = "gallery"
	ReviewMedia    Kind = "review"
	ProfilePicture Kind = "profile_picture"
)

const (
	MaxMediaFileBytes      = 2 * 1024 * 1024
	MaxProfilePictureBytes = 3 * 1024 * 1024
	MaxFilesPerBatch       = 10

	// SniffBytes сколько байт из начала файла нужно для определения типа.
	SniffBytes = 512
)

var imageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var videoMimeTypes = map[string]bool{
	"video/mp4":       true,
	"video/quicktime": true,
}

// File описание файла, достаточное для проверки до сохранения или отправки.
type File struct {
	Name string
	Size int64
	Head []byte
}

// Error ошибка проверки файла, показываемая рядом с полем формы.
type Error struct {
	Field   string `json:"field"`
	File    string `json:"file,omitempty"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

type uploadRules struct {
	maxBytes int64
	maxFiles int
	allowed  map[string]bool
}

func rulesFor(kind Kind) (uploadRules, error) {
	switch kind {
	case Gallery, ReviewMedia:
		allowed := make(map[string]bool, len(imageMimeTypes)+len(videoMimeTypes))
		for k := range imageMimeTypes {
			allowed[k] = true
		}
		for k := range videoMimeTypes {
			allowed[k] = true
		}
		return uploadRules{maxBytes: MaxMediaFileBytes, maxFiles: MaxFilesPerBatch, allowed: allowed}, nil
	case ProfilePicture:
		return uploadRules{maxBytes: MaxProfilePictureBytes, maxFiles: 1, allowed: imageMimeTypes}, nil
	default:
		return uploadRules{}, fmt.Errorf("неизвестный тип загрузки %q", kind)
	}
}

// Validate проверяет пачку файлов: количество, размер каждого файла
// и реальный тип по магическим байтам. Возвращает MIME типы в порядке файлов.
func Validate(kind Kind, files []File) ([]string, error) {
	rules, err := rulesFor(kind)
	if err != nil {
		return nil, err
	}
	field := string(kind)

	if len(files) == 0 {
		return nil, &Error{Field: field, Message: "выберите хотя бы один файл"}
	}
	if len(files) > rules.maxFiles {
		return nil, &Error{Field: field, Message: fmt.Sprintf("можно загрузить не более %d файлов за раз", rules.maxFiles)}
	}

	for _, f := range files {
		if f.Size <= 0 {
			return nil, &Error{Field: field, File: f.Name, Message: "файл не может быть пустым"}
		}
		if f.Size > rules.maxBytes {
			return nil, &Error{Field: field, File: f.Name, Message: fmt.Sprintf("размер файла не должен превышать %d МБ", rules.maxBytes/(1024*1024))}
		}
	}

	mimes := make([]string, 0, len(files))
	for _, f := range files {
		mime, err := sniff(f, rules.allowed)
		if err != nil {
			return nil, &Error{Field: field, File: f.Name, Message: err.Error()}
		}
		mimes = append(mimes, mime)
	}
	return mimes, nil
}

// sniff определяет тип по содержимому и сверяет его с расширением.
func sniff(f File, allowed map[string]bool) (string, error) {
	kind, err := filetype.Match(f.Head)
	if err != nil || kind == filetype.Unknown {
		return "", fmt.Errorf("не удалось определить тип файла")
	}

	mime := kind.MIME.Value
	if !allowed[mime] {
		return "", fmt.Errorf("неподдерживаемый тип файла (%s)", mime)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(f.Name)), ".")
	if ext == "jpeg" {
		ext = "jpg"
	}
	if ext != kind.Extension {
		return "", fmt.Errorf("расширение файла (.%s) не соответствует содержимому (.%s)", ext, kind.Extension)
	}
	return mime, nil
}
