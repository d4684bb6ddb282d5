package common

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/indievia/indievia-backend/internal/service"
	"github.com/indievia/indievia-backend/pkg/upload"
)

// UploadFiles opens multipart files and reads their first bytes for type
// sniffing. The returned closer must be called once the upload is stored.
func UploadFiles(headers []*multipart.FileHeader) ([]service.UploadFile, func(), error) {
	files := make([]service.UploadFile, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		opened = append(opened, f)

		head := make([]byte, upload.SniffBytes)
		n, err := io.ReadFull(f, head)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			closeAll()
			return nil, func() {}, fmt.Errorf("read %s: %w", fh.Filename, err)
		}
		head = head[:n]

		files = append(files, service.UploadFile{
			Name:   fh.Filename,
			Size:   fh.Size,
			Head:   head,
			Reader: io.MultiReader(bytes.NewReader(head), f),
		})
	}
	return files, closeAll, nil
}

// FormFiles возвращает файлы multipart-поля, nil если форма без файлов.
func FormFiles(c *gin.Context, field string) ([]*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	return form.File[field], nil
}
