package indievia

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"

	"github.com/indievia/indievia-backend/pkg/upload"
)

// UploadFile файл, подготовленный к загрузке.
type UploadFile struct {
	Name string
	Data []byte
}

type uploadTarget struct {
	kind  upload.Kind
	path  string
	field string
}

var (
	uploadGallery      = uploadTarget{kind: upload.Gallery, path: "/api/professional/gallery", field: "files"}
	uploadReview       = uploadTarget{kind: upload.ReviewMedia, path: "/api/review", field: "media"}
	uploadProfessional = uploadTarget{kind: upload.ProfilePicture, path: "/api/professional/picture", field: "file"}
	uploadClient       = uploadTarget{kind: upload.ProfilePicture, path: "/api/client/picture", field: "file"}
)

// UploadGallery добавляет работы в галерею мастера. Возвращает *upload.Error
// без сетевого запроса, если файлы не проходят проверку.
func (c *Client) UploadGallery(ctx context.Context, files []UploadFile) ([]string, error) {
	var resp urlsBody
	if err := c.upload(ctx, uploadGallery, nil, files, &resp); err != nil {
		return nil, err
	}
	c.cache.Invalidate("professional")
	return resp.URLs, nil
}

// UploadProfilePicture меняет аватар. role определяет кабинет: professional или client.
func (c *Client) UploadProfilePicture(ctx context.Context, role string, file UploadFile) (string, error) {
	target := uploadClient
	if role == RoleProfessional {
		target = uploadProfessional
	}
	var resp urlBody
	if err := c.upload(ctx, target, nil, []UploadFile{file}, &resp); err != nil {
		return "", err
	}
	c.cache.Invalidate(role)
	return resp.URL, nil
}

// ValidateUploads та же проверка, что выполняет сервер.
func ValidateUploads(kind upload.Kind, files []UploadFile) error {
	checks := make([]upload.File, len(files))
	for i, f := range files {
		head := f.Data
		if len(head) > upload.SniffBytes {
			head = head[:upload.SniffBytes]
		}
		checks[i] = upload.File{Name: f.Name, Size: int64(len(f.Data)), Head: head}
	}
	_, err := upload.Validate(kind, checks)
	return err
}

func (c *Client) upload(ctx context.Context, target uploadTarget, fields map[string]string, files []UploadFile, out interface{}) error {
	if err := ValidateUploads(target.kind, files); err != nil {
		return err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return &APIError{Message: "не удалось собрать форму", Err: err}
		}
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(target.field, f.Name)
		if err != nil {
			return &APIError{Message: "не удалось собрать форму", Err: err}
		}
		if _, err := fw.Write(f.Data); err != nil {
			return &APIError{Message: "не удалось собрать форму", Err: err}
		}
	}
	if err := mw.Close(); err != nil {
		return &APIError{Message: "не удалось собрать форму", Err: err}
	}

	return c.do(ctx, http.MethodPost, target.path, &body, mw.FormDataContentType(), out)
}
