package indievia

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indievia/indievia-backend/pkg/upload"
)

var pngHead = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func pngFile(name string, size int) UploadFile {
	data := make([]byte, size)
	copy(data, pngHead)
	return UploadFile{Name: name, Data: data}
}

func countingServer(t *testing.T, hits *int32, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestUploads_RejectedBeforeRequest(t *testing.T) {
	var hits int32
	srv := countingServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, map[string]interface{}{})
	})
	c := NewClient(srv.URL)
	ctx := context.Background()

	tooMany := make([]UploadFile, upload.MaxFilesPerBatch+1)
	for i := range tooMany {
		tooMany[i] = pngFile("p.png", 100)
	}

	cases := []struct {
		name string
		call func() error
	}{
		{"gallery file over 2MB", func() error {
			_, err := c.UploadGallery(ctx, []UploadFile{pngFile("big.png", upload.MaxMediaFileBytes+1)})
			return err
		}},
		{"more than 10 files", func() error {
			_, err := c.UploadGallery(ctx, tooMany)
			return err
		}},
		{"profile picture over 3MB", func() error {
			_, err := c.UploadProfilePicture(ctx, RoleProfessional, pngFile("me.png", upload.MaxProfilePictureBytes+1))
			return err
		}},
		{"disguised type", func() error {
			_, err := c.UploadGallery(ctx, []UploadFile{{Name: "doc.png", Data: []byte("%PDF-1.4 not an image")}})
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			var uploadErr *upload.Error
			require.True(t, errors.As(err, &uploadErr), "got %v", err)
			assert.NotEmpty(t, uploadErr.Message)
		})
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestUploadGallery_SendsMultipart(t *testing.T) {
	var hits int32
	srv := countingServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/professional/gallery", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(8<<20)) {
			return
		}
		files := r.MultipartForm.File["files"]
		if !assert.Len(t, files, 2) {
			return
		}
		f, err := files[0].Open()
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		head := make([]byte, len(pngHead))
		_, _ = f.Read(head)
		assert.True(t, bytes.Equal(pngHead, head))
		writeData(w, http.StatusCreated, map[string][]string{"urls": {"/media/a.png", "/media/b.png"}})
	})

	urls, err := NewClient(srv.URL).UploadGallery(context.Background(), []UploadFile{pngFile("a.png", 64), pngFile("b.png", 64)})
	require.NoError(t, err)
	assert.Equal(t, []string{"/media/a.png", "/media/b.png"}, urls)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestUploadProfilePicture_ClientRoute(t *testing.T) {
	var hits int32
	srv := countingServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/client/picture", r.URL.Path)
		writeData(w, http.StatusOK, map[string]string{"url": "/media/me.png"})
	})

	url, err := NewClient(srv.URL).UploadProfilePicture(context.Background(), RoleClient, pngFile("me.png", 64))
	require.NoError(t, err)
	assert.Equal(t, "/media/me.png", url)
}
