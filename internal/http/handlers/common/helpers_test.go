package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indievia/indievia-backend/internal/dto"
	"github.com/indievia/indievia-backend/internal/http/middleware"
	"github.com/indievia/indievia-backend/internal/pkg/apperror"
)

func TestCurrentUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := CurrentUserID(c)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, OptionalUserID(c))

	id := uuid.New()
	c.Set(middleware.ContextUserIDKey, id)
	got, err := CurrentUserID(c)
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, id, *OptionalUserID(c))
}

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondServiceError(c, apperror.ErrReplyExists)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	RespondServiceError(c, errors.New("pq: deadlock detected"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotContains(t, body.Error, "deadlock")
	assert.Len(t, c.Errors, 1)
}

func TestUploadFiles_ReadsHeadAndFullBody(t *testing.T) {
	content := bytes.Repeat([]byte("x"), 2048)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("files", "a.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	files, closeAll, err := UploadFiles(req.MultipartForm.File["files"])
	require.NoError(t, err)
	defer closeAll()

	require.Len(t, files, 1)
	assert.Equal(t, "a.png", files[0].Name)
	assert.Equal(t, int64(len(content)), files[0].Size)
	assert.Len(t, files[0].Head, 512)

	all, err := io.ReadAll(files[0].Reader)
	require.NoError(t, err)
	assert.Equal(t, content, all)
}
