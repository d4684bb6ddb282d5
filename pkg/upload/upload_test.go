package upload

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngHead  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 0x49, 0x48, 0x44, 0x52}
	jpegHead = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0x10, 0x4A, 0x46, 0x49, 0x46, 0}
	pdfHead  = []byte("%PDF-1.7\n")
)

func TestValidate_GalleryOK(t *testing.T) {
	mimes, err := Validate(Gallery, []File{
		{Name: "a.png", Size: 1024, Head: pngHead},
		{Name: "b.JPEG", Size: MaxMediaFileBytes, Head: jpegHead},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"image/png", "image/jpeg"}, mimes)
}

func TestValidate_GalleryTooLarge(t *testing.T) {
	_, err := Validate(Gallery, []File{{Name: "a.png", Size: MaxMediaFileBytes + 1, Head: pngHead}})

	var uploadErr *Error
	require.True(t, errors.As(err, &uploadErr))
	assert.Equal(t, "gallery", uploadErr.Field)
	assert.Equal(t, "a.png", uploadErr.File)
	assert.Contains(t, uploadErr.Message, "2 МБ")
}

func TestValidate_ProfilePictureLimit(t *testing.T) {
	_, err := Validate(ProfilePicture, []File{{Name: "me.png", Size: 3 * 1024 * 1024, Head: pngHead}})
	assert.NoError(t, err)

	_, err = Validate(ProfilePicture, []File{{Name: "me.png", Size: 3*1024*1024 + 1, Head: pngHead}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "3 МБ")
}

func TestValidate_TooManyFiles(t *testing.T) {
	files := make([]File, MaxFilesPerBatch+1)
	for i := range files {
		files[i] = File{Name: "x.png", Size: 10, Head: pngHead}
	}
	_, err := Validate(ReviewMedia, files)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "не более 10")

	_, err = Validate(ReviewMedia, files[:MaxFilesPerBatch])
	assert.NoError(t, err)
}

func TestValidate_RejectsMismatchAndUnknown(t *testing.T) {
	_, err := Validate(Gallery, []File{{Name: "a.jpg", Size: 10, Head: pngHead}})
	assert.Error(t, err)

	_, err = Validate(Gallery, []File{{Name: "doc.pdf", Size: 10, Head: pdfHead}})
	assert.Error(t, err)

	_, err = Validate(ProfilePicture, nil)
	assert.Error(t, err)
}
