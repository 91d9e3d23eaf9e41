package upload

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// fileHeaders builds parsed multipart file headers for the given files.
func fileHeaders(t *testing.T, files map[string][]byte) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, data := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="images"; filename="`+name+`"`)
		h.Set("Content-Type", "application/octet-stream")
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["images"]
}

func TestValidateImage(t *testing.T) {
	ct, err := ValidateImage("car.png", pngBytes(t, 200, 150))
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
}

func TestValidateImageRejects(t *testing.T) {
	_, err := ValidateImage("notes.jpg", []byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = ValidateImage("tiny.png", pngBytes(t, 20, 200))
	require.Error(t, err)
	assert.Equal(t, "tiny.png must be at least 100x100 pixels", err.Error())

	_, err = ValidateImage("huge.png", make([]byte, MaxFileSize+1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "larger than 5 MB")
}

func TestPrepare(t *testing.T) {
	headers := fileHeaders(t, map[string][]byte{
		"front.png": pngBytes(t, 120, 120),
	})

	files, err := Prepare(headers)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "front.png", files[0].Name)
	assert.Equal(t, "image/png", files[0].ContentType)
}

func TestPrepareNoFiles(t *testing.T) {
	files, err := Prepare(nil)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestPrepareTooMany(t *testing.T) {
	img := pngBytes(t, 100, 100)
	in := map[string][]byte{}
	for i := 0; i <= MaxFiles; i++ {
		in[strings.Repeat("a", i+1)+".png"] = img
	}
	_, err := Prepare(fileHeaders(t, in))
	assert.ErrorIs(t, err, ErrTooManyFiles)
}

func TestPrepareRejectsDisguisedFile(t *testing.T) {
	headers := fileHeaders(t, map[string][]byte{
		"photo.jpg": []byte("#!/bin/sh\necho hi\n"),
	})
	_, err := Prepare(headers)
	assert.ErrorIs(t, err, ErrUnsupported)
}
