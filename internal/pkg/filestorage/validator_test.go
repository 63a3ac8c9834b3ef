package filestorage

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pdfContent = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")
	pngContent = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
)

// makeFileHeader builds a real multipart.FileHeader the way gin receives one.
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

func TestValidateUploadAcceptsPDF(t *testing.T) {
	fh := makeFileHeader(t, "syllabus.pdf", pdfContent)
	assert.NoError(t, ValidateUpload(fh, AttachmentProfile))
}

func TestValidateUploadAcceptsPNGImage(t *testing.T) {
	fh := makeFileHeader(t, "photo.png", pngContent)
	assert.NoError(t, ValidateUpload(fh, ProfileImageProfile))
}

func TestValidateUploadRejectsMissingFile(t *testing.T) {
	err := ValidateUpload(nil, AttachmentProfile)
	require.Error(t, err)
	assert.Equal(t, "no file was uploaded", err.Error())
}

func TestValidateUploadRejectsOversize(t *testing.T) {
	fh := makeFileHeader(t, "big.pdf", pdfContent)
	fh.Size = MaxAttachmentSize + 1

	err := ValidateUpload(fh, AttachmentProfile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file size exceeds")
}

func TestValidateUploadRejectsDisallowedExtension(t *testing.T) {
	fh := makeFileHeader(t, "malware.exe", []byte("MZ\x90\x00"))

	err := ValidateUpload(fh, AttachmentProfile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file type not allowed")
}

func TestValidateUploadRejectsMismatchedContent(t *testing.T) {
	// Plain text renamed to .pdf passes the extension check but not the sniff.
	fh := makeFileHeader(t, "fake.pdf", []byte("just some text, not a pdf"))

	err := ValidateUpload(fh, AttachmentProfile)
	require.Error(t, err)
	assert.Equal(t, "invalid file type detected", err.Error())
}

func TestValidateUploadProfileImageRejectsPDF(t *testing.T) {
	fh := makeFileHeader(t, "cv.pdf", pdfContent)

	err := ValidateUpload(fh, ProfileImageProfile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file type not allowed")
}
