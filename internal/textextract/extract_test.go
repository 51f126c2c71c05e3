package textextract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPlainTextPassthrough(t *testing.T) {
	text, err := Extract(MimePlain, []byte("Jane Doe\nBackend Engineer"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nBackend Engineer", text)
}

func TestExtractUnsupportedType(t *testing.T) {
	_, err := Extract("image/png", []byte{0x89, 0x50})
	require.Error(t, err)

	var unsupported *ErrUnsupportedType
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "image/png", unsupported.Mime)
}

func TestExtractCorruptPDF(t *testing.T) {
	_, err := Extract(MimePDF, []byte("not a pdf at all"))
	assert.Error(t, err)
}

func TestExtractCorruptDocx(t *testing.T) {
	_, err := Extract(MimeDocx, []byte("not a zip archive"))
	assert.Error(t, err)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported(MimePlain))
	assert.True(t, Supported(MimePDF))
	assert.True(t, Supported(MimeDocx))
	assert.False(t, Supported("application/zip"))
	assert.False(t, Supported(""))
}
