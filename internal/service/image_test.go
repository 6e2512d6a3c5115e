package service

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessDataURIPassThrough(t *testing.T) {
	svc := NewImageService(NewLocalStore(t.TempDir()))

	// an already-stored URL is returned untouched
	url, err := svc.ProcessDataURI(context.Background(), "https://example.com/stored.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/stored.jpg", url)
}

func TestProcessDataURIStoresImage(t *testing.T) {
	dir := t.TempDir()
	svc := NewImageService(NewLocalStore(dir))

	payload := base64.StdEncoding.EncodeToString([]byte("image bytes"))
	url, err := svc.ProcessDataURI(context.Background(), "data:image/jpeg;base64,"+payload)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/media/recipes/images/"), url)
	assert.True(t, strings.HasSuffix(url, ".jpeg"), url)

	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/media/")))
	require.NoError(t, err)
	assert.Equal(t, []byte("image bytes"), stored)
}

func TestProcessDataURIInvalid(t *testing.T) {
	svc := NewImageService(NewLocalStore(t.TempDir()))

	for _, value := range []string{
		"data:image/png",
		"data:image/;base64,aGk=",
		"data:image/png;base64,not!!valid@@base64",
	} {
		_, err := svc.ProcessDataURI(context.Background(), value)
		assert.ErrorIs(t, err, ErrInvalidImage, value)
	}
}
