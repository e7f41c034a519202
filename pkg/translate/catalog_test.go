package translate_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusalert/campusalert/pkg/translate"
)

func TestJSONParser(t *testing.T) {
	t.Parallel()

	t.Run("valid content", func(t *testing.T) {
		t.Parallel()

		content := []byte(`{"Bonjour": {"en": "Hello", "es": "Hola"}}`)
		catalog, err := translate.NewJSONParser().Parse(context.Background(), content)
		require.NoError(t, err)
		assert.Equal(t, "Hello", catalog["Bonjour"]["en"])
		assert.Equal(t, "Hola", catalog["Bonjour"]["es"])
	})

	t.Run("malformed content", func(t *testing.T) {
		t.Parallel()

		_, err := translate.NewJSONParser().Parse(context.Background(), []byte(`{not json`))
		assert.ErrorIs(t, err, translate.ErrFailedToParseCatalog)
	})
}

func TestYAMLParser(t *testing.T) {
	t.Parallel()

	t.Run("valid content", func(t *testing.T) {
		t.Parallel()

		content := []byte("Bonjour:\n  en: Hello\n")
		catalog, err := translate.NewYAMLParser().Parse(context.Background(), content)
		require.NoError(t, err)
		assert.Equal(t, "Hello", catalog["Bonjour"]["en"])
	})

	t.Run("malformed content", func(t *testing.T) {
		t.Parallel()

		_, err := translate.NewYAMLParser().Parse(context.Background(), []byte("\t: broken"))
		assert.ErrorIs(t, err, translate.ErrFailedToParseCatalog)
	})
}

func TestFileAdapter(t *testing.T) {
	t.Parallel()

	t.Run("loads catalog from JSON file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "catalog.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"Bonjour": {"en": "Hello"}}`), 0o644))

		adapter := translate.NewFileAdapter(translate.NewJSONParser(), path)
		require.NotNil(t, adapter)

		catalog, err := adapter.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Hello", catalog["Bonjour"]["en"])
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		adapter := translate.NewFileAdapter(translate.NewJSONParser(), filepath.Join(t.TempDir(), "missing.json"))
		_, err := adapter.Load(context.Background())
		assert.ErrorIs(t, err, translate.ErrFailedToReadFile)
	})

	t.Run("nil parser returns nil adapter", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, translate.NewFileAdapter(nil, "catalog.json"))
	})
}
