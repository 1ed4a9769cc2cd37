package service

import (
	"path/filepath"
	"testing"

	"storykura/internal/appdirs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useOutputDir(t *testing.T) string {
	t.Helper()
	outputDir := filepath.Join(t.TempDir(), "output-root")
	originalResolver := appDirsResolver
	appDirsResolver = func() (appdirs.Paths, error) {
		return appdirs.Paths{OutputDir: outputDir}, nil
	}
	t.Cleanup(func() {
		appDirsResolver = originalResolver
	})
	return outputDir
}

func TestResolveAudioFileUsesOutputDir(t *testing.T) {
	outputDir := useOutputDir(t)

	path, url, err := resolveAudioFile("speech-abc.mp3")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outputDir, "audio", "speech-abc.mp3"), path)
	assert.Equal(t, "/audio/speech-abc.mp3", url)
}

func TestResolveAudioFileRejectsNestedNames(t *testing.T) {
	useOutputDir(t)

	for _, name := range []string{"", "  ", "../x.mp3", "a/b.mp3"} {
		_, _, err := resolveAudioFile(name)
		assert.Error(t, err, name)
	}
}
