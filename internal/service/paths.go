package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"storykura/internal/appdirs"
)

var appDirsResolver = appdirs.Resolve

// AudioUrlPrefix is where the HTTP layer serves the audio root.
const AudioUrlPrefix = "/audio/"

// resolveAudioFile returns the absolute location of a generated audio file and its public URL.
func resolveAudioFile(fileName string) (string, string, error) {
	if strings.TrimSpace(fileName) == "" || fileName != filepath.Base(fileName) {
		return "", "", fmt.Errorf("invalid audio file name %q", fileName)
	}
	dirs, err := appDirsResolver()
	if err != nil {
		return "", "", err
	}
	return appdirs.AudioFileFor(dirs, fileName), AudioUrlPrefix + fileName, nil
}
