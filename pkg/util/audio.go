package util

import (
	"crypto/md5"
	"encoding/hex"
	"os"
	"strconv"
	"time"
)

// SpeechFileName 生成语音文件名: speech-<md5(text+unixnano)>.mp3
func SpeechFileName(text string, now time.Time) string {
	sum := md5.Sum([]byte(text + strconv.FormatInt(now.UnixNano(), 10)))
	return "speech-" + hex.EncodeToString(sum[:]) + ".mp3"
}

// NonEmptyFile reports whether path is a regular file with content.
func NonEmptyFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Size() > 0
}
