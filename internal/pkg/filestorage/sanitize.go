package filestorage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var (
	unsafeChars       = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	repeatUnderscores = regexp.MustCompile(`_+`)
	nonAlphanumeric   = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// SanitizeFilename produces a filesystem-safe name: every character outside
// [A-Za-z0-9._-] becomes an underscore, runs collapse to one, and leading or
// trailing underscores are trimmed. An empty result falls back to a
// time-derived name.
func SanitizeFilename(filename string) string {
	filename = unsafeChars.ReplaceAllString(filename, "_")
	filename = repeatUnderscores.ReplaceAllString(filename, "_")
	filename = strings.Trim(filename, "_")

	if filename == "" {
		filename = fmt.Sprintf("file_%d", time.Now().Unix())
	}

	return filename
}

// UniqueFilePath probes the candidate path and, while a file already exists
// there, appends an incrementing counter before the extension. The returned
// path is free at the moment of the check; a concurrent writer between probe
// and write is an accepted race.
func UniqueFilePath(filePath string) string {
	if !fileExists(filePath) {
		return filePath
	}

	dir := filepath.Dir(filePath)
	ext := filepath.Ext(filePath)
	base := strings.TrimSuffix(filepath.Base(filePath), ext)

	counter := 1
	for fileExists(filePath) {
		filePath = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, counter, ext))
		counter++
	}

	return filePath
}

// TimestampImageName builds a profile image filename from its owner's name
// and the current time, e.g. "Jane_Doe_1719244800.jpg".
func TimestampImageName(ownerName, ext string) string {
	safe := nonAlphanumeric.ReplaceAllString(ownerName, "_")
	return fmt.Sprintf("%s_%d.%s", safe, time.Now().Unix(), ext)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
