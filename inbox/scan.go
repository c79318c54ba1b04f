package inbox

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kbukum/asrdrop/errors"
)

// Extensions lists the accepted audio extensions, lower case.
var Extensions = []string{".wav", ".mp3"}

// Entry is one discovered audio file.
type Entry struct {
	// Name is the base name, as sent in the upload.
	Name string `json:"name"`
	// Path is the full path used to open the file.
	Path string `json:"path"`
	// Size is the size in bytes at discovery time.
	Size int64 `json:"size"`
}

// IsAudio reports whether name carries an accepted extension.
func IsAudio(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Scan lists the audio files directly under dir in directory order.
//
// It returns NO_INPUT_DIR when dir is missing or not a directory,
// NO_AUDIO_FILES when nothing qualifies, and FILE_ERROR when the directory
// cannot be read. Entries that vanish between listing and stat are skipped.
func Scan(dir string) ([]Entry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NoInputDir(dir)
		}
		return nil, errors.FileError(dir, err)
	}
	if !info.IsDir() {
		return nil, errors.NoInputDir(dir)
	}

	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.FileError(dir, err)
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		if !IsAudio(d.Name()) {
			continue
		}
		path := filepath.Join(dir, d.Name())
		// Stat follows symlinks so a link to a regular file counts.
		fi, err := os.Stat(path)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, errors.FileError(path, err)
		}
		if !fi.Mode().IsRegular() {
			continue
		}
		entries = append(entries, Entry{Name: d.Name(), Path: path, Size: fi.Size()})
	}

	if len(entries) == 0 {
		return nil, errors.NoAudioFiles(dir)
	}
	return entries, nil
}

// Select picks the entries to upload: all of them in batch mode, otherwise
// only the first.
func Select(entries []Entry, all bool) []Entry {
	if all || len(entries) <= 1 {
		return entries
	}
	return entries[:1]
}

// Names returns the base names of entries.
func Names(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// UploadContentType is the MIME type declared on an upload part for name.
// The ASR service is sent audio/wav for every file, mp3 included.
func UploadContentType(name string) string {
	return "audio/wav"
}
