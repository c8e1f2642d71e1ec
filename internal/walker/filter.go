package walker

import (
	"bytes"
	"strings"
)

// IsBinary checks if data appears to be binary by scanning for NUL bytes
// in the first 8KB, matching GNU grep behavior.
func IsBinary(data []byte) bool {
	limit := 8192
	if len(data) < limit {
		limit = len(data)
	}
	return bytes.IndexByte(data[:limit], 0) >= 0
}

// IsBinaryExtension returns true if the filename has an extension known
// to be a binary format. Skipping these avoids reading files that would
// be discarded by IsBinary anyway. Versioned shared libraries like
// "libfoo.so.1.2.3" are also recognized.
func IsBinaryExtension(name string) bool {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return false
	}
	ext := name[dot:]
	if len(ext) == 2 {
		switch ext[1] {
		case 'a', 'o', 'z':
			return true
		}
	}
	if _, ok := binaryExts[ext]; ok {
		return true
	}
	if strings.Contains(name, ".so.") {
		return true
	}
	return false
}

// binaryExts is the set of file extensions known to be binary.
var binaryExts = map[string]struct{}{
	// Compiled / linked
	".so": {}, ".dylib": {}, ".dll": {}, ".exe": {}, ".bin": {},
	".elf": {}, ".class": {}, ".pyc": {}, ".pyo": {}, ".wasm": {},
	// Archives / compressed
	".zip": {}, ".tar": {}, ".gz": {}, ".bz2": {}, ".xz": {},
	".zst": {}, ".7z": {}, ".rar": {}, ".jar": {}, ".deb": {}, ".rpm": {},
	// Images
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".bmp": {},
	".ico": {}, ".webp": {}, ".tiff": {},
	// Audio / video
	".mp3": {}, ".mp4": {}, ".mkv": {}, ".avi": {}, ".mov": {},
	".flac": {}, ".ogg": {}, ".wav": {}, ".webm": {},
	// Fonts
	".ttf": {}, ".otf": {}, ".woff": {}, ".woff2": {},
	// Documents / databases
	".pdf": {}, ".sqlite": {}, ".db": {},
}
