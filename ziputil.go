package genrefinder

import (
	"archive/zip"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
)

// maxDecompressSize is the maximum allowed decompressed size for a single
// archive entry. This guards against zip bomb attacks. Defaults to 256 MB.
const maxDecompressSize int64 = 256 * 1024 * 1024

// resolveHref resolves a manifest href against the directory of basePath.
// Both are archive-internal paths (forward-slash separated). Any fragment
// identifier is stripped and the href is percent-decoded before joining.
// The result is cleaned and validated to stay within the archive root; a
// path that escapes root or is absolute resolves to the empty string.
func resolveHref(basePath, href string) string {
	href = strings.TrimSpace(href)
	if idx := strings.IndexByte(href, '#'); idx >= 0 {
		href = href[:idx]
	}
	if href == "" || strings.HasPrefix(href, "/") {
		return ""
	}
	if decoded, err := url.PathUnescape(href); err == nil {
		href = decoded
	}
	dir := path.Dir(basePath)
	cleaned := path.Clean(path.Join(dir, href))
	if !isSafePath(cleaned) {
		return ""
	}
	return cleaned
}

// isSafePath checks whether p is a safe archive-internal path that does not
// escape the archive root via traversal (e.g., "../../../etc/passwd").
func isSafePath(p string) bool {
	cleaned := path.Clean(p)
	if strings.HasPrefix(cleaned, "/") {
		return false
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return false
	}
	return true
}

// stripBOM removes a leading UTF-8 BOM (0xEF 0xBB 0xBF) from data, if present.
func stripBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

// readZipFile reads the full contents of an archive entry.
// It enforces maxDecompressSize to guard against zip bombs and rejects
// entries whose declared path escapes the archive root.
func readZipFile(f *zip.File) ([]byte, error) {
	return readZipFileWithLimit(f, maxDecompressSize)
}

// readZipFileWithLimit is the implementation of readZipFile with a
// configurable size limit, separated so tests can use a smaller limit.
func readZipFileWithLimit(f *zip.File, limit int64) ([]byte, error) {
	if !isSafePath(f.Name) {
		return nil, fmt.Errorf("genrefinder: unsafe archive entry path: %s", f.Name)
	}

	if f.UncompressedSize64 > uint64(limit) {
		return nil, fmt.Errorf("genrefinder: archive entry %s too large: %d bytes (max %d)", f.Name, f.UncompressedSize64, limit)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("genrefinder: open archive entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	// Read up to limit+1 to detect if the actual decompressed data exceeds
	// the limit (the declared size might be wrong/forged).
	lr := io.LimitReader(rc, limit+1)
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, fmt.Errorf("genrefinder: read archive entry %s: %w", f.Name, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("genrefinder: archive entry %s decompressed size exceeds limit (%d bytes)", f.Name, limit)
	}

	return data, nil
}
