package pipeline

import (
	"fmt"
	"os"
	"strings"
)

// maxDocumentBytes caps input size; screenplays are small and anything
// beyond this is almost certainly the wrong file.
const maxDocumentBytes = 10 << 20

// LoadDocument reads a screenplay file and normalizes line endings.
func LoadDocument(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > maxDocumentBytes {
		return "", fmt.Errorf("%s: file too large (%d bytes, max %d)", path, info.Size(), maxDocumentBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return NormalizeNewlines(string(data)), nil
}

// NormalizeNewlines converts CRLF and lone CR to LF.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// SplitLines breaks a document into classifier input lines. A trailing
// newline does not produce a phantom last line.
func SplitLines(document string) []string {
	if document == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(document, "\n"), "\n")
}
