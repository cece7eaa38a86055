package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/unidecode"
)

// WriteReport writes a rendered report to the output target and returns the
// path it landed at. An empty path writes to stdout and returns "". A path
// naming an existing directory gets an auto-named file inside it, derived
// from the scanned root.
func WriteReport(report string, outputPath string, root string, format Format) (string, error) {
	if outputPath == "" {
		fmt.Println(report)
		return "", nil
	}

	if info, err := os.Stat(outputPath); err == nil && info.IsDir() {
		outputPath = filepath.Join(outputPath, reportFileName(root, format))
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, []byte(report), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return outputPath, nil
}

// reportFileName builds an ASCII-safe file name from the scanned root, so
// libraries named in any script produce portable report files.
func reportFileName(root string, format Format) string {
	base := unidecode.Unidecode(filepath.Base(root))
	base = strings.ToLower(strings.TrimSpace(base))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_' || r == '.':
			b.WriteRune('-')
		}
	}
	name := strings.Trim(b.String(), "-")
	if name == "" {
		name = "library"
	}

	ext := "txt"
	if format == FormatJSON {
		ext = "json"
	}
	return fmt.Sprintf("%s-%s.%s", name, time.Now().Format("2006-01-02"), ext)
}
