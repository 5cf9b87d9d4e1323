package image

import (
	"strings"

	"github.com/google/uuid"
)

// maxNameLength caps the sanitized product-name suffix in generated
// filenames.
const maxNameLength = 50

// sanitizeName reduces a product name to a filesystem-safe suffix:
// letters, digits, dash and underscore survive, spaces become
// underscores, everything else is dropped. The result is length-capped.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	s := b.String()
	if len(s) > maxNameLength {
		s = s[:maxNameLength]
	}
	return s
}

// token returns a short collision-resistant random token.
func token() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
}

// generatedFileName names an AI-generated image: random token plus the
// sanitized product name.
func generatedFileName(productName string) string {
	suffix := sanitizeName(productName)
	if suffix == "" {
		return token() + ".png"
	}
	return token() + "_" + suffix + ".png"
}

// uploadFileName names an uploaded image: random token plus the
// original extension.
func uploadFileName(ext string) string {
	return token() + strings.ToLower(ext)
}
