package image

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name", "Widget", "Widget"},
		{"spaces become underscores", "Garden Hose Pro", "Garden_Hose_Pro"},
		{"specials dropped", "Café au Lait! (500ml)", "Caf_au_Lait_500ml"},
		{"path characters dropped", "../../etc/passwd", "etcpasswd"},
		{"keeps dashes and underscores", "eco-friendly_bottle", "eco-friendly_bottle"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeName(tt.input))
		})
	}

	t.Run("caps length", func(t *testing.T) {
		got := sanitizeName(strings.Repeat("a", 200))
		assert.Len(t, got, maxNameLength)
	})
}

func TestGeneratedFileName(t *testing.T) {
	t.Run("carries product suffix", func(t *testing.T) {
		got := generatedFileName("Garden Hose")
		assert.True(t, strings.HasSuffix(got, "_Garden_Hose.png"), got)
	})

	t.Run("unsanitizable name still produces a valid file", func(t *testing.T) {
		got := generatedFileName("!!!")
		assert.True(t, strings.HasSuffix(got, ".png"), got)
		assert.NotContains(t, got, "_.png")
	})

	t.Run("names are unique", func(t *testing.T) {
		assert.NotEqual(t, generatedFileName("Widget"), generatedFileName("Widget"))
	})
}

func TestUploadFileName(t *testing.T) {
	got := uploadFileName(".JPG")
	assert.True(t, strings.HasSuffix(got, ".jpg"), got)
	assert.NotEqual(t, got, uploadFileName(".jpg"))
}
