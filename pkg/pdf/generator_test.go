package pdf

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReceiptWithoutFont(t *testing.T) {
	g := NewGenerator(filepath.Join(t.TempDir(), "missing.ttf"))
	assert.False(t, g.Available())

	_, err := g.GenerateReceipt(Receipt{})
	assert.ErrorIs(t, err, ErrFontNotLoaded)
}

func TestGenerateReceipt(t *testing.T) {
	const systemFont = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
	if _, err := os.Stat(systemFont); err != nil {
		t.Skip("DejaVuSans.ttf not installed")
	}

	g := NewGenerator(systemFont)
	out, err := g.GenerateReceipt(Receipt{
		EventName:      "Kala Yatra 2.0",
		EventDate:      "31st March 2026",
		RegistrationID: "0190b5a4-0000-7000-8000-000000000001",
		OrderID:        "ART_1_0190b5a4",
		FullName:       "Asha Rao",
		Amount:         100,
		Status:         "confirmed",
		IssuedAt:       time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}
