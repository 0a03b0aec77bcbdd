package extract

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindField(t *testing.T) {
	re := regexp.MustCompile(`Yacimiento:\s*(.+)`)

	t.Run("returns trimmed capture group", func(t *testing.T) {
		got := FindField("Yacimiento:   Punta Mock  \n", re)
		assert.Equal(t, "Punta Mock", got)
	})

	t.Run("missing field is empty string", func(t *testing.T) {
		got := FindField("Cuenca: Cuyana", re)
		assert.Equal(t, "", got)
	})

	t.Run("falls back to full match without groups", func(t *testing.T) {
		got := FindField("abc 1234 def", regexp.MustCompile(`\d+`))
		assert.Equal(t, "1234", got)
	})
}

func TestFindFloat(t *testing.T) {
	re := regexp.MustCompile(`Volumen:\s*([\d.,]+)`)

	tests := []struct {
		name string
		text string
		want float64
	}{
		{"period decimal", "Volumen: 8.5", 8.5},
		{"comma decimal", "Volumen: 8,5", 8.5},
		{"integer", "Volumen: 1250", 1250},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindFloat(tt.text, re)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.InDelta(t, tt.want, *got, 1e-9)
		})
	}

	t.Run("missing field is nil without error", func(t *testing.T) {
		got, err := FindFloat("sin volumen", re)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("matched garbage wraps ErrNumericParse", func(t *testing.T) {
		got, err := FindFloat("Volumen: 1.2.3,4", re)
		require.ErrorIs(t, err, ErrNumericParse)
		assert.Nil(t, got)
	})
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"slash padded", "10/10/2025", "10-10-2025"},
		{"slash unpadded", "12/2/2026", "12-02-2026"},
		{"dash", "18-02-2026", "18-02-2026"},
		{"two digit year", "05/03/26", "05-03-2026"},
		{"iso", "2025-09-08", "08-09-2025"},
		{"spelled month", "12 de febrero de 2026", "12-02-2026"},
		{"spelled month accented", "3 de setiembre de 2025", "03-09-2025"},
		{"spelled month dashed", "1-ene-2026", "01-01-2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDate(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unparseable date", func(t *testing.T) {
		_, err := NormalizeDate("mañana")
		assert.ErrorIs(t, err, ErrDateParse)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := NormalizeDate("  ")
		assert.ErrorIs(t, err, ErrDateParse)
	})
}

func TestFoldUpper(t *testing.T) {
	assert.Equal(t, "PETROLEOS SUDAMERICANOS", foldUpper("Petróleos Sudamericanos"))
	assert.Equal(t, "ACONCAGUA ENERGIA", foldUpper("Aconcagua Energía"))
}

func TestAbbreviate(t *testing.T) {
	t.Run("short text unchanged", func(t *testing.T) {
		assert.Equal(t, "pérdida menor", abbreviate("  pérdida menor "))
	})

	t.Run("long text truncated with ellipsis", func(t *testing.T) {
		got := abbreviate(strings.Repeat("derrame ", 30))
		assert.Len(t, []rune(got), maxDescriptionRunes+3)
		assert.Equal(t, "...", got[len(got)-3:])
	})
}
