package model

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagFileName(t *testing.T) {
	assert.Equal(t, "report.pdf", TagFileName("report.pdf", false, false))
	assert.Equal(t, "report.pdf", TagFileName("report.pdf", false, true))
	assert.Equal(t, "LATE_report.pdf", TagFileName("report.pdf", true, false))
	assert.Equal(t, "LATE_EDIT_report.pdf", TagFileName("report.pdf", true, true))
	assert.True(t, strings.HasPrefix(TagFileName("x", true, true), LateMarker))
}

func TestNewStoredName(t *testing.T) {
	a := NewStoredName("Report.PDF")
	b := NewStoredName("Report.PDF")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, ".pdf"))
	assert.Len(t, NewStoredName("noext"), 36)
	assert.Len(t, NewStoredName("a."+strings.Repeat("x", 90)), 36, "overlong extensions are dropped")
}

func TestCleanFileName_Length(t *testing.T) {
	limit := MaxFileNameLength - len(LateEditMarker)

	t.Run("keeps a short extension", func(t *testing.T) {
		got := CleanFileName(strings.Repeat("a", 400) + ".pdf")
		assert.Equal(t, limit, utf8.RuneCountInString(got))
		assert.True(t, strings.HasSuffix(got, ".pdf"))
	})

	t.Run("long extension is cut with the name", func(t *testing.T) {
		got := CleanFileName(strings.Repeat("a", 295) + "." + strings.Repeat("x", 90))
		assert.Equal(t, limit, utf8.RuneCountInString(got))
		tagged := TagFileName(got, true, true)
		assert.LessOrEqual(t, utf8.RuneCountInString(tagged), MaxFileNameLength)
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		got := CleanFileName(strings.Repeat("과", 350) + ".hwp")
		assert.Equal(t, limit, utf8.RuneCountInString(got))
		assert.True(t, utf8.ValidString(got))
	})

	t.Run("short names are untouched", func(t *testing.T) {
		name := strings.Repeat("b", limit)
		assert.Equal(t, name, CleanFileName(name))
	})
}

func TestCleanFileName(t *testing.T) {
	tests := map[string]string{
		"report.pdf":                "report.pdf",
		"../../etc/passwd":          "passwd",
		`C:\Users\kim\과제1.hwp`:      "과제1.hwp",
		"  spaced.txt ":             "spaced.txt",
		"dir/":                      "file",
		"..":                        "file",
	}
	for in, want := range tests {
		assert.Equal(t, want, CleanFileName(in), in)
	}
}

func TestSubmission_JSONOmitsContent(t *testing.T) {
	s := Submission{ID: 1, FileName: "a.txt", FileData: []byte("secret bytes")}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
	assert.Equal(t, "submissions", Submission{}.TableName())
}
