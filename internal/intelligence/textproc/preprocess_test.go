package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercase and whitespace", "The  Accused\nWAS charged", "the accused was charged"},
		{"url removal", "see http://example.org/judgment for details", "see for details"},
		{"abbreviation normalization", "charged under I.P.C. and Cr.P.C. provisions", "charged under ipc and crpc provisions"},
		{"para noise", "as held in para 12. the court observed", "as held in the court observed"},
		{"page noise", "recorded at page no. 5 of the file", "recorded at of the file"},
		{"punctuation filter", "guilty! under section 302 (read with 34) @court", "guilty under section 302 (read with 34) court"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestCleanText_Deterministic(t *testing.T) {
	in := "Section 302 I.P.C.\t read with  Article 21."
	assert.Equal(t, CleanText(in), CleanText(in))
}

func TestTokenize(t *testing.T) {
	assert.Nil(t, Tokenize(""))
	assert.Equal(t, []string{"accused", "convicted"}, Tokenize("accused a convicted"))
}

func TestPreprocess(t *testing.T) {
	s := Preprocess("The accused was charged under IPC 302.")
	assert.Equal(t, "the accused was charged under ipc 302.", s.Cleaned)
	assert.Equal(t, 7, s.TokenCount)
}
