package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCourt(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"supreme court", "In the Supreme Court of India, Criminal Appeal No. 123", "Supreme Court of India"},
		{"bare supreme court", "the Supreme Court held otherwise", "Supreme Court of India"},
		{"high court of form", "IN THE HIGH COURT OF DELHI AT NEW DELHI", "DELHI High Court"},
		{"named high court", "before the Bombay High Court in appeal", "Bombay High Court"},
		{"sessions court", "the learned Sessions Court convicted the appellant", "Sessions Court"},
		{"tribunal", "the Tribunal rejected the claim", "Tribunal"},
		{"no court", "a dispute between two private parties", "Unknown Court"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractCourt(tt.text))
		})
	}
}

func TestExtractYear(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"single year", "Criminal Appeal No. 456 of 2018", 2018},
		{"latest year wins", "decided in 2019, citing a 1978 precedent", 2019},
		{"implausible filtered", "file no. 1900 and 2090 are references", 0},
		{"no year", "no digits here", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractYear(tt.text))
		})
	}
}

func TestExtractYearScansHeadOnly(t *testing.T) {
	filler := make([]byte, yearScanChars)
	for i := range filler {
		filler[i] = 'x'
	}
	assert.Zero(t, extractYear(string(filler)+" 2015"))
}

func TestExtractOutcome(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"appeal dismissed", "For these reasons the appeal is dismissed.", "Appeal Dismissed"},
		{"bail granted", "Bail granted subject to conditions.", "Bail Granted"},
		{"acquitted", "The accused stands acquitted of all charges.", "Acquitted"},
		{"first match wins", "The appeal is dismissed and the accused convicted.", "Appeal Dismissed"},
		{"unknown", "The matter is listed for further hearing.", "Refer to Full Text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractOutcome(tt.text))
		})
	}
}
