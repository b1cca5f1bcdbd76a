package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed("exam.txt"))
	assert.True(t, Allowed("EXAM.PDF"))
	assert.True(t, Allowed("exam.docx"))
	assert.True(t, Allowed("answers.csv"))
	assert.False(t, Allowed("exam.xlsx"))
	assert.False(t, Allowed("exam"))
}

func TestExtractPlainText(t *testing.T) {
	text, err := ExtractText("exam.txt", []byte("  READING PASSAGE 1\n1. Question\n"))
	require.NoError(t, err)
	assert.Equal(t, "READING PASSAGE 1\n1. Question", text)
}

func TestExtractUnknownExtensionFallsBackToPlainText(t *testing.T) {
	text, err := ExtractText("exam.md", []byte("# Exam\n1. Question"))
	require.NoError(t, err)
	assert.Contains(t, text, "1. Question")
}

func TestExtractRejectsBinaryAsPlainText(t *testing.T) {
	_, err := ExtractText("exam.txt", []byte{0xff, 0xfe, 0x00, 0x01})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UTF-8")
}

func TestExtractRejectsEmptyDocument(t *testing.T) {
	_, err := ExtractText("exam.txt", []byte("   \n\t"))
	require.Error(t, err)
}

func TestExtractCSV(t *testing.T) {
	text, err := ExtractText("answers.csv", []byte("number,question\n1,\"What is, the answer?\"\n2,Fill in ______\n"))
	require.NoError(t, err)
	assert.Equal(t, "number\tquestion\n1\tWhat is, the answer?\n2\tFill in ______", text)
}

func TestExtractCSVRaggedRows(t *testing.T) {
	text, err := ExtractText("answers.csv", []byte("a,b,c\nd,e\n"))
	require.NoError(t, err)
	assert.Equal(t, "a\tb\tc\nd\te", text)
}

func TestExtractSpreadsheetRejected(t *testing.T) {
	_, err := ExtractText("scores.xlsx", []byte("PK\x03\x04"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".csv")
}

func TestExtractBrokenPDF(t *testing.T) {
	_, err := ExtractText("exam.pdf", []byte("not a pdf"))
	require.Error(t, err)
}

func TestExtractBrokenDOCX(t *testing.T) {
	_, err := ExtractText("exam.docx", []byte("not a zip archive"))
	require.Error(t, err)
}
