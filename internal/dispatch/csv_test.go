package dispatch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessageRequests(t *testing.T) {
	input := strings.NewReader(
		"Name,SID,Email,Assignment,Message_Requests\n" +
			"Ada,123,ada@example.edu,Homework 3,Due Friday\n" +
			"Bob,456,,Homework 3,Due Friday\n")

	requests, err := ParseMessageRequests(input)
	require.NoError(t, err)
	require.Len(t, requests, 2)

	assert.Equal(t, "ada@example.edu", requests[0].Email)
	assert.Equal(t, "Homework 3", requests[0].Assignment)
	assert.Equal(t, "Due Friday", requests[0].Body)
	assert.Equal(t, "Ada", requests[0].Name)
	assert.Equal(t, "123", requests[0].SID)

	assert.Equal(t, "", requests[1].Email, "empty recipient is preserved, not dropped")
}

func TestParseMessageRequestsMinimalHeader(t *testing.T) {
	input := strings.NewReader(
		"email,assignment,message_requests\n" +
			"a@b.edu,Essay,Draft due\n")

	requests, err := ParseMessageRequests(input)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Empty(t, requests[0].Name)
	assert.Empty(t, requests[0].SID)
}

func TestParseMessageRequestsMissingColumn(t *testing.T) {
	input := strings.NewReader("email,assignment\na@b.edu,Essay\n")

	_, err := ParseMessageRequests(input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message_requests")
}

func TestParseMessageRequestsEmptyFile(t *testing.T) {
	_, err := ParseMessageRequests(strings.NewReader(""))
	require.Error(t, err)
}

func TestLoadMessageRequests(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.csv")
	content := "email,assignment,message_requests\na@b.edu,Quiz,Study chapter 4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	requests, err := LoadMessageRequests(path)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "a@b.edu", requests[0].Email)

	_, err = LoadMessageRequests(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}
