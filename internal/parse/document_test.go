package parse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHTML = `<!DOCTYPE html>
<html>
<head><title>Resume</title><style>body { color: red; }</style></head>
<body>
<h1>Ada Lovelace</h1>
<p>ada@example.com</p>
<h2>Experience</h2>
<p>Software Engineer at Babbage &amp; Co</p>
<p>1842 - 1843</p>
<ul>
<li>Wrote the first published algorithm</li>
</ul>
<h2>Skills</h2>
<p>Go, SQL</p>
<script>console.log("ignore me")</script>
</body>
</html>`

func TestHTMLText(t *testing.T) {
	text, err := htmlText([]byte(sampleHTML))
	require.NoError(t, err)

	assert.Contains(t, text, "Ada Lovelace")
	assert.Contains(t, text, "• Wrote the first published algorithm")
	assert.NotContains(t, text, "console.log", "script content is stripped")
	assert.NotContains(t, text, "color: red", "style content is stripped")
}

func TestParser_File_HTML(t *testing.T) {
	parser := New(nil)

	parsed, err := parser.File(context.Background(), "resume.html", []byte(sampleHTML))
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", parsed.PersonalInfo.Name.Value)
	assert.Equal(t, "ada@example.com", parsed.PersonalInfo.Email.Value)
	require.Len(t, parsed.Experience, 1)
	assert.Equal(t, "Software Engineer", parsed.Experience[0].Value.Role)
	require.Len(t, parsed.Skills, 2)
}

func TestParser_File_PlainText(t *testing.T) {
	parser := New(nil)

	parsed, err := parser.File(context.Background(), "resume.txt", []byte(sampleResume))
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", parsed.PersonalInfo.Name.Value)
}

func TestParser_File_UnsupportedFormat(t *testing.T) {
	parser := New(nil)

	_, err := parser.File(context.Background(), "resume.exe", []byte("data"))
	var unsupported *UnsupportedFormatError
	assert.ErrorAs(t, err, &unsupported)
}

func TestParser_File_Empty(t *testing.T) {
	parser := New(nil)

	_, err := parser.File(context.Background(), "resume.txt", nil)
	assert.Error(t, err)
}
