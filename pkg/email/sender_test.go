package email

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBodyFromHTML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.html"), []byte("<p>Hi {{.Name}}</p>"), 0o600))

	in := SendEmailInput{To: "a@example.com", Subject: "hi"}
	require.NoError(t, in.GenerateBodyFromHTML(dir, "hello.html", struct{ Name string }{"<Asha>"}))

	assert.Equal(t, "<p>Hi &lt;Asha&gt;</p>", in.Body)
	assert.NoError(t, in.Validate())
}

func TestGenerateBodyFromHTMLMissingTemplate(t *testing.T) {
	in := SendEmailInput{}
	assert.Error(t, in.GenerateBodyFromHTML(t.TempDir(), "missing.html", nil))
}

func TestValidate(t *testing.T) {
	assert.Error(t, (&SendEmailInput{Subject: "s", Body: "b"}).Validate())
	assert.Error(t, (&SendEmailInput{To: "a@example.com", Body: "b"}).Validate())
	assert.Error(t, (&SendEmailInput{To: "not-an-email", Subject: "s", Body: "b"}).Validate())
	assert.NoError(t, (&SendEmailInput{To: "a@example.com", Subject: "s", Body: "b"}).Validate())
}

func TestGenerateBodyFromHTMLReusesParsedTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "order.html")
	require.NoError(t, os.WriteFile(path, []byte("order {{.}}"), 0o600))

	first := SendEmailInput{}
	require.NoError(t, first.GenerateBodyFromHTML(dir, "order.html", "ART_1"))

	require.NoError(t, os.Remove(path))

	second := SendEmailInput{}
	require.NoError(t, second.GenerateBodyFromHTML(dir, "order.html", "ART_2"))
	assert.Equal(t, "order ART_2", second.Body)
}
