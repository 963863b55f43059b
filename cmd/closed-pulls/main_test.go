package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"

	"github.com/RassulYunussov/forgeclient"
	"github.com/RassulYunussov/forgeclient/common"
)

func getForgeServer(t *testing.T, status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Check(t, cmp.Equal("/repos/octo/repo/pulls", r.URL.Path))
		assert.Check(t, cmp.Equal("closed", r.URL.Query().Get("state")))
		assert.Check(t, cmp.Equal("Bearer ghs_token", r.Header.Get("Authorization")))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func setEnvironment(t *testing.T, apiURL string) {
	t.Setenv("GITHUB_API_URL", apiURL)
	t.Setenv("GITHUB_REPOSITORY", "octo/repo")
	t.Setenv("GITHUB_TOKEN", "ghs_token")
}

func executeRootCmd() (string, string, error) {
	var out, errOut bytes.Buffer
	cmd := NewRootCmd(&out, &errOut)
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestListClosedPulls(t *testing.T) {
	s := getForgeServer(t, http.StatusOK, `[{"number":7,"state":"closed"}]`)
	defer s.Close()
	setEnvironment(t, s.URL)

	out, logs, err := executeRootCmd()
	assert.NilError(t, err)
	assert.Assert(t, cmp.Contains(out, "HTTP 200"))
	assert.Assert(t, cmp.Contains(out, "Content-Type: application/json"))
	assert.Assert(t, cmp.Contains(out, `"number": 7`))
	assert.Assert(t, cmp.Contains(logs, "requesting closed pull requests"))
}

func TestListClosedPullsClientError(t *testing.T) {
	s := getForgeServer(t, http.StatusUnauthorized, `{"message":"Bad credentials"}`)
	defer s.Close()
	setEnvironment(t, s.URL)

	out, logs, err := executeRootCmd()
	assert.Assert(t, forgeclient.IsPermanentClientError(err))
	assert.Equal(t, "", out)
	assert.Assert(t, cmp.Contains(logs, "request failed"))
	assert.Assert(t, cmp.Contains(logs, "PermanentClientError"))
}

func TestMissingRepository(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "")
	assert.NilError(t, os.Unsetenv("GITHUB_REPOSITORY"))

	_, logs, err := executeRootCmd()
	assert.ErrorContains(t, err, "GITHUB_REPOSITORY")
	assert.Assert(t, cmp.Contains(logs, "invalid environment"))
}

func TestRejectsArguments(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := NewRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"extra"})
	assert.Assert(t, cmd.Execute() != nil)
}

func TestPrintResponseNonJSON(t *testing.T) {
	var out bytes.Buffer
	err := printResponse(&out, &common.HttpResponse{
		StatusCode: http.StatusOK,
		Headers:    http.Header{"X-B": []string{"2"}, "X-A": []string{"1", "3"}},
		Body:       []byte("plain text"),
	})
	assert.NilError(t, err)
	assert.Equal(t, "HTTP 200\nX-A: 1, 3\nX-B: 2\n\nplain text\n", out.String())
}
