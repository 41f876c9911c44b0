package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/factorpad/internal/config"
)

// isolate keeps tests away from any config file on the machine.
func isolate(t *testing.T) {
	t.Helper()
	chdir(t, t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "factorpad", cmd.Use)
	assert.Contains(t, cmd.Long, "inference endpoint")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, path := range [][]string{{"query"}, {"doctor"}, {"config", "init"}, {"schema"}} {
		t.Run(strings.Join(path, " "), func(t *testing.T) {
			sub, _, err := cmd.Find(path)
			require.NoError(t, err)
			assert.Equal(t, path[len(path)-1], sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	for _, name := range []string{"config", "endpoint", "log-file"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestQueryCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	q, _, err := cmd.Find([]string{"query"})
	require.NoError(t, err)

	parallel := q.Flags().Lookup("parallel")
	require.NotNil(t, parallel)
	assert.Equal(t, "4", parallel.DefValue)
	assert.NotNil(t, q.Flags().Lookup("file"))
}

func TestQuery_PrintsReplyVerbatim(t *testing.T) {
	isolate(t)
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.FormValue("req")
		w.Write([]byte("Rain=1"))
	}))
	defer srv.Close()

	out, _, err := execute(t, "", "--endpoint", srv.URL, "query", `{"op":"MAP"}`)
	require.NoError(t, err)
	assert.Equal(t, "Rain=1\n", out)
	assert.Equal(t, `{"op":"MAP"}`, got)
}

func TestQuery_ReadsStdin(t *testing.T) {
	isolate(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("echo:" + r.FormValue("req")))
	}))
	defer srv.Close()

	out, _, err := execute(t, "from stdin", "--endpoint", srv.URL, "query")
	require.NoError(t, err)
	assert.Equal(t, "echo:from stdin\n", out)
}

func TestQuery_FailurePrintsErr(t *testing.T) {
	isolate(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	out, errOut, err := execute(t, "", "--endpoint", srv.URL, "query", "x")
	require.Error(t, err)
	assert.Equal(t, "Err\n", out)
	assert.Contains(t, errOut, "[Error:")
}

func TestQuery_Files(t *testing.T) {
	isolate(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok " + r.FormValue("req")))
	}))
	defer srv.Close()

	require.NoError(t, os.MkdirAll("reqs/nested", 0755))
	require.NoError(t, os.WriteFile("reqs/a.json", []byte("A"), 0644))
	require.NoError(t, os.WriteFile("reqs/nested/b.json", []byte("B"), 0644))

	out, _, err := execute(t, "", "--endpoint", srv.URL, "query", "--file", "reqs/**/*.json")
	require.NoError(t, err)
	want := "==> " + filepath.Join("reqs", "a.json") + " <==\nok A\n" +
		"==> " + filepath.Join("reqs", "nested", "b.json") + " <==\nok B\n"
	assert.Equal(t, want, out)
}

func TestQuery_TextAndFilesConflict(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "", "query", "--file", "*.json", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not both")
}

func TestQuery_EmptyRequest(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "  \n", "query")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty request")
}

func TestQuery_ValidationFromConfig(t *testing.T) {
	isolate(t)
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.Endpoint = srv.URL
	cfg.ValidateRequests = true
	require.NoError(t, config.Save(cfg, "config.yaml"))

	out, _, err := execute(t, "", "query", "not json")
	require.Error(t, err)
	assert.Equal(t, "Err\n", out)
	assert.Zero(t, hits)
}

func TestInvalidEndpointFlag(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "", "--endpoint", "ftp://nope", "query", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http or https")
}

func TestLogFileReceivesDebugLogs(t *testing.T) {
	isolate(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	logPath := filepath.Join(t.TempDir(), "factorpad.log")
	_, errOut, err := execute(t, "", "--endpoint", srv.URL, "--verbose", "--log-file", logPath, "query", "x")
	require.NoError(t, err)
	assert.Empty(t, errOut)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "level=DEBUG")
}

func TestDoctor(t *testing.T) {
	isolate(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	}))
	defer srv.Close()

	out, _, err := execute(t, "", "--endpoint", srv.URL, "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "answered HTTP 405")
	assert.Contains(t, out, "timeout    none")
}

func TestDoctor_Unreachable(t *testing.T) {
	isolate(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	out, _, err := execute(t, "", "--endpoint", url, "doctor")
	require.Error(t, err)
	assert.Contains(t, out, "✗")
}

func TestConfigInit(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	out, _, err := execute(t, "", "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Endpoint, cfg.Endpoint)

	_, _, err = execute(t, "", "config", "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "", "config", "init", "--force", path)
	require.NoError(t, err)
}

func TestSchemaCommand(t *testing.T) {
	out, _, err := execute(t, "", "schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"FactorSet"`)
	assert.Contains(t, out, `"MPE"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "WARN", parseLevel("WARN").String())
	assert.Equal(t, "INFO", parseLevel("bogus").String())
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
