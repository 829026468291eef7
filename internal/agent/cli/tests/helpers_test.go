package tests

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/agent/cli"
	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/agent/config"
)

// newTestApp поднимает TLS-сервер с mux и возвращает App с кредами во временной директории.
func newTestApp(t *testing.T, mux *http.ServeMux, creds *config.Credentials) *cli.App {
	t.Helper()

	srv := httptest.NewTLSServer(mux)
	t.Cleanup(srv.Close)

	if creds == nil {
		creds = &config.Credentials{}
	}
	return &cli.App{
		ServerURL: srv.URL,
		Insecure:  true,
		CredsPath: filepath.Join(t.TempDir(), "creds.json"),
		Creds:     creds,
	}
}

// stubPassword подменяет чтение пароля на последовательность ответов.
func stubPassword(t *testing.T, answers ...string) *[]string {
	t.Helper()

	prompts := &[]string{}
	orig := cli.ReadPassword
	cli.ReadPassword = func(cmd *cobra.Command, prompt string, fromStdin bool) (string, error) {
		*prompts = append(*prompts, prompt)
		if len(answers) == 0 {
			t.Fatalf("unexpected password prompt %q", prompt)
		}
		pw := answers[0]
		answers = answers[1:]
		return pw, nil
	}
	t.Cleanup(func() { cli.ReadPassword = orig })
	return prompts
}

func run(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
