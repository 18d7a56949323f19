package tests

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/projectkeeper/internal/agent/cli"
	"github.com/IvanChernomyrdin/projectkeeper/internal/agent/config"
)

// newTestApp поднимает HTTPS сервер с mux и возвращает App, настроенный на него.
// token — уже сохранённый токен (пустой — пользователь не вошёл).
func newTestApp(t *testing.T, mux *http.ServeMux, token string) *cli.App {
	t.Helper()

	srv := httptest.NewTLSServer(mux)
	t.Cleanup(srv.Close)

	return &cli.App{
		ServerURL: srv.URL,
		Insecure:  true,
		CredsPath: filepath.Join(t.TempDir(), "creds.json"),
		Creds:     &config.Credentials{Token: token},
	}
}

// run выполняет команду с аргументами и возвращает её вывод.
func run(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireBearer(t *testing.T, r *http.Request, token string) {
	t.Helper()
	if got := r.Header.Get("Authorization"); got != "Bearer "+token {
		t.Fatalf("expected Authorization Bearer %s, got %q", token, got)
	}
}
