// Package apptest monta um config.App com store JSON em diretório temporário para testes de handlers
package apptest

import (
	"context"
	"io"
	"portalseguranca/internal/config"
	"portalseguranca/internal/notifier"
	"portalseguranca/internal/repositories/jsonfile"
	"portalseguranca/internal/repositories/store"
	"portalseguranca/internal/security"
	"portalseguranca/pkg/logger"
	"testing"
	"time"
)

// Agora é o relógio fixo dos testes: 15/03/2025 14:00 em Brasília
var Agora = time.Date(2025, time.March, 15, 14, 0, 0, 0, time.FixedZone("BRT", -3*60*60))

// New cria o App de teste; tudo é liberado no t.Cleanup
func New(t testing.TB) *config.App {
	t.Helper()

	st, err := jsonfile.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}

	tokens, err := security.NewTokenIssuer("segredo-de-teste", time.Hour)
	if err != nil {
		t.Fatalf("creating token issuer: %v", err)
	}

	l := logger.NewLogger(logger.Config{Output: io.Discard, LogLevel: logger.LevelError})

	cfg := &config.App{
		Settings: &config.Settings{
			Port:                  "8080",
			Environment:           "test",
			Timezone:              "America/Sao_Paulo",
			StoreDriver:           "json",
			UploadDir:             t.TempDir(),
			UploadMaxMB:           1,
			JWTSecret:             "segredo-de-teste",
			JWTTTL:                time.Hour,
			MaxRequestCountGlobal: 10,
			CorsOrigins:           []string{"*"},
		},
		Store:    st,
		Logger:   l,
		Tokens:   tokens,
		Notifier: notifier.Noop{},
		Location: Agora.Location(),
		Clock:    func() time.Time { return Agora },
	}
	t.Cleanup(func() { _ = l.Close() })
	return cfg
}

// Seed grava items na coleção
func Seed(t testing.TB, cfg *config.App, collection store.Collection, items any) {
	t.Helper()
	if err := cfg.Store.Replace(context.Background(), collection, items); err != nil {
		t.Fatalf("seeding %s: %v", collection, err)
	}
}

// Token gera um Bearer para o perfil informado
func Token(t testing.TB, cfg *config.App, userID, role int) string {
	t.Helper()
	token, _, err := cfg.Tokens.Generate(userID, "equipe@prefeitura.gov.br", role)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	return "Bearer " + token
}
