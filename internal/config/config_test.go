package config

import (
	"context"
	"portalseguranca/internal/notifier"
	"portalseguranca/internal/repositories/jsonfile"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings(t *testing.T) *Settings {
	t.Helper()
	return &Settings{
		Environment: "test",
		Timezone:    "America/Sao_Paulo",
		StoreDriver: "json",
		DataDir:     t.TempDir(),
		LogDir:      t.TempDir(),
		LogLevel:    "ERROR",
		JWTSecret:   "segredo",
		JWTTTL:      time.Hour,
	}
}

func TestNewConfig_JSONStore(t *testing.T) {
	cfg, err := NewConfig(context.Background(), testSettings(t))
	require.NoError(t, err)
	defer cfg.CloseAll()

	assert.IsType(t, &jsonfile.Store{}, cfg.Store)
	assert.IsType(t, notifier.Noop{}, cfg.Notifier)
	assert.Nil(t, cfg.Redis)
	assert.Nil(t, cfg.ES)
	assert.NotNil(t, cfg.Tokens)
}

func TestNewConfig_SMTPNotifier(t *testing.T) {
	s := testSettings(t)
	s.SMTPHost = "smtp.prefeitura.gov.br"
	s.SMTPPort = 587

	cfg, err := NewConfig(context.Background(), s)
	require.NoError(t, err)
	defer cfg.CloseAll()

	assert.IsType(t, &notifier.SMTPNotifier{}, cfg.Notifier)
}

func TestNewConfig_UnknownDriver(t *testing.T) {
	s := testSettings(t)
	s.StoreDriver = "cassandra"

	cfg, err := NewConfig(context.Background(), s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cassandra")
	cfg.CloseAll()
}

func TestApp_Now(t *testing.T) {
	fixed := time.Date(2025, time.March, 15, 17, 0, 0, 0, time.UTC)
	loc := time.FixedZone("BRT", -3*60*60)
	cfg := &App{Clock: func() time.Time { return fixed }, Location: loc}

	now := cfg.Now()
	assert.True(t, fixed.Equal(now))
	assert.Equal(t, 14, now.Hour())

	assert.WithinDuration(t, time.Now(), (&App{}).Now(), time.Second)
}
