package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings(t *testing.T) {
	tests := []struct {
		name         string
		env          map[string]string
		wantErr      bool
		validateFunc func(t *testing.T, s *Settings)
	}{
		{
			name:    "missing jwt secret",
			env:     map[string]string{"JWT_SECRET": ""},
			wantErr: true,
		},
		{
			name: "defaults",
			env:  map[string]string{"JWT_SECRET": "segredo"},
			validateFunc: func(t *testing.T, s *Settings) {
				assert.Equal(t, "8080", s.Port)
				assert.Equal(t, "json", s.StoreDriver)
				assert.Equal(t, "./data", s.DataDir)
				assert.Equal(t, int64(10), s.UploadMaxMB)
				assert.Equal(t, time.Hour, s.JWTTTL)
				assert.Equal(t, 120, s.MaxRequestCountByIP)
				assert.Equal(t, int64(50), s.MaxRequestCountGlobal)
				assert.Equal(t, "denuncias", s.ElasticsearchIndex)
				assert.Equal(t, []string{"*"}, s.CorsOrigins)
				assert.Equal(t, "@every 5m", s.StatsCron)
				assert.False(t, s.TLSEnabled())
				assert.False(t, s.IsProduction())
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"JWT_SECRET":      "segredo",
				"JWT_TTL":         "30m",
				"STORE_DRIVER":    "MONGO",
				"COMITE_EMAILS":   "a@x.gov.br, b@x.gov.br,,",
				"CERT_FILE":       "cert.pem",
				"KEY_FILE":        "key.pem",
				"UPLOAD_MAX_MB":   "0",
				"ENVIRONMENT_APP": "production",
			},
			validateFunc: func(t *testing.T, s *Settings) {
				assert.Equal(t, 30*time.Minute, s.JWTTTL)
				assert.Equal(t, "mongo", s.StoreDriver)
				assert.Equal(t, []string{"a@x.gov.br", "b@x.gov.br"}, s.ComiteEmails)
				assert.True(t, s.TLSEnabled())
				assert.True(t, s.IsProduction())
				assert.Equal(t, int64(10), s.UploadMaxMB)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			s, err := LoadSettings()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.validateFunc != nil {
				tt.validateFunc(t, s)
			}
		})
	}
}

func TestSettingsLocation(t *testing.T) {
	s := &Settings{Timezone: "America/Sao_Paulo"}
	assert.Equal(t, "America/Sao_Paulo", s.Location().String())

	s.Timezone = "Marte/Olympus"
	assert.Equal(t, time.Local, s.Location())
}
