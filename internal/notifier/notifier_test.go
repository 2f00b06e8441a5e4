package notifier

import (
	"bytes"
	"context"
	"mime"
	"portalseguranca/internal/models/entities"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldNotify(t *testing.T) {
	assert.True(t, ShouldNotify(entities.Denuncia{Prioridade: "alta"}))
	assert.True(t, ShouldNotify(entities.Denuncia{Prioridade: "baixa", Urgente: true}))
	assert.False(t, ShouldNotify(entities.Denuncia{Prioridade: "media"}))
	assert.False(t, ShouldNotify(entities.Denuncia{}))
}

func TestBuildMessage(t *testing.T) {
	d := entities.Denuncia{
		Id:         12,
		Titulo:     "Briga <na> praça",
		Descricao:  "Pessoas feridas",
		Prioridade: "alta",
		Bairro:     "Centro",
	}

	m := BuildMessage("portal@prefeitura.gov.br", []string{"a@x.gov.br", "b@x.gov.br"}, d)

	subject := m.GetHeader("Subject")
	require.Len(t, subject, 1)
	decoded, err := new(mime.WordDecoder).DecodeHeader(subject[0])
	require.NoError(t, err)
	assert.Equal(t, "[Denúncia #12] Briga <na> praça", decoded)
	assert.Equal(t, []string{"a@x.gov.br", "b@x.gov.br"}, m.GetHeader("To"))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "text/html")
	assert.Contains(t, buf.String(), "text/plain")
}

func TestSMTPNotifier_SkipsWithoutRecipientsOrPriority(t *testing.T) {
	n := NewSMTPNotifier("127.0.0.1", 1, "", "", "portal@x.gov.br", nil)
	assert.NoError(t, n.NotifyDenuncia(context.Background(), entities.Denuncia{Prioridade: "alta"}))

	n = NewSMTPNotifier("127.0.0.1", 1, "", "", "portal@x.gov.br", []string{"a@x.gov.br"})
	assert.NoError(t, n.NotifyDenuncia(context.Background(), entities.Denuncia{Prioridade: "baixa"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, n.NotifyDenuncia(ctx, entities.Denuncia{Prioridade: "alta"}))
}

func TestNoop(t *testing.T) {
	var n Notifier = Noop{}
	assert.NoError(t, n.NotifyDenuncia(context.Background(), entities.Denuncia{Urgente: true}))
}
