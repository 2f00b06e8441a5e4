// Package notifier avisa o comitê sobre denúncias que pedem resposta rápida
package notifier

import (
	"context"
	"fmt"
	"html"
	"portalseguranca/internal/models/entities"
	"strings"

	"gopkg.in/gomail.v2"
)

// Notifier envia o aviso de uma nova denúncia
type Notifier interface {
	NotifyDenuncia(ctx context.Context, d entities.Denuncia) error
}

// Noop é usado quando o SMTP não está configurado
type Noop struct{}

// NotifyDenuncia não faz nada
func (Noop) NotifyDenuncia(context.Context, entities.Denuncia) error { return nil }

// ShouldNotify indica denúncias de prioridade alta ou marcadas como urgentes
func ShouldNotify(d entities.Denuncia) bool {
	return d.Prioridade == "alta" || bool(d.Urgente)
}

// SMTPNotifier envia e-mails pelo servidor configurado em SMTP_*
type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
	to     []string
}

// NewSMTPNotifier cria o notificador; to são os e-mails do comitê
func NewSMTPNotifier(host string, port int, user, password, from string, to []string) *SMTPNotifier {
	if from == "" {
		from = user
	}
	return &SMTPNotifier{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
		to:     to,
	}
}

// NotifyDenuncia envia o e-mail; sem destinatários não há o que enviar
func (n *SMTPNotifier) NotifyDenuncia(ctx context.Context, d entities.Denuncia) error {
	if len(n.to) == 0 || !ShouldNotify(d) {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := n.dialer.DialAndSend(BuildMessage(n.from, n.to, d)); err != nil {
		return fmt.Errorf("sending notification for denuncia %d: %w", d.Id, err)
	}
	return nil
}

// BuildMessage monta o e-mail em texto e HTML
func BuildMessage(from string, to []string, d entities.Denuncia) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", fmt.Sprintf("[Denúncia #%d] %s", d.Id, d.Titulo))

	prioridade := d.Prioridade
	if prioridade == "" {
		prioridade = "não informada"
	}
	linhas := []struct{ rotulo, valor string }{
		{"Tipo", d.Categoria()},
		{"Prioridade", prioridade},
		{"Urgente", simNao(bool(d.Urgente))},
		{"Data", strings.TrimSpace(d.DataOcorrencia + " " + d.HoraOcorrencia)},
		{"Local", strings.Trim(d.Endereco+" - "+d.Bairro, " -")},
	}

	var texto, corpo strings.Builder
	fmt.Fprintf(&texto, "Nova denúncia #%d: %s\n\n", d.Id, d.Titulo)
	fmt.Fprintf(&corpo, "<h2>Nova denúncia #%d</h2><p><strong>%s</strong></p><ul>", d.Id, html.EscapeString(d.Titulo))
	for _, l := range linhas {
		fmt.Fprintf(&texto, "%s: %s\n", l.rotulo, l.valor)
		fmt.Fprintf(&corpo, "<li><strong>%s:</strong> %s</li>", l.rotulo, html.EscapeString(l.valor))
	}
	fmt.Fprintf(&texto, "\n%s\n", d.Descricao)
	fmt.Fprintf(&corpo, "</ul><p>%s</p>", html.EscapeString(d.Descricao))

	m.SetBody("text/plain", texto.String())
	m.AddAlternative("text/html", corpo.String())
	return m
}

func simNao(b bool) string {
	if b {
		return "sim"
	}
	return "não"
}
