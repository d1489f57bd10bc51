package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"formulario.link/configs"
	"formulario.link/configs/configslog"

	"go.uber.org/zap"
)

// CademiPayload são os dados de um postback de certificação.
type CademiPayload struct {
	Token        string
	ProductID    string
	ProductName  string
	ClientName   string
	ClientEmail  string
	SubmissionID uint
	Status       string
}

// IWebhookService dispara o postback para a Cademí.
type IWebhookService interface {
	// DispatchAsync dispara em segundo plano. Nunca bloqueia nem devolve
	// erro: o resultado do postback não pode afetar quem submeteu.
	DispatchAsync(payload CademiPayload)
	// Dispatch executa a chamada de forma síncrona. Exposto para testes e
	// reenvios manuais.
	Dispatch(ctx context.Context, payload CademiPayload) error
}

// WebhookService implementa IWebhookService com um cliente HTTP limitado por
// timeout. Sem retry: entrega é melhor-esforço por decisão de projeto.
type WebhookService struct {
	endpoint string
	client   *http.Client
}

// NewWebhookService cria o serviço com o endpoint e timeout configurados.
func NewWebhookService() IWebhookService {
	return &WebhookService{
		endpoint: configs.CademiPostbackURL(),
		client:   &http.Client{Timeout: configs.OutboundTimeout()},
	}
}

// NewWebhookServiceWith permite endpoint e cliente customizados (testes).
func NewWebhookServiceWith(endpoint string, client *http.Client) IWebhookService {
	return &WebhookService{endpoint: endpoint, client: client}
}

// TransactionCode deriva um código único por disparo a partir do ID da
// submissão e do instante do envio.
func TransactionCode(submissionID uint, at time.Time) string {
	return fmt.Sprintf("%d-%d", submissionID, at.UnixMilli())
}

func (s *WebhookService) DispatchAsync(payload CademiPayload) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.client.Timeout+time.Second)
		defer cancel()
		// Falhas são logadas dentro de Dispatch; nada sobe.
		_ = s.Dispatch(ctx, payload)
	}()
}

// Dispatch monta o corpo x-www-form-urlencoded e envia o POST. Qualquer
// resposta 2xx é sucesso; o corpo da resposta é texto opaco, apenas logado.
// O token é redigido antes de qualquer log.
func (s *WebhookService) Dispatch(ctx context.Context, payload CademiPayload) error {
	status := payload.Status
	if status == "" {
		status = "aprovado"
	}
	code := TransactionCode(payload.SubmissionID, time.Now())

	body := url.Values{}
	body.Set("token", payload.Token)
	body.Set("codigo", code)
	body.Set("status", status)
	body.Set("produto_id", payload.ProductID)
	body.Set("produto_nome", payload.ProductName)
	body.Set("cliente_nome", payload.ClientName)
	body.Set("cliente_email", payload.ClientEmail)
	// O endpoint espera o e-mail também sob a chave "email".
	body.Set("email", payload.ClientEmail)

	configslog.SLog.Infof("[Cademi] Enviando postback: codigo=%s produto=%s cliente=%s",
		code, payload.ProductID, payload.ClientEmail)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint,
		strings.NewReader(body.Encode()))
	if err != nil {
		configslog.Log.Error("[Cademi] Erro ao montar requisição",
			zap.String("codigo", code), zap.Error(err))
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		configslog.Log.Error("[Cademi] Erro de rede no postback",
			zap.String("codigo", code), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	logBody := Redact(string(respBody), payload.Token)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		configslog.Log.Warn("[Cademi] Postback rejeitado",
			zap.String("codigo", code),
			zap.Int("http_status", resp.StatusCode),
			zap.String("resposta", logBody))
		return fmt.Errorf("postback cademi: HTTP %d", resp.StatusCode)
	}

	configslog.SLog.Infof("[Cademi] Postback aceito: codigo=%s status=%d resposta=%s",
		code, resp.StatusCode, logBody)
	return nil
}

// Redact substitui o segredo por [REDIGIDO] em textos destinados a log.
func Redact(text, secret string) string {
	if secret == "" {
		return text
	}
	return strings.ReplaceAll(text, secret, "[REDIGIDO]")
}

var _ IWebhookService = (*WebhookService)(nil)
