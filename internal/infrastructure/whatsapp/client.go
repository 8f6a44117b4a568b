// Package whatsapp adaptador REST para o provedor de mensagens WhatsApp.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jportela/producao-pro/internal/domain/entity"
	"github.com/jportela/producao-pro/pkg/config"
)

// Client envia mensagens pela API REST do provedor. Usa net/http da biblioteca
// padrão; o provedor expõe um endpoint único POST /messages com Bearer token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient constrói o adaptador a partir da configuração.
func NewClient(cfg config.NotifyConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type sendRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Send envia a mensagem do registro ao telefone do destinatário.
// Devolve o status HTTP do provedor (0 = falha de transporte, sem resposta)
// e o corpo da resposta, para gravação no próprio registro.
func (c *Client) Send(ctx context.Context, rec *entity.NotificationRecord) (int, string, error) {
	if c.baseURL == "" {
		return 0, "", fmt.Errorf("whatsapp: WHATSAPP_BASE_URL não configurado")
	}
	if rec.Recipient == "" {
		return 0, "", fmt.Errorf("whatsapp: destinatário vazio (pedido %s)", rec.OrderID)
	}

	body, err := json.Marshal(sendRequest{Phone: rec.Recipient, Message: rec.Payload})
	if err != nil {
		return 0, "", fmt.Errorf("whatsapp: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return 0, "", fmt.Errorf("whatsapp: criar HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, "", fmt.Errorf("whatsapp: timeout ou cancelamento: %w", ctx.Err())
		}
		return 0, "", fmt.Errorf("whatsapp: chamada HTTP falhou: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("whatsapp: ler resposta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, string(raw), fmt.Errorf("whatsapp: provedor HTTP %d", resp.StatusCode)
	}
	return resp.StatusCode, string(raw), nil
}
