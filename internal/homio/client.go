package homio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/primehaus/backoffice/internal/config"
)

// Client fala com o CRM externo (Homio/GHL) e com os webhooks de integração.
// Métodos "confirmados" devolvem *ErroWebhook em falha; métodos best-effort
// devolvem erro simples que o chamador só loga.
type Client struct {
	HTTP   *http.Client
	Logger *slog.Logger

	baseURL       string
	token         string
	urlUnidade    string
	urlFinanceiro string
}

// NewClient monta o cliente a partir da configuração.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		HTTP:          &http.Client{Timeout: cfg.WebhookTimeout},
		Logger:        logger,
		baseURL:       cfg.HomioBaseURL,
		token:         cfg.HomioToken,
		urlUnidade:    cfg.WebhookUnidadeURL,
		urlFinanceiro: cfg.WebhookFinanceiroURL,
	}
}

func (c *Client) post(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detalhe, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(detalhe))
	}
	return nil
}

// BuscarContato busca o detalhe completo de um contato no CRM.
func (c *Client) BuscarContato(ctx context.Context, homioID string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/contacts/"+homioID, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d ao buscar contato %s", resp.StatusCode, homioID)
	}

	var detalhe map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&detalhe); err != nil {
		return nil, err
	}
	return detalhe, nil
}
