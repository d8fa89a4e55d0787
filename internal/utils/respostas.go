package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// DetalheStorage carrega o erro bruto do banco para depuração do operador.
// Não é sanitizado para o usuário final.
type DetalheStorage struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Hint    string `json:"hint,omitempty"`
	Code    string `json:"code,omitempty"`
}

type respostaStorage struct {
	Storage DetalheStorage `json:"storage"`
}

// RespostaWebhook é o shape devolvido quando o banco gravou mas a
// confirmação externa falhou. O cliente deve orientar contato com o suporte,
// não um retry cego.
type RespostaWebhook struct {
	Error          string `json:"error"`
	WebhookError   bool   `json:"webhookError"`
	WebhookMessage string `json:"webhookMessage"`
}

// ResponderJSON serializa v com o status informado.
func ResponderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ResponderErroStorage devolve 500 com o detalhe completo do erro de banco.
func ResponderErroStorage(w http.ResponseWriter, err error) {
	det := DetalheStorage{Message: err.Error()}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		det.Message = pgErr.Message
		det.Details = pgErr.Detail
		det.Hint = pgErr.Hint
		det.Code = pgErr.Code
	}
	ResponderJSON(w, http.StatusInternalServerError, respostaStorage{Storage: det})
}

// ResponderErroWebhook devolve 502 com o aviso de sincronização pendente.
func ResponderErroWebhook(w http.ResponseWriter, mensagem string) {
	ResponderJSON(w, http.StatusBadGateway, RespostaWebhook{
		Error:          "WEBHOOK_ERROR",
		WebhookError:   true,
		WebhookMessage: mensagem,
	})
}
