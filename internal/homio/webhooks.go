package homio

import "context"

// NotificacaoStatusUnidade é o payload do webhook de confirmação de status
// de unidade. O status vai no vocabulário externo (livre/reservado/vendido).
type NotificacaoStatusUnidade struct {
	UnidadeID          uint   `json:"unidadeId"`
	UnidadeNome        string `json:"unidadeNome"`
	Status             string `json:"status"`
	AgencyID           string `json:"agencyId"`
	EmpreendimentoNome string `json:"empreendimentoNome,omitempty"`
	ChaveIdempotencia  string `json:"chaveIdempotencia"`
}

// NotificarStatusUnidade confirma a mudança de status junto ao sistema
// externo. Operação confirmada: falha volta como *ErroWebhook.
func (c *Client) NotificarStatusUnidade(ctx context.Context, n NotificacaoStatusUnidade) error {
	if err := c.post(ctx, c.urlUnidade, n); err != nil {
		return &ErroWebhook{Operacao: "status-unidade", Causa: err}
	}
	return nil
}

// CampoValor é um par (ID externo do custom field, valor já aparado).
type CampoValor struct {
	ID         string `json:"id"`
	FieldValue string `json:"field_value"`
}

type payloadOportunidade struct {
	OpportunityID string       `json:"opportunityId"`
	CustomFields  []CampoValor `json:"customFields"`
}

// AtualizarCamposOportunidade empurra os custom fields recomputados para a
// oportunidade no CRM. Best-effort: o chamador loga a falha e segue.
func (c *Client) AtualizarCamposOportunidade(ctx context.Context, opportunityID string, campos []CampoValor) error {
	return c.post(ctx, c.baseURL+"/opportunities/update", payloadOportunidade{
		OpportunityID: opportunityID,
		CustomFields:  campos,
	})
}

// ParcelaFinanceira é uma parcela no payload do webhook financeiro. Dates só
// vem preenchido para a condição intermediarias.
type ParcelaFinanceira struct {
	ID          uint     `json:"id"`
	Condition   string   `json:"condition"`
	Amount      float64  `json:"amount"`
	Count       int      `json:"count"`
	FirstDate   string   `json:"firstDate"`
	Dates       []string `json:"dates,omitempty"`
	TotalAmount float64  `json:"totalAmount,omitempty"`
}

// PayloadFinanceiro agrupa as parcelas da proposta aprovada, chaveadas pelo
// ID externo do contato.
type PayloadFinanceiro struct {
	ContactExternalID string              `json:"contactExternalId"`
	AgencyID          string              `json:"agencyId"`
	Installments      []ParcelaFinanceira `json:"installments"`
}

// EnviarFinanceiro envia o plano de pagamento ao webhook financeiro.
// Best-effort: o chamador loga a falha e segue.
func (c *Client) EnviarFinanceiro(ctx context.Context, payload PayloadFinanceiro) error {
	return c.post(ctx, c.urlFinanceiro, payload)
}
