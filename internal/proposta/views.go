package proposta

import "time"

// PropostaResumo é a linha da view de listagem, que pré-junta nomes de
// contato/unidade/empreendimento e o total das parcelas.
type PropostaResumo struct {
	ID                 uint       `json:"id"`
	AgencyID           string     `json:"agencyId"`
	Status             string     `json:"status"`
	ReservadoAte       *time.Time `json:"reservadoAte,omitempty"`
	Responsavel        string     `json:"responsavel"`
	CriadoPor          uint       `json:"criadoPor"`
	CreatedAt          time.Time  `json:"createdAt"`
	ContatoNome        string     `json:"contatoNome"`
	ContatoHomioID     string     `json:"contatoHomioId"`
	UnidadeID          uint       `json:"unidadeId"`
	UnidadeNome        string     `json:"unidadeNome"`
	EmpreendimentoNome string     `json:"empreendimentoNome"`
	ValorTotal         float64    `json:"valorTotal"`
}

// TableName aponta o modelo para a view criada em utils/db.
func (PropostaResumo) TableName() string { return "vw_propostas_resumo" }
