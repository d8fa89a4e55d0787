package unidade

// UnidadeResumo é a linha da view de leitura com o valor atual já calculado
// (valor bruto × (1 + taxa de correção)) no banco.
type UnidadeResumo struct {
	ID                 uint    `json:"id"`
	EmpreendimentoID   uint    `json:"empreendimentoId"`
	AgencyID           string  `json:"agencyId"`
	EmpreendimentoNome string  `json:"empreendimentoNome"`
	UnidadeNome        string  `json:"unidadeNome"`
	Torre              string  `json:"torre"`
	Andar              string  `json:"andar"`
	Status             string  `json:"status"`
	ValorBruto         float64 `json:"valorBruto"`
	TaxaCorrecao       float64 `json:"taxaCorrecao"`
	ValorAtual         float64 `json:"valorAtual"`
}

// TableName aponta o modelo para a view criada em utils/db.
func (UnidadeResumo) TableName() string { return "vw_unidades_resumo" }
