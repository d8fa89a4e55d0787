package parcela

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrCondicaoInvalida marca condições fora da enumeração fixa.
var ErrCondicaoInvalida = errors.New("condição de parcela inválida")

// Condições de pagamento aceitas.
const (
	CondicaoSinal          = "sinal"
	CondicaoParcelaUnica   = "parcela_unica"
	CondicaoFinanciamento  = "financiamento"
	CondicaoMensais        = "mensais"
	CondicaoIntermediarias = "intermediarias"
	CondicaoAnuais         = "anuais"
	CondicaoSemestrais     = "semestrais"
	CondicaoBimestrais     = "bimestrais"
	CondicaoTrimestrais    = "trimestrais"
)

var condicoesValidas = map[string]bool{
	CondicaoSinal:          true,
	CondicaoParcelaUnica:   true,
	CondicaoFinanciamento:  true,
	CondicaoMensais:        true,
	CondicaoIntermediarias: true,
	CondicaoAnuais:         true,
	CondicaoSemestrais:     true,
	CondicaoBimestrais:     true,
	CondicaoTrimestrais:    true,
}

// ValidarCondicao rejeita condições fora da enumeração fixa.
func ValidarCondicao(condicao string) error {
	if !condicoesValidas[condicao] {
		return fmt.Errorf("%w: %q", ErrCondicaoInvalida, condicao)
	}
	return nil
}

// Parcela pertence a uma proposta. Para a condição "intermediarias" as datas
// explícitas ficam em Datas; nas demais vale só a DataInicial.
type Parcela struct {
	gorm.Model
	AgencyID   string  `gorm:"size:64;not null;index" json:"agencyId"`
	PropostaID uint    `gorm:"not null;index" json:"propostaId"`
	Condicao   string  `gorm:"size:30;not null" json:"condicao"`
	Valor      float64 `gorm:"not null;default:0" json:"valor"`
	Quantidade int     `gorm:"not null;default:1" json:"quantidade"`
	ValorTotal float64 `gorm:"not null;default:0" json:"valorTotal"`

	DataInicial *time.Time `json:"dataInicial,omitempty"`

	Datas []ParcelaData `gorm:"foreignKey:ParcelaID;constraint:OnDelete:CASCADE" json:"datas,omitempty"`
}

// ParcelaData é uma data explícita de uma parcela "intermediarias".
type ParcelaData struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ParcelaID uint      `gorm:"not null;index" json:"parcelaId"`
	Data      time.Time `gorm:"not null" json:"data"`
}
