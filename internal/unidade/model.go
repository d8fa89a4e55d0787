package unidade

import (
	"time"

	"gorm.io/gorm"
)

// Unidade pertence a exatamente um empreendimento.
type Unidade struct {
	gorm.Model
	AgencyID         string  `gorm:"size:64;not null;index" json:"agencyId"`
	EmpreendimentoID uint    `gorm:"not null;index" json:"empreendimentoId"`
	Numero           string  `gorm:"size:20;not null" json:"numero"`
	Nome             string  `gorm:"size:255" json:"nome"`
	Torre            string  `gorm:"size:50" json:"torre"`
	Andar            string  `gorm:"size:20" json:"andar"`
	Status           string  `gorm:"size:20;not null;default:'available';index" json:"status"`
	ValorBruto       float64 `gorm:"not null;default:0" json:"valorBruto"`
	// TaxaCorrecao é derivada: produto composto dos reajustes mensais em
	// ordem cronológica (ver pacote reajuste).
	TaxaCorrecao float64    `gorm:"not null;default:0" json:"taxaCorrecao"`
	ReservadoAte *time.Time `json:"reservadoAte,omitempty"`
}

// ValorAtual = valor bruto × (1 + taxa de correção).
func (u *Unidade) ValorAtual() float64 {
	return u.ValorBruto * (1 + u.TaxaCorrecao)
}

// Rotulo devolve o nome da unidade, caindo para o número quando vazio.
func (u *Unidade) Rotulo() string {
	if u.Nome != "" {
		return u.Nome
	}
	return u.Numero
}
