package reajuste

import "time"

// ReajusteMensal guarda as taxas fracionárias de um ano de uma unidade
// (0.005 = 0,5%). Uma linha por (unidade, ano).
type ReajusteMensal struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	AgencyID  string `gorm:"size:64;not null;index" json:"agencyId"`
	UnidadeID uint   `gorm:"not null;index:idx_reajuste_unidade_ano,unique" json:"unidadeId"`
	Ano       int    `gorm:"not null;index:idx_reajuste_unidade_ano,unique" json:"ano"`

	Janeiro   float64 `gorm:"not null;default:0" json:"janeiro"`
	Fevereiro float64 `gorm:"not null;default:0" json:"fevereiro"`
	Marco     float64 `gorm:"not null;default:0" json:"marco"`
	Abril     float64 `gorm:"not null;default:0" json:"abril"`
	Maio      float64 `gorm:"not null;default:0" json:"maio"`
	Junho     float64 `gorm:"not null;default:0" json:"junho"`
	Julho     float64 `gorm:"not null;default:0" json:"julho"`
	Agosto    float64 `gorm:"not null;default:0" json:"agosto"`
	Setembro  float64 `gorm:"not null;default:0" json:"setembro"`
	Outubro   float64 `gorm:"not null;default:0" json:"outubro"`
	Novembro  float64 `gorm:"not null;default:0" json:"novembro"`
	Dezembro  float64 `gorm:"not null;default:0" json:"dezembro"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Meses devolve as doze taxas na ordem do calendário.
func (r *ReajusteMensal) Meses() []float64 {
	return []float64{
		r.Janeiro, r.Fevereiro, r.Marco, r.Abril, r.Maio, r.Junho,
		r.Julho, r.Agosto, r.Setembro, r.Outubro, r.Novembro, r.Dezembro,
	}
}
