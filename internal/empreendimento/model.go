package empreendimento

import "gorm.io/gorm"

// Empreendimento representa um prédio/empreendimento da carteira da agência.
type Empreendimento struct {
	gorm.Model
	AgencyID string `gorm:"size:64;not null;index" json:"agencyId"`
	Nome     string `gorm:"size:255;not null" json:"nome"`
	Endereco string `json:"endereco"`
	Cidade   string `json:"cidade"`
	UF       string `gorm:"size:2" json:"uf"`
}
