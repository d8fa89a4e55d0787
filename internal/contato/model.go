package contato

import "gorm.io/gorm"

// Contato é o registro local mínimo; o detalhe completo vive no CRM externo
// e é buscado sob demanda.
type Contato struct {
	gorm.Model
	AgencyID string `gorm:"size:64;not null;index" json:"agencyId"`
	HomioID  string `gorm:"size:64;index" json:"homioId"`
	Nome     string `json:"nome"`
}
