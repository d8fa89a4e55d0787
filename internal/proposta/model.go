package proposta

import (
	"time"

	"gorm.io/gorm"
)

// Proposta representa uma oferta de venda sobre uma unidade.
type Proposta struct {
	gorm.Model
	AgencyID  string `gorm:"size:64;not null;index" json:"agencyId"`
	UnidadeID uint   `gorm:"not null;index" json:"unidadeId"`
	CriadoPor uint   `gorm:"not null;index" json:"criadoPor"`

	ContatoPrincipalID  uint  `gorm:"not null;index" json:"contatoPrincipalId"`
	ContatoSecundarioID *uint `gorm:"index" json:"contatoSecundarioId,omitempty"`

	// OpportunityID é a chave da oportunidade no CRM externo.
	OpportunityID string `gorm:"size:64;index" json:"opportunityId"`

	Status       string     `gorm:"size:20;not null;default:'under_review';index" json:"status"`
	ReservadoAte *time.Time `json:"reservadoAte,omitempty"`
	Responsavel  string     `json:"responsavel"`
	Observacoes  string     `gorm:"type:text" json:"observacoes"`
}
