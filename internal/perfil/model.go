package perfil

import "gorm.io/gorm"

// Perfil é o usuário local do back-office, sempre escopado por agência.
type Perfil struct {
	gorm.Model
	AgencyID string `gorm:"size:64;not null;index" json:"agencyId"`
	Nome     string `json:"nome"`
	Email    string `gorm:"uniqueIndex" json:"email"`
	Telefone string `json:"telefone"`
	Foto     string `json:"foto"`
	Senha    string `json:"-"`
	Papel    string `gorm:"size:20;not null;default:'corretor'" json:"papel"`
}
