package preferencias

import "gorm.io/gorm"

// Valores aceitos para as flags de visibilidade/gestão.
const (
	SomenteAdmin  = "adminOnly"
	AdminEUsuario = "adminAndUser"
)

// Preferencias guarda as flags de permissão configuráveis por agência.
// O nome do campo canManageOnlyAssinedProposals (com a grafia original)
// faz parte do contrato armazenado e é mantido como está.
type Preferencias struct {
	gorm.Model
	AgencyID string `gorm:"size:64;not null;uniqueIndex" json:"agencyId"`

	CanViewProposals    string `gorm:"size:20;not null;default:'adminOnly'" json:"canViewProposals"`
	CanManageProposals  string `gorm:"size:20;not null;default:'adminOnly'" json:"canManageProposals"`
	CanViewBuildings    string `gorm:"size:20;not null;default:'adminOnly'" json:"canViewBuildings"`
	CanManageBuildings  string `gorm:"size:20;not null;default:'adminOnly'" json:"canManageBuildings"`

	CanManageOnlyAssinedProposals bool `gorm:"not null;default:false" json:"canManageOnlyAssinedProposals"`
}
