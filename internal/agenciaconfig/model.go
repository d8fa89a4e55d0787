package agenciaconfig

import "gorm.io/gorm"

// MapaCampos liga o nome interno do campo de formulário ao ID opaco do
// custom field no CRM.
type MapaCampos map[string]string

// Resolver devolve o ID externo do campo, se mapeado.
func (m MapaCampos) Resolver(campo string) (string, bool) {
	id, ok := m[campo]
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// AgenciaConfig guarda, por agência, o mapeamento de campos internos para os
// custom fields externos de oportunidade e de contato, além da URL livre da
// tabela externa.
type AgenciaConfig struct {
	gorm.Model
	AgencyID string `gorm:"size:64;not null;uniqueIndex" json:"agencyId"`

	CamposOportunidade MapaCampos `gorm:"type:jsonb;serializer:json" json:"camposOportunidade"`
	CamposContato      MapaCampos `gorm:"type:jsonb;serializer:json" json:"camposContato"`

	TabelaURL string `json:"tabelaUrl"`
}
