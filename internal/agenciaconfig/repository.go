package agenciaconfig

import (
	"errors"

	"github.com/primehaus/backoffice/internal/cache"
	"gorm.io/gorm"
)

const tipoCache = "agencia_config"

// Repository encapsula o acesso à configuração da agência, com cache local
// porque a resolução de campos roda no caminho quente da sincronização CRM.
type Repository struct {
	DB    *gorm.DB
	Cache *cache.Cache
}

func NewRepository(db *gorm.DB, c *cache.Cache) *Repository {
	return &Repository{DB: db, Cache: c}
}

func (r *Repository) chave(agencyID string) cache.Chave {
	return cache.Chave{Tipo: tipoCache, Agencia: agencyID, Escopo: "config"}
}

// BuscarPorAgencia devolve nil quando a agência não tem configuração.
func (r *Repository) BuscarPorAgencia(agencyID string) (*AgenciaConfig, error) {
	if r.Cache != nil {
		if v, ok := r.Cache.Obter(r.chave(agencyID)); ok {
			cfg := v.(AgenciaConfig)
			return &cfg, nil
		}
	}

	var cfg AgenciaConfig
	err := r.DB.Where("agency_id = ?", agencyID).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if r.Cache != nil {
		r.Cache.Definir(r.chave(agencyID), cfg)
	}
	return &cfg, nil
}

// Salvar grava e invalida a entrada cacheada da agência.
func (r *Repository) Salvar(cfg *AgenciaConfig) error {
	if err := r.DB.Save(cfg).Error; err != nil {
		return err
	}
	if r.Cache != nil {
		r.Cache.InvalidarTipo(tipoCache, cfg.AgencyID)
	}
	return nil
}
