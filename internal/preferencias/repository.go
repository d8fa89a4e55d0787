package preferencias

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	BuscarPorAgencia(db *gorm.DB, agencyID string) (*Preferencias, error)
	Salvar(db *gorm.DB, p *Preferencias) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// BuscarPorAgencia devolve nil (sem erro) quando a agência ainda não tem
// preferências cadastradas; o gate trata nil como admin-only.
func (r *repositoryImpl) BuscarPorAgencia(db *gorm.DB, agencyID string) (*Preferencias, error) {
	var p Preferencias
	err := db.Where("agency_id = ?", agencyID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) Salvar(db *gorm.DB, p *Preferencias) error {
	return db.Save(p).Error
}
