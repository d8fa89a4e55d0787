package empreendimento

import "gorm.io/gorm"

type Repository interface {
	Salvar(db *gorm.DB, e *Empreendimento) error
	ListarPorAgencia(db *gorm.DB, agencyID string) ([]Empreendimento, error)
	BuscarPorID(db *gorm.DB, id uint, agencyID string) (*Empreendimento, error)
	Deletar(db *gorm.DB, id uint, agencyID string) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, e *Empreendimento) error {
	return db.Save(e).Error
}

func (r *repositoryImpl) ListarPorAgencia(db *gorm.DB, agencyID string) ([]Empreendimento, error) {
	var list []Empreendimento
	err := db.Where("agency_id = ?", agencyID).Order("nome ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint, agencyID string) (*Empreendimento, error) {
	var e Empreendimento
	err := db.Where("id = ? AND agency_id = ?", id, agencyID).First(&e).Error
	return &e, err
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint, agencyID string) error {
	res := db.Where("id = ? AND agency_id = ?", id, agencyID).Delete(&Empreendimento{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
