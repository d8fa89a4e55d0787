package parcela

import "gorm.io/gorm"

type Repository interface {
	Salvar(db *gorm.DB, p *Parcela) error
	CriarEmLote(db *gorm.DB, parcelas []*Parcela) error
	ListarPorProposta(db *gorm.DB, propostaID uint) ([]Parcela, error)
	BuscarPorID(db *gorm.DB, id uint, agencyID string) (*Parcela, error)
	Deletar(db *gorm.DB, id uint, agencyID string) error
	DeletarPorProposta(db *gorm.DB, propostaID uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, p *Parcela) error {
	return db.Save(p).Error
}

func (r *repositoryImpl) CriarEmLote(db *gorm.DB, parcelas []*Parcela) error {
	if len(parcelas) == 0 {
		return nil
	}
	return db.Create(parcelas).Error
}

// ListarPorProposta devolve as parcelas em ordem de criação, com as datas
// explícitas em ordem de data.
func (r *repositoryImpl) ListarPorProposta(db *gorm.DB, propostaID uint) ([]Parcela, error) {
	var parcelas []Parcela
	err := db.
		Where("proposta_id = ?", propostaID).
		Preload("Datas", func(db *gorm.DB) *gorm.DB {
			return db.Order("data ASC")
		}).
		Order("created_at ASC").
		Find(&parcelas).Error
	return parcelas, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint, agencyID string) (*Parcela, error) {
	var p Parcela
	err := db.
		Where("id = ? AND agency_id = ?", id, agencyID).
		Preload("Datas", func(db *gorm.DB) *gorm.DB {
			return db.Order("data ASC")
		}).
		First(&p).Error
	return &p, err
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint, agencyID string) error {
	res := db.Where("id = ? AND agency_id = ?", id, agencyID).Delete(&Parcela{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repositoryImpl) DeletarPorProposta(db *gorm.DB, propostaID uint) error {
	return db.Where("proposta_id = ?", propostaID).Delete(&Parcela{}).Error
}
