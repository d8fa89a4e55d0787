package contato

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, c *Contato) error
	BuscarPorID(db *gorm.DB, id uint, agencyID string) (*Contato, error)
	BuscarPorHomioID(db *gorm.DB, homioID, agencyID string) (*Contato, error)
	ContarReferencias(db *gorm.DB, contatoID uint) (int64, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *Contato) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint, agencyID string) (*Contato, error) {
	var c Contato
	err := db.Where("id = ? AND agency_id = ?", id, agencyID).First(&c).Error
	return &c, err
}

// BuscarPorHomioID devolve nil (sem erro) quando o contato ainda não existe
// localmente.
func (r *repositoryImpl) BuscarPorHomioID(db *gorm.DB, homioID, agencyID string) (*Contato, error) {
	var c Contato
	err := db.Where("homio_id = ? AND agency_id = ?", homioID, agencyID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ContarReferencias conta quantas propostas ainda apontam para o contato,
// como principal ou secundário.
func (r *repositoryImpl) ContarReferencias(db *gorm.DB, contatoID uint) (int64, error) {
	var total int64
	err := db.Table("propostas").
		Where("(contato_principal_id = ? OR contato_secundario_id = ?) AND deleted_at IS NULL", contatoID, contatoID).
		Count(&total).Error
	return total, err
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Contato{}, id).Error
}
