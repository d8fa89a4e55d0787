package unidade

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, u *Unidade) error
	ListarPorEmpreendimento(db *gorm.DB, empreendimentoID uint, agencyID string) ([]Unidade, error)
	BuscarPorID(db *gorm.DB, id uint, agencyID string) (*Unidade, error)
	ListarResumoPorEmpreendimento(db *gorm.DB, empreendimentoID uint, agencyID string) ([]UnidadeResumo, error)
	AtualizarStatus(db *gorm.DB, id uint, agencyID, status string, reservadoAte *time.Time) error
	Deletar(db *gorm.DB, id uint, agencyID string) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, u *Unidade) error {
	return db.Save(u).Error
}

func (r *repositoryImpl) ListarPorEmpreendimento(db *gorm.DB, empreendimentoID uint, agencyID string) ([]Unidade, error) {
	var list []Unidade
	err := db.
		Where("empreendimento_id = ? AND agency_id = ?", empreendimentoID, agencyID).
		Order("numero ASC").
		Find(&list).Error
	return list, err
}

// ListarResumoPorEmpreendimento lê a view com o valor atual já calculado.
func (r *repositoryImpl) ListarResumoPorEmpreendimento(db *gorm.DB, empreendimentoID uint, agencyID string) ([]UnidadeResumo, error) {
	var list []UnidadeResumo
	err := db.
		Where("empreendimento_id = ? AND agency_id = ?", empreendimentoID, agencyID).
		Order("unidade_nome ASC").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint, agencyID string) (*Unidade, error) {
	var u Unidade
	err := db.Where("id = ? AND agency_id = ?", id, agencyID).First(&u).Error
	return &u, err
}

// AtualizarStatus grava status e data de reserva escopado por (id, agência)
// como fronteira de tenancy.
func (r *repositoryImpl) AtualizarStatus(db *gorm.DB, id uint, agencyID, status string, reservadoAte *time.Time) error {
	res := db.Model(&Unidade{}).
		Where("id = ? AND agency_id = ?", id, agencyID).
		Updates(map[string]interface{}{
			"status":        status,
			"reservado_ate": reservadoAte,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint, agencyID string) error {
	res := db.Where("id = ? AND agency_id = ?", id, agencyID).Delete(&Unidade{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
