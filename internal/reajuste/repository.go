package reajuste

import (
	"errors"

	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados dos reajustes mensais.
type Repository struct {
	DB *gorm.DB
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// BuscarPorUnidadeEAno devolve nil quando o ano ainda não tem registro.
func (r *Repository) BuscarPorUnidadeEAno(unidadeID uint, ano int, agencyID string) (*ReajusteMensal, error) {
	var reg ReajusteMensal
	err := r.DB.
		Where("unidade_id = ? AND ano = ? AND agency_id = ?", unidadeID, ano, agencyID).
		First(&reg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// ListarPorUnidade devolve todos os anos da unidade em ordem ascendente.
func (r *Repository) ListarPorUnidade(unidadeID uint, agencyID string) ([]ReajusteMensal, error) {
	var regs []ReajusteMensal
	err := r.DB.
		Where("unidade_id = ? AND agency_id = ?", unidadeID, agencyID).
		Order("ano ASC").
		Find(&regs).Error
	return regs, err
}

// Salvar insere ou atualiza o registro do ano.
func (r *Repository) Salvar(reg *ReajusteMensal) error {
	return r.DB.Save(reg).Error
}

// AtualizarTaxaUnidade persiste o acumulado recomputado como taxa de
// correção da unidade, escopado por agência.
func (r *Repository) AtualizarTaxaUnidade(unidadeID uint, agencyID string, taxa float64) error {
	res := r.DB.Table("unidades").
		Where("id = ? AND agency_id = ?", unidadeID, agencyID).
		Update("taxa_correcao", taxa)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
