package proposta

import (
	"time"

	"gorm.io/gorm"
)

// DetalheSync é a proposta re-buscada com unidade e empreendimento, na forma
// que a sincronização de custom fields consome.
type DetalheSync struct {
	OpportunityID      string
	EmpreendimentoNome string
	UnidadeNome        string
	UnidadeNumero      string
	Responsavel        string
	Observacoes        string
	ReservadoAte       *time.Time
}

type Repository interface {
	Salvar(db *gorm.DB, p *Proposta) error
	BuscarPorID(db *gorm.DB, id uint, agencyID string) (*Proposta, error)
	// AtualizarStatus devolve quantas linhas o update alcançou; zero indica
	// que a proposta sumiu entre a leitura e a escrita.
	AtualizarStatus(db *gorm.DB, id uint, agencyID string, campos map[string]interface{}) (int64, error)
	ListarResumo(db *gorm.DB, agencyID string, criadoPor *uint) ([]PropostaResumo, error)
	BuscarDetalheSync(db *gorm.DB, id uint, agencyID string) (*DetalheSync, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, p *Proposta) error {
	return db.Save(p).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint, agencyID string) (*Proposta, error) {
	var p Proposta
	err := db.Where("id = ? AND agency_id = ?", id, agencyID).First(&p).Error
	return &p, err
}

func (r *repositoryImpl) AtualizarStatus(db *gorm.DB, id uint, agencyID string, campos map[string]interface{}) (int64, error) {
	res := db.Model(&Proposta{}).
		Where("id = ? AND agency_id = ?", id, agencyID).
		Updates(campos)
	return res.RowsAffected, res.Error
}

func (r *repositoryImpl) ListarResumo(db *gorm.DB, agencyID string, criadoPor *uint) ([]PropostaResumo, error) {
	q := db.Where("agency_id = ?", agencyID)
	if criadoPor != nil {
		q = q.Where("criado_por = ?", *criadoPor)
	}
	var list []PropostaResumo
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) BuscarDetalheSync(db *gorm.DB, id uint, agencyID string) (*DetalheSync, error) {
	var det DetalheSync
	err := db.Table("propostas").
		Select(`propostas.opportunity_id,
			e.nome AS empreendimento_nome,
			u.nome AS unidade_nome,
			u.numero AS unidade_numero,
			propostas.responsavel,
			propostas.observacoes,
			propostas.reservado_ate`).
		Joins("LEFT JOIN unidades u ON u.id = propostas.unidade_id").
		Joins("LEFT JOIN empreendimentos e ON e.id = u.empreendimento_id").
		Where("propostas.id = ? AND propostas.agency_id = ?", id, agencyID).
		Scan(&det).Error
	if err != nil {
		return nil, err
	}
	return &det, nil
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Proposta{}, id).Error
}
