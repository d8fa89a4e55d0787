package unidade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/primehaus/backoffice/internal/homio"
	"gorm.io/gorm"
)

// NotificadorStatus confirma a mudança de status junto ao sistema externo.
// Falha aqui deve se propagar ao chamador como erro de webhook, distinto de
// erro de banco.
type NotificadorStatus interface {
	NotificarStatusUnidade(ctx context.Context, n homio.NotificacaoStatusUnidade) error
}

// ServicoStatus trata a escrita de status + confirmação externa como uma
// operação lógica única do ponto de vista do chamador.
type ServicoStatus struct {
	DB          *gorm.DB
	Repository  Repository
	Notificador NotificadorStatus
}

func NewServicoStatus(db *gorm.DB, notificador NotificadorStatus) *ServicoStatus {
	return &ServicoStatus{
		DB:          db,
		Repository:  NewRepository(),
		Notificador: notificador,
	}
}

// AtualizarStatusConfirmado grava o novo status (escopado por agência) e só
// considera a operação completa depois do webhook confirmar. O erro do
// webhook volta intacto: a escrita no banco já está comprometida e o handler
// precisa distinguir os dois casos.
func (s *ServicoStatus) AtualizarStatusConfirmado(ctx context.Context, id uint, agencyID, statusInterno string, reservadoAte *time.Time) error {
	u, err := s.Repository.BuscarPorID(s.DB, id, agencyID)
	if err != nil {
		return err
	}

	statusExterno, err := StatusParaExterno(statusInterno)
	if err != nil {
		return err
	}

	if err := s.Repository.AtualizarStatus(s.DB, id, agencyID, statusInterno, reservadoAte); err != nil {
		return err
	}

	notif := homio.NotificacaoStatusUnidade{
		UnidadeID:         u.ID,
		UnidadeNome:       u.Rotulo(),
		Status:            statusExterno,
		AgencyID:          agencyID,
		ChaveIdempotencia: uuid.NewString(),
	}
	// Nome do empreendimento entra quando resolvível; a notificação não
	// depende dele.
	var nome string
	if err := s.DB.Table("empreendimentos").
		Select("nome").
		Where("id = ?", u.EmpreendimentoID).
		Scan(&nome).Error; err == nil {
		notif.EmpreendimentoNome = nome
	}

	return s.Notificador.NotificarStatusUnidade(ctx, notif)
}
