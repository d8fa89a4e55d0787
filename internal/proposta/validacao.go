package proposta

import (
	"errors"
	"time"
)

// ErrReservaSemData: cascatear para em_analise exige data de reserva, a não
// ser que a proposta já esteja em análise (aí a data armazenada é limpa).
var ErrReservaSemData = errors.New("mudança para em_analise com atualização de unidade exige data de reserva")

// ValidarMudancaStatus é a checagem de fronteira do wizard, espelhada no
// servidor. statusAtual e novoStatus estão no vocabulário de armazenamento.
func ValidarMudancaStatus(statusAtual, novoStatus string, atualizarUnidade bool, reservadoAte *time.Time) error {
	if novoStatus != StatusEmAnalise || !atualizarUnidade {
		return nil
	}
	if reservadoAte == nil && statusAtual != StatusEmAnalise {
		return ErrReservaSemData
	}
	return nil
}
