package proposta

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidarMudancaStatusReservaExigeData(t *testing.T) {
	err := ValidarMudancaStatus(StatusAprovada, StatusEmAnalise, true, nil)
	assert.ErrorIs(t, err, ErrReservaSemData)
}

func TestValidarMudancaStatusComData(t *testing.T) {
	data := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, ValidarMudancaStatus(StatusAprovada, StatusEmAnalise, true, &data))
}

func TestValidarMudancaStatusJaEmAnaliseLimpaReserva(t *testing.T) {
	// sem data mas já em análise: a reserva armazenada é limpa, não é erro
	assert.NoError(t, ValidarMudancaStatus(StatusEmAnalise, StatusEmAnalise, true, nil))
}

func TestValidarMudancaStatusSemCascata(t *testing.T) {
	assert.NoError(t, ValidarMudancaStatus(StatusAprovada, StatusEmAnalise, false, nil))
	assert.NoError(t, ValidarMudancaStatus(StatusEmAnalise, StatusAprovada, true, nil))
	assert.NoError(t, ValidarMudancaStatus(StatusEmAnalise, StatusNegada, true, nil))
}
