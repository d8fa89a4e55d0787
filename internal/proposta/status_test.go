package proposta

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusIdaEVolta(t *testing.T) {
	for _, externo := range []string{"em_analise", "aprovada", "negada"} {
		interno, err := StatusParaInterno(externo)
		require.NoError(t, err)
		volta, err := StatusParaExterno(interno)
		require.NoError(t, err)
		assert.Equal(t, externo, volta)
	}
}

func TestStatusExternoInvalido(t *testing.T) {
	_, err := StatusParaInterno("cancelada")
	assert.True(t, errors.Is(err, ErrStatusInvalido))

	_, err = StatusParaInterno("")
	assert.True(t, errors.Is(err, ErrStatusInvalido))

	_, err = StatusParaInterno("under_review")
	assert.True(t, errors.Is(err, ErrStatusInvalido), "código interno não é aceito como rótulo externo")
}
