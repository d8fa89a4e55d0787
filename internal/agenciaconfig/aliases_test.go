package agenciaconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMontarMapaOportunidade(t *testing.T) {
	listagem := []CampoCRM{
		{ID: "cf_001", Chave: "Empreendimento"},
		{ID: "cf_002", Chave: "UNIT"},
		{ID: "cf_003", Chave: " corretor "},
		{ID: "cf_004", Chave: "campo_que_nao_existe"},
	}

	mapa := MontarMapaOportunidade(listagem)

	id, ok := mapa.Resolver(CampoEmpreendimento)
	require.True(t, ok)
	assert.Equal(t, "cf_001", id)

	id, ok = mapa.Resolver(CampoUnidade)
	require.True(t, ok, "alias em outra língua e caixa alta também casa")
	assert.Equal(t, "cf_002", id)

	id, ok = mapa.Resolver(CampoResponsavel)
	require.True(t, ok, "espaços em volta da chave são ignorados")
	assert.Equal(t, "cf_003", id)

	_, ok = mapa.Resolver(CampoObservacoes)
	assert.False(t, ok, "campo sem correspondência fica fora do mapa")
}

func TestMontarMapaPrimeiraGrafiaGanha(t *testing.T) {
	listagem := []CampoCRM{
		{ID: "cf_b", Chave: "building"},
		{ID: "cf_a", Chave: "empreendimento"},
	}
	mapa := MontarMapaOportunidade(listagem)

	id, ok := mapa.Resolver(CampoEmpreendimento)
	require.True(t, ok)
	assert.Equal(t, "cf_a", id, "a ordem da tabela de aliases decide o empate")
}

func TestResolverMapaVazio(t *testing.T) {
	var mapa MapaCampos
	_, ok := mapa.Resolver(CampoUnidade)
	assert.False(t, ok)
}
