package agenciaconfig

import "strings"

// Campos internos do formulário de proposta.
const (
	CampoEmpreendimento = "empreendimento"
	CampoUnidade        = "unidade"
	CampoResponsavel    = "responsavel"
	CampoObservacoes    = "observacoes"
	CampoReservadoAte   = "reservado_ate"
)

// O conjunto de grafias aceitas é dado, não código: cada campo interno lista
// as chaves com que o custom field costuma aparecer no CRM.
var aliasesOportunidade = map[string][]string{
	CampoEmpreendimento: {"empreendimento", "building", "predio", "prédio", "imovel"},
	CampoUnidade:        {"unidade", "unit", "apartamento", "apto"},
	CampoResponsavel:    {"responsavel", "responsável", "corretor", "responsible"},
	CampoObservacoes:    {"observacoes", "observações", "obs", "notes", "observacao"},
	CampoReservadoAte:   {"reservado_ate", "reservado até", "reserva", "reserve_until", "reservadoate"},
}

var aliasesContato = map[string][]string{
	"cpf":        {"cpf", "documento", "document"},
	"profissao":  {"profissao", "profissão", "occupation"},
	"renda":      {"renda", "renda_mensal", "income"},
	"nascimento": {"nascimento", "data_nascimento", "birthdate"},
}

// CampoCRM é uma entrada da listagem de custom fields do CRM.
type CampoCRM struct {
	ID    string `json:"id" validate:"required"`
	Chave string `json:"chave" validate:"required"`
}

func normalizar(chave string) string {
	return strings.ToLower(strings.TrimSpace(chave))
}

// MontarMapa casa a listagem do CRM com a tabela de aliases e devolve o
// mapeamento campo interno → ID externo. Chaves desconhecidas são ignoradas.
func MontarMapa(listagem []CampoCRM, aliases map[string][]string) MapaCampos {
	porChave := make(map[string]string, len(listagem))
	for _, c := range listagem {
		porChave[normalizar(c.Chave)] = c.ID
	}

	mapa := make(MapaCampos)
	for campo, grafias := range aliases {
		for _, g := range grafias {
			if id, ok := porChave[normalizar(g)]; ok {
				mapa[campo] = id
				break
			}
		}
	}
	return mapa
}

// MontarMapaOportunidade aplica a tabela de aliases de oportunidade.
func MontarMapaOportunidade(listagem []CampoCRM) MapaCampos {
	return MontarMapa(listagem, aliasesOportunidade)
}

// MontarMapaContato aplica a tabela de aliases de contato.
func MontarMapaContato(listagem []CampoCRM) MapaCampos {
	return MontarMapa(listagem, aliasesContato)
}
