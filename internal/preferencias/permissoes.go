package preferencias

import "github.com/primehaus/backoffice/internal/auth"

// Permissoes são os booleanos efetivos do chamador, resolvidos a cada
// requisição. A decisão nunca é cacheada entre requisições.
type Permissoes struct {
	VerPropostas         bool
	GerirPropostas       bool
	VerEmpreendimentos   bool
	GerirEmpreendimentos bool
	SomenteProprias      bool
}

// ResolverPermissoes converte (preferências-ou-nil, papel) nas capacidades
// efetivas. Sem preferências cadastradas, tudo fica restrito a admin.
// Não-admin só ganha uma capacidade quando a flag correspondente vale
// adminAndUser; admin sempre passa.
func ResolverPermissoes(prefs *Preferencias, papel string) Permissoes {
	admin := papel == auth.PapelAdmin
	if prefs == nil {
		return Permissoes{
			VerPropostas:         admin,
			GerirPropostas:       admin,
			VerEmpreendimentos:   admin,
			GerirEmpreendimentos: admin,
		}
	}

	concede := func(flag string) bool {
		return admin || flag == AdminEUsuario
	}

	return Permissoes{
		VerPropostas:         concede(prefs.CanViewProposals),
		GerirPropostas:       concede(prefs.CanManageProposals),
		VerEmpreendimentos:   concede(prefs.CanViewBuildings),
		GerirEmpreendimentos: concede(prefs.CanManageBuildings),
		SomenteProprias:      prefs.CanManageOnlyAssinedProposals && !admin,
	}
}
