package proposta

import (
	"errors"
	"fmt"
)

// Status de armazenamento das propostas.
const (
	StatusEmAnalise = "under_review"
	StatusAprovada  = "approved"
	StatusNegada    = "denied"
)

// ErrStatusInvalido marca status externo fora do conjunto fixo; rejeitado
// antes de qualquer acesso a banco.
var ErrStatusInvalido = errors.New("status de proposta inválido")

// Tabela fixa bidirecional: rótulo externo ↔ armazenamento. Cada status de
// armazenamento mapeia para exatamente um rótulo externo.
var statusExternoParaInterno = map[string]string{
	"em_analise": StatusEmAnalise,
	"aprovada":   StatusAprovada,
	"negada":     StatusNegada,
}

var statusInternoParaExterno = map[string]string{
	StatusEmAnalise: "em_analise",
	StatusAprovada:  "aprovada",
	StatusNegada:    "negada",
}

// StatusParaInterno traduz o rótulo externo para o código de armazenamento.
func StatusParaInterno(externo string) (string, error) {
	interno, ok := statusExternoParaInterno[externo]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrStatusInvalido, externo)
	}
	return interno, nil
}

// StatusParaExterno traduz o código de armazenamento para o rótulo externo.
func StatusParaExterno(interno string) (string, error) {
	externo, ok := statusInternoParaExterno[interno]
	if !ok {
		return "", fmt.Errorf("status de armazenamento desconhecido: %q", interno)
	}
	return externo, nil
}
