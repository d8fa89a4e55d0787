package unidade

import "fmt"

// Status de armazenamento das unidades.
const (
	StatusDisponivel = "available"
	StatusReservado  = "reserved"
	StatusVendido    = "sold"
)

// Tabela fixa bidirecional: vocabulário externo ↔ armazenamento.
var statusExternoParaInterno = map[string]string{
	"livre":     StatusDisponivel,
	"reservado": StatusReservado,
	"vendido":   StatusVendido,
}

var statusInternoParaExterno = map[string]string{
	StatusDisponivel: "livre",
	StatusReservado:  "reservado",
	StatusVendido:    "vendido",
}

// StatusParaInterno traduz o rótulo externo para o código de armazenamento.
func StatusParaInterno(externo string) (string, error) {
	interno, ok := statusExternoParaInterno[externo]
	if !ok {
		return "", fmt.Errorf("status de unidade inválido: %q", externo)
	}
	return interno, nil
}

// StatusParaExterno traduz o código de armazenamento para o rótulo externo.
func StatusParaExterno(interno string) (string, error) {
	externo, ok := statusInternoParaExterno[interno]
	if !ok {
		return "", fmt.Errorf("status de unidade desconhecido: %q", interno)
	}
	return externo, nil
}
