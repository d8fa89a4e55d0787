package reajuste

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// arredondar8 arredonda a 8 casas decimais. Cada produto intermediário é
// re-arredondado antes da próxima multiplicação para que o acumulado seja
// determinístico entre implementações.
func arredondar8(v float64) float64 {
	return math.Round(v*1e8) / 1e8
}

// CalcularAcumulado composta todas as taxas mensais em ordem ascendente de
// ano e ordem do calendário: ∏(1 + taxa) − 1.
func CalcularAcumulado(registros []ReajusteMensal) float64 {
	ordenados := make([]ReajusteMensal, len(registros))
	copy(ordenados, registros)
	sort.Slice(ordenados, func(i, j int) bool { return ordenados[i].Ano < ordenados[j].Ano })

	acumulado := 1.0
	for _, reg := range ordenados {
		for _, taxa := range reg.Meses() {
			acumulado = arredondar8(acumulado * (1 + arredondar8(taxa)))
		}
	}
	return arredondar8(acumulado - 1)
}

// FormatarPercentual formata a taxa como percentual truncado (nunca
// arredondado) a 2 casas, para não superestimar a taxa exibida ao usuário.
// O truncamento acontece sobre a representação decimal com 8 casas; cortar
// direto o float64 deixaria o ruído binário rebaixar 3.02 para 3.01.
func FormatarPercentual(taxa float64) string {
	s := strconv.FormatFloat(taxa*100, 'f', 8, 64)
	ponto := strings.IndexByte(s, '.')
	return s[:ponto+3] + "%"
}
