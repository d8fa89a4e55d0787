package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

// Configurar define o segredo HS256 usado para assinar e validar tokens.
// Deve ser chamado uma vez no boot, antes de qualquer Gerar/Validar.
func Configurar(secret string) error {
	if secret == "" {
		return errors.New("JWT_SECRET não definida")
	}
	jwtSecret = []byte(secret)
	return nil
}

// Papéis aceitos no token.
const (
	PapelAdmin    = "admin"
	PapelCorretor = "corretor"
)

// Claims do token: identidade do usuário e o tenant (agência) dele.
type Claims struct {
	UserID   uint   `json:"userId"`
	AgencyID string `json:"agencyId"`
	Papel    string `json:"role"`
	jwt.RegisteredClaims
}

// GerarToken gera um JWT com validade de 24h.
func GerarToken(userID uint, agencyID, papel string) (string, error) {
	claims := &Claims{
		UserID:   userID,
		AgencyID: agencyID,
		Papel:    papel,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidarToken valida o token e retorna as claims.
func ValidarToken(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token inválido ou expirado: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("não foi possível extrair claims")
	}
	return claims, nil
}
