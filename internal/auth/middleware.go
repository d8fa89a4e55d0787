package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	CtxUserID   ctxKey = "usuarioID"
	CtxAgencyID ctxKey = "agenciaID"
	CtxPapel    ctxKey = "papel"
)

// MiddlewareAutenticacao exige um bearer token válido e injeta a identidade
// no contexto da requisição.
func MiddlewareAutenticacao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := ValidarToken(raw)
		if err != nil {
			http.Error(w, "Token inválido", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxUserID, claims.UserID)
		ctx = context.WithValue(ctx, CtxAgencyID, claims.AgencyID)
		ctx = context.WithValue(ctx, CtxPapel, claims.Papel)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Identidade resume quem está chamando, extraída do contexto.
type Identidade struct {
	UserID   uint
	AgencyID string
	Papel    string
}

// IdentidadeDe lê a identidade injetada pelo middleware. ok=false quando a
// requisição não passou pela autenticação.
func IdentidadeDe(r *http.Request) (Identidade, bool) {
	userID, ok := r.Context().Value(CtxUserID).(uint)
	if !ok {
		return Identidade{}, false
	}
	agencyID, _ := r.Context().Value(CtxAgencyID).(string)
	papel, _ := r.Context().Value(CtxPapel).(string)
	return Identidade{UserID: userID, AgencyID: agencyID, Papel: papel}, true
}

// EhAdmin indica se a identidade tem papel de administrador.
func (i Identidade) EhAdmin() bool { return i.Papel == PapelAdmin }
