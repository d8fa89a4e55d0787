package homio

import "fmt"

// ErroWebhook marca falha na confirmação externa de uma operação cujo
// registro em banco já foi gravado. Precisa chegar ao chamador distinto de
// erro de storage: o usuário deve acionar o suporte, não repetir a operação.
type ErroWebhook struct {
	Operacao string
	Causa    error
}

func (e *ErroWebhook) Error() string {
	if e.Causa != nil {
		return fmt.Sprintf("webhook %s falhou: %v", e.Operacao, e.Causa)
	}
	return fmt.Sprintf("webhook %s falhou", e.Operacao)
}

func (e *ErroWebhook) Unwrap() error { return e.Causa }
