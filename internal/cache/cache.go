package cache

import (
	"sync"
	"time"
)

// Relogio abstrai time.Now para os testes injetarem um relógio falso.
type Relogio interface {
	Agora() time.Time
}

// RelogioSistema usa o relógio do sistema.
type RelogioSistema struct{}

// Agora devolve time.Now().
func (RelogioSistema) Agora() time.Time { return time.Now() }

// Chave identifica uma entrada por (tipo de entidade, tenant, escopo).
type Chave struct {
	Tipo    string
	Agencia string
	Escopo  string
}

type entrada struct {
	valor  any
	expira time.Time
}

// Cache é um cache local em memória com TTL. A instância é passada por
// injeção de dependência; não existe singleton de processo.
type Cache struct {
	mu       sync.RWMutex
	ttl      time.Duration
	relogio  Relogio
	entradas map[Chave]entrada
}

// New cria um cache com o TTL e o relógio informados.
func New(ttl time.Duration, relogio Relogio) *Cache {
	if relogio == nil {
		relogio = RelogioSistema{}
	}
	return &Cache{
		ttl:      ttl,
		relogio:  relogio,
		entradas: make(map[Chave]entrada),
	}
}

// Obter devolve o valor da chave, se existir e não tiver expirado.
func (c *Cache) Obter(chave Chave) (any, bool) {
	c.mu.RLock()
	e, ok := c.entradas[chave]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.relogio.Agora().After(e.expira) {
		c.Invalidar(chave)
		return nil, false
	}
	return e.valor, true
}

// Definir grava o valor com o TTL padrão do cache.
func (c *Cache) Definir(chave Chave, valor any) {
	c.mu.Lock()
	c.entradas[chave] = entrada{valor: valor, expira: c.relogio.Agora().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidar remove uma entrada específica.
func (c *Cache) Invalidar(chave Chave) {
	c.mu.Lock()
	delete(c.entradas, chave)
	c.mu.Unlock()
}

// InvalidarTipo remove todas as entradas de um tipo para uma agência.
func (c *Cache) InvalidarTipo(tipo, agencia string) {
	c.mu.Lock()
	for k := range c.entradas {
		if k.Tipo == tipo && k.Agencia == agencia {
			delete(c.entradas, k)
		}
	}
	c.mu.Unlock()
}
