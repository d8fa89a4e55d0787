package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/primehaus/backoffice/internal/agenciaconfig"
	"github.com/primehaus/backoffice/internal/auth"
	"github.com/primehaus/backoffice/internal/cache"
	"github.com/primehaus/backoffice/internal/config"
	"github.com/primehaus/backoffice/internal/contato"
	"github.com/primehaus/backoffice/internal/empreendimento"
	"github.com/primehaus/backoffice/internal/homio"
	"github.com/primehaus/backoffice/internal/parcela"
	"github.com/primehaus/backoffice/internal/perfil"
	"github.com/primehaus/backoffice/internal/preferencias"
	"github.com/primehaus/backoffice/internal/proposta"
	"github.com/primehaus/backoffice/internal/reajuste"
	"github.com/primehaus/backoffice/internal/unidade"
	"github.com/primehaus/backoffice/internal/utils/db"

	"github.com/gorilla/mux"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("configuração inválida: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)

	if err := auth.Configurar(cfg.JWTSecret); err != nil {
		logger.Error("segredo JWT inválido", "erro", err)
		os.Exit(1)
	}

	conexao, err := db.Conectar(cfg)
	if err != nil {
		logger.Error("erro ao conectar no banco", "erro", err)
		os.Exit(1)
	}

	// AutoMigrate para todos os modelos
	if err := conexao.AutoMigrate(
		&perfil.Perfil{},
		&preferencias.Preferencias{},
		&empreendimento.Empreendimento{},
		&unidade.Unidade{},
		&reajuste.ReajusteMensal{},
		&contato.Contato{},
		&proposta.Proposta{},
		&parcela.Parcela{},
		&parcela.ParcelaData{},
		&agenciaconfig.AgenciaConfig{},
	); err != nil {
		logger.Error("erro no AutoMigrate", "erro", err)
		os.Exit(1)
	}
	if err := db.CriarViews(conexao); err != nil {
		logger.Error("erro ao criar views", "erro", err)
		os.Exit(1)
	}

	cacheLocal := cache.New(cfg.CacheTTL, cache.RelogioSistema{})
	clienteHomio := homio.NewClient(cfg, logger)

	configRepo := agenciaconfig.NewRepository(conexao, cacheLocal)
	servicoUnidade := unidade.NewServicoStatus(conexao, clienteHomio)
	servicoProposta := proposta.NewService(conexao, logger, configRepo, servicoUnidade, clienteHomio, cacheLocal)

	// Handlers
	perfilHandler := perfil.NewHandler(conexao)
	preferenciasHandler := preferencias.NewHandler(conexao)
	empreendimentoHandler := empreendimento.NewHandler(conexao)
	unidadeHandler := unidade.NewHandler(conexao, servicoUnidade)
	reajusteHandler := reajuste.NewHandler(conexao)
	contatoHandler := contato.NewHandler(conexao, clienteHomio, logger)
	parcelaHandler := parcela.NewHandler(conexao)
	agenciaConfigHandler := agenciaconfig.NewHandler(configRepo)
	propostaHandler := proposta.NewHandler(conexao, servicoProposta)

	// Router
	r := mux.NewRouter()

	r.HandleFunc("/login", perfilHandler.Login).Methods("POST")

	protegido := r.NewRoute().Subrouter()
	protegido.Use(auth.MiddlewareAutenticacao)

	// Rotas de perfis
	protegido.HandleFunc("/perfis", perfilHandler.Criar).Methods("POST")
	protegido.HandleFunc("/perfis", perfilHandler.Listar).Methods("GET")
	protegido.HandleFunc("/perfis/{id}", perfilHandler.BuscarPorID).Methods("GET")

	// Rotas de preferências
	protegido.HandleFunc("/preferencias", preferenciasHandler.Buscar).Methods("GET")
	protegido.HandleFunc("/preferencias", preferenciasHandler.Atualizar).Methods("PUT")

	// Rotas de empreendimentos
	protegido.HandleFunc("/empreendimentos", empreendimentoHandler.Criar).Methods("POST")
	protegido.HandleFunc("/empreendimentos", empreendimentoHandler.Listar).Methods("GET")
	protegido.HandleFunc("/empreendimentos/{id}", empreendimentoHandler.BuscarPorID).Methods("GET")
	protegido.HandleFunc("/empreendimentos/{id}", empreendimentoHandler.Atualizar).Methods("PUT")
	protegido.HandleFunc("/empreendimentos/{id}", empreendimentoHandler.Deletar).Methods("DELETE")

	// Rotas de unidades
	protegido.HandleFunc("/empreendimentos/{id}/unidades", unidadeHandler.Criar).Methods("POST")
	protegido.HandleFunc("/empreendimentos/{id}/unidades", unidadeHandler.ListarPorEmpreendimento).Methods("GET")
	protegido.HandleFunc("/empreendimentos/{id}/unidades/resumo", unidadeHandler.ListarResumo).Methods("GET")
	protegido.HandleFunc("/unidades/{id}", unidadeHandler.BuscarPorID).Methods("GET")
	protegido.HandleFunc("/unidades/{id}", unidadeHandler.Atualizar).Methods("PUT")
	protegido.HandleFunc("/unidades/{id}", unidadeHandler.Deletar).Methods("DELETE")
	protegido.HandleFunc("/unidades/{id}/status", unidadeHandler.AtualizarStatus).Methods("PATCH")

	// Rotas de reajustes mensais
	protegido.HandleFunc("/unidades/{id}/reajustes", reajusteHandler.Listar).Methods("GET")
	protegido.HandleFunc("/unidades/{id}/reajustes/{ano}", reajusteHandler.Upsert).Methods("PUT")

	// Rotas de propostas
	protegido.HandleFunc("/propostas", propostaHandler.Criar).Methods("POST")
	protegido.HandleFunc("/propostas", propostaHandler.Listar).Methods("GET")
	protegido.HandleFunc("/propostas/{id}", propostaHandler.BuscarPorID).Methods("GET")
	protegido.HandleFunc("/propostas/{id}", propostaHandler.Deletar).Methods("DELETE")
	protegido.HandleFunc("/propostas/{id}/status", propostaHandler.AtualizarStatus).Methods("PATCH")

	// Rotas de parcelas
	protegido.HandleFunc("/propostas/{id}/parcelas", parcelaHandler.Criar).Methods("POST")
	protegido.HandleFunc("/propostas/{id}/parcelas", parcelaHandler.Listar).Methods("GET")
	protegido.HandleFunc("/parcelas/{id}", parcelaHandler.Deletar).Methods("DELETE")

	// Rotas de contatos
	protegido.HandleFunc("/contatos/{id}", contatoHandler.BuscarPorID).Methods("GET")

	// Rotas de configuração da agência
	protegido.HandleFunc("/agencia-config", agenciaConfigHandler.Buscar).Methods("GET")
	protegido.HandleFunc("/agencia-config", agenciaConfigHandler.Atualizar).Methods("PUT")
	protegido.HandleFunc("/agencia-config/sincronizar", agenciaConfigHandler.Sincronizar).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})

	logger.Info("servidor iniciado", "addr", cfg.AppAddr, "env", cfg.AppEnv)
	if err := http.ListenAndServe(cfg.AppAddr, c.Handler(r)); err != nil {
		logger.Error("servidor encerrado", "erro", err)
		os.Exit(1)
	}
}
