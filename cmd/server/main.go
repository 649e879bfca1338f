package main

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"lglog/internal/adapter"
	"lglog/internal/cache"
	"lglog/internal/catalog"
	"lglog/internal/collect"
	"lglog/internal/config"
	"lglog/internal/db"
	"lglog/internal/observability"
	"lglog/internal/repository"
	"lglog/internal/server"
	"lglog/internal/skumap"
)

func main() {
	cfg := config.Load()

	log.Println("Iniciando backend de coleta de produtos...")

	cat := carregarCatalogo(cfg)
	resolver := skumap.New(cat, cfg.OpenAIKey)

	var fonteCache *cache.SourceCache
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("REDIS_URL inválida: %v", err)
		}
		fonteCache = &cache.SourceCache{
			Client: redis.NewClient(opt),
			TTL:    time.Duration(cfg.CacheTTLS) * time.Second,
		}
	}

	adapters := []adapter.Adapter{
		adapter.NewGuru(cfg.GuruBaseURL, cfg.GuruAPIKey, resolver),
		adapter.NewShopify(cfg.ShopifyShopURL, cfg.ShopifyToken),
		adapter.NewFreteBarato(cfg.FreteBaratoURL, cfg.FreteBaratoToken),
	}
	if fonteCache != nil {
		for i, a := range adapters {
			adapters[i] = &cache.Cached{Inner: a, Cache: fonteCache}
		}
	}

	svc := collect.New(adapters, time.Duration(cfg.SourceTimeoutS)*time.Second)

	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Não foi possível conectar ao banco de dados: %v", err)
		}
		defer pool.Close()
		svc.Runs = &repository.RunRepository{DB: pool}
	}

	observability.Start(cfg.MetricsPort)

	r := server.NewRouter(&server.Server{Coleta: svc, Catalogo: cat})
	log.Printf("HTTP em :%s | métricas em :%s", cfg.Port, cfg.MetricsPort)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Servidor HTTP caiu: %v", err)
	}
}

// carregarCatalogo prefere o catálogo no Postgres; sem banco (ou com
// tabela vazia) cai no skus.json.
func carregarCatalogo(cfg *config.Config) *catalog.Catalog {
	if cfg.DatabaseURL != "" {
		conn, err := db.New(cfg.DatabaseURL)
		if err == nil {
			defer conn.Close()
			repo := &repository.CatalogRepository{DB: conn}
			if porNome, err := repo.Load(); err == nil && len(porNome) > 0 {
				log.Printf("Catálogo carregado do banco: %d produtos", len(porNome))
				return catalog.New(porNome)
			}
		}
	}

	cat, err := catalog.Load(cfg.SKUsPath)
	if err != nil {
		log.Fatalf("Erro ao carregar %s: %v", cfg.SKUsPath, err)
	}
	log.Printf("Catálogo carregado de %s: %d produtos", cfg.SKUsPath, len(cat.PorNome))
	return cat
}
