package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"lglog/internal/adapter"
	"lglog/internal/catalog"
	"lglog/internal/model"
)

// SourceCache guarda no Redis o resultado de fetch de cada fonte por
// período+filtro, com TTL curto. Client nil = cache desligado.
type SourceCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func Key(src model.Source, q model.SearchQuery) string {
	filtro := catalog.NormalizeNome(q.NomeProduto)
	if filtro == "" {
		filtro = "todos"
	}
	return fmt.Sprintf("coleta:%s:%s:%s:%s", src, q.DataIni.ISO(), q.DataFim.ISO(), filtro)
}

func (c *SourceCache) Get(ctx context.Context, src model.Source, q model.SearchQuery) (adapter.FetchResult, bool) {
	if c == nil || c.Client == nil {
		return adapter.FetchResult{}, false
	}
	val, err := c.Client.Get(ctx, Key(src, q)).Result()
	if err != nil {
		return adapter.FetchResult{}, false
	}
	var res adapter.FetchResult
	if err := json.Unmarshal([]byte(val), &res); err != nil {
		return adapter.FetchResult{}, false
	}
	return res, true
}

func (c *SourceCache) Put(ctx context.Context, src model.Source, q model.SearchQuery, res adapter.FetchResult) {
	if c == nil || c.Client == nil {
		return
	}
	b, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, Key(src, q), b, c.TTL).Err(); err != nil {
		log.Printf("Erro ao gravar cache de %s: %v", src, err)
	}
}

// Cached envolve um adapter com leitura via cache. Erro de fonte nunca é
// cacheado — só resultado bom entra.
type Cached struct {
	Inner adapter.Adapter
	Cache *SourceCache
}

func (c *Cached) Source() model.Source { return c.Inner.Source() }

func (c *Cached) Fetch(ctx context.Context, q model.SearchQuery) (adapter.FetchResult, error) {
	if res, ok := c.Cache.Get(ctx, c.Inner.Source(), q); ok {
		return res, nil
	}
	res, err := c.Inner.Fetch(ctx, q)
	if err != nil {
		return adapter.FetchResult{}, err
	}
	c.Cache.Put(ctx, c.Inner.Source(), q, res)
	return res, nil
}
