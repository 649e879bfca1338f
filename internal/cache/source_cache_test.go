package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lglog/internal/adapter"
	"lglog/internal/model"
)

type contadorAdapter struct {
	chamadas int
	res      adapter.FetchResult
	err      error
}

func (f *contadorAdapter) Source() model.Source { return model.SourceGuru }

func (f *contadorAdapter) Fetch(context.Context, model.SearchQuery) (adapter.FetchResult, error) {
	f.chamadas++
	return f.res, f.err
}

func consulta(filtro string) model.SearchQuery {
	return model.SearchQuery{
		DataIni:     model.NewDate(2024, time.January, 1),
		DataFim:     model.NewDate(2024, time.January, 31),
		NomeProduto: filtro,
	}
}

func TestKeyEstavel(t *testing.T) {
	assert.Equal(t, "coleta:guru:2024-01-01:2024-01-31:todos",
		Key(model.SourceGuru, consulta("")))
	// filtro entra normalizado (sem acento, sem caixa)
	assert.Equal(t, "coleta:shopify:2024-01-01:2024-01-31:poesia classica",
		Key(model.SourceShopify, consulta(" Poesia Clássica ")))
}

func TestCacheDesligadoEhPassThrough(t *testing.T) {
	inner := &contadorAdapter{res: adapter.FetchResult{Skipped: 1}}
	c := &Cached{Inner: inner, Cache: &SourceCache{}} // sem client

	res, err := c.Fetch(context.Background(), consulta(""))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)

	_, err = c.Fetch(context.Background(), consulta(""))
	require.NoError(t, err)
	assert.Equal(t, 2, inner.chamadas) // nada foi cacheado
}

func TestCacheNaoEngoleErro(t *testing.T) {
	inner := &contadorAdapter{err: errors.New("fonte fora")}
	c := &Cached{Inner: inner, Cache: &SourceCache{}}

	_, err := c.Fetch(context.Background(), consulta(""))
	assert.Error(t, err)
}
