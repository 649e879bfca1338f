package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lglog/internal/model"
)

type fakeResolver map[string]string

func (f fakeResolver) Resolve(_ context.Context, _, nome string) (string, bool) {
	sku, ok := f[nome]
	return sku, ok
}

func consulta() model.SearchQuery {
	return model.SearchQuery{
		DataIni: model.NewDate(2024, time.January, 1),
		DataFim: model.NewDate(2024, time.January, 31),
	}
}

func TestGuruFetchPaginado(t *testing.T) {
	var paginas []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer chave", r.Header.Get("Authorization"))
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("ordered_at_ini"))
		assert.Equal(t, "2024-01-31", r.URL.Query().Get("ordered_at_end"))

		cursor := r.URL.Query().Get("cursor")
		paginas = append(paginas, cursor)
		if cursor == "" {
			fmt.Fprint(w, `{"data":[{"id":"tx1","product":{"id":"g1","name":"Box Poesia","unit_price":89.9,"qty":1,"offer":{"name":"Oferta A"}}}],"has_more_pages":true,"next_cursor":"c2"}`)
			return
		}
		fmt.Fprint(w, `{"data":[{"id":"tx2","product":{"id":"g2","name":"Box Romance","unit_price":59.9,"qty":2,"offer":{"name":""}}},{"id":"tx3","product":{"id":"g3","name":"","unit_price":1,"qty":1,"offer":{"name":""}}}],"has_more_pages":false}`)
	}))
	defer srv.Close()

	g := NewGuru(srv.URL, "chave", fakeResolver{"Box Poesia": "SKU1", "Box Romance": "SKU2"})
	res, err := g.Fetch(context.Background(), consulta())
	require.NoError(t, err)
	assert.Len(t, paginas, 2)
	require.Len(t, res.Records, 2)
	assert.Equal(t, 1, res.Skipped) // tx3 sem nome de produto

	rec := res.Records[0]
	assert.Equal(t, "SKU1", rec.SKU)
	assert.Equal(t, model.SourceGuru, rec.Source)
	assert.True(t, rec.Fields["unit_price"].Equal(model.Number(89.9)))
	assert.True(t, rec.Fields["transaction_id"].Equal(model.String("tx1")))
}

func TestGuruFiltroDeNomeNaoContaComoDescarte(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data":[{"id":"tx1","product":{"id":"g1","name":"Box Poesia","unit_price":10,"qty":1,"offer":{"name":""}}}],"has_more_pages":false}`)
	}))
	defer srv.Close()

	q := consulta()
	q.NomeProduto = "romance"
	g := NewGuru(srv.URL, "chave", fakeResolver{"Box Poesia": "SKU1"})
	res, err := g.Fetch(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, res.Records)
	assert.Zero(t, res.Skipped)
}

func TestGuruSemResolucaoDeSKUDescarta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data":[{"id":"tx1","product":{"id":"g1","name":"Desconhecido","unit_price":10,"qty":1,"offer":{"name":""}}}],"has_more_pages":false}`)
	}))
	defer srv.Close()

	g := NewGuru(srv.URL, "chave", fakeResolver{})
	res, err := g.Fetch(context.Background(), consulta())
	require.NoError(t, err)
	assert.Empty(t, res.Records)
	assert.Equal(t, 1, res.Skipped)
}

func TestGuruTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `{"data":[],"has_more_pages":false}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	g := NewGuru(srv.URL, "chave", fakeResolver{})
	_, err := g.Fetch(ctx, consulta())
	var serr *SourceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, KindTimeout, serr.Kind)
	assert.Equal(t, model.SourceGuru, serr.Source)
}

func TestGuruStatusNaoOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	g := NewGuru(srv.URL, "errada", fakeResolver{})
	_, err := g.Fetch(context.Background(), consulta())
	var serr *SourceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, KindUnavailable, serr.Kind)
}

func TestGuruPayloadIlegivel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `nao é json`)
	}))
	defer srv.Close()

	g := NewGuru(srv.URL, "chave", fakeResolver{})
	_, err := g.Fetch(context.Background(), consulta())
	var serr *SourceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, KindDataError, serr.Kind)
}

func TestShopifyFetch(t *testing.T) {
	var chamadas int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "token-x", r.Header.Get("X-Shopify-Access-Token"))
		chamadas++
		if chamadas == 1 {
			w.Header().Set("Link", fmt.Sprintf(`<http://%s/admin/api/2024-01/products.json?page_info=p2>; rel="next"`, r.Host))
			fmt.Fprint(w, `{"products":[{"id":11,"title":"Box Poesia","body_html":"<p>Edição <b>especial</b></p>","vendor":"LG","variants":[{"sku":"SKU1","price":"79.90","inventory_quantity":10},{"sku":"","price":"1.00","inventory_quantity":0}]}]}`)
			return
		}
		fmt.Fprint(w, `{"products":[{"id":12,"title":"Box Romance","body_html":"","vendor":"LG","variants":[{"sku":"SKU2","price":"abc","inventory_quantity":3}]}]}`)
	}))
	defer srv.Close()

	s := NewShopify(srv.URL, "token-x")
	res, err := s.Fetch(context.Background(), consulta())
	require.NoError(t, err)
	assert.Equal(t, 2, chamadas)
	require.Len(t, res.Records, 1)
	assert.Equal(t, 2, res.Skipped) // variante sem SKU + preço ilegível

	rec := res.Records[0]
	assert.Equal(t, "SKU1", rec.SKU)
	assert.True(t, rec.Fields["price"].Equal(model.Number(79.90)))
	assert.True(t, rec.Fields["inventory_quantity"].Equal(model.Number(10)))
	// body_html chega como texto puro, sem tags
	assert.Equal(t, "Edição especial", rec.Fields["body_html"].Str)
}

func TestShopifyFiltroDeNome(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"products":[{"id":11,"title":"Box Poesia","vendor":"LG","variants":[{"sku":"SKU1","price":"79.90","inventory_quantity":10}]}]}`)
	}))
	defer srv.Close()

	q := consulta()
	q.NomeProduto = "ROMANCE"
	s := NewShopify(srv.URL, "token-x")
	res, err := s.Fetch(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, res.Records)
}

func TestApiVersionTrimestral(t *testing.T) {
	casos := map[time.Month]string{
		time.February:  "2024-01",
		time.April:     "2024-04",
		time.September: "2024-07",
		time.December:  "2024-10",
	}
	for mes, esperado := range casos {
		assert.Equal(t, esperado, ApiVersion(time.Date(2024, mes, 15, 0, 0, 0, 0, time.UTC)))
	}
}

func TestFreteBaratoFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/cotacao", r.URL.Path)
		fmt.Fprint(w, `{"ok":true,"resultados":[{"sku":"SKU1","produto":"Box Poesia","peso":1.2,"valor_frete":18.5,"transportadora":"GFL","prazo_dias":5},{"sku":"","produto":"órfão","peso":0,"valor_frete":0,"transportadora":"","prazo_dias":0}]}`)
	}))
	defer srv.Close()

	f := NewFreteBarato(srv.URL, "tok")
	res, err := f.Fetch(context.Background(), consulta())
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, 1, res.Skipped)

	rec := res.Records[0]
	assert.Equal(t, model.SourceFreteBarato, rec.Source)
	assert.True(t, rec.Fields["peso"].Equal(model.Number(1.2)))
	assert.True(t, rec.Fields["transportadora"].Equal(model.String("GFL")))
}

func TestFreteBaratoIndisponivel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewFreteBarato(srv.URL, "")
	_, err := f.Fetch(context.Background(), consulta())
	var serr *SourceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, KindUnavailable, serr.Kind)
}
