package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lglog/internal/model"
)

// SKUResolver traduz a identidade de produto do Guru (id de produto e nome
// de marketing) para o SKU do catálogo. O Guru não carrega SKU nas vendas.
type SKUResolver interface {
	Resolve(ctx context.Context, guruID, nome string) (string, bool)
}

type guruTransactionsResponse struct {
	Data         []guruTransaction `json:"data"`
	HasMorePages bool              `json:"has_more_pages"`
	NextCursor   string            `json:"next_cursor"`
}

type guruTransaction struct {
	ID      string `json:"id"`
	Product struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		UnitPrice float64 `json:"unit_price"`
		Qty       int     `json:"qty"`
		Offer     struct {
			Name string `json:"name"`
		} `json:"offer"`
	} `json:"product"`
	Status string `json:"status"`
}

// Guru fala com a API v2 do Digital Manager Guru (transactions paginadas
// por cursor, Bearer token). Fonte prioritária: identidade de catálogo.
type Guru struct {
	BaseURL  string
	APIKey   string
	HTTP     *http.Client
	Resolver SKUResolver
}

func NewGuru(baseURL, apiKey string, resolver SKUResolver) *Guru {
	return &Guru{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		APIKey:   apiKey,
		HTTP:     defaultHTTPClient,
		Resolver: resolver,
	}
}

func (g *Guru) Source() model.Source { return model.SourceGuru }

func (g *Guru) Fetch(ctx context.Context, q model.SearchQuery) (FetchResult, error) {
	var out FetchResult
	cursor := ""

	for {
		page, err := g.fetchPage(ctx, q, cursor)
		if err != nil {
			return FetchResult{}, err
		}

		for _, tx := range page.Data {
			rec, ok := g.toRecord(ctx, q, tx)
			if !ok {
				out.Skipped++
				continue
			}
			if rec == nil {
				continue // filtrado por nome, não conta como descarte
			}
			out.Records = append(out.Records, *rec)
		}

		if !page.HasMorePages || page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	return out, nil
}

func (g *Guru) fetchPage(ctx context.Context, q model.SearchQuery, cursor string) (*guruTransactionsResponse, error) {
	params := url.Values{}
	params.Set("ordered_at_ini", q.DataIni.ISO())
	params.Set("ordered_at_end", q.DataFim.ISO())
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	endpoint := fmt.Sprintf("%s/transactions?%s", g.BaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, wrapErr(model.SourceGuru, err)
	}
	req.Header.Set("Authorization", "Bearer "+g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.HTTP.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return nil, wrapErr(model.SourceGuru, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, wrapErr(model.SourceGuru, fmt.Errorf("guru status %d", resp.StatusCode))
	}

	var page guruTransactionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, dataErr(model.SourceGuru, err)
	}
	return &page, nil
}

// toRecord monta o registro cru com os nomes nativos da API do Guru.
// (nil, true) significa "filtrado pelo nome"; (nil, false) item malformado.
func (g *Guru) toRecord(ctx context.Context, q model.SearchQuery, tx guruTransaction) (*model.PlatformRecord, bool) {
	nome := strings.TrimSpace(tx.Product.Name)
	if nome == "" {
		return nil, false
	}
	if !q.MatchName(nome) {
		return nil, true
	}

	sku := ""
	if g.Resolver != nil {
		if s, ok := g.Resolver.Resolve(ctx, tx.Product.ID, nome); ok {
			sku = s
		}
	}
	if sku == "" {
		// sem SKU resolvível não tem chave de merge
		return nil, false
	}

	return &model.PlatformRecord{
		SKU:    sku,
		Source: model.SourceGuru,
		Fields: map[string]model.Value{
			"product_name":   model.String(nome),
			"product_id":     model.String(tx.Product.ID),
			"unit_price":     model.Number(tx.Product.UnitPrice),
			"qty":            model.Number(float64(tx.Product.Qty)),
			"offer_name":     model.String(tx.Product.Offer.Name),
			"transaction_id": model.String(tx.ID),
		},
		FetchedAt: time.Now().UTC(),
	}, true
}
