package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"lglog/internal/model"
)

type fbCotacaoRequest struct {
	DataIni string `json:"data_ini"`
	DataFim string `json:"data_fim"`
}

type fbCotacaoResponse struct {
	Ok         bool          `json:"ok"`
	Resultados []fbResultado `json:"resultados"`
}

type fbResultado struct {
	SKU            string  `json:"sku"`
	Produto        string  `json:"produto"`
	Peso           float64 `json:"peso"`
	ValorFrete     float64 `json:"valor_frete"`
	Transportadora string  `json:"transportadora"`
	PrazoDias      int     `json:"prazo_dias"`
}

// FreteBarato fala com a API de cotação de fretes. Única fonte dos
// atributos de envio; uma chamada por coleta, sem paginação.
type FreteBarato struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewFreteBarato(baseURL, token string) *FreteBarato {
	return &FreteBarato{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    defaultHTTPClient,
	}
}

func (f *FreteBarato) Source() model.Source { return model.SourceFreteBarato }

func (f *FreteBarato) Fetch(ctx context.Context, q model.SearchQuery) (FetchResult, error) {
	body, _ := json.Marshal(fbCotacaoRequest{
		DataIni: q.DataIni.ISO(),
		DataFim: q.DataFim.ISO(),
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		f.BaseURL+"/v1/cotacao", bytes.NewReader(body))
	if err != nil {
		return FetchResult{}, wrapErr(model.SourceFreteBarato, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if f.Token != "" {
		req.Header.Set("Authorization", "Bearer "+f.Token)
	}

	resp, err := f.HTTP.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return FetchResult{}, wrapErr(model.SourceFreteBarato, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return FetchResult{}, wrapErr(model.SourceFreteBarato, fmt.Errorf("fretebarato status %d", resp.StatusCode))
	}

	var parsed fbCotacaoResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return FetchResult{}, dataErr(model.SourceFreteBarato, err)
	}

	var out FetchResult
	for _, r := range parsed.Resultados {
		sku := strings.TrimSpace(r.SKU)
		if sku == "" {
			out.Skipped++
			continue
		}
		if !q.MatchName(r.Produto) {
			continue
		}
		out.Records = append(out.Records, model.PlatformRecord{
			SKU:    sku,
			Source: model.SourceFreteBarato,
			Fields: map[string]model.Value{
				"produto":        model.String(r.Produto),
				"peso":           model.Number(r.Peso),
				"valor_frete":    model.Number(r.ValorFrete),
				"transportadora": model.String(r.Transportadora),
				"prazo_dias":     model.Number(float64(r.PrazoDias)),
			},
			FetchedAt: time.Now().UTC(),
		})
	}
	return out, nil
}
