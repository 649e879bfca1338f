package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"lglog/internal/model"
)

// ApiVersion retorna a versão trimestral da Admin API (YYYY-01/04/07/10).
func ApiVersion(now time.Time) string {
	q := ((int(now.Month())-1)/3)*3 + 1
	return fmt.Sprintf("%d-%02d", now.Year(), q)
}

type shopifyProductsResponse struct {
	Products []shopifyProduct `json:"products"`
}

type shopifyProduct struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	BodyHTML string `json:"body_html"`
	Vendor   string `json:"vendor"`
	Variants []struct {
		SKU               string `json:"sku"`
		Price             string `json:"price"`
		InventoryQuantity int    `json:"inventory_quantity"`
	} `json:"variants"`
}

// Shopify fala com a Admin REST API (products paginados via header Link).
// Fonte dos atributos de vitrine.
type Shopify struct {
	ShopURL string
	Token   string
	HTTP    *http.Client
	now     func() time.Time
}

func NewShopify(shopURL, token string) *Shopify {
	return &Shopify{
		ShopURL: strings.TrimRight(shopURL, "/"),
		Token:   token,
		HTTP:    defaultHTTPClient,
		now:     time.Now,
	}
}

func (s *Shopify) Source() model.Source { return model.SourceShopify }

func (s *Shopify) Fetch(ctx context.Context, q model.SearchQuery) (FetchResult, error) {
	params := url.Values{}
	params.Set("limit", "250")
	params.Set("updated_at_min", q.DataIni.ISO()+"T00:00:00Z")
	params.Set("updated_at_max", q.DataFim.ISO()+"T23:59:59Z")

	nextURL := fmt.Sprintf("%s/admin/api/%s/products.json?%s",
		s.baseURL(), ApiVersion(s.now().UTC()), params.Encode())

	var out FetchResult
	for nextURL != "" {
		page, next, err := s.fetchPage(ctx, nextURL)
		if err != nil {
			return FetchResult{}, err
		}

		for _, p := range page.Products {
			if !q.MatchName(p.Title) {
				continue
			}
			recs, skipped := s.toRecords(p)
			out.Records = append(out.Records, recs...)
			out.Skipped += skipped
		}
		nextURL = next
	}

	return out, nil
}

func (s *Shopify) baseURL() string {
	if strings.HasPrefix(s.ShopURL, "http://") || strings.HasPrefix(s.ShopURL, "https://") {
		return s.ShopURL
	}
	return "https://" + s.ShopURL
}

func (s *Shopify) fetchPage(ctx context.Context, pageURL string) (*shopifyProductsResponse, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", wrapErr(model.SourceShopify, err)
	}
	req.Header.Set("X-Shopify-Access-Token", s.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTP.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return nil, "", wrapErr(model.SourceShopify, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", wrapErr(model.SourceShopify, fmt.Errorf("shopify status %d", resp.StatusCode))
	}

	var page shopifyProductsResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, "", dataErr(model.SourceShopify, err)
	}

	return &page, nextPageURL(resp.Header.Get("Link")), nil
}

// nextPageURL extrai o link rel="next" do header Link da Shopify.
func nextPageURL(link string) string {
	for _, part := range strings.Split(link, ",") {
		if !strings.Contains(part, `rel="next"`) {
			continue
		}
		ini := strings.Index(part, "<")
		fim := strings.Index(part, ">")
		if ini >= 0 && fim > ini {
			return part[ini+1 : fim]
		}
	}
	return ""
}

// toRecords gera um registro por variante (a variante é quem tem SKU).
func (s *Shopify) toRecords(p shopifyProduct) ([]model.PlatformRecord, int) {
	descricao := stripHTML(p.BodyHTML)
	var recs []model.PlatformRecord
	skipped := 0

	for _, v := range p.Variants {
		sku := strings.TrimSpace(v.SKU)
		if sku == "" {
			skipped++
			continue
		}
		fields := map[string]model.Value{
			"title":              model.String(p.Title),
			"vendor":             model.String(p.Vendor),
			"product_id":         model.String(strconv.FormatInt(p.ID, 10)),
			"inventory_quantity": model.Number(float64(v.InventoryQuantity)),
		}
		if preco, err := strconv.ParseFloat(v.Price, 64); err == nil {
			fields["price"] = model.Number(preco)
		} else {
			skipped++
			continue
		}
		if descricao != "" {
			fields["body_html"] = model.String(descricao)
		}
		recs = append(recs, model.PlatformRecord{
			SKU:       sku,
			Source:    model.SourceShopify,
			Fields:    fields,
			FetchedAt: time.Now().UTC(),
		})
	}
	return recs, skipped
}

// stripHTML reduz o body_html da Shopify a texto puro antes de entrar
// no registro.
func stripHTML(html string) string {
	if html == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	return strings.TrimSpace(doc.Text())
}
