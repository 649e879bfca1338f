package repository

import (
	"database/sql"
	"encoding/json"

	"lglog/internal/model"
)

// CatalogRepository lê o catálogo de SKUs do Postgres quando há banco
// configurado; senão o servidor cai no skus.json. Mesmo shape do arquivo.
type CatalogRepository struct {
	DB *sql.DB
}

func (r *CatalogRepository) Load() (map[string]model.SKUInfo, error) {
	rows, err := r.DB.Query(`
		SELECT nome, sku, peso, tipo, guru_ids, indisponivel
		FROM catalogo_skus
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]model.SKUInfo)
	for rows.Next() {
		var (
			nome    string
			info    model.SKUInfo
			guruIDs []byte
		)
		if err := rows.Scan(&nome, &info.SKU, &info.Peso, &info.Tipo, &guruIDs, &info.Indisponivel); err != nil {
			return nil, err
		}
		if len(guruIDs) > 0 {
			_ = json.Unmarshal(guruIDs, &info.GuruIDs)
		}
		out[nome] = info
	}
	return out, rows.Err()
}
