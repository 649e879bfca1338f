package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"lglog/internal/model"
)

// RunRepository grava a auditoria de cada coleta: uma linha por run com o
// período, o filtro e o bloco de diagnóstico. É metadado operacional —
// os produtos em si não são persistidos.
type RunRepository struct {
	DB *pgxpool.Pool
}

func (r *RunRepository) Save(ctx context.Context, nomeProduto string, res *model.Reconciliation) error {
	fontes, err := json.Marshal(res.Fontes)
	if err != nil {
		return err
	}

	_, err = r.DB.Exec(ctx, `
		INSERT INTO coleta_runs
		(run_id, inicio, fim, nome_produto, fontes, produtos, overrides, duracao_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, res.RunID, res.Inicio, res.Fim, nomeProduto, fontes,
		res.Totais.Produtos, res.Totais.Overrides, res.DuracaoMs)

	return err
}

type RunSummary struct {
	RunID     string
	Inicio    string
	Fim       string
	Produtos  int
	Overrides int
	DuracaoMs int64
}

func (r *RunRepository) Recent(ctx context.Context, limit int) ([]RunSummary, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT run_id, inicio, fim, produtos, overrides, duracao_ms
		FROM coleta_runs
		ORDER BY criado_em DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []RunSummary
	for rows.Next() {
		var s RunSummary
		if err := rows.Scan(&s.RunID, &s.Inicio, &s.Fim, &s.Produtos, &s.Overrides, &s.DuracaoMs); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
