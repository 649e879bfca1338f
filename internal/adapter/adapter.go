package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"lglog/internal/model"
)

var defaultHTTPClient = &http.Client{Timeout: 60 * time.Second}

// Adapter é a fronteira com uma plataforma: recebe a consulta normalizada
// (sem skus_info) e devolve os registros crus daquela fonte, com os nomes
// de campo nativos da API. Harmonização de nomes é papel do reconcile.
type Adapter interface {
	Source() model.Source
	Fetch(ctx context.Context, q model.SearchQuery) (FetchResult, error)
}

// FetchResult carrega os registros coletados e quantos itens malformados
// foram descartados no caminho (descartar item não derruba a coleta).
type FetchResult struct {
	Records []model.PlatformRecord
	Skipped int
}

// Outcome é o desfecho de um adapter na fan-out, entregue ao reconcile.
type Outcome struct {
	Source  model.Source
	Records []model.PlatformRecord
	Skipped int
	Err     error
}

type ErrorKind int

const (
	KindUnavailable ErrorKind = iota
	KindTimeout
	KindDataError
)

func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindDataError:
		return "data_error"
	}
	return "unavailable"
}

// SourceError é o erro de uma fonte inteira (rede, auth, payload ilegível).
// Uma fonte falhar não derruba a coleta; só todas falharem derruba.
type SourceError struct {
	Source model.Source
	Kind   ErrorKind
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("fonte %s (%s): %v", e.Source, e.Kind, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// wrapErr classifica erros de transporte: deadline vira timeout,
// o resto vira indisponível.
func wrapErr(src model.Source, err error) *SourceError {
	kind := KindUnavailable
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	return &SourceError{Source: src, Kind: kind, Err: err}
}

func dataErr(src model.Source, err error) *SourceError {
	return &SourceError{Source: src, Kind: KindDataError, Err: err}
}
