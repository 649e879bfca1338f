package model

import (
	"errors"
	"fmt"
)

// ErrAllSourcesUnavailable indica que nenhuma das fontes respondeu;
// nesse caso a coleta inteira falha, sem resultado parcial.
var ErrAllSourcesUnavailable = errors.New("todas as fontes indisponíveis")

// ValidationError é erro de forma/intervalo na entrada. Não há retry.
type ValidationError struct {
	Campo  string
	Motivo string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validação: campo %q: %s", e.Campo, e.Motivo)
}
