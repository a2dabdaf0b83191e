package domain

import (
	"errors"
	"fmt"
)

// TransientFetchError indica falha de busca potencialmente recuperável
// (rate limit, erro de servidor ou rede) após esgotar as tentativas
type TransientFetchError struct {
	Operation  string
	StatusCode int
	Attempts   int
	Err        error
}

func (e *TransientFetchError) Error() string {
	return fmt.Sprintf("falha transitória em %s após %d tentativas (status %d): %v",
		e.Operation, e.Attempts, e.StatusCode, e.Err)
}

func (e *TransientFetchError) Unwrap() error { return e.Err }

// PermanentFetchError indica falha de busca não recuperável por retry
// (requisição inválida, autorização negada)
type PermanentFetchError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *PermanentFetchError) Error() string {
	return fmt.Sprintf("falha permanente em %s (status %d): %s", e.Operation, e.StatusCode, e.Message)
}

// NormalizationError indica um campo malformado em uma linha bruta da API.
// Afeta apenas o registro em questão, nunca a execução inteira.
type NormalizationError struct {
	Field string
	Index int
	Value string
	Err   error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("campo %q inválido no registro %d (valor %q): %v", e.Field, e.Index, e.Value, e.Err)
}

func (e *NormalizationError) Unwrap() error { return e.Err }

// SyncError indica falha parcial de sincronização da planilha, com a
// contabilidade exata das chaves confirmadas e pendentes
type SyncError struct {
	Sheet     string
	Confirmed []string
	Pending   []string
	Err       error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sincronização da aba %q incompleta: %d linhas confirmadas, %d pendentes: %v",
		e.Sheet, len(e.Confirmed), len(e.Pending), e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

// IsTransientFetchError informa se o erro (ou sua cadeia) é uma falha transitória de busca
func IsTransientFetchError(err error) bool {
	var target *TransientFetchError
	return errors.As(err, &target)
}

// IsPermanentFetchError informa se o erro (ou sua cadeia) é uma falha permanente de busca
func IsPermanentFetchError(err error) bool {
	var target *PermanentFetchError
	return errors.As(err, &target)
}
