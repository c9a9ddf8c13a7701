package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/thoga72-SAP/birkenbihllab/internal/domain"
)

func TestMapError_Nil(t *testing.T) {
	t.Parallel()

	if got := MapError(nil, "vocab", "run"); got != nil {
		t.Errorf("MapError(nil) = %v, want nil", got)
	}
}

func TestMapError_NoRows(t *testing.T) {
	t.Parallel()

	got := MapError(pgx.ErrNoRows, "vocab", "run")

	if got == nil {
		t.Fatal("MapError(ErrNoRows) = nil, want error")
	}
	if !errors.Is(got, domain.ErrNotFound) {
		t.Errorf("MapError(ErrNoRows) does not wrap domain.ErrNotFound: %v", got)
	}
	if want := `vocab "run": not found`; got.Error() != want {
		t.Errorf("MapError(ErrNoRows).Error() = %q, want %q", got.Error(), want)
	}
}

func TestMapError_WrappedNoRows(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("scan row: %w", pgx.ErrNoRows)
	if got := MapError(wrapped, "priority", "laufen"); !errors.Is(got, domain.ErrNotFound) {
		t.Errorf("MapError(wrapped ErrNoRows) does not wrap domain.ErrNotFound: %v", got)
	}
}

func TestMapError_PgCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want error
	}{
		{"23505", domain.ErrAlreadyExists},
		{"23514", domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()
			pgErr := &pgconn.PgError{Code: tt.code}
			got := MapError(pgErr, "vocab", "run")
			if !errors.Is(got, tt.want) {
				t.Errorf("MapError(code %s) = %v, want wrap of %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestMapError_ContextErrorsPassThrough(t *testing.T) {
	t.Parallel()

	for _, ctxErr := range []error{context.Canceled, context.DeadlineExceeded} {
		got := MapError(ctxErr, "vocab", "run")
		if !errors.Is(got, ctxErr) {
			t.Errorf("MapError(%v) should pass the context error through, got %v", ctxErr, got)
		}
		if errors.Is(got, domain.ErrNotFound) {
			t.Errorf("MapError(%v) must not be mapped to a domain error", ctxErr)
		}
	}
}

func TestMapError_UnknownError(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("connection refused")
	got := MapError(sentinel, "vocab", "run")
	if !errors.Is(got, sentinel) {
		t.Errorf("MapError should wrap the original error, got %v", got)
	}
}
