package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/cinema-backoffice/internal/model"
)

func TestTranslate(t *testing.T) {
	t.Parallel()

	other := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no rows", err: sql.ErrNoRows, want: model.ErrNotFound},
		{name: "duplicate seat", err: &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '3-1'"}, want: model.ErrIntegrityConflict},
		{name: "restricted delete", err: &mysql.MySQLError{Number: 1451}, want: model.ErrIntegrityConflict},
		{name: "missing parent", err: &mysql.MySQLError{Number: 1452}, want: model.ErrNotFound},
		{name: "wrapped duplicate", err: fmt.Errorf("exec: %w", &mysql.MySQLError{Number: 1062}), want: model.ErrIntegrityConflict},
		{name: "other", err: other, want: other},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := translate(tc.err, "ticket")
			if !errors.Is(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}

	if translate(nil, "ticket") != nil {
		t.Fatalf("expected nil for nil error")
	}
}
