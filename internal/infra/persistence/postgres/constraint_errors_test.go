package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueConstraintViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "raw pgconn unique violation",
			err: &pgconn.PgError{
				Code:           "23505",
				Message:        `duplicate key value violates unique constraint "users_email_key"`,
				ConstraintName: "users_email_key",
			},
			want: true,
		},
		{
			name: "wrapped pgconn unique violation",
			err: errors.Wrap(&pgconn.PgError{
				Code:           "23505",
				ConstraintName: "idx_reviews_reviewer_business",
			}, "failed to create review"),
			want: true,
		},
		{
			name: "gorm duplicated key sentinel",
			err:  gorm.ErrDuplicatedKey,
			want: true,
		},
		{
			name: "foreign key code is not a unique violation",
			err:  &pgconn.PgError{Code: "23503"},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection refused"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueConstraintViolation(tt.err))
		})
	}
}

func TestIsForeignKeyConstraintViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "raw pgconn foreign key violation",
			err: &pgconn.PgError{
				Code:    "23503",
				Message: `insert or update on table "offers" violates foreign key constraint`,
			},
			want: true,
		},
		{
			name: "wrapped pgconn foreign key violation",
			err:  errors.Wrap(&pgconn.PgError{Code: "23503"}, "failed to create offer"),
			want: true,
		},
		{
			name: "gorm foreign key sentinel",
			err:  gorm.ErrForeignKeyViolated,
			want: true,
		},
		{
			name: "unique code is not a foreign key violation",
			err:  &pgconn.PgError{Code: "23505"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isForeignKeyConstraintViolation(tt.err))
		})
	}
}

func TestIsNotNullConstraintViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "raw pgconn not null violation",
			err: &pgconn.PgError{
				Code:    "23502",
				Message: `null value in column "title" violates not-null constraint`,
			},
			want: true,
		},
		{
			name: "wrapped pgconn not null violation",
			err:  errors.Wrap(&pgconn.PgError{Code: "23502"}, "failed to create order"),
			want: true,
		},
		{
			name: "message fallback",
			err:  errors.New(`null value in column "price"`),
			want: true,
		},
		{
			name: "unrelated error",
			err:  errors.New("connection refused"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isNotNullConstraintViolation(tt.err))
		})
	}
}
