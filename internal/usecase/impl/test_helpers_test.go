package impl

import (
	"context"
	"io"
	"log/slog"

	"coderr/config"
	"coderr/internal/domain/repository"
	mockRepo "coderr/internal/mocks/repository"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Pagination: &config.PaginationConfig{
			DefaultPageSize: 6,
			MaxPageSize:     10000,
		},
	}
}

// passthroughTx makes the transaction manager run the callback against the
// given factory, standing in for a real database transaction.
func passthroughTx(mockTx *mockRepo.MockTransactionManager, factory *mockRepo.MockRepositoryFactory) {
	mockTx.EXPECT().
		Execute(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}
