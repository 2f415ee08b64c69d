package service

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/platform/logger"
	"github.com/phrazzld/shop-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFailureLevels(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level string
	}{
		{name: "not found", err: fmt.Errorf("get: %w", store.ErrUserNotFound), level: "DEBUG"},
		{name: "validation", err: domain.NewValidationError("name", domain.MsgInvalidValue), level: "DEBUG"},
		{name: "already in order", err: ErrProductAlreadyInOrder, level: "DEBUG"},
		{
			name:  "duplicate email",
			err:   store.NewStoreError("user", "create", fmt.Errorf("%w: key", store.ErrEmailExists)),
			level: "WARN",
		},
		{name: "storage fault", err: store.NewStoreError("user", "list", errors.New("boom")), level: "ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log, buf := logger.GetTestLogger(t)

			logFailure(log, "operation failed", tc.err, slog.Int64("user_id", 3))

			entries, err := buf.GetLogEntries()
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tc.level, entries[0]["level"])
			assert.Equal(t, "operation failed", entries[0]["msg"])
			assert.Equal(t, tc.err.Error(), entries[0]["error"])
			assert.EqualValues(t, 3, entries[0]["user_id"])
		})
	}
}
