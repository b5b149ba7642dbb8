package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequence() func(context.Context) (string, error) {
	n := 0
	return func(context.Context) (string, error) {
		n++
		return fmt.Sprintf("PO-2026-%05d", n), nil
	}
}

func TestSaveNumbered_RetriesOnConflict(t *testing.T) {
	var saved []string
	err := SaveNumbered(context.Background(), sequence(), func(number string) error {
		saved = append(saved, number)
		if len(saved) == 1 {
			return shared.ErrAlreadyExists
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"PO-2026-00001", "PO-2026-00002"}, saved)
}

func TestSaveNumbered_GivesUpAfterAttempts(t *testing.T) {
	calls := 0
	err := SaveNumbered(context.Background(), sequence(), func(string) error {
		calls++
		return shared.ErrAlreadyExists
	})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	assert.Equal(t, NumberAttempts, calls)
}

func TestSaveNumbered_OtherErrorsAreNotRetried(t *testing.T) {
	boom := errors.New("connection reset")
	calls := 0
	err := SaveNumbered(context.Background(), sequence(), func(string) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestSaveNumbered_GenerateError(t *testing.T) {
	boom := errors.New("query failed")
	err := SaveNumbered(context.Background(), func(context.Context) (string, error) {
		return "", boom
	}, func(string) error {
		t.Fatal("save must not be called")
		return nil
	})
	assert.ErrorIs(t, err, boom)
}
