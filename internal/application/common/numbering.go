package common

import (
	"context"
	"errors"

	"github.com/erpsuite/backend/internal/domain/shared"
)

// NumberAttempts bounds how often a document save is retried after a
// concurrent writer took the generated number
const NumberAttempts = 3

// SaveNumbered generates a document number and saves the document under
// it. When the store reports the number as taken, a fresh one is generated
// and the save is retried.
func SaveNumbered(ctx context.Context, generate func(ctx context.Context) (string, error), save func(number string) error) error {
	var err error
	for attempt := 0; attempt < NumberAttempts; attempt++ {
		var number string
		number, err = generate(ctx)
		if err != nil {
			return err
		}
		err = save(number)
		if err == nil || !errors.Is(err, shared.ErrAlreadyExists) {
			return err
		}
	}
	return err
}
