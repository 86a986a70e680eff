package vault_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"keep/internal/domain/input"
	"keep/internal/domain/item"
	"keep/internal/domain/vault"
	"keep/internal/infrastructure/securestore"
)

// Полный сценарий: Gmail, затем HSBC через Update, отказ на пустой
// заголовок, удаление HSBC.
func TestService_GmailHSBCScenario(t *testing.T) {
	ctx := context.Background()
	store := securestore.New(securestore.NewMemoryBackend(), nil, "", slog.Default())

	now := time.Date(2024, 3, 26, 10, 0, 0, 0, time.UTC)
	factory := item.NewFactory(item.WithClock(func() time.Time {
		now = now.Add(time.Minute)
		return now
	}))
	service := vault.NewService(store, factory, "", slog.Default())

	session := input.NewSession(slog.Default())
	defer session.Close()
	require.NoError(t, session.Set(item.FieldTitle, "Gmail"))
	require.NoError(t, session.Set(item.FieldPassword, "p@ss"))
	gmail, err := service.Create(ctx, session.State())
	require.NoError(t, err)

	session.Reset()
	require.NoError(t, session.SelectType(item.TypeBankAccount))
	require.NoError(t, session.Set(item.FieldTitle, "HSBC"))
	require.NoError(t, session.Set(item.FieldAccountNumber, "12345678"))
	hsbc, err := service.Create(ctx, session.State())
	require.NoError(t, err)

	c, err := service.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	assert.Equal(t, hsbc.GetID(), c.At(0).GetID())
	assert.Equal(t, gmail.GetID(), c.At(1).GetID())

	editor, err := input.NewFieldEditor(gmail, item.FieldTitle)
	require.NoError(t, err)
	_, err = service.EditField(ctx, gmail.GetID(), editor.WithText(""))
	assert.ErrorIs(t, err, vault.ErrFieldRequired)

	stored, err := service.Get(ctx, gmail.GetID())
	require.NoError(t, err)
	assert.Equal(t, "Gmail", stored.GetTitle())
	assert.Nil(t, stored.GetDateModified())

	require.NoError(t, service.Delete(ctx, hsbc.GetID()))

	c, err = service.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, gmail, c.At(0))
}

func TestService_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	store := securestore.New(securestore.NewMemoryBackend(), nil, "", nil)
	service := vault.NewService(store, nil, "", slog.Default())

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			state := input.Fold(
				input.Event{Type: item.TypeNote},
				input.Event{Edit: input.Edit{Key: item.FieldTitle, Text: fmt.Sprintf("note %d", i)}, Type: item.TypeNote},
				input.Event{Edit: input.Edit{Key: item.FieldMemo, Text: "memo"}, Type: item.TypeNote},
			)
			_, err := service.Create(ctx, state)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	c, err := service.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, n, c.Len())
}
