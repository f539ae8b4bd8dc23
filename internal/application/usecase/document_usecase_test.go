package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/dto"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/repository"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/infrastructure/memory"
)

var fixedNow = time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func newDocumentUC(t *testing.T) (*DocumentUseCase, *memory.Store, string) {
	t.Helper()
	store := memory.NewStore()
	dt := &entity.DocumentType{ID: "dt-1", Number: 1, Description: "Expediente"}
	require.NoError(t, store.DocumentTypes().Create(context.Background(), dt))
	uc := NewDocumentUseCase(memory.NewTxRunner(store), store.Documents())
	uc.now = func() time.Time { return fixedNow }
	return uc, store, dt.ID
}

func TestDocumentUseCase_Create(t *testing.T) {
	uc, _, typeID := newDocumentUC(t)
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateDocumentRequest{TypeID: typeID, Number: 1, FiscalYear: "2024", LastUpdate: strPtr("2024-06-01")})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10", out.CreationDate)
	assert.Equal(t, "2024-06-01", out.LastUpdate)
	require.NotNil(t, out.Type)
	assert.Equal(t, "Expediente", out.Type.Description)

	_, err = uc.Create(ctx, dto.CreateDocumentRequest{TypeID: typeID, Number: 1, FiscalYear: "2024"})
	assert.ErrorIs(t, err, domain.ErrDocumentAlreadyRegistered)
	assert.True(t, domain.IsValidation(err))

	// otro ejercicio: misma combinación tipo+número es válida
	_, err = uc.Create(ctx, dto.CreateDocumentRequest{TypeID: typeID, Number: 1, FiscalYear: "2025"})
	assert.NoError(t, err)
}

func TestDocumentUseCase_CreateConcurrenteMismaClave(t *testing.T) {
	uc, store, typeID := newDocumentUC(t)
	ctx := context.Background()

	const n = 50
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, dup  int
		otherErr []error
	)
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := uc.Create(ctx, dto.CreateDocumentRequest{TypeID: typeID, Number: 7, FiscalYear: "2024"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrDocumentAlreadyRegistered):
				dup++
			default:
				otherErr = append(otherErr, err)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, otherErr)
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dup)

	list, err := store.Documents().List(ctx, repository.DocumentFilter{}, 100, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDocumentUseCase_CreateValidaciones(t *testing.T) {
	uc, _, typeID := newDocumentUC(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CreateDocumentRequest
	}{
		{"sin tipo", dto.CreateDocumentRequest{Number: 1, FiscalYear: "2024"}},
		{"sin número", dto.CreateDocumentRequest{TypeID: typeID, FiscalYear: "2024"}},
		{"sin ejercicio", dto.CreateDocumentRequest{TypeID: typeID, Number: 1}},
		{"ejercicio largo", dto.CreateDocumentRequest{TypeID: typeID, Number: 1, FiscalYear: "20245"}},
		{"fecha inválida", dto.CreateDocumentRequest{TypeID: typeID, Number: 1, FiscalYear: "2024", LastUpdate: strPtr("10/06/2024")}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tc.in)
			assert.True(t, domain.IsValidation(err), "got %v", err)
		})
	}
}

func TestDocumentUseCase_Update(t *testing.T) {
	uc, store, typeID := newDocumentUC(t)
	ctx := context.Background()

	first, err := uc.Create(ctx, dto.CreateDocumentRequest{TypeID: typeID, Number: 1, FiscalYear: "2024"})
	require.NoError(t, err)
	second, err := uc.Create(ctx, dto.CreateDocumentRequest{TypeID: typeID, Number: 2, FiscalYear: "2024"})
	require.NoError(t, err)

	uc.now = func() time.Time { return fixedNow.AddDate(0, 1, 0) }

	// resguardar sin cambios no es duplicado y no toca la fecha de alta
	out, err := uc.Update(ctx, first.ID, dto.UpdateDocumentRequest{FiscalYear: strPtr("2024")})
	require.NoError(t, err)
	assert.Equal(t, first.CreationDate, out.CreationDate)

	_, err = uc.Update(ctx, second.ID, dto.UpdateDocumentRequest{Number: intPtr(1)})
	assert.ErrorIs(t, err, domain.ErrDocumentAlreadyRegistered)

	got, err := store.Documents().GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Number)

	_, err = uc.Update(ctx, "no-existe", dto.UpdateDocumentRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentUseCase_ListYDelete(t *testing.T) {
	uc, _, typeID := newDocumentUC(t)
	ctx := context.Background()

	for _, fy := range []string{"2023", "2024"} {
		_, err := uc.Create(ctx, dto.CreateDocumentRequest{TypeID: typeID, Number: 1, FiscalYear: fy})
		require.NoError(t, err)
	}

	out, err := uc.List(ctx, dto.DocumentFilterRequest{FiscalYear: "2024"}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 20, out.Page.Limit)

	require.NoError(t, uc.Delete(ctx, out.Items[0].ID))
	_, err = uc.GetByID(ctx, out.Items[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
