package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/ports"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/infrastructure/memory"
)

type fakeRouteSheets struct {
	got      ports.RouteSheet
	verified []byte
}

func (f *fakeRouteSheets) BuildRouteSheet(_ context.Context, s ports.RouteSheet) ([]byte, error) {
	f.got = s
	return []byte("<HojaDeRuta/>"), nil
}

func (f *fakeRouteSheets) VerifyRouteSheet(_ context.Context, data []byte) error {
	f.verified = data
	return domain.ErrIntegrity
}

func day(m time.Month, d int) *time.Time {
	t := time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestRouteSheetUseCase_Build(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Sectors().Create(ctx, &entity.Sector{ID: "sec-1", Name: "Legales"}))
	require.NoError(t, store.DocumentTypes().Create(ctx, &entity.DocumentType{ID: "dt-1", Number: 1, Description: "Expediente"}))
	require.NoError(t, store.Users().Create(ctx, &entity.User{ID: "usr-1", Username: "ana", Name: "Ana"}))
	require.NoError(t, store.Users().Create(ctx, &entity.User{ID: "usr-2", Username: "beto", Name: "Beto"}))
	require.NoError(t, store.Documents().Create(ctx, &entity.Document{ID: "doc-1", TypeID: "dt-1", Number: 42, FiscalYear: "2024", SectorID: "sec-1", OwnerID: "usr-1"}))
	require.NoError(t, store.Documents().Create(ctx, &entity.Document{ID: "doc-2", TypeID: "dt-1", Number: 43, FiscalYear: "2024"}))

	transfers := []*entity.Transfer{
		{ID: "tr-c", DocumentID: "doc-1", TransferDate: day(3, 9), SenderID: "usr-2", ReceiverID: "usr-1", CreatedAt: fixedNow},
		{ID: "tr-a", DocumentID: "doc-1", TransferDate: day(3, 1), SenderID: "usr-1", ReceiverID: "usr-2", CreatedAt: fixedNow.Add(time.Hour)},
		{ID: "tr-b", DocumentID: "doc-1", CreatedAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)},
		{ID: "tr-x", DocumentID: "doc-2", CreatedAt: fixedNow},
	}
	for _, tr := range transfers {
		require.NoError(t, store.Transfers().Create(ctx, tr))
	}

	gen := &fakeRouteSheets{}
	uc := NewRouteSheetUseCase(store.Documents(), store.Sectors(), store.Transfers(), store.Users(), gen)
	uc.now = func() time.Time { return fixedNow }

	out, filename, err := uc.Build(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "<HojaDeRuta/>", string(out))
	assert.Equal(t, "hoja_de_ruta_2024_42.xml", filename)

	sheet := gen.got
	require.NotNil(t, sheet.Document)
	assert.Equal(t, "Expediente", sheet.Document.Type.Description)
	require.NotNil(t, sheet.Sector)
	assert.Equal(t, "Legales", sheet.Sector.Name)
	require.NotNil(t, sheet.Owner)
	assert.Equal(t, "ana", sheet.Owner.Username)
	assert.Equal(t, fixedNow, sheet.GeneratedAt)
	assert.Len(t, sheet.Users, 2)

	var ids []string
	for _, tr := range sheet.Transfers {
		ids = append(ids, tr.ID)
	}
	assert.Equal(t, []string{"tr-a", "tr-b", "tr-c"}, ids)

	_, _, err = uc.Build(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRouteSheetUseCase_Verify(t *testing.T) {
	gen := &fakeRouteSheets{}
	store := memory.NewStore()
	uc := NewRouteSheetUseCase(store.Documents(), store.Sectors(), store.Transfers(), store.Users(), gen)

	err := uc.Verify(context.Background(), nil)
	assert.True(t, domain.IsValidation(err))
	assert.Nil(t, gen.verified)

	err = uc.Verify(context.Background(), []byte("<HojaDeRuta/>"))
	assert.ErrorIs(t, err, domain.ErrIntegrity)
	assert.Equal(t, "<HojaDeRuta/>", string(gen.verified))
}
