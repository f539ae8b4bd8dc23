package postgres

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/dto"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/ports"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/usecase"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/repository"
	"github.com/zoesacks/seguimiento-de-expedientes/pkg/config"
	"github.com/zoesacks/seguimiento-de-expedientes/pkg/logger"
)

// setupTestDB levanta PostgreSQL en un contenedor y aplica las migraciones.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("test de integración omitido: TEST_INTEGRATION no definida")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		tcpostgres.WithDatabase("expedientes_test"),
		tcpostgres.WithUsername("expedientes"),
		tcpostgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("no se pudo detener el contenedor: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := config.DBConfig{
		Host:     host,
		Port:     port.Int(),
		User:     "expedientes",
		Password: "test-password",
		DBName:   "expedientes_test",
		SSLMode:  "disable",
		MaxConns: 5,
	}
	require.NoError(t, Migrate(cfg, logger.Nop()))

	pool, err := NewPool(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

type fixture struct {
	sector  *entity.Sector
	docType *entity.DocumentType
	owner   *entity.User
	other   *entity.User
}

func seed(t *testing.T, ctx context.Context, pool *pgxpool.Pool) fixture {
	t.Helper()
	now := time.Now().UTC()
	f := fixture{
		sector:  &entity.Sector{ID: uuid.New().String(), Name: "Mesa de Entradas", CreatedAt: now, UpdatedAt: now},
		docType: &entity.DocumentType{ID: uuid.New().String(), Number: 1, Description: "Expediente", CreatedAt: now, UpdatedAt: now},
		owner:   &entity.User{ID: uuid.New().String(), Username: "ana", PasswordHash: "x", Role: entity.RoleOperator, Status: entity.UserStatusActive, CreatedAt: now, UpdatedAt: now},
		other:   &entity.User{ID: uuid.New().String(), Username: "luis", PasswordHash: "x", Role: entity.RoleOperator, Status: entity.UserStatusActive, CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, NewSectorRepository(pool).Create(ctx, f.sector))
	require.NoError(t, NewDocumentTypeRepository(pool).Create(ctx, f.docType))
	users := NewUserRepository(pool)
	require.NoError(t, users.Create(ctx, f.owner))
	require.NoError(t, users.Create(ctx, f.other))
	return f
}

func TestSectorRepository_CRUD(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewSectorRepository(pool)

	err := repo.Create(ctx, &entity.Sector{ID: uuid.New().String(), Name: "  "})
	assert.True(t, domain.IsValidation(err))

	s := &entity.Sector{ID: uuid.New().String(), Name: "Contaduría", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Sector: Contaduría", got.String())

	s.Name = "Tesorería"
	require.NoError(t, repo.Update(ctx, s))

	list, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Tesorería", list[0].Name)

	require.NoError(t, repo.Delete(ctx, s.ID))
	assert.ErrorIs(t, repo.Delete(ctx, s.ID), domain.ErrNotFound)

	got, err = repo.GetByID(ctx, "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDocumentRepository_Unicidad(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	f := seed(t, ctx, pool)
	repo := NewDocumentRepository(pool)

	first := &entity.Document{ID: uuid.New().String(), TypeID: f.docType.ID, Number: 42, FiscalYear: "2024", SectorID: f.sector.ID}
	require.NoError(t, repo.Create(ctx, first))
	assert.False(t, first.CreationDate.IsZero())

	dup := &entity.Document{ID: uuid.New().String(), TypeID: f.docType.ID, Number: 42, FiscalYear: "2024"}
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrDocumentAlreadyRegistered)

	exists, err := repo.Exists(ctx, f.docType.ID, 42, "2024", "")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, f.docType.ID, 42, "2024", first.ID)
	require.NoError(t, err)
	assert.False(t, exists, "el propio documento no cuenta como duplicado")

	// actualizar en su lugar con la misma clave no es duplicado
	first.OwnerID = f.owner.ID
	require.NoError(t, repo.Update(ctx, first))

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, f.owner.ID, got.OwnerID)
	assert.Equal(t, "Document: Document type: Expediente. Number: 42", got.String())

	second := &entity.Document{ID: uuid.New().String(), TypeID: f.docType.ID, Number: 43, FiscalYear: "2024"}
	require.NoError(t, repo.Create(ctx, second))
	second.Number = 42
	assert.ErrorIs(t, repo.Update(ctx, second), domain.ErrDocumentAlreadyRegistered)

	missing := &entity.Document{ID: uuid.New().String(), TypeID: uuid.New().String(), Number: 1, FiscalYear: "2024"}
	assert.ErrorIs(t, repo.Create(ctx, missing), domain.ErrReferenceNotFound)

	list, err := repo.List(ctx, repository.DocumentFilter{SectorID: f.sector.ID}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTransferRepository_EstadoLibre(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	f := seed(t, ctx, pool)

	doc := &entity.Document{ID: uuid.New().String(), TypeID: f.docType.ID, Number: 7, FiscalYear: "2023"}
	require.NoError(t, NewDocumentRepository(pool).Create(ctx, doc))

	repo := NewTransferRepository(pool)
	tr := &entity.Transfer{ID: uuid.New().String(), DocumentID: doc.ID, SenderID: f.owner.ID, ReceiverID: f.other.ID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, tr))
	assert.Equal(t, entity.TransferStateInTransit, tr.State)

	tr.Confirm(time.Now())
	require.NoError(t, repo.Update(ctx, tr))

	// volver a in_transit está permitido
	tr.State = entity.TransferStateInTransit
	require.NoError(t, repo.Update(ctx, tr))

	got, err := repo.GetByID(ctx, tr.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.TransferStateInTransit, got.State)
	assert.NotNil(t, got.ConfirmationDate)

	list, err := repo.List(ctx, repository.TransferFilter{ReceiverID: f.other.ID, State: entity.TransferStateInTransit}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCascada_SectorDocumentoTransferencia(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	f := seed(t, ctx, pool)

	docs := NewDocumentRepository(pool)
	transfers := NewTransferRepository(pool)
	doc := &entity.Document{ID: uuid.New().String(), TypeID: f.docType.ID, Number: 1, FiscalYear: "2024", SectorID: f.sector.ID}
	require.NoError(t, docs.Create(ctx, doc))
	tr := &entity.Transfer{ID: uuid.New().String(), DocumentID: doc.ID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, transfers.Create(ctx, tr))

	require.NoError(t, NewSectorRepository(pool).Delete(ctx, f.sector.ID))

	gotDoc, err := docs.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Nil(t, gotDoc)
	gotTr, err := transfers.GetByID(ctx, tr.ID)
	require.NoError(t, err)
	assert.Nil(t, gotTr)
}

func TestTxRunner_RollbackEnError(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	f := seed(t, ctx, pool)

	docID := uuid.New().String()
	err := NewTxRunner(pool).Run(ctx, func(repos ports.TxRepos) error {
		doc := &entity.Document{ID: docID, TypeID: f.docType.ID, Number: 5, FiscalYear: "2024"}
		if err := repos.Documents.Create(ctx, doc); err != nil {
			return err
		}
		return domain.ErrInvalidInput
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := NewDocumentRepository(pool).GetByID(ctx, docID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// Varias transacciones pueden pasar el chequeo Exists a la vez; el índice único decide y 23505 vuelve como duplicado.
func TestDocumentUseCase_CreateConcurrenteMismaClave(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	f := seed(t, ctx, pool)
	uc := usecase.NewDocumentUseCase(NewTxRunner(pool), NewDocumentRepository(pool))

	const n = 20
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
			_, err := uc.Create(ctx, dto.CreateDocumentRequest{TypeID: f.docType.ID, Number: 7, FiscalYear: "2024"})
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

	list, err := NewDocumentRepository(pool).List(ctx, repository.DocumentFilter{TypeID: f.docType.ID}, 100, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUserRepository_EstadoYBaja(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	f := seed(t, ctx, pool)
	users := NewUserRepository(pool)

	require.NoError(t, users.UpdateStatus(ctx, f.owner.ID, entity.UserStatusInactive))
	got, err := users.GetByID(ctx, f.owner.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.UserStatusInactive, got.Status)
	assert.ErrorIs(t, users.UpdateStatus(ctx, uuid.New().String(), entity.UserStatusActive), domain.ErrNotFound)

	docs := NewDocumentRepository(pool)
	doc := &entity.Document{ID: uuid.New().String(), TypeID: f.docType.ID, Number: 9, FiscalYear: "2024", OwnerID: f.owner.ID}
	require.NoError(t, docs.Create(ctx, doc))
	require.NoError(t, users.Delete(ctx, f.owner.ID))

	gotDoc, err := docs.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Nil(t, gotDoc)
}

func TestAnalyticsRepository_Tablero(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	f := seed(t, ctx, pool)

	docs := NewDocumentRepository(pool)
	withSector := &entity.Document{ID: uuid.New().String(), TypeID: f.docType.ID, Number: 1, FiscalYear: "2024", SectorID: f.sector.ID}
	loose := &entity.Document{ID: uuid.New().String(), TypeID: f.docType.ID, Number: 2, FiscalYear: "2024"}
	require.NoError(t, docs.Create(ctx, withSector))
	require.NoError(t, docs.Create(ctx, loose))

	now := time.Now().UTC()
	old := entity.DateOnly(now.AddDate(0, 0, -30))
	transfers := NewTransferRepository(pool)
	stale := &entity.Transfer{ID: uuid.New().String(), DocumentID: withSector.ID, TransferDate: &old, CreatedAt: now, UpdatedAt: now}
	fresh := &entity.Transfer{ID: uuid.New().String(), DocumentID: loose.ID, CreatedAt: now, UpdatedAt: now}
	done := &entity.Transfer{ID: uuid.New().String(), DocumentID: loose.ID, State: entity.TransferStateConfirmed, TransferDate: &old, CreatedAt: now, UpdatedAt: now}
	for _, tr := range []*entity.Transfer{stale, fresh, done} {
		require.NoError(t, transfers.Create(ctx, tr))
	}

	repo := NewAnalyticsRepository(pool)

	bySector, err := repo.CountDocumentsBySector(ctx)
	require.NoError(t, err)
	require.Len(t, bySector, 2)
	names := map[string]int{}
	for _, row := range bySector {
		names[row.SectorName] = row.Documents
	}
	assert.Equal(t, 1, names["Mesa de Entradas"])
	assert.Equal(t, 1, names[""])

	byState, err := repo.CountTransfersByState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, byState[entity.TransferStateInTransit])
	assert.Equal(t, 1, byState[entity.TransferStateConfirmed])

	list, err := repo.ListStaleTransfers(ctx, now.AddDate(0, 0, -7), 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, stale.ID, list[0].ID)
}
