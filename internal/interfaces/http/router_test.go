package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/zoesacks/seguimiento-de-expedientes/internal/application/analytics"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/auth"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/dto"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/usecase"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/infrastructure/memory"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/infrastructure/pdf"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/infrastructure/xmlexport"
	apphttp "github.com/zoesacks/seguimiento-de-expedientes/internal/interfaces/http"
	pkgjwt "github.com/zoesacks/seguimiento-de-expedientes/pkg/jwt"
)

type apiFixture struct {
	app           *fiber.App
	adminToken    string
	operatorToken string
	operatorID    string
	adminID       string
}

func newAPI(t *testing.T) apiFixture {
	t.Helper()
	store := memory.NewStore()
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		SectorUC:       usecase.NewSectorUseCase(store.Sectors()),
		DocumentTypeUC: usecase.NewDocumentTypeUseCase(store.DocumentTypes()),
		DocumentUC:     usecase.NewDocumentUseCase(memory.NewTxRunner(store), store.Documents()),
		TransferUC:     usecase.NewTransferUseCase(store.Transfers(), store.Documents(), store.Users(), pdf.NewMarotoReceiptGenerator("test")),
		DashboardUC:    appanalytics.NewDashboardUseCase(store.Analytics(), 7),
		RouteSheetUC:   usecase.NewRouteSheetUseCase(store.Documents(), store.Sectors(), store.Transfers(), store.Users(), xmlexport.NewRouteSheetBuilder()),
		AuthUC:         authUC,
		JWTSecret:      testJWTSecret,
	})

	ctx := context.Background()
	admin, err := authUC.RegisterUser(ctx, dto.RegisterRequest{Username: "admin", Password: "admin-password", Role: entity.RoleAdmin})
	require.NoError(t, err)
	operator, err := authUC.RegisterUser(ctx, dto.RegisterRequest{Username: "ana", Password: "ana-password"})
	require.NoError(t, err)

	adminTok, err := pkgjwt.Generate(testJWTSecret, admin.ID, admin.Role, testIssuer, testExpMin)
	require.NoError(t, err)
	opTok, err := pkgjwt.Generate(testJWTSecret, operator.ID, operator.Role, testIssuer, testExpMin)
	require.NoError(t, err)

	return apiFixture{app: app, adminToken: "Bearer " + adminTok, operatorToken: "Bearer " + opTok, operatorID: operator.ID, adminID: admin.ID}
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// seedCatalog crea un sector y un tipo de documento como admin.
func seedCatalog(t *testing.T, f apiFixture) (dto.SectorResponse, dto.DocumentTypeResponse) {
	t.Helper()
	resp := call(t, f.app, http.MethodPost, "/api/sectors", f.adminToken, dto.CreateSectorRequest{Name: "Mesa de Entradas"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sector := decode[dto.SectorResponse](t, resp)

	resp = call(t, f.app, http.MethodPost, "/api/document-types", f.adminToken, dto.CreateDocumentTypeRequest{Number: 1, Description: "Expediente"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return sector, decode[dto.DocumentTypeResponse](t, resp)
}

func TestHealth(t *testing.T) {
	f := newAPI(t)
	resp := call(t, f.app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	f := newAPI(t)

	resp := call(t, f.app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "ana", Password: "ana-password"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.LoginResponse](t, resp)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleOperator, out.User.Role)

	resp = call(t, f.app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "ana", Password: "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCatalogo_SoloAdminEscribe(t *testing.T) {
	f := newAPI(t)

	resp := call(t, f.app, http.MethodPost, "/api/sectors", f.operatorToken, dto.CreateSectorRequest{Name: "Archivo"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, f.app, http.MethodPost, "/api/sectors", f.adminToken, dto.CreateSectorRequest{Name: "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	sector, docType := seedCatalog(t, f)
	assert.Equal(t, "Sector: Mesa de Entradas", sector.Display)
	assert.Equal(t, "Document type: Expediente", docType.Display)

	resp = call(t, f.app, http.MethodGet, "/api/sectors", f.operatorToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[dto.SectorListResponse](t, resp).Items, 1)

	resp = call(t, f.app, http.MethodPost, "/api/auth/register", f.operatorToken, dto.RegisterRequest{Username: "otro", Password: "password123"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, f.app, http.MethodGet, "/api/sectors", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDocumentos_AltaDuplicadoYEdicion(t *testing.T) {
	f := newAPI(t)
	sector, docType := seedCatalog(t, f)

	in := dto.CreateDocumentRequest{TypeID: docType.ID, Number: 42, FiscalYear: "2024", SectorID: sector.ID, OwnerID: f.operatorID}
	resp := call(t, f.app, http.MethodPost, "/api/documents", f.operatorToken, in)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	doc := decode[dto.DocumentResponse](t, resp)
	assert.Equal(t, "Document: Document type: Expediente. Number: 42", doc.Display)
	assert.NotEmpty(t, doc.CreationDate)

	resp = call(t, f.app, http.MethodPost, "/api/documents", f.operatorToken, in)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DOCUMENT_ALREADY_REGISTERED", decode[dto.ErrorResponse](t, resp).Code)

	// guardar el mismo documento sin cambiar la clave no es duplicado
	lastUpdate := "2024-05-02"
	resp = call(t, f.app, http.MethodPut, "/api/documents/"+doc.ID, f.operatorToken, dto.UpdateDocumentRequest{LastUpdate: &lastUpdate})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.DocumentResponse](t, resp)
	assert.Equal(t, "2024-05-02", updated.LastUpdate)
	assert.Equal(t, doc.CreationDate, updated.CreationDate)

	resp = call(t, f.app, http.MethodGet, "/api/documents/exists?type_id="+docType.ID+"&number=42&fiscal_year=2024", f.operatorToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.ExistsResponse](t, resp).Exists)

	resp = call(t, f.app, http.MethodGet, "/api/documents/exists?type_id="+docType.ID+"&number=42&fiscal_year=2024&exclude_id="+doc.ID, f.operatorToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decode[dto.ExistsResponse](t, resp).Exists)

	resp = call(t, f.app, http.MethodPost, "/api/documents", f.operatorToken, dto.CreateDocumentRequest{TypeID: docType.ID, FiscalYear: "2024"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, f.app, http.MethodPost, "/api/documents", f.operatorToken, dto.CreateDocumentRequest{TypeID: "no-existe", Number: 1, FiscalYear: "2024"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = call(t, f.app, http.MethodGet, "/api/documents?sector_id="+sector.ID, f.operatorToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[dto.DocumentListResponse](t, resp).Items, 1)
}

func TestTransferencias_FlujoYConstancia(t *testing.T) {
	f := newAPI(t)
	_, docType := seedCatalog(t, f)

	resp := call(t, f.app, http.MethodPost, "/api/documents", f.operatorToken, dto.CreateDocumentRequest{TypeID: docType.ID, Number: 7, FiscalYear: "2023"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	doc := decode[dto.DocumentResponse](t, resp)

	resp = call(t, f.app, http.MethodPost, "/api/transfers", f.operatorToken, dto.CreateTransferRequest{DocumentID: doc.ID, SenderID: f.operatorID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	tr := decode[dto.TransferResponse](t, resp)
	assert.Equal(t, entity.TransferStateInTransit, tr.State)

	resp = call(t, f.app, http.MethodPost, "/api/transfers/"+tr.ID+"/confirm", f.operatorToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	confirmed := decode[dto.TransferResponse](t, resp)
	assert.Equal(t, entity.TransferStateConfirmed, confirmed.State)
	assert.NotEmpty(t, confirmed.ConfirmationDate)

	back := entity.TransferStateInTransit
	resp = call(t, f.app, http.MethodPut, "/api/transfers/"+tr.ID, f.operatorToken, dto.UpdateTransferRequest{State: &back})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.TransferStateInTransit, decode[dto.TransferResponse](t, resp).State)

	bad := "perdido"
	resp = call(t, f.app, http.MethodPut, "/api/transfers/"+tr.ID, f.operatorToken, dto.UpdateTransferRequest{State: &bad})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, f.app, http.MethodGet, "/api/transfers/"+tr.ID+"/receipt", f.operatorToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestBorradoEnCascada(t *testing.T) {
	f := newAPI(t)
	sector, docType := seedCatalog(t, f)

	resp := call(t, f.app, http.MethodPost, "/api/documents", f.operatorToken, dto.CreateDocumentRequest{TypeID: docType.ID, Number: 1, FiscalYear: "2024", SectorID: sector.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	doc := decode[dto.DocumentResponse](t, resp)
	resp = call(t, f.app, http.MethodPost, "/api/transfers", f.operatorToken, dto.CreateTransferRequest{DocumentID: doc.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	tr := decode[dto.TransferResponse](t, resp)

	resp = call(t, f.app, http.MethodDelete, "/api/sectors/"+sector.ID, f.adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, f.app, http.MethodGet, "/api/documents/"+doc.ID, f.operatorToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = call(t, f.app, http.MethodGet, "/api/transfers/"+tr.ID, f.operatorToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUsuarios_DesactivacionYBaja(t *testing.T) {
	f := newAPI(t)
	_, docType := seedCatalog(t, f)
	login := dto.LoginRequest{Username: "ana", Password: "ana-password"}

	resp := call(t, f.app, http.MethodPatch, "/api/users/"+f.operatorID+"/status", f.adminToken, dto.UpdateUserStatusRequest{Status: entity.UserStatusInactive})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.UserStatusInactive, decode[dto.UserResponse](t, resp).Status)

	resp = call(t, f.app, http.MethodPost, "/api/auth/login", "", login)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, f.app, http.MethodPatch, "/api/users/"+f.operatorID+"/status", f.adminToken, dto.UpdateUserStatusRequest{Status: entity.UserStatusActive})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = call(t, f.app, http.MethodPost, "/api/auth/login", "", login)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, f.app, http.MethodPatch, "/api/users/"+f.adminID+"/status", f.adminToken, dto.UpdateUserStatusRequest{Status: entity.UserStatusInactive})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "status", decode[dto.ErrorResponse](t, resp).Field)
	resp = call(t, f.app, http.MethodDelete, "/api/users/"+f.adminID, f.adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// la baja arrastra documentos propios y transferencias donde participa
	resp = call(t, f.app, http.MethodPost, "/api/documents", f.operatorToken, dto.CreateDocumentRequest{TypeID: docType.ID, Number: 1, FiscalYear: "2024", OwnerID: f.operatorID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	owned := decode[dto.DocumentResponse](t, resp)
	resp = call(t, f.app, http.MethodPost, "/api/documents", f.operatorToken, dto.CreateDocumentRequest{TypeID: docType.ID, Number: 2, FiscalYear: "2024"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	other := decode[dto.DocumentResponse](t, resp)
	resp = call(t, f.app, http.MethodPost, "/api/transfers", f.operatorToken, dto.CreateTransferRequest{DocumentID: other.ID, SenderID: f.operatorID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	tr := decode[dto.TransferResponse](t, resp)

	resp = call(t, f.app, http.MethodDelete, "/api/users/"+f.operatorID, f.adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, f.app, http.MethodGet, "/api/documents/"+owned.ID, f.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = call(t, f.app, http.MethodGet, "/api/documents/"+other.ID, f.adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = call(t, f.app, http.MethodGet, "/api/transfers/"+tr.ID, f.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, f.app, http.MethodDelete, "/api/users/"+f.operatorID, f.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHojaDeRuta_DescargaYVerificacion(t *testing.T) {
	f := newAPI(t)
	sector, docType := seedCatalog(t, f)

	resp := call(t, f.app, http.MethodPost, "/api/documents", f.operatorToken, dto.CreateDocumentRequest{TypeID: docType.ID, Number: 15, FiscalYear: "2024", SectorID: sector.ID, OwnerID: f.operatorID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	doc := decode[dto.DocumentResponse](t, resp)
	resp = call(t, f.app, http.MethodPost, "/api/transfers", f.operatorToken, dto.CreateTransferRequest{DocumentID: doc.ID, SenderID: f.operatorID, Remarks: "Pase a contaduría"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, f.app, http.MethodGet, "/api/documents/"+doc.ID+"/route-sheet", f.operatorToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/xml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "hoja_de_ruta_2024_15.xml")
	sheet, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(sheet), "Pase a contaduría")

	resp = postXML(t, f.app, f.operatorToken, sheet)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.RouteSheetVerification](t, resp).Valid)

	tampered := bytes.Replace(sheet, []byte("contaduría"), []byte("tesorería"), 1)
	resp = postXML(t, f.app, f.operatorToken, tampered)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "INTEGRITY_MISMATCH", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, f.app, http.MethodGet, "/api/documents/00000000-0000-0000-0000-000000000000/route-sheet", f.operatorToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func postXML(t *testing.T, app *fiber.App, token string, body []byte) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/route-sheets/verify", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/xml")
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestDashboard_Resumen(t *testing.T) {
	f := newAPI(t)
	sector, docType := seedCatalog(t, f)

	resp := call(t, f.app, http.MethodPost, "/api/documents", f.operatorToken, dto.CreateDocumentRequest{TypeID: docType.ID, Number: 3, FiscalYear: "2024", SectorID: sector.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	doc := decode[dto.DocumentResponse](t, resp)
	old := "2020-01-15"
	resp = call(t, f.app, http.MethodPost, "/api/transfers", f.operatorToken, dto.CreateTransferRequest{DocumentID: doc.ID, TransferDate: &old})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, f.app, http.MethodGet, "/api/dashboard/summary", f.operatorToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decode[dto.DashboardSummaryDTO](t, resp)
	assert.Equal(t, 1, summary.TotalDocuments)
	assert.Equal(t, 1, summary.InTransit)
	require.Len(t, summary.StaleTransfers, 1)
	assert.Equal(t, old, summary.StaleTransfers[0].TransferDate)

	resp = call(t, f.app, http.MethodGet, "/api/dashboard/summary", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
