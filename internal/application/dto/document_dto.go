package dto

// CreateDocumentRequest entrada para dar de alta un documento (expediente).
// Las fechas usan DateLayout (YYYY-MM-DD).
type CreateDocumentRequest struct {
	TypeID     string  `json:"type_id"`
	Number     int     `json:"number"`
	FiscalYear string  `json:"fiscal_year"`
	SectorID   string  `json:"sector_id,omitempty"`
	OwnerID    string  `json:"owner_id,omitempty"`
	LastUpdate *string `json:"last_update,omitempty"`
}

// UpdateDocumentRequest actualización parcial; los campos nil no se tocan.
// Un string vacío en SectorID/OwnerID/LastUpdate limpia el valor.
type UpdateDocumentRequest struct {
	TypeID     *string `json:"type_id"`
	Number     *int    `json:"number"`
	FiscalYear *string `json:"fiscal_year"`
	SectorID   *string `json:"sector_id"`
	OwnerID    *string `json:"owner_id"`
	LastUpdate *string `json:"last_update"`
}

// DocumentFilterRequest filtros de listado (query string).
type DocumentFilterRequest struct {
	TypeID     string `query:"type_id"`
	SectorID   string `query:"sector_id"`
	OwnerID    string `query:"owner_id"`
	FiscalYear string `query:"fiscal_year"`
}

// DocumentResponse salida de un documento.
type DocumentResponse struct {
	ID           string                `json:"id"`
	TypeID       string                `json:"type_id"`
	Type         *DocumentTypeResponse `json:"type,omitempty"`
	Number       int                   `json:"number"`
	FiscalYear   string                `json:"fiscal_year"`
	CreationDate string                `json:"creation_date"`
	SectorID     string                `json:"sector_id,omitempty"`
	OwnerID      string                `json:"owner_id,omitempty"`
	LastUpdate   string                `json:"last_update,omitempty"`
	Display      string                `json:"display"`
}

// DocumentListResponse lista paginada de documentos.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ExistsResponse resultado de la comprobación de duplicado.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}
