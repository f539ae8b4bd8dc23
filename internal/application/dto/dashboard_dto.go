package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalDocuments    int              `json:"total_documents"`
	DocumentsBySector []SectorCountDTO `json:"documents_by_sector"`

	InTransit int `json:"in_transit"`
	Confirmed int `json:"confirmed"`

	// Transferencias en tránsito con más de StaleAfterDays días, de la más antigua a la más reciente.
	StaleTransfers []TransferResponse `json:"stale_transfers"`
	StaleAfterDays int                `json:"stale_after_days"`

	DateLabel string `json:"date_label"` // ej: "Junio 2024"
}

// SectorCountDTO documentos de un sector. SectorID vacío: documentos sin sector.
type SectorCountDTO struct {
	SectorID   string `json:"sector_id,omitempty"`
	SectorName string `json:"sector_name"`
	Documents  int    `json:"documents"`
}
