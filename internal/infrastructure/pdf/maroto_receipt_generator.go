// Package pdf genera la constancia de transferencia de un expediente.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + documento  │  Estado + fechas             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR / RECEPTOR                                          │
//	│  OBSERVACIONES                                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el ID de la transferencia + leyenda         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/ports"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const dateLayout = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.TransferReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa ports.TransferReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	appName string
}

// NewMarotoReceiptGenerator construye el generador; appName figura como autor del PDF.
func NewMarotoReceiptGenerator(appName string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{appName: appName}
}

// GenerateTransferReceipt genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateTransferReceipt(_ context.Context, r ports.TransferReceipt) ([]byte, error) {
	if r.Transfer == nil || r.Document == nil {
		return nil, fmt.Errorf("pdf: transferencia y documento son obligatorios")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Constancia de transferencia", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r.Transfer, r.Document))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow("EMISOR", r.Sender))
	m.AddRows(partyRow("RECEPTOR", r.Receiver))
	if r.Transfer.Remarks != "" {
		m.AddRows(remarksRow(r.Transfer.Remarks))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(r.Transfer))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: documento transferido (izq) y estado con fechas (der).
func headerRow(t *entity.Transfer, d *entity.Document) core.Row {
	return row.New(22).Add(
		col.New(7).Add(
			text.New("CONSTANCIA DE TRANSFERENCIA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(d.String(), props.Text{
				Size: 9, Top: 9,
			}),
			text.New("Ejercicio: "+d.FiscalYear, props.Text{
				Size: 8, Top: 15, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(stateLabel(t.State), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha de transferencia: "+formatDate(t.TransferDate), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Fecha de confirmación: "+formatDate(t.ConfirmationDate), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func partyRow(title string, u *entity.User) core.Row {
	name, detail := "—", ""
	if u != nil {
		name = nonEmpty(u.Name, u.Username)
		detail = fmt.Sprintf("Usuario: %s   |   Email: %s", u.Username, nonEmpty(u.Email, "—"))
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(detail, props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func remarksRow(remarks string) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("OBSERVACIONES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(remarks, props.Text{Size: 8, Top: 6}),
		),
	)
}

// footerRow: QR con el ID de la transferencia para ubicarla en el sistema.
func footerRow(t *entity.Transfer) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(t.ID, props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Transferencia N° "+t.ID, props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Conserve esta constancia como comprobante\ndel movimiento del expediente.", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 14, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func stateLabel(state string) string {
	switch state {
	case entity.TransferStateConfirmed:
		return "CONFIRMADA"
	case entity.TransferStateInTransit:
		return "EN TRÁNSITO"
	default:
		return state
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format(dateLayout)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
