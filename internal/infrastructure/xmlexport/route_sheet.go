// Package xmlexport emite la hoja de ruta de un documento en XML.
//
// La hoja lleva un elemento Integridad con el SHA-256 (hex) de la forma canónica C14N del resto del
// árbol, normalizado con sangría de dos espacios. Así se puede verificar una hoja impresa o reenviada
// sin consultar la base.
package xmlexport

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/ports"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
)

const (
	rootTag      = "HojaDeRuta"
	integrityTag = "Integridad"
	digestAlg    = "sha256-c14n"
	formatVer    = "1"
	dateLayout   = "2006-01-02"
)

// RouteSheetBuilder implementa ports.RouteSheetBuilder con etree.
type RouteSheetBuilder struct{}

// NewRouteSheetBuilder crea el builder.
func NewRouteSheetBuilder() *RouteSheetBuilder {
	return &RouteSheetBuilder{}
}

var _ ports.RouteSheetBuilder = (*RouteSheetBuilder)(nil)

// BuildRouteSheet genera el XML de la hoja de ruta con su resumen de integridad.
func (b *RouteSheetBuilder) BuildRouteSheet(ctx context.Context, sheet ports.RouteSheet) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sheet.Document == nil {
		return nil, fmt.Errorf("xmlexport: falta el documento")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(rootTag)
	root.CreateAttr("version", formatVer)
	root.CreateAttr("generada", sheet.GeneratedAt.UTC().Format(time.RFC3339))

	writeDocument(root.CreateElement("Documento"), sheet)

	list := root.CreateElement("Transferencias")
	list.CreateAttr("cantidad", strconv.Itoa(len(sheet.Transfers)))
	for _, t := range sheet.Transfers {
		writeTransfer(list.CreateElement("Transferencia"), t, sheet.Users)
	}

	digest, err := digestOf(root)
	if err != nil {
		return nil, err
	}
	integrity := root.CreateElement(integrityTag)
	integrity.CreateAttr("algoritmo", digestAlg)
	integrity.SetText(digest)

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xmlexport: serializar: %w", err)
	}
	return out, nil
}

// VerifyRouteSheet recalcula el resumen y lo compara con el declarado en la hoja.
func (b *RouteSheetBuilder) VerifyRouteSheet(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return fmt.Errorf("%w: XML ilegible: %v", domain.ErrInvalidInput, err)
	}
	root := doc.Root()
	if root == nil || root.Tag != rootTag {
		return fmt.Errorf("%w: se esperaba un elemento %s", domain.ErrInvalidInput, rootTag)
	}
	declared := root.SelectElement(integrityTag)
	if declared == nil || declared.SelectAttrValue("algoritmo", "") != digestAlg {
		return domain.ErrIntegrity
	}
	digest, err := digestOf(root)
	if err != nil {
		return err
	}
	if !strings.EqualFold(strings.TrimSpace(declared.Text()), digest) {
		return domain.ErrIntegrity
	}
	return nil
}

func writeDocument(el *etree.Element, sheet ports.RouteSheet) {
	d := sheet.Document
	el.CreateAttr("id", d.ID)

	typ := el.CreateElement("Tipo")
	typ.CreateAttr("id", d.TypeID)
	if d.Type != nil {
		typ.CreateAttr("numero", strconv.Itoa(d.Type.Number))
		typ.SetText(d.Type.Description)
	}
	el.CreateElement("Numero").SetText(strconv.Itoa(d.Number))
	el.CreateElement("Ejercicio").SetText(d.FiscalYear)
	if !d.CreationDate.IsZero() {
		el.CreateElement("FechaCreacion").SetText(d.CreationDate.Format(dateLayout))
	}
	if d.LastUpdate != nil {
		el.CreateElement("UltimaActualizacion").SetText(d.LastUpdate.Format(dateLayout))
	}
	if sheet.Sector != nil {
		s := el.CreateElement("Sector")
		s.CreateAttr("id", sheet.Sector.ID)
		s.SetText(sheet.Sector.Name)
	}
	if sheet.Owner != nil {
		writeUser(el.CreateElement("Propietario"), sheet.Owner)
	}
}

func writeTransfer(el *etree.Element, t *entity.Transfer, users map[string]*entity.User) {
	el.CreateAttr("id", t.ID)
	el.CreateAttr("estado", t.State)
	if t.TransferDate != nil {
		el.CreateElement("FechaTransferencia").SetText(t.TransferDate.Format(dateLayout))
	}
	if t.SenderID != "" {
		writeParty(el.CreateElement("Emisor"), t.SenderID, users)
	}
	if t.ConfirmationDate != nil {
		el.CreateElement("FechaConfirmacion").SetText(t.ConfirmationDate.Format(dateLayout))
	}
	if t.ReceiverID != "" {
		writeParty(el.CreateElement("Receptor"), t.ReceiverID, users)
	}
	if t.Remarks != "" {
		el.CreateElement("Observaciones").SetText(t.Remarks)
	}
}

func writeParty(el *etree.Element, id string, users map[string]*entity.User) {
	if u, ok := users[id]; ok && u != nil {
		writeUser(el, u)
		return
	}
	el.CreateAttr("id", id)
}

func writeUser(el *etree.Element, u *entity.User) {
	el.CreateAttr("id", u.ID)
	el.CreateAttr("usuario", u.Username)
	el.SetText(u.Name)
}

// digestOf calcula el resumen sobre una copia del árbol sin el elemento Integridad.
func digestOf(root *etree.Element) (string, error) {
	tmp := etree.NewDocument()
	tmp.SetRoot(root.Copy())
	if el := tmp.Root().SelectElement(integrityTag); el != nil {
		tmp.Root().RemoveChild(el)
	}
	tmp.Indent(2)
	raw, err := tmp.WriteToBytes()
	if err != nil {
		return "", fmt.Errorf("xmlexport: serializar: %w", err)
	}
	canon, err := canonicalizeXML(raw)
	if err != nil {
		return "", fmt.Errorf("xmlexport: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:]), nil
}

func canonicalizeXML(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}
