// Package catalogimport lee catálogos (sectores y tipos de documento) desde CSV.
//
// Las planillas heredadas suelen venir en ISO-8859-1 o Windows-1252; Decode las pasa a UTF-8.
// El separador es punto y coma y la primera fila puede ser un encabezado.
package catalogimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/application/dto"
)

// Separator separador de columnas.
const Separator = ';'

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode envuelve r para leer en UTF-8 desde la codificación indicada.
// Acepta utf-8 (por defecto), iso-8859-1/latin1 y windows-1252/cp1252.
func Decode(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("codificación no soportada: %q", encoding)
}

// ParseSectors lee una columna con el nombre del sector.
func ParseSectors(r io.Reader) ([]dto.CreateSectorRequest, error) {
	var out []dto.CreateSectorRequest
	err := eachRow(r, 1, func(line int, cols []string) error {
		name := strings.TrimSpace(cols[0])
		if line == 1 && isHeader(name, "nombre", "name", "sector") {
			return nil
		}
		out = append(out, dto.CreateSectorRequest{Name: name})
		return nil
	})
	return out, err
}

// ParseDocumentTypes lee número;descripción.
func ParseDocumentTypes(r io.Reader) ([]dto.CreateDocumentTypeRequest, error) {
	var out []dto.CreateDocumentTypeRequest
	err := eachRow(r, 2, func(line int, cols []string) error {
		raw := strings.TrimSpace(cols[0])
		number, err := strconv.Atoi(raw)
		if err != nil {
			if line == 1 && isHeader(raw, "numero", "número", "number") {
				return nil
			}
			return fmt.Errorf("línea %d: número inválido %q", line, raw)
		}
		out = append(out, dto.CreateDocumentTypeRequest{
			Number:      number,
			Description: strings.TrimSpace(cols[1]),
		})
		return nil
	})
	return out, err
}

// eachRow recorre las filas no vacías; minCols columnas como mínimo.
func eachRow(r io.Reader, minCols int, fn func(line int, cols []string) error) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("leer CSV: %w", err)
	}
	cr := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	cr.Comma = Separator
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	for {
		cols, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("leer CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(cols) == 1 && strings.TrimSpace(cols[0]) == "" {
			continue
		}
		if len(cols) < minCols {
			return fmt.Errorf("línea %d: se esperaban %d columnas, hay %d", line, minCols, len(cols))
		}
		if err := fn(line, cols); err != nil {
			return err
		}
	}
}

func isHeader(v string, names ...string) bool {
	for _, n := range names {
		if strings.EqualFold(v, n) {
			return true
		}
	}
	return false
}
