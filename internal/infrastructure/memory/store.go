// Package memory implementa los puertos de persistencia en memoria.
// Reproduce las reglas de la base: unicidad, claves foráneas, borrado en cascada y rollback.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
)

// Store guarda todas las tablas. Los repos devuelven copias; nunca comparten punteros con el store.
type Store struct {
	mu   sync.Mutex
	data tables
	now  func() time.Time
}

type tables struct {
	users     map[string]entity.User
	sectors   map[string]entity.Sector
	docTypes  map[string]entity.DocumentType
	documents map[string]entity.Document
	transfers map[string]entity.Transfer
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newTables(), now: time.Now}
}

func newTables() tables {
	return tables{
		users:     map[string]entity.User{},
		sectors:   map[string]entity.Sector{},
		docTypes:  map[string]entity.DocumentType{},
		documents: map[string]entity.Document{},
		transfers: map[string]entity.Transfer{},
	}
}

func (t tables) clone() tables {
	c := newTables()
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.sectors {
		c.sectors[k] = v
	}
	for k, v := range t.docTypes {
		c.docTypes[k] = v
	}
	for k, v := range t.documents {
		c.documents[k] = v
	}
	for k, v := range t.transfers {
		c.transfers[k] = v
	}
	return c
}

// Users, Sectors, DocumentTypes, Documents y Transfers devuelven repos que toman el lock en cada llamada.
func (s *Store) Users() *UserRepo                 { return &UserRepo{conn{s: s}} }
func (s *Store) Sectors() *SectorRepo             { return &SectorRepo{conn{s: s}} }
func (s *Store) DocumentTypes() *DocumentTypeRepo { return &DocumentTypeRepo{conn{s: s}} }
func (s *Store) Documents() *DocumentRepo         { return &DocumentRepo{conn{s: s}} }
func (s *Store) Transfers() *TransferRepo         { return &TransferRepo{conn{s: s}} }

// Analytics devuelve el repo de consultas del tablero.
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{conn{s: s}} }

// conn es la vista de un repo sobre el store. Dentro de una transacción el lock ya está tomado.
type conn struct {
	s    *Store
	inTx bool
}

func (c conn) do(fn func(t *tables) error) error {
	if !c.inTx {
		c.s.mu.Lock()
		defer c.s.mu.Unlock()
	}
	return fn(&c.s.data)
}

// cascadeDocument borra un documento y sus transferencias.
func (t *tables) cascadeDocument(id string) {
	delete(t.documents, id)
	for tid, tr := range t.transfers {
		if tr.DocumentID == id {
			delete(t.transfers, tid)
		}
	}
}

func (t *tables) cascadeDocumentsWhere(match func(entity.Document) bool) {
	for id, d := range t.documents {
		if match(d) {
			t.cascadeDocument(id)
		}
	}
}

func (t *tables) checkDocumentRefs(d *entity.Document) error {
	if _, ok := t.docTypes[d.TypeID]; !ok {
		return domain.ErrReferenceNotFound
	}
	if _, ok := t.sectors[d.SectorID]; d.SectorID != "" && !ok {
		return domain.ErrReferenceNotFound
	}
	if _, ok := t.users[d.OwnerID]; d.OwnerID != "" && !ok {
		return domain.ErrReferenceNotFound
	}
	return nil
}

func (t *tables) checkTransferRefs(tr *entity.Transfer) error {
	if _, ok := t.documents[tr.DocumentID]; tr.DocumentID != "" && !ok {
		return domain.ErrReferenceNotFound
	}
	for _, uid := range []string{tr.SenderID, tr.ReceiverID} {
		if _, ok := t.users[uid]; uid != "" && !ok {
			return domain.ErrReferenceNotFound
		}
	}
	return nil
}

func (t *tables) documentKeyTaken(typeID string, number int, fiscalYear, excludeID string) bool {
	for id, d := range t.documents {
		if id != excludeID && d.TypeID == typeID && d.Number == number && d.FiscalYear == fiscalYear {
			return true
		}
	}
	return false
}

// withType completa Document.Type como lo haría el JOIN.
func (t *tables) withType(d entity.Document) *entity.Document {
	if dt, ok := t.docTypes[d.TypeID]; ok {
		d.Type = &dt
	} else {
		d.Type = nil
	}
	return &d
}

// page ordena y recorta un listado como LIMIT/OFFSET.
func page[T any](items []T, less func(a, b T) bool, limit, offset int) []T {
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
