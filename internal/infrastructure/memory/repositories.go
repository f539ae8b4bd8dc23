package memory

import (
	"context"

	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/entity"
	"github.com/zoesacks/seguimiento-de-expedientes/internal/domain/repository"
)

var (
	_ repository.SectorRepository       = (*SectorRepo)(nil)
	_ repository.DocumentTypeRepository = (*DocumentTypeRepo)(nil)
	_ repository.DocumentRepository     = (*DocumentRepo)(nil)
	_ repository.TransferRepository     = (*TransferRepo)(nil)
	_ repository.UserRepository         = (*UserRepo)(nil)
)

// SectorRepo sectores en memoria.
type SectorRepo struct{ c conn }

func (r *SectorRepo) Create(_ context.Context, s *entity.Sector) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return r.c.do(func(t *tables) error {
		if _, ok := t.sectors[s.ID]; ok {
			return domain.ErrDuplicate
		}
		t.sectors[s.ID] = *s
		return nil
	})
}

func (r *SectorRepo) GetByID(_ context.Context, id string) (*entity.Sector, error) {
	var out *entity.Sector
	err := r.c.do(func(t *tables) error {
		if s, ok := t.sectors[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SectorRepo) Update(_ context.Context, s *entity.Sector) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return r.c.do(func(t *tables) error {
		prev, ok := t.sectors[s.ID]
		if !ok {
			return domain.ErrNotFound
		}
		s.CreatedAt = prev.CreatedAt
		t.sectors[s.ID] = *s
		return nil
	})
}

func (r *SectorRepo) List(_ context.Context, limit, offset int) ([]*entity.Sector, error) {
	var out []*entity.Sector
	err := r.c.do(func(t *tables) error {
		for _, s := range t.sectors {
			s := s
			out = append(out, &s)
		}
		return nil
	})
	return page(out, func(a, b *entity.Sector) bool {
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	}, limit, offset), err
}

// Delete borra el sector y, en cascada, sus documentos y las transferencias de estos.
func (r *SectorRepo) Delete(_ context.Context, id string) error {
	return r.c.do(func(t *tables) error {
		if _, ok := t.sectors[id]; !ok {
			return domain.ErrNotFound
		}
		delete(t.sectors, id)
		t.cascadeDocumentsWhere(func(d entity.Document) bool { return d.SectorID == id })
		return nil
	})
}

// DocumentTypeRepo tipos de documento en memoria.
type DocumentTypeRepo struct{ c conn }

func (r *DocumentTypeRepo) Create(_ context.Context, dt *entity.DocumentType) error {
	if err := dt.Validate(); err != nil {
		return err
	}
	return r.c.do(func(t *tables) error {
		if _, ok := t.docTypes[dt.ID]; ok {
			return domain.ErrDuplicate
		}
		t.docTypes[dt.ID] = *dt
		return nil
	})
}

func (r *DocumentTypeRepo) GetByID(_ context.Context, id string) (*entity.DocumentType, error) {
	var out *entity.DocumentType
	err := r.c.do(func(t *tables) error {
		if dt, ok := t.docTypes[id]; ok {
			out = &dt
		}
		return nil
	})
	return out, err
}

func (r *DocumentTypeRepo) Update(_ context.Context, dt *entity.DocumentType) error {
	if err := dt.Validate(); err != nil {
		return err
	}
	return r.c.do(func(t *tables) error {
		prev, ok := t.docTypes[dt.ID]
		if !ok {
			return domain.ErrNotFound
		}
		dt.CreatedAt = prev.CreatedAt
		t.docTypes[dt.ID] = *dt
		return nil
	})
}

func (r *DocumentTypeRepo) List(_ context.Context, limit, offset int) ([]*entity.DocumentType, error) {
	var out []*entity.DocumentType
	err := r.c.do(func(t *tables) error {
		for _, dt := range t.docTypes {
			dt := dt
			out = append(out, &dt)
		}
		return nil
	})
	return page(out, func(a, b *entity.DocumentType) bool {
		if a.Number != b.Number {
			return a.Number < b.Number
		}
		return a.ID < b.ID
	}, limit, offset), err
}

func (r *DocumentTypeRepo) Delete(_ context.Context, id string) error {
	return r.c.do(func(t *tables) error {
		if _, ok := t.docTypes[id]; !ok {
			return domain.ErrNotFound
		}
		delete(t.docTypes, id)
		t.cascadeDocumentsWhere(func(d entity.Document) bool { return d.TypeID == id })
		return nil
	})
}

// DocumentRepo documentos en memoria.
type DocumentRepo struct{ c conn }

func (r *DocumentRepo) Create(_ context.Context, doc *entity.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	return r.c.do(func(t *tables) error {
		if _, ok := t.documents[doc.ID]; ok {
			return domain.ErrDuplicate
		}
		if err := t.checkDocumentRefs(doc); err != nil {
			return err
		}
		if t.documentKeyTaken(doc.TypeID, doc.Number, doc.FiscalYear, doc.ID) {
			return domain.ErrDocumentAlreadyRegistered
		}
		if doc.CreationDate.IsZero() {
			doc.CreationDate = entity.DateOnly(r.c.s.now())
		}
		stored := *doc
		stored.Type = nil
		t.documents[doc.ID] = stored
		return nil
	})
}

func (r *DocumentRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	var out *entity.Document
	err := r.c.do(func(t *tables) error {
		if d, ok := t.documents[id]; ok {
			out = t.withType(d)
		}
		return nil
	})
	return out, err
}

// Update reemplaza el documento conservando su fecha de alta.
func (r *DocumentRepo) Update(_ context.Context, doc *entity.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	return r.c.do(func(t *tables) error {
		prev, ok := t.documents[doc.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if err := t.checkDocumentRefs(doc); err != nil {
			return err
		}
		if t.documentKeyTaken(doc.TypeID, doc.Number, doc.FiscalYear, doc.ID) {
			return domain.ErrDocumentAlreadyRegistered
		}
		doc.CreationDate = prev.CreationDate
		stored := *doc
		stored.Type = nil
		t.documents[doc.ID] = stored
		return nil
	})
}

func (r *DocumentRepo) List(_ context.Context, f repository.DocumentFilter, limit, offset int) ([]*entity.Document, error) {
	var out []*entity.Document
	err := r.c.do(func(t *tables) error {
		for _, d := range t.documents {
			if (f.TypeID != "" && d.TypeID != f.TypeID) ||
				(f.SectorID != "" && d.SectorID != f.SectorID) ||
				(f.OwnerID != "" && d.OwnerID != f.OwnerID) ||
				(f.FiscalYear != "" && d.FiscalYear != f.FiscalYear) {
				continue
			}
			out = append(out, t.withType(d))
		}
		return nil
	})
	return page(out, func(a, b *entity.Document) bool {
		if a.FiscalYear != b.FiscalYear {
			return a.FiscalYear > b.FiscalYear
		}
		if a.Number != b.Number {
			return a.Number > b.Number
		}
		return a.ID < b.ID
	}, limit, offset), err
}

func (r *DocumentRepo) Delete(_ context.Context, id string) error {
	return r.c.do(func(t *tables) error {
		if _, ok := t.documents[id]; !ok {
			return domain.ErrNotFound
		}
		t.cascadeDocument(id)
		return nil
	})
}

func (r *DocumentRepo) Exists(_ context.Context, typeID string, number int, fiscalYear, excludeID string) (bool, error) {
	var exists bool
	err := r.c.do(func(t *tables) error {
		exists = t.documentKeyTaken(typeID, number, fiscalYear, excludeID)
		return nil
	})
	return exists, err
}

// TransferRepo transferencias en memoria.
type TransferRepo struct{ c conn }

func (r *TransferRepo) Create(_ context.Context, tr *entity.Transfer) error {
	tr.ApplyDefaults()
	if err := tr.Validate(); err != nil {
		return err
	}
	return r.c.do(func(t *tables) error {
		if _, ok := t.transfers[tr.ID]; ok {
			return domain.ErrDuplicate
		}
		if err := t.checkTransferRefs(tr); err != nil {
			return err
		}
		t.transfers[tr.ID] = *tr
		return nil
	})
}

func (r *TransferRepo) GetByID(_ context.Context, id string) (*entity.Transfer, error) {
	var out *entity.Transfer
	err := r.c.do(func(t *tables) error {
		if tr, ok := t.transfers[id]; ok {
			out = &tr
		}
		return nil
	})
	return out, err
}

func (r *TransferRepo) Update(_ context.Context, tr *entity.Transfer) error {
	tr.ApplyDefaults()
	if err := tr.Validate(); err != nil {
		return err
	}
	return r.c.do(func(t *tables) error {
		prev, ok := t.transfers[tr.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if err := t.checkTransferRefs(tr); err != nil {
			return err
		}
		tr.CreatedAt = prev.CreatedAt
		t.transfers[tr.ID] = *tr
		return nil
	})
}

func (r *TransferRepo) List(_ context.Context, f repository.TransferFilter, limit, offset int) ([]*entity.Transfer, error) {
	var out []*entity.Transfer
	err := r.c.do(func(t *tables) error {
		for _, tr := range t.transfers {
			tr := tr
			if (f.DocumentID != "" && tr.DocumentID != f.DocumentID) ||
				(f.SenderID != "" && tr.SenderID != f.SenderID) ||
				(f.ReceiverID != "" && tr.ReceiverID != f.ReceiverID) ||
				(f.State != "" && tr.State != f.State) {
				continue
			}
			out = append(out, &tr)
		}
		return nil
	})
	return page(out, func(a, b *entity.Transfer) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	}, limit, offset), err
}

func (r *TransferRepo) Delete(_ context.Context, id string) error {
	return r.c.do(func(t *tables) error {
		if _, ok := t.transfers[id]; !ok {
			return domain.ErrNotFound
		}
		delete(t.transfers, id)
		return nil
	})
}

// UserRepo directorio de usuarios en memoria.
type UserRepo struct{ c conn }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.c.do(func(t *tables) error {
		for _, existing := range t.users {
			if existing.ID == u.ID || existing.Username == u.Username {
				return domain.ErrEmailAlreadyExists
			}
		}
		t.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.c.do(func(t *tables) error {
		if u, ok := t.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.c.do(func(t *tables) error {
		for _, u := range t.users {
			u := u
			if u.Username == username {
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	err := r.c.do(func(t *tables) error {
		for _, u := range t.users {
			u := u
			out = append(out, &u)
		}
		return nil
	})
	return page(out, func(a, b *entity.User) bool { return a.Username < b.Username }, limit, offset), err
}

func (r *UserRepo) UpdateStatus(_ context.Context, id, status string) error {
	return r.c.do(func(t *tables) error {
		u, ok := t.users[id]
		if !ok {
			return domain.ErrNotFound
		}
		u.Status = status
		u.UpdatedAt = r.c.s.now()
		t.users[id] = u
		return nil
	})
}

// Delete borra el usuario y en cascada sus documentos y las transferencias donde participa.
func (r *UserRepo) Delete(_ context.Context, id string) error {
	return r.c.do(func(t *tables) error {
		if _, ok := t.users[id]; !ok {
			return domain.ErrNotFound
		}
		delete(t.users, id)
		t.cascadeDocumentsWhere(func(d entity.Document) bool { return d.OwnerID == id })
		for tid, tr := range t.transfers {
			if tr.SenderID == id || tr.ReceiverID == id {
				delete(t.transfers, tid)
			}
		}
		return nil
	})
}
