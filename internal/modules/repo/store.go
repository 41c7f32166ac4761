package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entity is implemented by pointers to the persisted models.
type Entity[T any] interface {
	*T
	GetID() uuid.UUID
}

// Changes maps column names to the values a partial update writes. A nil
// value writes NULL.
type Changes map[string]any

// Store implements the persistence operations shared by every entity.
type Store[T any, P Entity[T]] struct {
	db     *gorm.DB
	desc   *Descriptor
	name   string
	scopes []func(*gorm.DB) *gorm.DB
}

type StoreOption func(*storeOptions)

type storeOptions struct {
	scopes []func(*gorm.DB) *gorm.DB
}

// WithSelectScope adds a scope to every select the store issues, e.g. a join
// with a related entity.
func WithSelectScope(scope func(*gorm.DB) *gorm.DB) StoreOption {
	return func(o *storeOptions) { o.scopes = append(o.scopes, scope) }
}

func NewStore[T any, P Entity[T]](db *gorm.DB, name string, desc *Descriptor, opts ...StoreOption) *Store[T, P] {
	o := storeOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T, P]{db: db, desc: desc, name: name, scopes: o.scopes}
}

// WithTx returns a copy of the store bound to tx.
func (s *Store[T, P]) WithTx(tx *gorm.DB) *Store[T, P] {
	cp := *s
	cp.db = tx
	return &cp
}

// Atomic runs fn inside a transaction scope. Called on a store that is
// already inside a transaction it opens a savepoint. The scope commits when
// fn returns nil and rolls back on an error or panic.
func (s *Store[T, P]) Atomic(ctx context.Context, fn func(tx *Store[T, P]) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(s.WithTx(tx))
	})
}

func (s *Store[T, P]) selectQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(new(T)).Scopes(s.scopes...)
}

func idEq(id uuid.UUID) clause.Expression {
	return clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}, Value: id}
}

func (s *Store[T, P]) retrieveOne(q *gorm.DB) (P, error) {
	var entry T
	if err := q.Take(&entry).Error; err != nil {
		return nil, mapError(s.name, err)
	}
	return P(&entry), nil
}

func (s *Store[T, P]) retrieveMany(q *gorm.DB) ([]T, error) {
	entries := make([]T, 0)
	if err := q.Find(&entries).Error; err != nil {
		return nil, mapError(s.name, err)
	}
	return entries, nil
}

// Create inserts entry after applying overrides and returns the reloaded row.
func (s *Store[T, P]) Create(ctx context.Context, entry P, overrides ...func(P)) (P, error) {
	for _, override := range overrides {
		override(entry)
	}

	var created P
	err := s.Atomic(ctx, func(tx *Store[T, P]) error {
		if err := tx.db.Omit(clause.Associations).Create(entry).Error; err != nil {
			return mapError(s.name, err)
		}
		var err error
		created, err = tx.RetrieveByID(ctx, entry.GetID())
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Store[T, P]) RetrieveByID(ctx context.Context, id uuid.UUID) (P, error) {
	return s.retrieveOne(s.selectQuery(ctx).Where(idEq(id)))
}

// RetrieveBy returns the first entry matching column = value.
func (s *Store[T, P]) RetrieveBy(ctx context.Context, column string, value any) (P, error) {
	return s.retrieveOne(s.selectQuery(ctx).Where(clause.Eq{
		Column: clause.Column{Table: clause.CurrentTable, Name: column},
		Value:  value,
	}))
}

// List returns every entry, unpaginated.
func (s *Store[T, P]) List(ctx context.Context) ([]T, error) {
	return s.retrieveMany(s.selectQuery(ctx))
}

// Paginate returns one page of entries. sorting and filtering may be nil.
// The total is counted with the same filtering applied.
func (s *Store[T, P]) Paginate(ctx context.Context, pagination Pagination, sorting, filtering Shaper) (*Page[T], error) {
	count := s.db.WithContext(ctx).Model(new(T))
	if present(filtering) {
		count = filtering.Apply(count, s.desc)
	}
	var total int64
	if err := count.Count(&total).Error; err != nil {
		return nil, mapError(s.name, err)
	}

	q := s.selectQuery(ctx).Limit(pagination.Limit()).Offset(pagination.Offset())
	if present(sorting) {
		q = sorting.Apply(q, s.desc)
	}
	if present(filtering) {
		q = filtering.Apply(q, s.desc)
	}
	entries, err := s.retrieveMany(q)
	if err != nil {
		return nil, err
	}

	return &Page[T]{Pagination: pagination, Total: total, Entries: entries}, nil
}

// Update writes changes merged with overrides to the entry with id and
// returns the reloaded row. Columns absent from changes are left untouched.
func (s *Store[T, P]) Update(ctx context.Context, id uuid.UUID, changes Changes, overrides ...Changes) (P, error) {
	values := make(map[string]any, len(changes))
	for k, v := range changes {
		values[k] = v
	}
	for _, o := range overrides {
		for k, v := range o {
			values[k] = v
		}
	}

	var updated P
	err := s.Atomic(ctx, func(tx *Store[T, P]) error {
		if len(values) > 0 {
			res := tx.db.Model(new(T)).Where(idEq(id)).Updates(values)
			if res.Error != nil {
				return mapError(s.name, res.Error)
			}
			if res.RowsAffected == 0 {
				return mapError(s.name, gorm.ErrRecordNotFound)
			}
		}
		var err error
		updated, err = tx.RetrieveByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Store[T, P]) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Atomic(ctx, func(tx *Store[T, P]) error {
		res := tx.db.Where(idEq(id)).Delete(new(T))
		if res.Error != nil {
			return mapError(s.name, res.Error)
		}
		if res.RowsAffected == 0 {
			return mapError(s.name, gorm.ErrRecordNotFound)
		}
		return nil
	})
}
