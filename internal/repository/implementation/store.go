package implementation

import (
	"context"
	"errors"

	"ai-workspace-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormStore holds the queries every table shares. E is the domain entity and
// M its persisted model; toModel and toEntity convert between them.
type gormStore[E any, M any] struct {
	db       *gorm.DB
	toModel  func(*E) *M
	toEntity func(*M) *E
}

func newGormStore[E any, M any](db *gorm.DB, toModel func(*E) *M, toEntity func(*M) *E) gormStore[E, M] {
	return gormStore[E, M]{db: db, toModel: toModel, toEntity: toEntity}
}

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Create inserts the row and copies generated fields back into e.
func (s gormStore[E, M]) Create(ctx context.Context, e *E) error {
	m := s.toModel(e)
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*e = *s.toEntity(m)
	return nil
}

func (s gormStore[E, M]) Update(ctx context.Context, e *E) error {
	m := s.toModel(e)
	if err := s.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*e = *s.toEntity(m)
	return nil
}

func (s gormStore[E, M]) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(new(M), "id = ?", id).Error
}

// FindOne returns nil, nil when nothing matches.
func (s gormStore[E, M]) FindOne(ctx context.Context, specs ...specification.Specification) (*E, error) {
	m := new(M)
	if err := applySpecifications(s.db.WithContext(ctx), specs...).First(m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return s.toEntity(m), nil
}

func (s gormStore[E, M]) FindAll(ctx context.Context, specs ...specification.Specification) ([]*E, error) {
	var models []*M
	if err := applySpecifications(s.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*E, len(models))
	for i, m := range models {
		out[i] = s.toEntity(m)
	}
	return out, nil
}

func (s gormStore[E, M]) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(s.db.WithContext(ctx).Model(new(M)), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// deleteWhere removes every row matching the condition.
func (s gormStore[E, M]) deleteWhere(ctx context.Context, query string, args ...interface{}) error {
	return s.db.WithContext(ctx).Where(query, args...).Delete(new(M)).Error
}

// updateColumn sets one column of the row with the given id.
func (s gormStore[E, M]) updateColumn(ctx context.Context, id uuid.UUID, column string, value interface{}) error {
	return s.db.WithContext(ctx).Model(new(M)).Where("id = ?", id).UpdateColumn(column, value).Error
}
