package unitofwork

import (
	"context"

	"ai-workspace-be/pkg/database"
)

type RepositoryFactoryImpl struct {
	gateway *database.Gateway
}

func NewRepositoryFactory(gateway *database.Gateway) RepositoryFactory {
	return &RepositoryFactoryImpl{
		gateway: gateway,
	}
}

func (f *RepositoryFactoryImpl) NewUnitOfWork(ctx context.Context) (UnitOfWork, error) {
	db, err := f.gateway.DB(ctx)
	if err != nil {
		return nil, err
	}
	return NewUnitOfWork(db), nil
}
