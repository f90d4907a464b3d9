package userrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"taborra-server/whatsapp-bridge/internal/domain/user"
	"taborra-server/whatsapp-bridge/internal/infrastructure/database/dbschema"
	"taborra-server/whatsapp-bridge/internal/utils/platformerrors"
)

type UserGormRepository struct {
	db *gorm.DB
}

var _ user.Repository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *gorm.DB) user.Repository {
	return &UserGormRepository{db: db}
}

func (repo *UserGormRepository) FindByPhone(ctx context.Context, phone string) (*user.User, error) {
	var entity dbschema.User
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Where("phone = ?", phone).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find user by phone",
			err,
			"",
		)
	}
	return entity.EtoD(), nil
}

func (repo *UserGormRepository) CreateIfAbsent(ctx context.Context, usr *user.User) (*user.User, error) {
	schemaUser := dbschema.NewSchemaUser(usr)

	// Insert-if-absent: a concurrent registration for the same phone makes
	// this a no-op and the re-read below returns the winning row.
	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone"}},
			DoNothing: true,
		}).
		Create(schemaUser).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to register user",
			err,
			"",
		)
	}

	// Re-read on the write source so the freshly committed row is visible.
	var persisted dbschema.User
	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("phone = ?", schemaUser.Phone).
		First(&persisted).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to reload registered user",
			err,
			"",
		)
	}

	return persisted.EtoD(), nil
}
