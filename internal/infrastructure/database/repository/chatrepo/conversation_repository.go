package chatrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"taborra-server/whatsapp-bridge/internal/domain/chat"
	"taborra-server/whatsapp-bridge/internal/infrastructure/database/dbschema"
	"taborra-server/whatsapp-bridge/internal/utils/platformerrors"
)

type ConversationGormRepository struct {
	db *gorm.DB
}

var _ chat.Repository = (*ConversationGormRepository)(nil)

func NewConversationGormRepository(db *gorm.DB) chat.Repository {
	return &ConversationGormRepository{db: db}
}

// FindActiveSince selects the most recently started active conversation in
// the window. Multiple qualifying rows should not happen when creation is
// serialized per user, but the ORDER BY guards the tie-break either way.
func (repo *ConversationGormRepository) FindActiveSince(ctx context.Context, userID uint, since time.Time) (*chat.Conversation, chat.Transcript, error) {
	var entity dbschema.Conversation
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Where("user_id = ? AND is_active = ? AND started_at >= ?", userID, true, since).
		Order("started_at DESC").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Clauses(dbresolver.Read).Order("timestamp ASC, id ASC")
		}).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find active conversation",
			err,
			"",
		)
	}
	return entity.EtoD(), dbschema.DecodeTranscript(entity.Messages), nil
}

func (repo *ConversationGormRepository) Create(ctx context.Context, userID uint, startedAt time.Time) (*chat.Conversation, error) {
	entity := dbschema.Conversation{
		UserID:    userID,
		StartedAt: startedAt,
		IsActive:  true,
	}
	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Create(&entity).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create conversation",
			err,
			"",
		)
	}
	return entity.EtoD(), nil
}

// AppendTurns inserts every turn as one row inside a single transaction with
// one commit at the end.
func (repo *ConversationGormRepository) AppendTurns(ctx context.Context, conversationID uint, turns chat.Transcript) error {
	rows := dbschema.EncodeTurns(conversationID, turns, time.Now().UTC())
	if len(rows) == 0 {
		return nil
	}

	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Transaction(func(tx *gorm.DB) error {
			return tx.Create(&rows).Error
		})
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to append turns",
			err,
			"",
		)
	}
	return nil
}
