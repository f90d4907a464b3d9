package chat_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taborra-server/whatsapp-bridge/internal/domain/chat"
)

// fakeRepository is an in-memory chat.Repository for exercising the session
// policy without a database.
type fakeRepository struct {
	conversations []chat.Conversation
	turns         map[uint]chat.Transcript
	nextID        uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		turns:  make(map[uint]chat.Transcript),
		nextID: 1,
	}
}

func (f *fakeRepository) FindActiveSince(_ context.Context, userID uint, since time.Time) (*chat.Conversation, chat.Transcript, error) {
	var latest *chat.Conversation
	for i := range f.conversations {
		conv := &f.conversations[i]
		if conv.UserID != userID || !conv.IsActive || conv.StartedAt.Before(since) {
			continue
		}
		if latest == nil || conv.StartedAt.After(latest.StartedAt) {
			latest = conv
		}
	}
	if latest == nil {
		return nil, nil, nil
	}
	copied := *latest
	return &copied, f.turns[latest.ID], nil
}

func (f *fakeRepository) Create(_ context.Context, userID uint, startedAt time.Time) (*chat.Conversation, error) {
	conv := chat.Conversation{
		ID:        f.nextID,
		UserID:    userID,
		StartedAt: startedAt,
		IsActive:  true,
	}
	f.nextID++
	f.conversations = append(f.conversations, conv)
	return &conv, nil
}

func (f *fakeRepository) AppendTurns(_ context.Context, conversationID uint, turns chat.Transcript) error {
	f.turns[conversationID] = append(f.turns[conversationID], turns...)
	return nil
}

func TestResolveActiveConversation_CreatesWhenWindowEmpty(t *testing.T) {
	repo := newFakeRepository()
	service := chat.NewService(repo)
	now := time.Now().UTC()

	conv, transcript, err := service.ResolveActiveConversation(context.Background(), 7, now)
	require.NoError(t, err)
	require.NotNil(t, conv)

	assert.Equal(t, uint(7), conv.UserID)
	assert.True(t, conv.IsActive)
	assert.Equal(t, now, conv.StartedAt)
	assert.Empty(t, transcript)
}

func TestResolveActiveConversation_ReusesConversationWithinWindow(t *testing.T) {
	repo := newFakeRepository()
	service := chat.NewService(repo)
	now := time.Now().UTC()

	existing, err := repo.Create(context.Background(), 7, now.Add(-10*time.Minute))
	require.NoError(t, err)
	seeded := chat.Transcript{
		chat.UserTurn("Hola", now.Add(-10*time.Minute)),
		chat.BotTurn("¡Hola! ¿En qué puedo ayudarte?", now.Add(-9*time.Minute)),
	}
	require.NoError(t, repo.AppendTurns(context.Background(), existing.ID, seeded))

	conv, transcript, err := service.ResolveActiveConversation(context.Background(), 7, now)
	require.NoError(t, err)

	assert.Equal(t, existing.ID, conv.ID)
	require.Len(t, transcript, 2)
	assert.Equal(t, chat.RoleUser, transcript[0].Role)
	assert.Equal(t, "Hola", transcript[0].Content)
	assert.Equal(t, chat.RoleBot, transcript[1].Role)
}

func TestResolveActiveConversation_ExpiredConversationStartsNewOne(t *testing.T) {
	repo := newFakeRepository()
	service := chat.NewService(repo)
	now := time.Now().UTC()

	expired, err := repo.Create(context.Background(), 7, now.Add(-40*time.Minute))
	require.NoError(t, err)

	conv, transcript, err := service.ResolveActiveConversation(context.Background(), 7, now)
	require.NoError(t, err)

	assert.NotEqual(t, expired.ID, conv.ID)
	assert.Empty(t, transcript)
}

func TestResolveActiveConversation_SameIDOnRepeatedCalls(t *testing.T) {
	repo := newFakeRepository()
	service := chat.NewService(repo)
	now := time.Now().UTC()

	first, _, err := service.ResolveActiveConversation(context.Background(), 7, now)
	require.NoError(t, err)
	second, _, err := service.ResolveActiveConversation(context.Background(), 7, now.Add(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.conversations, 1)
}

func TestResolveActiveConversation_PrefersMostRecentlyStarted(t *testing.T) {
	repo := newFakeRepository()
	service := chat.NewService(repo)
	now := time.Now().UTC()

	_, err := repo.Create(context.Background(), 7, now.Add(-20*time.Minute))
	require.NoError(t, err)
	newer, err := repo.Create(context.Background(), 7, now.Add(-5*time.Minute))
	require.NoError(t, err)

	conv, _, err := service.ResolveActiveConversation(context.Background(), 7, now)
	require.NoError(t, err)

	assert.Equal(t, newer.ID, conv.ID)
}

func TestAppendTurns_PersistsOnlyProvidedTurns(t *testing.T) {
	repo := newFakeRepository()
	service := chat.NewService(repo)
	now := time.Now().UTC()

	conv, _, err := service.ResolveActiveConversation(context.Background(), 7, now)
	require.NoError(t, err)

	turns := chat.Transcript{
		chat.UserTurn("Hola", now),
		chat.BotTurn("¡Hola!", now.Add(time.Second)),
	}
	require.NoError(t, service.AppendTurns(context.Background(), conv.ID, turns))

	assert.Len(t, repo.turns[conv.ID], 2)
}

func TestAppendTurns_EmptyIsNoOp(t *testing.T) {
	repo := newFakeRepository()
	service := chat.NewService(repo)

	require.NoError(t, service.AppendTurns(context.Background(), 1, nil))
	assert.Empty(t, repo.turns)
}
