package chat

import (
	"context"
	"time"

	"taborra-server/whatsapp-bridge/internal/utils/platformerrors"
)

// SessionWindow is the inactivity threshold that decides whether an inbound
// message continues an existing conversation or starts a new one.
const SessionWindow = 30 * time.Minute

// Conversation is a bounded session scoping a transcript for one user.
// Staleness is time-computed from StartedAt; IsActive is written at creation
// and never flipped by this subsystem.
type Conversation struct {
	ID        uint
	UserID    uint
	StartedAt time.Time
	EndedAt   *time.Time
	IsActive  bool
}

// Repository defines storage operations for conversations and their turns.
type Repository interface {
	// FindActiveSince returns the most recently started active conversation
	// for the user with StartedAt >= since, together with its transcript in
	// timestamp order. Returns (nil, nil, nil) when none qualifies.
	FindActiveSince(ctx context.Context, userID uint, since time.Time) (*Conversation, Transcript, error)
	// Create inserts a new active conversation starting at startedAt and
	// returns it with its generated identity.
	Create(ctx context.Context, userID uint, startedAt time.Time) (*Conversation, error)
	// AppendTurns inserts the given turns in one transaction.
	AppendTurns(ctx context.Context, conversationID uint, turns Transcript) error
}

// Service implements the conversation session policy.
type Service struct {
	repo Repository
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ResolveActiveConversation returns the conversation an inbound message at
// `now` belongs to. A conversation started within the session window is
// reused with its transcript; otherwise a fresh conversation is created and
// paired with an empty transcript.
func (s *Service) ResolveActiveConversation(ctx context.Context, userID uint, now time.Time) (*Conversation, Transcript, error) {
	windowStart := now.Add(-SessionWindow)

	conv, transcript, err := s.repo.FindActiveSince(ctx, userID, windowStart)
	if err != nil {
		return nil, nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to resolve active conversation")
	}
	if conv != nil {
		return conv, transcript, nil
	}

	conv, err = s.repo.Create(ctx, userID, now)
	if err != nil {
		return nil, nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create conversation")
	}
	return conv, Transcript{}, nil
}

// AppendTurns persists the turns produced by one inbound event. Callers pass
// only the newly produced turns, never the accumulated transcript.
func (s *Service) AppendTurns(ctx context.Context, conversationID uint, turns Transcript) error {
	if len(turns) == 0 {
		return nil
	}
	if err := s.repo.AppendTurns(ctx, conversationID, turns); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to append turns")
	}
	return nil
}
