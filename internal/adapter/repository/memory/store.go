// Package memory provides mutex-guarded in-process implementations of the
// domain repositories. It backs the memory storage driver and the usecase tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
	"github.com/johnquangdev/interview-assistant/internal/domain/repositories"
)

// Store holds bots, sessions and participants behind a single lock so that
// admission and completion are serialized the same way a row lock would.
type Store struct {
	mu           sync.RWMutex
	bots         map[uuid.UUID]*entities.Bot
	sessions     map[uuid.UUID]*entities.InterviewSession
	tokens       map[string]uuid.UUID
	participants map[uuid.UUID]*entities.ParticipantSession
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		bots:         make(map[uuid.UUID]*entities.Bot),
		sessions:     make(map[uuid.UUID]*entities.InterviewSession),
		tokens:       make(map[string]uuid.UUID),
		participants: make(map[uuid.UUID]*entities.ParticipantSession),
	}
}

// Bots returns the store as a BotRepository
func (s *Store) Bots() repositories.BotRepository { return botRepo{s} }

// Sessions returns the store as an InterviewSessionRepository
func (s *Store) Sessions() repositories.InterviewSessionRepository { return sessionRepo{s} }

// Participants returns the store as a ParticipantSessionRepository
func (s *Store) Participants() repositories.ParticipantSessionRepository { return participantRepo{s} }

type botRepo struct{ s *Store }

func (r botRepo) Create(_ context.Context, bot *entities.Bot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if bot.ID == uuid.Nil {
		bot.ID = uuid.New()
	}
	if _, exists := r.s.bots[bot.ID]; exists {
		return gorm.ErrDuplicatedKey
	}
	r.s.bots[bot.ID] = cloneBot(bot)
	return nil
}

func (r botRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Bot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	bot, ok := r.s.bots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneBot(bot), nil
}

func (r botRepo) FindByOwner(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]*entities.Bot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var bots []*entities.Bot
	for _, bot := range r.s.bots {
		if bot.CreatedBy == ownerID && bot.IsActive {
			bots = append(bots, cloneBot(bot))
		}
	}
	sort.SliceStable(bots, func(i, j int) bool {
		return bots[i].CreatedAt.After(bots[j].CreatedAt)
	})
	return paginate(bots, limit, offset), nil
}

type sessionRepo struct{ s *Store }

func (r sessionRepo) Create(_ context.Context, session *entities.InterviewSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if _, exists := r.s.tokens[session.AccessToken]; exists {
		return gorm.ErrDuplicatedKey
	}
	r.s.sessions[session.ID] = cloneSession(session)
	r.s.tokens[session.AccessToken] = session.ID
	return nil
}

func (r sessionRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.InterviewSession, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	session, ok := r.s.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneSession(session), nil
}

func (r sessionRepo) FindByAccessToken(_ context.Context, token string) (*entities.InterviewSession, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.tokens[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneSession(r.s.sessions[id]), nil
}

func (r sessionRepo) ExistsByAccessToken(_ context.Context, token string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.tokens[token]
	return ok, nil
}

func (r sessionRepo) List(_ context.Context, filters repositories.SessionFilters) ([]*entities.InterviewSession, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var sessions []*entities.InterviewSession
	for _, session := range r.s.sessions {
		if filters.CreatedBy != nil && session.CreatedBy != *filters.CreatedBy {
			continue
		}
		if filters.BotID != nil && session.BotID != *filters.BotID {
			continue
		}
		if filters.Status != nil && session.Status != *filters.Status {
			continue
		}
		sessions = append(sessions, cloneSession(session))
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	total := int64(len(sessions))
	return paginate(sessions, filters.Limit, filters.Offset), total, nil
}

func (r sessionRepo) CountByBotID(_ context.Context, botID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, session := range r.s.sessions {
		if session.BotID == botID {
			count++
		}
	}
	return count, nil
}

func (r sessionRepo) MarkExpired(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	session, ok := r.s.sessions[id]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	return session.Expire(), nil
}

func (r sessionRepo) ExpireDue(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var count int64
	for _, session := range r.s.sessions {
		if session.IsActive() && !now.Before(session.ExpiresAt) {
			session.Expire()
			count++
		}
	}
	return count, nil
}

func (r sessionRepo) AdmitParticipant(
	_ context.Context,
	sessionID uuid.UUID,
	check repositories.AdmissionCheck,
	participant *entities.ParticipantSession,
	now time.Time,
) (*entities.InterviewSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.sessions[sessionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	// Work on a copy so a failed check leaves no trace
	session := cloneSession(stored)
	if err := check(session); err != nil {
		return nil, err
	}

	session.IncrementParticipants()
	if participant.Completed {
		session.RecordCompletion(now)
	}
	session.UpdatedAt = now

	if participant.ID == uuid.Nil {
		participant.ID = uuid.New()
	}
	participant.SessionID = session.ID

	r.s.sessions[sessionID] = session
	r.s.participants[participant.ID] = cloneParticipant(participant)
	return cloneSession(session), nil
}

type participantRepo struct{ s *Store }

func (r participantRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.ParticipantSession, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	participant, ok := r.s.participants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneParticipant(participant), nil
}

func (r participantRepo) FindBySessionID(_ context.Context, sessionID uuid.UUID) ([]*entities.ParticipantSession, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var participants []*entities.ParticipantSession
	for _, p := range r.s.participants {
		if p.SessionID == sessionID {
			participants = append(participants, cloneParticipant(p))
		}
	}
	sort.SliceStable(participants, func(i, j int) bool {
		return participants[i].JoinedAt.Before(participants[j].JoinedAt)
	})
	return participants, nil
}

func (r participantRepo) SaveProgress(_ context.Context, participant *entities.ParticipantSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.participants[participant.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Version != participant.Version {
		return entities.ErrVersionConflict
	}

	participant.Version++
	participant.UpdatedAt = participant.LastActiveAt
	r.s.participants[participant.ID] = cloneParticipant(participant)
	return nil
}

func (r participantRepo) CompleteParticipant(_ context.Context, participant *entities.ParticipantSession, now time.Time) (*entities.InterviewSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.participants[participant.ID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if stored.Version != participant.Version {
		return nil, entities.ErrVersionConflict
	}
	session, ok := r.s.sessions[participant.SessionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	session.RecordCompletion(now)
	session.UpdatedAt = now

	participant.Version++
	participant.UpdatedAt = now
	r.s.participants[participant.ID] = cloneParticipant(participant)
	return cloneSession(session), nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func cloneBot(b *entities.Bot) *entities.Bot {
	c := *b
	c.ResearchQuestions = append(b.ResearchQuestions[:0:0], b.ResearchQuestions...)
	return &c
}

func cloneSession(s *entities.InterviewSession) *entities.InterviewSession {
	c := *s
	c.ResearchFocus = append(s.ResearchFocus[:0:0], s.ResearchFocus...)
	c.Questions = append(s.Questions[:0:0], s.Questions...)
	return &c
}

func cloneParticipant(p *entities.ParticipantSession) *entities.ParticipantSession {
	c := *p
	c.Responses = append(p.Responses[:0:0], p.Responses...)
	c.ClarifiedIndices = append(p.ClarifiedIndices[:0:0], p.ClarifiedIndices...)
	return &c
}
