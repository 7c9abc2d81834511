package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

var errRejected = errors.New("rejected")

func seedSession(t *testing.T, store *Store, max int) *entities.InterviewSession {
	t.Helper()

	session := &entities.InterviewSession{
		ID:              uuid.New(),
		BotID:           uuid.New(),
		AccessToken:     uuid.NewString(),
		Status:          entities.SessionStatusActive,
		ExpiresAt:       time.Now().Add(time.Hour),
		MaxParticipants: max,
		Questions:       []entities.CompiledQuestion{{Index: 0, Text: "Q1"}},
	}
	require.NoError(t, store.Sessions().Create(context.Background(), session))
	return session
}

func TestSessions_DuplicateToken(t *testing.T) {
	store := NewStore()
	session := seedSession(t, store, 1)

	err := store.Sessions().Create(context.Background(), &entities.InterviewSession{
		ID:          uuid.New(),
		AccessToken: session.AccessToken,
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestSessions_ReturnsCopies(t *testing.T) {
	store := NewStore()
	session := seedSession(t, store, 1)

	got, err := store.Sessions().FindByID(context.Background(), session.ID)
	require.NoError(t, err)
	got.Questions[0].Text = "mutated"
	got.Status = entities.SessionStatusCompleted

	again, err := store.Sessions().FindByAccessToken(context.Background(), session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "Q1", again.Questions[0].Text)
	assert.Equal(t, entities.SessionStatusActive, again.Status)
}

func TestAdmitParticipant_FailedCheckLeavesNoTrace(t *testing.T) {
	store := NewStore()
	session := seedSession(t, store, 1)
	participant := &entities.ParticipantSession{ID: uuid.New()}

	_, err := store.Sessions().AdmitParticipant(context.Background(), session.ID, func(*entities.InterviewSession) error {
		return errRejected
	}, participant, time.Now())
	assert.ErrorIs(t, err, errRejected)

	got, err := store.Sessions().FindByID(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Zero(t, got.CurrentParticipants)

	_, err = store.Participants().FindByID(context.Background(), participant.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAdmitParticipant_CountsAndStores(t *testing.T) {
	store := NewStore()
	session := seedSession(t, store, 2)
	participant := &entities.ParticipantSession{ID: uuid.New(), JoinedAt: time.Now()}

	admitted, err := store.Sessions().AdmitParticipant(context.Background(), session.ID, func(*entities.InterviewSession) error {
		return nil
	}, participant, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, admitted.CurrentParticipants)

	participants, err := store.Participants().FindBySessionID(context.Background(), session.ID)
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, participant.ID, participants[0].ID)
}

func TestSaveProgress_VersionConflict(t *testing.T) {
	store := NewStore()
	session := seedSession(t, store, 1)
	participant := &entities.ParticipantSession{ID: uuid.New()}
	_, err := store.Sessions().AdmitParticipant(context.Background(), session.ID, func(*entities.InterviewSession) error {
		return nil
	}, participant, time.Now())
	require.NoError(t, err)

	first, err := store.Participants().FindByID(context.Background(), participant.ID)
	require.NoError(t, err)
	second, err := store.Participants().FindByID(context.Background(), participant.ID)
	require.NoError(t, err)

	first.CurrentQuestionIndex = 1
	require.NoError(t, store.Participants().SaveProgress(context.Background(), first))
	assert.Equal(t, 1, first.Version)

	second.CurrentQuestionIndex = 1
	assert.ErrorIs(t, store.Participants().SaveProgress(context.Background(), second), entities.ErrVersionConflict)
}

func TestCompleteParticipant_CompletesSession(t *testing.T) {
	store := NewStore()
	session := seedSession(t, store, 1)
	participant := &entities.ParticipantSession{ID: uuid.New()}
	_, err := store.Sessions().AdmitParticipant(context.Background(), session.ID, func(*entities.InterviewSession) error {
		return nil
	}, participant, time.Now())
	require.NoError(t, err)

	now := time.Now()
	participant.Complete(now)
	updated, err := store.Participants().CompleteParticipant(context.Background(), participant, now)
	require.NoError(t, err)
	assert.Equal(t, entities.SessionStatusCompleted, updated.Status)
	assert.Equal(t, 1, updated.CompletedParticipants)

	stored, err := store.Participants().FindByID(context.Background(), participant.ID)
	require.NoError(t, err)
	assert.True(t, stored.Completed)
}

func TestExpireDue(t *testing.T) {
	store := NewStore()
	session := seedSession(t, store, 1)

	count, err := store.Sessions().ExpireDue(context.Background(), session.ExpiresAt)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	expired, err := store.Sessions().MarkExpired(context.Background(), session.ID)
	require.NoError(t, err)
	assert.False(t, expired)
}
