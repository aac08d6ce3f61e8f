package session

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s := New()
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, PageSplash, s.Page)
	assert.Equal(t, TabHome, s.Tab)
	assert.Equal(t, StepMenu, s.Quiz.Step)
	assert.False(t, s.Authenticated)
	assert.NotEqual(t, New().ID, s.ID)
}

func TestSession_Onboarding(t *testing.T) {
	s := New()

	require.NoError(t, s.Apply(ActionGetStarted, ""))
	assert.Equal(t, PageOnboarding, s.Page)
	assert.Equal(t, OnboardingSteps[0].Title, s.CurrentOnboardingStep().Title)

	for i := 1; i < len(OnboardingSteps); i++ {
		require.NoError(t, s.Apply(ActionOnboardingNext, ""))
		assert.Equal(t, i, s.OnboardingStep)
		assert.Equal(t, PageOnboarding, s.Page)
	}
	require.NoError(t, s.Apply(ActionOnboardingNext, ""))
	assert.Equal(t, PageWelcome, s.Page)
	assert.True(t, s.OnboardingComplete)
}

func TestSession_OnboardingSkip(t *testing.T) {
	s := New()
	require.NoError(t, s.Apply(ActionGetStarted, ""))
	require.NoError(t, s.Apply(ActionOnboardingSkip, ""))
	assert.Equal(t, PageWelcome, s.Page)
	assert.True(t, s.OnboardingComplete)

	s.Logout()
	require.NoError(t, s.Apply(ActionGetStarted, ""))
	assert.Equal(t, PageWelcome, s.Page, "completed onboarding is not shown again")
}

func TestSession_AuthPages(t *testing.T) {
	s := New()
	s.Page = PageWelcome

	require.NoError(t, s.Apply(ActionToSignup, ""))
	assert.Equal(t, PageSignup, s.Page)
	require.NoError(t, s.Apply(ActionToLogin, ""))
	assert.Equal(t, PageLogin, s.Page)
	require.NoError(t, s.Apply(ActionBack, ""))
	assert.Equal(t, PageWelcome, s.Page)

	err := s.Apply(ActionOnboardingNext, "")
	assert.ErrorIs(t, err, ErrInvalidAction)
	var aerr *ActionError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, PageWelcome, aerr.Page)

	assert.ErrorIs(t, s.Apply("dance", ""), ErrUnknownAction)
}

func TestSession_SignupNicknameLogout(t *testing.T) {
	s := New()
	s.Page = PageSignup

	s.SignupSucceeded("a@x.com", "Ada Lovelace")
	assert.True(t, s.Authenticated)
	assert.Equal(t, PageNamePrompt, s.Page)
	assert.Equal(t, "Ada Lovelace", s.DisplayName())

	require.NoError(t, s.SetNickname("  Ada "))
	assert.Equal(t, PageApp, s.Page)
	assert.Equal(t, "Ada", s.DisplayName())

	require.NoError(t, s.Apply(ActionSelectTab, string(TabQuiz)))
	assert.Equal(t, TabQuiz, s.Tab)
	assert.ErrorIs(t, s.Apply(ActionSelectTab, "music"), ErrUnknownTab)

	require.NoError(t, s.Apply(ActionLogout, ""))
	assert.False(t, s.Authenticated)
	assert.Empty(t, s.Email)
	assert.Equal(t, PageSplash, s.Page)
	assert.Equal(t, TabHome, s.Tab)
	assert.ErrorIs(t, s.SetNickname("x"), ErrUnauthenticated)
	assert.ErrorIs(t, s.SelectTab(TabQuiz), ErrUnauthenticated)
}

func TestSession_BlankNicknameKeepsName(t *testing.T) {
	s := New()
	s.SignupSucceeded("a@x.com", "Ada Lovelace")
	require.NoError(t, s.SetNickname(""))
	assert.Equal(t, "Ada Lovelace", s.DisplayName())
	assert.Equal(t, PageApp, s.Page)
}

func TestSession_LoginResetsQuiz(t *testing.T) {
	s := New()
	require.NoError(t, s.Quiz.StartManual())

	s.LoginSucceeded("a@x.com", "Ada")
	assert.Equal(t, PageApp, s.Page)
	assert.Equal(t, StepMenu, s.Quiz.Step)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	s := New()
	s.LoginSucceeded("a@x.com", "Ada")
	require.NoError(t, s.Quiz.Play(sampleQuiz()))
	require.NoError(t, s.Quiz.Answer(2, "B"))
	require.NoError(t, store.Save(ctx, s))

	loaded, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", loaded.Email)
	assert.Equal(t, StepPlay, loaded.Quiz.Step)
	assert.Equal(t, "B", loaded.Quiz.Answers[2])
	assert.Len(t, loaded.Quiz.Quiz.Questions, 4)

	loaded.Nickname = "changed"
	again, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Nickname, "stored sessions are copies")

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	s := New()
	require.NoError(t, store.Save(ctx, s))

	now = now.Add(30 * time.Second)
	_, err := store.Get(ctx, s.ID)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_SaveSweepsExpired(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	for i := 0; i < 10; i++ {
		require.NoError(t, store.Save(ctx, New()))
	}
	assert.Equal(t, 10, store.Len())

	now = now.Add(2 * time.Minute)
	fresh := New()
	require.NoError(t, store.Save(ctx, fresh))
	assert.Equal(t, 1, store.Len())

	// The next sweep waits half a ttl.
	now = now.Add(10 * time.Second)
	require.NoError(t, store.Save(ctx, New()))
	assert.Equal(t, 2, store.Len())

	_, err := store.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestManager_Load(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(NewMemoryStore(time.Hour), slog.New(slog.DiscardHandler))

	s, created, err := manager.Load(ctx, "")
	require.NoError(t, err)
	assert.True(t, created)
	require.NoError(t, manager.Save(ctx, s))

	loaded, created, err := manager.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, s.ID, loaded.ID)

	require.NoError(t, manager.Destroy(ctx, s.ID))
	fresh, created, err := manager.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, s.ID, fresh.ID)
}
