package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStore_Lifecycle(t *testing.T) {
	store := NewStore()

	_, ok := store.Get(1)
	require.False(t, ok)
	require.Equal(t, StateNone, store.State(1))

	store.SetState(1, StateLogin)
	session, ok := store.Get(1)
	require.True(t, ok)
	require.Equal(t, StateLogin, session.State)

	store.Update(1, func(s *Session) {
		s.State = StatePassword
		s.Login = "trader"
		s.Attempts++
	})
	session, _ = store.Get(1)
	require.Equal(t, StatePassword, session.State)
	require.Equal(t, "trader", session.Login)
	require.Equal(t, 1, session.Attempts)

	store.Reset(1, StateLogin)
	session, _ = store.Get(1)
	require.Equal(t, Session{State: StateLogin}, session)

	store.Clear(1)
	_, ok = store.Get(1)
	require.False(t, ok)
	require.Zero(t, store.Len())
}

func TestStore_GetReturnsCopy(t *testing.T) {
	store := NewStore()
	store.SetState(1, StateMainMenu)

	session, _ := store.Get(1)
	session.State = StateAdminMenu

	require.Equal(t, StateMainMenu, store.State(1))
}

func TestStore_Concurrent(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			store.SetState(id%5, StateMainMenu)
			store.Update(id%5, func(s *Session) { s.Attempts++ })
			_ = store.State(id % 5)
		}(int64(i))
	}
	wg.Wait()

	total := 0
	for id := int64(0); id < 5; id++ {
		session, ok := store.Get(id)
		require.True(t, ok)
		total += session.Attempts
	}
	require.Equal(t, 50, total)
}

func TestState_String(t *testing.T) {
	require.Equal(t, "main_menu", StateMainMenu.String())
	require.Equal(t, "unknown", State(99).String())
}
