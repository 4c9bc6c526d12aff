// Package state holds the process-wide authentication state container. The
// container is explicit and injectable: there is no package-level instance,
// callers pass the Store to whatever needs to observe it.
package state

import (
	"context"

	"github.com/gestion-esports/account-system/internal/core/domain"
	"github.com/gestion-esports/account-system/internal/core/usecase"
)

// State is the observable snapshot of the auth lifecycle.
type State struct {
	IsAuthenticated bool
	User            *domain.User
	Loading         bool
	Err             string
}

type loginExecutor interface {
	Execute(ctx context.Context, in usecase.LoginInput) (*domain.User, error)
}

type registerExecutor interface {
	Execute(ctx context.Context, in usecase.RegisterInput) (*domain.User, error)
}

type logoutExecutor interface {
	Execute(ctx context.Context) error
}

// Store serializes every state mutation through a single goroutine, so
// interleaved operations (a login racing a heartbeat-triggered logout, say)
// apply in a deterministic order. Each operation walks
// pending → fulfilled | rejected; the store never reaches a terminal state
// and keeps accepting operations after any outcome.
type Store struct {
	login    loginExecutor
	register registerExecutor
	logout   logoutExecutor

	mutations chan func(*State)
	snapshots chan chan State
	watchers  chan chan State
	done      chan struct{}
}

// New starts the store's mutation loop. Close releases it.
func New(login loginExecutor, register registerExecutor, logout logoutExecutor) *Store {
	s := &Store{
		login:     login,
		register:  register,
		logout:    logout,
		mutations: make(chan func(*State)),
		snapshots: make(chan chan State),
		watchers:  make(chan chan State),
		done:      make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Store) run() {
	var (
		st   State
		subs []chan State
	)
	for {
		select {
		case <-s.done:
			for _, sub := range subs {
				close(sub)
			}
			return
		case mutate := <-s.mutations:
			mutate(&st)
			for _, sub := range subs {
				// Lagging subscribers miss intermediate states rather
				// than stalling the loop.
				select {
				case sub <- st:
				default:
				}
			}
		case reply := <-s.snapshots:
			reply <- st
		case sub := <-s.watchers:
			subs = append(subs, sub)
		}
	}
}

func (s *Store) apply(mutate func(*State)) {
	select {
	case s.mutations <- mutate:
	case <-s.done:
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	reply := make(chan State, 1)
	select {
	case s.snapshots <- reply:
		return <-reply
	case <-s.done:
		return State{}
	}
}

// Subscribe returns a channel that receives the state after every
// transition. The channel closes when the store closes.
func (s *Store) Subscribe() <-chan State {
	sub := make(chan State, 16)
	select {
	case s.watchers <- sub:
	case <-s.done:
		close(sub)
	}
	return sub
}

// Close stops the mutation loop and closes all subscriptions.
func (s *Store) Close() {
	close(s.done)
}

// Login runs the login operation: pending, then fulfilled or rejected. The
// returned error mirrors what was recorded in the state.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.apply(pending)

	user, err := s.login.Execute(ctx, usecase.LoginInput{Email: email, Password: password})
	if err != nil {
		s.apply(rejected(messageOr(err, "login failed")))
		return err
	}

	s.apply(func(st *State) {
		st.Loading = false
		st.IsAuthenticated = true
		st.User = user
	})
	return nil
}

// Register runs the registration operation; a fulfilled registration logs
// the new user in.
func (s *Store) Register(ctx context.Context, email, password, username string) error {
	s.apply(pending)

	user, err := s.register.Execute(ctx, usecase.RegisterInput{
		Email:    email,
		Password: password,
		Username: username,
	})
	if err != nil {
		s.apply(rejected(messageOr(err, "registration failed")))
		return err
	}

	s.apply(func(st *State) {
		st.Loading = false
		st.IsAuthenticated = true
		st.User = user
	})
	return nil
}

// Logout runs the logout operation. A rejected logout still clears the
// user: once the client has dropped its credentials the UI must treat the
// session as gone, whatever the backend answered. The failure is only kept
// as the displayable error.
func (s *Store) Logout(ctx context.Context) error {
	s.apply(pending)

	err := s.logout.Execute(ctx)
	s.apply(func(st *State) {
		st.Loading = false
		st.IsAuthenticated = false
		st.User = nil
		if err != nil {
			st.Err = messageOr(err, "logout failed")
		}
	})
	return err
}

func pending(st *State) {
	st.Loading = true
	st.Err = ""
}

func rejected(msg string) func(*State) {
	return func(st *State) {
		st.Loading = false
		st.Err = msg
	}
}

func messageOr(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
