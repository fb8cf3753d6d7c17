package session

import "sync"

// User is the identity slice of the session state.
type User struct {
	ID          string `json:"user_id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	FullName    string `json:"full_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Snapshot is an immutable copy of the session state at one point in time.
// Subscribers receive snapshots, never live references.
type Snapshot struct {
	IsLoading              bool
	IsAuthenticated        bool
	User                   User
	AccessToken            string
	RefreshToken           string
	HasCompletedOnboarding bool
	IsNewUser              bool
}

// State is a thread-safe session state container. Construct one per app
// instance with [NewState]; there is no package-level singleton, so tests
// and multi-account scenarios get independent containers.
type State struct {
	mu   sync.RWMutex
	snap Snapshot

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// NewState returns an empty, signed-out state.
func NewState() *State {
	return &State{
		subs: make(map[int]func(Snapshot)),
	}
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// SetLoading flips the loading flag.
func (s *State) SetLoading(loading bool) {
	s.mu.Lock()
	if s.snap.IsLoading == loading {
		s.mu.Unlock()
		return
	}
	s.snap.IsLoading = loading
	snap := s.snap
	s.mu.Unlock()

	s.notify(snap)
}

// SetSession marks the state authenticated with the given identity and
// tokens.
func (s *State) SetSession(user User, accessToken, refreshToken string) {
	s.mu.Lock()
	s.snap.IsAuthenticated = true
	s.snap.User = user
	s.snap.AccessToken = accessToken
	s.snap.RefreshToken = refreshToken
	snap := s.snap
	s.mu.Unlock()

	s.notify(snap)
}

// SetOnboarded flips the onboarding-completed flag.
func (s *State) SetOnboarded(done bool) {
	s.mu.Lock()
	if s.snap.HasCompletedOnboarding == done {
		s.mu.Unlock()
		return
	}
	s.snap.HasCompletedOnboarding = done
	snap := s.snap
	s.mu.Unlock()

	s.notify(snap)
}

// SetNewUser flips the new-user flag.
func (s *State) SetNewUser(isNew bool) {
	s.mu.Lock()
	if s.snap.IsNewUser == isNew {
		s.mu.Unlock()
		return
	}
	s.snap.IsNewUser = isNew
	snap := s.snap
	s.mu.Unlock()

	s.notify(snap)
}

// Reset returns the state to signed-out. The loading flag and onboarding
// flag are cleared too; a fresh sign-in rebuilds everything.
func (s *State) Reset() {
	s.mu.Lock()
	s.snap = Snapshot{}
	snap := s.snap
	s.mu.Unlock()

	s.notify(snap)
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned cancel function removes the subscription. Callbacks run
// synchronously on the mutating goroutine and must not block.
func (s *State) Subscribe(fn func(Snapshot)) func() {
	if s == nil || fn == nil {
		return func() {}
	}

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *State) notify(snap Snapshot) {
	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
