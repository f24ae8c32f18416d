package stores

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/krishi-mitra/internal/domain"
)

// Demo-mode defaults applied on login and signup.
const (
	DemoName        = "Farmer User"
	SignupName      = "NA/NA"
	DefaultLocation = "Agartala, Tripura"
)

// DemoCrops are assigned to every demo-mode login.
var DemoCrops = []string{"Rice", "Tomato"}

// LoginForm is the demo login. Credentials are never verified; any non-empty
// phone/password pair succeeds.
type LoginForm struct {
	Phone    string
	Password string
}

// SignupForm carries the signup fields. Crops is a comma separated list.
type SignupForm struct {
	Phone    string
	Password string
	Location string
	Crops    string
	History  string
}

// IdentityStore holds the signed-in profile. This is demo-mode identity, not
// authentication.
type IdentityStore struct {
	kv KV

	mu   sync.RWMutex
	user *domain.UserProfile
}

// NewIdentityStore restores the persisted profile, if any. A malformed stored
// value is treated as signed out.
func NewIdentityStore(ctx context.Context, kv KV) (*IdentityStore, error) {
	s := &IdentityStore{kv: kv}
	v, ok, err := kv.Get(ctx, KeyUser)
	if err != nil {
		return nil, err
	}
	if ok {
		var u domain.UserProfile
		if err := json.Unmarshal([]byte(v), &u); err != nil {
			log.Warn().Err(err).Msg("ignoring malformed stored profile")
		} else {
			s.user = &u
		}
	}
	return s, nil
}

// Current returns a copy of the signed-in profile.
func (s *IdentityStore) Current() (domain.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.UserProfile{}, false
	}
	u := *s.user
	u.Crops = append([]string(nil), s.user.Crops...)
	return u, true
}

// Authenticated reports whether a profile is present.
func (s *IdentityStore) Authenticated() bool {
	_, ok := s.Current()
	return ok
}

// Login signs in with the demo profile.
func (s *IdentityStore) Login(ctx context.Context, f LoginForm) (domain.UserProfile, error) {
	if strings.TrimSpace(f.Phone) == "" || strings.TrimSpace(f.Password) == "" {
		return domain.UserProfile{}, ErrEmptyCredentials
	}
	return s.save(ctx, domain.UserProfile{
		Name:     DemoName,
		Phone:    strings.TrimSpace(f.Phone),
		Location: DefaultLocation,
		Crops:    append([]string(nil), DemoCrops...),
	})
}

// Signup creates a profile from the signup form.
func (s *IdentityStore) Signup(ctx context.Context, f SignupForm) (domain.UserProfile, error) {
	if strings.TrimSpace(f.Phone) == "" || strings.TrimSpace(f.Password) == "" {
		return domain.UserProfile{}, ErrEmptyCredentials
	}
	loc := strings.TrimSpace(f.Location)
	if loc == "" {
		loc = DefaultLocation
	}
	return s.save(ctx, domain.UserProfile{
		Name:     SignupName,
		Phone:    strings.TrimSpace(f.Phone),
		Location: loc,
		Crops:    SplitCrops(f.Crops),
		History:  strings.TrimSpace(f.History),
	})
}

// Logout deletes the stored profile.
func (s *IdentityStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(ctx, KeyUser); err != nil {
		return err
	}
	s.user = nil
	return nil
}

func (s *IdentityStore) save(ctx context.Context, u domain.UserProfile) (domain.UserProfile, error) {
	u.ID = uuid.NewString()
	b, err := json.Marshal(u)
	if err != nil {
		return domain.UserProfile{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Set(ctx, KeyUser, string(b)); err != nil {
		return domain.UserProfile{}, err
	}
	s.user = &u
	return u, nil
}

// SplitCrops splits a comma separated crop list, trimming entries and
// dropping empty ones.
func SplitCrops(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
