// Package memdb is an in-memory store with the same uniqueness and upsert
// rules as the PostgreSQL store. It backs `serve --in-memory` and the tests
// of the packages above the store.
package memdb

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/valeriaulyamaeva/resilience-tracker/internal/database"
	"github.com/valeriaulyamaeva/resilience-tracker/models"
)

type trackerKey struct {
	userID int
	month  time.Time
}

type Store struct {
	mu sync.Mutex

	nextID   int
	users    map[int]models.User
	profiles map[int]models.FinancialProfile
	members  map[int][]models.FamilyMember
	tracker  map[trackerKey]models.ResilienceTracker

	now func() time.Time
}

func New() *Store {
	return &Store{
		users:    make(map[int]models.User),
		profiles: make(map[int]models.FinancialProfile),
		members:  make(map[int][]models.FamilyMember),
		tracker:  make(map[trackerKey]models.ResilienceTracker),
		now:      time.Now,
	}
}

func (s *Store) id() int {
	s.nextID++
	return s.nextID
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return database.ErrDuplicateUsername
		}
		if u.Email == user.Email {
			return database.ErrDuplicateEmail
		}
	}
	user.ID = s.id()
	user.CreatedAt = s.now()
	s.users[user.ID] = *user
	return nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *Store) GetUserByID(_ context.Context, id int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &u, nil
}

func (s *Store) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := s.GetUserByUsername(ctx, username)
	return err == nil, nil
}

func (s *Store) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ListUsersWithProfile(context.Context) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, 0, len(s.profiles))
	for id := range s.profiles {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func (s *Store) GetFinancialProfile(_ context.Context, userID int) (*models.FinancialProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fp, ok := s.profiles[userID]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &fp, nil
}

func (s *Store) UpsertFinancialProfile(_ context.Context, fp *models.FinancialProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.profiles[fp.UserID]; ok {
		fp.ID = existing.ID
	} else {
		fp.ID = s.id()
	}
	fp.UpdatedAt = s.now()
	s.profiles[fp.UserID] = *fp
	return nil
}

func (s *Store) GetFamilyMembers(_ context.Context, userID int) ([]models.FamilyMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.FamilyMember{}, s.members[userID]...), nil
}

func (s *Store) GetEarners(ctx context.Context, userID int) ([]models.FamilyMember, error) {
	members, err := s.GetFamilyMembers(ctx, userID)
	if err != nil {
		return nil, err
	}
	earners := models.Earners(members)
	if earners == nil {
		earners = []models.FamilyMember{}
	}
	return earners, nil
}

func (s *Store) ReplaceFamilyMembers(_ context.Context, userID int, members []models.FamilyMember) ([]models.FamilyMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return nil, database.ErrNotFound
	}
	saved := make([]models.FamilyMember, 0, len(members))
	for _, m := range members {
		m.ID = s.id()
		m.UserID = userID
		saved = append(saved, m)
	}
	s.members[userID] = saved
	return append([]models.FamilyMember{}, saved...), nil
}

func (s *Store) GetMonthlyEntry(_ context.Context, userID int, month time.Time) (*models.ResilienceTracker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tracker[trackerKey{userID, models.MonthStart(month)}]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &t, nil
}

func (s *Store) UpsertMonthlyEntry(_ context.Context, t *models.ResilienceTracker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.Month = models.MonthStart(t.Month)
	key := trackerKey{t.UserID, t.Month}
	now := s.now()
	if existing, ok := s.tracker[key]; ok {
		t.ID = existing.ID
		t.CreatedAt = existing.CreatedAt
	} else {
		t.ID = s.id()
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	s.tracker[key] = *t
	return nil
}

func (s *Store) InsertMonthlyEntryIfAbsent(_ context.Context, t *models.ResilienceTracker) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.Month = models.MonthStart(t.Month)
	key := trackerKey{t.UserID, t.Month}
	if _, ok := s.tracker[key]; ok {
		return false, nil
	}
	t.ID = s.id()
	t.CreatedAt = s.now()
	t.UpdatedAt = t.CreatedAt
	s.tracker[key] = *t
	return true, nil
}

func (s *Store) GetTrackerHistory(_ context.Context, userID int) ([]models.ResilienceTracker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := []models.ResilienceTracker{}
	for key, t := range s.tracker {
		if key.userID == userID {
			history = append(history, t)
		}
	}
	sort.Slice(history, func(i, j int) bool { return history[i].Month.Before(history[j].Month) })
	return history, nil
}

// TrackerCount reports how many monthly rows exist for the user.
func (s *Store) TrackerCount(userID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for key := range s.tracker {
		if key.userID == userID {
			n++
		}
	}
	return n
}
