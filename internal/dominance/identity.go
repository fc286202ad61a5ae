package dominance

import (
	"strconv"
	"strings"

	"roast-master/internal/domain"
)

// RosterIdentity is everything known about who held one roster in one season.
type RosterIdentity struct {
	RosterID    int
	OwnerID     string
	Username    string
	DisplayName string
	TeamName    string
	AvatarURL   string
}

// SeasonRoster maps the roster ids of one season to canonical manager keys.
// It is only meaningful for the season it was built from.
type SeasonRoster struct {
	Season string
	keys   map[int]string
	names  map[int]string
}

func (s SeasonRoster) Key(rosterID int) (string, bool) {
	k, ok := s.keys[rosterID]
	return k, ok
}

func (s SeasonRoster) Name(rosterID int) string {
	return s.names[rosterID]
}

// Registry holds the managers seen while walking one league's seasons.
// A Registry belongs to a single request and is not safe for concurrent use.
type Registry struct {
	managers map[string]*domain.Manager
	order    []string
}

func NewRegistry() *Registry {
	return &Registry{managers: make(map[string]*domain.Manager)}
}

// ManagerKey derives the canonical key for a roster. Owner ids are durable
// across seasons; names are the fallback and roster numbers the last resort.
func ManagerKey(r RosterIdentity) string {
	if owner := strings.TrimSpace(r.OwnerID); owner != "" && owner != "0" {
		return "owner:" + owner
	}
	if name := normalizeName(fallbackName(r)); name != "" {
		return "name:" + name
	}
	return "roster:" + strconv.Itoa(r.RosterID)
}

func fallbackName(r RosterIdentity) string {
	for _, n := range []string{r.DisplayName, r.Username, r.TeamName} {
		if strings.TrimSpace(n) != "" {
			return n
		}
	}
	return ""
}

func normalizeName(n string) string {
	return strings.ToLower(strings.Join(strings.Fields(n), " "))
}

func displayName(r RosterIdentity) string {
	if n := strings.TrimSpace(fallbackName(r)); n != "" {
		return n
	}
	return "Team " + strconv.Itoa(r.RosterID)
}

// ResolveSeason registers every roster of a season and returns the season's
// roster mapping. Seasons should be resolved oldest first so the latest name
// wins.
func (r *Registry) ResolveSeason(season string, rosters []RosterIdentity) SeasonRoster {
	sr := SeasonRoster{
		Season: season,
		keys:   make(map[int]string, len(rosters)),
		names:  make(map[int]string, len(rosters)),
	}
	for _, ro := range rosters {
		key := ManagerKey(ro)
		name := displayName(ro)
		sr.keys[ro.RosterID] = key
		sr.names[ro.RosterID] = name
		r.upsert(key, strings.TrimSpace(fallbackName(ro)), name, ro.AvatarURL)
	}
	return sr
}

func (r *Registry) upsert(key, name, fallback, avatar string) {
	m, ok := r.managers[key]
	if !ok {
		if name == "" {
			name = fallback
		}
		r.managers[key] = &domain.Manager{Key: key, Name: name, AvatarURL: avatar}
		r.order = append(r.order, key)
		return
	}
	if name != "" {
		m.Name = name
	}
	if m.AvatarURL == "" {
		m.AvatarURL = avatar
	}
}

func (r *Registry) Get(key string) (domain.Manager, bool) {
	m, ok := r.managers[key]
	if !ok {
		return domain.Manager{}, false
	}
	return *m, true
}

// Managers returns the registered managers in first-seen order.
func (r *Registry) Managers() []domain.Manager {
	out := make([]domain.Manager, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, *r.managers[k])
	}
	return out
}

func (r *Registry) Keys() []string {
	return append([]string(nil), r.order...)
}

func (r *Registry) Len() int {
	return len(r.order)
}
