package app

import (
	"sort"

	"github.com/dkeye/Rendezvous/internal/core"
	"github.com/dkeye/Rendezvous/internal/domain"
	"github.com/rs/zerolog/log"
)

// Directory is the list of signed-in users.
// Not safe for concurrent use; the orchestrator serializes access.
type Directory struct {
	users map[domain.Username]*domain.User
}

func NewDirectory() *Directory {
	return &Directory{users: make(map[domain.Username]*domain.User)}
}

func (d *Directory) Lookup(name domain.Username) (*domain.User, bool) {
	u, ok := d.users[name]
	return u, ok
}

// Add stores u unless its username is taken.
func (d *Directory) Add(u *domain.User) bool {
	if _, ok := d.users[u.Username]; ok {
		return false
	}
	d.users[u.Username] = u
	log.Info().Str("module", "app.directory").Str("username", string(u.Username)).Str("conn", u.Owner.String()).Msg("user signed in")
	return true
}

// RemoveOwnedBy deletes every user owned by id and returns their names.
func (d *Directory) RemoveOwnedBy(id domain.ConnID) []domain.Username {
	var removed []domain.Username
	for name, u := range d.users {
		if u.Owner != id {
			continue
		}
		delete(d.users, name)
		removed = append(removed, name)
		log.Info().Str("module", "app.directory").Str("username", string(name)).Str("conn", id.String()).Msg("user removed")
	}
	sort.Slice(removed, func(i, j int) bool { return removed[i] < removed[j] })
	return removed
}

func (d *Directory) Len() int { return len(d.users) }

func (d *Directory) List() []core.UserInfo {
	out := make([]core.UserInfo, 0, len(d.users))
	for _, u := range d.users {
		out = append(out, core.UserInfo{Username: u.Username, Conn: u.Owner, SignedInAt: u.SignedInAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}
