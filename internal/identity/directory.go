// Package identity records the user emails discovered while the suite
// runs.
package identity

import "sync"

// Directory maps roles to the email addresses discovered for them during
// the admin journey. Each field is write-once: the first discovery wins
// and later writes are ignored, so journeys running after admin observe a
// stable value. Readers distinguish "never discovered" from a recorded
// value so they can skip rather than fail.
type Directory struct {
	mu      sync.Mutex
	leader  string
	member  string
	analyst string
}

func New() *Directory {
	return &Directory{}
}

// SetLeaderEmail records the leader email unless one is already recorded.
// Empty values are ignored. It reports whether the write took effect.
func (d *Directory) SetLeaderEmail(email string) bool {
	return d.set(&d.leader, email)
}

// SetMemberEmail records the member email unless one is already recorded.
func (d *Directory) SetMemberEmail(email string) bool {
	return d.set(&d.member, email)
}

// SetAnalystEmail records the analyst email unless one is already
// recorded.
func (d *Directory) SetAnalystEmail(email string) bool {
	return d.set(&d.analyst, email)
}

// LeaderEmail returns the discovered leader email, if any.
func (d *Directory) LeaderEmail() (string, bool) {
	return d.get(&d.leader)
}

// MemberEmail returns the discovered member email, if any.
func (d *Directory) MemberEmail() (string, bool) {
	return d.get(&d.member)
}

// AnalystEmail returns the discovered analyst email, if any.
func (d *Directory) AnalystEmail() (string, bool) {
	return d.get(&d.analyst)
}

func (d *Directory) set(field *string, email string) bool {
	if email == "" {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if *field != "" {
		return false
	}
	*field = email
	return true
}

func (d *Directory) get(field *string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return *field, *field != ""
}
