package repository

import "sync"

// TokenRepo is the refresh-token index.  Each entry maps the SHA-256 hash
// of an opaque refresh token to the owning user's normalized email; only
// the hash is kept server-side, the raw value exists solely in the client's
// hands.  A user may hold any number of concurrently valid refresh tokens
// (one per login/register, i.e. per device or session), each independently
// revocable.  Entries never expire on their own; they disappear through
// logout or process restart.
type TokenRepo struct {
	mu      sync.RWMutex
	byHash  map[string]string              // token hash -> owner email
	byEmail map[string]map[string]struct{} // owner email -> set of token hashes
}

func NewTokenRepo() *TokenRepo {
	return &TokenRepo{
		byHash:  make(map[string]string),
		byEmail: make(map[string]map[string]struct{}),
	}
}

// Track records a refresh token hash for a user.  Existing sessions of the
// same user are left untouched.
func (r *TokenRepo) Track(email, tokenHash string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byHash[tokenHash] = email
	set, ok := r.byEmail[email]
	if !ok {
		set = make(map[string]struct{})
		r.byEmail[email] = set
	}
	set[tokenHash] = struct{}{}
}

// Lookup resolves a refresh token hash to its owner's email, or
// ErrInvalidRefresh when the hash is not tracked.
func (r *TokenRepo) Lookup(tokenHash string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	email, ok := r.byHash[tokenHash]
	if !ok {
		return "", ErrInvalidRefresh
	}
	return email, nil
}

// RevokeByHash removes a single session's refresh token.  Returns
// ErrInvalidRefresh when the hash is not tracked, so logout of an unknown
// token can be reported as unauthorized rather than silently succeeding.
func (r *TokenRepo) RevokeByHash(tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	email, ok := r.byHash[tokenHash]
	if !ok {
		return ErrInvalidRefresh
	}
	delete(r.byHash, tokenHash)
	if set, ok := r.byEmail[email]; ok {
		delete(set, tokenHash)
		if len(set) == 0 {
			delete(r.byEmail, email)
		}
	}
	return nil
}

// RevokeAllForEmail removes every tracked refresh token of a user, ending
// all of their sessions.  Outstanding access tokens still expire naturally.
func (r *TokenRepo) RevokeAllForEmail(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for hash := range r.byEmail[email] {
		delete(r.byHash, hash)
	}
	delete(r.byEmail, email)
}

// CountForEmail reports how many sessions a user currently holds.
func (r *TokenRepo) CountForEmail(email string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byEmail[email])
}
