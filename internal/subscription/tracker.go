// Package subscription tracks free-tier idea usage and the simulated premium
// flag on top of a store.KV.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/1234bibhash/venture-idea-compass/internal/store"
)

const (
	DefaultFreeLimit = 2
	// Unlimited is reported for limit and remaining ideas on premium accounts.
	Unlimited = -1
)

func IdeasGeneratedKey(userID string) string { return "ventureCompass_ideasGenerated_" + userID }
func PremiumKey(userID string) string        { return "ventureCompass_isPremium_" + userID }

type Status struct {
	UserID          string `json:"user_id,omitempty"`
	IsPremium       bool   `json:"isPremium"`
	IdeasLimit      int    `json:"ideasLimit"`
	IdeasGenerated  int    `json:"ideasGenerated"`
	RemainingIdeas  int    `json:"remainingIdeas"`
	CanGenerateMore bool   `json:"canGenerateMore"`
}

type Tracker struct {
	kv        store.KV
	freeLimit int
	mu        sync.Mutex
}

func NewTracker(kv store.KV, freeLimit int) *Tracker {
	if freeLimit <= 0 {
		freeLimit = DefaultFreeLimit
	}
	return &Tracker{kv: kv, freeLimit: freeLimit}
}

// Status reports usage for userID. An empty userID is an anonymous visitor,
// who is never counted.
func (t *Tracker) Status(ctx context.Context, userID string) (Status, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Status{
			IdeasLimit:      t.freeLimit,
			RemainingIdeas:  t.freeLimit,
			CanGenerateMore: true,
		}, nil
	}
	premium, err := t.isPremium(ctx, userID)
	if err != nil {
		return Status{}, err
	}
	generated, err := t.generated(ctx, userID)
	if err != nil {
		return Status{}, err
	}
	st := Status{UserID: userID, IsPremium: premium, IdeasGenerated: generated}
	if premium {
		st.IdeasLimit = Unlimited
		st.RemainingIdeas = Unlimited
		st.CanGenerateMore = true
		return st, nil
	}
	st.IdeasLimit = t.freeLimit
	st.RemainingIdeas = max(0, t.freeLimit-generated)
	st.CanGenerateMore = st.RemainingIdeas > 0
	return st, nil
}

// ErrQuotaExceeded is returned by Reserve when a free user has no ideas left.
var ErrQuotaExceeded = errors.New("free idea limit reached")

// Reserve counts one idea against userID before it is analysed, so
// concurrent submissions cannot overrun the free limit. Premium users are
// counted but never refused; anonymous visitors are neither.
func (t *Tracker) Reserve(ctx context.Context, userID string) (Status, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return t.Status(ctx, "")
	}
	premium, err := t.isPremium(ctx, userID)
	if err != nil {
		return Status{}, err
	}

	if inc, ok := t.kv.(store.Incrementer); ok {
		key := IdeasGeneratedKey(userID)
		n, err := inc.Add(ctx, key, 1)
		if err != nil {
			return Status{}, fmt.Errorf("reserve idea for %s: %w", userID, err)
		}
		if !premium && int(n) > t.freeLimit {
			if _, err := inc.Add(ctx, key, -1); err != nil {
				return Status{}, fmt.Errorf("undo reservation for %s: %w", userID, err)
			}
			return t.exhausted(userID), ErrQuotaExceeded
		}
		return t.Status(ctx, userID)
	}

	t.mu.Lock()
	cur, err := t.generated(ctx, userID)
	if err == nil && !premium && cur >= t.freeLimit {
		t.mu.Unlock()
		return t.exhausted(userID), ErrQuotaExceeded
	}
	if err == nil {
		err = t.setGenerated(ctx, userID, cur+1)
	}
	t.mu.Unlock()
	if err != nil {
		return Status{}, err
	}
	return t.Status(ctx, userID)
}

// Release hands back a slot taken by Reserve whose analysis never completed.
func (t *Tracker) Release(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil
	}
	if inc, ok := t.kv.(store.Incrementer); ok {
		if _, err := inc.Add(ctx, IdeasGeneratedKey(userID), -1); err != nil {
			return fmt.Errorf("release idea for %s: %w", userID, err)
		}
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	cur, err := t.generated(ctx, userID)
	if err != nil {
		return err
	}
	return t.setGenerated(ctx, userID, max(cur-1, 0))
}

func (t *Tracker) exhausted(userID string) Status {
	return Status{
		UserID:         userID,
		IdeasLimit:     t.freeLimit,
		IdeasGenerated: t.freeLimit,
	}
}

func (t *Tracker) setGenerated(ctx context.Context, userID string, n int) error {
	if err := t.kv.Set(ctx, IdeasGeneratedKey(userID), strconv.Itoa(n)); err != nil {
		return fmt.Errorf("record idea count for %s: %w", userID, err)
	}
	return nil
}

func (t *Tracker) SetPremium(ctx context.Context, userID string, premium bool) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	return t.kv.Set(ctx, PremiumKey(userID), strconv.FormatBool(premium))
}

func (t *Tracker) isPremium(ctx context.Context, userID string) (bool, error) {
	v, ok, err := t.kv.Get(ctx, PremiumKey(userID))
	if err != nil {
		return false, fmt.Errorf("read premium flag: %w", err)
	}
	return ok && v == "true", nil
}

func (t *Tracker) generated(ctx context.Context, userID string) (int, error) {
	v, ok, err := t.kv.Get(ctx, IdeasGeneratedKey(userID))
	if err != nil {
		return 0, fmt.Errorf("read idea count: %w", err)
	}
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0, nil
	}
	return n, nil
}
