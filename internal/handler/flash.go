package handler

import (
	"net/http"

	"github.com/membresiasgt/panel-go/internal/domain"
	"github.com/membresiasgt/panel-go/internal/port"

	"github.com/google/uuid"
)

const flashCookie = "panel_flash"

// FlashStore hands one-shot banner messages across the POST-redirect-GET
// boundary. The cookie only carries an opaque id; the message itself lives
// in the TTL cache and is discarded on first read.
type FlashStore struct {
	cache port.Cache[domain.Flash]
}

// NewFlashStore creates a flash store backed by the given cache.
func NewFlashStore(cache port.Cache[domain.Flash]) *FlashStore {
	return &FlashStore{cache: cache}
}

// Put stages a flash for the next rendered page.
func (f *FlashStore) Put(w http.ResponseWriter, level, message string) {
	id := uuid.New().String()
	f.cache.Set(id, domain.Flash{Level: level, Message: message})
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop retrieves and clears the pending flash, if any.
func (f *FlashStore) Pop(w http.ResponseWriter, r *http.Request) *domain.Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	flash, ok := f.cache.Get(c.Value)
	if !ok {
		return nil
	}
	f.cache.Delete(c.Value)
	return &flash
}
