package content

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"broilers/models"
)

var errStore = errors.New("storage unavailable")

// memRepo keeps the document as JSON, like the blob and SQL backends do.
type memRepo struct {
	mu      sync.Mutex
	body    []byte
	loadErr error
	saveErr error
	saves   int
}

func (r *memRepo) Load(context.Context) (*models.EditableContent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	if r.body == nil {
		return nil, nil
	}
	var c models.EditableContent
	if err := json.Unmarshal(r.body, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *memRepo) Save(_ context.Context, c *models.EditableContent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	r.body = b
	r.saves++
	return nil
}

func (r *memRepo) setRaw(body string) {
	r.mu.Lock()
	r.body = []byte(body)
	r.mu.Unlock()
}

func (r *memRepo) setLoadErr(err error) {
	r.mu.Lock()
	r.loadErr = err
	r.mu.Unlock()
}

func (r *memRepo) raw() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return string(r.body)
}
