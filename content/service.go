package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"broilers/models"
	"broilers/utils"

	"github.com/juju/clock"
)

var (
	ErrUnknownKey   = errors.New("unknown content key")
	ErrInvalidValue = errors.New("invalid content value")
)

// Repository stores the single site content document. Load returns nil,
// nil when nothing has been stored yet.
type Repository interface {
	Load(ctx context.Context) (*models.EditableContent, error)
	Save(ctx context.Context, c *models.EditableContent) error
}

// Service serves the editable site content. Reads never fail: when the
// store is empty or unreadable the last document read successfully is
// served, and failing that the built-in default.
type Service struct {
	repo  Repository
	clock clock.Clock

	mu       sync.RWMutex
	lastGood *models.EditableContent

	// writeMu serialises read-modify-write cycles of Update.
	writeMu sync.Mutex
}

func NewService(repo Repository, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.WallClock
	}
	return &Service{repo: repo, clock: clk}
}

// Start seeds the store with the default document when it is empty and
// primes the fallback copy.
func (s *Service) Start(ctx context.Context) error {
	stored, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("cannot load site content: %w", err)
	}

	if stored == nil {
		def := models.DefaultContent()
		if err := s.repo.Save(ctx, &def); err != nil {
			return fmt.Errorf("cannot seed site content: %w", err)
		}
		log.Println("content: seeded default site content")
		stored = &def
	}

	stored.Complete(models.DefaultContent())
	s.remember(*stored)
	return nil
}

// Stop drops the fallback copy.
func (s *Service) Stop() {
	s.mu.Lock()
	s.lastGood = nil
	s.mu.Unlock()
}

func (s *Service) Get(ctx context.Context) models.EditableContent {
	stored, err := s.repo.Load(ctx)
	if err != nil {
		log.Printf("content: load failed, serving fallback: %v", err)
		return s.fallback()
	}
	if stored == nil {
		return s.fallback()
	}

	stored.Complete(models.DefaultContent())
	s.remember(*stored)
	return stored.Clone()
}

// Value returns the single field named by key.
func (s *Service) Value(ctx context.Context, key models.ContentKey) (any, error) {
	if !key.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	c := s.Get(ctx)
	return fieldOf(&c, key), nil
}

// WhatsAppNumber is the business's own WhatsApp number from the contact
// details.
func (s *Service) WhatsAppNumber(ctx context.Context) string {
	return s.Get(ctx).ContactDetails.WhatsApp
}

// Update replaces one field of the document with raw and persists the
// whole document. Every other field keeps its value.
func (s *Service) Update(ctx context.Context, key models.ContentKey, raw json.RawMessage) (models.EditableContent, error) {
	if !key.Valid() {
		return models.EditableContent{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return models.EditableContent{}, fmt.Errorf("%w: %s must not be null", ErrInvalidValue, key)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	doc, err := s.loadForUpdate(ctx)
	if err != nil {
		return models.EditableContent{}, err
	}
	if err := s.apply(&doc, key, raw); err != nil {
		return models.EditableContent{}, err
	}

	if err := s.repo.Save(ctx, &doc); err != nil {
		return models.EditableContent{}, fmt.Errorf("cannot save site content: %w", err)
	}
	s.remember(doc)
	return doc.Clone(), nil
}

// loadForUpdate reads the stored document for a write. Unlike Get it only
// falls back to the default when storage is empty or holds a document that
// cannot be decoded; any other read failure is returned so a write never
// replaces stored content it could not see.
func (s *Service) loadForUpdate(ctx context.Context) (models.EditableContent, error) {
	stored, err := s.repo.Load(ctx)
	switch {
	case err != nil && !isDecodeError(err):
		return models.EditableContent{}, fmt.Errorf("cannot load site content: %w", err)
	case err != nil:
		log.Printf("content: stored document unreadable, editing the default: %v", err)
		return models.DefaultContent(), nil
	case stored == nil:
		return models.DefaultContent(), nil
	}
	stored.Complete(models.DefaultContent())
	return *stored, nil
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

func (s *Service) apply(doc *models.EditableContent, key models.ContentKey, raw json.RawMessage) error {
	var err error
	switch key {
	case models.KeyHomeHeroHeading:
		err = decodeStrict(raw, &doc.HomeHeroHeading)
	case models.KeyHomeDescription:
		err = decodeStrict(raw, &doc.HomeDescription)
	case models.KeyAboutIntro:
		err = decodeStrict(raw, &doc.AboutIntro)
	case models.KeyAboutServiceArea:
		err = decodeStrict(raw, &doc.AboutServiceArea)
	case models.KeyMetaTitle:
		err = decodeStrict(raw, &doc.MetaTitle)
	case models.KeyMetaDescription:
		err = decodeStrict(raw, &doc.MetaDescription)
	case models.KeyMetaKeywords:
		err = decodeStrict(raw, &doc.MetaKeywords)
	case models.KeyHomeServiceHighlights:
		err = decodeList(raw, &doc.HomeServiceHighlights)
	case models.KeyServicesList:
		err = decodeList(raw, &doc.ServicesList)
	case models.KeyFacilitiesList:
		err = decodeList(raw, &doc.FacilitiesList)
	case models.KeyDeliveryTimings:
		err = decodeList(raw, &doc.DeliveryTimings)
	case models.KeyContactDetails:
		var v models.ContactDetails
		if err = decodeStrict(raw, &v); err == nil {
			doc.ContactDetails = v
		}
	case models.KeyThemeColors:
		var v models.ThemeColors
		if err = decodeStrict(raw, &v); err == nil {
			doc.ThemeColors = v
		}
	case models.KeyGalleryItems:
		var items []models.GalleryItem
		if err = decodeList(raw, &items); err == nil {
			doc.GalleryItems = assignGalleryIDs(items)
		}
	case models.KeyBlogPosts:
		var posts []models.BlogPost
		if err = decodeList(raw, &posts); err == nil {
			doc.BlogPosts = s.prepareBlogPosts(posts)
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
	}
	return nil
}

// decodeStrict rejects values of the wrong JSON type and objects carrying
// fields the target does not have.
func decodeStrict(raw json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after value")
	}
	return nil
}

func decodeList[T any](raw json.RawMessage, dst *[]T) error {
	if len(raw) == 0 || raw[0] != '[' {
		return errors.New("expected an array")
	}
	list := []T{}
	if err := decodeStrict(raw, &list); err != nil {
		return err
	}
	*dst = list
	return nil
}

func assignGalleryIDs(items []models.GalleryItem) []models.GalleryItem {
	seen := make(map[string]bool, len(items))
	for i := range items {
		if items[i].ID == "" || seen[items[i].ID] {
			items[i].ID = "gallery-" + utils.GetUUID()
		}
		seen[items[i].ID] = true
	}
	return items
}

func (s *Service) prepareBlogPosts(posts []models.BlogPost) []models.BlogPost {
	today := s.clock.Now().Format("2006-01-02")
	seen := make(map[string]bool, len(posts))
	for i := range posts {
		p := &posts[i]
		if p.ID == "" || seen[p.ID] {
			p.ID = "blog-" + utils.GetUUID()
		}
		seen[p.ID] = true
		if p.Date == "" {
			p.Date = today
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
	}
	return posts
}

func (s *Service) remember(c models.EditableContent) {
	cp := c.Clone()
	s.mu.Lock()
	s.lastGood = &cp
	s.mu.Unlock()
}

func (s *Service) fallback() models.EditableContent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastGood != nil {
		return s.lastGood.Clone()
	}
	return models.DefaultContent()
}

func fieldOf(c *models.EditableContent, key models.ContentKey) any {
	switch key {
	case models.KeyHomeHeroHeading:
		return c.HomeHeroHeading
	case models.KeyHomeDescription:
		return c.HomeDescription
	case models.KeyHomeServiceHighlights:
		return c.HomeServiceHighlights
	case models.KeyAboutIntro:
		return c.AboutIntro
	case models.KeyAboutServiceArea:
		return c.AboutServiceArea
	case models.KeyServicesList:
		return c.ServicesList
	case models.KeyFacilitiesList:
		return c.FacilitiesList
	case models.KeyContactDetails:
		return c.ContactDetails
	case models.KeyDeliveryTimings:
		return c.DeliveryTimings
	case models.KeyGalleryItems:
		return c.GalleryItems
	case models.KeyBlogPosts:
		return c.BlogPosts
	case models.KeyThemeColors:
		return c.ThemeColors
	case models.KeyMetaTitle:
		return c.MetaTitle
	case models.KeyMetaDescription:
		return c.MetaDescription
	case models.KeyMetaKeywords:
		return c.MetaKeywords
	}
	return nil
}
