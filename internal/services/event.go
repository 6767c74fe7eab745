package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"devevents/internal/domain"
	"devevents/internal/normalize"
)

// slugPattern is the only accepted lookup format: lowercase letters, digits
// and hyphens. Checked before any database access.
var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

func validateSlug(slug string) error {
	if slug == "" {
		return domain.NewValidationError("slug parameter is required")
	}
	if !slugPattern.MatchString(slug) {
		return domain.NewValidationError("invalid slug format: only lowercase letters, numbers, and hyphens are allowed")
	}
	return nil
}

type eventService struct {
	events         domain.EventRepository
	uploader       domain.ImageUploader
	contextTimeout time.Duration
}

func NewEventService(events domain.EventRepository, uploader domain.ImageUploader, timeout time.Duration) domain.EventService {
	return &eventService{
		events:         events,
		uploader:       uploader,
		contextTimeout: timeout,
	}
}

// CreateEvent validates, normalizes, uploads the image and persists a new
// event. Every missing required field is reported in one ValidationError
// rather than failing on the first.
func (s *eventService) CreateEvent(ctx context.Context, input domain.EventInput, image *domain.ImageUpload) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if missing := missingFields(input); len(missing) > 0 {
		return nil, domain.NewValidationError("missing required fields", missing...)
	}
	switch input.Mode {
	case domain.ModeOnline, domain.ModeOffline, domain.ModeHybrid:
	default:
		return nil, domain.NewValidationError("mode must be one of: online, offline, hybrid")
	}
	if image == nil || image.Content == nil {
		return nil, domain.NewValidationError("image is required")
	}

	event := &domain.Event{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Overview:    strings.TrimSpace(input.Overview),
		Venue:       strings.TrimSpace(input.Venue),
		Location:    strings.TrimSpace(input.Location),
		Date:        input.Date,
		Time:        input.Time,
		Mode:        input.Mode,
		Audience:    strings.TrimSpace(input.Audience),
		Organizer:   strings.TrimSpace(input.Organizer),
		Agenda:      input.Agenda,
		Tags:        input.Tags,
	}
	if err := normalize.Apply(event, normalize.AllChanges); err != nil {
		return nil, err
	}

	url, err := s.uploader.Upload(ctx, image.Filename, image.Content)
	if err != nil {
		return nil, &domain.UpstreamError{Op: "image upload", Err: err}
	}
	event.Image = url

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// missingFields returns the names of all required fields that are absent or
// blank, in the order the API documents them.
func missingFields(input domain.EventInput) []string {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	checkList := func(name string, values []string) {
		for _, v := range values {
			if strings.TrimSpace(v) != "" {
				return
			}
		}
		missing = append(missing, name)
	}

	check("title", input.Title)
	check("description", input.Description)
	check("overview", input.Overview)
	check("venue", input.Venue)
	check("location", input.Location)
	check("date", input.Date)
	check("time", input.Time)
	check("mode", input.Mode)
	check("audience", input.Audience)
	checkList("agenda", input.Agenda)
	check("organizer", input.Organizer)
	checkList("tags", input.Tags)
	return missing
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	event, err := s.events.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) ListSimilarEvents(ctx context.Context, slug string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	events, err := s.events.ListSimilarBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("list similar events: %w", err)
	}
	return events, nil
}

// UpdateEvent applies the patch to the stored event and re-normalizes only
// the touched fields: a changed title re-derives the slug, a changed date or
// time is re-canonicalized, everything else is stored as given.
func (s *eventService) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NewValidationError("invalid event id")
	}
	event, err := s.events.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	changes, err := applyPatch(event, patch)
	if err != nil {
		return nil, err
	}
	if err := normalize.Apply(event, changes); err != nil {
		return nil, err
	}
	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// applyPatch copies set patch fields onto the event and reports which
// normalizable fields were touched. Set-but-blank text fields are rejected.
func applyPatch(event *domain.Event, patch domain.EventPatch) (normalize.Changes, error) {
	var changes normalize.Changes
	var blank []string

	setText := func(name string, dst *string, src *string) bool {
		if src == nil {
			return false
		}
		if strings.TrimSpace(*src) == "" {
			blank = append(blank, name)
			return false
		}
		*dst = strings.TrimSpace(*src)
		return true
	}

	changes.Title = setText("title", &event.Title, patch.Title)
	setText("description", &event.Description, patch.Description)
	setText("overview", &event.Overview, patch.Overview)
	setText("venue", &event.Venue, patch.Venue)
	setText("location", &event.Location, patch.Location)
	setText("audience", &event.Audience, patch.Audience)
	setText("organizer", &event.Organizer, patch.Organizer)
	if patch.Date != nil {
		event.Date = *patch.Date
		changes.Date = true
	}
	if patch.Time != nil {
		event.Time = *patch.Time
		changes.Time = true
	}
	if patch.Mode != nil {
		switch *patch.Mode {
		case domain.ModeOnline, domain.ModeOffline, domain.ModeHybrid:
			event.Mode = *patch.Mode
		default:
			return changes, domain.NewValidationError("mode must be one of: online, offline, hybrid")
		}
	}
	if patch.Agenda != nil {
		if len(patch.Agenda) == 0 {
			blank = append(blank, "agenda")
		} else {
			event.Agenda = patch.Agenda
		}
	}
	if patch.Tags != nil {
		if len(patch.Tags) == 0 {
			blank = append(blank, "tags")
		} else {
			event.Tags = patch.Tags
		}
	}
	if len(blank) > 0 {
		return changes, domain.NewValidationError("fields cannot be blank", blank...)
	}
	return changes, nil
}
