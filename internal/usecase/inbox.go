package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/totegamma/rerum-inbox"
	"github.com/totegamma/rerum-inbox/internal/domain"
)

var tracer = otel.Tracer("inbox")

type InboxUsecase struct {
	config   domain.Config
	store    AnnouncementStore
	notifier AnnouncementNotifier
	now      func() time.Time
}

// NewInboxUsecase wires the inbox around a store. notifier may be nil.
func NewInboxUsecase(config domain.Config, store AnnouncementStore, notifier AnnouncementNotifier) *InboxUsecase {
	return &InboxUsecase{
		config:   config,
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

func (uc *InboxUsecase) Config() domain.Config {
	return uc.config
}

func (uc *InboxUsecase) Create(ctx context.Context, doc domain.Announcement) (domain.Announcement, error) {
	ctx, span := tracer.Start(ctx, "Inbox.Usecase.Create")
	defer span.End()

	if err := Validate(doc); err != nil {
		span.SetAttributes(attribute.String("rejected", err.Error()))
		return domain.Announcement{}, err
	}

	// an empty identifier passes validation but is never stored
	doc = domain.Announcement{OrderedKVMap: doc.Omit(domain.KeyID)}
	doc = InjectIfAbsent(doc, domain.KeyContext, uc.config.ContextURI)
	doc = InjectOrOverwrite(doc, domain.KeyPublished, uc.now().UTC().Format(domain.PublishedLayout))

	stored, err := uc.store.Create(ctx, doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.Announcement{}, err
	}
	span.SetAttributes(attribute.String("key", stored.Key))

	result := InjectOrOverwrite(doc, domain.KeyID, inbox.ComposeID(uc.config.IDRoot, stored.Key))

	if uc.notifier != nil {
		if err := uc.notifier.Publish(ctx, result); err != nil {
			span.RecordError(err)
			slog.WarnContext(
				ctx, "failed to publish announcement",
				slog.String("key", stored.Key),
				slog.String("error", err.Error()),
				slog.String("module", "inbox"),
			)
		}
	}

	return result, nil
}

func (uc *InboxUsecase) Get(ctx context.Context, id string) (domain.Announcement, error) {
	ctx, span := tracer.Start(ctx, "Inbox.Usecase.Get")
	defer span.End()
	span.SetAttributes(attribute.String("key", id))

	doc, err := uc.store.Read(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Announcement{}, err
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.Announcement{}, err
	}
	if doc.Len() == 0 {
		return domain.Announcement{}, domain.NotFoundError{Resource: "announcement"}
	}

	return InjectOrOverwrite(doc, domain.KeyID, inbox.ComposeID(uc.config.IDRoot, id)), nil
}

func (uc *InboxUsecase) List(ctx context.Context, q inbox.Query) (inbox.Container, error) {
	ctx, span := tracer.Start(ctx, "Inbox.Usecase.List")
	defer span.End()

	storeQuery := BuildStoreQuery(q)
	span.SetAttributes(
		attribute.String("field", storeQuery.Field),
		attribute.String("value", storeQuery.Value),
	)

	entries, err := uc.store.List(ctx, storeQuery)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return inbox.Container{}, err
	}

	accept := BuildPostFilter(q)
	items := make([]domain.Announcement, 0, len(entries))
	for _, entry := range entries {
		doc := InjectOrOverwrite(entry.Document, domain.KeyID, inbox.ComposeID(uc.config.IDRoot, entry.Key))
		if !accept(doc) {
			continue
		}
		items = append(items, doc)
	}

	return Assemble(uc.config, items, q), nil
}

// Update is never supported.
func (uc *InboxUsecase) Update(ctx context.Context) error {
	return domain.ErrMethodNotSupported
}

// Delete is never supported.
func (uc *InboxUsecase) Delete(ctx context.Context) error {
	return domain.ErrMethodNotSupported
}
