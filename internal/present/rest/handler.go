package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/totegamma/rerum-inbox"
	"github.com/totegamma/rerum-inbox/internal/domain"
	"github.com/totegamma/rerum-inbox/internal/present/rest/presenter"
	"github.com/totegamma/rerum-inbox/internal/usecase"
)

const maxBodySize = 1 << 20

// Subscriber streams announcements as they are created.
type Subscriber interface {
	Subscribe(ctx context.Context, output chan<- domain.Announcement) error
}

type Handler struct {
	inbox      *usecase.InboxUsecase
	subscriber Subscriber
}

// NewHandler builds the REST surface. subscriber may be nil, in which case
// /realtime is not served.
func NewHandler(
	inboxUC *usecase.InboxUsecase,
	subscriber Subscriber,
) *Handler {
	return &Handler{
		inbox:      inboxUC,
		subscriber: subscriber,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.handleHealth)

	e.GET("/messages", h.handleList)
	e.POST("/messages", h.handleCreate)
	e.PUT("/messages", h.handleUpdate)
	e.DELETE("/messages", h.handleDelete)

	e.GET("/id/:noteId", h.handleGet)
	e.PUT("/id/:noteId", h.handleUpdate)
	e.DELETE("/id/:noteId", h.handleDelete)

	if h.subscriber != nil {
		e.GET("/realtime", h.handleRealtime)
	}
}

func (h *Handler) handleHealth(c echo.Context) error {
	return presenter.OK(c, echo.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func bindQuery(c echo.Context) inbox.Query {
	return inbox.Query{
		Target:     c.QueryParam("target"),
		Type:       c.QueryParam("type"),
		Motivation: c.QueryParam("motivation"),
	}
}

func (h *Handler) handleList(c echo.Context) error {
	ctx := c.Request().Context()

	container, err := h.inbox.List(ctx, bindQuery(c))
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.OK(c, container)
}

func (h *Handler) handleCreate(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(http.MaxBytesReader(c.Response(), c.Request().Body, maxBodySize))
	if err != nil {
		return presenter.BadRequestMessage(c, "unable to read request body")
	}

	doc, err := domain.ParseAnnouncement(body)
	if err != nil || doc.OrderedKVMap == nil {
		return presenter.BadRequestMessage(c, "request body must be a JSON object")
	}

	created, err := h.inbox.Create(ctx, doc)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return presenter.BadRequest(c, verr)
		}
		return presenter.InternalError(c, err)
	}

	return presenter.Created(c, created.StringField(domain.KeyID), created)
}

func (h *Handler) handleGet(c echo.Context) error {
	ctx := c.Request().Context()

	doc, err := h.inbox.Get(ctx, c.Param("noteId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return presenter.NotFound(c, "No message found")
		}
		return presenter.InternalError(c, err)
	}
	return presenter.Immutable(c, doc)
}

func (h *Handler) handleUpdate(c echo.Context) error {
	return h.rejectMethod(c, h.inbox.Update(c.Request().Context()))
}

func (h *Handler) handleDelete(c echo.Context) error {
	return h.rejectMethod(c, h.inbox.Delete(c.Request().Context()))
}

func (h *Handler) rejectMethod(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrMethodNotSupported) {
		return presenter.MethodNotAllowed(c, fmt.Sprintf("%s is not implemented for this inbox.", c.Request().Method))
	}
	return presenter.InternalError(c, err)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *Handler) handleRealtime(c echo.Context) error {
	query := bindQuery(c)

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	output := make(chan domain.Announcement)
	go func() {
		err := h.subscriber.Subscribe(ctx, output)
		if err != nil {
			slog.ErrorContext(
				ctx, "Subscription failed",
				slog.String("error", err.Error()),
				slog.String("module", "socket"),
			)
		}
		cancel()
	}()

	// the client only sends heartbeats, reading detects the close
	go func() {
		defer cancel()
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				var closeErr *websocket.CloseError
				if !errors.As(err, &closeErr) {
					slog.DebugContext(
						ctx, "WebSocket read ended",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case announcement := <-output:
			if !usecase.Matches(query, announcement) {
				continue
			}
			if err := ws.WriteJSON(announcement); err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
