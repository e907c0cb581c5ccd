package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/mealplanner/internal/common"
	"github.com/dmitrijs2005/mealplanner/internal/logging"
	"github.com/dmitrijs2005/mealplanner/internal/server/models"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// AccessTokenProvider is satisfied by CredentialService.
type AccessTokenProvider interface {
	GetValidAccessToken(ctx context.Context, userID string) (string, error)
}

// CalendarPublisher submits events to the user's calendar one at a time.
type CalendarPublisher struct {
	tokens     AccessTokenProvider
	httpClient *http.Client
	endpoint   string
	calendarID string
	logger     logging.Logger
}

// NewCalendarPublisher returns a publisher for calendarID. An empty endpoint
// uses the provider's default; httpClient may be nil.
func NewCalendarPublisher(tokens AccessTokenProvider, httpClient *http.Client, endpoint, calendarID string, logger logging.Logger) *CalendarPublisher {
	if calendarID == "" {
		calendarID = common.PrimaryCalendarID
	}
	return &CalendarPublisher{
		tokens:     tokens,
		httpClient: httpClient,
		endpoint:   endpoint,
		calendarID: calendarID,
		logger:     logger.With("module", "publisher"),
	}
}

// Publish submits events strictly in order, fetching a valid access token
// before each one. It stops at the first failure and returns how many events
// were created before it. Created events are never rolled back and nothing
// is retried.
func (p *CalendarPublisher) Publish(ctx context.Context, userID string, events []models.CalendarEvent) (int, error) {
	for i := range events {
		token, err := p.tokens.GetValidAccessToken(ctx, userID)
		if err != nil {
			return i, err
		}
		if err := p.insert(ctx, token, &events[i]); err != nil {
			p.logger.Warn(ctx, "calendar event rejected", "user_id", userID, "position", i, "error", err)
			return i, fmt.Errorf("%w: %v", common.ErrPublishFailed, err)
		}
	}
	return len(events), nil
}

// PublishBatch is Publish reduced to success or failure. On false some
// prefix of events may already exist in the calendar.
func (p *CalendarPublisher) PublishBatch(ctx context.Context, userID string, events []models.CalendarEvent) bool {
	_, err := p.Publish(ctx, userID, events)
	return err == nil
}

func (p *CalendarPublisher) insert(ctx context.Context, accessToken string, ev *models.CalendarEvent) error {
	client := oauth2.NewClient(withHTTPClient(ctx, p.httpClient), oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))

	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if p.endpoint != "" {
		opts = append(opts, option.WithEndpoint(p.endpoint))
	}

	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return err
	}

	_, err = svc.Events.Insert(p.calendarID, toCalendarEvent(ev)).Context(ctx).Do()
	return err
}

func toCalendarEvent(ev *models.CalendarEvent) *calendar.Event {
	return &calendar.Event{
		Summary:     ev.Title,
		Description: ev.Description,
		Start: &calendar.EventDateTime{
			DateTime: ev.Start.UTC().Format(time.RFC3339),
			TimeZone: ev.TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: ev.End.UTC().Format(time.RFC3339),
			TimeZone: ev.TimeZone,
		},
	}
}
