package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/vcsystems/incident-service/internal/config"
	"github.com/vcsystems/incident-service/internal/events"
	"github.com/vcsystems/incident-service/internal/observability"
	"github.com/vcsystems/incident-service/internal/repository"
	"github.com/vcsystems/incident-service/pkg/util/maskutil"
)

// Composer subscribes to lifecycle events and derives who gets told what.
// It reads incident-adjacent records to resolve recipients but never mutates
// incident state.
type Composer struct {
	gateway  Gateway
	clients  repository.ClientRepository
	users    repository.UserRepository
	cfg      config.NotificationConfig
	logger   *zap.Logger
	metrics  *observability.Metrics
	maskMode maskutil.Mode
}

// ComposerDependencies bundles collaborators for the composer.
type ComposerDependencies struct {
	Gateway    Gateway
	ClientRepo repository.ClientRepository
	UserRepo   repository.UserRepository
	Config     config.NotificationConfig
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	MaskMode   maskutil.Mode
}

// NewComposer constructs the composer.
func NewComposer(deps ComposerDependencies) *Composer {
	return &Composer{
		gateway:  deps.Gateway,
		clients:  deps.ClientRepo,
		users:    deps.UserRepo,
		cfg:      deps.Config,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
		maskMode: deps.MaskMode,
	}
}

// RegisterHandlers subscribes the composer to all three event kinds.
func (c *Composer) RegisterHandlers(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.KindIncidentCreated, c.handleCreated)
	dispatcher.Subscribe(events.KindTechnicianAssigned, c.handleAssigned)
	dispatcher.Subscribe(events.KindStatusChanged, c.handleStatusChanged)
}

func (c *Composer) handleCreated(ctx context.Context, event events.Event) error {
	company := ""
	if event.Created != nil {
		company = event.Created.ClientCompany
	}
	message := fmt.Sprintf("Incident %s has been created for client %s", event.Incident.ID, company)
	c.deliver(ctx, c.cfg.OpsEmail, "New Incident Created", message)
	return nil
}

func (c *Composer) handleAssigned(ctx context.Context, event events.Event) error {
	if event.Assigned == nil || event.Assigned.TechnicianEmail == "" {
		c.logger.Warn("assignment event without technician contact",
			zap.String("incident_id", event.Incident.ID))
		return nil
	}
	message := fmt.Sprintf("You have been assigned incident %s", event.Incident.ID)
	c.deliver(ctx, event.Assigned.TechnicianEmail, "New Incident Assigned", message)
	return nil
}

func (c *Composer) handleStatusChanged(ctx context.Context, event events.Event) error {
	recipient, err := c.resolveClientContact(ctx, event.Incident.ClientID)
	if err != nil {
		// The triggering operation already returned SUCCESS; a missing
		// client contact only means there is nobody to tell.
		c.logger.Warn("no recipient for status change notification",
			zap.String("incident_id", event.Incident.ID),
			zap.Error(err))
		return nil
	}
	newStatus := event.Incident.Status
	if event.Transition != nil {
		newStatus = event.Transition.NewStatus
	}
	message := fmt.Sprintf("Your incident %s has changed to status %s", event.Incident.ID, newStatus)
	c.deliver(ctx, recipient, "Incident Update", message)
	return nil
}

// deliver pushes the message through both channels. Each channel failure is
// logged with a masked recipient and swallowed; the committed state
// transition is never reversed over a notification problem.
func (c *Composer) deliver(ctx context.Context, recipient, subject, message string) {
	masked := maskutil.Recipient(recipient, c.maskMode)

	if err := c.gateway.PushBroadcast(ctx, c.cfg.BroadcastTopic, message); err != nil {
		c.metrics.RecordNotification("broadcast", "failed")
		c.logger.Error("broadcast delivery failed",
			zap.String("recipient", masked),
			zap.Error(err))
	} else {
		c.metrics.RecordNotification("broadcast", "sent")
	}

	if err := c.gateway.SendEmail(ctx, recipient, subject, renderHTML(subject, message)); err != nil {
		c.metrics.RecordNotification("email", "failed")
		c.logger.Error("email delivery failed",
			zap.String("recipient", masked),
			zap.Error(err))
	} else {
		c.metrics.RecordNotification("email", "sent")
		c.logger.Info("notification sent",
			zap.String("recipient", masked),
			zap.String("subject", subject),
			zap.String("message", maskutil.Truncate(message, 100)))
	}
}

// resolveClientContact follows client -> user to find the email that should
// receive status updates.
func (c *Composer) resolveClientContact(ctx context.Context, clientID string) (string, error) {
	client, err := c.clients.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", errors.New("client record missing")
		}
		return "", err
	}
	if client.UserID == "" {
		return "", errors.New("client has no linked user")
	}
	user, err := c.users.GetByID(ctx, client.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", errors.New("client user missing")
		}
		return "", err
	}
	if user.Email == "" {
		return "", errors.New("client user has no email")
	}
	return user.Email, nil
}

func renderHTML(subject, message string) string {
	return fmt.Sprintf("<html><body><h3>%s</h3><p>%s</p></body></html>", subject, message)
}
