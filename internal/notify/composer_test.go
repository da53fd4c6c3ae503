package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vcsystems/incident-service/internal/config"
	"github.com/vcsystems/incident-service/internal/domain"
	"github.com/vcsystems/incident-service/internal/events"
	"github.com/vcsystems/incident-service/internal/repository"
	"github.com/vcsystems/incident-service/pkg/util/maskutil"
)

type sentEmail struct {
	To      string
	Subject string
}

type fakeGateway struct {
	broadcastErr error
	emailErr     error

	broadcasts []string
	emails     []sentEmail
}

func (g *fakeGateway) PushBroadcast(_ context.Context, _ string, message string) error {
	if g.broadcastErr != nil {
		return g.broadcastErr
	}
	g.broadcasts = append(g.broadcasts, message)
	return nil
}

func (g *fakeGateway) SendEmail(_ context.Context, to, subject, _ string) error {
	if g.emailErr != nil {
		return g.emailErr
	}
	g.emails = append(g.emails, sentEmail{To: to, Subject: subject})
	return nil
}

type stubClientRepo struct {
	clients map[string]domain.Client
}

func (r *stubClientRepo) Create(context.Context, *domain.Client) error { return nil }

func (r *stubClientRepo) GetByID(_ context.Context, id string) (*domain.Client, error) {
	client, ok := r.clients[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &client, nil
}

func (r *stubClientRepo) GetByUserID(context.Context, string) (*domain.Client, error) {
	return nil, pgx.ErrNoRows
}

type stubUserRepo struct {
	users map[string]domain.User
}

func (r *stubUserRepo) Create(context.Context, *domain.User) error { return nil }
func (r *stubUserRepo) Update(context.Context, *domain.User) error { return nil }

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *stubUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) ListByRole(context.Context, domain.Role) ([]domain.User, error) {
	return nil, nil
}

var (
	_ repository.ClientRepository = (*stubClientRepo)(nil)
	_ repository.UserRepository   = (*stubUserRepo)(nil)
)

func newTestComposer(gateway Gateway) *Composer {
	return NewComposer(ComposerDependencies{
		Gateway: gateway,
		ClientRepo: &stubClientRepo{clients: map[string]domain.Client{
			"client-1": {ID: "client-1", UserID: "user-1", CompanyName: "Acme Corp"},
			"orphan":   {ID: "orphan", UserID: "user-404", CompanyName: "Ghost Inc"},
		}},
		UserRepo: &stubUserRepo{users: map[string]domain.User{
			"user-1": {ID: "user-1", Role: domain.RoleClient, Email: "cli@example.com"},
		}},
		Config: config.NotificationConfig{
			OpsEmail:       "ops@vcsystems.example",
			BroadcastTopic: "incidents",
		},
		Logger:   zap.NewNop(),
		MaskMode: maskutil.ModePartial,
	})
}

func createdEvent() events.Event {
	return events.Event{
		Kind:     events.KindIncidentCreated,
		Incident: domain.Incident{ID: "inc-1", ClientID: "client-1", Status: domain.IncidentStatusPending},
		Created:  &events.CreatedPayload{ClientCompany: "Acme Corp"},
	}
}

func TestComposer_CreatedGoesToOps(t *testing.T) {
	gateway := &fakeGateway{}
	composer := newTestComposer(gateway)

	err := composer.handleCreated(context.Background(), createdEvent())

	require.NoError(t, err)
	require.Len(t, gateway.emails, 1)
	assert.Equal(t, "ops@vcsystems.example", gateway.emails[0].To)
	assert.Equal(t, "New Incident Created", gateway.emails[0].Subject)
	require.Len(t, gateway.broadcasts, 1)
	assert.Contains(t, gateway.broadcasts[0], "inc-1")
	assert.Contains(t, gateway.broadcasts[0], "Acme Corp")
}

func TestComposer_AssignedGoesToTechnician(t *testing.T) {
	gateway := &fakeGateway{}
	composer := newTestComposer(gateway)

	event := events.Event{
		Kind:     events.KindTechnicianAssigned,
		Incident: domain.Incident{ID: "inc-1", ClientID: "client-1", Status: domain.IncidentStatusAssigned},
		Assigned: &events.AssignedPayload{
			TechnicianID:    "tech-1",
			TechnicianName:  "Ana",
			TechnicianEmail: "ana@example.com",
		},
	}
	err := composer.handleAssigned(context.Background(), event)

	require.NoError(t, err)
	require.Len(t, gateway.emails, 1)
	assert.Equal(t, "ana@example.com", gateway.emails[0].To)
	assert.Equal(t, "New Incident Assigned", gateway.emails[0].Subject)
}

func TestComposer_StatusChangeGoesToClientUser(t *testing.T) {
	gateway := &fakeGateway{}
	composer := newTestComposer(gateway)

	event := events.Event{
		Kind:     events.KindStatusChanged,
		Incident: domain.Incident{ID: "inc-1", ClientID: "client-1", Status: domain.IncidentStatusResolved},
		Transition: &events.TransitionPayload{
			OldStatus: domain.IncidentStatusInProgress,
			NewStatus: domain.IncidentStatusResolved,
		},
	}
	err := composer.handleStatusChanged(context.Background(), event)

	require.NoError(t, err)
	require.Len(t, gateway.emails, 1)
	assert.Equal(t, "cli@example.com", gateway.emails[0].To)
	assert.Equal(t, "Incident Update", gateway.emails[0].Subject)
	require.Len(t, gateway.broadcasts, 1)
	assert.Contains(t, gateway.broadcasts[0], string(domain.IncidentStatusResolved))
}

func TestComposer_MissingClientLinkIsSkippedNotFailed(t *testing.T) {
	gateway := &fakeGateway{}
	composer := newTestComposer(gateway)

	event := events.Event{
		Kind:     events.KindStatusChanged,
		Incident: domain.Incident{ID: "inc-2", ClientID: "orphan", Status: domain.IncidentStatusClosed},
	}
	err := composer.handleStatusChanged(context.Background(), event)

	require.NoError(t, err, "an unresolvable recipient must not surface as a handler error")
	assert.Empty(t, gateway.emails)
	assert.Empty(t, gateway.broadcasts)
}

func TestComposer_UnknownClientIsSkipped(t *testing.T) {
	gateway := &fakeGateway{}
	composer := newTestComposer(gateway)

	event := events.Event{
		Kind:     events.KindStatusChanged,
		Incident: domain.Incident{ID: "inc-3", ClientID: "client-404", Status: domain.IncidentStatusClosed},
	}
	err := composer.handleStatusChanged(context.Background(), event)

	require.NoError(t, err)
	assert.Empty(t, gateway.emails)
}

func TestComposer_ChannelsFailIndependently(t *testing.T) {
	t.Run("broadcast down, email still sent", func(t *testing.T) {
		gateway := &fakeGateway{broadcastErr: errors.New("redis unreachable")}
		composer := newTestComposer(gateway)

		require.NoError(t, composer.handleCreated(context.Background(), createdEvent()))
		assert.Len(t, gateway.emails, 1)
	})

	t.Run("email down, broadcast still sent", func(t *testing.T) {
		gateway := &fakeGateway{emailErr: errors.New("smtp unreachable")}
		composer := newTestComposer(gateway)

		require.NoError(t, composer.handleCreated(context.Background(), createdEvent()))
		assert.Len(t, gateway.broadcasts, 1)
	})

	t.Run("both down still returns nil", func(t *testing.T) {
		gateway := &fakeGateway{
			broadcastErr: errors.New("redis unreachable"),
			emailErr:     errors.New("smtp unreachable"),
		}
		composer := newTestComposer(gateway)

		require.NoError(t, composer.handleCreated(context.Background(), createdEvent()))
	})
}

func TestComposer_EndToEndThroughDispatcher(t *testing.T) {
	gateway := &fakeGateway{}
	composer := newTestComposer(gateway)
	dispatcher := events.NewAsyncDispatcher(zap.NewNop())
	composer.RegisterHandlers(dispatcher)

	dispatcher.Publish(context.Background(), createdEvent())
	dispatcher.Close()

	require.Len(t, gateway.emails, 1)
	assert.Equal(t, "ops@vcsystems.example", gateway.emails[0].To)
}
