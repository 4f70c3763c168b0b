package funnel

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"partner-funnel/internal/common/enum"
	"partner-funnel/internal/common/models"
	types "partner-funnel/internal/common/type"
	"partner-funnel/internal/pkg/beacon"
	"partner-funnel/internal/pkg/progress"
	"partner-funnel/internal/pkg/redis"
	"partner-funnel/internal/repository"
	sessionRepo "partner-funnel/internal/repository/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSigner struct{}

func (fakeSigner) GenerateToken(data types.FunnelSession) (string, *time.Time, error) {
	exp := time.Now().Add(time.Hour)
	return "token-" + data.ID, &exp, nil
}

type recordingEmitter struct{ events []*beacon.Event }

func (r *recordingEmitter) Emit(e *beacon.Event) { r.events = append(r.events, e) }

func newService(t *testing.T) (*Service, *recordingEmitter) {
	t.Helper()
	em := &recordingEmitter{}
	rp := repository.IRepository{Session: sessionRepo.NewRepo(redis.NewMemory(), time.Hour)}
	svc := NewService(context.Background(), rp, fakeSigner{}, em, Config{Brand: "Acme Partners", Loading: 3 * time.Second}).(*Service)
	return svc, em
}

func start(t *testing.T, svc *Service) string {
	t.Helper()
	res := svc.StartSession()
	require.Equal(t, http.StatusCreated, res.Code)
	data := res.Data.(StartSessionResponse)
	assert.Equal(t, "token-"+data.SessionID, data.Token)
	assert.Equal(t, "Acme Partners", data.Brand)
	assert.Len(t, data.SessionID, sessionIDLength)
	return data.SessionID
}

func state(t *testing.T, res *types.Response) *models.FunnelState {
	t.Helper()
	require.Equal(t, http.StatusOK, res.Code, res.Message)
	return res.Data.(*models.FunnelState)
}

func TestStartAndGetSession(t *testing.T) {
	svc, _ := newService(t)
	id := start(t, svc)

	st := state(t, svc.GetSession(id))
	assert.Equal(t, enum.STEP_HOME, st.CurrentStep)
	assert.False(t, st.UserCheckedPostal)

	assert.Equal(t, http.StatusNotFound, svc.GetSession("nope").Code)
}

func TestConfirmPostalAlwaysMovesToRegistration(t *testing.T) {
	for _, from := range enum.Steps() {
		t.Run(from.ToString(), func(t *testing.T) {
			svc, _ := newService(t)
			id := start(t, svc)

			state(t, svc.Advance(id, from, &AdvanceRequest{}))
			show := true
			state(t, svc.SetPostalModal(id, &PostalModalRequest{Show: &show}))

			st := state(t, svc.ConfirmPostal(id, &ConfirmPostalRequest{
				PostalCode: "01310100", City: "São Paulo", State: "SP",
			}))
			assert.Equal(t, enum.STEP_REGISTRATION, st.CurrentStep)
			assert.True(t, st.UserCheckedPostal)
			assert.False(t, st.ShowPostalModal)
			require.NotNil(t, st.PostalData)
			assert.Equal(t, "BR", st.PostalData.Country)
			assert.True(t, st.PostalData.IsValid)
		})
	}
}

func TestAdvance(t *testing.T) {
	svc, em := newService(t)
	id := start(t, svc)

	st := state(t, svc.Advance(id, enum.STEP_REGISTRATION, &AdvanceRequest{Data: map[string]any{"name": "Ana"}}))
	assert.Equal(t, enum.STEP_REGISTRATION, st.CurrentStep)
	assert.Equal(t, "Ana", st.Steps[enum.STEP_REGISTRATION]["name"])
	require.Len(t, em.events, 1)
	assert.Equal(t, beacon.EventLead, em.events[0].Name)
	assert.Equal(t, id, em.events[0].SessionID)

	// backwards is allowed and keeps recorded data
	st = state(t, svc.Advance(id, enum.STEP_HOME, &AdvanceRequest{}))
	assert.Equal(t, enum.STEP_HOME, st.CurrentStep)
	assert.Contains(t, st.Steps, enum.STEP_REGISTRATION)

	res := svc.Advance(id, enum.StepEnum("checkout"), &AdvanceRequest{})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.True(t, errors.Is(res.Error, ErrUnknownStep))

	assert.Equal(t, http.StatusNotFound, svc.Advance("nope", enum.STEP_DELIVERY, &AdvanceRequest{}).Code)
	assert.Len(t, em.events, 1)
}

func TestReset(t *testing.T) {
	svc, _ := newService(t)
	id := start(t, svc)

	assert.Equal(t, http.StatusOK, svc.Reset(id).Code)
	assert.Equal(t, http.StatusNotFound, svc.GetSession(id).Code)
}

func TestLoading(t *testing.T) {
	svc, _ := newService(t)

	assert.Equal(t, 3*time.Second, svc.Loading(0).Duration)
	assert.Equal(t, 500*time.Millisecond, svc.Loading(500).Duration)
	assert.Equal(t, 30*time.Second, svc.Loading(999999).Duration)
	assert.Equal(t, progress.DefaultStatuses, svc.Loading(0).Statuses)

	custom := NewService(context.Background(), svc.rp, fakeSigner{}, nil, Config{Statuses: []string{"one"}})
	assert.Equal(t, []string{"one"}, custom.Loading(0).Statuses)
}
