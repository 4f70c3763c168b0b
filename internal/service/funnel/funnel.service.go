package funnel

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"partner-funnel/internal/common/enum"
	"partner-funnel/internal/common/models"
	types "partner-funnel/internal/common/type"
	"partner-funnel/internal/pkg/beacon"
	"partner-funnel/internal/pkg/helper"
	"partner-funnel/internal/pkg/logger"
	"partner-funnel/internal/pkg/progress"
	sessionRepo "partner-funnel/internal/repository/session"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	sessionAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	sessionIDLength = 21
	maxLoadingMs    = 30000
)

func newSessionID() (string, error) {
	return gonanoid.Generate(sessionAlphabet, sessionIDLength)
}

func (s *Service) StartSession() *types.Response {
	id, err := s.newID()
	if err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to create session", Error: err})
	}

	state := models.NewFunnelState(id)
	if err := s.rp.Session.Save(state); err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to create session", Error: err})
	}

	token, exp, err := s.signer.GenerateToken(types.FunnelSession{ID: id})
	if err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to sign session", Error: err})
	}

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusCreated,
		Message: "Session started",
		Data: StartSessionResponse{
			SessionID: id,
			Token:     token,
			ExpiresAt: *exp,
			Brand:     s.brand,
			State:     state,
		},
	})
}

func (s *Service) GetSession(id string) *types.Response {
	state, res := s.load(id)
	if res != nil {
		return res
	}
	return helper.ParseResponse(&types.Response{Data: state})
}

func (s *Service) SetPostalModal(id string, req *PostalModalRequest) *types.Response {
	return s.update(id, "Postal modal updated", func(state *models.FunnelState) {
		state.ShowPostalModal = *req.Show
	})
}

// ConfirmPostal records the confirmed address and always lands on the
// registration step, wherever the visitor was.
func (s *Service) ConfirmPostal(id string, req *ConfirmPostalRequest) *types.Response {
	return s.update(id, "Postal code confirmed", func(state *models.FunnelState) {
		state.PostalData = req.ToResult()
		state.UserCheckedPostal = true
		state.ShowPostalModal = false
		state.CurrentStep = enum.STEP_REGISTRATION
	})
}

func (s *Service) Advance(id string, step enum.StepEnum, req *AdvanceRequest) *types.Response {
	if !step.IsValid() {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Unknown step",
			Error:   fmt.Errorf("%w: %q", ErrUnknownStep, step),
		})
	}

	var lead bool
	res := s.update(id, "Step saved", func(state *models.FunnelState) {
		if len(req.Data) > 0 {
			state.Steps[step] = req.Data
			lead = step == enum.STEP_REGISTRATION
		}
		state.CurrentStep = step
	})

	if lead && res.Code == http.StatusOK && s.emitter != nil {
		e := beacon.NewEvent(beacon.EventLead)
		e.SessionID = id
		s.emitter.Emit(e)
	}
	return res
}

func (s *Service) Reset(id string) *types.Response {
	if err := s.rp.Session.Delete(id); err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to reset session", Error: err})
	}
	return helper.ParseResponse(&types.Response{Message: "Session reset"})
}

// Loading builds the progress sequence for the loading page. durationMs <= 0
// uses the configured default; larger values are capped.
func (s *Service) Loading(durationMs int) *progress.Sequence {
	d := s.loading
	if durationMs > 0 {
		d = time.Duration(min(durationMs, maxLoadingMs)) * time.Millisecond
	}
	return progress.New(s.statuses, d)
}

func (s *Service) load(id string) (*models.FunnelState, *types.Response) {
	state, err := s.rp.Session.Get(id)
	if errors.Is(err, sessionRepo.ErrSessionNotFound) {
		return nil, helper.ParseResponse(&types.Response{Code: http.StatusNotFound, Message: "Session not found", Error: err})
	}
	if err != nil {
		return nil, helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to load session", Error: err})
	}
	return state, nil
}

func (s *Service) update(id, message string, mutate func(*models.FunnelState)) *types.Response {
	state, res := s.load(id)
	if res != nil {
		return res
	}
	mutate(state)
	if err := s.rp.Session.Save(state); err != nil {
		logger.Error.Printf("Failed to save session %s: %v\n", id, err)
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to save session", Error: err})
	}
	return helper.ParseResponse(&types.Response{Message: message, Data: state})
}
