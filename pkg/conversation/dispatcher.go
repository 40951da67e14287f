package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dandanapp/dandanbot/pkg/config"
	"github.com/dandanapp/dandanbot/pkg/format"
	"github.com/dandanapp/dandanbot/pkg/models"
	"github.com/dandanapp/dandanbot/pkg/services"
)

// selectionPrefix tags clinic-selection callback data: "v_<clinic_id>".
const selectionPrefix = "v_"

// Commands understood by the dispatcher, transport-agnostic.
const (
	CommandStart  = "start"
	CommandAdd    = "add_experience"
	CommandView   = "view_experiences"
	CommandCancel = "cancel"
)

// Dispatcher drives both flows from a single entry point per event kind.
// One inbound event is processed to completion before the transport hands
// over the next one for the same user.
type Dispatcher struct {
	sessions    *Manager
	clinics     ClinicStore
	experiences ExperienceStore
	opts        *config.Options
	steps       map[State]step
	logger      *slog.Logger
}

// NewDispatcher wires the state machine to its collaborators.
func NewDispatcher(sessions *Manager, clinics ClinicStore, experiences ExperienceStore, opts *config.Options) *Dispatcher {
	return &Dispatcher{
		sessions:    sessions,
		clinics:     clinics,
		experiences: experiences,
		opts:        opts,
		steps:       buildSteps(),
		logger:      slog.Default().With("component", "dispatcher"),
	}
}

// HandleCommand processes one of the fixed commands for the user.
func (d *Dispatcher) HandleCommand(ctx context.Context, userID int64, command string) []Reply {
	switch command {
	case CommandCancel:
		if d.sessions.End(userID) {
			return []Reply{removeKeyboardReply(msgCancelled)}
		}
		return []Reply{textReply(msgNoActive)}

	case CommandStart:
		if _, active := d.sessions.Get(userID); active {
			return []Reply{textReply(msgCancelFirst)}
		}
		return []Reply{textReply(msgWelcome)}

	case CommandAdd:
		s, err := d.sessions.Begin(userID, StateClinicName)
		if err != nil {
			return []Reply{textReply(msgCancelFirst)}
		}
		d.logger.Info("Add flow started", "user_id", userID, "flow_id", s.FlowID)
		return []Reply{d.steps[StateClinicName].prompt(d)}

	case CommandView:
		s, err := d.sessions.Begin(userID, StateViewProvince)
		if err != nil {
			return []Reply{textReply(msgCancelFirst)}
		}
		d.logger.Info("View flow started", "user_id", userID, "flow_id", s.FlowID)
		return []Reply{keyboardReply(promptProvince, d.opts.Provinces, 3)}
	}

	return nil
}

// HandleText processes free-form input for whatever state the user's session
// is in. Users without a session get no reply; the transport only surfaces
// commands to them.
func (d *Dispatcher) HandleText(ctx context.Context, userID int64, text string) []Reply {
	s, ok := d.sessions.Get(userID)
	if !ok {
		return nil
	}
	text = strings.TrimSpace(text)

	switch s.State {
	case StateViewProvince:
		return d.handleViewProvince(ctx, s, text)
	case StateClinicSelection:
		return []Reply{textReply(msgPickClinic)}
	}

	st, ok := d.steps[s.State]
	if !ok {
		d.logger.Error("Session in unknown state", "user_id", userID, "flow_id", s.FlowID, "state", s.State)
		d.sessions.End(userID)
		return []Reply{removeKeyboardReply(msgApology)}
	}

	if err := st.handle(d, s, text); err != nil {
		var inv *invalidInput
		if errors.As(err, &inv) {
			// Re-emit the same prompt with the error note; no draft mutation,
			// no state advance.
			rep := st.prompt(d)
			rep.Text = inv.note + "\n" + rep.Text
			return []Reply{rep}
		}
		d.logger.Error("Step handler failed", "user_id", userID, "flow_id", s.FlowID, "state", s.State, "error", err)
		return []Reply{textReply(msgApology)}
	}

	if st.next == stateCommit {
		return d.commit(ctx, s)
	}

	s.State = st.next
	return []Reply{d.steps[s.State].prompt(d)}
}

// HandleSelection processes a clinic-selection callback. The second return
// value is a short acknowledgment shown as a toast; an unknown reference is
// acknowledged without resolving or resetting the flow, so the user may pick
// another clinic or cancel.
func (d *Dispatcher) HandleSelection(ctx context.Context, userID int64, data string) ([]Reply, string) {
	s, ok := d.sessions.Get(userID)
	if !ok || s.State != StateClinicSelection {
		return nil, ""
	}

	clinicID, err := parseSelection(data)
	if err != nil {
		d.logger.Warn("Malformed selection data", "user_id", userID, "flow_id", s.FlowID, "data", data)
		return nil, msgNotFound
	}

	clinic, err := d.clinics.ByID(ctx, clinicID)
	if errors.Is(err, services.ErrNotFound) {
		return nil, msgNotFound
	}
	if err != nil {
		d.logger.Error("Failed to load clinic", "user_id", userID, "flow_id", s.FlowID, "clinic_id", clinicID, "error", err)
		return nil, msgApology
	}

	exps, err := d.experiences.ByClinic(ctx, clinicID)
	if err != nil {
		d.logger.Error("Failed to load experiences", "user_id", userID, "flow_id", s.FlowID, "clinic_id", clinicID, "error", err)
		return nil, msgApology
	}

	pages := format.ClinicDetail(clinic, exps)
	replies := make([]Reply, 0, len(pages))
	for _, page := range pages {
		replies = append(replies, textReply(page))
	}

	d.sessions.End(userID)
	d.logger.Info("View flow completed", "user_id", userID, "flow_id", s.FlowID, "clinic_id", clinicID, "pages", len(pages))
	return replies, ""
}

func (d *Dispatcher) handleViewProvince(ctx context.Context, s *Session, text string) []Reply {
	if !d.opts.IsProvince(text) {
		rep := keyboardReply(promptProvince, d.opts.Provinces, 3)
		rep.Text = errBadProvince + "\n" + rep.Text
		return []Reply{rep}
	}

	stats, err := d.clinics.StatsByProvince(ctx, text)
	if err != nil {
		d.logger.Error("Failed to load province stats", "user_id", s.UserID, "flow_id", s.FlowID, "province", text, "error", err)
		return []Reply{textReply(msgApology)}
	}
	if len(stats) == 0 {
		d.sessions.End(s.UserID)
		return []Reply{removeKeyboardReply(msgNoStats)}
	}

	rep := textReply(format.ProvinceSummary(stats))
	for _, st := range stats {
		rep.InlineButtons = append(rep.InlineButtons, InlineButton{
			Label: st.Name,
			Data:  selectionData(st.ClinicID),
		})
	}
	s.State = StateClinicSelection
	return []Reply{rep}
}

// commit atomically resolves the clinic and persists the full experience.
// Persistence failures keep the session at the comment step so the user can
// retry; the full error is logged, the user sees the generic apology.
func (d *Dispatcher) commit(ctx context.Context, s *Session) []Reply {
	clinicID, err := d.clinics.GetOrCreate(ctx, s.Draft.ClinicName, s.Draft.Province, s.Draft.City)
	if err != nil {
		d.logger.Error("Failed to resolve clinic at commit", "user_id", s.UserID, "flow_id", s.FlowID, "error", err)
		return []Reply{textReply(msgApology)}
	}

	exp := &models.Experience{
		ClinicID:        clinicID,
		UserID:          s.UserID,
		StartDate:       s.Draft.StartDate,
		EndDate:         s.Draft.EndDate,
		Payment:         s.Draft.Payment,
		ContractSigned:  s.Draft.ContractSigned,
		PatientCulture:  s.Draft.PatientCulture,
		PatientCount:    s.Draft.PatientCount,
		InsuranceStatus: s.Draft.InsuranceStatus,
		Environment:     s.Draft.Environment,
		Rating:          s.Draft.Rating,
		Comment:         s.Draft.Comment,
	}
	if err := d.experiences.Save(ctx, exp); err != nil {
		d.logger.Error("Failed to save experience", "user_id", s.UserID, "flow_id", s.FlowID, "clinic_id", clinicID, "error", err)
		return []Reply{textReply(msgApology)}
	}

	d.sessions.End(s.UserID)
	d.logger.Info("Add flow completed", "user_id", s.UserID, "flow_id", s.FlowID, "clinic_id", clinicID, "rating", exp.Rating)
	return []Reply{removeKeyboardReply(msgSaved)}
}

func selectionData(clinicID int64) string {
	return fmt.Sprintf("%s%d", selectionPrefix, clinicID)
}

func parseSelection(data string) (int64, error) {
	raw, ok := strings.CutPrefix(data, selectionPrefix)
	if !ok {
		return 0, fmt.Errorf("selection data %q missing prefix", data)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("selection data %q: %w", data, err)
	}
	return id, nil
}
