// Package wizard implements the shipment registration form as a finite-state
// object, independent of any rendering layer.
//
// The wizard walks Sender -> Receiver -> Shipment -> Tracker ID. The tracker
// id is generated once, on the first transition out of the Shipment step, and
// is kept for the rest of the session. Field hints are advisory unless the
// wizard is built WithStrictValidation.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mamadbah2/shipment-tracker/internal/domain/models"
	"github.com/mamadbah2/shipment-tracker/internal/tracking"
)

// ErrTransitionUnavailable is returned when an action is not offered at the current step.
var ErrTransitionUnavailable = errors.New("transition unavailable at this step")

// Step is a position in the form.
type Step int

const (
	StepSender Step = iota
	StepReceiver
	StepShipment
	StepTrackerID
)

// Steps lists every step in order.
var Steps = []Step{StepSender, StepReceiver, StepShipment, StepTrackerID}

func (s Step) String() string {
	switch s {
	case StepSender:
		return "Sender"
	case StepReceiver:
		return "Receiver"
	case StepShipment:
		return "Shipment"
	case StepTrackerID:
		return "Tracker ID"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// Field is an editable text field.
type Field int

const (
	FieldSenderName Field = iota
	FieldSenderAddress
	FieldReceiverName
	FieldReceiverAddress
	FieldDetails
)

// Label is the field's display name.
func (f Field) Label() string {
	switch f {
	case FieldSenderName:
		return "Sender Name"
	case FieldSenderAddress:
		return "Sender Address"
	case FieldReceiverName:
		return "Receiver Name"
	case FieldReceiverAddress:
		return "Receiver Address"
	case FieldDetails:
		return "Details"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

func (f Field) requiredMessage() string {
	switch f {
	case FieldSenderName:
		return "Sender name is required"
	case FieldSenderAddress:
		return "Sender address is required"
	case FieldReceiverName:
		return "Receiver name is required"
	case FieldReceiverAddress:
		return "Receiver address is required"
	case FieldDetails:
		return "Shipment details are required"
	default:
		return f.Label() + " is required"
	}
}

// Fields returns the editable fields shown at step.
func Fields(step Step) []Field {
	switch step {
	case StepSender:
		return []Field{FieldSenderName, FieldSenderAddress}
	case StepReceiver:
		return []Field{FieldReceiverName, FieldReceiverAddress}
	case StepShipment:
		return []Field{FieldDetails}
	default:
		return nil
	}
}

// Hint flags a field whose value is empty or whitespace.
type Hint struct {
	Field   Field
	Message string
}

// ValidationError is returned by a strict wizard when the current step has hints.
type ValidationError struct {
	Step  Step
	Hints []Hint
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Hints))
	for _, h := range e.Hints {
		msgs = append(msgs, h.Message)
	}
	return fmt.Sprintf("%s step incomplete: %s", e.Step, strings.Join(msgs, "; "))
}

// Submitter sends a completed form to the shipment API.
type Submitter interface {
	Submit(ctx context.Context, req models.SubmitRequest) (*models.MessageResponse, error)
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithGenerator replaces the tracker id generator.
func WithGenerator(g tracking.Generator) Option {
	return func(w *Wizard) {
		if g != nil {
			w.generate = g
		}
	}
}

// WithStrictValidation makes hints block Next and Submit.
func WithStrictValidation() Option {
	return func(w *Wizard) { w.strict = true }
}

// Wizard holds one form session. It is not safe for concurrent use.
type Wizard struct {
	step      Step
	sender    models.Party
	receiver  models.Party
	details   string
	trackerID string

	generate tracking.Generator
	strict   bool
}

// New starts a session at the Sender step.
func New(opts ...Option) *Wizard {
	w := &Wizard{step: StepSender, generate: tracking.NewID}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Step returns the current step.
func (w *Wizard) Step() Step { return w.step }

// TrackerID is empty until the Tracker ID step has been reached.
func (w *Wizard) TrackerID() string { return w.trackerID }

// Strict reports whether hints block transitions.
func (w *Wizard) Strict() bool { return w.strict }

// Value returns the draft value of f.
func (w *Wizard) Value(f Field) string {
	switch f {
	case FieldSenderName:
		return w.sender.Name
	case FieldSenderAddress:
		return w.sender.Address
	case FieldReceiverName:
		return w.receiver.Name
	case FieldReceiverAddress:
		return w.receiver.Address
	case FieldDetails:
		return w.details
	}
	return ""
}

// Set updates the draft value of f. Any field can be edited at any step.
func (w *Wizard) Set(f Field, value string) {
	switch f {
	case FieldSenderName:
		w.sender.Name = value
	case FieldSenderAddress:
		w.sender.Address = value
	case FieldReceiverName:
		w.receiver.Name = value
	case FieldReceiverAddress:
		w.receiver.Address = value
	case FieldDetails:
		w.details = value
	}
}

// Hints lists the empty fields of step.
func (w *Wizard) Hints(step Step) []Hint {
	var hints []Hint
	for _, f := range Fields(step) {
		if strings.TrimSpace(w.Value(f)) == "" {
			hints = append(hints, Hint{Field: f, Message: f.requiredMessage()})
		}
	}
	return hints
}

// CanBack reports whether Back moves.
func (w *Wizard) CanBack() bool { return w.step > StepSender }

// CanNext reports whether Next is offered at the current step.
func (w *Wizard) CanNext() bool { return w.step < StepTrackerID }

// CanSubmit reports whether Submit is offered at the current step.
func (w *Wizard) CanSubmit() bool { return w.step == StepTrackerID }

// Next advances one step. Leaving the Shipment step assigns the tracker id
// if the session does not have one yet.
func (w *Wizard) Next() error {
	if !w.CanNext() {
		return ErrTransitionUnavailable
	}
	if err := w.guard(); err != nil {
		return err
	}

	if w.step == StepShipment && w.trackerID == "" {
		w.trackerID = w.generate()
	}
	w.step++
	return nil
}

// Back moves one step back. At the Sender step it does nothing.
func (w *Wizard) Back() {
	if w.CanBack() {
		w.step--
	}
}

// Payload assembles the request sent on submit.
func (w *Wizard) Payload() models.SubmitRequest {
	return models.SubmitRequest{
		Sender:          w.sender,
		Receiver:        w.receiver,
		ShipmentDetails: w.details,
		TrackerID:       w.trackerID,
	}
}

// Ready checks that the session may be submitted and returns the payload to
// send. The returned value does not share state with the wizard.
func (w *Wizard) Ready() (models.SubmitRequest, error) {
	if !w.CanSubmit() {
		return models.SubmitRequest{}, ErrTransitionUnavailable
	}
	if w.strict {
		for _, step := range []Step{StepSender, StepReceiver, StepShipment} {
			if hints := w.Hints(step); len(hints) > 0 {
				return models.SubmitRequest{}, &ValidationError{Step: step, Hints: hints}
			}
		}
	}
	return w.Payload(), nil
}

// Submit sends the payload through api. The drafts are kept whatever the outcome.
func (w *Wizard) Submit(ctx context.Context, api Submitter) (string, error) {
	req, err := w.Ready()
	if err != nil {
		return "", err
	}
	return Send(ctx, api, req)
}

// Send delivers a payload obtained from Ready.
func Send(ctx context.Context, api Submitter, req models.SubmitRequest) (string, error) {
	resp, err := api.Submit(ctx, req)
	if err != nil {
		return "", fmt.Errorf("submit %s: %w", req.TrackerID, err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Message, nil
}

func (w *Wizard) guard() error {
	if !w.strict {
		return nil
	}
	if hints := w.Hints(w.step); len(hints) > 0 {
		return &ValidationError{Step: w.step, Hints: hints}
	}
	return nil
}
