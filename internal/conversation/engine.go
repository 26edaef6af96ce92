// Package conversation implements the per-user recruiting dialog: it maps
// the current session state and an inbound event onto backend calls,
// replies and the next state.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/m3rciful/recruitbot/core/logger"
	"github.com/m3rciful/recruitbot/internal/domain"
	"github.com/m3rciful/recruitbot/internal/session"
)

const component = "conversation"

var (
	// ErrUnknownDirective is returned for tokens no route accepts.
	ErrUnknownDirective = errors.New("conversation: unknown directive")
	// ErrNoUser is returned for events without a user identity.
	ErrNoUser = errors.New("conversation: event without user")
)

// Options tune an Engine.
type Options struct {
	// CallTimeout bounds every backend call; zero disables the bound.
	CallTimeout time.Duration
	// Auditor receives a record for every backend-visible action. Optional.
	Auditor Auditor
}

// Engine runs conversation turns. It is safe for concurrent use; turns of
// the same user are serialized through the session store lock.
type Engine struct {
	store       session.Store
	backend     Backend
	sink        Sink
	auditor     Auditor
	callTimeout time.Duration
}

// NewEngine wires an Engine.
func NewEngine(store session.Store, backend Backend, sink Sink, opts Options) *Engine {
	return &Engine{
		store:       store,
		backend:     backend,
		sink:        sink,
		auditor:     opts.Auditor,
		callTimeout: opts.CallTimeout,
	}
}

// Handle processes one event for its user. A returned error means a backend
// call failed or the directive is unknown; changes made to the session before
// the failure are kept.
func (e *Engine) Handle(ctx context.Context, ev Event) error {
	if ev.UserID == 0 {
		return ErrNoUser
	}
	if ctx == nil {
		ctx = context.Background()
	}

	unlock := e.store.Lock(ev.UserID)
	defer unlock()

	sess, ok := e.store.Get(ev.UserID)
	if !ok {
		sess = e.store.CreateOrReset(ev.UserID)
		logger.Debug(ctx, component, "session.created", slog.Int64("user_id", ev.UserID))
	}

	t := &turn{ctx: ctx, e: e, sess: sess}
	from := sess.State

	var err error
	switch ev.Kind {
	case KindDirective:
		err = t.directive(strings.TrimSpace(ev.Token))
	case KindText:
		err = t.text(strings.TrimSpace(ev.Text))
	default:
		err = fmt.Errorf("conversation: unsupported event kind %d", ev.Kind)
	}

	e.store.Put(t.sess)

	attrs := []slog.Attr{
		slog.String("kind", ev.Kind.String()),
		slog.String("state", string(from)),
		slog.String("next_state", string(t.sess.State)),
		slog.String("status", logger.Status(err)),
	}
	if ev.Kind == KindDirective {
		attrs = append(attrs, slog.String("token", logger.SanitizeLimit(ev.Token, 64)))
	}
	logger.Debug(ctx, component, "turn", attrs...)
	return err
}

// turn carries one event through the handlers.
type turn struct {
	ctx  context.Context
	e    *Engine
	sess *session.Session
}

func (t *turn) directive(token string) error {
	if d, ok := directives[token]; ok {
		if d.gated && !t.sess.Authenticated {
			return t.notAuthorized(token)
		}
		return d.run(t)
	}
	for _, p := range prefixDirectives {
		arg, ok := strings.CutPrefix(token, p.prefix)
		if !ok {
			continue
		}
		if arg == "" {
			break
		}
		if p.gated && !t.sess.Authenticated {
			return t.notAuthorized(token)
		}
		return p.run(t, arg)
	}
	return fmt.Errorf("%w: %q", ErrUnknownDirective, token)
}

func (t *turn) text(input string) error {
	h, ok := textHandlers[t.sess.State]
	if !ok {
		logger.Debug(t.ctx, component, "text.ignored", slog.String("state", string(t.sess.State)))
		return nil
	}
	return h(t, input)
}

func (t *turn) notAuthorized(token string) error {
	logger.Info(t.ctx, component, "auth.required",
		slog.String("token", logger.SanitizeLimit(token, 64)),
		slog.String("state", string(t.sess.State)),
	)
	t.say(msgNotAuthorized)
	return t.toStart()
}

// moveTo records a forward transition.
func (t *turn) moveTo(next session.State) {
	t.sess.Transition(next)
}

// toStart drops credentials and drafts and shows the start menu.
func (t *turn) toStart() error {
	t.sess.Reset()
	t.send(startMenu())
	t.moveTo(session.StateStart)
	return nil
}

func (t *turn) say(text string, rows ...[]Button) {
	t.send(Reply{Text: text, Keyboard: rows})
}

// send delivers a reply; failures are logged and otherwise ignored.
func (t *turn) send(r Reply) {
	r.UserID = t.sess.UserID
	if t.e.sink == nil {
		return
	}
	if err := t.e.sink.Send(t.ctx, r); err != nil {
		logger.Warn(t.ctx, component, "send.fail",
			slog.String("state", string(t.sess.State)),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
	}
}

// call runs a backend operation under the configured timeout.
func (t *turn) call(op string, fn func(ctx context.Context) error) error {
	ctx := t.ctx
	if t.e.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.e.callTimeout)
		defer cancel()
	}

	start := time.Now()
	err := fn(ctx)
	took := logger.Took(start)
	if err != nil {
		logger.Error(t.ctx, component, "backend.fail",
			slog.String("op", op),
			slog.String("state", string(t.sess.State)),
			slog.Duration("duration", took),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return fmt.Errorf("conversation: %s: %w", op, err)
	}
	logger.Debug(t.ctx, component, "backend.ok",
		slog.String("op", op),
		slog.Duration("duration", took),
	)
	return nil
}

func (t *turn) audit(action string, ok bool, detail string) {
	if t.e.auditor == nil {
		return
	}
	entry := domain.AuditEntry{
		UserID:  t.sess.UserID,
		Action:  action,
		Outcome: domain.Outcome(ok),
		Detail:  detail,
	}
	if err := t.e.auditor.Record(t.ctx, entry); err != nil {
		logger.Warn(t.ctx, component, "audit.fail",
			slog.String("op", action),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
	}
}
