package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/m3rciful/recruitbot/core/logger"
	"github.com/m3rciful/recruitbot/internal/domain"
	"github.com/m3rciful/recruitbot/internal/session"
	"github.com/m3rciful/recruitbot/internal/validate"
)

// invitation starts a fresh invitation flow with the given channels.
func invitation(email, voice bool) func(*turn) error {
	return func(t *turn) error {
		t.sess.StartInvite(email, voice)

		var jobs []domain.Job
		err := t.call("list_jobs", func(ctx context.Context) (err error) {
			jobs, err = t.e.backend.ListJobs(ctx, t.sess.Credentials())
			return err
		})
		if err != nil {
			return err
		}

		if len(jobs) == 0 {
			t.send(noJobsMenu())
		} else {
			t.send(jobsMenu(jobs))
		}
		t.moveTo(session.StateInvitation)
		return nil
	}
}

func (t *turn) selectJob(arg string) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: vacancy %q", ErrUnknownDirective, arg)
	}
	t.sess.SelectedJobID = &id
	t.sess.EnsureInvite()
	t.say(msgAskCandidateName)
	t.moveTo(session.StateInvitationJobSelected)
	return nil
}

func (t *turn) inviteName(name string) error {
	t.sess.EnsureInvite().Name = name
	t.say(msgAskCandidatePhone)
	t.moveTo(session.StateInvitationNameEntered)
	return nil
}

func (t *turn) invitePhone(phone string) error {
	if !validate.IsAcceptedPhone(phone) {
		t.say(msgBadPhone)
		t.say(msgAskCandidatePhone)
		return nil
	}
	draft := t.sess.EnsureInvite()
	draft.Phone = phone
	t.moveTo(session.StateInvitationPhoneEntered)
	if draft.EmailChannel {
		t.say(msgAskCandidateEmail)
		return nil
	}
	return t.sendInvitation()
}

func (t *turn) inviteEmail(email string) error {
	if !validate.IsValidEmail(email) {
		t.say(msgBadEmail)
		t.say(msgAskCandidateEmail)
		return nil
	}
	t.sess.EnsureInvite().Email = email
	t.moveTo(session.StateInvitationEmailEntered)
	return t.sendInvitation()
}

func (t *turn) sendInvitation() error {
	if t.sess.SelectedJobID == nil {
		t.say(msgNoJobSelected)
		return t.invitationRoot()
	}
	jobID := *t.sess.SelectedJobID
	draft := *t.sess.EnsureInvite()

	var ok bool
	err := t.call("send_invitation", func(ctx context.Context) (err error) {
		ok, err = t.e.backend.SendInvitation(ctx, t.sess.Credentials(), jobID, draft)
		return err
	})
	if err != nil {
		return err
	}
	t.audit(domain.ActionInvitation, ok, "job "+strconv.FormatInt(jobID, 10))
	logger.Info(t.ctx, component, "invitation.sent",
		slog.Int64("job_id", jobID),
		slog.Bool("ok", ok),
		slog.Bool("email", draft.EmailChannel),
		slog.Bool("voice", draft.VoiceChannel),
	)

	if ok {
		t.say(msgInvitationSent)
	} else {
		t.say(msgInvitationFailed)
	}
	return t.invitationRoot()
}
