// Package backend is the REST client of the recruiting service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m3rciful/recruitbot/core/logger"
	"github.com/m3rciful/recruitbot/core/netutil"
	"github.com/m3rciful/recruitbot/internal/conversation"
	"github.com/m3rciful/recruitbot/internal/domain"
)

const (
	component    = "backend"
	maxBodyBytes = 1 << 20
	ownerMarker  = "OWNER"
)

// ErrUnexpectedStatus reports a non-200 answer that is not a business refusal.
var ErrUnexpectedStatus = errors.New("backend: unexpected status")

// StatusError carries the status of a rejected call.
type StatusError struct {
	Op     string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend: %s: unexpected status %d", e.Op, e.Status)
}

// rejected reports whether err is a 4xx answer, which the service uses for
// business refusals.
func rejected(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status < http.StatusInternalServerError
}

// Is matches ErrUnexpectedStatus.
func (e *StatusError) Is(target error) bool { return target == ErrUnexpectedStatus }

// Code names the error in handler summaries.
func (e *StatusError) Code() string { return "backend_status_" + strconv.Itoa(e.Status) }

// Client talks to the recruiting service. Calls are never retried: several
// endpoints are not idempotent.
type Client struct {
	base *url.URL
	http *http.Client
}

var _ conversation.Backend = (*Client)(nil)

// New builds a Client from cfg.
func New(cfg Config) (*Client, error) {
	cfg = cfg.WithDefaults()
	return NewWithHTTPClient(cfg.BaseURL, netutil.NewHTTPClient(netutil.ClientOptions{Timeout: cfg.Timeout}))
}

// NewWithHTTPClient builds a Client over an existing http.Client.
func NewWithHTTPClient(baseURL string, hc *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("backend: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend: base url %q must be absolute", baseURL)
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: u, http: hc}, nil
}

// request describes one exchange with the service.
type request struct {
	op     string
	method string
	path   string
	query  url.Values
	creds  *domain.Credentials
	// body is sent as JSON, form as a urlencoded body; at most one is set.
	body any
	form url.Values
}

// do performs r and returns the status and body. Only transport failures and
// unreadable bodies are errors here.
func (c *Client) do(ctx context.Context, r request) (int, []byte, error) {
	start := time.Now()
	u := c.base.JoinPath(r.path)
	u.RawQuery = r.query.Encode()

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case r.form != nil:
		body, contentType = strings.NewReader(r.form.Encode()), "application/x-www-form-urlencoded"
	case r.body != nil:
		payload, err := json.Marshal(r.body)
		if err != nil {
			return 0, nil, fmt.Errorf("backend: %s: encode: %w", r.op, err)
		}
		body, contentType = bytes.NewReader(payload), "application/json"
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return 0, nil, fmt.Errorf("backend: %s: %w", r.op, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if r.creds != nil {
		req.SetBasicAuth(strconv.FormatInt(r.creds.UserID, 10), r.creds.Secret)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn(ctx, component, "call",
			slog.String("op", r.op),
			slog.String("status", logger.Status(err)),
			slog.String("request_id", reqID),
			slog.String("err", err.Error()),
			slog.Duration("duration", logger.Took(start)),
		)
		return 0, nil, fmt.Errorf("backend: %s: %w", r.op, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("backend: %s: read body: %w", r.op, err)
	}
	logger.Debug(ctx, component, "call",
		slog.String("op", r.op),
		slog.String("status", "ok"),
		slog.String("request_id", reqID),
		slog.Int("http_status", resp.StatusCode),
		slog.Duration("duration", logger.Took(start)),
	)
	return resp.StatusCode, payload, nil
}

// call performs r and decodes a 200 answer into out.
func (c *Client) call(ctx context.Context, r request, out any) error {
	status, payload, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return &StatusError{Op: r.op, Status: status}
	}
	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("backend: %s: decode: %w", r.op, err)
	}
	return nil
}

// Login checks the credentials. A 200 answer mentioning OWNER grants the
// owner role, any other 200 the manager role. 5xx answers are errors; other
// statuses reject the login.
func (c *Client) Login(ctx context.Context, userID int64, secret string) (domain.Role, bool, error) {
	status, payload, err := c.do(ctx, request{
		op:     "login",
		method: http.MethodPost,
		path:   "/j_spring_security_check",
		form: url.Values{
			"j_username": {strconv.FormatInt(userID, 10)},
			"j_password": {secret},
		},
	})
	switch {
	case err != nil:
		return "", false, err
	case status >= http.StatusInternalServerError:
		return "", false, &StatusError{Op: "login", Status: status}
	case status != http.StatusOK:
		return "", false, nil
	case bytes.Contains(payload, []byte(ownerMarker)):
		return domain.RoleOwner, true, nil
	default:
		return domain.RoleManager, true, nil
	}
}

// ListJobs returns the open vacancies of the organization.
func (c *Client) ListJobs(ctx context.Context, creds domain.Credentials) ([]domain.Job, error) {
	var jobs []domain.Job
	err := c.call(ctx, request{op: "list_jobs", method: http.MethodGet, path: "/tg/vacancy/list", creds: &creds}, &jobs)
	return jobs, err
}

// ListUsers returns the sub-users of an owner.
func (c *Client) ListUsers(ctx context.Context, creds domain.Credentials) ([]domain.SubUser, bool, error) {
	var users []domain.SubUser
	err := c.call(ctx, request{op: "list_users", method: http.MethodGet, path: "/tg/users/list", creds: &creds}, &users)
	if rejected(err) {
		return nil, false, nil
	}
	return users, err == nil, err
}

// AddUser creates a sub-user; the service answers with its id and secret.
func (c *Client) AddUser(ctx context.Context, creds domain.Credentials, name string) (domain.SubUser, bool, error) {
	var user domain.SubUser
	err := c.call(ctx, request{
		op:     "add_user",
		method: http.MethodPost,
		path:   "/tg/users/add",
		query:  url.Values{"name": {name}},
		creds:  &creds,
	}, &user)
	switch {
	case rejected(err):
		return domain.SubUser{}, false, nil
	case err != nil:
		return domain.SubUser{}, false, err
	case domain.IsBlank(user.ExternalID):
		return domain.SubUser{}, false, nil
	}
	user.Name = name
	return user, true, nil
}

// DeleteUser removes the sub-user with externalID.
func (c *Client) DeleteUser(ctx context.Context, creds domain.Credentials, externalID string) (bool, error) {
	return c.success(ctx, request{
		op:     "delete_user",
		method: http.MethodPost,
		path:   "/tg/users/delete",
		query:  url.Values{"socialUserId": {externalID}},
		creds:  &creds,
	})
}

// SendInvitation invites a candidate to jobID over the channels of draft.
func (c *Client) SendInvitation(ctx context.Context, creds domain.Credentials, jobID int64, draft domain.InviteDraft) (bool, error) {
	query := url.Values{}
	if draft.EmailChannel {
		query.Set("email", "true")
	}
	if draft.VoiceChannel {
		query.Set("audio", "true")
	}
	return c.success(ctx, request{
		op:     "send_invitation",
		method: http.MethodPost,
		path:   "/tg/vacancy/createInvitationText/" + strconv.FormatInt(jobID, 10),
		query:  query,
		creds:  &creds,
		body:   newInviteBody(draft),
	})
}

// Register creates an owner account. It needs no credentials.
func (c *Client) Register(ctx context.Context, draft domain.RegistrationDraft) (domain.RegistrationResult, error) {
	var res successBody
	err := c.call(ctx, request{
		op:     "register",
		method: http.MethodPost,
		path:   "/tg/registration",
		body:   newRegistrationBody(draft),
	}, &res)
	if rejected(err) {
		return domain.RegistrationResult{}, nil
	}
	if err != nil {
		return domain.RegistrationResult{}, err
	}
	if res.Success {
		return domain.RegistrationResult{Success: true}, nil
	}
	return domain.RegistrationResult{Message: text(&res.Message)}, nil
}

// GetSettings loads the stored settings; nil means none are stored.
func (c *Client) GetSettings(ctx context.Context, creds domain.Credentials) (*domain.Settings, error) {
	var body settingsBody
	if err := c.call(ctx, request{op: "get_settings", method: http.MethodGet, path: "/tg/settings", creds: &creds}, &body); err != nil {
		return nil, err
	}
	return body.toDomain(), nil
}

// SaveSettings stores settings.
func (c *Client) SaveSettings(ctx context.Context, creds domain.Credentials, settings domain.Settings) (bool, error) {
	return c.success(ctx, request{
		op:     "save_settings",
		method: http.MethodPost,
		path:   "/tg/settings",
		creds:  &creds,
		body:   newSettingsBody(settings),
	})
}

// success performs r and reports the "success" flag of the answer. 4xx
// answers are business failures.
func (c *Client) success(ctx context.Context, r request) (bool, error) {
	var res successBody
	err := c.call(ctx, r, &res)
	if rejected(err) {
		return false, nil
	}
	return res.Success, err
}
