package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m3rciful/recruitbot/internal/domain"
)

var creds = domain.Credentials{UserID: 42, Secret: "s3cret"}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewWithHTTPClient(srv.URL+"/", srv.Client())
	require.NoError(t, err)
	return c
}

func requireAuth(t *testing.T, r *http.Request) {
	t.Helper()
	user, pass, ok := r.BasicAuth()
	require.True(t, ok)
	require.Equal(t, "42", user)
	require.Equal(t, "s3cret", pass)
	require.NotEmpty(t, r.Header.Get("X-Request-ID"))
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/j_spring_security_check", r.URL.Path)
		require.Empty(t, r.URL.RawQuery)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "42", r.PostForm.Get("j_username"))
		switch r.PostForm.Get("j_password") {
		case "owner":
			_, _ = io.WriteString(w, `{"role":"OWNER"}`)
		case "manager":
			_, _ = io.WriteString(w, `{"role":"MANAGER"}`)
		case "down":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	})
	ctx := context.Background()

	role, ok, err := c.Login(ctx, 42, "owner")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.RoleOwner, role)

	role, ok, err = c.Login(ctx, 42, "manager")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.RoleManager, role)

	_, ok, err = c.Login(ctx, 42, "wrong")
	require.NoError(t, err)
	require.False(t, ok)

	_, _, err = c.Login(ctx, 42, "down")
	require.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestListJobs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requireAuth(t, r)
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/tg/vacancy/list", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":5,"name":"Driver"},{"id":9,"name":"Cook"}]`)
	})

	jobs, err := c.ListJobs(context.Background(), creds)
	require.NoError(t, err)
	require.Equal(t, []domain.Job{{ID: 5, Name: "Driver"}, {ID: 9, Name: "Cook"}}, jobs)
}

func TestListJobsServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := c.ListJobs(context.Background(), creds)
	require.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestUsers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requireAuth(t, r)
		switch r.URL.Path {
		case "/tg/users/list":
			_, _ = io.WriteString(w, `[{"socialUserId":"77","ownerId":42,"name":"Anna","password":"p1"}]`)
		case "/tg/users/add":
			require.Equal(t, "Олег Петров", r.URL.Query().Get("name"))
			_, _ = io.WriteString(w, `{"socialUserId":"78","password":"p2"}`)
		case "/tg/users/delete":
			ok := r.URL.Query().Get("socialUserId") == "77"
			_ = json.NewEncoder(w).Encode(map[string]bool{"success": ok})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	users, ok, err := c.ListUsers(ctx, creds)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []domain.SubUser{{ExternalID: "77", OwnerID: 42, Name: "Anna", Secret: "p1"}}, users)

	user, ok, err := c.AddUser(ctx, creds, "Олег Петров")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.SubUser{ExternalID: "78", Name: "Олег Петров", Secret: "p2"}, user)

	ok, err = c.DeleteUser(ctx, creds, "77")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = c.DeleteUser(ctx, creds, "13")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAddUserWithoutID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"socialUserId":"","password":""}`)
	})
	_, ok, err := c.AddUser(context.Background(), creds, "Anna")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSendInvitation(t *testing.T) {
	var got inviteBody
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requireAuth(t, r)
		require.Equal(t, "/tg/vacancy/createInvitationText/5", r.URL.Path)
		require.Equal(t, "true", r.URL.Query().Get("email"))
		require.Empty(t, r.URL.Query().Get("audio"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"success":true}`)
	})

	ok, err := c.SendInvitation(context.Background(), creds, 5, domain.InviteDraft{
		Name: "Ivan", Phone: "9991234567", Email: "ivan@example.com", EmailChannel: true,
	})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, inviteBody{Name: "Ivan", Phone: "9991234567", Email: "ivan@example.com", EmailInvite: true}, got)
}

func TestRegister(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _, hasAuth := r.BasicAuth()
		require.False(t, hasAuth)
		var body registrationBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "10", body.SocialUserID)
		if body.Email == "taken@example.com" {
			_, _ = io.WriteString(w, `{"success":false,"message":"Email already registered"}`)
			return
		}
		_, _ = io.WriteString(w, `{"success":true}`)
	})
	ctx := context.Background()

	res, err := c.Register(ctx, domain.RegistrationDraft{Name: "Ivan", Email: "ivan@example.com", ExternalID: "10"})
	require.NoError(t, err)
	require.Equal(t, domain.RegistrationResult{Success: true}, res)

	res, err = c.Register(ctx, domain.RegistrationDraft{Name: "Ivan", Email: "taken@example.com", ExternalID: "10"})
	require.NoError(t, err)
	require.Equal(t, domain.RegistrationResult{Message: "Email already registered"}, res)
}

func TestSettings(t *testing.T) {
	var saved map[string]any
	const body = `{"organizationId":"null","managerName":"Ivan","managerEmail":"null","phone":"+7 999","site":null,"companyName":"Acme"}`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requireAuth(t, r)
		require.Equal(t, "/tg/settings", r.URL.Path)
		if r.Method == http.MethodGet {
			_, _ = io.WriteString(w, body)
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&saved))
		_, _ = io.WriteString(w, `{"success":true}`)
	})
	ctx := context.Background()

	settings, err := c.GetSettings(ctx, creds)
	require.NoError(t, err)
	require.Equal(t, &domain.Settings{ManagerName: "Ivan", Phone: "+7 999", CompanyName: "Acme"}, settings)

	settings.OrganizationID = 3
	ok, err := c.SaveSettings(ctx, creds, *settings)
	require.NoError(t, err)
	require.True(t, ok)
	require.EqualValues(t, 3, saved["organizationId"])
	require.Equal(t, "Acme", saved["companyName"])
	require.Nil(t, saved["site"])
}

func TestSettingsNotStored(t *testing.T) {
	for _, body := range []string{`null`, ``, `{"managerName":"null"}`} {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, body)
		})
		settings, err := c.GetSettings(context.Background(), creds)
		require.NoError(t, err, body)
		require.Nil(t, settings, body)
	}
}

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := New(Config{BaseURL: "backend.local"})
	require.Error(t, err)

	c, err := New(Config{BaseURL: "https://backend.local/api/"})
	require.NoError(t, err)
	require.Equal(t, "https://backend.local/api", c.base.String())
}
