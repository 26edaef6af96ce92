package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m3rciful/recruitbot/core/logger"
	tghelpers "github.com/m3rciful/recruitbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

func newContext(t *testing.T, upd tele.Update) tele.Context {
	t.Helper()
	b, err := tele.NewBot(tele.Settings{Offline: true})
	require.NoError(t, err)
	return b.NewContext(upd)
}

func textUpdate(id int, userID int64, text string) tele.Update {
	return tele.Update{ID: id, Message: &tele.Message{
		Text:   text,
		Sender: &tele.User{ID: userID},
		Chat:   &tele.Chat{ID: userID, Type: tele.ChatPrivate},
	}}
}

func callbackUpdate(id int, userID int64, data string) tele.Update {
	return tele.Update{ID: id, Callback: &tele.Callback{
		Data:   data,
		Sender: &tele.User{ID: userID},
	}}
}

func TestAdminOnlyMiddleware(t *testing.T) {
	rejected := 0
	mw := AdminOnlyMiddleware(AdminOptions{
		AdminID:  100,
		OnReject: func(tele.Context) error { rejected++; return nil },
	})
	served := 0
	h := mw(func(tele.Context) error { served++; return nil })

	require.NoError(t, h(newContext(t, textUpdate(1, 100, "/stats"))))
	require.NoError(t, h(newContext(t, textUpdate(2, 7, "/stats"))))
	require.Equal(t, 1, served)
	require.Equal(t, 1, rejected)

	closed := AdminOnlyMiddleware(AdminOptions{})(func(tele.Context) error { served++; return nil })
	require.NoError(t, closed(newContext(t, textUpdate(3, 100, "/stats"))))
	require.Equal(t, 1, served)
}

func TestRateLimitMiddleware(t *testing.T) {
	limited := 0
	mw := RateLimitMiddleware(RateLimitOptions{
		Interval:  time.Hour,
		Exclude:   map[string]struct{}{"callback": {}},
		OnLimited: func(tele.Context) error { limited++; return nil },
	})
	served := 0
	h := mw(func(tele.Context) error { served++; return nil })

	require.NoError(t, h(newContext(t, textUpdate(1, 7, "hello"))))
	require.NoError(t, h(newContext(t, textUpdate(2, 7, "again"))))
	require.NoError(t, h(newContext(t, textUpdate(3, 8, "other user"))))
	require.NoError(t, h(newContext(t, callbackUpdate(4, 7, "/back"))))

	require.Equal(t, 3, served)
	require.Equal(t, 1, limited)
}

func TestRecoverMiddleware(t *testing.T) {
	h := RecoverMiddleware(func(tele.Context) error { panic("boom") })
	err := h(newContext(t, textUpdate(1, 7, "x")))
	require.ErrorContains(t, err, "boom")
}

func TestLoggerMiddlewareStoresContext(t *testing.T) {
	c := newContext(t, textUpdate(42, 7, "hello"))
	h := MessageMetricsMiddleware(LoggerMiddleware(func(c tele.Context) error {
		ctx, ok := tghelpers.ContextFrom(c)
		require.True(t, ok)
		require.Equal(t, int64(7), logger.UserIDFrom(ctx))
		require.Equal(t, 42, logger.UpdateIDFrom(ctx))
		require.NotEmpty(t, logger.RIDFrom(ctx))

		tghelpers.CountersFrom(ctx).Add(true)
		return nil
	}))
	require.NoError(t, h(c))

	msgs, kb := GetCounters(c)
	require.Equal(t, 1, msgs)
	require.True(t, kb)
}
