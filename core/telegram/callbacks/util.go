package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// ParseCallbackData splits callback data into a key and a payload.
//
// Telebot encodes its own buttons as "\f<unique>|<payload>" and already
// strips that form into cb.Unique and cb.Data. Raw data from buttons built
// without a unique is returned whole as the key.
func ParseCallbackData(cb *tele.Callback) (string, string) {
	if cb == nil {
		return "", ""
	}
	if cb.Unique != "" {
		return cb.Unique, cb.Data
	}
	if rest, ok := strings.CutPrefix(cb.Data, "\f"); ok {
		unique, payload, _ := strings.Cut(rest, "|")
		return strings.TrimSpace(unique), payload
	}
	return strings.TrimSpace(cb.Data), ""
}

// CallbackKey returns the routing key of the current callback.
func CallbackKey(c tele.Context) string {
	k, _ := ParseCallbackData(c.Callback())
	return k
}

// CallbackPayload returns the payload of the current callback.
func CallbackPayload(c tele.Context) string {
	_, payload := ParseCallbackData(c.Callback())
	return payload
}
