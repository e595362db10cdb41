package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopPublisher(t *testing.T) {
	var p Publisher = Noop{}
	assert.NoError(t, p.Publish(context.Background(), BookingCreated, BookingCreatedEvent{}))
	assert.NoError(t, p.Close())
}

func TestNATSConnectFailure(t *testing.T) {
	_, err := NewNATSEventBus("nats://127.0.0.1:1")
	assert.Error(t, err)
}

func TestOTPIssuedEventCarriesNoCode(t *testing.T) {
	raw, err := json.Marshal(OTPIssuedEvent{Email: "a@b.co", ExpiresAt: time.Unix(0, 0).UTC()})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.ElementsMatch(t, []string{"email", "expires_at"}, keys(m))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
