package discord

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Odunjoy/NaijaStoic-props/config"
	"github.com/gtuk/discordwebhook"
	"github.com/stretchr/testify/assert"
)

type recorder struct {
	mu   sync.Mutex
	sent map[string][]string
	errs []error
}

func (r *recorder) post(url string, m discordwebhook.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errs) > 0 {
		err := r.errs[0]
		r.errs = r.errs[1:]
		return err
	}
	r.sent[url] = append(r.sent[url], *m.Content)
	return nil
}

func withWebhooks(t *testing.T, info, alerts string) *recorder {
	t.Helper()
	old := *config.TheConfig
	oldBox := box
	t.Cleanup(func() {
		*config.TheConfig = old
		box = oldBox
	})
	config.TheConfig.DiscordWebhookInfo = info
	config.TheConfig.DiscordWebhookError = alerts
	r := &recorder{sent: map[string][]string{}}
	box = newOutbox()
	box.post = r.post
	box.sleep = func(time.Duration) {}
	return r
}

func TestBatches(t *testing.T) {
	long := strings.Repeat("a", 1000)
	assert.Equal(t, []string{"one\ntwo\n" + long, long}, batches([]string{"one", "two", long, long}))
	assert.Empty(t, batches(nil))
}

func TestQueueAndFlush(t *testing.T) {
	r := withWebhooks(t, "https://discord.invalid/info", "")

	Infof("generated %d scenes", 3)
	Errorf("boom")
	box.flush()

	assert.Equal(t, []string{"generated 3 scenes\nboom"}, r.sent["https://discord.invalid/info"])
	assert.Len(t, r.sent, 1)
}

func TestErrorsReachBothChannels(t *testing.T) {
	r := withWebhooks(t, "https://discord.invalid/info", "https://discord.invalid/alerts")

	Warnf("placeholder used")
	Errorf("unusable response %s", Code("{}"))
	box.flush()

	assert.Equal(t, []string{"placeholder used\nunusable response ```json\n{}\n```"}, r.sent["https://discord.invalid/info"])
	assert.Equal(t, []string{"unusable response ```json\n{}\n```"}, r.sent["https://discord.invalid/alerts"])
}

func TestNothingQueuedWithoutWebhooks(t *testing.T) {
	withWebhooks(t, "", "")
	Warnf("nothing configured")
	box.mu.Lock()
	defer box.mu.Unlock()
	assert.Empty(t, box.pending)
}

func TestDeliverWaitsOutRateLimit(t *testing.T) {
	r := withWebhooks(t, "https://discord.invalid/info", "")
	var waited []time.Duration
	box.sleep = func(d time.Duration) { waited = append(waited, d) }
	r.errs = []error{errors.New(`{"message":"You are being rate limited.","retry_after":0.5,"global":false}`)}

	box.deliver("https://discord.invalid/info", "hello")
	assert.Equal(t, []time.Duration{500 * time.Millisecond}, waited)
	assert.Equal(t, []string{"hello"}, r.sent["https://discord.invalid/info"])

	r.errs = []error{errors.New("connection refused")}
	box.deliver("https://discord.invalid/info", "dropped")
	assert.Len(t, r.sent["https://discord.invalid/info"], 1)
}
