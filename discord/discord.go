package discord

import (
	"encoding/json"
	"fmt"
	"github.com/Odunjoy/NaijaStoic-props/cleanup"
	"github.com/Odunjoy/NaijaStoic-props/config"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/go-co-op/gocron"
	"github.com/gtuk/discordwebhook"
	log "github.com/sirupsen/logrus"
	"os"
	"sync"
	"time"
)

// Channel is a webhook destination. Errors go to both channels so the info
// feed stays a complete timeline.
type Channel int

const (
	Timeline Channel = iota
	Alerts
)

const (
	// batchLimit keeps a flushed message under the 2000 character cap.
	batchLimit    = 1800
	flushInterval = 5 * time.Second
	maxRateLimits = 3
)

// outbox collects log lines between flushes.
type outbox struct {
	mu      sync.Mutex
	pending map[Channel][]string
	post    func(url string, m discordwebhook.Message) error
	sleep   func(time.Duration)
}

var box = newOutbox()

func newOutbox() *outbox {
	return &outbox{
		pending: make(map[Channel][]string),
		post:    discordwebhook.SendMessage,
		sleep:   time.Sleep,
	}
}

// Code wraps s in a json code block for readability in the channel.
func Code(s string) string {
	return "```json\n" + s + "\n```"
}

func Infof(f string, args ...any) {
	notify(log.InfoLevel, f, args...)
}

func Warnf(f string, args ...any) {
	notify(log.WarnLevel, f, args...)
}

func Errorf(f string, args ...any) {
	notify(log.ErrorLevel, f, args...)
}

func notify(level log.Level, f string, args ...any) {
	line := f
	if len(args) > 0 {
		line = fmt.Sprintf(f, args...)
	}
	log.StandardLogger().Log(level, line)
	channels := mapset.NewThreadUnsafeSet(Timeline)
	if level <= log.ErrorLevel {
		channels.Add(Alerts)
	}
	box.queue(line, channels)
}

func webhookURL(ch Channel) string {
	if ch == Alerts {
		return config.TheConfig.DiscordWebhookError
	}
	return config.TheConfig.DiscordWebhookInfo
}

// queue drops channels without a configured webhook, so a bare CLI run only
// logs.
func (o *outbox) queue(line string, channels mapset.Set[Channel]) {
	o.mu.Lock()
	defer o.mu.Unlock()
	channels.Each(func(ch Channel) bool {
		if webhookURL(ch) != "" {
			o.pending[ch] = append(o.pending[ch], line)
		}
		return false
	})
}

func (o *outbox) flush() {
	o.mu.Lock()
	taken := o.pending
	o.pending = make(map[Channel][]string)
	o.mu.Unlock()
	for ch, lines := range taken {
		url := webhookURL(ch)
		if url == "" {
			continue
		}
		for _, b := range batches(lines) {
			o.deliver(url, b)
		}
	}
}

// batches joins lines with newlines, starting a new batch before one would
// pass batchLimit. A single oversized line gets a batch of its own.
func batches(lines []string) []string {
	out := make([]string, 0)
	for _, line := range lines {
		last := len(out) - 1
		if last < 0 || len(out[last])+len(line) > batchLimit {
			out = append(out, line)
			continue
		}
		out[last] += "\n" + line
	}
	return out
}

type rateLimited struct {
	Message    string  `json:"message"`
	RetryAfter float64 `json:"retry_after"`
	Global     bool    `json:"global"`
}

// deliver posts content, waiting out Discord rate limits a few times before
// giving up.
func (o *outbox) deliver(url, content string) {
	msg := discordwebhook.Message{
		Username: &config.TheConfig.DiscordName,
		Content:  &content,
	}
	for attempt := 0; ; attempt++ {
		err := o.post(url, msg)
		if err == nil {
			return
		}
		limit := &rateLimited{}
		if json.Unmarshal([]byte(err.Error()), limit) != nil || limit.RetryAfter <= 0 || attempt >= maxRateLimits {
			log.Errorf("error sending message to discord: %v", err)
			return
		}
		o.sleep(time.Duration(limit.RetryAfter * float64(time.Second)))
	}
}

// Start flushes queued lines on a fixed tick and once more on shutdown.
func Start() {
	scheduler := gocron.NewScheduler(time.Now().Location())
	_, err := scheduler.SingletonMode().Every(flushInterval).Do(box.flush)
	if err != nil {
		log.Fatalf("error scheduling discord flush: %v", err)
	}
	scheduler.StartAsync()
	cleanup.AddOnStopFunc(cleanup.Discord, func(_ os.Signal) {
		scheduler.Stop()
		box.flush()
	})
}
