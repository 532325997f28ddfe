package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	httpv1 "github.com/Egor213/Sawmill/internal/controller/http/v1"
	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

const timestampLayout = "2006-01-02 15:04:05.000000"

type options struct {
	URI      string
	Count    int
	Username string
	Password string
	Source   string
	Host     string
	Message  string
}

func main() {
	opts := options{}
	flag.StringVar(&opts.URI, "uri", "http://localhost:6892/intake", "The uri to make HTTP POST requests to")
	flag.IntVar(&opts.Count, "count", 1, "How many log entries to post")
	flag.StringVar(&opts.Username, "username", "", "The username to send as part of Basic authentication")
	flag.StringVar(&opts.Password, "password", "", "The password to send as part of Basic authentication")
	flag.StringVar(&opts.Source, "source", "/var/log/application.log", "Log name of the generated entries")
	flag.StringVar(&opts.Host, "host", "host1234", "Server name of the generated entries")
	flag.StringVar(&opts.Message, "message", "this is the message", "Message of the generated entries")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	client := &http.Client{
		Timeout: 10 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	if err := generate(context.Background(), client, opts, time.Now); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// generate posts opts.Count entries and stops at the first one the server
// does not accept.
func generate(ctx context.Context, client *http.Client, opts options, now func() time.Time) error {
	for i := 0; i < opts.Count; i++ {
		msg := opts.Message
		payload, err := json.Marshal(httpv1.IntakeRequest{
			Timestamp: now().UTC().Format(timestampLayout),
			Source:    opts.Source,
			Host:      opts.Host,
			Message:   &msg,
		})
		if err != nil {
			return err
		}

		if err := post(ctx, client, opts, payload); err != nil {
			return fmt.Errorf("entry %d: %w", i+1, err)
		}
		log.WithField("n", i+1).Info("posted an entry")
	}
	return nil
}

func post(ctx context.Context, client *http.Client, opts options, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, opts.URI, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(opts.Username, opts.Password)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}
