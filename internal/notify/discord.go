package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/donaldgifford/dvf-estimator/internal/metrics"
)

const (
	colorGreen  = 0x2ECC71 // estimate produced
	colorOrange = 0xE67E22 // no estimate, follow up manually
)

// ErrRateLimited is returned when the webhook answers 429.
var ErrRateLimited = errors.New("discord rate limited (429)")

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SendLead posts the lead as a single Discord embed.
func (d *DiscordNotifier) SendLead(ctx context.Context, lead *LeadPayload) error {
	payload := discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(lead)},
	}
	return d.post(ctx, payload)
}

func buildEmbed(lead *LeadPayload) discordEmbed {
	name := lead.Lead.Firstname + " " + lead.Lead.Lastname

	embed := discordEmbed{
		Title: fmt.Sprintf("Nouvelle demande d'estimation: %s", name),
		Color: colorOrange,
		Fields: []discordEmbedField{
			{Name: "Email", Value: lead.Lead.Email, Inline: true},
			{Name: "Téléphone", Value: lead.Lead.Phone, Inline: true},
		},
	}
	if !lead.SubmittedAt.IsZero() {
		embed.Timestamp = lead.SubmittedAt.UTC().Format(time.RFC3339)
	}

	if q := lead.Query; q != nil {
		embed.Fields = append(embed.Fields,
			discordEmbedField{Name: "Bien", Value: q.PropertyKind, Inline: true},
			discordEmbedField{Name: "Commune", Value: q.PostalCode + " " + q.Municipality, Inline: true},
			discordEmbedField{Name: "Surface", Value: formatFloat(q.SurfaceM2) + " m²", Inline: true},
		)
	}

	if v := lead.Estimate; v != nil {
		embed.Color = colorGreen
		embed.Fields = append(embed.Fields,
			discordEmbedField{Name: "Estimation", Value: formatEuros(v.EstimatedPrice), Inline: true},
			discordEmbedField{Name: "Prix / m²", Value: formatEuros(v.AveragePricePerM2), Inline: true},
			discordEmbedField{Name: "Comparables", Value: strconv.Itoa(v.ComparableCount), Inline: true},
		)
	} else {
		embed.Description = "Aucune estimation automatique"
		if lead.Reason != "" {
			embed.Description += " (" + lead.Reason + ")"
		}
	}

	return embed
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatEuros renders 186000 as "186 000 €".
func formatEuros(v int64) string {
	s := strconv.FormatInt(v, 10)
	neg := false
	if v < 0 {
		neg = true
		s = s[1:]
	}
	var b []byte
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			b = append(b, ' ')
		}
		b = append(b, s[i])
	}
	out := string(b) + " €"
	if neg {
		out = "-" + out
	}
	return out
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body

	if resp.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
