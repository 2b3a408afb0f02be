package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// oauthIdentity is the provider's view of the signed-in user returned by the
// code exchange.
type oauthIdentity struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

var oauthHTTPClient = &http.Client{Timeout: 10 * time.Second}

func (s *Service) exchangeCode(ctx context.Context, code string) (oauthIdentity, error) {
	if s.oauthTokenURL == "" {
		return oauthIdentity{}, errors.New("oauth not configured")
	}

	form := url.Values{"code": {code}, "grant_type": {"authorization_code"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.oauthTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return oauthIdentity{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := oauthHTTPClient.Do(req)
	if err != nil {
		return oauthIdentity{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return oauthIdentity{}, fmt.Errorf("code exchange failed: %s", resp.Status)
	}

	var body struct {
		User oauthIdentity `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return oauthIdentity{}, err
	}
	if body.User.ID == "" {
		return oauthIdentity{}, errors.New("code exchange returned no user")
	}
	return body.User, nil
}

// Callback exchanges an OAuth code for an identity, provisions a profile row
// for first-time users, and returns the path the client should land on:
// onboarding until a profile with worker-type tags exists, the feed after.
func (s *Service) Callback(ctx context.Context, code string) (string, error) {
	identity, err := s.exchangeCode(ctx, code)
	if err != nil {
		return "/feed", err
	}

	var existingID string
	err = s.db.QueryRow(ctx, `SELECT id FROM users WHERE id = $1`, identity.ID).Scan(&existingID)
	if errors.Is(err, pgx.ErrNoRows) {
		username := deriveUsername(identity.Name, identity.Email)
		_, err = s.db.Exec(ctx, `
			INSERT INTO users (id, email, name, username, avatar_url)
			VALUES ($1,$2,$3,$4, NULLIF($5, ''))
		`, identity.ID, identity.Email, displayName(identity), username, identity.AvatarURL)
		if err != nil {
			return "/feed", err
		}
		return "/onboarding", nil
	}
	if err != nil {
		return "/feed", err
	}

	var typeCount int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM user_types WHERE user_id = $1`, identity.ID).Scan(&typeCount); err != nil {
		return "/feed", err
	}
	if typeCount == 0 {
		return "/onboarding", nil
	}
	return "/feed", nil
}

func displayName(identity oauthIdentity) string {
	if identity.Name != "" {
		return identity.Name
	}
	if at := strings.IndexByte(identity.Email, '@'); at > 0 {
		return identity.Email[:at]
	}
	return "User"
}

// deriveUsername builds a unique-enough handle from the display name or the
// email local-part, suffixed with the last four digits of the current unix
// milliseconds.
func deriveUsername(name, email string) string {
	base := strings.ToLower(name)
	if base == "" {
		if at := strings.IndexByte(email, '@'); at > 0 {
			base = strings.ToLower(email[:at])
		}
	}

	var b strings.Builder
	for _, r := range base {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	base = b.String()
	if base == "" {
		base = "user"
	}
	return fmt.Sprintf("%s%04d", base, time.Now().UnixMilli()%10000)
}
