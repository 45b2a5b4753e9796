package provider

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxProfileBody bounds userinfo responses read from OAuth2 collaborators.
const maxProfileBody = 1 << 20

// Base supplies the post-verification behavior shared by all providers:
// session creation, soft-failure shaping, and redirect policy. Concrete
// providers embed Base and differ only in how they obtain a verification
// result.
type Base struct{}

// Login resolves the verification function and turns its outcome into a
// response. A soft failure (no user) is normalized through HandleAuthError
// and never surfaces as an error. A hard verification or session-creation
// failure is returned to the caller for the error-handling collaborator.
func (b Base) Login(flow Flow, w http.ResponseWriter, r *http.Request, verify VerifyFunc) error {
	result, err := verify(r.Context())
	if err != nil {
		return err
	}

	if result.User == nil {
		message := "Unauthorized"
		code := http.StatusUnauthorized
		if result.Info != nil {
			if result.Info.Message != "" {
				message = result.Info.Message
			}
			if result.Info.Code != 0 {
				code = result.Info.Code
			}
		}
		b.HandleAuthError(flow, w, r, message, code)
		return nil
	}

	if err := flow.CreateSession(w, r, result.User); err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	if flow.SuccessURL != "" {
		http.Redirect(w, r, flow.SuccessURL, http.StatusFound)
		return nil
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged in successfully"})
	return nil
}

// HandleAuthError is the single normalization point for soft authentication
// failures: redirect to the failure URL with the message query-encoded when
// one is configured, a JSON error body otherwise.
func (b Base) HandleAuthError(flow Flow, w http.ResponseWriter, r *http.Request, message string, code int) {
	if message == "" {
		message = "Unauthorized"
	}
	if code == 0 {
		code = http.StatusBadRequest
	}

	if flow.FailureURL != "" {
		sep := "?"
		if strings.Contains(flow.FailureURL, "?") {
			sep = "&"
		}
		http.Redirect(w, r, flow.FailureURL+sep+"message="+url.QueryEscape(message), http.StatusFound)
		return
	}

	writeJSON(w, code, Info{Message: message})
}

// State generates an opaque anti-forgery token for OAuth2 authorization
// requests.
func State() (string, error) {
	b := make([]byte, 18)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GetJSON fetches url with client and decodes the JSON response into dst.
// Non-2xx statuses are errors; callers route them through their hard-failure
// path.
func GetJSON(client *http.Client, url string, dst any) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s responded %d: %s", url, resp.StatusCode, string(body))
	}

	return json.NewDecoder(io.LimitReader(resp.Body, maxProfileBody)).Decode(dst)
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
