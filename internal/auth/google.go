package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2v2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// googleScopes requests profile and email explicitly.
var googleScopes = []string{
	"openid",
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/userinfo.email",
}

// GoogleAuthenticator implements Authenticator with the Google OAuth code
// flow. The token is cached as a file so a restarted process resumes the
// session.
type GoogleAuthenticator struct {
	oauth     *oauth2.Config
	tokenPath string
	log       zerolog.Logger

	mu      sync.Mutex
	state   State
	user    *User
	subs    map[int]func(State, *User)
	nextSub int
	csrf    string
}

// NewGoogle builds an authenticator for the given OAuth client. tokenPath is
// where the session token is cached.
func NewGoogle(clientID, clientSecret, redirectURL, tokenPath string, log zerolog.Logger) *GoogleAuthenticator {
	return &GoogleAuthenticator{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       googleScopes,
			Endpoint:     google.Endpoint,
		},
		tokenPath: tokenPath,
		log:       log,
		state:     StateLoading,
		subs:      make(map[int]func(State, *User)),
	}
}

// Restore loads a cached token and resolves the initial auth state. It moves
// the authenticator out of StateLoading exactly once, to either signed-in or
// signed-out.
func (g *GoogleAuthenticator) Restore(ctx context.Context) {
	tok, err := g.loadToken()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			g.log.Warn().Err(err).Msg("failed to load cached token")
		}
		g.setState(StateSignedOut, nil)
		return
	}

	user, err := g.fetchUser(ctx, tok)
	if err != nil {
		g.log.Warn().Err(err).Msg("cached session is no longer valid")
		g.setState(StateSignedOut, nil)
		return
	}
	g.log.Info().Str("email", user.Email).Msg("restored session")
	g.setState(StateSignedIn, &user)
}

// AuthURL returns the Google consent URL to redirect the user to. The
// embedded state parameter is checked again in HandleCallback.
func (g *GoogleAuthenticator) AuthURL() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state token: %w", err)
	}
	csrf := hex.EncodeToString(buf)

	g.mu.Lock()
	g.csrf = csrf
	g.mu.Unlock()

	return g.oauth.AuthCodeURL(csrf, oauth2.AccessTypeOffline), nil
}

// HandleCallback finishes the sign-in round trip: it verifies the state
// parameter, exchanges the code, caches the token, and resolves the user's
// profile.
func (g *GoogleAuthenticator) HandleCallback(ctx context.Context, state, code string) (User, error) {
	g.mu.Lock()
	expected := g.csrf
	g.csrf = ""
	g.mu.Unlock()
	if expected == "" || state != expected {
		return User{}, errors.New("state parameter mismatch")
	}

	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return User{}, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	if err := g.saveToken(tok); err != nil {
		g.log.Warn().Err(err).Msg("failed to cache token; session will not survive a restart")
	}

	user, err := g.fetchUser(ctx, tok)
	if err != nil {
		return User{}, err
	}
	g.log.Info().Str("email", user.Email).Msg("signed in")
	g.setState(StateSignedIn, &user)
	return user, nil
}

// SignOut drops the cached token and notifies listeners.
func (g *GoogleAuthenticator) SignOut() error {
	if err := os.Remove(g.tokenPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove cached token: %w", err)
	}
	g.log.Info().Msg("signed out")
	g.setState(StateSignedOut, nil)
	return nil
}

// CurrentUser implements Authenticator.
func (g *GoogleAuthenticator) CurrentUser() (User, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateSignedIn || g.user == nil {
		return User{}, false
	}
	return *g.user, true
}

// OnStateChange implements Authenticator.
func (g *GoogleAuthenticator) OnStateChange(fn func(State, *User)) (cancel func()) {
	g.mu.Lock()
	id := g.nextSub
	g.nextSub++
	g.subs[id] = fn
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		delete(g.subs, id)
		g.mu.Unlock()
	}
}

func (g *GoogleAuthenticator) setState(state State, user *User) {
	g.mu.Lock()
	g.state = state
	g.user = user
	fns := make([]func(State, *User), 0, len(g.subs))
	for _, fn := range g.subs {
		fns = append(fns, fn)
	}
	g.mu.Unlock()

	for _, fn := range fns {
		fn(state, user)
	}
}

// fetchUser resolves the profile behind a token via the Google userinfo API.
func (g *GoogleAuthenticator) fetchUser(ctx context.Context, tok *oauth2.Token) (User, error) {
	httpClient := g.oauth.Client(ctx, tok)
	svc, err := oauth2v2.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return User{}, fmt.Errorf("failed to create userinfo service: %w", err)
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return User{}, fmt.Errorf("failed to fetch userinfo: %w", err)
	}
	return User{
		ID:          info.Id,
		DisplayName: info.Name,
		Email:       info.Email,
		PhotoURL:    info.Picture,
	}, nil
}

func (g *GoogleAuthenticator) loadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(g.tokenPath)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("invalid token file: %w", err)
	}
	return &tok, nil
}

func (g *GoogleAuthenticator) saveToken(tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	return os.WriteFile(g.tokenPath, data, 0600)
}
