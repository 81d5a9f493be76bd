package google_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/reglet-dev/artifactregistry-auth/repository"
	"github.com/reglet-dev/artifactregistry-auth/repository/google"
)

const helperOutput = `{
  "configuration": {"active_configuration": "default"},
  "credential": {
    "access_token": "ya29.gcloud-token",
    "token_expiry": "2099-01-02T03:04:05Z"
  }
}`

type countingSource struct {
	tokens []*oauth2.Token
	err    error
	calls  int
}

func (s *countingSource) Token() (*oauth2.Token, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	tok := s.tokens[0]
	if len(s.tokens) > 1 {
		s.tokens = s.tokens[1:]
	}
	return tok, nil
}

func staticRunner(out string, err error) google.CommandRunner {
	return func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return []byte(out), err
	}
}

func TestGcloudTokenSource_Token(t *testing.T) {
	ctx := context.Background()

	t.Run("ParsesConfigHelper", func(t *testing.T) {
		var gotName string
		var gotArgs []string
		run := func(_ context.Context, name string, args ...string) ([]byte, error) {
			gotName, gotArgs = name, args
			return []byte(helperOutput), nil
		}

		tok, err := google.NewGcloudTokenSource(ctx, "my-gcloud", run).Token()
		require.NoError(t, err)
		assert.Equal(t, "ya29.gcloud-token", tok.AccessToken)
		assert.Equal(t, time.Date(2099, 1, 2, 3, 4, 5, 0, time.UTC), tok.Expiry.UTC())
		assert.Equal(t, "my-gcloud", gotName)
		assert.Equal(t, []string{"config", "config-helper", "--format=json"}, gotArgs)
	})

	t.Run("NoExpiry", func(t *testing.T) {
		src := google.NewGcloudTokenSource(ctx, "gcloud", staticRunner(`{"credential":{"access_token":"tok"}}`, nil))
		tok, err := src.Token()
		require.NoError(t, err)
		assert.True(t, tok.Expiry.IsZero())
	})

	tests := []struct {
		name    string
		out     string
		runErr  error
		wantErr string
	}{
		{name: "CommandFails", runErr: errors.New("exit status 1"), wantErr: "config-helper"},
		{name: "InvalidJSON", out: "not json", wantErr: "invalid gcloud config-helper output"},
		{name: "MissingToken", out: `{"credential":{}}`, wantErr: "auth login"},
		{name: "BadExpiry", out: `{"credential":{"access_token":"t","token_expiry":"tomorrow"}}`, wantErr: "invalid gcloud token expiry"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := google.NewGcloudTokenSource(ctx, "gcloud", staticRunner(tt.out, tt.runErr)).Token()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultGcloudCommand(t *testing.T) {
	assert.True(t, strings.HasPrefix(google.DefaultGcloudCommand(), "gcloud"))
}

func TestCredential_RefreshIfExpired(t *testing.T) {
	ctx := context.Background()

	t.Run("ReusesValidToken", func(t *testing.T) {
		src := &countingSource{tokens: []*oauth2.Token{
			{AccessToken: "first", Expiry: time.Now().Add(time.Hour)},
		}}
		cred := google.NewCredential(src)

		for range 3 {
			tok, err := cred.RefreshIfExpired(ctx)
			require.NoError(t, err)
			assert.Equal(t, "first", tok.Value())
		}
		assert.Equal(t, 1, src.calls)
	})

	t.Run("RefreshesExpiredToken", func(t *testing.T) {
		src := &countingSource{tokens: []*oauth2.Token{
			{AccessToken: "stale", Expiry: time.Now().Add(-time.Minute)},
			{AccessToken: "fresh", Expiry: time.Now().Add(time.Hour)},
		}}
		cred := google.NewCredential(src)

		tok, err := cred.RefreshIfExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, "stale", tok.Value())

		tok, err = cred.RefreshIfExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, "fresh", tok.Value())
		assert.Equal(t, 2, src.calls)
	})

	t.Run("SourceError", func(t *testing.T) {
		cause := errors.New("metadata server unreachable")
		_, err := google.NewCredential(&countingSource{err: cause}).RefreshIfExpired(ctx)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		src := &countingSource{tokens: []*oauth2.Token{{AccessToken: "x"}}}
		_, err := google.NewCredential(src).RefreshIfExpired(canceled)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, src.calls)
	})
}

func TestDefaultCredentialProvider_GetCredential(t *testing.T) {
	ctx := context.Background()

	t.Run("PrefersApplicationDefault", func(t *testing.T) {
		var gotScopes []string
		gcloudCalls := 0
		provider := google.NewDefaultCredentialProvider(
			google.WithLogger(repository.NewTestLogger()),
			google.WithDefaultFinder(func(_ context.Context, scopes ...string) (oauth2.TokenSource, error) {
				gotScopes = scopes
				return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "adc-token"}), nil
			}),
			google.WithCommandRunner(func(context.Context, string, ...string) ([]byte, error) {
				gcloudCalls++
				return []byte(helperOutput), nil
			}),
		)

		cred, err := provider.GetCredential(ctx)
		require.NoError(t, err)
		tok, err := cred.RefreshIfExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, "adc-token", tok.Value())
		assert.Equal(t, google.DefaultScopes, gotScopes)
		assert.Zero(t, gcloudCalls)
	})

	t.Run("FallsBackToGcloud", func(t *testing.T) {
		var gotCommand string
		provider := google.NewDefaultCredentialProvider(
			google.WithLogger(repository.NewTestLogger()),
			google.WithGcloudCommand("/opt/gcloud/bin/gcloud"),
			google.WithDefaultFinder(func(context.Context, ...string) (oauth2.TokenSource, error) {
				return nil, errors.New("could not find default credentials")
			}),
			google.WithCommandRunner(func(_ context.Context, name string, _ ...string) ([]byte, error) {
				gotCommand = name
				return []byte(helperOutput), nil
			}),
		)

		cred, err := provider.GetCredential(ctx)
		require.NoError(t, err)
		tok, err := cred.RefreshIfExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, "ya29.gcloud-token", tok.Value())
		assert.Equal(t, "/opt/gcloud/bin/gcloud", gotCommand)
	})

	t.Run("BothFail", func(t *testing.T) {
		gcloudErr := errors.New("executable file not found")
		provider := google.NewDefaultCredentialProvider(
			google.WithLogger(repository.NewTestLogger()),
			google.WithScopes("scope-a"),
			google.WithDefaultFinder(func(context.Context, ...string) (oauth2.TokenSource, error) {
				return nil, errors.New("could not find default credentials")
			}),
			google.WithCommandRunner(staticRunner("", gcloudErr)),
		)

		_, err := provider.GetCredential(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, gcloudErr)
		assert.Contains(t, err.Error(), "could not find default credentials")
	})

	t.Run("ServiceAcquiresThroughProvider", func(t *testing.T) {
		provider := google.NewDefaultCredentialProvider(
			google.WithLogger(repository.NewTestLogger()),
			google.WithDefaultFinder(func(context.Context, ...string) (oauth2.TokenSource, error) {
				return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "adc-token"}), nil
			}),
		)
		svc := repository.NewConfigurationService(provider, repository.WithLogger(repository.NewTestLogger()))

		creds, err := svc.AcquireCredentials(ctx)
		require.NoError(t, err)
		assert.Equal(t, "oauth2accesstoken", creds.Username())
		assert.Equal(t, "adc-token", creds.Password())
	})
}
