package verification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/openskyvn/paragliding-backend/pkg/config"
	pkgerrors "github.com/openskyvn/paragliding-backend/pkg/errors"
	"github.com/openskyvn/paragliding-backend/pkg/logger"
)

// Result is the gate verdict for one submission.
type Result struct {
	Passed bool
	// Bypassed marks verdicts issued in pass-open mode (no secret configured).
	Bypassed   bool
	ErrorCodes []string
}

// Gate decides whether a submission came from a human. It is a hard
// precondition for the rest of the pipeline: a failed verdict must abort
// before any persistence happens.
type Gate interface {
	Verify(ctx context.Context, token, remoteIP string) (Result, error)
}

type gate struct {
	cfg        config.VerificationConfig
	httpClient *http.Client
	logg       *logger.Logger
}

// Option configures optional gate behavior.
type Option func(*gate)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(g *gate) {
		if client != nil {
			g.httpClient = client
		}
	}
}

// NewGate builds the verification gate. When no secret is configured the
// gate runs pass-open, which is logged at startup and on every bypassed
// request.
func NewGate(cfg config.VerificationConfig, logg *logger.Logger, opts ...Option) Gate {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	g := &gate{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logg:       logg,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	if cfg.PassOpen() && logg != nil {
		logg.Warn(context.Background(), "bot verification secret not configured, gate is PASS-OPEN")
	}
	return g
}

func (g *gate) Verify(ctx context.Context, token, remoteIP string) (Result, error) {
	if g.cfg.PassOpen() {
		if g.logg != nil {
			g.logg.Warn(ctx, "bot verification bypassed (pass-open mode)")
		}
		return Result{Passed: true, Bypassed: true}, nil
	}

	if strings.TrimSpace(token) == "" {
		return Result{}, pkgerrors.New(pkgerrors.CodeMissingVerification, "verification token is required")
	}

	form := url.Values{}
	form.Set("secret", g.cfg.Secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.VerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeVerificationFailed, err, "build verification request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// Transport failure is fail-closed: an unreachable provider rejects the
	// submission, it does not wave it through.
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return Result{ErrorCodes: []string{"provider-unreachable"}},
			pkgerrors.Wrap(pkgerrors.CodeVerificationFailed, err, "verification provider unreachable").
				WithDetails([]string{"provider-unreachable"})
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		codes := []string{fmt.Sprintf("provider-status-%d", resp.StatusCode)}
		return Result{ErrorCodes: codes},
			pkgerrors.New(pkgerrors.CodeVerificationFailed, "verification provider returned an error").
				WithDetails(codes)
	}

	var verdict struct {
		Success    bool     `json:"success"`
		ErrorCodes []string `json:"error-codes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return Result{ErrorCodes: []string{"malformed-provider-response"}},
			pkgerrors.Wrap(pkgerrors.CodeVerificationFailed, err, "decode verification response").
				WithDetails([]string{"malformed-provider-response"})
	}

	if !verdict.Success {
		return Result{ErrorCodes: verdict.ErrorCodes},
			pkgerrors.New(pkgerrors.CodeVerificationFailed, "verification token rejected").
				WithDetails(verdict.ErrorCodes)
	}

	return Result{Passed: true}, nil
}
