// Package selfupdate checks GitHub releases for a newer mindora binary
// and replaces the running executable with it.
package selfupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	DefaultOwner = "mindora-app"
	DefaultRepo  = "mindora"

	defaultAPIBaseURL      = "https://api.github.com"
	defaultDownloadBaseURL = "https://github.com"
)

// Checker talks to the GitHub releases of one repository.
type Checker struct {
	client          *http.Client
	owner, repo     string
	apiBaseURL      string
	downloadBaseURL string
	execPath        func() (string, error)
}

// Option customizes a Checker.
type Option func(*Checker)

func WithHTTPClient(c *http.Client) Option { return func(ch *Checker) { ch.client = c } }

// WithBaseURLs points the checker at another API and download host.
func WithBaseURLs(api, download string) Option {
	return func(ch *Checker) {
		ch.apiBaseURL = strings.TrimRight(api, "/")
		ch.downloadBaseURL = strings.TrimRight(download, "/")
	}
}

// WithExecPath overrides how the binary to replace is located.
func WithExecPath(f func() (string, error)) Option { return func(ch *Checker) { ch.execPath = f } }

func NewChecker(owner, repo string, opts ...Option) *Checker {
	c := &Checker{
		client:          &http.Client{Timeout: 60 * time.Second},
		owner:           owner,
		repo:            repo,
		apiBaseURL:      defaultAPIBaseURL,
		downloadBaseURL: defaultDownloadBaseURL,
		execPath:        os.Executable,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type CheckInput struct {
	Version string
}

type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
}

// Check asks GitHub for the latest release tag and compares it with
// the running version. Both are read as semver with or without a
// leading "v"; a current version that is not semver never reports an
// update.
func (c *Checker) Check(ctx context.Context, in *CheckInput) (*CheckResult, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.apiBaseURL, c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query latest release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("query latest release: HTTP %d", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}

	current, latest := canonical(in.Version), canonical(release.TagName)
	if latest == "" {
		return nil, fmt.Errorf("release tag %q is not a semantic version", release.TagName)
	}
	return &CheckResult{
		CurrentVersion:  in.Version,
		LatestVersion:   release.TagName,
		UpdateAvailable: current != "" && semver.Compare(latest, current) > 0,
	}, nil
}

func canonical(v string) string {
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}
