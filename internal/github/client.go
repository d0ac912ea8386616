// Package github looks up the live state of the pull requests and workflow
// runs the board backend links to tickets.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"github.com/google/go-github/v41/github"
	"golang.org/x/oauth2"

	"github.com/danielolaszy/boardctl/internal/config"
	"github.com/danielolaszy/boardctl/internal/logging"
	"github.com/danielolaszy/boardctl/internal/tickets"
	"github.com/danielolaszy/boardctl/pkg/models"
)

// Client encapsulates the GitHub API client.
type Client struct {
	client *github.Client
}

// APIURL returns the REST endpoint for a GitHub domain. An empty domain means
// github.com; anything else is treated as GitHub Enterprise.
func APIURL(domain string) string {
	if domain == "" || domain == config.DefaultGitHubDomain {
		return "https://api.github.com/"
	}
	return fmt.Sprintf("https://%s/api/v3/", domain)
}

// NewClient creates a GitHub client from configuration. The token is not
// checked until the first call; use Verify to check it up front.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	if err := config.ValidateGitHubConfig(cfg); err != nil {
		return nil, err
	}

	apiURL := APIURL(cfg.GitHub.Domain)
	logging.Debug("github configuration",
		"domain", cfg.GitHub.Domain,
		"api_url", apiURL,
		"token", logging.MaskSensitive(cfg.GitHub.Token))

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GitHub.Token})
	return newClient(oauth2.NewClient(ctx, ts), apiURL)
}

// newClient builds a client against an explicit API URL.
func newClient(hc *http.Client, apiURL string) (*Client, error) {
	parsedURL, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid github api url: %w", err)
	}

	client := github.NewClient(hc)
	client.BaseURL = parsedURL
	// Enterprise serves uploads from the same endpoint.
	client.UploadURL = parsedURL

	return &Client{client: client}, nil
}

// Verify checks the token by fetching the authenticated user.
func (c *Client) Verify(ctx context.Context) (string, error) {
	user, resp, err := c.client.Users.Get(ctx, "")
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		logging.Error("failed to test github token", "error", err, "status_code", status)
		return "", fmt.Errorf("error testing github token: %w", err)
	}

	logging.Debug("github authentication successful", "username", user.GetLogin())
	return user.GetLogin(), nil
}

// PullRequestRef identifies a pull request.
type PullRequestRef struct {
	Owner  string
	Repo   string
	Number int
}

// RunRef identifies a workflow run.
type RunRef struct {
	Owner string
	Repo  string
	ID    int64
}

var (
	pullURLPattern = regexp.MustCompile(`^/([^/]+)/([^/]+)/pull/(\d+)/?$`)
	runURLPattern  = regexp.MustCompile(`^/([^/]+)/([^/]+)/actions/runs/(\d+)/?$`)
)

// ParsePullRequestURL extracts owner, repo and number from a pull request
// html URL such as https://github.com/acme/web/pull/12.
func ParsePullRequestURL(raw string) (PullRequestRef, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return PullRequestRef{}, fmt.Errorf("invalid pull request url %q: %w", raw, err)
	}

	m := pullURLPattern.FindStringSubmatch(u.Path)
	if m == nil {
		return PullRequestRef{}, fmt.Errorf("not a pull request url: %q", raw)
	}

	number, err := strconv.Atoi(m[3])
	if err != nil {
		return PullRequestRef{}, fmt.Errorf("invalid pull request number in %q: %w", raw, err)
	}
	return PullRequestRef{Owner: m[1], Repo: m[2], Number: number}, nil
}

// ParseWorkflowRunURL extracts owner, repo and run id from a workflow run
// html URL such as https://github.com/acme/web/actions/runs/987.
func ParseWorkflowRunURL(raw string) (RunRef, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return RunRef{}, fmt.Errorf("invalid workflow run url %q: %w", raw, err)
	}

	m := runURLPattern.FindStringSubmatch(u.Path)
	if m == nil {
		return RunRef{}, fmt.Errorf("not a workflow run url: %q", raw)
	}

	id, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return RunRef{}, fmt.Errorf("invalid run id in %q: %w", raw, err)
	}
	return RunRef{Owner: m[1], Repo: m[2], ID: id}, nil
}

// PullRequestState returns "merged", "open" or "closed".
func (c *Client) PullRequestState(ctx context.Context, ref PullRequestRef) (string, error) {
	pr, _, err := c.client.PullRequests.Get(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		logging.Error("failed to get pull request",
			"repository", ref.Owner+"/"+ref.Repo,
			"number", ref.Number,
			"error", err)
		return "", fmt.Errorf("failed to get pull request %s/%s#%d: %w", ref.Owner, ref.Repo, ref.Number, err)
	}

	if pr.GetMerged() {
		return "merged", nil
	}
	return pr.GetState(), nil
}

// RunConclusion returns the run status and its conclusion. The conclusion is
// nil while the run is still going.
func (c *Client) RunConclusion(ctx context.Context, ref RunRef) (string, *string, error) {
	run, _, err := c.client.Actions.GetWorkflowRunByID(ctx, ref.Owner, ref.Repo, ref.ID)
	if err != nil {
		logging.Error("failed to get workflow run",
			"repository", ref.Owner+"/"+ref.Repo,
			"run_id", ref.ID,
			"error", err)
		return "", nil, fmt.Errorf("failed to get workflow run %s/%s %d: %w", ref.Owner, ref.Repo, ref.ID, err)
	}
	return run.GetStatus(), run.Conclusion, nil
}

// Check is one linked GitHub record of a ticket with its live state.
type Check struct {
	Kind       string `json:"kind" yaml:"kind"`
	Name       string `json:"name" yaml:"name"`
	Repository string `json:"repository" yaml:"repository"`
	URL        string `json:"url" yaml:"url"`
	Recorded   string `json:"recorded" yaml:"recorded"`
	Live       string `json:"live" yaml:"live"`
	Icon       string `json:"icon" yaml:"icon"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

const (
	KindPullRequest = "pull request"
	KindWorkflowRun = "workflow run"
)

// CheckTicket resolves every linked pull request and workflow run. A record
// that cannot be resolved is reported with Error set; it does not stop the
// others.
func (c *Client) CheckTicket(ctx context.Context, t tickets.Ticket) []Check {
	checks := make([]Check, 0, len(t.LinkedPullRequests)+len(t.LinkedWorkflowRuns))

	for _, pr := range t.LinkedPullRequests {
		checks = append(checks, c.checkPullRequest(ctx, pr))
	}
	for _, run := range t.LinkedWorkflowRuns {
		checks = append(checks, c.checkRun(ctx, run))
	}

	return checks
}

func (c *Client) checkPullRequest(ctx context.Context, pr models.PullRequest) Check {
	check := Check{
		Kind:       KindPullRequest,
		Name:       pr.Title,
		Repository: pr.RepositoryName,
		URL:        pr.HTMLURL,
		Recorded:   pr.PullRequestStatus,
	}

	ref, err := ParsePullRequestURL(pr.HTMLURL)
	if err != nil {
		check.Error = err.Error()
		return check
	}

	state, err := c.PullRequestState(ctx, ref)
	if err != nil {
		check.Error = err.Error()
		return check
	}
	check.Live = state
	return check
}

func (c *Client) checkRun(ctx context.Context, run models.WorkflowRun) Check {
	check := Check{
		Kind:       KindWorkflowRun,
		Name:       run.Name,
		Repository: run.RepositoryName,
		URL:        run.HTMLURL,
		Icon:       tickets.ConclusionIcon(run.Conclusion),
	}
	if run.Conclusion != nil {
		check.Recorded = *run.Conclusion
	}

	ref, err := ParseWorkflowRunURL(run.HTMLURL)
	if err != nil {
		check.Error = err.Error()
		return check
	}

	status, conclusion, err := c.RunConclusion(ctx, ref)
	if err != nil {
		check.Error = err.Error()
		return check
	}

	check.Live = status
	if conclusion != nil {
		check.Live = *conclusion
	}
	check.Icon = tickets.ConclusionIcon(conclusion)
	return check
}
