// Package remote lists the tags and branches of a GitHub repository as
// version refs.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"github.com/tsukumogami/versort/internal/buildinfo"
	"github.com/tsukumogami/versort/internal/config"
	"github.com/tsukumogami/versort/internal/httputil"
	"github.com/tsukumogami/versort/internal/log"
	"github.com/tsukumogami/versort/internal/secrets"
	"github.com/tsukumogami/versort/internal/vcs"
	"github.com/tsukumogami/versort/internal/version"
)

const perPage = 100

// Options configures a Lister. The zero value talks to api.github.com
// anonymously.
type Options struct {
	Token      string        // GitHub personal access token
	BaseURL    string        // API base URL, e.g. for GitHub Enterprise or tests
	Timeout    time.Duration // Per-request timeout, 0 means config.DefaultAPITimeout
	Limit      int           // Maximum tags and maximum branches fetched, 0 means config.DefaultRemoteRefLimit
	HTTPClient *http.Client  // Base client, default httputil.NewClient; wrapped with token auth when Token is set
}

// Lister fetches refs from GitHub.
type Lister struct {
	client        *github.Client
	limit         int
	authenticated bool
}

// Listing is the result of ListRefs.
type Listing struct {
	Owner         string
	Repo          string
	DefaultBranch string
	Project       *version.Project
	Refs          []*version.Ref // Tags first, then branches, in API order
}

// New creates a Lister from opts.
func New(opts Options) (*Lister, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = config.DefaultAPITimeout
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = config.DefaultRemoteRefLimit
	}

	base := opts.HTTPClient
	if base == nil {
		base = httputil.NewClient(httputil.Options{
			Timeout:               timeout,
			AllowPrivateRedirects: opts.BaseURL != "",
		})
	}
	httpClient := &http.Client{Transport: base.Transport, CheckRedirect: base.CheckRedirect, Timeout: timeout}
	if opts.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}))
		httpClient.Timeout = timeout
		httpClient.CheckRedirect = base.CheckRedirect
	}

	client := github.NewClient(httpClient)
	client.UserAgent = buildinfo.UserAgent()
	if opts.BaseURL != "" {
		u, err := url.Parse(opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", opts.BaseURL, err)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		client.BaseURL = u
	}

	return &Lister{client: client, limit: limit, authenticated: opts.Token != ""}, nil
}

// NewFromEnv creates a Lister from the VERSORT_* settings. The token comes
// from GITHUB_TOKEN, GH_TOKEN or the config file; without one, requests are
// anonymous.
func NewFromEnv() (*Lister, error) {
	baseURL, err := config.GetGitHubAPIURL()
	if err != nil {
		return nil, err
	}
	token, err := secrets.Get(secrets.GitHubToken)
	if err != nil {
		log.Default().Debug("listing refs anonymously", "reason", err)
	}
	return New(Options{
		Token:   token,
		BaseURL: baseURL,
		Timeout: config.GetAPITimeout(),
		Limit:   config.GetRemoteRefLimit(),
	})
}

// ParseRepo splits "owner/repo" into its parts.
func ParseRepo(s string) (owner, repo string, err error) {
	parts := strings.Split(strings.TrimSuffix(strings.TrimSpace(s), ".git"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo format: %s (expected owner/repo)", s)
	}
	return parts[0], parts[1], nil
}

// ListRefs fetches the repository's default branch, tags and branches.
func (l *Lister) ListRefs(ctx context.Context, repo string) (*Listing, error) {
	owner, name, err := ParseRepo(repo)
	if err != nil {
		return nil, err
	}
	logger := log.Default().With("repo", owner+"/"+name)

	var (
		defaultBranch string
		tags          []string
		branches      []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, _, err := l.client.Repositories.Get(gctx, owner, name)
		if err != nil {
			return l.wrapError(err, owner, name, "failed to get repository")
		}
		defaultBranch = r.GetDefaultBranch()
		return nil
	})
	g.Go(func() error {
		var err error
		tags, err = l.paginate(gctx, func(opts github.ListOptions) ([]string, *github.Response, error) {
			page, resp, err := l.client.Repositories.ListTags(gctx, owner, name, &opts)
			names := make([]string, 0, len(page))
			for _, t := range page {
				names = append(names, t.GetName())
			}
			return names, resp, err
		})
		if err != nil {
			return l.wrapError(err, owner, name, "failed to list tags")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		branches, err = l.paginate(gctx, func(opts github.ListOptions) ([]string, *github.Response, error) {
			page, resp, err := l.client.Repositories.ListBranches(gctx, owner, name, &github.BranchListOptions{ListOptions: opts})
			names := make([]string, 0, len(page))
			for _, b := range page {
				names = append(names, b.GetName())
			}
			return names, resp, err
		})
		if err != nil {
			return l.wrapError(err, owner, name, "failed to list branches")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Info("listed refs", "tags", len(tags), "branches", len(branches), "default_branch", defaultBranch)

	project := &version.Project{Slug: name, RepoType: vcs.Git}
	refs := make([]*version.Ref, 0, len(tags)+len(branches))
	for _, t := range tags {
		refs = append(refs, &version.Ref{Slug: t, VerboseName: t, Type: version.Tag, Project: project})
	}
	for _, b := range branches {
		refs = append(refs, &version.Ref{Slug: b, VerboseName: b, Type: version.Branch, Project: project})
	}

	return &Listing{
		Owner:         owner,
		Repo:          name,
		DefaultBranch: defaultBranch,
		Project:       project,
		Refs:          refs,
	}, nil
}

// Branches returns base with the listing's default branch as the git mapping.
func (l *Listing) Branches(base vcs.Branches) vcs.Branches {
	if l.DefaultBranch == "" {
		return base
	}
	return base.With(map[string]string{vcs.Git: l.DefaultBranch})
}

type pageFunc func(opts github.ListOptions) ([]string, *github.Response, error)

// paginate follows NextPage links until the limit is reached.
func (l *Lister) paginate(ctx context.Context, fetch pageFunc) ([]string, error) {
	var all []string
	opts := github.ListOptions{PerPage: perPage}
	for len(all) < l.limit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, resp, err := fetch(opts)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	if len(all) > l.limit {
		log.Default().Debug("truncating ref listing", "limit", l.limit, "fetched", len(all))
		all = all[:l.limit]
	}
	return all, nil
}

func (l *Lister) wrapError(err error, owner, repo, msg string) error {
	var rateLimitErr *github.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			Limit:         rateLimitErr.Rate.Limit,
			Remaining:     rateLimitErr.Rate.Remaining,
			ResetTime:     rateLimitErr.Rate.Reset.Time,
			Authenticated: l.authenticated,
			Err:           err,
		}
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		rle := &RateLimitError{Authenticated: l.authenticated, Err: err}
		if d := abuseErr.GetRetryAfter(); d > 0 {
			rle.ResetTime = time.Now().Add(d)
		}
		return rle
	}
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil && respErr.Response.StatusCode == http.StatusNotFound {
		return &RepoNotFoundError{Owner: owner, Repo: repo, Err: err}
	}
	return fmt.Errorf("%s %s/%s: %w", msg, owner, repo, err)
}
