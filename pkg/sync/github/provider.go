package github

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/mattsolo1/grove-labels/pkg/sync"
)

// Runner executes gh with args in dir and returns its stdout.
type Runner func(ctx context.Context, dir string, args ...string) ([]byte, error)

// GitHubProvider implements the sync.Provider interface for GitHub by
// shelling out to the gh CLI.
type GitHubProvider struct {
	run Runner
}

// NewProvider creates a new GitHubProvider using the gh binary on PATH.
func NewProvider() *GitHubProvider {
	return &GitHubProvider{run: runGH}
}

// NewProviderWithRunner creates a GitHubProvider that calls run instead of gh.
func NewProviderWithRunner(run Runner) *GitHubProvider {
	return &GitHubProvider{run: run}
}

// Name returns the name of the provider.
func (p *GitHubProvider) Name() string {
	return "github"
}

// Fetch lists the issues and/or pull requests selected by source.
func (p *GitHubProvider) Fetch(ctx context.Context, source sync.Source) ([]*sync.Item, error) {
	var allItems []*sync.Item

	if source.Issues {
		issueItems, err := p.fetchItems(ctx, "issue", source)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch issues: %w", err)
		}
		allItems = append(allItems, issueItems...)
	}

	if source.PullRequests {
		prItems, err := p.fetchItems(ctx, "pr", source)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch pull requests: %w", err)
		}
		allItems = append(allItems, prItems...)
	}

	return allItems, nil
}

// ghItem represents the JSON structure returned by 'gh ... list --json'.
type ghItem struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	State     string    `json:"state"`
	URL       string    `json:"url"`
	UpdatedAt time.Time `json:"updatedAt"`
	Author    *struct {
		Login string `json:"login"`
	} `json:"author"`
	Labels []struct {
		Name string `json:"name"`
	} `json:"labels"`
}

func (p *GitHubProvider) fetchItems(ctx context.Context, itemType string, source sync.Source) ([]*sync.Item, error) {
	args := []string{itemType, "list", "--state", "all", "--limit", "200", "--json", "number,title,body,state,url,updatedAt,author,labels"}
	if source.Repo != "" {
		args = append(args, "--repo", source.Repo)
	}

	output, err := p.run(ctx, source.Path, args...)
	if err != nil {
		return nil, fmt.Errorf("gh command failed: %w", err)
	}

	var ghItems []ghItem
	if err := json.Unmarshal(output, &ghItems); err != nil {
		return nil, fmt.Errorf("failed to parse gh JSON output: %w", err)
	}

	items := make([]*sync.Item, 0, len(ghItems))
	for _, item := range ghItems {
		labels := make([]string, 0, len(item.Labels))
		for _, label := range item.Labels {
			labels = append(labels, label.Name)
		}
		var author string
		if item.Author != nil {
			author = item.Author.Login
		}

		items = append(items, &sync.Item{
			ID:        strconv.Itoa(item.Number),
			Type:      itemType,
			Title:     item.Title,
			Body:      item.Body,
			State:     item.State,
			URL:       item.URL,
			Author:    author,
			Labels:    labels,
			UpdatedAt: item.UpdatedAt,
		})
	}

	return items, nil
}

func runGH(ctx context.Context, dir string, args ...string) ([]byte, error) {
	if _, err := exec.LookPath("gh"); err != nil {
		return nil, fmt.Errorf("gh command not found in PATH, please install the GitHub CLI")
	}
	cmd := exec.CommandContext(ctx, "gh", args...)
	cmd.Dir = dir
	return cmd.Output()
}
