package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "revisit/internal/platform/errors"
)

const (
	StatusAccepted = "Accepted"

	submissionsPageSize = 20
	maxSubmissionPages  = 50
)

const questionQuery = `query questionData($titleSlug: String!) {
  question(titleSlug: $titleSlug) {
    questionId
    title
    titleSlug
    difficulty
    topicTags { name slug }
  }
}`

// Client talks to the LeetCode GraphQL and submissions endpoints.
type Client struct {
	baseURL string
	session string
	http    *http.Client
}

func NewClient(baseURL, session string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
		http:    &http.Client{Timeout: timeout},
	}
}

type TopicTag struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Question struct {
	QuestionID string     `json:"questionId"`
	Title      string     `json:"title"`
	TitleSlug  string     `json:"titleSlug"`
	Difficulty string     `json:"difficulty"`
	TopicTags  []TopicTag `json:"topicTags"`
}

// Submission is one entry of the user's submission history. Timestamp is
// in epoch milliseconds.
type Submission struct {
	ID            int64
	Title         string
	TitleSlug     string
	StatusDisplay string
	Lang          string
	Timestamp     int64
}

func (s Submission) Accepted() bool {
	return s.StatusDisplay == StatusAccepted
}

// Error describes a failed catalog call. It unwraps to apperrors.ErrNotFound
// or apperrors.ErrCatalogUnavailable plus the underlying cause.
type Error struct {
	Op     string
	Status int
	Kind   error
	Cause  error
}

func (e *Error) Error() string {
	msg := "leetcode " + e.Op + ": " + e.Kind.Error()
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func unavailable(op string, status int, cause error) error {
	return &Error{Op: op, Status: status, Kind: apperrors.ErrCatalogUnavailable, Cause: cause}
}

// ============================================================================
// Questions
// ============================================================================

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type questionResponse struct {
	Data struct {
		Question *Question `json:"question"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) Question(ctx context.Context, titleSlug string) (Question, error) {
	const op = "question"
	body, err := json.Marshal(graphQLRequest{
		Query:     questionQuery,
		Variables: map[string]any{"titleSlug": titleSlug},
	})
	if err != nil {
		return Question{}, fmt.Errorf("marshal question query: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/graphql", bytes.NewReader(body))
	if err != nil {
		return Question{}, fmt.Errorf("create question request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.decorate(req)

	var out questionResponse
	if err := c.do(req, op, &out); err != nil {
		return Question{}, err
	}
	if out.Data.Question == nil || out.Data.Question.TitleSlug == "" {
		var cause error
		if len(out.Errors) > 0 {
			cause = errors.New(out.Errors[0].Message)
		}
		return Question{}, &Error{Op: op, Kind: apperrors.ErrNotFound, Cause: cause}
	}
	return *out.Data.Question, nil
}

// ============================================================================
// Submissions
// ============================================================================

type SubmissionsQuery struct {
	// Limit caps the number of submissions returned; zero means every page.
	Limit int
	// Slug restricts the history to one problem.
	Slug string
}

type submissionsPage struct {
	Dump []struct {
		ID            flexInt `json:"id"`
		Title         string  `json:"title"`
		TitleSlug     string  `json:"title_slug"`
		StatusDisplay string  `json:"status_display"`
		Lang          string  `json:"lang"`
		Timestamp     flexInt `json:"timestamp"`
	} `json:"submissions_dump"`
	HasNext bool   `json:"has_next"`
	LastKey string `json:"last_key"`
}

func (c *Client) Submissions(ctx context.Context, q SubmissionsQuery) ([]Submission, error) {
	const op = "submissions"
	if c.session == "" {
		return nil, unavailable(op, 0, errors.New("LEETCODE_SESSION is not configured"))
	}
	out := make([]Submission, 0, submissionsPageSize)
	offset, lastKey := 0, ""
	for page := 0; page < maxSubmissionPages; page++ {
		size := submissionsPageSize
		if q.Limit > 0 && q.Limit-len(out) < size {
			size = q.Limit - len(out)
		}
		params := url.Values{}
		params.Set("offset", strconv.Itoa(offset))
		params.Set("limit", strconv.Itoa(size))
		params.Set("lastkey", lastKey)
		if q.Slug != "" {
			params.Set("question_slug", q.Slug)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/submissions/?"+params.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("create submissions request: %w", err)
		}
		c.decorate(req)

		var resp submissionsPage
		if err := c.do(req, op, &resp); err != nil {
			return nil, err
		}
		for _, s := range resp.Dump {
			out = append(out, Submission{
				ID:            int64(s.ID),
				Title:         s.Title,
				TitleSlug:     s.TitleSlug,
				StatusDisplay: s.StatusDisplay,
				Lang:          s.Lang,
				Timestamp:     int64(s.Timestamp) * 1000,
			})
		}
		if !resp.HasNext || len(resp.Dump) == 0 || (q.Limit > 0 && len(out) >= q.Limit) {
			break
		}
		offset += len(resp.Dump)
		lastKey = resp.LastKey
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// ============================================================================
// HTTP plumbing
// ============================================================================

func (c *Client) decorate(req *http.Request) {
	req.Header.Set("Referer", c.baseURL)
	req.Header.Set("Accept", "application/json")
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: "LEETCODE_SESSION", Value: c.session})
	}
}

func (c *Client) do(req *http.Request, op string, v any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return unavailable(op, 0, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &Error{Op: op, Status: resp.StatusCode, Kind: apperrors.ErrNotFound}
	case resp.StatusCode != http.StatusOK:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return unavailable(op, resp.StatusCode, errors.New(strings.TrimSpace(string(snippet))))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return unavailable(op, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// flexInt accepts JSON numbers and numeric strings.
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("parse int %q: %w", s, err)
	}
	*f = flexInt(n)
	return nil
}
