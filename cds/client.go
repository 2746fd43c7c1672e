package cds

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	. "boreas/helper"

	"github.com/cenkalti/backoff/v4"
	"github.com/xhhuango/json"
	_ "golang.org/x/net/http2"
)

// Retriever is what the download pipeline consumes. The concrete Client
// talks to the Copernicus Climate Data Store; tests substitute fakes.
type Retriever interface {
	Retrieve(dataset string, req Request) (Result, error)
}

// Result is a completed retrieval job whose output can be fetched.
type Result interface {
	Download(target string) error
}

// Credentials hold the retrieval-service endpoint and token. Empty
// values are passed through unchanged; the service's own auth failure
// is the failure mode for missing keys.
type Credentials struct {
	URL string
	Key string
}

// CredentialsFromEnv reads CDSAPI_URL and CDSAPI_KEY. Call it once at
// startup and hand the result to NewClient; nothing else reads the
// environment.
func CredentialsFromEnv() Credentials {
	return Credentials{
		URL: os.Getenv("CDSAPI_URL"),
		Key: os.Getenv("CDSAPI_KEY"),
	}
}

type ClientOptions struct {
	Credentials Credentials
	HTTPClient  *http.Client
	// PollTimeout bounds how long one retrieval may sit in the remote
	// queue before the client gives up. Zero means two hours.
	PollTimeout time.Duration
}

type Client struct {
	url         string
	key         string
	httpClient  *http.Client
	pollTimeout time.Duration
}

func NewClient(options ClientOptions) *Client {
	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Minute}
	}

	pollTimeout := options.PollTimeout
	if pollTimeout == 0 {
		pollTimeout = 2 * time.Hour
	}

	return &Client{
		url:         options.Credentials.URL,
		key:         options.Credentials.Key,
		httpClient:  httpClient,
		pollTimeout: pollTimeout,
	}
}

type jobResponse struct {
	JobID   string `json:"jobID"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type resultsResponse struct {
	Asset struct {
		Value struct {
			Href string `json:"href"`
		} `json:"value"`
	} `json:"asset"`
}

func (c *Client) doJSON(method, url string, body []byte, out any) error {
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("[CDS] creating request: %w", err)
	}
	req.Header.Set("PRIVATE-TOKEN", c.key)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("[CDS] %s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("[CDS] reading response: %w", err)
	}

	if resp.StatusCode >= 300 {
		if len(payload) > 512 {
			payload = payload[:512]
		}
		return fmt.Errorf("[CDS] %s %s: status %d: %s", method, url, resp.StatusCode, payload)
	}

	return json.Unmarshal(payload, out)
}

// Retrieve submits the request and blocks until the remote job leaves
// the queue. The returned Result fetches the produced file.
func (c *Client) Retrieve(dataset string, request Request) (Result, error) {
	body, err := json.Marshal(map[string]any{"inputs": request})
	if err != nil {
		return nil, fmt.Errorf("[CDS] encoding request: %w", err)
	}

	var job jobResponse
	submitURL := fmt.Sprintf("%s/retrieve/v1/processes/%s/execution", c.url, dataset)
	if err := c.doJSON(http.MethodPost, submitURL, body, &job); err != nil {
		return nil, err
	}

	Log.Info().Msgf("[CDS] %s: job %s %s", dataset, job.JobID, job.Status)

	if err := c.waitForJob(&job); err != nil {
		return nil, err
	}

	var results resultsResponse
	resultsURL := fmt.Sprintf("%s/retrieve/v1/jobs/%s/results", c.url, job.JobID)
	if err := c.doJSON(http.MethodGet, resultsURL, nil, &results); err != nil {
		return nil, err
	}
	if results.Asset.Value.Href == "" {
		return nil, fmt.Errorf("[CDS] job %s: results carry no asset", job.JobID)
	}

	return &remoteResult{client: c, href: results.Asset.Value.Href}, nil
}

var errJobRunning = fmt.Errorf("[CDS] job still running")

func (c *Client) waitForJob(job *jobResponse) error {
	statusURL := fmt.Sprintf("%s/retrieve/v1/jobs/%s", c.url, job.JobID)

	poll := backoff.NewExponentialBackOff()
	poll.InitialInterval = 2 * time.Second
	poll.MaxInterval = 30 * time.Second
	poll.MaxElapsedTime = c.pollTimeout

	return backoff.Retry(func() error {
		var status jobResponse
		if err := c.doJSON(http.MethodGet, statusURL, nil, &status); err != nil {
			return backoff.Permanent(err)
		}

		switch status.Status {
		case "successful":
			return nil
		case "failed", "dismissed":
			return backoff.Permanent(fmt.Errorf("[CDS] job %s %s: %s", job.JobID, status.Status, status.Message))
		default:
			Log.Debug().Msgf("[CDS] job %s: %s", job.JobID, status.Status)
			return errJobRunning
		}
	}, poll)
}

type remoteResult struct {
	client *Client
	href   string
}

// Download streams the result asset into target. The write goes
// through a sibling temp file and a rename so a partial download never
// lands on the canonical path.
func (r *remoteResult) Download(target string) error {
	req, err := http.NewRequest(http.MethodGet, r.href, nil)
	if err != nil {
		return fmt.Errorf("[DL] creating request: %w", err)
	}
	req.Header.Set("PRIVATE-TOKEN", r.client.key)

	resp, err := r.client.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("[DL] getting asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("[DL] non-200 status code: %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), filepath.Base(target)+".part")
	if err != nil {
		return fmt.Errorf("[DL] creating temp file: %w", err)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("[DL] copying asset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("[DL] closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("[DL] moving into place: %w", err)
	}

	return nil
}
