package plex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/oxholm/drift/pkg/logger"
)

var log = logger.Get("Plex")

const (
	plexSectionsTemplate = "%s/library/sections"
	plexRefreshTemplate  = "%s/library/sections/%s/refresh?path=%s"
)

type (
	Config struct {
		// Base URL of the Plex server, e.g. http://plex:32400.
		URL string `yaml:"url" env:"PLEX_URL"`

		// Auth token sent as X-Plex-Token on every request.
		Token string `yaml:"token" env:"PLEX_TOKEN"`
	}

	// Section is a single Plex library together with the filesystem
	// locations it indexes.
	Section struct {
		Key       string
		Title     string
		Locations []string
	}

	// ScanResult reports one path that a library was asked to scan.
	ScanResult struct {
		Library string
		Path    string
	}

	// Client is a thin wrapper over the subset of the Plex HTTP API
	// that Drift needs: enumerating library sections and triggering
	// partial scans of them.
	// See https://support.plex.tv/articles/201638786-plex-media-server-url-commands/
	Client struct {
		config Config
		http   *http.Client
	}

	FailedRequestError struct {
		httpCode int
		path     string
	}

	UnknownRequestError struct {
		message string
	}

	sectionsResponse struct {
		MediaContainer struct {
			Directory []struct {
				Key      string `json:"key"`
				Title    string `json:"title"`
				Location []struct {
					Path string `json:"path"`
				} `json:"Location"`
			} `json:"Directory"`
		} `json:"MediaContainer"`
	}
)

func (err *FailedRequestError) Error() string {
	return fmt.Sprintf("plex request to %s failed with status %d", err.path, err.httpCode)
}

func (err *UnknownRequestError) Error() string {
	return fmt.Sprintf("plex request failed: %s", err.message)
}

func NewClient(config Config) *Client {
	return &Client{
		config: config,
		http:   &http.Client{Timeout: time.Second * 30},
	}
}

// Sections fetches all library sections from the Plex server, along
// with the filesystem locations each one indexes.
func (client *Client) Sections(ctx context.Context) ([]Section, error) {
	path := fmt.Sprintf(plexSectionsTemplate, client.config.URL)

	var response sectionsResponse
	if err := client.getJSONResponse(ctx, path, &response); err != nil {
		return nil, err
	}

	sections := make([]Section, 0, len(response.MediaContainer.Directory))
	for _, dir := range response.MediaContainer.Directory {
		section := Section{Key: dir.Key, Title: dir.Title}
		for _, location := range dir.Location {
			section.Locations = append(section.Locations, location.Path)
		}

		sections = append(sections, section)
	}

	return sections, nil
}

// ScanPaths asks Plex to scan each of the provided paths, routing every
// path to the library section whose location covers it. Paths that no
// section covers are skipped with a warning; a result is returned for
// each scan that was actually requested.
func (client *Client) ScanPaths(ctx context.Context, paths []string) ([]ScanResult, error) {
	sections, err := client.Sections(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]ScanResult, 0, len(paths))
	for _, path := range paths {
		section := sectionForPath(sections, path)
		if section == nil {
			log.Emit(logger.WARNING, "No library section covers %s, skipping scan\n", path)
			continue
		}

		refreshPath := fmt.Sprintf(plexRefreshTemplate, client.config.URL, section.Key, url.QueryEscape(path))
		if err := client.get(ctx, refreshPath); err != nil {
			return results, err
		}

		results = append(results, ScanResult{Library: section.Title, Path: path})
	}

	return results, nil
}

// sectionForPath returns the section with a location that is a path
// prefix of the given path, or nil if no section covers it.
func sectionForPath(sections []Section, path string) *Section {
	for i, section := range sections {
		for _, location := range section.Locations {
			if path == location || strings.HasPrefix(path, location+string(filepath.Separator)) {
				return &sections[i]
			}
		}
	}

	return nil
}

func (client *Client) getJSONResponse(ctx context.Context, path string, target interface{}) error {
	body, err := client.doGet(ctx, path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, target); err != nil {
		return &UnknownRequestError{fmt.Sprintf("response JSON could not be unmarshalled: %s", err.Error())}
	}

	return nil
}

func (client *Client) get(ctx context.Context, path string) error {
	_, err := client.doGet(ctx, path)
	return err
}

func (client *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, &UnknownRequestError{fmt.Sprintf("failed to construct GET(%s): %s", path, err.Error())}
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("X-Plex-Token", client.config.Token)

	response, err := client.http.Do(request)
	if err != nil {
		return nil, &UnknownRequestError{fmt.Sprintf("failed to perform GET(%s): %s", path, err.Error())}
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &UnknownRequestError{fmt.Sprintf("failed to read response body: %s", err.Error())}
	}

	if response.StatusCode != http.StatusOK {
		return nil, &FailedRequestError{httpCode: response.StatusCode, path: path}
	}

	return body, nil
}
