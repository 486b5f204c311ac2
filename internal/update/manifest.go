package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ManifestFileName is the name of the update descriptor on the server.
const ManifestFileName = "quran.json"

// Manifest describes the translation database currently published on the
// update server.
type Manifest struct {
	Version       string `json:"version"`
	Date          string `json:"date"`
	FileName      string `json:"fileName"`
	Size          int64  `json:"size"`
	SHA256        string `json:"sha256"`
	SuraCount     int    `json:"suraCount"`
	AyaCount      int    `json:"ayaCount"`
	MinAppVersion string `json:"minAppVersion"`
}

// fetchManifest downloads and decodes the manifest from baseURL.
func fetchManifest(ctx context.Context, client *http.Client, baseURL string) (*Manifest, error) {
	url := joinURL(baseURL, ManifestFileName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build manifest request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch manifest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("manifest request returned status %d", resp.StatusCode)
	}

	var m Manifest
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if m.Version == "" || m.FileName == "" {
		return nil, fmt.Errorf("manifest is missing version or file name")
	}
	return &m, nil
}

func joinURL(base, name string) string {
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return base + "/" + name
}
