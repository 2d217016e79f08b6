package stats

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/anrid/world-population/pkg/logger"
)

var httpClient = &http.Client{Timeout: 60 * time.Second}

func download(url string) ([]byte, error) {
	logger.Infof("Download: '%s'", url)

	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: unexpected status %s", url, resp.Status)
	}

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", url, err)
	}

	return data, nil
}
