package crawl

import (
	"net/url"
	"os"
	"strings"

	"github.com/semdegroot/apotheek"
)

// ChildrenURL derives the children-text page URL from a medicine page URL.
// apotheek.nl publishes child dosing texts under a sibling path:
// /medicijnen/paracetamol → /medicijnen/paracetamol-bij-kinderen/kindertekst
func ChildrenURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", apotheek.Errorf(apotheek.EINVALID, "invalid url %q", rawURL)
	}

	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) == 0 || segs[len(segs)-1] == "" {
		return "", apotheek.Errorf(apotheek.EINVALID, "url %q has no path to derive from", rawURL)
	}

	segs[len(segs)-1] += "-bij-kinderen"
	segs = append(segs, "kindertekst")
	u.Path = "/" + strings.Join(segs, "/")
	return u.String(), nil
}

// LoadURLList reads a batch file with one URL per line. Blank lines and
// lines starting with # are skipped.
func LoadURLList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, nil
}
