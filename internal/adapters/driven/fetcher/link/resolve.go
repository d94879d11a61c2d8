package link

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/custodia-labs/refdesk/internal/core/domain"
)

const driveDownloadURL = "https://drive.google.com/uc?export=download&id="

// Resolve rewrites a share link to a direct-download URL.
//
//	https://drive.google.com/file/d/<id>/view?usp=sharing -> https://drive.google.com/uc?export=download&id=<id>
//	https://drive.google.com/open?id=<id>                  -> same
//	https://www.dropbox.com/s/<key>/doc.pdf?dl=0           -> https://www.dropbox.com/s/<key>/doc.pdf?dl=1
func Resolve(link string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return "", fmt.Errorf("%w: parsing link: %v", domain.ErrInvalidInput, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported link scheme %q", domain.ErrInvalidInput, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: link has no host", domain.ErrInvalidInput)
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case host == "drive.google.com" || host == "docs.google.com":
		if id := driveFileID(u); id != "" {
			return driveDownloadURL + url.QueryEscape(id), nil
		}
	case host == "dropbox.com" || strings.HasSuffix(host, ".dropbox.com"):
		q := u.Query()
		q.Set("dl", "1")
		u.RawQuery = q.Encode()
		return u.String(), nil
	}

	return u.String(), nil
}

// driveFileID extracts the file id from a Drive share URL.
func driveFileID(u *url.URL) string {
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "d" && parts[i+1] != "" {
			return parts[i+1]
		}
	}
	return u.Query().Get("id")
}
