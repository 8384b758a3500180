package git

import (
	"fmt"
	"strings"
)

// ParseRemoteRepo extracts the "owner/name" pair from a git remote URL.
// Both SSH (git@host:owner/name.git, ssh://git@host/owner/name) and HTTP(S)
// (https://host/owner/name.git) forms are supported.
func ParseRemoteRepo(url string) (string, error) {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return "", fmt.Errorf("empty remote url")
	}

	var path string
	switch {
	case strings.HasPrefix(trimmed, "ssh://"):
		path = pathAfterHost(strings.TrimPrefix(trimmed, "ssh://"))
	case strings.HasPrefix(trimmed, "http://"):
		path = pathAfterHost(strings.TrimPrefix(trimmed, "http://"))
	case strings.HasPrefix(trimmed, "https://"):
		path = pathAfterHost(strings.TrimPrefix(trimmed, "https://"))
	case strings.Contains(trimmed, "@") && strings.Contains(trimmed, ":"):
		// scp-like syntax: git@host:owner/name.git
		path = trimmed[strings.Index(trimmed, ":")+1:]
	default:
		return "", fmt.Errorf("unsupported remote url: %s", url)
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("cannot determine owner/name from remote url: %s", url)
	}

	return parts[0] + "/" + parts[1], nil
}

// pathAfterHost strips the host (and optional user@ prefix) from a
// protocol-less remote, leaving the repository path
func pathAfterHost(remote string) string {
	if at := strings.Index(remote, "@"); at >= 0 {
		remote = remote[at+1:]
	}
	if slash := strings.Index(remote, "/"); slash >= 0 {
		return remote[slash+1:]
	}
	return ""
}
