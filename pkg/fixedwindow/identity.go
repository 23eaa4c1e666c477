package fixedwindow

// DetectionMode selects which request signal becomes the rate-limit
// identity.
type DetectionMode string

const (
	// ModeIP partitions by client IP. Requests without a determinable IP
	// are not limited.
	ModeIP DetectionMode = "ip"

	// ModeUser partitions by authenticated user ID. Unauthenticated
	// requests are never limited in this mode.
	ModeUser DetectionMode = "user"

	// ModeIPAndUser prefers the authenticated user ID and falls back to
	// the client IP for anonymous requests.
	ModeIPAndUser DetectionMode = "ip-and-user"
)

func (m DetectionMode) valid() bool {
	switch m {
	case ModeIP, ModeUser, ModeIPAndUser:
		return true
	}
	return false
}

// Request carries the per-request signals the limiter needs: the path being
// accessed, the client IP (empty when unknown), and the authenticated user
// ID (empty for anonymous requests).
type Request struct {
	Path     string
	ClientIP string
	UserID   string
}

// identity derives the rate-limit identity for the request under the given
// mode. The scheme keeps IP-derived and user-derived identities from ever
// colliding into the same key. ok=false means no identity could be
// determined and the request must be admitted without accounting.
func (m DetectionMode) identity(req Request) (scheme, id string, ok bool) {
	switch m {
	case ModeIP:
		if req.ClientIP == "" {
			return "", "", false
		}
		return "ip", req.ClientIP, true

	case ModeUser:
		if req.UserID == "" {
			return "", "", false
		}
		return "user", req.UserID, true

	case ModeIPAndUser:
		if req.UserID != "" {
			return "user", req.UserID, true
		}
		if req.ClientIP != "" {
			return "ip", req.ClientIP, true
		}
		return "", "", false
	}
	return "", "", false
}

// Key builds the storage key for an identity on a path, shaped as
// "<scheme>:<identity>|<path>". Different identities on the same path and
// the same identity on different paths always produce distinct keys.
func Key(scheme, identity, path string) string {
	return scheme + ":" + identity + "|" + path
}
