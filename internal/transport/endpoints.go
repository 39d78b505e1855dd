package transport

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultBaseURL is the hosted QuickChat backend.
const DefaultBaseURL = "https://quickchat-backend-on0b.onrender.com"

const (
	loginPath  = "/api/v1/login"
	regPath    = "/api/v1/register"
	uploadPath = "/api/v1/media/upload"
	usersPath  = "/api/v1/users"
)

// Endpoints resolves absolute backend URLs from a base.
type Endpoints struct {
	Base string
}

// NewEndpoints trims any trailing slash from base; an empty base means
// DefaultBaseURL.
func NewEndpoints(base string) Endpoints {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return Endpoints{Base: base}
}

func (e Endpoints) Login() string    { return e.Base + loginPath }
func (e Endpoints) Register() string { return e.Base + regPath }
func (e Endpoints) Upload() string   { return e.Base + uploadPath }

// Users is the paginated user listing.
func (e Endpoints) Users(page, limit int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return e.Base + usersPath + "?" + q.Encode()
}
