package chathandler

import (
	"encoding/base64"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClientIdentity is a pseudo-identity derived from connection metadata.
// It is stable for a given client but carries no account semantics.
type ClientIdentity struct {
	UserID   string
	UserName string
}

// IdentifyClient derives a pseudo-identity from the client IP and user agent.
func IdentifyClient(c *gin.Context) ClientIdentity {
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	ua := c.Request.UserAgent()
	if ua == "" {
		ua = "unknown"
	}
	if len(ua) > 50 {
		ua = ua[:50]
	}

	hash := base64.StdEncoding.EncodeToString([]byte(ip + "-" + ua))
	if len(hash) > 12 {
		hash = hash[:12]
	}

	label := hash
	if len(label) > 6 {
		label = label[:6]
	}

	return ClientIdentity{
		UserID:   "user_" + hash,
		UserName: "User " + strings.ToUpper(label),
	}
}
