package web

import (
	"net/http"
	"strings"
)

const inviteCookieName = "reminder_invite_code"

// inviteCodeFromRequest pulls the shared secret from the inviteCode query
// parameter or the invite cookie, in that order.
func inviteCodeFromRequest(r *http.Request) string {
	if code := strings.TrimSpace(r.URL.Query().Get("inviteCode")); code != "" {
		return code
	}
	if c, err := r.Cookie(inviteCookieName); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}

// checkInvite enforces the all-or-nothing access gate. A server configured
// without an invite code runs open (local/dev usage). Returns false after
// writing the rejection response.
func (s *Server) checkInvite(w http.ResponseWriter, r *http.Request) bool {
	want := strings.TrimSpace(s.cfg.InviteCode)
	if want == "" {
		return true
	}
	got := inviteCodeFromRequest(r)
	if got == "" {
		writeError(w, http.StatusUnauthorized, "missing invite code", "provide the inviteCode query parameter or cookie")
		return false
	}
	if got != want {
		writeError(w, http.StatusForbidden, "invalid invite code", "the invite code provided does not grant access")
		return false
	}
	return true
}
