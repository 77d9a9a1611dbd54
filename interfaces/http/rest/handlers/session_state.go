package handlers

import (
	"net/http"

	"pathshala-backend/application/services"
	"pathshala-backend/domain/session"
	"pathshala-backend/interfaces/http/rest/middleware"
)

// installSession routes a reconciliation result through the session
// manager's generation guard before persisting it as cookies. A result
// computed against a session that has since been replaced is dropped; the
// cookies then restate whichever session won.
func installSession(w http.ResponseWriter, codec *middleware.SessionCodec, mgr *services.SessionManager, startedFrom uint64, next session.Session) session.Session {
	mgr.Apply(startedFrom, next)
	cur := mgr.Current()
	codec.Write(w, cur)
	return cur
}
