package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/refconsole/modules/usergroups/domain/aggregates/group"
	"github.com/iota-uz/refconsole/modules/usergroups/domain/entities/user"
	"github.com/iota-uz/refconsole/modules/usergroups/presentation/controllers/dtos"
	"github.com/iota-uz/refconsole/pkg/httpapi"
	"github.com/iota-uz/refconsole/pkg/intl"
	"github.com/iota-uz/refconsole/pkg/transfer"
)

func sessionID(r *http.Request) string {
	return mux.Vars(r)["sid"]
}

// OpenSession accepts an empty body for a new group.
func (c *UserGroupAPIController) OpenSession(w http.ResponseWriter, r *http.Request) {
	var req dtos.OpenSessionRequest
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	snap, err := c.memberships.Open(r.Context(), req.GroupID, user.FindParams{
		Query:      req.Q,
		Department: req.Department,
	})
	writeSession(w, r, http.StatusCreated, snap, err)
}

func (c *UserGroupAPIController) GetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := c.memberships.Get(sessionID(r))
	writeSession(w, r, http.StatusOK, snap, err)
}

func (c *UserGroupAPIController) CloseSession(w http.ResponseWriter, r *http.Request) {
	if !c.memberships.Close(sessionID(r)) {
		httpapi.WriteAPIError(w, r, http.StatusNotFound, httpapi.CodeNotFound,
			intl.T(r.Context(), "UserGroups.Errors.SessionNotFound", "session not found", nil))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RenderList answers with the HTML fragment of one list.
func (c *UserGroupAPIController) RenderList(w http.ResponseWriter, r *http.Request) {
	side := transfer.Side(mux.Vars(r)["side"])
	html, err := c.memberships.Render(r.Context(), sessionID(r), side)
	if err != nil {
		writeSessionError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(html)
}

func (c *UserGroupAPIController) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dtos.RefreshRequest
	if !decode(w, r, &req) {
		return
	}
	snap, err := c.memberships.Refresh(r.Context(), sessionID(r), user.FindParams{
		Query:      req.Q,
		Department: req.Department,
	})
	writeSession(w, r, http.StatusOK, snap, err)
}

func (c *UserGroupAPIController) Filter(w http.ResponseWriter, r *http.Request) {
	var req dtos.FilterRequest
	if !decode(w, r, &req) {
		return
	}
	snap, err := c.memberships.Filter(sessionID(r), req.Side, req.Query)
	writeSession(w, r, http.StatusOK, snap, err)
}

func (c *UserGroupAPIController) Page(w http.ResponseWriter, r *http.Request) {
	var req dtos.PageRequest
	if !decode(w, r, &req) {
		return
	}
	snap, err := c.memberships.Page(sessionID(r), req.Side, req.Page)
	writeSession(w, r, http.StatusOK, snap, err)
}

func (c *UserGroupAPIController) Select(w http.ResponseWriter, r *http.Request) {
	var req dtos.SelectRequest
	if !decode(w, r, &req) {
		return
	}
	snap, err := c.memberships.Select(sessionID(r), req.Side, req.Op, req.Key, req.Selected)
	writeSession(w, r, http.StatusOK, snap, err)
}

func (c *UserGroupAPIController) Transfer(w http.ResponseWriter, r *http.Request) {
	var req dtos.TransferRequest
	if !decode(w, r, &req) {
		return
	}
	snap, err := c.memberships.Transfer(sessionID(r), req.Op, req.Side)
	writeSession(w, r, http.StatusOK, snap, err)
}

func (c *UserGroupAPIController) Zones(w http.ResponseWriter, r *http.Request) {
	var req dtos.ZonesRequest
	if !decode(w, r, &req) {
		return
	}
	snap, err := c.memberships.SetZones(sessionID(r), req.Zones, req.Layouts)
	writeSession(w, r, http.StatusOK, snap, err)
}

func (c *UserGroupAPIController) Pointer(w http.ResponseWriter, r *http.Request) {
	var req dtos.PointerRequest
	if !decode(w, r, &req) {
		return
	}
	switch req.Type {
	case transfer.PointerDown, transfer.PointerMove, transfer.PointerUp, transfer.PointerCancel:
	default:
		httpapi.WriteAPIError(w, r, http.StatusBadRequest, httpapi.CodeInvalidRequest, "unknown pointer event type")
		return
	}
	snap, err := c.memberships.Pointer(sessionID(r), req.Event())
	writeSession(w, r, http.StatusOK, snap, err)
}

func (c *UserGroupAPIController) Save(w http.ResponseWriter, r *http.Request) {
	var dto group.SaveDTO
	if !decode(w, r, &dto) {
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		httpapi.WriteValidationError(w, r, intl.T(r.Context(), "Errors.ValidationFailed", "validation failed", nil), errs)
		return
	}
	snap, err := c.memberships.Save(r.Context(), sessionID(r), &dto)
	writeSession(w, r, http.StatusOK, snap, err)
}
