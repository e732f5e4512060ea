package server

import (
	"errors"

	"github.com/kataras/iris/v12"

	"github.com/MPC-IT/calllog-sync/internal/calllog"
	"github.com/MPC-IT/calllog-sync/internal/model"
)

type addRequest struct {
	AccessToken string             `json:"accessToken"`
	UserID      string             `json:"userId"`
	UserEmail   string             `json:"userEmail"`
	Reservation *model.Reservation `json:"reservation" validate:"required"`
}

type updateRequest struct {
	AccessToken string             `json:"accessToken"`
	UserID      string             `json:"userId"`
	UserEmail   string             `json:"userEmail"`
	Old         *model.Reservation `json:"old" validate:"required"`
	New         *model.Reservation `json:"new" validate:"required"`
}

func badRequest(ctx iris.Context, err error) {
	ctx.StatusCode(iris.StatusBadRequest)
	ctx.JSON(iris.Map{"message": err.Error()})
}

// skipped answers a sync request that is silently not performed (missing
// schedule fields or no usable credentials).
func skipped(ctx iris.Context, why string) {
	ctx.JSON(iris.Map{"success": true, "skipped": true, "reason": why})
}

// client builds the per-request sheet backend; a credentials miss is a skip,
// anything else a 400.
func (s *Server) client(ctx iris.Context, accessToken string) (calllog.SheetAPI, bool) {
	api, err := s.clientFor(ctx.Request().Context(), accessToken)
	if err != nil {
		if errors.Is(err, errNoCredentials) {
			skipped(ctx, "no credentials")
		} else {
			badRequest(ctx, err)
		}
		return nil, false
	}
	return api, true
}

// addEntry mirrors a newly created reservation into the Call Log.
func (s *Server) addEntry(ctx iris.Context) {
	var req addRequest
	if err := ctx.ReadJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	r := *req.Reservation
	if r.CallDate == "" || r.StartTime == "" {
		skipped(ctx, "reservation has no call date or start time")
		return
	}

	api, ok := s.client(ctx, req.AccessToken)
	if !ok {
		return
	}

	actor := calllog.Actor{UserID: req.UserID, Email: req.UserEmail}
	result := s.writer.Add(ctx.Request().Context(), api, r, actor)
	ctx.JSON(result)
}

// updateEntry reconciles a reservation update, applying the trigger-field
// predicate first so unrelated edits produce no sheet traffic.
func (s *Server) updateEntry(ctx iris.Context) {
	var req updateRequest
	if err := ctx.ReadJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	if !model.ShouldSyncCallLog(*req.Old, *req.New) {
		ctx.JSON(iris.Map{"success": true, "synced": false})
		return
	}

	if req.New.CallDate == "" || req.New.StartTime == "" {
		skipped(ctx, "reservation has no call date or start time")
		return
	}

	api, ok := s.client(ctx, req.AccessToken)
	if !ok {
		return
	}

	actor := calllog.Actor{UserID: req.UserID, Email: req.UserEmail}
	result := s.writer.Update(ctx.Request().Context(), api, *req.Old, *req.New, actor)
	ctx.JSON(result)
}

// removeEntry is the cancellation hook; the configured policy decides
// whether the row is actually deleted.
func (s *Server) removeEntry(ctx iris.Context) {
	var req addRequest
	if err := ctx.ReadJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	api, ok := s.client(ctx, req.AccessToken)
	if !ok {
		return
	}

	actor := calllog.Actor{UserID: req.UserID, Email: req.UserEmail}
	result := s.writer.Remove(ctx.Request().Context(), api, *req.Reservation, actor)
	ctx.JSON(result)
}

// listAudit returns recent audit events, optionally filtered by
// reservation ID.
func (s *Server) listAudit(ctx iris.Context) {
	if s.audits == nil {
		ctx.StatusCode(iris.StatusServiceUnavailable)
		ctx.JSON(iris.Map{"message": "audit store not configured"})
		return
	}

	reservationID := ctx.URLParamIntDefault("reservationId", 0)
	limit := ctx.URLParamIntDefault("limit", 50)

	events, err := s.audits.Recent(ctx.Request().Context(), uint(reservationID), limit)
	if err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": err.Error()})
		return
	}
	ctx.JSON(iris.Map{"data": events})
}
