package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/plexdi/studio/modules/billing/infrastructure/payments"
	"github.com/plexdi/studio/modules/commissions/infrastructure/cache"
	"github.com/plexdi/studio/modules/commissions/infrastructure/studioapi"
	"github.com/plexdi/studio/modules/commissions/presentation/controllers/dtos"
	"github.com/plexdi/studio/modules/commissions/services"
	"github.com/plexdi/studio/pkg/composables"
	"github.com/plexdi/studio/pkg/httpapi"
)

// writeUpstreamError translates service failures into API responses,
// surfacing server-provided messages verbatim where available.
func writeUpstreamError(ctx context.Context, w http.ResponseWriter, err error) {
	var remoteErr *studioapi.RemoteError
	if errors.As(err, &remoteErr) {
		httpapi.WriteError(ctx, w, http.StatusBadGateway, remoteErr.Message, dtos.ErrorCodeUpstream)
		return
	}
	var checkoutErr *payments.CheckoutError
	if errors.As(err, &checkoutErr) {
		httpapi.WriteError(ctx, w, http.StatusBadGateway, checkoutErr.Message, dtos.ErrorCodeUpstream)
		return
	}
	switch {
	case errors.Is(err, services.ErrStaleView):
		httpapi.WriteError(ctx, w, http.StatusConflict, err.Error(), dtos.ErrorCodeStaleView)
	case errors.Is(err, cache.ErrNotCached):
		httpapi.WriteError(ctx, w, http.StatusNotFound, "commission not found", dtos.ErrorCodeNotFound)
	default:
		composables.UseLogger(ctx).WithError(err).Error("upstream call failed")
		httpapi.WriteError(ctx, w, http.StatusBadGateway, "upstream request failed", dtos.ErrorCodeUpstream)
	}
}
