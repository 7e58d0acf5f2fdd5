package order_test

import (
	"testing"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturnStatusFromString(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		statuses := []order.ReturnStatus{
			order.ReturnNone, order.ReturnPending, order.ReturnApproved,
			order.ReturnRejected, order.ReturnReturned, order.ReturnRefunded,
		}
		for _, s := range statuses {
			parsed, err := order.ReturnStatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("invalid_name", func(t *testing.T) {
		_, err := order.ReturnStatusFromString("declined")
		require.Error(t, err)
	})
}

func TestReturnStatus_IsResolved(t *testing.T) {
	assert.True(t, order.ReturnRejected.IsResolved())
	assert.True(t, order.ReturnRefunded.IsResolved())
	assert.False(t, order.ReturnNone.IsResolved())
	assert.False(t, order.ReturnPending.IsResolved())
	assert.False(t, order.ReturnApproved.IsResolved())
	assert.False(t, order.ReturnReturned.IsResolved())
}

func TestReturnStatus_Resolve(t *testing.T) {
	t.Run("owner_advances_the_workflow", func(t *testing.T) {
		steps := []struct {
			from order.ReturnStatus
			to   order.ReturnStatus
		}{
			{order.ReturnPending, order.ReturnApproved},
			{order.ReturnPending, order.ReturnRejected},
			{order.ReturnApproved, order.ReturnReturned},
			{order.ReturnReturned, order.ReturnRefunded},
		}
		for _, step := range steps {
			next, err := step.from.Resolve(step.to, order.RoleOwner)
			require.NoError(t, err, "%s -> %s", step.from, step.to)
			assert.Equal(t, step.to, next)
		}
	})

	t.Run("customer_cannot_resolve", func(t *testing.T) {
		_, err := order.ReturnPending.Resolve(order.ReturnApproved, order.RoleCustomer)
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("skipping_states_is_rejected", func(t *testing.T) {
		for _, bad := range []struct {
			from order.ReturnStatus
			to   order.ReturnStatus
		}{
			{order.ReturnPending, order.ReturnReturned},
			{order.ReturnPending, order.ReturnRefunded},
			{order.ReturnApproved, order.ReturnRefunded},
			{order.ReturnRejected, order.ReturnApproved},
			{order.ReturnRefunded, order.ReturnPending},
		} {
			_, err := bad.from.Resolve(bad.to, order.RoleOwner)
			require.Error(t, err, "%s -> %s", bad.from, bad.to)
			require.ErrorIs(t, err, errs.ErrInvalidTransition)
		}
	})
}

func TestReturnReasonFromString(t *testing.T) {
	t.Run("vocabulary", func(t *testing.T) {
		for _, raw := range []string{"broken", "spoiled", "expired", "wrong_item", "other"} {
			reason, err := order.ReturnReasonFromString(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, reason.String())
		}
	})

	t.Run("invalid_reason", func(t *testing.T) {
		_, err := order.ReturnReasonFromString("changed_my_mind")
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRestoreReturnRequest(t *testing.T) {
	t.Run("restores_persisted_request", func(t *testing.T) {
		filed := time.Now()
		items := []kernel.UUID{kernel.NewUUID()}

		req, err := order.RestoreReturnRequest(order.ReturnApproved, order.ReasonSpoiled, "half the crate", items, filed)

		require.NoError(t, err)
		assert.Equal(t, order.ReturnApproved, req.Status())
		assert.Equal(t, order.ReasonSpoiled, req.Reason())
		assert.Equal(t, "half the crate", req.Description())
		assert.Len(t, req.Items(), 1)
		assert.Equal(t, filed, req.RequestedAt())
	})

	t.Run("rejects_none_state", func(t *testing.T) {
		_, err := order.RestoreReturnRequest(order.ReturnNone, order.ReasonOther, "", nil, time.Now())
		require.Error(t, err)
	})

	t.Run("rejects_invalid_reason", func(t *testing.T) {
		_, err := order.RestoreReturnRequest(order.ReturnPending, order.ReasonUnknown, "", nil, time.Now())
		require.Error(t, err)
	})
}
