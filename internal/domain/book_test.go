package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransferDerive(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	days := func(n int) *time.Time {
		d := now.AddDate(0, 0, -n)
		return &d
	}

	t.Run("no start date stays in transit", func(t *testing.T) {
		tr := Transfer{}
		tr.Derive(now, 30)
		assert.Equal(t, TransferStatusInTransit, tr.Status)
		assert.Zero(t, tr.TransferDays)
		assert.Zero(t, tr.OverdueDays)
	})

	t.Run("open transfer within the window", func(t *testing.T) {
		tr := Transfer{StartDate: days(10)}
		tr.Derive(now, 30)
		assert.Equal(t, TransferStatusInTransit, tr.Status)
		assert.Equal(t, 10, tr.TransferDays)
		assert.Zero(t, tr.OverdueDays)
	})

	t.Run("open transfer past the window is overdue", func(t *testing.T) {
		tr := Transfer{StartDate: days(40)}
		tr.Derive(now, 30)
		assert.Equal(t, TransferStatusOverdue, tr.Status)
		assert.Equal(t, 40, tr.TransferDays)
		assert.Equal(t, 10, tr.OverdueDays)
	})

	t.Run("end date completes even when overdue", func(t *testing.T) {
		tr := Transfer{StartDate: days(50), EndDate: days(5)}
		tr.Derive(now, 30)
		assert.Equal(t, TransferStatusCompleted, tr.Status)
		assert.Equal(t, 45, tr.TransferDays)
		assert.Equal(t, 15, tr.OverdueDays)
	})

	t.Run("end before start clamps to zero days", func(t *testing.T) {
		tr := Transfer{StartDate: days(5), EndDate: days(10)}
		tr.Derive(now, 30)
		assert.Equal(t, TransferStatusCompleted, tr.Status)
		assert.Zero(t, tr.TransferDays)
		assert.Zero(t, tr.OverdueDays)
	})

	t.Run("zero window never goes overdue", func(t *testing.T) {
		tr := Transfer{StartDate: days(100)}
		tr.Derive(now, 0)
		assert.Equal(t, TransferStatusInTransit, tr.Status)
		assert.Zero(t, tr.OverdueDays)
	})
}
