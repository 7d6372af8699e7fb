package app

import (
	"context"
	"time"

	"github.com/campusworks/campusmarket/internal/domain"
	"go.uber.org/zap"
)

// Task types understood by the row-driven scheduler.
const (
	TaskCartSweep     = "cart_sweep"
	TaskMessageDigest = "message_digest"
)

// StartSchedulerService polls enabled scheduler rows and runs the ones
// whose next_run_at has passed.
func (a *Application) StartSchedulerService(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.runSchedulers()
			}
		}
	}()
}

func (a *Application) runSchedulers() {
	var schedulers []domain.MarketScheduler
	a.gormDB.Where("status = ?", "enabled").Find(&schedulers)
	now := time.Now()
	for i := range schedulers {
		sched := &schedulers[i]
		if sched.NextRunAt.IsZero() || !now.Before(sched.NextRunAt) {
			a.runScheduler(sched)
		}
	}
}

func (a *Application) runScheduler(sched *domain.MarketScheduler) {
	result := "success"
	var err error
	switch sched.TaskType {
	case TaskCartSweep:
		err = a.runCartSweep()
	case TaskMessageDigest:
		err = a.runMessageDigest()
	default:
		result = "unknown task type"
	}
	if err != nil {
		result = err.Error()
		if len(result) > 64 {
			result = result[:64]
		}
	}

	now := time.Now()
	a.gormDB.Model(&domain.MarketScheduler{}).Where("id = ?", sched.ID).Updates(map[string]interface{}{
		"last_run_at": now,
		"last_result": result,
		"next_run_at": now.Add(time.Duration(sched.Interval) * time.Second),
	})
}

// RunSchedulerNow triggers a scheduler execution immediately by ID
func (a *Application) RunSchedulerNow(id int64) error {
	var sched domain.MarketScheduler
	if err := a.gormDB.First(&sched, id).Error; err != nil {
		return err
	}
	a.runScheduler(&sched)
	return nil
}

// runCartSweep deletes cart lines whose product disappeared or sold
// out. The web layer reconciles carts lazily on view; this keeps carts
// of inactive users from pinning dead rows forever.
func (a *Application) runCartSweep() error {
	stale := a.gormDB.
		Where("product_id not in (?)", a.gormDB.Model(&domain.Product{}).Select("id")).
		Delete(&domain.CartEntry{})
	if stale.Error != nil {
		return stale.Error
	}

	soldOut := a.gormDB.
		Where("product_id in (?)", a.gormDB.Model(&domain.Product{}).Select("id").Where("stock <= 0")).
		Delete(&domain.CartEntry{})
	if soldOut.Error != nil {
		return soldOut.Error
	}

	if n := stale.RowsAffected + soldOut.RowsAffected; n > 0 {
		zap.L().Info("cart sweep removed dead lines", zap.Int64("count", n))
	}
	return nil
}

// runMessageDigest publishes a digest event with the unread message
// count; the notify package turns it into mail when SMTP is set up.
func (a *Application) runMessageDigest() error {
	if !a.GetSettingsBoolValue("notify", "DigestEnabled") {
		return nil
	}

	var contacts, feedbacks int64
	if err := a.gormDB.Model(&domain.ContactMessage{}).
		Where("status = ?", domain.MessageStatusNew).Count(&contacts).Error; err != nil {
		return err
	}
	if err := a.gormDB.Model(&domain.GeneralFeedback{}).
		Where("status = ?", domain.MessageStatusNew).Count(&feedbacks).Error; err != nil {
		return err
	}
	if contacts == 0 && feedbacks == 0 {
		return nil
	}

	a.bus.Publish("messages.digest", contacts, feedbacks)
	zap.L().Info("message digest published",
		zap.Int64("contacts", contacts),
		zap.Int64("feedbacks", feedbacks))
	return nil
}
