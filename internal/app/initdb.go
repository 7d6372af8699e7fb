package app

import (
	"errors"
	"strings"
	"time"

	"github.com/campusworks/campusmarket/internal/domain"
	"github.com/campusworks/campusmarket/pkg/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	superEmail      = "admin@campus.com"
	defaultPassword = "admin123"
)

// checkSuper makes sure the built-in administrator account exists and
// still has admin rights.
func (a *Application) checkSuper() {
	var admin domain.User
	err := a.gormDB.Where("email = ?", superEmail).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, herr := common.HashPassword(defaultPassword)
		if herr != nil {
			zap.L().Error("failed to hash default admin password", zap.Error(herr))
			return
		}
		if err := a.gormDB.Create(&domain.User{
			Name:     "Administrator",
			Email:    superEmail,
			Password: hash,
			Role:     domain.RoleAdmin,
		}).Error; err != nil {
			zap.L().Error("failed to create default admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default admin account", zap.String("email", superEmail))
		}
		return
	case err != nil:
		zap.L().Error("failed to query admin account", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(admin.Password) == ""
	resetRole := !admin.IsAdmin()
	if !resetPassword && !resetRole {
		return
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if resetPassword {
		if hash, herr := common.HashPassword(defaultPassword); herr == nil {
			updates["password"] = hash
		}
	}
	if resetRole {
		updates["role"] = domain.RoleAdmin
	}
	if err := a.gormDB.Model(&domain.User{}).Where("id = ?", admin.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair admin account", zap.Error(err))
		return
	}
	zap.L().Warn("repaired default admin account",
		zap.String("email", superEmail),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("roleReset", resetRole))
}

type settingDef struct {
	Type   string
	Name   string
	Value  string
	Remark string
}

var defaultSettings = []settingDef{
	{"site", "SiteTitle", "Campus Marketplace", "Title shown on storefront pages"},
	{"site", "ContactEmail", "support@campus.com", "Address shown on the contact page"},
	{"shop", "MaxCartQuantity", "99", "Upper bound for a single cart line quantity"},
	{"shop", "LowStockThreshold", "5", "Stock level that flags a product as low"},
	{"notify", "DigestEnabled", "true", "Send admins a digest of unread messages"},
}

// checkSettings seeds missing rows of the settings table.
func (a *Application) checkSettings() {
	for sortid, def := range defaultSettings {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", def.Type, def.Name).
			Count(&count)
		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				Sort:   sortid,
				Type:   def.Type,
				Name:   def.Name,
				Value:  def.Value,
				Remark: def.Remark,
			})
			zap.L().Info("initialized config",
				zap.String("key", def.Type+"."+def.Name),
				zap.String("default", def.Value))
		}
	}
}

// checkSchedulers initializes default scheduled tasks
func (a *Application) checkSchedulers() {
	defaultSchedulers := []domain.MarketScheduler{
		{
			Name:     "Cart Sweep",
			TaskType: TaskCartSweep,
			Interval: 3600,
			Status:   common.ENABLED,
			Remark:   "Removes cart lines whose product is gone or out of stock",
		},
		{
			Name:     "Message Digest",
			TaskType: TaskMessageDigest,
			Interval: 86400,
			Status:   common.ENABLED,
			Remark:   "Mails admins a summary of unread contact messages",
		},
	}

	for _, sched := range defaultSchedulers {
		var count int64
		a.gormDB.Model(&domain.MarketScheduler{}).
			Where("task_type = ?", sched.TaskType).
			Count(&count)
		if count == 0 {
			sched.NextRunAt = time.Now().Add(time.Duration(sched.Interval) * time.Second)
			if err := a.gormDB.Create(&sched).Error; err != nil {
				zap.L().Error("failed to create default scheduler",
					zap.String("name", sched.Name),
					zap.Error(err))
			} else {
				zap.L().Info("initialized default scheduler",
					zap.String("name", sched.Name),
					zap.String("task_type", sched.TaskType))
			}
		}
	}
}
