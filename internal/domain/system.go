package domain

import "time"

type SysConfig struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id,string" form:"id"`
	Sort      int       `json:"sort" form:"sort"`
	Type      string    `gorm:"index" json:"type" form:"type"`
	Name      string    `gorm:"index" json:"name" form:"name"`
	Value     string    `json:"value" form:"value"`
	Remark    string    `json:"remark" form:"remark"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (SysConfig) TableName() string {
	return "sys_config"
}

// MarketScheduler is a row-driven maintenance task. Enabled rows are
// polled by the application scheduler and executed when next_run_at
// has passed.
type MarketScheduler struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id,string" form:"id"`
	Name       string    `json:"name" form:"name"`
	TaskType   string    `gorm:"index" json:"task_type" form:"task_type"`
	Interval   int       `json:"interval" form:"interval"` // seconds
	Status     string    `gorm:"size:16;default:enabled" json:"status" form:"status"`
	LastRunAt  time.Time `json:"last_run_at"`
	LastResult string    `gorm:"size:64" json:"last_result"`
	NextRunAt  time.Time `json:"next_run_at"`
	Remark     string    `json:"remark" form:"remark"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName Specify table name
func (MarketScheduler) TableName() string {
	return "market_scheduler"
}
