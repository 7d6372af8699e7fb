package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&MarketScheduler{},
	// Marketplace
	&User{},
	&Product{},
	&CartEntry{},
	&Order{},
	&OrderItem{},
	// Messaging
	&Feedback{},
	&GeneralFeedback{},
	&ContactMessage{},
}
