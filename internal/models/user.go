package models

// User represents the authenticated account owner. Broker credentials and
// the Telegram chat id are nullable: both are absent until the user links
// the respective service and cleared again on disconnect.
type User struct {
	Base
	Username       string  `gorm:"uniqueIndex;not null" json:"username"`
	Password       string  `gorm:"not null" json:"-"`
	APIKey         *string `json:"api_key,omitempty"`
	APISecret      *string `json:"-"`
	TelegramChatID *string `json:"telegram_chat_id,omitempty"`

	Trades        []Trade        `gorm:"foreignKey:UserID" json:"trades,omitempty"`
	Notifications []Notification `gorm:"foreignKey:UserID" json:"notifications,omitempty"`
}
