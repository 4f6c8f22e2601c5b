package model

import (
	"time"
)

// SocialKeys links 字段允许出现的键
var SocialKeys = []string{"instagram", "snapchat", "spotify", "linkedin", "github"}

type StringList []string

type SocialLinks map[string]string

// swagger:model User
type User struct {
	BaseModel
	PhoneNumber        string      `gorm:"size:20;uniqueIndex;not null" json:"phoneNumber"` // E.164 规范化后的手机号
	Username           string      `gorm:"size:50;uniqueIndex;not null" json:"username"`
	FirstName          string      `gorm:"size:50" json:"firstName"`
	LastName           string      `gorm:"size:50" json:"lastName"`
	Password           string      `gorm:"size:100;not null" json:"-"`
	Interests          StringList  `gorm:"serializer:json" json:"interests"`
	School             string      `gorm:"size:100" json:"school"`
	Hometown           string      `gorm:"size:100" json:"hometown"`
	Job                string      `gorm:"size:100" json:"job"`
	Links              SocialLinks `gorm:"serializer:json" json:"links"`
	Latitude           *float64    `json:"latitude"`
	Longitude          *float64    `json:"longitude"`
	LastLocationUpdate *time.Time  `json:"lastLocationUpdate"`
	DiscoveryRadius    float64     `gorm:"default:10" json:"discoveryRadius"` // 发现半径（英里），0-50
	LastSeen           time.Time   `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// HasLocation 是否有有效定位，发现功能的前置条件
func (u *User) HasLocation() bool {
	return u.Latitude != nil && u.Longitude != nil
}
