package model

import "time"

// DeviceStatus 设备在线状态
type DeviceStatus string

const (
	DeviceStatusOnline  DeviceStatus = "online"
	DeviceStatusOffline DeviceStatus = "offline"
)

// ScaleProtocol 秤通信协议
type ScaleProtocol string

const (
	// ScaleProtocolSICS Mettler-Toledo SICS 协议
	ScaleProtocolSICS ScaleProtocol = "SICS"

	// ScaleProtocolIND IND 系列工业秤协议
	ScaleProtocolIND ScaleProtocol = "IND"
)

// Scale 联网秤
type Scale struct {
	ID         int64         `json:"id" db:"id"`
	Name       string        `json:"name" db:"name"`
	Protocol   ScaleProtocol `json:"protocol" db:"protocol"`
	IP         string        `json:"ip" db:"ip"`
	Port       int           `json:"port" db:"port"`
	Status     DeviceStatus  `json:"status" db:"status"`
	LastError  string        `json:"last_error,omitempty" db:"last_error"`
	LastSeenAt *time.Time    `json:"last_seen_at,omitempty" db:"last_seen_at"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" db:"updated_at"`
}

// Printer 标签打印机（ZPL，原始 9100 端口打印）
type Printer struct {
	ID          int64        `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	IP          string       `json:"ip" db:"ip"`
	Port        int          `json:"port" db:"port"`
	Status      DeviceStatus `json:"status" db:"status"`
	QueueLength int          `json:"queue_length" db:"queue_length"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}
