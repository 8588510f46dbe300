package events

import "time"

// Данные для писем по событиям жизненного цикла заявки

type NewRequestNotice struct {
	OwnerEmail     string
	RoomName       string
	BookTitle      string
	RequesterEmail string
}

type ShippedNotice struct {
	RequesterEmail string
	BookTitle      string
	ReturnDueDate  *time.Time
}

type ReturnCompleteNotice struct {
	RequesterEmail string
	BookTitle      string
}

type ReminderNotice struct {
	RequesterEmail string
	BookTitle      string
	ReturnDueDate  time.Time
}
